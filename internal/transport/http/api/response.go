package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"hrsys/internal/domain/apperr"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message, Details: details}, RequestID: requestID})
}

// FailError maps a domain error onto the HTTP surface. Errors outside the
// apperr taxonomy are treated as infrastructure failures and logged.
func FailError(w http.ResponseWriter, err error, requestID string) {
	if appErr, ok := apperr.As(err); ok {
		switch appErr.Kind {
		case apperr.KindNotFound:
			Fail(w, http.StatusNotFound, "not_found", appErr.Message, requestID)
			return
		case apperr.KindInvalidReference:
			Fail(w, http.StatusBadRequest, "invalid_reference", appErr.Message, requestID)
			return
		case apperr.KindInvalidTransition:
			Fail(w, http.StatusConflict, "invalid_transition", appErr.Message, requestID)
			return
		case apperr.KindBusinessRule:
			FailWithDetails(w, http.StatusUnprocessableEntity, "business_rule_violation", appErr.Message,
				map[string]any{"used": appErr.Used, "cap": appErr.Cap}, requestID)
			return
		case apperr.KindConflict:
			Fail(w, http.StatusConflict, "conflict", appErr.Message, requestID)
			return
		}
	}

	slog.Error("request failed", "err", err, "requestId", requestID)
	Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
}
