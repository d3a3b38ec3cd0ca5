package attendancehandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrsys/internal/domain/attendance"
	"hrsys/internal/transport/http/api"
	"hrsys/internal/transport/http/middleware"
	"hrsys/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
}

func NewHandler(service *attendance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.With(middleware.RequireAuth).Post("/check-in", h.handleCheckIn)
		r.With(middleware.RequireAuth).Post("/check-out", h.handleCheckOut)
		r.With(middleware.RequireAuth).Get("/employees/{employeeID}", h.handleListRange)
	})
}

type checkPayload struct {
	EmployeeID int64 `json:"employeeId"`
}

func (h *Handler) resolveEmployeeID(r *http.Request) (int64, bool) {
	var payload checkPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err == nil && payload.EmployeeID != 0 {
		return payload.EmployeeID, true
	}
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID != 0 {
		return user.EmployeeID, true
	}
	return 0, false
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.resolveEmployeeID(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeId is required", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Service.CheckIn(r.Context(), employeeID, time.Now().UTC())
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.resolveEmployeeID(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeId is required", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Service.CheckOut(r.Context(), employeeID, time.Now().UTC())
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRange(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}
	from, err := shared.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid from date", middleware.GetRequestID(r.Context()))
		return
	}
	to, err := shared.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid to date", middleware.GetRequestID(r.Context()))
		return
	}
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.AddDate(0, -1, 0)
	}

	records, err := h.Service.ListRange(r.Context(), id, from, to)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}
