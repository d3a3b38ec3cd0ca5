package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrsys/internal/domain/auth"
	"hrsys/internal/transport/http/api"
	"hrsys/internal/transport/http/middleware"
)

type Handler struct {
	Service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.With(middleware.RequireAuth).Post("/auth/mfa/setup", h.handleMFASetup)
	r.With(middleware.RequireAuth).Post("/auth/mfa/enable", h.handleMFAEnable)
	r.With(middleware.RequireAuth).Post("/auth/mfa/disable", h.handleMFADisable)
	r.With(middleware.RequireAuth).Get("/auth/me", h.handleMe)

	r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/users", h.handleCreateUser)
	r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/users", h.handleListUsers)
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	MFACode  string `json:"mfaCode"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	token, user, err := h.Service.Login(r.Context(), payload.Username, payload.Password, payload.MFACode)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, auth.ErrAccountDisabled):
		api.Fail(w, http.StatusUnauthorized, "account_disabled", "account is disabled", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, auth.ErrMFARequired):
		api.Fail(w, http.StatusUnauthorized, "mfa_required", "mfa code required", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, auth.ErrMFAInvalid):
		api.Fail(w, http.StatusUnauthorized, "mfa_invalid", "invalid mfa code", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{"token": token, "user": user}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMFASetup(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	secret, otpauthURL, err := h.Service.SetupMFA(r.Context(), user.UserID)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"secret": secret, "otpauthUrl": otpauthURL}, middleware.GetRequestID(r.Context()))
}

type mfaCodePayload struct {
	Code string `json:"code"`
}

func (h *Handler) handleMFAEnable(w http.ResponseWriter, r *http.Request) {
	h.handleMFAToggle(w, r, true)
}

func (h *Handler) handleMFADisable(w http.ResponseWriter, r *http.Request) {
	h.handleMFAToggle(w, r, false)
}

func (h *Handler) handleMFAToggle(w http.ResponseWriter, r *http.Request, enable bool) {
	user, _ := middleware.GetUser(r.Context())

	var payload mfaCodePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	var err error
	if enable {
		err = h.Service.EnableMFA(r.Context(), user.UserID, payload.Code)
	} else {
		err = h.Service.DisableMFA(r.Context(), user.UserID, payload.Code)
	}
	switch {
	case errors.Is(err, auth.ErrMFANotConfigured):
		api.Fail(w, http.StatusBadRequest, "mfa_missing", "mfa setup required", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, auth.ErrMFAInvalid):
		api.Fail(w, http.StatusBadRequest, "mfa_invalid", "invalid mfa code", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	status := "disabled"
	if enable {
		status = "enabled"
	}
	api.Success(w, map[string]string{"status": status}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	api.Success(w, user, middleware.GetRequestID(r.Context()))
}

type createUserPayload struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	EmployeeID *int64 `json:"employeeId"`
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var payload createUserPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Username == "" || payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "username, email and password are required", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Service.CreateUser(r.Context(), auth.User{
		Username:   payload.Username,
		Email:      payload.Email,
		Role:       payload.Role,
		EmployeeID: payload.EmployeeID,
	}, payload.Password)
	if errors.Is(err, auth.ErrInvalidRole) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "unknown role", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, users, middleware.GetRequestID(r.Context()))
}
