package leavehandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrsys/internal/domain/audit"
	"hrsys/internal/domain/auth"
	"hrsys/internal/domain/leave"
	"hrsys/internal/transport/http/api"
	"hrsys/internal/transport/http/middleware"
	"hrsys/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Audit   *audit.Service
}

func NewHandler(service *leave.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.With(middleware.RequireAuth).Post("/requests", h.handleSubmit)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR, auth.RoleManager)).Get("/requests/pending", h.handleListPending)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR, auth.RoleManager)).Post("/requests/{requestID}/approve", h.handleApprove)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR, auth.RoleManager)).Post("/requests/{requestID}/reject", h.handleReject)
		r.With(middleware.RequireAuth).Get("/employees/{employeeID}/requests", h.handleListForEmployee)
		r.With(middleware.RequireAuth).Get("/employees/{employeeID}/entitlement", h.handleEntitlement)
	})
}

type submitPayload struct {
	EmployeeID int64  `json:"employeeId"`
	Type       string `json:"type"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload submitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := payload.EmployeeID
	if employeeID == 0 {
		// Employees submitting for themselves can omit the id.
		user, _ := middleware.GetUser(r.Context())
		employeeID = user.EmployeeID
	}
	if employeeID == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeId is required", middleware.GetRequestID(r.Context()))
		return
	}
	if !leave.ValidType(payload.Type) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "unknown leave type", middleware.GetRequestID(r.Context()))
		return
	}
	startDate, err := shared.ParseDate(payload.StartDate)
	if err != nil || startDate.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid start date", middleware.GetRequestID(r.Context()))
		return
	}
	endDate, err := shared.ParseDate(payload.EndDate)
	if err != nil || endDate.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid end date", middleware.GetRequestID(r.Context()))
		return
	}

	request, err := h.Service.Submit(r.Context(), employeeID, payload.Type, startDate, endDate, payload.Reason)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.recordAudit(r, "leave.submit", request.ID, map[string]any{"type": request.Type, "totalDays": request.TotalDays})
	api.Created(w, request, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.ListPending(r.Context())
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(chi.URLParam(r, "requestID"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid request id", middleware.GetRequestID(r.Context()))
		return
	}
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == 0 {
		api.Fail(w, http.StatusBadRequest, "approver_not_linked", "approver account has no employee record", middleware.GetRequestID(r.Context()))
		return
	}

	request, err := h.Service.Approve(r.Context(), id, user.EmployeeID)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.recordAudit(r, "leave.approve", id, nil)
	api.Success(w, request, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(chi.URLParam(r, "requestID"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid request id", middleware.GetRequestID(r.Context()))
		return
	}

	request, err := h.Service.Reject(r.Context(), id)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.recordAudit(r, "leave.reject", id, nil)
	api.Success(w, request, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListForEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}
	requests, err := h.Service.ListForEmployee(r.Context(), id)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEntitlement(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}
	year := shared.ParseYear(r.URL.Query().Get("year"))
	leaveType := r.URL.Query().Get("type")
	if leaveType == "" {
		leaveType = leave.TypeAnnual
	}

	used, err := h.Service.EntitlementUsed(r.Context(), id, leaveType, year)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	out := map[string]any{"employeeId": id, "type": leaveType, "year": year, "usedDays": used}
	if leaveType == leave.TypeAnnual {
		out["capDays"] = leave.AnnualCapDays
		out["remainingDays"] = leave.AnnualCapDays - used
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) recordAudit(r *http.Request, action string, requestID int64, payload any) {
	if h.Audit == nil {
		return
	}
	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.UserID, action, "leave_request", requestID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), payload); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}
