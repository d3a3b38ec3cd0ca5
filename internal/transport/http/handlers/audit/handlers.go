package audithandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrsys/internal/domain/audit"
	"hrsys/internal/domain/auth"
	"hrsys/internal/transport/http/api"
	"hrsys/internal/transport/http/middleware"
	"hrsys/internal/transport/http/shared"
)

type Handler struct {
	Audit *audit.Service
}

func NewHandler(auditSvc *audit.Service) *Handler {
	return &Handler{Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Get("/audit", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 500)
	events, err := h.Audit.List(r.Context(), page.Limit, page.Offset)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, events, middleware.GetRequestID(r.Context()))
}
