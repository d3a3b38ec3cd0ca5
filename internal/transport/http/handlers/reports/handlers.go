package reportshandler

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"hrsys/internal/domain/auth"
	"hrsys/internal/domain/reports"
	"hrsys/internal/transport/http/api"
	"hrsys/internal/transport/http/middleware"
	"hrsys/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR))
		r.Get("/summary", h.handleSummary)
		r.Get("/leave-usage", h.handleLeaveUsage)
		r.Get("/leave-requests/export", h.handleExport)
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLeaveUsage(w http.ResponseWriter, r *http.Request) {
	year := shared.ParseYear(r.URL.Query().Get("year"))
	usage, err := h.Service.Usage(r.Context(), year)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"year": year, "usage": usage}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	year := shared.ParseYear(r.URL.Query().Get("year"))
	rows, err := h.Service.Export(r.Context(), year)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "csv"
	}

	switch format {
	case "pdf":
		h.writePDF(w, year, rows)
	case "csv":
		h.writeCSV(w, year, rows)
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_format", "format must be csv or pdf", middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) writeCSV(w http.ResponseWriter, year int, rows []reports.ExportRow) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=leave-requests-%d.csv", year))

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "employee_number", "employee_name", "type", "status", "start_date", "end_date", "total_days"}); err != nil {
		slog.Warn("leave export csv header write failed", "err", err)
	}
	for _, row := range rows {
		record := []string{
			fmt.Sprintf("%d", row.ID),
			row.EmployeeNumber,
			row.EmployeeName,
			row.Type,
			row.Status,
			row.StartDate.Format("2006-01-02"),
			row.EndDate.Format("2006-01-02"),
			fmt.Sprintf("%d", row.TotalDays),
		}
		if err := writer.Write(record); err != nil {
			slog.Warn("leave export csv row write failed", "err", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.Warn("leave export csv flush failed", "err", err)
	}
}

func (h *Handler) writePDF(w http.ResponseWriter, year int, rows []reports.ExportRow) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Leave Requests %d", year))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		line := fmt.Sprintf("%s  %s  %s (%s)  %s to %s  %d days",
			row.EmployeeNumber, row.EmployeeName, row.Type, row.Status,
			row.StartDate.Format("2006-01-02"), row.EndDate.Format("2006-01-02"), row.TotalDays)
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=leave-requests-%d.pdf", year))
	if err := pdf.Output(w); err != nil {
		slog.Warn("leave export pdf write failed", "err", err)
	}
}
