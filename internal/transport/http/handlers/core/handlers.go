package corehandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrsys/internal/domain/audit"
	"hrsys/internal/domain/auth"
	"hrsys/internal/domain/core"
	"hrsys/internal/transport/http/api"
	"hrsys/internal/transport/http/middleware"
	"hrsys/internal/transport/http/shared"
)

type Handler struct {
	Service *core.Service
	Audit   *audit.Service
}

func NewHandler(service *core.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/", h.handleListEmployees)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/", h.handleAdmitEmployee)
		r.With(middleware.RequireAuth).Get("/by-number/{employeeNumber}", h.handleGetEmployeeByNumber)
		r.With(middleware.RequireAuth).Get("/{employeeID}", h.handleGetEmployee)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Put("/{employeeID}", h.handleUpdateEmployee)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{employeeID}", h.handleDeleteEmployee)
		r.With(middleware.RequireAuth).Get("/{employeeID}/team", h.handleListTeam)
		r.With(middleware.RequireAuth).Get("/{employeeID}/contracts", h.handleListContracts)
	})

	r.Route("/departments", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/", h.handleListDepartments)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/", h.handleCreateDepartment)
		r.With(middleware.RequireAuth).Get("/{departmentID}", h.handleGetDepartment)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{departmentID}", h.handleDeleteDepartment)
		r.With(middleware.RequireAuth).Get("/{departmentID}/employees", h.handleListDepartmentEmployees)
		r.With(middleware.RequireAuth).Get("/{departmentID}/positions", h.handleListPositions)
	})

	r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/positions", h.handleCreatePosition)
	r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/contracts", h.handleCreateContract)
}

type employeePayload struct {
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	DateOfBirth   string  `json:"dateOfBirth"`
	Gender        string  `json:"gender"`
	NationalID    string  `json:"nationalId"`
	Address       string  `json:"address"`
	HireDate      string  `json:"hireDate"`
	DepartmentID  int64   `json:"departmentId"`
	JobPositionID int64   `json:"jobPositionId"`
	ManagerID     *int64  `json:"managerId"`
	BaseSalary    float64 `json:"baseSalary"`
	Status        string  `json:"status"`
}

func (p employeePayload) toEmployee() (core.Employee, error) {
	emp := core.Employee{
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Email:         p.Email,
		Phone:         p.Phone,
		Gender:        p.Gender,
		NationalID:    p.NationalID,
		Address:       p.Address,
		DepartmentID:  p.DepartmentID,
		JobPositionID: p.JobPositionID,
		ManagerID:     p.ManagerID,
		BaseSalary:    p.BaseSalary,
		Status:        p.Status,
	}
	if p.DateOfBirth != "" {
		parsed, err := shared.ParseDate(p.DateOfBirth)
		if err != nil {
			return core.Employee{}, err
		}
		emp.DateOfBirth = &parsed
	}
	if p.HireDate != "" {
		parsed, err := shared.ParseDate(p.HireDate)
		if err != nil {
			return core.Employee{}, err
		}
		emp.HireDate = &parsed
	}
	return emp, nil
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAdmitEmployee(w http.ResponseWriter, r *http.Request) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	emp, err := payload.toEmployee()
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid date", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Service.Admit(r.Context(), emp)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.recordAudit(r, "employee.admit", "employee", created.ID, map[string]string{"employeeNumber": created.EmployeeNumber})
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}
	employee, err := h.Service.GetEmployee(r.Context(), id)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployeeByNumber(w http.ResponseWriter, r *http.Request) {
	employee, err := h.Service.GetEmployeeByNumber(r.Context(), chi.URLParam(r, "employeeNumber"))
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	emp, err := payload.toEmployee()
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid date", middleware.GetRequestID(r.Context()))
		return
	}
	emp.ID = id

	updated, err := h.Service.UpdateEmployee(r.Context(), emp)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.DeleteEmployee(r.Context(), id); err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.recordAudit(r, "employee.delete", "employee", id, nil)
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListTeam(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}
	employees, err := h.Service.ListEmployeesByManager(r.Context(), id)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.ListDepartments(r.Context())
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, departments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var payload core.Department
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Service.CreateDepartment(r.Context(), payload)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(chi.URLParam(r, "departmentID"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid department id", middleware.GetRequestID(r.Context()))
		return
	}
	department, err := h.Service.GetDepartment(r.Context(), id)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, department, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(chi.URLParam(r, "departmentID"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid department id", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.DeleteDepartment(r.Context(), id); err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.recordAudit(r, "department.delete", "department", id, nil)
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListDepartmentEmployees(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(chi.URLParam(r, "departmentID"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid department id", middleware.GetRequestID(r.Context()))
		return
	}
	employees, err := h.Service.ListEmployeesByDepartment(r.Context(), id)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListPositions(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(chi.URLParam(r, "departmentID"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid department id", middleware.GetRequestID(r.Context()))
		return
	}
	positions, err := h.Service.ListPositionsByDepartment(r.Context(), id)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, positions, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	var payload core.JobPosition
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Service.CreatePosition(r.Context(), payload)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListContracts(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}
	contracts, err := h.Service.ListContractsByEmployee(r.Context(), id)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, contracts, middleware.GetRequestID(r.Context()))
}

type contractPayload struct {
	EmployeeID int64   `json:"employeeId"`
	Type       string  `json:"type"`
	Status     string  `json:"status"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	Salary     float64 `json:"salary"`
	Notes      string  `json:"notes"`
}

func (h *Handler) handleCreateContract(w http.ResponseWriter, r *http.Request) {
	var payload contractPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	startDate, err := shared.ParseDate(payload.StartDate)
	if err != nil || startDate.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid start date", middleware.GetRequestID(r.Context()))
		return
	}
	contract := core.Contract{
		EmployeeID: payload.EmployeeID,
		Type:       payload.Type,
		Status:     payload.Status,
		StartDate:  startDate,
		Salary:     payload.Salary,
		Notes:      payload.Notes,
	}
	if payload.EndDate != "" {
		endDate, err := shared.ParseDate(payload.EndDate)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid end date", middleware.GetRequestID(r.Context()))
			return
		}
		contract.EndDate = &endDate
	}

	created, err := h.Service.CreateContract(r.Context(), contract)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) recordAudit(r *http.Request, action, entityType string, entityID int64, payload any) {
	if h.Audit == nil {
		return
	}
	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.UserID, action, entityType, entityID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), payload); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}
