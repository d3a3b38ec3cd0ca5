package core

import (
	"context"
	"time"

	"hrsys/internal/domain/apperr"
)

// admitAttempts bounds the regenerate-and-retry loop when a concurrent
// admission claims the same employee number first.
const admitAttempts = 3

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	return s.Store.GetEmployee(ctx, id)
}

func (s *Service) GetEmployeeByNumber(ctx context.Context, number string) (*Employee, error) {
	return s.Store.GetEmployeeByNumber(ctx, number)
}

func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.Store.ListEmployees(ctx)
}

func (s *Service) ListEmployeesByDepartment(ctx context.Context, departmentID int64) ([]Employee, error) {
	return s.Store.ListEmployeesByDepartment(ctx, departmentID)
}

func (s *Service) ListEmployeesByManager(ctx context.Context, managerID int64) ([]Employee, error) {
	return s.Store.ListEmployeesByManager(ctx, managerID)
}

// Admit validates the referenced department and manager, assigns the
// next employee number and persists the employee as active. Referential
// checks here exist to produce a descriptive error instead of a raw
// constraint violation from the store.
func (s *Service) Admit(ctx context.Context, emp Employee) (*Employee, error) {
	if _, err := s.Store.GetDepartment(ctx, emp.DepartmentID); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.InvalidReference("departmentId", emp.DepartmentID)
		}
		return nil, err
	}

	if emp.ManagerID != nil {
		if _, err := s.Store.GetEmployee(ctx, *emp.ManagerID); err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				return nil, apperr.InvalidReference("managerId", *emp.ManagerID)
			}
			return nil, err
		}
	}

	emp.Status = StatusActive

	var lastErr error
	for attempt := 0; attempt < admitAttempts; attempt++ {
		maxKey, err := s.Store.MaxEmployeeKey(ctx)
		if err != nil {
			return nil, err
		}
		emp.EmployeeNumber = NextEmployeeNumber(maxKey)

		created, err := s.Store.InsertEmployee(ctx, emp)
		if err == nil {
			return created, nil
		}
		if apperr.KindOf(err) != apperr.KindConflict {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *Service) UpdateEmployee(ctx context.Context, emp Employee) (*Employee, error) {
	current, err := s.Store.GetEmployee(ctx, emp.ID)
	if err != nil {
		return nil, err
	}
	emp.EmployeeNumber = current.EmployeeNumber
	emp.UpdatedAt = time.Now().UTC()
	return s.Store.UpdateEmployee(ctx, emp)
}

func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	if _, err := s.Store.GetEmployee(ctx, id); err != nil {
		return err
	}
	return s.Store.DeleteEmployee(ctx, id)
}

func (s *Service) GetDepartment(ctx context.Context, id int64) (*Department, error) {
	return s.Store.GetDepartment(ctx, id)
}

func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	return s.Store.ListDepartments(ctx)
}

func (s *Service) CreateDepartment(ctx context.Context, dept Department) (*Department, error) {
	if dept.ManagerID != nil {
		if _, err := s.Store.GetEmployee(ctx, *dept.ManagerID); err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				return nil, apperr.InvalidReference("managerId", *dept.ManagerID)
			}
			return nil, err
		}
	}
	return s.Store.InsertDepartment(ctx, dept)
}

// DeleteDepartment refuses to remove a department that still has
// employees assigned.
func (s *Service) DeleteDepartment(ctx context.Context, id int64) error {
	if _, err := s.Store.GetDepartment(ctx, id); err != nil {
		return err
	}
	hasEmployees, err := s.Store.DepartmentHasEmployees(ctx, id)
	if err != nil {
		return err
	}
	if hasEmployees {
		return apperr.Conflict("cannot delete department with employees")
	}
	return s.Store.DeleteDepartment(ctx, id)
}

func (s *Service) ListPositionsByDepartment(ctx context.Context, departmentID int64) ([]JobPosition, error) {
	return s.Store.ListPositionsByDepartment(ctx, departmentID)
}

func (s *Service) CreatePosition(ctx context.Context, position JobPosition) (*JobPosition, error) {
	if _, err := s.Store.GetDepartment(ctx, position.DepartmentID); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.InvalidReference("departmentId", position.DepartmentID)
		}
		return nil, err
	}
	return s.Store.InsertPosition(ctx, position)
}

func (s *Service) ListContractsByEmployee(ctx context.Context, employeeID int64) ([]Contract, error) {
	return s.Store.ListContractsByEmployee(ctx, employeeID)
}

func (s *Service) CreateContract(ctx context.Context, contract Contract) (*Contract, error) {
	if _, err := s.Store.GetEmployee(ctx, contract.EmployeeID); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.InvalidReference("employeeId", contract.EmployeeID)
		}
		return nil, err
	}
	if contract.Status == "" {
		contract.Status = ContractStatusActive
	}
	return s.Store.InsertContract(ctx, contract)
}
