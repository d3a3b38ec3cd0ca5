package core

import "context"

// StoreAPI is the persistence contract for the core aggregates. Lookup
// methods return apperr.NotFound when the row is absent; writes that hit
// a uniqueness constraint return apperr.Conflict.
type StoreAPI interface {
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	GetEmployeeByNumber(ctx context.Context, number string) (*Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	ListEmployeesByDepartment(ctx context.Context, departmentID int64) ([]Employee, error)
	ListEmployeesByManager(ctx context.Context, managerID int64) ([]Employee, error)
	MaxEmployeeKey(ctx context.Context) (int64, error)
	InsertEmployee(ctx context.Context, emp Employee) (*Employee, error)
	UpdateEmployee(ctx context.Context, emp Employee) (*Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error

	GetDepartment(ctx context.Context, id int64) (*Department, error)
	ListDepartments(ctx context.Context) ([]Department, error)
	InsertDepartment(ctx context.Context, dept Department) (*Department, error)
	DepartmentHasEmployees(ctx context.Context, id int64) (bool, error)
	DeleteDepartment(ctx context.Context, id int64) error

	ListPositionsByDepartment(ctx context.Context, departmentID int64) ([]JobPosition, error)
	InsertPosition(ctx context.Context, position JobPosition) (*JobPosition, error)

	ListContractsByEmployee(ctx context.Context, employeeID int64) ([]Contract, error)
	InsertContract(ctx context.Context, contract Contract) (*Contract, error)
}
