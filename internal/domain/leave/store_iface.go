package leave

import (
	"context"
	"time"
)

// StoreAPI is the persistence contract for leave requests. Lookups
// return apperr.NotFound for absent rows. InsertAnnualChecked must
// re-validate the cap against the latest committed totals under a
// per-employee serialization point before committing; two concurrent
// submissions for the same employee and year must not jointly exceed
// the cap.
type StoreAPI interface {
	EmployeeExists(ctx context.Context, employeeID int64) (bool, error)
	SumApprovedDays(ctx context.Context, employeeID int64, leaveType string, year int) (int, error)
	InsertRequest(ctx context.Context, req Request) (*Request, error)
	InsertAnnualChecked(ctx context.Context, req Request, capDays int) (*Request, error)
	GetRequest(ctx context.Context, id int64) (*Request, error)
	SetApproved(ctx context.Context, id, approverID int64, at time.Time) (*Request, error)
	SetRejected(ctx context.Context, id int64, at time.Time) (*Request, error)
	ListPending(ctx context.Context) ([]Request, error)
	ListForEmployee(ctx context.Context, employeeID int64) ([]Request, error)
}
