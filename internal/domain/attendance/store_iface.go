package attendance

import (
	"context"
	"time"
)

// StoreAPI is the persistence contract for attendance records.
// InsertRecord returns apperr.Conflict when a record for the same
// employee and day already exists.
type StoreAPI interface {
	EmployeeExists(ctx context.Context, employeeID int64) (bool, error)
	InsertRecord(ctx context.Context, rec Record) (*Record, error)
	RecordForDay(ctx context.Context, employeeID int64, day time.Time) (*Record, error)
	SetCheckOut(ctx context.Context, id int64, checkOut time.Time, hoursWorked float64) (*Record, error)
	ListRange(ctx context.Context, employeeID int64, from, to time.Time) ([]Record, error)
}
