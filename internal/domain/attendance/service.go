package attendance

import (
	"context"
	"time"

	"hrsys/internal/domain/apperr"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// CheckIn opens the employee's attendance record for the day of `at`.
// A second check-in on the same day surfaces as Conflict from the
// store's per-day uniqueness constraint.
func (s *Service) CheckIn(ctx context.Context, employeeID int64, at time.Time) (*Record, error) {
	exists, err := s.Store.EmployeeExists(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("employee", employeeID)
	}

	checkIn := at.UTC()
	return s.Store.InsertRecord(ctx, Record{
		EmployeeID: employeeID,
		Date:       dateOnly(checkIn),
		CheckIn:    &checkIn,
	})
}

// CheckOut closes the day's record and derives hours worked from the
// check-in timestamp.
func (s *Service) CheckOut(ctx context.Context, employeeID int64, at time.Time) (*Record, error) {
	rec, err := s.Store.RecordForDay(ctx, employeeID, dateOnly(at.UTC()))
	if err != nil {
		return nil, err
	}
	if rec.CheckIn == nil {
		return nil, apperr.InvalidTransition("attendance record", rec.ID, "not checked in")
	}
	if rec.CheckOut != nil {
		return nil, apperr.InvalidTransition("attendance record", rec.ID, "checked out")
	}

	checkOut := at.UTC()
	hours := checkOut.Sub(*rec.CheckIn).Hours()
	if hours < 0 {
		hours = 0
	}
	return s.Store.SetCheckOut(ctx, rec.ID, checkOut, hours)
}

// ListRange returns an employee's records between from and to
// inclusive, oldest first.
func (s *Service) ListRange(ctx context.Context, employeeID int64, from, to time.Time) ([]Record, error) {
	exists, err := s.Store.EmployeeExists(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("employee", employeeID)
	}
	return s.Store.ListRange(ctx, employeeID, dateOnly(from), dateOnly(to))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
