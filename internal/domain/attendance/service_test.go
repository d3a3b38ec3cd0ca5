package attendance

import (
	"context"
	"testing"
	"time"

	"hrsys/internal/domain/apperr"
)

type fakeStore struct {
	employees map[int64]bool
	records   map[int64]*Record
	nextID    int64
}

func newFakeStore(employeeIDs ...int64) *fakeStore {
	f := &fakeStore{employees: map[int64]bool{}, records: map[int64]*Record{}}
	for _, id := range employeeIDs {
		f.employees[id] = true
	}
	return f
}

func (f *fakeStore) EmployeeExists(_ context.Context, employeeID int64) (bool, error) {
	return f.employees[employeeID], nil
}

func (f *fakeStore) InsertRecord(_ context.Context, rec Record) (*Record, error) {
	for _, existing := range f.records {
		if existing.EmployeeID == rec.EmployeeID && existing.Date.Equal(rec.Date) {
			return nil, apperr.Conflict("attendance already recorded for this day")
		}
	}
	f.nextID++
	rec.ID = f.nextID
	f.records[rec.ID] = &rec
	copied := rec
	return &copied, nil
}

func (f *fakeStore) RecordForDay(_ context.Context, employeeID int64, day time.Time) (*Record, error) {
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.Date.Equal(day) {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("attendance record", 0)
}

func (f *fakeStore) SetCheckOut(_ context.Context, id int64, checkOut time.Time, hoursWorked float64) (*Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, apperr.NotFound("attendance record", id)
	}
	rec.CheckOut = &checkOut
	rec.HoursWorked = &hoursWorked
	copied := *rec
	return &copied, nil
}

func (f *fakeStore) ListRange(_ context.Context, employeeID int64, from, to time.Time) ([]Record, error) {
	var out []Record
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func TestCheckInOncePerDay(t *testing.T) {
	service := NewService(newFakeStore(1))
	at := time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC)

	rec, err := service.CheckIn(context.Background(), 1, at)
	if err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	if !rec.Date.Equal(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected date-only bucket, got %v", rec.Date)
	}

	_, err = service.CheckIn(context.Background(), 1, at.Add(2*time.Hour))
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected Conflict for second check-in, got %v", err)
	}
}

func TestCheckInUnknownEmployee(t *testing.T) {
	service := NewService(newFakeStore())

	_, err := service.CheckIn(context.Background(), 5, time.Now())
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestCheckOutDerivesHours(t *testing.T) {
	service := NewService(newFakeStore(1))
	in := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	if _, err := service.CheckIn(context.Background(), 1, in); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	rec, err := service.CheckOut(context.Background(), 1, in.Add(7*time.Hour+30*time.Minute))
	if err != nil {
		t.Fatalf("check-out failed: %v", err)
	}
	if rec.HoursWorked == nil || *rec.HoursWorked != 7.5 {
		t.Fatalf("expected 7.5 hours, got %v", rec.HoursWorked)
	}

	_, err = service.CheckOut(context.Background(), 1, in.Add(8*time.Hour))
	if apperr.KindOf(err) != apperr.KindInvalidTransition {
		t.Fatalf("expected InvalidTransition for double check-out, got %v", err)
	}
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	service := NewService(newFakeStore(1))

	_, err := service.CheckOut(context.Background(), 1, time.Now())
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected NotFound without a day record, got %v", err)
	}
}
