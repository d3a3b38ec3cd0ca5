package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrsys/internal/domain/core"
	"hrsys/internal/domain/leave"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type UsageRow struct {
	Type      string `json:"type"`
	Requests  int    `json:"requests"`
	TotalDays int    `json:"totalDays"`
}

// UsageByType sums approved leave per type for the given calendar year.
func (s *Store) UsageByType(ctx context.Context, year int) ([]UsageRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT type, COUNT(1), COALESCE(SUM(total_days), 0)
    FROM leave_requests
    WHERE status = $1 AND date_part('year', start_date) = $2
    GROUP BY type
    ORDER BY type
  `, leave.StatusApproved, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UsageRow
	for rows.Next() {
		var row UsageRow
		if err := rows.Scan(&row.Type, &row.Requests, &row.TotalDays); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

type ExportRow struct {
	ID             int64
	EmployeeNumber string
	EmployeeName   string
	Type           string
	Status         string
	StartDate      time.Time
	EndDate        time.Time
	TotalDays      int
}

// ExportRows lists every leave request of the year with employee
// identification, ordered by start date.
func (s *Store) ExportRows(ctx context.Context, year int) ([]ExportRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT r.id, e.employee_number, e.first_name || ' ' || e.last_name,
           r.type, r.status, r.start_date, r.end_date, r.total_days
    FROM leave_requests r
    JOIN employees e ON r.employee_id = e.id
    WHERE date_part('year', r.start_date) = $1
    ORDER BY r.start_date, r.id
  `, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExportRow
	for rows.Next() {
		var row ExportRow
		if err := rows.Scan(&row.ID, &row.EmployeeNumber, &row.EmployeeName, &row.Type, &row.Status, &row.StartDate, &row.EndDate, &row.TotalDays); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) ActiveEmployeeCount(ctx context.Context) (int, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE status = $1", core.StatusActive).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) DepartmentCount(ctx context.Context) (int, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM departments").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) PendingLeaveCount(ctx context.Context) (int, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM leave_requests WHERE status = $1", leave.StatusPending).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
