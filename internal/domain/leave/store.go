package leave

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrsys/internal/domain/apperr"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) EmployeeExists(ctx context.Context, employeeID int64) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE id = $1", employeeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) SumApprovedDays(ctx context.Context, employeeID int64, leaveType string, year int) (int, error) {
	var total int
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(total_days), 0)
    FROM leave_requests
    WHERE employee_id = $1 AND type = $2 AND status = $3
      AND date_part('year', start_date) = $4
  `, employeeID, leaveType, StatusApproved, year).Scan(&total)
	return total, err
}

const requestColumns = `
    lr.id, lr.employee_id, e.first_name || ' ' || e.last_name,
    lr.type, lr.status, lr.start_date, lr.end_date, lr.total_days,
    COALESCE(lr.reason, ''), lr.approved_by, lr.created_at, lr.updated_at
    FROM leave_requests lr
    JOIN employees e ON lr.employee_id = e.id`

func scanRequest(row pgx.Row) (*Request, error) {
	var req Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.EmployeeName,
		&req.Type, &req.Status, &req.StartDate, &req.EndDate, &req.TotalDays,
		&req.Reason, &req.ApprovedBy, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Store) GetRequest(ctx context.Context, id int64) (*Request, error) {
	req, err := scanRequest(s.DB.QueryRow(ctx, "SELECT"+requestColumns+" WHERE lr.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("leave request", id)
	}
	return req, err
}

func (s *Store) InsertRequest(ctx context.Context, req Request) (*Request, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, type, status, start_date, end_date, total_days, reason)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, req.EmployeeID, req.Type, req.Status, req.StartDate, req.EndDate, req.TotalDays, req.Reason).Scan(&id)
	if err != nil {
		return nil, err
	}
	return s.GetRequest(ctx, id)
}

// InsertAnnualChecked inserts an annual request after re-validating the
// cap against committed totals. The employee row lock serializes
// concurrent submissions for the same employee; submissions for
// different employees are unaffected.
func (s *Store) InsertAnnualChecked(ctx context.Context, req Request, capDays int) (*Request, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var lockedID int64
	if err := tx.QueryRow(ctx, "SELECT id FROM employees WHERE id = $1 FOR UPDATE", req.EmployeeID).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("employee", req.EmployeeID)
		}
		return nil, err
	}

	var used int
	if err := tx.QueryRow(ctx, `
    SELECT COALESCE(SUM(total_days), 0)
    FROM leave_requests
    WHERE employee_id = $1 AND type = $2 AND status = $3
      AND date_part('year', start_date) = $4
  `, req.EmployeeID, req.Type, StatusApproved, YearOf(req.StartDate)).Scan(&used); err != nil {
		return nil, err
	}
	if used+req.TotalDays > capDays {
		return nil, apperr.LimitExceeded(used, capDays)
	}

	var id int64
	if err := tx.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, type, status, start_date, end_date, total_days, reason)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, req.EmployeeID, req.Type, req.Status, req.StartDate, req.EndDate, req.TotalDays, req.Reason).Scan(&id); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return s.GetRequest(ctx, id)
}

func (s *Store) SetApproved(ctx context.Context, id, approverID int64, at time.Time) (*Request, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE leave_requests SET status = $1, approved_by = $2, updated_at = $3 WHERE id = $4
  `, StatusApproved, approverID, at, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, apperr.NotFound("leave request", id)
	}
	return s.GetRequest(ctx, id)
}

func (s *Store) SetRejected(ctx context.Context, id int64, at time.Time) (*Request, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE leave_requests SET status = $1, updated_at = $2 WHERE id = $3
  `, StatusRejected, at, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, apperr.NotFound("leave request", id)
	}
	return s.GetRequest(ctx, id)
}

func (s *Store) list(ctx context.Context, where, order string, args ...any) ([]Request, error) {
	rows, err := s.DB.Query(ctx, "SELECT"+requestColumns+where+order, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

func (s *Store) ListPending(ctx context.Context) ([]Request, error) {
	return s.list(ctx, " WHERE lr.status = $1", " ORDER BY lr.created_at", StatusPending)
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID int64) ([]Request, error) {
	return s.list(ctx, " WHERE lr.employee_id = $1", " ORDER BY lr.created_at DESC", employeeID)
}
