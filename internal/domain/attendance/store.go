package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const recordColumns = `
    id, employee_id, date, check_in, check_out, hours_worked, COALESCE(notes, ''), created_at
    FROM attendance_records`

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.HoursWorked, &rec.Notes, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) InsertRecord(ctx context.Context, rec Record) (*Record, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO attendance_records (employee_id, date, check_in, notes)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, rec.EmployeeID, rec.Date, rec.CheckIn, rec.Notes).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperr.Conflict("attendance already recorded for this day")
		}
		return nil, err
	}
	return s.get(ctx, id)
}

func (s *Store) get(ctx context.Context, id int64) (*Record, error) {
	rec, err := scanRecord(s.DB.QueryRow(ctx, "SELECT"+recordColumns+" WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("attendance record", id)
	}
	return rec, err
}

func (s *Store) RecordForDay(ctx context.Context, employeeID int64, day time.Time) (*Record, error) {
	rec, err := scanRecord(s.DB.QueryRow(ctx, "SELECT"+recordColumns+" WHERE employee_id = $1 AND date = $2", employeeID, day))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("attendance record", 0)
	}
	return rec, err
}

func (s *Store) SetCheckOut(ctx context.Context, id int64, checkOut time.Time, hoursWorked float64) (*Record, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE attendance_records SET check_out = $1, hours_worked = $2 WHERE id = $3
  `, checkOut, hoursWorked, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, apperr.NotFound("attendance record", id)
	}
	return s.get(ctx, id)
}

func (s *Store) ListRange(ctx context.Context, employeeID int64, from, to time.Time) ([]Record, error) {
	rows, err := s.DB.Query(ctx, "SELECT"+recordColumns+` WHERE employee_id = $1 AND date >= $2 AND date <= $3 ORDER BY date`, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}
