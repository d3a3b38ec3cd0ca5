package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrsys/internal/domain/apperr"
)

var ErrUserNotFound = errors.New("user not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const userColumns = `
  id, username, email, password_hash, role, employee_id, is_active,
  mfa_enabled, COALESCE(mfa_secret, ''), last_login, created_at
`

func scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Role, &user.EmployeeID, &user.IsActive,
		&user.MFAEnabled, &user.MFASecret, &user.LastLogin, &user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) FindByUsername(ctx context.Context, username string) (*User, error) {
	return scanUser(s.DB.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username))
}

func (s *Store) FindByID(ctx context.Context, id int64) (*User, error) {
	return scanUser(s.DB.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

func (s *Store) InsertUser(ctx context.Context, user *User) error {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (username, email, password_hash, role, employee_id, is_active)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id, created_at
  `, user.Username, user.Email, user.PasswordHash, user.Role, user.EmployeeID, user.IsActive).Scan(&user.ID, &user.CreatedAt)
	if isUniqueViolation(err) {
		return apperr.Conflict("username or email already taken")
	}
	return err
}

func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *user)
	}
	return out, rows.Err()
}

func (s *Store) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := s.DB.Exec(ctx, "UPDATE users SET is_active = $1 WHERE id = $2", active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, id int64) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login = now() WHERE id = $1", id)
	return err
}

func (s *Store) UpdateMFASecret(ctx context.Context, id int64, secret string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET mfa_secret = $1, mfa_enabled = false WHERE id = $2", secret, id)
	return err
}

func (s *Store) SetMFAEnabled(ctx context.Context, id int64, enabled bool) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET mfa_enabled = $1 WHERE id = $2", enabled, id)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
