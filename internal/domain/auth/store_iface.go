package auth

import "context"

// StoreAPI is the persistence surface for user accounts. ErrUserNotFound
// is returned for absent rows; uniqueness violations surface as
// apperr.Conflict.
type StoreAPI interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	InsertUser(ctx context.Context, user *User) error
	ListUsers(ctx context.Context) ([]User, error)
	SetActive(ctx context.Context, id int64, active bool) error
	UpdateLastLogin(ctx context.Context, id int64) error
	UpdateMFASecret(ctx context.Context, id int64, secret string) error
	SetMFAEnabled(ctx context.Context, id int64, enabled bool) error
}
