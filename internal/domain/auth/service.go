package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrMFARequired        = errors.New("mfa code required")
	ErrMFAInvalid         = errors.New("invalid mfa code")
	ErrMFANotConfigured   = errors.New("mfa setup required")
	ErrInvalidRole        = errors.New("invalid role")
)

const totpIssuer = "hrsys"

type Service struct {
	Store    StoreAPI
	Secret   string
	TokenTTL time.Duration
}

func NewService(store StoreAPI, secret string, tokenTTL time.Duration) *Service {
	return &Service{Store: store, Secret: secret, TokenTTL: tokenTTL}
}

// Login verifies the credentials and issues a signed token. Disabled
// accounts are refused even with a correct password. When MFA is enabled
// on the account a valid TOTP code must accompany the password.
func (s *Service) Login(ctx context.Context, username, password, mfaCode string) (string, *User, error) {
	user, err := s.Store.FindByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !user.IsActive {
		return "", nil, ErrAccountDisabled
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if user.MFAEnabled {
		if mfaCode == "" {
			return "", nil, ErrMFARequired
		}
		if user.MFASecret == "" || !totp.Validate(mfaCode, user.MFASecret) {
			return "", nil, ErrMFAInvalid
		}
	}

	claims := Claims{UserID: user.ID, Username: user.Username, Role: user.Role}
	if user.EmployeeID != nil {
		claims.EmployeeID = *user.EmployeeID
	}
	token, err := GenerateToken(s.Secret, claims, s.TokenTTL)
	if err != nil {
		return "", nil, err
	}

	if err := s.Store.UpdateLastLogin(ctx, user.ID); err != nil {
		slog.Warn("update last_login failed", "userId", user.ID, "err", err)
	}
	return token, user, nil
}

// SetupMFA generates a fresh TOTP secret for the user and stores it with
// MFA disabled; EnableMFA turns it on once the user proves possession.
func (s *Service) SetupMFA(ctx context.Context, userID int64) (secret, otpauthURL string, err error) {
	user, err := s.Store.FindByID(ctx, userID)
	if err != nil {
		return "", "", err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Username,
		Period:      30,
		Digits:      otp.DigitsSix,
	})
	if err != nil {
		return "", "", err
	}
	if err := s.Store.UpdateMFASecret(ctx, userID, key.Secret()); err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

func (s *Service) EnableMFA(ctx context.Context, userID int64, code string) error {
	return s.setMFA(ctx, userID, code, true)
}

func (s *Service) DisableMFA(ctx context.Context, userID int64, code string) error {
	return s.setMFA(ctx, userID, code, false)
}

func (s *Service) setMFA(ctx context.Context, userID int64, code string, enabled bool) error {
	user, err := s.Store.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.MFASecret == "" {
		return ErrMFANotConfigured
	}
	if !totp.Validate(code, user.MFASecret) {
		return ErrMFAInvalid
	}
	return s.Store.SetMFAEnabled(ctx, userID, enabled)
}

func (s *Service) CreateUser(ctx context.Context, user User, password string) (*User, error) {
	if !ValidRole(user.Role) {
		return nil, ErrInvalidRole
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.IsActive = true
	if err := s.Store.InsertUser(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.Store.ListUsers(ctx)
}

func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	return s.Store.SetActive(ctx, id, active)
}
