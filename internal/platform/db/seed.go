package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrsys/internal/domain/auth"
	"hrsys/internal/platform/config"
)

// Seed ensures a usable admin login exists so a fresh deployment is not
// locked out. It never overwrites an existing user.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminPassword == "" {
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE username = $1", cfg.SeedAdminUsername).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (username, email, password_hash, role, is_active)
    VALUES ($1,$2,$3,$4,true)
  `, cfg.SeedAdminUsername, cfg.SeedAdminEmail, hash, auth.RoleAdmin)
	return err
}
