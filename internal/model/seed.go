package model

import (
	"context"
	"strings"

	"nexoformar/internal/auth"
	"nexoformar/internal/config"
	"nexoformar/internal/entity"
)

// SeedAdminUser creates the bootstrap ADMIN account when configured and the
// users table is still empty. Existing installations are never touched.
func SeedAdminUser(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}

	email := strings.TrimSpace(cfg.AdminEmail)
	password := strings.TrimSpace(cfg.AdminPassword)
	if email == "" || password == "" {
		return nil
	}

	count, err := repo.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &entity.DbUser{
		Name:         strings.TrimSpace(cfg.AdminName),
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		Status:       entity.StatusActive,
	}
	return repo.CreateUser(ctx, admin)
}
