package auth

import (
	"context"
	"errors"
	"fmt"

	"tenx/internal/models"
	"tenx/internal/storage"
)

// AccountStore is the slice of the store needed to provision accounts.
type AccountStore interface {
	UserLookup
	CreateAdminUser(ctx context.Context, u models.AdminUser) (models.AdminUser, error)
}

// EnsureAdmin creates an active account for email unless one already
// exists. created reports whether a new account was written; an existing
// account is returned untouched.
func (m *Manager) EnsureAdmin(ctx context.Context, users AccountStore, in models.AdminUserInput) (user models.AdminUser, created bool, err error) {
	if err := in.Validate(); err != nil {
		return models.AdminUser{}, false, err
	}
	existing, err := users.GetAdminUserByEmail(ctx, in.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.AdminUser{}, false, fmt.Errorf("lookup admin user: %w", err)
	}

	hash, err := m.HashPassword(in.Password)
	if err != nil {
		return models.AdminUser{}, false, fmt.Errorf("hash password: %w", err)
	}
	user, err = users.CreateAdminUser(ctx, models.AdminUser{
		Email:        in.Email,
		FullName:     in.FullName,
		Role:         in.Role,
		IsActive:     true,
		PasswordHash: hash,
	})
	if err != nil {
		return models.AdminUser{}, false, err
	}
	return user, true, nil
}
