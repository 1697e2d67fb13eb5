package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tenx/internal/models"
	"tenx/internal/storage"
)

const adminUserColumns = `id, email, password_hash, full_name, role, is_active, last_login, created_at, updated_at`

func scanAdminUser(sc rowScanner) (models.AdminUser, error) {
	var (
		u         models.AdminUser
		lastLogin sql.NullTime
	)
	if err := sc.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.IsActive,
		&lastLogin, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return models.AdminUser{}, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return u, nil
}

func (s *Store) getAdminUser(ctx context.Context, where string, arg any) (models.AdminUser, error) {
	u, err := scanAdminUser(s.db.QueryRowContext(ctx, s.rebind(`SELECT `+adminUserColumns+` FROM admin_users WHERE `+where+` = ?`), arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.AdminUser{}, fmt.Errorf("admin user: %w", storage.ErrNotFound)
	}
	if err != nil {
		return models.AdminUser{}, fmt.Errorf("get admin user: %w", err)
	}
	return u, nil
}

// GetAdminUser fetches an account by id.
func (s *Store) GetAdminUser(ctx context.Context, id string) (models.AdminUser, error) {
	return s.getAdminUser(ctx, "id", id)
}

// GetAdminUserByEmail fetches an account by its normalized email.
func (s *Store) GetAdminUserByEmail(ctx context.Context, email string) (models.AdminUser, error) {
	return s.getAdminUser(ctx, "email", models.NormalizeEmail(email))
}

// ListAdminUsers returns every account, newest first.
func (s *Store) ListAdminUsers(ctx context.Context) ([]models.AdminUser, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+adminUserColumns+` FROM admin_users ORDER BY created_at DESC, email ASC`)
	if err != nil {
		return nil, fmt.Errorf("list admin users: %w", err)
	}
	defer rows.Close()

	users := []models.AdminUser{}
	for rows.Next() {
		u, err := scanAdminUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan admin user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CreateAdminUser stores a new account. PasswordHash must already be set.
// A taken email yields ErrConflict.
func (s *Store) CreateAdminUser(ctx context.Context, u models.AdminUser) (models.AdminUser, error) {
	u.Email = models.NormalizeEmail(u.Email)
	if _, err := s.GetAdminUserByEmail(ctx, u.Email); err == nil {
		return models.AdminUser{}, fmt.Errorf("admin user %s: %w", u.Email, storage.ErrConflict)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.AdminUser{}, err
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = models.RoleAdmin
	}
	now := s.now()

	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO admin_users
        (id, email, password_hash, full_name, role, is_active, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		u.ID, u.Email, u.PasswordHash, u.FullName, u.Role, u.IsActive, now, now)
	if err != nil {
		return models.AdminUser{}, fmt.Errorf("insert admin user: %w", err)
	}
	return s.GetAdminUser(ctx, u.ID)
}

// UpdateAdminUser writes the mutable profile fields of u.
func (s *Store) UpdateAdminUser(ctx context.Context, u models.AdminUser) (models.AdminUser, error) {
	res, err := s.db.ExecContext(ctx, s.rebind(`UPDATE admin_users SET full_name = ?, role = ?, is_active = ?, updated_at = ? WHERE id = ?`),
		u.FullName, u.Role, u.IsActive, s.now(), u.ID)
	if err != nil {
		return models.AdminUser{}, fmt.Errorf("update admin user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.AdminUser{}, err
	}
	if affected == 0 {
		return models.AdminUser{}, fmt.Errorf("admin user %s: %w", u.ID, storage.ErrNotFound)
	}
	return s.GetAdminUser(ctx, u.ID)
}

// SetAdminPassword replaces the password hash of account id.
func (s *Store) SetAdminPassword(ctx context.Context, id, passwordHash string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`UPDATE admin_users SET password_hash = ?, updated_at = ? WHERE id = ?`),
		passwordHash, s.now(), id)
	if err != nil {
		return fmt.Errorf("set admin password: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("admin user %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// TouchLastLogin records a successful sign-in.
func (s *Store) TouchLastLogin(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`UPDATE admin_users SET last_login = ? WHERE id = ?`), s.now(), id)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}
