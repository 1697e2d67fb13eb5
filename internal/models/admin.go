package models

import (
	"net/mail"
	"strings"
	"time"
)

// Admin roles.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// ValidRoles enumerates the accepted admin roles.
var ValidRoles = map[string]struct{}{
	RoleAdmin:      {},
	RoleSuperAdmin: {},
}

// AdminUser is an administrator account. Only active users may sign in.
type AdminUser struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name,omitempty"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	PasswordHash string     `json:"-"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// AdminUserInput is the payload for creating an admin account.
type AdminUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Validate normalizes and checks an account creation payload.
func (in *AdminUserInput) Validate() error {
	in.Email = NormalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Role = strings.TrimSpace(in.Role)
	if in.Role == "" {
		in.Role = RoleAdmin
	}
	var extra []string
	if _, ok := ValidRoles[in.Role]; !ok {
		extra = append(extra, "Role:oneof")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil && in.Email != "" {
		extra = append(extra, "Email:address")
	}
	if len(in.Password) > MaxPasswordBytes {
		extra = append(extra, "Password:bytes")
	}
	return checkStruct(in, extra)
}

// AdminUserUpdate is a partial update of an admin account.
type AdminUserUpdate struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// Validate checks the fields that are present.
func (u *AdminUserUpdate) Validate() error {
	var extra []string
	if u.FullName != nil {
		name := strings.TrimSpace(*u.FullName)
		u.FullName = &name
	}
	if u.Role != nil {
		role := strings.TrimSpace(*u.Role)
		u.Role = &role
		if _, ok := ValidRoles[role]; !ok {
			extra = append(extra, "Role:oneof")
		}
	}
	return checkStruct(u, extra)
}

// Apply copies the present fields onto user.
func (u AdminUserUpdate) Apply(user *AdminUser) {
	if u.FullName != nil {
		user.FullName = *u.FullName
	}
	if u.Role != nil {
		user.Role = *u.Role
	}
	if u.IsActive != nil {
		user.IsActive = *u.IsActive
	}
}

// UserActivity is an append-only audit row.
type UserActivity struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id,omitempty"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type,omitempty"`
	ResourceID   *int64    `json:"resource_id,omitempty"`
	Details      string    `json:"details,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
