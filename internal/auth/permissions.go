package auth

import (
	"context"

	"tenx/internal/models"
)

// Permission names an admin capability.
type Permission string

const (
	ViewProjects      Permission = "view_projects"
	EditProjects      Permission = "edit_projects"
	ViewMetrics       Permission = "view_metrics"
	EditMetrics       Permission = "edit_metrics"
	ViewGlobalMetrics Permission = "view_global_metrics"
	ManageUsers       Permission = "manage_users"
	EditGlobalMetrics Permission = "edit_global_metrics"
	SystemSettings    Permission = "system_settings"
)

// adminPermissions is the fixed grant for the admin role. super_admin holds
// every permission.
var adminPermissions = map[Permission]struct{}{
	ViewProjects:      {},
	EditProjects:      {},
	ViewMetrics:       {},
	EditMetrics:       {},
	ViewGlobalMetrics: {},
}

// HasPermission reports whether role grants perm.
func HasPermission(role string, perm Permission) bool {
	switch role {
	case models.RoleSuperAdmin:
		return true
	case models.RoleAdmin:
		_, ok := adminPermissions[perm]
		return ok
	}
	return false
}

// Principal is the authenticated caller of an admin request.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

// Require is the guard every admin operation calls first.
func Require(p *Principal, perm Permission) error {
	if p == nil || p.UserID == "" {
		return ErrUnauthenticated
	}
	if !HasPermission(p.Role, perm) {
		return ErrForbidden
	}
	return nil
}

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the principal stored by WithPrincipal, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok && p != nil
}
