// Package auth verifies admin credentials, issues session tokens and guards
// admin operations by permission.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"tenx/internal/models"
	"tenx/internal/storage"
)

var (
	// ErrInvalidCredentials covers unknown email, wrong password and
	// inactive accounts alike so callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated means no valid session accompanied the request.
	ErrUnauthenticated = errors.New("unauthorized")
	// ErrForbidden means the session is valid but lacks the permission.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrInactive means the account exists but may not sign in.
	ErrInactive = errors.New("account inactive")
)

// ServiceUserID identifies requests made with the service-role key.
const ServiceUserID = "service-role"

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Manager hashes passwords and signs session tokens.
type Manager struct {
	secret     []byte
	serviceKey string
	ttl        time.Duration
	now        func() time.Time
}

// NewManager builds a Manager. serviceKey may be empty to disable
// service-role authentication.
func NewManager(secret, serviceKey string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), serviceKey: serviceKey, ttl: ttl, now: time.Now}
}

// TTL is the lifetime of issued sessions.
func (m *Manager) TTL() time.Duration { return m.ttl }

// HashPassword returns the bcrypt hash of password. Passwords longer than
// models.MaxPasswordBytes are rejected as invalid input.
func (m *Manager) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", &models.ValidationError{Fields: []string{"Password:max"}}
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword reports whether password matches hash; nil means it does.
func (m *Manager) ComparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// IssueSession signs a session token for user.
func (m *Manager) IssueSession(user models.AdminUser) (string, error) {
	now := m.now()
	claims := SessionClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseSession verifies a session token and returns its claims.
func (m *Manager) ParseSession(tokenString string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

// IsServiceKey reports whether token is the configured service-role key.
func (m *Manager) IsServiceKey(token string) bool {
	if m.serviceKey == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(m.serviceKey)) == 1
}

// UserLookup is the slice of the store needed to authenticate.
type UserLookup interface {
	GetAdminUserByEmail(ctx context.Context, email string) (models.AdminUser, error)
}

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// burnCompare spends a bcrypt comparison so unknown emails cost the same as
// wrong passwords.
func burnCompare(password string) {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("tenx-unknown-user"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// Authenticate checks email and password against the store. Only active
// accounts may sign in.
func (m *Manager) Authenticate(ctx context.Context, users UserLookup, email, password string) (models.AdminUser, error) {
	user, err := users.GetAdminUserByEmail(ctx, models.NormalizeEmail(email))
	if errors.Is(err, storage.ErrNotFound) {
		burnCompare(password)
		return models.AdminUser{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.AdminUser{}, fmt.Errorf("lookup admin user: %w", err)
	}
	if err := m.ComparePassword(user.PasswordHash, password); err != nil {
		return models.AdminUser{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return models.AdminUser{}, ErrInvalidCredentials
	}
	return user, nil
}

// TokenFromRequest extracts a bearer token from the Authorization header.
func TokenFromRequest(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
