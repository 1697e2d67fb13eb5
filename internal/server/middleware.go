package server

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tenx/internal/auth"
	"tenx/internal/models"
)

// SessionCookie holds the signed session token of a browser admin.
const SessionCookie = "tenx_session"

// newCORS allows credentialed requests from the configured origins. "*"
// echoes any origin back, since browsers refuse a literal wildcard with
// credentials.
func newCORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "apikey"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// requireAPIKey gates the API on the public key when one is configured. The
// service-role key is accepted too.
func (s *Server) requireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.opts.AnonKey == "" {
			c.Next()
			return
		}
		key := c.GetHeader("apikey")
		if subtle.ConstantTimeCompare([]byte(key), []byte(s.opts.AnonKey)) == 1 || s.auth.IsServiceKey(key) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
	}
}

// withSession resolves the caller, if any, and stores the principal in the
// request context. Requests without valid credentials continue anonymously.
func (s *Server) withSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := s.resolvePrincipal(c)
		if err != nil {
			s.logger.Debug("session rejected", "path", c.FullPath(), "error", err)
		}
		if p != nil {
			c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), p))
		}
		c.Next()
	}
}

func (s *Server) resolvePrincipal(c *gin.Context) (*auth.Principal, error) {
	token, ok := auth.TokenFromRequest(c.Request)
	if !ok {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie == "" {
			return nil, nil
		}
		token = cookie
	}

	if s.auth.IsServiceKey(token) {
		return &auth.Principal{UserID: auth.ServiceUserID, Role: models.RoleSuperAdmin}, nil
	}

	claims, err := s.auth.ParseSession(token)
	if err != nil {
		return nil, err
	}
	// Role and active flag come from the store so revocation applies at once.
	user, err := s.store.GetAdminUser(c.Request.Context(), claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrUnauthenticated, err)
	}
	if !user.IsActive {
		return nil, auth.ErrInactive
	}
	return &auth.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// authorize applies the permission guard and writes 401 or 403 on failure.
func (s *Server) authorize(c *gin.Context, perm auth.Permission) (*auth.Principal, bool) {
	p, _ := auth.PrincipalFromContext(c.Request.Context())
	if err := auth.Require(p, perm); err != nil {
		status := http.StatusForbidden
		if errors.Is(err, auth.ErrUnauthenticated) {
			status = http.StatusUnauthorized
		}
		s.respondError(c, status, err)
		return nil, false
	}
	return p, true
}

// recordActivity appends an audit row. Failures are logged only.
func (s *Server) recordActivity(c *gin.Context, p *auth.Principal, action, resourceType string, resourceID *int64, details string) {
	entry := models.UserActivity{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      strings.TrimSpace(details),
	}
	if p != nil {
		entry.UserID = p.UserID
	}
	if _, err := s.store.LogActivity(c.Request.Context(), entry); err != nil {
		s.logger.Error("record activity failed", "action", action, "error", err)
	}
}
