package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tenx/internal/auth"
	"tenx/internal/models"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

var errSelfLockout = errors.New("cannot change own role or deactivate own account")

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// handleLogin verifies credentials and sets the session cookie.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondInvalid(c, err)
		return
	}

	user, err := s.auth.Authenticate(c.Request.Context(), s.store, req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.respondMasked(c, http.StatusUnauthorized, "Invalid credentials", err)
		return
	}
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}

	token, err := s.auth.IssueSession(user)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := s.store.TouchLastLogin(c.Request.Context(), user.ID); err != nil {
		s.logger.Warn("update last login failed", "user", user.ID, "error", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(s.auth.TTL().Seconds()), "/", "", s.opts.SecureCookies, true)
	s.recordActivity(c, &auth.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}, "login", "admin_user", nil, user.Email)
	respondSuccess(c, http.StatusOK, gin.H{"success": true, "role": user.Role})
}

// handleLogout clears the session cookie.
func (s *Server) handleLogout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", s.opts.SecureCookies, true)
	respondSuccess(c, http.StatusOK, gin.H{"success": true})
}

// handleMe returns the signed-in account.
func (s *Server) handleMe(c *gin.Context) {
	p, ok := auth.PrincipalFromContext(c.Request.Context())
	if !ok {
		s.respondError(c, http.StatusUnauthorized, auth.ErrUnauthenticated)
		return
	}
	if p.UserID == auth.ServiceUserID {
		respondSuccess(c, http.StatusOK, gin.H{"user": models.AdminUser{ID: p.UserID, Role: p.Role, IsActive: true}})
		return
	}
	user, err := s.store.GetAdminUser(c.Request.Context(), p.UserID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"user": user})
}

// handleListUsers lists every admin account.
func (s *Server) handleListUsers(c *gin.Context) {
	if _, ok := s.authorize(c, auth.ManageUsers); !ok {
		return
	}
	users, err := s.store.ListAdminUsers(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"users": users})
}

// handleCreateUser adds an active admin account.
func (s *Server) handleCreateUser(c *gin.Context) {
	p, ok := s.authorize(c, auth.ManageUsers)
	if !ok {
		return
	}
	var in models.AdminUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.respondInvalid(c, err)
		return
	}
	if err := in.Validate(); err != nil {
		s.respondInvalid(c, err)
		return
	}

	hash, err := s.auth.HashPassword(in.Password)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	user, err := s.store.CreateAdminUser(c.Request.Context(), models.AdminUser{
		Email:        in.Email,
		FullName:     in.FullName,
		Role:         in.Role,
		IsActive:     true,
		PasswordHash: hash,
	})
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	s.recordActivity(c, p, "create_user", "admin_user", nil, user.Email)
	respondSuccess(c, http.StatusCreated, gin.H{"user": user})
}

// handleUpdateUser changes name, role or active flag of an account.
func (s *Server) handleUpdateUser(c *gin.Context) {
	p, ok := s.authorize(c, auth.ManageUsers)
	if !ok {
		return
	}
	var in models.AdminUserUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		s.respondInvalid(c, err)
		return
	}
	if err := in.Validate(); err != nil {
		s.respondInvalid(c, err)
		return
	}

	id := c.Param("id")
	user, err := s.store.GetAdminUser(c.Request.Context(), id)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	before := user
	in.Apply(&user)
	if id == p.UserID && (user.Role != before.Role || !user.IsActive) {
		s.respondError(c, http.StatusBadRequest, errSelfLockout)
		return
	}

	user, err = s.store.UpdateAdminUser(c.Request.Context(), user)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	s.recordActivity(c, p, "update_user", "admin_user", nil, user.Email)
	respondSuccess(c, http.StatusOK, gin.H{"user": user})
}

// handleListActivity returns the most recent audit rows.
func (s *Server) handleListActivity(c *gin.Context) {
	if _, ok := s.authorize(c, auth.ViewProjects); !ok {
		return
	}
	limit := defaultActivityLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = min(n, maxActivityLimit)
	}

	activity, err := s.store.ListActivity(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"activity": activity})
}
