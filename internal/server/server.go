package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tenx/internal/auth"
	"tenx/internal/data"
	"tenx/internal/models"
	"tenx/internal/storage"
)

const msgInvalidData = "Invalid data format"

// Store is everything the HTTP layer needs from persistence.
type Store interface {
	data.Store

	CreateProject(ctx context.Context, p models.Project) (models.Project, error)
	UpdateProject(ctx context.Context, id int64, p models.Project) (models.Project, error)
	DeleteProject(ctx context.Context, id int64) error

	ListProjectMetrics(ctx context.Context, projectID int64) ([]models.ProjectMetric, error)
	CreateProjectMetric(ctx context.Context, m models.ProjectMetric) (models.ProjectMetric, error)
	UpsertGlobalMetric(ctx context.Context, m models.GlobalMetric) (models.GlobalMetric, error)

	GetAdminUser(ctx context.Context, id string) (models.AdminUser, error)
	GetAdminUserByEmail(ctx context.Context, email string) (models.AdminUser, error)
	ListAdminUsers(ctx context.Context) ([]models.AdminUser, error)
	CreateAdminUser(ctx context.Context, u models.AdminUser) (models.AdminUser, error)
	UpdateAdminUser(ctx context.Context, u models.AdminUser) (models.AdminUser, error)
	TouchLastLogin(ctx context.Context, id string) error

	LogActivity(ctx context.Context, a models.UserActivity) (models.UserActivity, error)
	ListActivity(ctx context.Context, limit int) ([]models.UserActivity, error)
}

// Options carries the HTTP-facing settings.
type Options struct {
	StaticDir     string
	CORSOrigins   []string
	AnonKey       string
	SecureCookies bool
	AllowFallback bool
}

// Server provides HTTP handlers for the 10x experiment backend.
type Server struct {
	engine *gin.Engine
	store  Store
	reader *data.Reader
	auth   *auth.Manager
	logger *slog.Logger
	opts   Options
}

// New constructs the HTTP server with routes and middleware configured.
func New(store Store, authn *auth.Manager, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api/healthz"))
	if len(opts.CORSOrigins) > 0 {
		router.Use(newCORS(opts.CORSOrigins))
	}

	srv := &Server{
		engine: router,
		store:  store,
		reader: data.NewReader(store, logger, opts.AllowFallback),
		auth:   authn,
		logger: logger,
		opts:   opts,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	api.GET("/healthz", s.handleHealth)

	api.Use(s.requireAPIKey(), s.withSession())
	{
		public := api.Group("/public")
		{
			public.GET("/stats", s.handleStats)
			public.GET("/overview", s.handleOverview)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", s.handleListProjects)
			projects.GET("/summaries", s.handleProjectSummaries)
			projects.POST("", s.handleCreateProject)
			projects.PUT("/:id", s.handleUpdateProject)
			projects.DELETE("/:id", s.handleDeleteProject)
		}

		api.GET("/metrics", s.handleListMetrics)
		api.POST("/metrics", s.handleCreateMetric)

		api.GET("/global-metrics", s.handleListGlobalMetrics)
		api.GET("/global-metrics/latest", s.handleLatestGlobalMetric)

		admin := api.Group("/admin")
		{
			admin.POST("/login", s.handleLogin)
			admin.POST("/logout", s.handleLogout)
			admin.GET("/me", s.handleMe)
			admin.GET("/projects", s.handleAdminProjects)
			admin.PUT("/global-metrics", s.handleUpsertGlobalMetric)
			admin.GET("/users", s.handleListUsers)
			admin.POST("/users", s.handleCreateUser)
			admin.PATCH("/users/:id", s.handleUpdateUser)
			admin.GET("/activity", s.handleListActivity)
		}
	}

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID converts a path parameter to int64 with error handling.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return 0, false
	}
	return id, true
}

// respondError logs the error and returns it as a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	s.logFailure(c, status, err)
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondMasked logs the error but answers with a fixed message.
func (s *Server) respondMasked(c *gin.Context, status int, msg string, err error) {
	s.logFailure(c, status, err)
	c.JSON(status, gin.H{"error": msg})
}

func (s *Server) logFailure(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	attrs := []any{slog.String("path", c.FullPath()), slog.Int("status", status), slog.String("error", err.Error())}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		attrs = append(attrs, slog.Any("fields", verr.Fields))
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", attrs...)
		return
	}
	s.logger.Warn("request rejected", attrs...)
}

// respondInvalid answers a payload that failed binding or validation.
func (s *Server) respondInvalid(c *gin.Context, err error) {
	s.respondMasked(c, http.StatusBadRequest, msgInvalidData, err)
}

// respondStoreError maps failures of admin writes onto statuses.
func (s *Server) respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.respondError(c, http.StatusNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		s.respondError(c, http.StatusConflict, err)
	case errors.Is(err, models.ErrInvalid):
		s.respondInvalid(c, err)
	default:
		s.respondError(c, http.StatusInternalServerError, err)
	}
}

// respondSuccess writes payload with status, or only the status when payload is nil.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
