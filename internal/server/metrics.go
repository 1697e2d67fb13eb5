package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tenx/internal/auth"
	"tenx/internal/models"
)

// handleListMetrics returns project metrics in month order, optionally for
// one project.
func (s *Server) handleListMetrics(c *gin.Context) {
	var projectID int64
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
			return
		}
		projectID = id
	}

	metrics, err := s.store.ListProjectMetrics(c.Request.Context(), projectID)
	if err != nil {
		s.respondMasked(c, http.StatusInternalServerError, "failed to load metrics", err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"metrics": metrics})
}

// handleCreateMetric appends a monthly snapshot for a project.
func (s *Server) handleCreateMetric(c *gin.Context) {
	p, ok := s.authorize(c, auth.EditMetrics)
	if !ok {
		return
	}
	var in models.ProjectMetricInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.respondInvalid(c, err)
		return
	}
	if err := in.Validate(); err != nil {
		s.respondInvalid(c, err)
		return
	}

	metric, err := s.store.CreateProjectMetric(c.Request.Context(), in.ProjectMetric())
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	s.recordActivity(c, p, "create_metric", "project", &metric.ProjectID, metric.Month)
	respondSuccess(c, http.StatusCreated, gin.H{"metric": metric})
}

// handleListGlobalMetrics returns the monthly snapshots, newest first.
func (s *Server) handleListGlobalMetrics(c *gin.Context) {
	res, err := s.reader.GlobalMetrics(c.Request.Context())
	if err != nil {
		s.respondMasked(c, http.StatusInternalServerError, "failed to load metrics", err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"metrics": res.Data, "fallback": res.FromFallback})
}

// handleLatestGlobalMetric returns the newest snapshot or null.
func (s *Server) handleLatestGlobalMetric(c *gin.Context) {
	res, err := s.reader.LatestGlobalMetric(c.Request.Context())
	if err != nil {
		s.respondMasked(c, http.StatusInternalServerError, "failed to load metrics", err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"metric": res.Data, "fallback": res.FromFallback})
}

// handleUpsertGlobalMetric writes the snapshot for a month, replacing any
// existing one.
func (s *Server) handleUpsertGlobalMetric(c *gin.Context) {
	p, ok := s.authorize(c, auth.EditGlobalMetrics)
	if !ok {
		return
	}
	var in models.GlobalMetricInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.respondInvalid(c, err)
		return
	}
	if err := in.Validate(); err != nil {
		s.respondInvalid(c, err)
		return
	}

	metric, err := s.store.UpsertGlobalMetric(c.Request.Context(), in.GlobalMetric())
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	s.recordActivity(c, p, "upsert_global_metric", "global_metric", &metric.ID, metric.Month)
	respondSuccess(c, http.StatusOK, gin.H{"metric": metric})
}
