package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleStats returns the aggregate dashboard stats.
func (s *Server) handleStats(c *gin.Context) {
	res, err := s.reader.Stats(c.Request.Context())
	if err != nil {
		s.respondMasked(c, http.StatusInternalServerError, "failed to compute stats", err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"data": res.Data, "fallback": res.FromFallback})
}

// handleOverview returns stats and the latest monthly snapshot read together.
func (s *Server) handleOverview(c *gin.Context) {
	overview, err := s.reader.Overview(c.Request.Context())
	if err != nil {
		s.respondMasked(c, http.StatusInternalServerError, "failed to load overview", err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"data": overview})
}
