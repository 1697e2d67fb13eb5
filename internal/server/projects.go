package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tenx/internal/auth"
	"tenx/internal/models"
)

// handleListProjects returns all projects, from the snapshot when the store is down.
func (s *Server) handleListProjects(c *gin.Context) {
	res, err := s.reader.Projects(c.Request.Context())
	if err != nil {
		s.respondMasked(c, http.StatusInternalServerError, "failed to load projects", err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"projects": res.Data, "fallback": res.FromFallback})
}

// handleProjectSummaries returns id, title and domain for selection lists.
func (s *Server) handleProjectSummaries(c *gin.Context) {
	res, err := s.reader.ProjectSummaries(c.Request.Context())
	if err != nil {
		s.respondMasked(c, http.StatusInternalServerError, "failed to load projects", err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"projects": res.Data, "fallback": res.FromFallback})
}

// handleAdminProjects lists projects for the admin screens without fallback.
func (s *Server) handleAdminProjects(c *gin.Context) {
	if _, ok := s.authorize(c, auth.ViewProjects); !ok {
		return
	}
	projects, err := s.reader.StrictProjects(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"projects": projects})
}

func (s *Server) bindProject(c *gin.Context) (models.ProjectInput, bool) {
	var in models.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.respondInvalid(c, err)
		return in, false
	}
	if err := in.Validate(); err != nil {
		s.respondInvalid(c, err)
		return in, false
	}
	return in, true
}

// handleCreateProject creates a new project.
func (s *Server) handleCreateProject(c *gin.Context) {
	p, ok := s.authorize(c, auth.EditProjects)
	if !ok {
		return
	}
	in, ok := s.bindProject(c)
	if !ok {
		return
	}

	project, err := s.store.CreateProject(c.Request.Context(), in.Project(0))
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	s.recordActivity(c, p, "create_project", "project", &project.ID, project.Title)
	respondSuccess(c, http.StatusCreated, gin.H{"project": project})
}

// handleUpdateProject replaces every field of an existing project.
func (s *Server) handleUpdateProject(c *gin.Context) {
	p, ok := s.authorize(c, auth.EditProjects)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	in, ok := s.bindProject(c)
	if !ok {
		return
	}

	project, err := s.store.UpdateProject(c.Request.Context(), id, in.Project(id))
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	s.recordActivity(c, p, "update_project", "project", &id, project.Title)
	respondSuccess(c, http.StatusOK, gin.H{"project": project})
}

// handleDeleteProject removes a project and its metrics.
func (s *Server) handleDeleteProject(c *gin.Context) {
	p, ok := s.authorize(c, auth.EditProjects)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteProject(c.Request.Context(), id); err != nil {
		s.respondStoreError(c, err)
		return
	}
	s.recordActivity(c, p, "delete_project", "project", &id, "")
	respondSuccess(c, http.StatusOK, gin.H{"success": true})
}
