package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// mountStatic serves the built frontend and falls back to index.html for
// client-side routes. Unknown /api paths always answer with JSON.
func (s *Server) mountStatic() {
	indexPath := s.frontendIndex()

	s.engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || indexPath == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
			return
		}
		if file, ok := s.staticFile(c.Request.URL.Path); ok {
			c.File(file)
			return
		}
		c.File(indexPath)
	})
}

// frontendIndex returns the index.html path, or "" in API-only mode.
func (s *Server) frontendIndex() string {
	dir := s.opts.StaticDir
	if dir == "" {
		s.logger.Warn("static directory not configured; API only mode")
		return ""
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		s.logger.Warn("static directory missing", "path", dir, "error", err)
		return ""
	}
	indexPath := filepath.Join(dir, "index.html")
	if _, err := os.Stat(indexPath); err != nil {
		s.logger.Warn("index.html not found", "path", indexPath, "error", err)
		return ""
	}
	return indexPath
}

// staticFile maps a request path onto a regular file inside the static
// directory. Paths escaping the directory never match.
func (s *Server) staticFile(urlPath string) (string, bool) {
	clean := filepath.Clean("/" + urlPath)
	if clean == "/" {
		return "", false
	}
	full := filepath.Join(s.opts.StaticDir, filepath.FromSlash(clean))
	rel, err := filepath.Rel(s.opts.StaticDir, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", false
	}
	return full, true
}
