package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"hospital-portal/api/handlers"

	"github.com/go-chi/chi/v5"
)

// pages maps the browser entry points to files under static_dir.
var pages = map[string]string{
	"/":                "index.html",
	"/admin":           "admin.html",
	"/incident-report": "incident-report.html",
	"/incident-list":   "incident-list.html",
}

func (s *Server) registerSystemRoutes(r chi.Router, h routeHandlers) {
	r.MethodFunc("GET", "/healthz", h.health.Health)
	if s.metrics != nil {
		r.Method("GET", "/metrics", s.metrics.Handler())
	}
	for route, file := range pages {
		r.MethodFunc("GET", route, s.servePage(file))
	}
	r.NotFound(s.notFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})
}

func (s *Server) servePage(file string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		full, ok := s.staticFile(file)
		if !ok {
			s.notFound(w, r)
			return
		}
		http.ServeFile(w, r, full)
	}
}

// notFound serves assets from static_dir for non-API GETs and answers
// everything else with a JSON 404.
func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet && !strings.HasPrefix(r.URL.Path, "/api/") {
		if full, ok := s.staticFile(r.URL.Path); ok {
			http.ServeFile(w, r, full)
			return
		}
	}
	handlers.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

func (s *Server) staticFile(name string) (string, bool) {
	dir := strings.TrimSpace(s.cfg.StaticDir)
	if dir == "" {
		return "", false
	}
	clean := strings.TrimPrefix(path.Clean("/"+name), "/")
	if clean == "" {
		return "", false
	}
	full := filepath.Join(dir, filepath.FromSlash(clean))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", false
	}
	return full, true
}
