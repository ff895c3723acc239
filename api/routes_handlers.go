package api

import (
	"net/http"

	"hospital-portal/api/handlers"
	"hospital-portal/api/routegroups"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type routeHandlers struct {
	faqs      *handlers.FAQsHandler
	incidents *handlers.IncidentsHandler
	health    *handlers.HealthHandler
}

func (s *Server) newRouteHandlers() routeHandlers {
	h := routeHandlers{
		faqs:      handlers.NewFAQsHandler(s.faqs, s.logger),
		incidents: handlers.NewIncidentsHandler(s.reports, s.logger),
	}
	if s.db != nil {
		h.health = handlers.NewHealthHandler(s.db)
	} else {
		h.health = handlers.NewHealthHandler(nil)
	}
	return h
}

func (s *Server) routes() chi.Router {
	h := s.newRouteHandlers()
	r := chi.NewRouter()
	r.Use(s.requestIDMiddleware)
	r.Use(s.accessLogMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.HTTP.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", handlers.RequestIDHeader},
		ExposedHeaders: []string{handlers.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(s.bodyLimitMiddleware)

	r.Route("/api", func(apiRouter chi.Router) {
		routegroups.RegisterFAQs(apiRouter, h.faqs)
		routegroups.RegisterIncidents(apiRouter, h.incidents)
	})
	s.registerSystemRoutes(r, h)
	return r
}
