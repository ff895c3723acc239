package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"hospital-portal/api/handlers"
	"hospital-portal/config"
	"hospital-portal/core/metrics"
	"hospital-portal/core/utils"

	"github.com/go-chi/chi/v5"
)

// BackgroundWorker is anything the server starts alongside the listener
// and stops once the listener has drained.
type BackgroundWorker interface {
	StartWithContext(ctx context.Context)
	StopWithContext(ctx context.Context) error
}

type ServerDeps struct {
	DB        *sql.DB
	FAQs      handlers.FAQService
	Incidents handlers.IncidentService
	Metrics   *metrics.Metrics
	Workers   []BackgroundWorker
}

type Server struct {
	cfg     *config.AppConfig
	db      *sql.DB
	faqs    handlers.FAQService
	reports handlers.IncidentService
	metrics *metrics.Metrics
	workers []BackgroundWorker
	logger  *utils.Logger
	router  chi.Router
}

func NewServer(cfg *config.AppConfig, deps ServerDeps, logger *utils.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		db:      deps.DB,
		faqs:    deps.FAQs,
		reports: deps.Incidents,
		metrics: deps.Metrics,
		workers: deps.Workers,
		logger:  logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests within
// the configured shutdown timeout and stops the background workers.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.router,
		ReadTimeout:       s.cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: s.cfg.HTTP.ReadTimeout,
		WriteTimeout:      s.cfg.HTTP.WriteTimeout,
	}
	for _, w := range s.workers {
		w.StartWithContext(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on %s", s.cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	timeout := s.cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}
	for _, w := range s.workers {
		if err := w.StopWithContext(shutdownCtx); err != nil {
			s.logger.Errorf("stop worker: %v", err)
		}
	}
	return runErr
}
