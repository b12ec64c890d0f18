// Package server exposes generated fleets over HTTP. Each viewer opens a
// session, which generates once, and then reads projections of that fleet.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kamal-hamza/gridrisk/internal/core/ports"
	"github.com/kamal-hamza/gridrisk/internal/core/services"
	"github.com/kamal-hamza/gridrisk/internal/metrics"
	"github.com/kamal-hamza/gridrisk/pkg/logging"
	"go.uber.org/zap"
)

// Config holds the dependencies and settings of a Server
type Config struct {
	Addr         string
	Sessions     *services.SessionService
	Renderer     ports.ReportRenderer
	Metrics      *metrics.Registry
	Logger       *zap.Logger
	DefaultCount int           // Used when a session request omits count
	SessionTTL   time.Duration // Zero disables expiry
	Version      string
}

// Server is the HTTP API server
type Server struct {
	addr         string
	sessions     *services.SessionService
	renderer     ports.ReportRenderer
	metrics      *metrics.Registry
	logger       *zap.Logger
	defaultCount int
	ttl          time.Duration
	version      string
	startTime    time.Time
	handler      http.Handler
}

// New creates a server. Sessions and Renderer are required.
func New(cfg Config) (*Server, error) {
	if cfg.Sessions == nil {
		return nil, errors.New("server requires a session service")
	}
	if cfg.Renderer == nil {
		return nil, errors.New("server requires a report renderer")
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.DefaultRegistry()
	}
	if cfg.DefaultCount <= 0 {
		cfg.DefaultCount = 150
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	s := &Server{
		addr:         cfg.Addr,
		sessions:     cfg.Sessions,
		renderer:     cfg.Renderer,
		metrics:      cfg.Metrics,
		logger:       logging.OrNop(cfg.Logger),
		defaultCount: cfg.DefaultCount,
		ttl:          cfg.SessionTTL,
		version:      cfg.Version,
		startTime:    time.Now(),
	}
	s.handler = s.instrument(s.routes())
	return s, nil
}

// Handler returns the instrumented router
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	// Sessions
	mux.HandleFunc("POST /api/sessions", s.handleOpenSession)
	mux.HandleFunc("GET /api/sessions", s.handleListSessions)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleCloseSession)

	// Projections of a session's fleet
	mux.HandleFunc("GET /api/sessions/{id}/assets", s.handleAssets)
	mux.HandleFunc("GET /api/sessions/{id}/assets/{assetID}", s.handleAsset)
	mux.HandleFunc("GET /api/sessions/{id}/summary", s.handleSummary)
	mux.HandleFunc("GET /api/sessions/{id}/report", s.handleReport)

	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go s.runJanitor(janitorCtx, janitorInterval(s.ttl))

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting http server", zap.String("addr", s.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// runJanitor expires old sessions every interval until ctx ends
func (s *Server) runJanitor(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Expire(ctx, s.ttl); n > 0 {
				s.logger.Info("expired sessions", zap.Int("count", n))
			}
		}
	}
}

// janitorInterval sweeps four times per ttl, at least once a second
func janitorInterval(ttl time.Duration) time.Duration {
	interval := ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}
