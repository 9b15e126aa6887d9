// Package server exposes the health and processing status of a running adapter over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/iudanet/matchsync/internal/server/handlers"
	"github.com/iudanet/matchsync/internal/server/middleware"
)

const (
	healthPath = "/api/v1/health"
	statusPath = "/api/v1/status"

	shutdownTimeout = 5 * time.Second
)

// Server is the status HTTP server
type Server struct {
	http   *http.Server
	logger *slog.Logger
}

// New собирает роутер. health-запросы не логируются, их опрашивают часто.
func New(addr string, health *handlers.HealthHandler, status *handlers.StatusHandler, logger *slog.Logger) *Server {
	r := mux.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger, healthPath))

	r.HandleFunc(healthPath, health.Health).Methods(http.MethodGet)
	r.HandleFunc(statusPath, status.Status).Methods(http.MethodGet)

	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Handler returns the router, used by tests
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run слушает addr до отмены ctx и затем корректно останавливается
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает уже открытый listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Status server listening", slog.String("addr", ln.Addr().String()))
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("status server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown status server: %w", err)
	}
	s.logger.Info("Status server stopped")
	return nil
}
