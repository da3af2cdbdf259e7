// Package http exposes the research engine over HTTP.
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/turtacn/LegalSpend-Research/internal/config"
	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
)

// Server wraps an http.Server with the configured timeouts.
type Server struct {
	srv     *http.Server
	handler http.Handler
	cfg     config.ServerConfig
	logger  logging.Logger
}

// NewServer creates a Server listening on cfg.Port.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Server{
		handler: handler,
		cfg:     cfg,
		logger:  logger.Named("http"),
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
	}
}

// Start listens on the configured address and blocks until the server stops.
// A graceful Stop is not reported as an error.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until the server stops.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("HTTP server listening", logging.String("addr", ln.Addr().String()))
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Stop drains in-flight requests, waiting at most the configured shutdown
// timeout.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Run serves until ctx is cancelled, then stops the server.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	if err := s.Stop(context.Background()); err != nil {
		return err
	}
	return <-errCh
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}
