package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"loomii/internal/logging"
)

// Server runs the HTTP listener with graceful shutdown.
type Server struct {
	httpServer *http.Server
}

// New builds the server on the given address.
func New(addr string, h *Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(h),
			ReadHeaderTimeout: 10 * time.Second,
			// No WriteTimeout: chat responses stream for as long as the
			// completion takes.
		},
	}
}

// Start serves until the listener fails. Blocks.
func (s *Server) Start() error {
	logging.Server("listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests, including open streams, within ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Server("shutting down")
	return s.httpServer.Shutdown(ctx)
}
