// ABOUTME: HTTP server wiring for stashd routes and lifecycle
// ABOUTME: Maps the error taxonomy onto the wire statuses of the v1 surface

package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/stashbox/stashd/internal/auth"
	"github.com/stashbox/stashd/internal/config"
	"github.com/stashbox/stashd/internal/directory"
	"github.com/stashbox/stashd/internal/store"
)

// Server serves the stashd HTTP API.
type Server struct {
	config     *config.Config
	directory  *directory.Directory
	entries    store.EntryStore
	logger     *slog.Logger
	httpServer *http.Server
}

// New creates a Server over the given directory and entry store.
func New(cfg *config.Config, dir *directory.Directory, entries store.EntryStore, logger *slog.Logger) *Server {
	s := &Server{
		config:    cfg,
		directory: dir,
		entries:   entries,
		logger:    logger.With("component", "server"),
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// routes builds the v1 mux. The wire contract is uneven on purpose: the
// /v1/user surface rejects bad tokens with 401 (422 on GET), while /v1/kv
// rejects them with 403. Admin-gated routes reject non-admins with 401.
func (s *Server) routes() http.Handler {
	userAuth := auth.Middleware(s.directory, http.StatusUnauthorized)
	userRead := auth.Middleware(s.directory, http.StatusUnprocessableEntity)
	kvAuth := auth.Middleware(s.directory, http.StatusForbidden)
	adminOnly := auth.RequireAdmin(http.StatusUnauthorized)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.Handle("POST /v1/user", userAuth(adminOnly(http.HandlerFunc(s.handleCreateUser))))
	mux.Handle("GET /v1/user", userRead(http.HandlerFunc(s.handleReadUser)))
	mux.Handle("DELETE /v1/user", userAuth(adminOnly(http.HandlerFunc(s.handleDeleteUser))))

	mux.Handle("POST /v1/kv", kvAuth(http.HandlerFunc(s.handleCreateEntry)))
	mux.Handle("GET /v1/kv", kvAuth(http.HandlerFunc(s.handleReadEntry)))
	mux.Handle("PUT /v1/kv", kvAuth(http.HandlerFunc(s.handleUpdateEntry)))
	mux.Handle("DELETE /v1/kv", kvAuth(http.HandlerFunc(s.handleDeleteEntry)))

	return s.withRequestLogging(mux)
}

// Handler exposes the fully wired route tree. Used by tests to drive the
// server through httptest without binding a socket.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// handleHealth handles GET /health. Liveness only; no auth.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Run starts the HTTP server and blocks until the context is canceled.
// Returns nil on graceful shutdown, or an error if the server fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening on HTTP address: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		s.logger.Info("context canceled, initiating shutdown")
	case serverErr = <-errCh:
		s.logger.Error("server error", "error", serverErr)
	}

	// Fresh context for shutdown since the run context is already canceled
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	shutdownErr := s.httpServer.Shutdown(shutdownCtx)

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}
