package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// shutdownTimeout bounds graceful shutdown after the context ends.
const shutdownTimeout = 5 * time.Second

// Server serves the rendered portfolio, device previews and a small JSON API.
type Server struct {
	ports  *Ports
	router *mux.Router
}

// NewServer creates a preview server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if ports == nil {
		return nil, ErrMissingBuilderService
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if !ports.DefaultDevice.IsValid() {
		ports.DefaultDevice = domain.DeviceDesktop
	}

	s := &Server{ports: ports}
	s.router = s.buildRouter()
	return s, nil
}

// buildRouter wires HTTP routes to handlers.
func (s *Server) buildRouter() *mux.Router {
	root := mux.NewRouter()

	root.HandleFunc("/", s.handlePortfolio).Methods(http.MethodGet)
	root.HandleFunc("/portfolio.html", s.handlePortfolio).Methods(http.MethodGet)
	root.HandleFunc("/preview", s.handlePreview).Methods(http.MethodGet)
	root.HandleFunc("/preview/{device}", s.handlePreview).Methods(http.MethodGet)

	// Registered on root so a method mismatch answers 405.
	root.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	root.HandleFunc("/api/portfolio", s.handleExportJSON).Methods(http.MethodGet)
	root.HandleFunc("/api/history", s.handleHistory).Methods(http.MethodGet)
	root.HandleFunc("/api/sections", s.handleSections).Methods(http.MethodGet)
	root.HandleFunc("/api/dispatch/{action}", s.handleDispatch).Methods(http.MethodPost)

	root.Use(logRequests)
	return root
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("preview server listening on http://%s", ln.Addr())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down preview server: %w", err)
		}
		logger.Debug("preview server stopped")
		return nil
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return fmt.Errorf("preview server: %w", err)
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("%s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Microsecond))
	})
}
