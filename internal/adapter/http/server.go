package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/dial112-incident-feed/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// refreshTimeout bounds a manual refresh: primary and fallback fetches plus
// geocoding and publishing.
const refreshTimeout = 2 * time.Minute

// Feed is the incident state the API reads from and refreshes.
type Feed interface {
	sharedobs.ReadinessChecker
	Snapshot() *domain.Snapshot
	Refresh(ctx context.Context) (*domain.Snapshot, error)
}

// Server exposes the incident API plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	feed       Feed
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and the
// /api routes.
func NewServer(addr string, feed Feed, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: refreshTimeout + 10*time.Second,
			IdleTimeout:  60 * time.Second,
		},
		feed:   feed,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(feed))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/incidents", s.handleIncidents)
	mux.HandleFunc("GET /api/summary/districts", s.handleDistrictSummary)
	mux.HandleFunc("GET /api/summary/crime-types", s.handleCrimeTypeSummary)
	mux.HandleFunc("GET /api/bounds", s.handleBounds)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type errorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	Retryable bool   `json:"retryable"`
}
