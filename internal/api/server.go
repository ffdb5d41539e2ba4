// Package api provides the HTTP server for boostd: boost intake, scheduler
// status, policy inspection, the game package registry, and hint history.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/perfkit/boostd/internal/app/boost"
	"github.com/perfkit/boostd/internal/app/gamelist"
	"github.com/perfkit/boostd/internal/app/policy"
	"github.com/perfkit/boostd/internal/domain"
	"github.com/perfkit/boostd/internal/health"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the boostd HTTP API server.
type Server struct {
	sched          *boost.Scheduler
	policy         *policy.Table
	games          *gamelist.Registry
	store          domain.HintStore // nil disables /api/history
	health         *health.Checker
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(sched *boost.Scheduler, table *policy.Table, games *gamelist.Registry, store domain.HintStore, checker *health.Checker) *Server {
	return &Server{
		sched:  sched,
		policy: table,
		games:  games,
		store:  store,
		health: checker,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/boost", s.handleBoost)
		r.Get("/status", s.handleStatus)
		r.Get("/policy", s.handlePolicy)
		r.Get("/history", s.handleHistory)

		r.Route("/games", func(r chi.Router) {
			r.Get("/", s.handleListGames)
			r.Post("/", s.handleAddGame)
			r.Get("/{package}", s.handleCheckGame)
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": "0.1.0",
		})
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}
