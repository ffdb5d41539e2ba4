package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/perfkit/boostd/internal/domain"
)

// boostRequest is the intake format for classified workload events.
type boostRequest struct {
	Workload   string `json:"workload"`
	DurationMs *int   `json:"duration_ms,omitempty"`
}

// handleBoost accepts a classified workload event. Admission is never
// observable to the caller: unknown workloads, an open window, or a missing
// sink all still answer 202. Only a malformed body is an HTTP error.
func (s *Server) handleBoost(w http.ResponseWriter, r *http.Request) {
	var req boostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.ErrBadRequest.Error())
		return
	}

	if workload, ok := domain.ParseWorkload(req.Workload); ok {
		if req.DurationMs != nil {
			s.sched.RequestFor(workload, *req.DurationMs)
		} else {
			s.sched.Request(workload)
		}
	}
	// Unknown workloads fall through: accepted and silently dropped.

	writeJSON(w, http.StatusAccepted, map[string]bool{"queued": true})
}

// handleStatus returns the scheduler snapshot.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sched.Snapshot())
}

// handlePolicy returns the full workload policy table.
func (s *Server) handlePolicy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.policy.Specs())
}

const maxHistoryLimit = 1000

// handleHistory returns recent hint windows, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, []domain.HintWindow{})
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = min(n, maxHistoryLimit)
		}
	}

	windows, err := s.store.ListWindows(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if windows == nil {
		windows = []domain.HintWindow{}
	}
	writeJSON(w, http.StatusOK, windows)
}

// handleHealth reports the latest health check results.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	if s.health != nil && !s.health.Healthy() {
		status = http.StatusServiceUnavailable
	}
	body := map[string]interface{}{"status": "ok"}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	if s.health != nil {
		body["checks"] = s.health.Statuses()
	}
	writeJSON(w, status, body)
}

// ─── Game package registry ──────────────────────────────────────────────────

type gameRequest struct {
	Package string `json:"package"`
}

func (s *Server) handleAddGame(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Package == "" {
		writeError(w, http.StatusBadRequest, domain.ErrBadRequest.Error())
		return
	}
	s.games.Add(req.Package)
	writeJSON(w, http.StatusOK, map[string]bool{"added": true})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.games.List())
}

func (s *Server) handleCheckGame(w http.ResponseWriter, r *http.Request) {
	pkg := chi.URLParam(r, "package")
	writeJSON(w, http.StatusOK, map[string]bool{"game": s.games.Contains(pkg)})
}
