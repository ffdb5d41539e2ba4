// Package boost implements the single-flight, time-decaying performance
// hint scheduler.
//
// Core concepts:
//   - Single-flight admission: at most one boost/mode window open at a time,
//     regardless of workload identity. No queueing, no extension.
//   - Cool-down gate: a second, time-based admission check against the last
//     issuance. Near-redundant with the active flag, but the two can diverge
//     if the revert timer fires late — both are kept.
//   - Deferred revert: a one-shot timer closes the window; MODE hints get an
//     explicit disable, BOOST hints self-expire in hardware.
//
// Requesting a boost is fire-and-forget: every failure mode (sink absent,
// unknown workload, window already open) degrades to a silent no-op.
package boost

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/perfkit/boostd/internal/app/policy"
	"github.com/perfkit/boostd/internal/domain"
	"github.com/perfkit/boostd/internal/infra/metrics"
)

// Config configures the scheduler.
type Config struct {
	Debug bool // log dropped requests at debug level
}

// Scheduler is the stateful engine. A single instance is owned by the
// daemon; all state transitions serialize on its mutex, including the
// deferred revert, so the check-then-set admission sequence is race-free.
type Scheduler struct {
	mu      sync.Mutex
	table   *policy.Table
	acquire domain.SinkProvider
	clock   Clock
	store   domain.HintStore // optional, nil disables history
	debug   bool

	sink domain.HintSink // lazily (re)acquired

	// Window state. active is true iff an admitted window's revert has
	// not yet fired.
	active     bool
	hasIssued  bool
	issuedAt   time.Time
	durationMs int
	windowID   string
	timer      Timer

	totalIssued  atomic.Int64
	totalDropped atomic.Int64
}

// New creates a scheduler. The sink is acquired lazily on first use, so a
// nil result from acquire at startup is tolerated.
func New(cfg Config, table *policy.Table, acquire domain.SinkProvider, clock Clock, store domain.HintStore) *Scheduler {
	if clock == nil {
		clock = SystemClock()
	}
	return &Scheduler{
		table:   table,
		acquire: acquire,
		clock:   clock,
		store:   store,
		debug:   cfg.Debug,
	}
}

// Request admits a boost for the workload using its policy default duration.
func (s *Scheduler) Request(w domain.WorkloadType) {
	if w < 0 || w >= domain.WorkloadCount {
		s.drop("unknown_workload", w)
		return
	}
	s.RequestFor(w, s.table.Lookup(w).DurationMs)
}

// RequestFor admits a boost for the workload with a caller-supplied decay
// window. Fire-and-forget: returns immediately, never errors.
func (s *Scheduler) RequestFor(w domain.WorkloadType, durationMs int) {
	if w < 0 || w >= domain.WorkloadCount {
		s.drop("unknown_workload", w)
		return
	}
	if durationMs < 0 {
		durationMs = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-acquire only when the handle is absent. A held sink is trusted
	// until one of its calls fails; no liveness check runs on this path.
	if s.sink == nil {
		s.sink = s.acquire()
		if s.sink == nil {
			metrics.SinkReacquired.WithLabelValues("miss").Inc()
			s.drop("sink_unavailable", w)
			return
		}
		metrics.SinkReacquired.WithLabelValues("ok").Inc()
	}

	if s.active {
		s.drop("active", w)
		return
	}

	// Cool-down gate: admit at or after lastIssuedAt + lastDuration.
	now := s.clock.Now()
	if s.hasIssued {
		deadline := s.issuedAt.Add(time.Duration(s.durationMs) * time.Millisecond)
		if now.Before(deadline) {
			s.drop("cooldown", w)
			return
		}
	}

	spec := s.table.Lookup(w)
	id := uuid.NewString()

	s.active = true
	s.hasIssued = true
	s.issuedAt = now
	s.durationMs = durationMs
	s.windowID = id

	sink := s.sink
	switch spec.Kind {
	case domain.HintBoost:
		if err := sink.ApplyBoost(spec.Hint, durationMs); err != nil {
			metrics.SinkErrors.WithLabelValues("apply_boost").Inc()
			s.sink = nil // re-acquire on the next request
		}
	case domain.HintMode:
		if err := sink.SetMode(spec.Hint, true); err != nil {
			metrics.SinkErrors.WithLabelValues("set_mode").Inc()
			s.sink = nil
		}
	}

	s.totalIssued.Add(1)
	metrics.HintsIssued.WithLabelValues(w.String(), spec.Kind.String()).Inc()
	metrics.BoostActive.Set(1)
	metrics.WindowDuration.Observe(float64(durationMs) / 1000)

	if s.store != nil {
		window := domain.HintWindow{
			ID:         id,
			Workload:   w,
			Hint:       spec.Hint,
			Kind:       spec.Kind,
			DurationMs: durationMs,
			IssuedAt:   now,
		}
		if err := s.store.RecordWindow(window); err != nil {
			log.Printf("[boost] record window: %v", err)
		}
	}

	if s.debug {
		log.Printf("[boost] window %s open: workload=%s hint=%d kind=%s duration=%dms",
			id, w, spec.Hint, spec.Kind, durationMs)
	}

	s.timer = s.clock.AfterFunc(time.Duration(durationMs)*time.Millisecond, func() {
		s.revert(id, spec, sink)
	})
}

// revert closes the window opened under id. MODE hints get their explicit
// disable; BOOST hints self-expire.
func (s *Scheduler) revert(id string, spec domain.HintSpec, sink domain.HintSink) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.windowID != id {
		return // not the window this timer was armed for
	}

	if spec.Kind == domain.HintMode {
		if err := sink.SetMode(spec.Hint, false); err != nil {
			metrics.SinkErrors.WithLabelValues("set_mode").Inc()
			if s.sink == sink {
				s.sink = nil
			}
		}
	}

	s.active = false
	s.timer = nil
	metrics.BoostActive.Set(0)

	if s.store != nil {
		if err := s.store.MarkReverted(id); err != nil {
			log.Printf("[boost] mark reverted: %v", err)
		}
	}

	if s.debug {
		log.Printf("[boost] window %s reverted", id)
	}
}

func (s *Scheduler) drop(reason string, w domain.WorkloadType) {
	s.totalDropped.Add(1)
	metrics.HintsDropped.WithLabelValues(reason).Inc()
	if s.debug {
		log.Printf("[boost] dropped request: workload=%s reason=%s", w, reason)
	}
}

// ─── Inspection ─────────────────────────────────────────────────────────────

// State is a point-in-time snapshot of the scheduler.
type State struct {
	Active         bool       `json:"active"`
	WindowID       string     `json:"window_id,omitempty"`
	LastIssuedAt   *time.Time `json:"last_issued_at,omitempty"`
	LastDurationMs int        `json:"last_duration_ms"`
	TotalIssued    int64      `json:"total_issued"`
	TotalDropped   int64      `json:"total_dropped"`
	SinkAvailable  bool       `json:"sink_available"`
}

// Snapshot returns the current scheduler state.
func (s *Scheduler) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Active:         s.active,
		LastDurationMs: s.durationMs,
		TotalIssued:    s.totalIssued.Load(),
		TotalDropped:   s.totalDropped.Load(),
		SinkAvailable:  s.sink != nil && s.sink.Available(),
	}
	if s.active {
		st.WindowID = s.windowID
	}
	if s.hasIssued {
		t := s.issuedAt
		st.LastIssuedAt = &t
	}
	return st
}

// Stuck reports whether the active flag has outlived its nominal window by
// more than grace. A stuck window means the revert timer is delayed; it is
// surfaced by the health checker, never repaired here.
func (s *Scheduler) Stuck(grace time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return false
	}
	deadline := s.issuedAt.Add(time.Duration(s.durationMs)*time.Millisecond + grace)
	return s.clock.Now().After(deadline)
}
