// Package metrics provides Prometheus metrics for boostd.
// Counters, gauges, and histograms for hint admission, drops, and windows.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Hint Windows ───────────────────────────────────────────────────────────

// HintsIssued tracks admitted hint windows by workload and kind.
var HintsIssued = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "boostd",
	Name:      "hints_issued_total",
	Help:      "Total admitted hint windows.",
}, []string{"workload", "kind"})

// HintsDropped tracks dropped requests by reason.
// Reasons: sink_unavailable, active, cooldown, unknown_workload.
var HintsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "boostd",
	Name:      "hints_dropped_total",
	Help:      "Total dropped boost requests by reason.",
}, []string{"reason"})

// BoostActive is 1 while a hint window is open, 0 when idle.
var BoostActive = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "boostd",
	Name:      "boost_active",
	Help:      "Whether a boost/mode window is currently open (1=active).",
})

// WindowDuration tracks admitted window lengths in seconds.
var WindowDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "boostd",
	Name:      "window_duration_seconds",
	Help:      "Admitted hint window duration in seconds.",
	Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300, 600},
})

// ─── Sink ───────────────────────────────────────────────────────────────────

// SinkErrors tracks hint sink call failures by operation.
var SinkErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "boostd",
	Name:      "sink_errors_total",
	Help:      "Total hint sink call failures.",
}, []string{"op"})

// SinkReacquired tracks lazy sink re-acquisition attempts and outcomes.
var SinkReacquired = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "boostd",
	Name:      "sink_reacquired_total",
	Help:      "Lazy sink re-acquisition attempts by outcome.",
}, []string{"outcome"})

// ─── Game Registry ──────────────────────────────────────────────────────────

// GameListSize tracks the number of registered game packages.
var GameListSize = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "boostd",
	Name:      "gamelist_size",
	Help:      "Number of packages on the game list.",
})

// ─── Health ─────────────────────────────────────────────────────────────────

// HealthCheckStatus tracks health check results (1=healthy, 0=unhealthy).
var HealthCheckStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "boostd",
	Name:      "health_check_status",
	Help:      "Health check result per component (1=healthy, 0=unhealthy).",
}, []string{"check"})
