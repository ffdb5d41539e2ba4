// Package health provides periodic health checks for boostd.
package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/perfkit/boostd/internal/app/boost"
	"github.com/perfkit/boostd/internal/infra/metrics"
	"github.com/perfkit/boostd/internal/infra/sqlite"
)

// Check defines a single health check.
type Check struct {
	Name    string
	CheckFn func(ctx context.Context) error
}

// Status represents the result of a health check.
type Status struct {
	Name      string    `json:"name"`
	Healthy   bool      `json:"healthy"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Checker runs periodic health checks.
type Checker struct {
	mu       sync.RWMutex
	checks   []Check
	statuses []Status
	interval time.Duration
}

// NewChecker creates a health checker with the standard checks: sqlite
// connectivity, hint sink reachability, and stuck-window detection. A stuck
// window — the active flag outliving its nominal deadline plus grace — is
// only reported; the revert itself is never forced.
func NewChecker(db *sqlite.DB, sched *boost.Scheduler, stuckGrace time.Duration) *Checker {
	return &Checker{
		interval: 15 * time.Second,
		checks: []Check{
			{
				Name: "sqlite",
				CheckFn: func(ctx context.Context) error {
					return db.Ping()
				},
			},
			{
				Name: "hint_sink",
				CheckFn: func(ctx context.Context) error {
					if !sched.Snapshot().SinkAvailable {
						return fmt.Errorf("hint sink not acquired")
					}
					return nil
				},
			},
			{
				Name: "stuck_window",
				CheckFn: func(ctx context.Context) error {
					if sched.Stuck(stuckGrace) {
						return fmt.Errorf("active window outlived its deadline by more than %s", stuckGrace)
					}
					return nil
				},
			},
		},
	}
}

// Run starts the health check loop. Call in a goroutine.
func (c *Checker) Run(ctx context.Context) {
	// Run immediately on start
	c.runAll(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.runAll(ctx)
		}
	}
}

func (c *Checker) runAll(ctx context.Context) {
	statuses := make([]Status, len(c.checks))
	for i, check := range c.checks {
		s := Status{
			Name:      check.Name,
			CheckedAt: time.Now(),
		}
		if err := check.CheckFn(ctx); err != nil {
			s.Error = err.Error()
			metrics.HealthCheckStatus.WithLabelValues(check.Name).Set(0)
		} else {
			s.Healthy = true
			metrics.HealthCheckStatus.WithLabelValues(check.Name).Set(1)
		}
		statuses[i] = s
	}

	c.mu.Lock()
	c.statuses = statuses
	c.mu.Unlock()
}

// Statuses returns the latest health check results.
func (c *Checker) Statuses() []Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Status(nil), c.statuses...)
}

// Healthy reports whether every check passed on the last run.
func (c *Checker) Healthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.statuses) == 0 {
		return true // no run yet
	}
	for _, s := range c.statuses {
		if !s.Healthy {
			return false
		}
	}
	return true
}

// RunOnce executes all checks immediately. Used by tests and the /health
// endpoint when no background loop is running.
func (c *Checker) RunOnce(ctx context.Context) {
	c.runAll(ctx)
}
