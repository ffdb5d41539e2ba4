// Package policy holds the static mapping from workload categories to
// hint parameters. Pure data: built once, immutable after, total over
// every WorkloadType.
package policy

import (
	"fmt"

	"github.com/perfkit/boostd/internal/domain"
)

// Decay durations for the default table.
const (
	// PowerBoostTimeoutMs bounds interactive boosts and launch windows.
	PowerBoostTimeoutMs = 15 * 1000
	// LongDurationMs bounds sustained/fixed performance windows.
	LongDurationMs = 300 * 1000
	// GameDurationMs bounds game mode windows.
	GameDurationMs = 300 * 1000
	// LowPowerDurationMs bounds low-power mode windows.
	LowPowerDurationMs = 300 * 1000
)

// Table maps every WorkloadType to exactly one HintSpec.
type Table struct {
	specs [domain.WorkloadCount]domain.HintSpec
}

// Overrides customizes per-workload default durations (the sole supported
// customization point). Keys are workload wire names; unknown keys are
// rejected at construction.
type Overrides map[string]int

// New builds the default table with the given duration overrides applied.
// A missing table entry or an unknown override key is a construction-time
// defect, not a runtime error.
func New(overrides Overrides) (*Table, error) {
	t := &Table{}
	var assigned [domain.WorkloadCount]bool
	set := func(w domain.WorkloadType, hint int, kind domain.HintKind, durMs int) {
		t.specs[w] = domain.HintSpec{Hint: hint, Kind: kind, DurationMs: durMs}
		assigned[w] = true
	}

	boost, mode := domain.HintBoost, domain.HintMode

	set(domain.WorkloadAnimation, domain.HintInteraction, boost, 0)
	set(domain.WorkloadScrolling, domain.HintInteraction, boost, 0)
	set(domain.WorkloadTapEvent, domain.HintInteraction, boost, 0)
	set(domain.WorkloadVendorKill, domain.HintInteraction, boost, 0)
	set(domain.WorkloadVendorRotationLatency, domain.HintInteraction, boost, 0)
	set(domain.WorkloadLoading, domain.HintInteraction, boost, PowerBoostTimeoutMs)
	set(domain.WorkloadVendorPackageInstall, domain.HintInteraction, boost, PowerBoostTimeoutMs)
	set(domain.WorkloadLaunch, domain.HintLaunchMode, mode, PowerBoostTimeoutMs)
	set(domain.WorkloadGame, domain.HintGameMode, mode, GameDurationMs)
	set(domain.WorkloadHeavyGame, domain.HintExpensiveRendering, mode, GameDurationMs)
	set(domain.WorkloadLowPower, domain.HintLowPowerMode, mode, LowPowerDurationMs)
	set(domain.WorkloadSustainedPerformance, domain.HintSustainedMode, mode, LongDurationMs)
	set(domain.WorkloadFixedPerformance, domain.HintFixedPerfMode, mode, LongDurationMs)

	for _, w := range domain.AllWorkloads() {
		if !assigned[w] {
			return nil, fmt.Errorf("policy table missing entry for workload %q", w)
		}
	}

	for name, durMs := range overrides {
		w, ok := domain.ParseWorkload(name)
		if !ok {
			return nil, fmt.Errorf("policy override for unknown workload %q", name)
		}
		if durMs < 0 {
			return nil, fmt.Errorf("policy override for %q: negative duration %d", name, durMs)
		}
		t.specs[w].DurationMs = durMs
	}

	return t, nil
}

// MustNew builds the default table and panics on defect. For wiring paths
// where the overrides are already validated.
func MustNew(overrides Overrides) *Table {
	t, err := New(overrides)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the HintSpec for a workload. Total: every WorkloadType
// has an entry, so Lookup never fails.
func (t *Table) Lookup(w domain.WorkloadType) domain.HintSpec {
	return t.specs[w]
}

// Specs returns the full mapping in workload declaration order.
func (t *Table) Specs() map[string]domain.HintSpec {
	out := make(map[string]domain.HintSpec, domain.WorkloadCount)
	for _, w := range domain.AllWorkloads() {
		out[w.String()] = t.specs[w]
	}
	return out
}
