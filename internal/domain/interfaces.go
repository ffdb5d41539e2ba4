package domain

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; application layer depends on them.

// HintSink is the hardware/firmware capability that actually applies a
// performance hint. Implementations must be non-blocking and idempotent;
// errors are advisory (the scheduler never retries or escalates).
type HintSink interface {
	// ApplyBoost issues a self-expiring boost pulse.
	ApplyBoost(hint int, durationMs int) error

	// SetMode toggles a performance mode on or off.
	SetMode(hint int, enabled bool) error

	// Available reports whether the underlying capability is reachable.
	// It must answer from local state; implementations that need a
	// network check cache the result.
	Available() bool
}

// SinkProvider acquires a HintSink, or nil when none is reachable.
// The scheduler calls it lazily whenever its sink is absent.
type SinkProvider func() HintSink

// HintStore abstracts persistent hint-window history.
// Implemented by infra/sqlite.DB.
type HintStore interface {
	RecordWindow(w HintWindow) error
	MarkReverted(id string) error
	ListWindows(limit int) ([]HintWindow, error)
}

// GameListStore abstracts persistence for the game package registry.
type GameListStore interface {
	AddGamePackage(pkg string) error
	ListGamePackages() ([]string, error)
}
