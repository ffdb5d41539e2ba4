package domain

import "time"

// HintKind distinguishes the two shapes of performance hints.
type HintKind int

const (
	// HintBoost is a fire-and-forget pulse: applied once, self-expiring,
	// never explicitly deactivated.
	HintBoost HintKind = iota
	// HintMode is a toggle: enabled on admission, disabled when the
	// window reverts.
	HintMode
)

// String returns a human-readable hint kind.
func (k HintKind) String() string {
	switch k {
	case HintBoost:
		return "boost"
	case HintMode:
		return "mode"
	default:
		return "unknown"
	}
}

// Hint identifiers understood by the power HAL.
// Mode ids follow the power HAL's Mode table; the game ids are the
// vendor extension range.
const (
	HintInteraction        = 0  // boost
	HintLowPowerMode       = 1  // mode
	HintSustainedMode      = 2  // mode
	HintFixedPerfMode      = 3  // mode
	HintLaunchMode         = 5  // mode
	HintExpensiveRendering = 6  // mode
	HintGameMode           = 15 // mode, vendor range
	HintGameLoadingMode    = 16 // mode, vendor range (reserved)
)

// HintSpec describes how a workload converts into a hardware hint.
type HintSpec struct {
	Hint       int      `json:"hint"`
	Kind       HintKind `json:"kind"`
	DurationMs int      `json:"duration_ms"` // default decay window, >= 0
}

// HintWindow is one admitted boost/mode window, as recorded in history.
type HintWindow struct {
	ID         string       `json:"id"` // uuid assigned on admission
	Workload   WorkloadType `json:"workload"`
	Hint       int          `json:"hint"`
	Kind       HintKind     `json:"kind"`
	DurationMs int          `json:"duration_ms"`
	IssuedAt   time.Time    `json:"issued_at"`
	RevertedAt *time.Time   `json:"reverted_at,omitempty"`
}
