package powerhal

import (
	"log"
	"sync"
)

// ─── Mock Sink (for testing and sinkless hosts) ─────────────────────────────

// MockCall records one sink invocation.
type MockCall struct {
	Op         string // "boost" or "mode"
	Hint       int
	DurationMs int
	Enabled    bool
}

// MockSink implements domain.HintSink by recording calls. Used in tests and
// as the daemon fallback when no real HAL is reachable.
type MockSink struct {
	mu      sync.Mutex
	calls   []MockCall
	verbose bool
}

// NewMockSink creates a recording sink. When verbose, calls are logged.
func NewMockSink(verbose bool) *MockSink {
	return &MockSink{verbose: verbose}
}

func (m *MockSink) ApplyBoost(hint, durationMs int) error {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Op: "boost", Hint: hint, DurationMs: durationMs})
	m.mu.Unlock()
	if m.verbose {
		log.Printf("[powerhal] mock boost: hint=%d duration=%dms", hint, durationMs)
	}
	return nil
}

func (m *MockSink) SetMode(hint int, enabled bool) error {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Op: "mode", Hint: hint, Enabled: enabled})
	m.mu.Unlock()
	if m.verbose {
		log.Printf("[powerhal] mock mode: hint=%d enabled=%v", hint, enabled)
	}
	return nil
}

func (m *MockSink) Available() bool { return true }

// Calls returns a copy of the recorded invocations.
func (m *MockSink) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}
