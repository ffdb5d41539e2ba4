package powerhal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// ─── Sysfs ──────────────────────────────────────────────────────────────────

func newSysfsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, node := range []string{boostNode, modeNode} {
		if err := os.WriteFile(filepath.Join(dir, node), nil, 0600); err != nil {
			t.Fatalf("create node %s: %v", node, err)
		}
	}
	return dir
}

func TestSysfsSink_RequiresHintNode(t *testing.T) {
	if _, err := NewSysfsSink(t.TempDir()); err == nil {
		t.Error("NewSysfsSink should fail without hint nodes")
	}
}

func TestSysfsSink_WritesHints(t *testing.T) {
	dir := newSysfsDir(t)
	sink, err := NewSysfsSink(dir)
	if err != nil {
		t.Fatalf("NewSysfsSink: %v", err)
	}
	if !sink.Available() {
		t.Fatal("sink with present nodes should be available")
	}

	if err := sink.ApplyBoost(0, 15000); err != nil {
		t.Fatalf("ApplyBoost: %v", err)
	}
	got, _ := os.ReadFile(filepath.Join(dir, boostNode))
	if string(got) != "0 15000" {
		t.Errorf("boost node = %q, want %q", got, "0 15000")
	}

	if err := sink.SetMode(5, true); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	got, _ = os.ReadFile(filepath.Join(dir, modeNode))
	if string(got) != "5 1" {
		t.Errorf("mode node = %q, want %q", got, "5 1")
	}

	if err := sink.SetMode(5, false); err != nil {
		t.Fatalf("SetMode(off): %v", err)
	}
	got, _ = os.ReadFile(filepath.Join(dir, modeNode))
	if string(got) != "5 0" {
		t.Errorf("mode node = %q, want %q", got, "5 0")
	}
}

func TestSysfsSink_UnavailableAfterNodeRemoved(t *testing.T) {
	dir := newSysfsDir(t)
	sink, err := NewSysfsSink(dir)
	if err != nil {
		t.Fatalf("NewSysfsSink: %v", err)
	}
	os.Remove(filepath.Join(dir, boostNode))
	if sink.Available() {
		t.Error("sink should report unavailable after node removal")
	}
}

// ─── Remote ─────────────────────────────────────────────────────────────────

func TestRemoteSink_PostsHints(t *testing.T) {
	var boosts, modes []hintRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req hintRequest
		if r.Method == http.MethodPost {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/v1/boost":
			boosts = append(boosts, req)
			w.WriteHeader(http.StatusOK)
		case "/v1/mode":
			modes = append(modes, req)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	sink := NewRemoteSink(srv.URL)
	if !sink.Available() {
		t.Fatal("sink should be available while the HAL responds")
	}

	if err := sink.ApplyBoost(0, 15000); err != nil {
		t.Fatalf("ApplyBoost: %v", err)
	}
	if len(boosts) != 1 || boosts[0].Hint != 0 || boosts[0].DurationMs != 15000 {
		t.Errorf("boosts = %+v", boosts)
	}

	if err := sink.SetMode(15, true); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if len(modes) != 1 || modes[0].Hint != 15 || modes[0].Enabled == nil || !*modes[0].Enabled {
		t.Errorf("modes = %+v", modes)
	}
}

func TestRemoteSink_CallFailureMarksUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	sink := NewRemoteSink(url)
	if err := sink.ApplyBoost(0, 1000); err == nil {
		t.Fatal("ApplyBoost against a dead HAL should error")
	}
	if sink.Available() {
		t.Error("failed call should invalidate availability")
	}
}

func TestRemoteSink_BackgroundCheckDetectsDeadHAL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	sink := NewRemoteSink(url)
	if !sink.Available() {
		t.Fatal("fresh sink is assumed reachable until checked")
	}

	deadline := time.Now().Add(3 * time.Second)
	for sink.Available() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if sink.Available() {
		t.Error("background check should mark a dead HAL unavailable")
	}
}

// Available must answer from cache; a wedged HAL must not stall the caller.
func TestRemoteSink_AvailableDoesNotWaitOnHAL(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	sink := NewRemoteSink(srv.URL)

	done := make(chan bool, 1)
	go func() { done <- sink.Available() }()
	select {
	case ok := <-done:
		if !ok {
			t.Error("cached availability should report true while unconfirmed")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Available blocked on the HAL health endpoint")
	}
}

// ─── Mock ───────────────────────────────────────────────────────────────────

func TestMockSink_RecordsCalls(t *testing.T) {
	sink := NewMockSink(false)
	_ = sink.ApplyBoost(0, 100)
	_ = sink.SetMode(5, true)

	calls := sink.Calls()
	if len(calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(calls))
	}
	if calls[0].Op != "boost" || calls[1].Op != "mode" {
		t.Errorf("calls = %+v", calls)
	}
	if !sink.Available() {
		t.Error("mock sink is always available")
	}
}
