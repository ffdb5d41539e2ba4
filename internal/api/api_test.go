package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/perfkit/boostd/internal/app/boost"
	"github.com/perfkit/boostd/internal/app/gamelist"
	"github.com/perfkit/boostd/internal/app/policy"
	"github.com/perfkit/boostd/internal/domain"
	"github.com/perfkit/boostd/internal/health"
	"github.com/perfkit/boostd/internal/infra/powerhal"
	"github.com/perfkit/boostd/internal/infra/sqlite"
)

func newTestServer(t *testing.T) (*Server, *powerhal.MockSink) {
	t.Helper()

	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	table := policy.MustNew(nil)
	sink := powerhal.NewMockSink(false)
	sched := boost.New(boost.Config{}, table, func() domain.HintSink { return sink }, boost.SystemClock(), db)
	games := gamelist.New(db)
	checker := health.NewChecker(db, sched, time.Second)

	return NewServer(sched, table, games, db, checker), sink
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleBoost_AdmitsWorkload(t *testing.T) {
	srv, sink := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/boost", `{"workload":"game"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}

	calls := sink.Calls()
	if len(calls) != 1 {
		t.Fatalf("sink calls = %d, want 1", len(calls))
	}
	if calls[0].Op != "mode" || calls[0].Hint != domain.HintGameMode || !calls[0].Enabled {
		t.Errorf("call = %+v, want game mode enable", calls[0])
	}
}

func TestHandleBoost_DurationOverride(t *testing.T) {
	srv, sink := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/boost", `{"workload":"loading","duration_ms":2500}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}

	calls := sink.Calls()
	if len(calls) != 1 || calls[0].DurationMs != 2500 {
		t.Errorf("calls = %+v, want one boost with duration 2500", calls)
	}
}

func TestHandleBoost_UnknownWorkloadStillAccepted(t *testing.T) {
	srv, sink := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/boost", `{"workload":"mystery"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202 (admission is never observable)", rec.Code)
	}
	if len(sink.Calls()) != 0 {
		t.Error("unknown workload must not reach the sink")
	}
}

func TestHandleBoost_MalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/boost", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	srv, _ := newTestServer(t)

	doRequest(t, srv, http.MethodPost, "/api/boost", `{"workload":"game"}`)
	rec := doRequest(t, srv, http.MethodGet, "/api/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var st boost.State
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !st.Active || st.TotalIssued != 1 {
		t.Errorf("state = %+v, want active with one issuance", st)
	}
}

func TestHandlePolicy_ListsAllWorkloads(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/policy", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var specs map[string]domain.HintSpec
	if err := json.Unmarshal(rec.Body.Bytes(), &specs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(specs) != domain.WorkloadCount {
		t.Errorf("policy has %d entries, want %d", len(specs), domain.WorkloadCount)
	}
	if specs["launch"].Hint != domain.HintLaunchMode {
		t.Errorf("launch spec = %+v", specs["launch"])
	}
}

func TestHandleHistory(t *testing.T) {
	srv, _ := newTestServer(t)

	doRequest(t, srv, http.MethodPost, "/api/boost", `{"workload":"launch"}`)
	rec := doRequest(t, srv, http.MethodGet, "/api/history?limit=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var windows []domain.HintWindow
	if err := json.Unmarshal(rec.Body.Bytes(), &windows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(windows) != 1 || windows[0].Workload != domain.WorkloadLaunch {
		t.Errorf("windows = %+v, want one launch window", windows)
	}
}

type limitRecordingStore struct {
	limit int
}

func (s *limitRecordingStore) RecordWindow(domain.HintWindow) error { return nil }
func (s *limitRecordingStore) MarkReverted(string) error            { return nil }
func (s *limitRecordingStore) ListWindows(limit int) ([]domain.HintWindow, error) {
	s.limit = limit
	return nil, nil
}

func TestHandleHistory_ClampsLimit(t *testing.T) {
	store := &limitRecordingStore{}
	srv := &Server{store: store}

	rec := httptest.NewRecorder()
	srv.handleHistory(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit=999999", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if store.limit != maxHistoryLimit {
		t.Errorf("store queried with limit %d, want %d", store.limit, maxHistoryLimit)
	}
}

func TestGameEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/games/", `{"package":"com.example.game"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add status = %d, want 200", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/games/com.example.game", "")
	var check map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &check); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !check["game"] {
		t.Error("added package should check true")
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/games/com.example.unknown", "")
	_ = json.Unmarshal(rec.Body.Bytes(), &check)
	if check["game"] {
		t.Error("never-added package should check false")
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/games/", "")
	var list []string
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0] != "com.example.game" {
		t.Errorf("list = %v", list)
	}
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 before any check run", rec.Code)
	}
}
