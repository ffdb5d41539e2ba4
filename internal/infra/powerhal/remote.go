package powerhal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// availabilityTTL bounds how often the background health check re-runs.
const availabilityTTL = 10 * time.Second

// RemoteSink talks to a vendor power-HAL daemon over HTTP/JSON.
//
// Availability is cached: Available returns the last known reachability and
// refreshes it in the background, so callers holding a lock never wait on
// the network. A failed call invalidates the cache immediately.
type RemoteSink struct {
	baseURL string
	http    *http.Client

	available atomic.Bool
	checking  atomic.Bool
	checkedAt atomic.Int64 // unix nanos of the last completed check
}

// NewRemoteSink creates a remote sink for the HAL at baseURL. The sink is
// assumed reachable until a call or a background check says otherwise.
func NewRemoteSink(baseURL string) *RemoteSink {
	r := &RemoteSink{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 2 * time.Second,
		},
	}
	r.available.Store(true)
	return r
}

type hintRequest struct {
	Hint       int   `json:"hint"`
	DurationMs int   `json:"duration_ms,omitempty"`
	Enabled    *bool `json:"enabled,omitempty"`
}

// ApplyBoost posts a boost pulse to the HAL.
func (r *RemoteSink) ApplyBoost(hint, durationMs int) error {
	return r.post("/v1/boost", hintRequest{Hint: hint, DurationMs: durationMs})
}

// SetMode posts a mode toggle to the HAL.
func (r *RemoteSink) SetMode(hint int, enabled bool) error {
	return r.post("/v1/mode", hintRequest{Hint: hint, Enabled: &enabled})
}

// Available reports the last known reachability of the HAL without touching
// the network. A stale cache triggers one background refresh.
func (r *RemoteSink) Available() bool {
	stale := time.Now().UnixNano()-r.checkedAt.Load() > int64(availabilityTTL)
	if stale && r.checking.CompareAndSwap(false, true) {
		go r.check()
	}
	return r.available.Load()
}

func (r *RemoteSink) check() {
	defer r.checking.Store(false)
	res, err := r.http.Get(r.baseURL + "/health")
	if err != nil {
		r.available.Store(false)
	} else {
		res.Body.Close()
		r.available.Store(res.StatusCode/100 == 2)
	}
	r.checkedAt.Store(time.Now().UnixNano())
}

func (r *RemoteSink) post(path string, body hintRequest) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	res, err := r.http.Post(r.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		r.available.Store(false)
		return err
	}
	defer res.Body.Close()
	r.available.Store(true)
	r.checkedAt.Store(time.Now().UnixNano())
	if res.StatusCode/100 != 2 {
		return fmt.Errorf("power hal %s status=%d", path, res.StatusCode)
	}
	return nil
}
