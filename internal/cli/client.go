package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/perfkit/boostd/internal/daemon"
)

var apiAddr string

func init() {
	rootCmd.PersistentFlags().StringVar(&apiAddr, "addr", "", "Daemon API address (default from config)")
}

// baseURL resolves the daemon API address from the --addr flag or config.
func baseURL() string {
	if apiAddr != "" {
		return "http://" + apiAddr
	}
	cfg, err := daemon.LoadConfig()
	if err != nil {
		cfg = daemon.DefaultConfig()
	}
	return fmt.Sprintf("http://%s:%d", cfg.API.Host, cfg.API.Port)
}

var apiClient = &http.Client{Timeout: 5 * time.Second}

// apiGet fetches path and decodes the JSON response into out.
func apiGet(path string, out interface{}) error {
	res, err := apiClient.Get(baseURL() + path)
	if err != nil {
		return fmt.Errorf("is the daemon running? %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 && res.StatusCode != http.StatusServiceUnavailable {
		return fmt.Errorf("daemon answered %s", res.Status)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// apiPost sends body as JSON to path and decodes the response into out
// (out may be nil).
func apiPost(path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	res, err := apiClient.Post(baseURL()+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("is the daemon running? %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return fmt.Errorf("daemon answered %s", res.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
