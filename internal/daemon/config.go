// Package daemon manages the boostd daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	Node      NodeConfig      `toml:"node"`
	API       APIConfig       `toml:"api"`
	Hints     HintsConfig     `toml:"hints"`
	Policy    PolicyConfig    `toml:"policy"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// NodeConfig identifies this node.
type NodeConfig struct {
	ID string `toml:"id"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// HintsConfig controls hint sink selection and behavior.
type HintsConfig struct {
	SysfsDir     string `toml:"sysfs_dir"`  // kernel perf-hint node directory
	RemoteURL    string `toml:"remote_url"` // vendor power-HAL HTTP endpoint
	AllowMock    bool   `toml:"allow_mock"` // fall back to a logging mock sink
	StuckGraceMs int    `toml:"stuck_grace_ms"`
}

// PolicyConfig customizes the workload policy table. Only default decay
// durations may be overridden; hint ids and kinds are fixed at build time.
type PolicyConfig struct {
	DurationOverridesMs map[string]int `toml:"duration_overrides_ms"`
}

// TelemetryConfig controls observability.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Debug bool `toml:"debug"` // trace dropped requests and window churn
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 7130,
		},
		Hints: HintsConfig{
			SysfsDir:     "/sys/class/perf_hint",
			AllowMock:    true,
			StuckGraceMs: 5000,
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
	}
}

// LoadConfig reads config from ~/.boostd/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(boostdHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.boostd/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(boostdHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// boostdHome returns the boostd data directory.
func boostdHome() string {
	if env := os.Getenv("BOOSTD_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".boostd")
}

// Home is exported for use by other packages.
func Home() string {
	return boostdHome()
}
