// Package powerhal provides concrete hint sink implementations: a sysfs
// writer for kernel perf-hint nodes, an HTTP client for vendor power-HAL
// daemons, and a mock for tests and sinkless hosts.
package powerhal

import (
	"fmt"
	"os"
	"path/filepath"
)

// Node filenames expected under the sysfs hint directory.
const (
	boostNode = "perf_boost"
	modeNode  = "perf_mode"
)

// SysfsSink applies hints by writing to perf-hint nodes under dir.
// The node format is "<hint> <durationMs>" for boosts and "<hint> <0|1>"
// for modes; availability means the boost node exists.
type SysfsSink struct {
	dir string
}

// NewSysfsSink creates a sysfs sink rooted at dir. Returns an error when
// the hint nodes are not present, so the daemon can fall back.
func NewSysfsSink(dir string) (*SysfsSink, error) {
	if _, err := os.Stat(filepath.Join(dir, boostNode)); err != nil {
		return nil, fmt.Errorf("sysfs hint node: %w", err)
	}
	return &SysfsSink{dir: dir}, nil
}

// ApplyBoost writes a self-expiring boost pulse.
func (s *SysfsSink) ApplyBoost(hint, durationMs int) error {
	return s.write(boostNode, fmt.Sprintf("%d %d", hint, durationMs))
}

// SetMode toggles a performance mode.
func (s *SysfsSink) SetMode(hint int, enabled bool) error {
	v := 0
	if enabled {
		v = 1
	}
	return s.write(modeNode, fmt.Sprintf("%d %d", hint, v))
}

// Available reports whether the boost node is still present.
func (s *SysfsSink) Available() bool {
	_, err := os.Stat(filepath.Join(s.dir, boostNode))
	return err == nil
}

func (s *SysfsSink) write(node, payload string) error {
	path := filepath.Join(s.dir, node)
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", node, err)
	}
	defer f.Close()
	if _, err := f.WriteString(payload); err != nil {
		return fmt.Errorf("write %s: %w", node, err)
	}
	return nil
}
