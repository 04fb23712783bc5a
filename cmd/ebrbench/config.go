// config.go — workload configuration for the benchmark CLI.
//
// Precedence is defaults, then an optional file, then explicit CLI flags,
// scoped to a single workload file rather than a global+project pair,
// since ebrbench has no notion of "project directory".

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tailscale/hujson"
)

// Structure selects which example client data structure a run exercises.
type Structure string

const (
	StructureStack Structure = "stack"
	StructureQueue Structure = "queue"
	StructureMap   Structure = "map"
)

// Config is the full set of knobs a run is tuned by. Every field has a
// sensible default; a workload file only needs to set the fields it wants
// to override.
type Config struct {
	UpdateThreshold uint32    `json:"update_threshold"`
	Workers         int       `json:"workers"`
	DurationSeconds int       `json:"duration_seconds"`
	Structure       Structure `json:"structure"`
	Pin             bool      `json:"pin"`
	RingSize        int       `json:"ring_size"`
	RetireGuard     bool      `json:"retire_guard"`
}

// Duration returns the configured run length as a time.Duration.
func (c Config) Duration() time.Duration {
	return time.Duration(c.DurationSeconds) * time.Second
}

// DefaultConfig returns the baseline a workload file and CLI flags both
// layer on top of.
func DefaultConfig() Config {
	return Config{
		UpdateThreshold: 4,
		Workers:         4,
		DurationSeconds: 5,
		Structure:       StructureMap,
		Pin:             false,
		RingSize:        4096,
		RetireGuard:     true,
	}
}

// LoadConfigFile reads a JSON-with-comments workload file at path and
// merges it onto base. An empty path is a no-op: returns base unchanged.
func LoadConfigFile(path string, base Config) (Config, error) {
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("ebrbench: reading config %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return base, fmt.Errorf("ebrbench: invalid JSONC in %s: %w", path, err)
	}

	cfg := base
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return base, fmt.Errorf("ebrbench: invalid JSON in %s: %w", path, err)
	}
	return cfg, nil
}
