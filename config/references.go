// Copyright 2024 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

var (
	configDir   string // Directory for configuration files
	dataDir     string // Directory for persisted engine state ($XDG_DATA_HOME/dtop)
	baselineDir string // Directory for per-device SMART baseline files
)

func init() {
	if os.Geteuid() == 0 {
		configDir = "/etc/dtop"
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(fmt.Sprintf("failed to get home directory: %v", err))
		}
		configDir = filepath.Join(homeDir, ".config", "dtop")
	}

	dataDir = resolveDataDir()
	baselineDir = filepath.Join(dataDir, "baselines")

	if err := EnsureDirectories(); err != nil {
		panic(fmt.Sprintf("failed to ensure dtop directories: %v", err))
	}
}

// resolveDataDir follows the XDG Base Directory spec: $XDG_DATA_HOME/dtop,
// falling back to ~/.local/share/dtop, the way a well-behaved Linux tool
// resolves its per-user data directory.
func resolveDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "dtop")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "dtop")
	}
	return filepath.Join(homeDir, ".local", "share", "dtop")
}

// GetConfigDir returns the appropriate configuration directory: the system
// directory when running as root, the user directory otherwise.
func GetConfigDir() string {
	return configDir
}

// GetDataDir returns $XDG_DATA_HOME/dtop (or its fallback), the root of all
// persisted engine state: smart_cache.json, smart_anomalies.json,
// health_history.json, write_endurance.json, acked_alerts.json, alerts.log,
// and the baselines/ subdirectory.
func GetDataDir() string {
	return dataDir
}

// GetBaselineDir returns the directory holding one JSON file per device's
// SMART baseline.
func GetBaselineDir() string {
	return baselineDir
}

// EnsureDirectories creates necessary directories if they do not exist.
func EnsureDirectories() error {
	dirs := []string{configDir, dataDir, baselineDir}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
