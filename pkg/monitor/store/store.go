// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package store persists dtop's small JSON side-files under
// $XDG_DATA_HOME/dtop (see config.GetDataDir): SMART cache, baselines,
// anomaly tracking, health history, write endurance, acked alerts, and the
// append-only alert log. Every load is load-or-empty and every save is
// best-effort — a missing or corrupt file never blocks the engine.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/stratastor/logger"
)

// LoadJSON reads path and unmarshals it into v. A missing or unparseable
// file leaves v as the caller passed it and returns no error to the
// caller's flow — callers log at Debug since this is the expected
// first-run condition.
func LoadJSON(l logger.Logger, path string, v any) {
	data, err := os.ReadFile(path)
	if err != nil {
		l.Debug("store file not present, starting empty", "path", path)
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		l.Warn("store file could not be parsed, starting empty", "path", path, "err", err)
	}
}

// SaveJSON marshals v and writes it to path, creating the parent directory
// if needed. Failures are logged, not returned — persistence here is
// best-effort.
func SaveJSON(l logger.Logger, path string, v any) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		l.Warn("failed to create store directory", "path", filepath.Dir(path), "err", err)
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		l.Warn("failed to marshal store file", "path", path, "err", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		l.Warn("failed to write store file", "path", path, "err", err)
	}
}
