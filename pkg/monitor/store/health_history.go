// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"path/filepath"

	"github.com/stratastor/logger"
)

const healthHistoryFileName = "health_history.json"

// maxHealthHistoryEntries caps each device's series at ~90 SMART polls,
// roughly 7.5 hours at the 5-minute SMART tick.
const maxHealthHistoryEntries = 90

// HealthHistory maps device name to its oldest-first health-score series.
type HealthHistory map[string][]int

// persistedHealthHistory is the on-disk envelope: {"entries": {...}}.
type persistedHealthHistory struct {
	Entries HealthHistory `json:"entries"`
}

func healthHistoryPath(dataDir string) string {
	return filepath.Join(dataDir, healthHistoryFileName)
}

func LoadHealthHistory(l logger.Logger, dataDir string) HealthHistory {
	p := persistedHealthHistory{Entries: make(HealthHistory)}
	LoadJSON(l, healthHistoryPath(dataDir), &p)
	if p.Entries == nil {
		p.Entries = make(HealthHistory)
	}
	return p.Entries
}

func SaveHealthHistory(l logger.Logger, dataDir string, h HealthHistory) {
	SaveJSON(l, healthHistoryPath(dataDir), &persistedHealthHistory{Entries: h})
}

// AppendHealthScore appends score to device's series, trimming to
// maxHealthHistoryEntries.
func AppendHealthScore(h HealthHistory, device string, score int) {
	series := append(h[device], score)
	if len(series) > maxHealthHistoryEntries {
		series = series[len(series)-maxHealthHistoryEntries:]
	}
	h[device] = series
}
