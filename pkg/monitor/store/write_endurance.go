// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"path/filepath"
	"time"

	"github.com/stratastor/logger"
)

const writeEnduranceFileName = "write_endurance.json"

// DeviceEndurance tracks cumulative bytes written since tracking began, for
// a daily-average write-endurance projection.
type DeviceEndurance struct {
	TotalBytesWritten uint64 `json:"total_bytes_written"`
	FirstTrackedAt    int64  `json:"first_tracked_at"`
}

// EnduranceMap maps device name to its DeviceEndurance record.
type EnduranceMap map[string]*DeviceEndurance

func writeEndurancePath(dataDir string) string {
	return filepath.Join(dataDir, writeEnduranceFileName)
}

func LoadEnduranceMap(l logger.Logger, dataDir string) EnduranceMap {
	m := make(EnduranceMap)
	LoadJSON(l, writeEndurancePath(dataDir), &m)
	return m
}

func SaveEnduranceMap(l logger.Logger, dataDir string, m EnduranceMap) {
	SaveJSON(l, writeEndurancePath(dataDir), &m)
}

// UpdateEndurance accumulates bytes written during one tick's interval.
func UpdateEndurance(m EnduranceMap, device string, writeBytesPerSec, elapsedSecs float64, now time.Time) {
	if writeBytesPerSec <= 0 || elapsedSecs <= 0 {
		return
	}
	entry, ok := m[device]
	if !ok {
		entry = &DeviceEndurance{FirstTrackedAt: now.Unix()}
		m[device] = entry
	}
	entry.TotalBytesWritten += uint64(writeBytesPerSec * elapsedSecs)
}

// DailyAverage returns the average bytes/day written since tracking began,
// and how many days have elapsed.
func DailyAverage(e *DeviceEndurance, now time.Time) (bytesPerDay, daysTracked float64) {
	secsTracked := float64(now.Unix() - e.FirstTrackedAt)
	if secsTracked < 1 {
		secsTracked = 1
	}
	daysTracked = secsTracked / 86400
	bytesPerDay = float64(e.TotalBytesWritten) / daysTracked
	return bytesPerDay, daysTracked
}
