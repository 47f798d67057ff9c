// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"path/filepath"
	"time"

	"github.com/stratastor/logger"
	"github.com/stratastor/dtop/pkg/monitor/types"
)

// BaselineAttr is one attribute's value at the moment a baseline was saved.
type BaselineAttr struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	RawValue uint64 `json:"raw_value"`
	Value    int    `json:"value"`
}

// Baseline is a saved SMART snapshot for one device, used to compute
// raw-value deltas against the current poll.
type Baseline struct {
	Device       string         `json:"device"`
	SavedAt      int64          `json:"saved_at"`
	SavedDate    string         `json:"saved_date"`
	PowerOnHours *uint64        `json:"power_on_hours,omitempty"`
	Attributes   []BaselineAttr `json:"attributes"`
}

// AttrDelta returns (baselineRawValue, delta) for the attribute with the
// given ID, or ok=false if the baseline has no such attribute.
func (b *Baseline) AttrDelta(id int, currentRaw uint64) (baseline uint64, delta int64, ok bool) {
	for _, a := range b.Attributes {
		if a.ID == id {
			return a.RawValue, int64(currentRaw) - int64(a.RawValue), true
		}
	}
	return 0, 0, false
}

func baselinePath(baselineDir, device string) string {
	return filepath.Join(baselineDir, device+".json")
}

// SaveBaseline persists the current SMART snapshot for device as its new
// baseline.
func SaveBaseline(l logger.Logger, baselineDir, device string, smart *types.SmartData, now time.Time) {
	b := Baseline{
		Device:       device,
		SavedAt:      now.Unix(),
		SavedDate:    now.Format("2006-01-02"),
		PowerOnHours: smart.PowerOnHours,
	}
	for _, a := range smart.Attributes {
		b.Attributes = append(b.Attributes, BaselineAttr{ID: a.ID, Name: a.Name, RawValue: a.RawValue, Value: a.Value})
	}
	SaveJSON(l, baselinePath(baselineDir, device), &b)
}

// LoadBaseline loads the saved baseline for device, if any.
func LoadBaseline(l logger.Logger, baselineDir, device string) (*Baseline, bool) {
	var b Baseline
	LoadJSON(l, baselinePath(baselineDir, device), &b)
	if b.Device == "" {
		return nil, false
	}
	return &b, true
}
