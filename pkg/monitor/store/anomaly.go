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

const anomalyFileName = "smart_anomalies.json"

// nvmeMediaErrorsAttrID is the synthetic attribute ID used to key NVMe
// media-error tracking in the same map as ATA attribute IDs.
const nvmeMediaErrorsAttrID = 9999

var watchedAttrIDs = map[int]bool{5: true, 197: true, 198: true, 199: true}

// AnomalyRecord is the first-seen/last-seen record for one watched
// attribute going non-zero on one device.
type AnomalyRecord struct {
	AttrID     int    `json:"attr_id"`
	AttrName   string `json:"attr_name"`
	FirstSeen  int64  `json:"first_seen"`
	FirstValue uint64 `json:"first_value"`
	LastValue  uint64 `json:"last_value"`
}

// DeviceAnomalies maps attribute ID to its record for one device.
type DeviceAnomalies map[int]*AnomalyRecord

// AnomalyLog maps device name to its DeviceAnomalies, persisted as one file.
type AnomalyLog map[string]DeviceAnomalies

func anomalyPath(dataDir string) string {
	return filepath.Join(dataDir, anomalyFileName)
}

// LoadAnomalyLog loads the persisted anomaly log.
func LoadAnomalyLog(l logger.Logger, dataDir string) AnomalyLog {
	log := make(AnomalyLog)
	LoadJSON(l, anomalyPath(dataDir), &log)
	return log
}

// SaveAnomalyLog persists the anomaly log.
func SaveAnomalyLog(l logger.Logger, dataDir string, log AnomalyLog) {
	SaveJSON(l, anomalyPath(dataDir), &log)
}

// UpdateAnomalyLog folds a fresh SMART snapshot into the anomaly log for
// device, returning true if any record was newly added or its value
// changed.
func UpdateAnomalyLog(log AnomalyLog, device string, smart *types.SmartData, now time.Time) bool {
	deviceLog, ok := log[device]
	if !ok {
		deviceLog = make(DeviceAnomalies)
		log[device] = deviceLog
	}
	changed := false

	for _, a := range smart.Attributes {
		if !watchedAttrIDs[a.ID] || a.RawValue == 0 {
			continue
		}
		changed = recordAnomaly(deviceLog, a.ID, a.Name, a.RawValue, now) || changed
	}

	if smart.Nvme != nil && smart.Nvme.MediaErrors > 0 {
		changed = recordAnomaly(deviceLog, nvmeMediaErrorsAttrID, "NVMe Media Errors", smart.Nvme.MediaErrors, now) || changed
	}

	return changed
}

func recordAnomaly(deviceLog DeviceAnomalies, id int, name string, rawValue uint64, now time.Time) bool {
	if rec, ok := deviceLog[id]; ok {
		if rec.LastValue != rawValue {
			rec.LastValue = rawValue
			return true
		}
		return false
	}
	deviceLog[id] = &AnomalyRecord{
		AttrID:     id,
		AttrName:   name,
		FirstSeen:  now.Unix(),
		FirstValue: rawValue,
		LastValue:  rawValue,
	}
	return true
}
