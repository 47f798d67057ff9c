// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"path/filepath"

	"github.com/stratastor/logger"
)

const ackedAlertsFileName = "acked_alerts.json"

func ackedAlertsPath(dataDir string) string {
	return filepath.Join(dataDir, ackedAlertsFileName)
}

// LoadAckedAlerts loads the set of acknowledged alert keys.
func LoadAckedAlerts(l logger.Logger, dataDir string) map[string]bool {
	var keys []string
	LoadJSON(l, ackedAlertsPath(dataDir), &keys)
	out := make(map[string]bool, len(keys))
	for _, k := range keys {
		out[k] = true
	}
	return out
}

// SaveAckedAlerts persists the set of acknowledged alert keys.
func SaveAckedAlerts(l logger.Logger, dataDir string, acked map[string]bool) {
	keys := make([]string, 0, len(acked))
	for k := range acked {
		keys = append(keys, k)
	}
	SaveJSON(l, ackedAlertsPath(dataDir), &keys)
}
