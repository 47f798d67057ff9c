// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"path/filepath"

	"github.com/stratastor/logger"
	"github.com/stratastor/dtop/pkg/monitor/types"
)

const smartCacheFileName = "smart_cache.json"

// SmartCache maps device name to its last completed SMART poll, so a
// restart can show SMART state immediately instead of waiting for the
// first SMART tick to complete.
type SmartCache map[string]*types.SmartData

func smartCachePath(dataDir string) string {
	return filepath.Join(dataDir, smartCacheFileName)
}

func LoadSmartCache(l logger.Logger, dataDir string) SmartCache {
	c := make(SmartCache)
	LoadJSON(l, smartCachePath(dataDir), &c)
	return c
}

func SaveSmartCache(l logger.Logger, dataDir string, c SmartCache) {
	SaveJSON(l, smartCachePath(dataDir), &c)
}
