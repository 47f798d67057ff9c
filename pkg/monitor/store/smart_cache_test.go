// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratastor/dtop/pkg/monitor/types"
)

func TestSmartCacheSaveLoadRoundTrips(t *testing.T) {
	l := testLogger(t)
	dir := t.TempDir()

	c := make(SmartCache)
	c["sda"] = &types.SmartData{Status: types.SmartPassed}
	SaveSmartCache(l, dir, c)

	loaded := LoadSmartCache(l, dir)
	require.Contains(t, loaded, "sda")
	assert.Equal(t, types.SmartPassed, loaded["sda"].Status)
}

func TestLoadSmartCacheMissingReturnsEmptyMap(t *testing.T) {
	l := testLogger(t)
	loaded := LoadSmartCache(l, t.TempDir())
	assert.Empty(t, loaded)
}
