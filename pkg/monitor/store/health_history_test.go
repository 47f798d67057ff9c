// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendHealthScore(t *testing.T) {
	h := make(HealthHistory)
	AppendHealthScore(h, "sda", 90)
	AppendHealthScore(h, "sda", 85)

	assert.Equal(t, []int{90, 85}, h["sda"])
}

func TestAppendHealthScoreTrimsToMax(t *testing.T) {
	h := make(HealthHistory)
	for i := 0; i < maxHealthHistoryEntries+10; i++ {
		AppendHealthScore(h, "sda", i)
	}

	require.Len(t, h["sda"], maxHealthHistoryEntries)
	// oldest entries are trimmed; the series ends with the most recent score.
	assert.Equal(t, maxHealthHistoryEntries+9, h["sda"][len(h["sda"])-1])
}

func TestHealthHistorySaveLoadRoundTrips(t *testing.T) {
	l := testLogger(t)
	dir := t.TempDir()

	h := make(HealthHistory)
	AppendHealthScore(h, "sda", 77)
	SaveHealthHistory(l, dir, h)

	loaded := LoadHealthHistory(l, dir)
	assert.Equal(t, []int{77}, loaded["sda"])
}

func TestHealthHistoryPersistedUnderEntriesEnvelope(t *testing.T) {
	l := testLogger(t)
	dir := t.TempDir()

	h := make(HealthHistory)
	AppendHealthScore(h, "sda", 77)
	SaveHealthHistory(l, dir, h)

	data, err := os.ReadFile(filepath.Join(dir, healthHistoryFileName))
	require.NoError(t, err)
	assert.JSONEq(t, `{"entries":{"sda":[77]}}`, string(data))
}
