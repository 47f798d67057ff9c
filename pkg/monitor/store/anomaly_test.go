// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratastor/dtop/pkg/monitor/types"
)

func TestUpdateAnomalyLogFirstSeen(t *testing.T) {
	log := make(AnomalyLog)
	now := time.Now()

	smart := &types.SmartData{
		Attributes: []types.SmartAttribute{
			{ID: 5, Name: "Reallocated_Sector_Ct", RawValue: 3},
			{ID: 9, Name: "Power_On_Hours", RawValue: 1000}, // not watched
		},
	}

	changed := UpdateAnomalyLog(log, "sda", smart, now)
	assert.True(t, changed)

	rec, ok := log["sda"][5]
	require.True(t, ok)
	assert.Equal(t, uint64(3), rec.FirstValue)
	assert.Equal(t, uint64(3), rec.LastValue)
	_, ok = log["sda"][9]
	assert.False(t, ok)
}

func TestUpdateAnomalyLogUnchangedValueReportsNoChange(t *testing.T) {
	log := make(AnomalyLog)
	now := time.Now()
	smart := &types.SmartData{Attributes: []types.SmartAttribute{{ID: 5, RawValue: 3}}}

	UpdateAnomalyLog(log, "sda", smart, now)
	changed := UpdateAnomalyLog(log, "sda", smart, now.Add(time.Hour))
	assert.False(t, changed)
}

func TestUpdateAnomalyLogValueIncreaseReportsChange(t *testing.T) {
	log := make(AnomalyLog)
	now := time.Now()

	UpdateAnomalyLog(log, "sda", &types.SmartData{Attributes: []types.SmartAttribute{{ID: 5, RawValue: 3}}}, now)
	changed := UpdateAnomalyLog(log, "sda", &types.SmartData{Attributes: []types.SmartAttribute{{ID: 5, RawValue: 5}}}, now.Add(time.Hour))

	assert.True(t, changed)
	assert.Equal(t, uint64(5), log["sda"][5].LastValue)
	assert.Equal(t, uint64(3), log["sda"][5].FirstValue)
}

func TestUpdateAnomalyLogZeroValueIgnored(t *testing.T) {
	log := make(AnomalyLog)
	smart := &types.SmartData{Attributes: []types.SmartAttribute{{ID: 5, RawValue: 0}}}

	changed := UpdateAnomalyLog(log, "sda", smart, time.Now())
	assert.False(t, changed)
	assert.Empty(t, log["sda"])
}

func TestUpdateAnomalyLogNvmeMediaErrors(t *testing.T) {
	log := make(AnomalyLog)
	smart := &types.SmartData{Nvme: &types.NvmeHealth{MediaErrors: 2}}

	changed := UpdateAnomalyLog(log, "nvme0n1", smart, time.Now())
	assert.True(t, changed)
	assert.Equal(t, uint64(2), log["nvme0n1"][nvmeMediaErrorsAttrID].LastValue)
}

func TestAnomalyLogSaveLoadRoundTrips(t *testing.T) {
	l := testLogger(t)
	dir := t.TempDir()

	log := make(AnomalyLog)
	UpdateAnomalyLog(log, "sda", &types.SmartData{Attributes: []types.SmartAttribute{{ID: 5, Name: "Realloc", RawValue: 1}}}, time.Now())
	SaveAnomalyLog(l, dir, log)

	loaded := LoadAnomalyLog(l, dir)
	require.Contains(t, loaded, "sda")
	assert.Equal(t, uint64(1), loaded["sda"][5].LastValue)
}
