// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRaidArrayDegraded(t *testing.T) {
	assert.True(t, RaidArray{ActiveDevices: 1, TotalDevices: 2}.Degraded())
	assert.False(t, RaidArray{ActiveDevices: 2, TotalDevices: 2}.Degraded())
}

func TestZfsPoolHealthy(t *testing.T) {
	assert.True(t, ZfsPool{Health: "ONLINE"}.Healthy())
	assert.False(t, ZfsPool{Health: "DEGRADED"}.Healthy())
	assert.False(t, ZfsPool{Health: "FAULTED"}.Healthy())
}

func TestProcessIOFirstSampleHasNoRate(t *testing.T) {
	p := &ProcessIO{}
	p.ApplySample(1000, 500, time.Now())

	assert.Equal(t, uint64(1000), p.ReadBytes)
	assert.Equal(t, uint64(500), p.WriteBytes)
	assert.Equal(t, 0.0, p.ReadBytesRate)
	assert.Equal(t, 0.0, p.WriteBytesRate)
}

func TestProcessIOSecondSampleComputesRate(t *testing.T) {
	p := &ProcessIO{}
	t0 := time.Now()
	p.ApplySample(1000, 500, t0)

	t1 := t0.Add(2 * time.Second)
	p.ApplySample(3000, 900, t1)

	assert.Equal(t, 1000.0, p.ReadBytesRate)
	assert.Equal(t, 200.0, p.WriteBytesRate)
}

func TestProcessIOCounterResetSaturatesAtZero(t *testing.T) {
	p := &ProcessIO{}
	t0 := time.Now()
	p.ApplySample(5000, 2000, t0)

	t1 := t0.Add(1 * time.Second)
	p.ApplySample(100, 50, t1)

	assert.Equal(t, 0.0, p.ReadBytesRate)
	assert.Equal(t, 0.0, p.WriteBytesRate)
}
