// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilesystemFirstSampleHasNoFillRate(t *testing.T) {
	fs := &Filesystem{}
	fs.ApplySample(50, 100, 50, 1000, 900, time.Now())

	assert.Equal(t, 50.0, fs.UsedPct)
	assert.Equal(t, 0.0, fs.FillRateBytesPerHour)
	assert.Equal(t, -1.0, fs.DaysUntilFull)
}

func TestFilesystemFillingProjectsDaysUntilFull(t *testing.T) {
	fs := &Filesystem{}
	t0 := time.Now()
	fs.ApplySample(50, 100, 50, 1000, 900, t0)

	t1 := t0.Add(1 * time.Hour)
	fs.ApplySample(60, 100, 40, 1000, 900, t1)

	assert.Equal(t, 10.0, fs.FillRateBytesPerHour)
	assert.InDelta(t, 40.0/10.0/24.0, fs.DaysUntilFull, 0.0001)
}

func TestFilesystemEmptyingReportsNoProjection(t *testing.T) {
	fs := &Filesystem{}
	t0 := time.Now()
	fs.ApplySample(60, 100, 40, 1000, 900, t0)

	t1 := t0.Add(1 * time.Hour)
	fs.ApplySample(50, 100, 50, 1000, 900, t1)

	assert.Equal(t, -1.0, fs.DaysUntilFull)
}
