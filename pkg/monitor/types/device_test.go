// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBlockDeviceFirstSampleZeroesRates(t *testing.T) {
	dev := NewBlockDevice("sda", "/dev/sda", DeviceHDD)
	now := time.Now()

	dev.ApplySample(RawDiskstat{
		ReadsCompleted: 100, SectorsRead: 2000, MsReading: 50,
		WritesCompleted: 50, SectorsWritten: 1000, MsWriting: 20,
		IosInProgress: 0, MsIO: 10,
	}, now)

	assert.Equal(t, DeviceIO{}, dev.IO)
	assert.Equal(t, 1, dev.ReadKBpsHistory.Len())
}

func TestBlockDeviceSecondSampleComputesRates(t *testing.T) {
	dev := NewBlockDevice("sda", "/dev/sda", DeviceHDD)
	t0 := time.Now()

	dev.ApplySample(RawDiskstat{
		ReadsCompleted: 100, SectorsRead: 2000, MsReading: 50,
		WritesCompleted: 50, SectorsWritten: 1000, MsWriting: 20,
		IosInProgress: 1, MsIO: 100,
	}, t0)

	t1 := t0.Add(1 * time.Second)
	dev.ApplySample(RawDiskstat{
		ReadsCompleted: 200, SectorsRead: 4000, MsReading: 150,
		WritesCompleted: 100, SectorsWritten: 2000, MsWriting: 60,
		IosInProgress: 2, MsIO: 600,
	}, t1)

	assert.Equal(t, float64(2000*SectorSize), dev.IO.ReadBytesPerSec)
	assert.Equal(t, float64(1000*SectorSize), dev.IO.WriteBytesPerSec)
	assert.Equal(t, 100.0, dev.IO.ReadIOPS)
	assert.Equal(t, 50.0, dev.IO.WriteIOPS)
	assert.Equal(t, uint64(2), dev.IO.QueueDepth)
	assert.Equal(t, 1.0, dev.IO.AvgReadLatencyMs)
	assert.Equal(t, 0.8, dev.IO.AvgWriteLatencyMs)
	// 500 delta ms over 1000 ms elapsed gives 50%, well under the 100% ceiling
	assert.Equal(t, 50.0, dev.IO.IoUtilPct)
}

func TestBlockDeviceCounterResetSaturatesAtZero(t *testing.T) {
	dev := NewBlockDevice("sda", "/dev/sda", DeviceHDD)
	t0 := time.Now()
	dev.ApplySample(RawDiskstat{ReadsCompleted: 1000, SectorsRead: 20000}, t0)

	// Device counters reset (e.g. driver reload) — next sample reports a
	// smaller cumulative value than the previous tick.
	t1 := t0.Add(1 * time.Second)
	dev.ApplySample(RawDiskstat{ReadsCompleted: 10, SectorsRead: 200}, t1)

	assert.Equal(t, 0.0, dev.IO.ReadIOPS)
	assert.Equal(t, 0.0, dev.IO.ReadBytesPerSec)
}

func TestBlockDeviceIoUtilPctClampedAt100(t *testing.T) {
	dev := NewBlockDevice("sda", "/dev/sda", DeviceHDD)
	t0 := time.Now()
	dev.ApplySample(RawDiskstat{MsIO: 0}, t0)

	t1 := t0.Add(1 * time.Second)
	dev.ApplySample(RawDiskstat{MsIO: 5000}, t1)

	assert.Equal(t, 100.0, dev.IO.IoUtilPct)
}

func TestSatSub(t *testing.T) {
	assert.Equal(t, uint64(5), satSub(10, 5))
	assert.Equal(t, uint64(0), satSub(5, 10))
	assert.Equal(t, uint64(0), satSub(5, 5))
}
