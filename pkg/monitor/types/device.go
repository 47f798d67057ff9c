// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package types

import "time"

// Partition is one partition of a BlockDevice, as reported by lsblk.
type Partition struct {
	Name       string
	Path       string
	SizeBytes  uint64
	FSType     string
	MountPoint string
}

// BlockDevice is the engine's per-disk aggregate: identity, current rates,
// rolling history, and the latest/previous SMART snapshot.
type BlockDevice struct {
	Name       string // e.g. "sda", "nvme0n1"
	Path       string // "/dev/sda"
	Kind       DeviceType
	Model      string
	Serial     string
	CapacityB  uint64
	Rotational bool
	Transport  string // "sata", "nvme", "usb", "virtio", ...

	Partitions []Partition

	// Raw kernel counters from the previous tick, used to compute deltas.
	prevStat    RawDiskstat
	prevSampled time.Time
	hasPrev     bool

	// Current instantaneous rates, recomputed every fast tick.
	IO DeviceIO

	ReadKBpsHistory    *RingBuffer[float64]
	WriteKBpsHistory   *RingBuffer[float64]
	UtilPctHistory     *RingBuffer[float64]
	ReadLatencyHistory *RingBuffer[float64]
	WriteLatencyHistory *RingBuffer[float64]
	TemperatureHistory *RingBuffer[int]

	Smart     *SmartData
	PrevSmart *SmartData
	LastSmartPoll time.Time

	Removed bool
}

// NewBlockDevice constructs a BlockDevice with all history buffers
// allocated at HistoryCapacity.
func NewBlockDevice(name, path string, kind DeviceType) *BlockDevice {
	return &BlockDevice{
		Name:                name,
		Path:                path,
		Kind:                kind,
		ReadKBpsHistory:     NewRingBuffer[float64](HistoryCapacity),
		WriteKBpsHistory:    NewRingBuffer[float64](HistoryCapacity),
		UtilPctHistory:      NewRingBuffer[float64](HistoryCapacity),
		ReadLatencyHistory:  NewRingBuffer[float64](HistoryCapacity),
		WriteLatencyHistory: NewRingBuffer[float64](HistoryCapacity),
		TemperatureHistory:  NewRingBuffer[int](HistoryCapacity),
	}
}

// ApplySample derives this tick's DeviceIO rates from a raw diskstat
// snapshot using saturating subtraction against the previous sample, then
// pushes the derived values onto the history buffers. The first sample for
// a device produces zeroed rates since there is no prior delta.
func (b *BlockDevice) ApplySample(raw RawDiskstat, at time.Time) {
	if !b.hasPrev {
		b.prevStat = raw
		b.prevSampled = at
		b.hasPrev = true
		b.IO = DeviceIO{}
		b.pushHistory()
		return
	}

	elapsed := at.Sub(b.prevSampled).Seconds()
	if elapsed <= 0 {
		elapsed = 1
	}

	readsDelta := satSub(raw.ReadsCompleted, b.prevStat.ReadsCompleted)
	writesDelta := satSub(raw.WritesCompleted, b.prevStat.WritesCompleted)
	sectorsReadDelta := satSub(raw.SectorsRead, b.prevStat.SectorsRead)
	sectorsWrittenDelta := satSub(raw.SectorsWritten, b.prevStat.SectorsWritten)
	msReadingDelta := satSub(raw.MsReading, b.prevStat.MsReading)
	msWritingDelta := satSub(raw.MsWriting, b.prevStat.MsWriting)
	msIODelta := satSub(raw.MsIO, b.prevStat.MsIO)

	b.IO.ReadBytesPerSec = float64(sectorsReadDelta*SectorSize) / elapsed
	b.IO.WriteBytesPerSec = float64(sectorsWrittenDelta*SectorSize) / elapsed
	b.IO.ReadIOPS = float64(readsDelta) / elapsed
	b.IO.WriteIOPS = float64(writesDelta) / elapsed
	b.IO.QueueDepth = raw.IosInProgress
	b.IO.IoUtilPct = clampPct(float64(msIODelta) / (elapsed * 1000) * 100)

	if readsDelta > 0 {
		b.IO.AvgReadLatencyMs = float64(msReadingDelta) / float64(readsDelta)
	} else {
		b.IO.AvgReadLatencyMs = 0
	}
	if writesDelta > 0 {
		b.IO.AvgWriteLatencyMs = float64(msWritingDelta) / float64(writesDelta)
	} else {
		b.IO.AvgWriteLatencyMs = 0
	}

	b.prevStat = raw
	b.prevSampled = at
	b.pushHistory()
}

func (b *BlockDevice) pushHistory() {
	b.ReadKBpsHistory.Push(b.IO.ReadBytesPerSec / 1024)
	b.WriteKBpsHistory.Push(b.IO.WriteBytesPerSec / 1024)
	b.UtilPctHistory.Push(b.IO.IoUtilPct)
	b.ReadLatencyHistory.Push(b.IO.AvgReadLatencyMs * 1000)
	b.WriteLatencyHistory.Push(b.IO.AvgWriteLatencyMs * 1000)
	if b.Smart != nil && b.Smart.Temperature != nil {
		b.TemperatureHistory.Push(*b.Smart.Temperature)
	} else {
		b.TemperatureHistory.Push(0)
	}
}

// satSub performs saturating subtraction: counters that wrap or reset never
// produce a negative (underflowed) delta.
func satSub(cur, prev uint64) uint64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
