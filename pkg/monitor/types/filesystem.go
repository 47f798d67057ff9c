// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package types

import "time"

// Filesystem is one mounted filesystem sampled from /proc/mounts + statvfs.
type Filesystem struct {
	Device     string
	MountPoint string
	FSType     string

	TotalBytes     uint64
	UsedBytes      uint64
	AvailableBytes uint64
	UsedPct        float64

	TotalInodes uint64
	FreeInodes  uint64

	// FillRate holds the most recently computed bytes-consumed-per-hour
	// figure; it is 0 until a second sample establishes a delta.
	FillRateBytesPerHour float64
	// DaysUntilFull is -1 when the fill rate is zero or negative (not
	// filling, or emptying).
	DaysUntilFull float64

	prevUsedBytes uint64
	prevSampled   time.Time
	hasPrev       bool
}

// ApplySample updates used/available/inode figures and, given a prior
// sample, derives the fill rate and days-until-full projection.
func (f *Filesystem) ApplySample(usedBytes, totalBytes, availableBytes, totalInodes, freeInodes uint64, at time.Time) {
	f.TotalBytes = totalBytes
	f.UsedBytes = usedBytes
	f.AvailableBytes = availableBytes
	f.TotalInodes = totalInodes
	f.FreeInodes = freeInodes
	if totalBytes > 0 {
		f.UsedPct = float64(usedBytes) / float64(totalBytes) * 100
	}

	if !f.hasPrev {
		f.prevUsedBytes = usedBytes
		f.prevSampled = at
		f.hasPrev = true
		f.FillRateBytesPerHour = 0
		f.DaysUntilFull = -1
		return
	}

	elapsedHours := at.Sub(f.prevSampled).Hours()
	if elapsedHours <= 0 {
		return
	}

	delta := int64(usedBytes) - int64(f.prevUsedBytes)
	f.FillRateBytesPerHour = float64(delta) / elapsedHours

	if f.FillRateBytesPerHour > 0 && availableBytes > 0 {
		hoursLeft := float64(availableBytes) / f.FillRateBytesPerHour
		f.DaysUntilFull = hoursLeft / 24
	} else {
		f.DaysUntilFull = -1
	}

	f.prevUsedBytes = usedBytes
	f.prevSampled = at
}
