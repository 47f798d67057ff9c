// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package types

import "time"

// RaidArray is one software RAID array parsed from /proc/mdstat.
type RaidArray struct {
	Name          string // e.g. "md0"
	Level         string // "raid1", "raid5", ...
	Members       []string
	ActiveDevices int
	TotalDevices  int
	State         string // "active", "degraded", "resync", "recovering"
	SyncPct       float64
}

// Degraded reports whether fewer devices are active than the array expects.
func (r RaidArray) Degraded() bool {
	return r.ActiveDevices < r.TotalDevices
}

// LogicalVolume is one lvs row.
type LogicalVolume struct {
	Name        string
	VolumeGroup string
	SizeBytes   uint64
	UsedPct     float64
}

// VolumeGroup is one vgs row.
type VolumeGroup struct {
	Name          string
	SizeBytes     uint64
	FreeBytes     uint64
	PhysicalCount int
}

// LvmState aggregates LVM topology for one poll.
type LvmState struct {
	VolumeGroups   []VolumeGroup
	LogicalVolumes []LogicalVolume
}

// ZfsPool is one row of `zpool list -Hp` output.
type ZfsPool struct {
	Name      string
	SizeBytes uint64
	AllocB    uint64
	FreeB     uint64
	CapPct    float64
	Health    string // "ONLINE", "DEGRADED", "FAULTED", ...
	Fragment  float64
}

// Healthy reports whether the pool is in its nominal state.
func (z ZfsPool) Healthy() bool {
	return z.Health == "ONLINE"
}

// NfsMount is one client-side NFS mount's state-machine snapshot, derived
// from /proc/self/mountstats.
type NfsMount struct {
	Server       string
	Export       string
	MountPoint   string
	Version      string
	RTTMs        float64
	RetransCount uint64
	TimeoutCount uint64
}

// NfsMountStats is the full set of NFS mounts sampled on one slow tick.
type NfsMountStats struct {
	Mounts []NfsMount
}

// PressureLine is one resource's avg10/avg60/avg300/total figures from a
// /proc/pressure/{cpu,memory,io} "some" or "full" line.
type PressureLine struct {
	Avg10  float64
	Avg60  float64
	Avg300 float64
	Total  uint64
}

// SystemPressure is the PSI snapshot for one slow tick.
type SystemPressure struct {
	CPUSome    PressureLine
	MemorySome PressureLine
	MemoryFull PressureLine
	IOSome     PressureLine
	IOFull     PressureLine
}

// ProcessIO is one process's disk-I/O footprint, from /proc/<pid>/io.
type ProcessIO struct {
	PID           int
	Comm          string
	User          string
	ReadBytes     uint64
	WriteBytes    uint64
	ReadBytesRate float64
	WriteBytesRate float64

	prevReadBytes  uint64
	prevWriteBytes uint64
	prevSampled    time.Time
	hasPrev        bool
}

// ApplySample derives this tick's read/write byte rates via saturating
// subtraction against the previous sample.
func (p *ProcessIO) ApplySample(readBytes, writeBytes uint64, at time.Time) {
	if !p.hasPrev {
		p.prevReadBytes = readBytes
		p.prevWriteBytes = writeBytes
		p.prevSampled = at
		p.hasPrev = true
		p.ReadBytes = readBytes
		p.WriteBytes = writeBytes
		return
	}

	elapsed := at.Sub(p.prevSampled).Seconds()
	if elapsed <= 0 {
		elapsed = 1
	}

	p.ReadBytesRate = float64(satSub(readBytes, p.prevReadBytes)) / elapsed
	p.WriteBytesRate = float64(satSub(writeBytes, p.prevWriteBytes)) / elapsed
	p.ReadBytes = readBytes
	p.WriteBytes = writeBytes
	p.prevReadBytes = readBytes
	p.prevWriteBytes = writeBytes
	p.prevSampled = at
}
