// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package alerts implements the pure alert-condition evaluator and the
// stateful dispatcher (webhook, desktop notify, log, cooldown/ack) that
// acts on its output.
package alerts

import (
	"fmt"
	"sort"
	"time"

	"github.com/stratastor/dtop/pkg/monitor/types"
)

// Thresholds bundles the tunables the evaluator checks against; all are
// sourced from config.Config.Thresholds.
type Thresholds struct {
	HDDTempWarnC    int
	HDDTempCritC    int
	NonHDDTempWarnC int
	NonHDDTempCritC int
	FsUsePctWarn    float64
	FsUsePctCrit    float64
	FsInodePctWarn  float64
	FsInodePctCrit  float64
	IoUtilSustained float64
}

// Evaluate is a pure function: given the current device, filesystem, RAID,
// and ZFS snapshots, it returns every alert condition currently true,
// sorted Critical > Warning > Info. It has no side effects and does not
// consult cooldown/ack state — that is the dispatcher's job.
func Evaluate(devices []*types.BlockDevice, filesystems []*types.Filesystem, raid []types.RaidArray, zfs []types.ZfsPool, th Thresholds, now time.Time) []types.Alert {
	var out []types.Alert

	for _, dev := range devices {
		out = append(out, evaluateDevice(dev, th, now)...)
	}
	for _, fs := range filesystems {
		out = append(out, evaluateFilesystem(fs, th, now)...)
	}
	for _, r := range raid {
		out = append(out, evaluateRaid(r, now)...)
	}
	for _, z := range zfs {
		out = append(out, evaluateZfs(z, now)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity.Rank() > out[j].Severity.Rank()
	})
	return out
}

func evaluateDevice(dev *types.BlockDevice, th Thresholds, now time.Time) []types.Alert {
	var out []types.Alert
	mk := func(sev types.Severity, msg string) types.Alert {
		return types.Alert{Severity: sev, Prefix: "SMART", Source: dev.Name, Message: msg, Timestamp: now}
	}

	smart := dev.Smart
	if smart == nil {
		if dev.IO.IoUtilPct >= th.IoUtilSustained {
			out = append(out, types.Alert{Severity: types.SeverityWarning, Prefix: "IO", Source: dev.Name,
				Message: fmt.Sprintf("I/O utilisation %.0f%% (sustained)", dev.IO.IoUtilPct), Timestamp: now})
		}
		return out
	}

	if smart.Status == types.SmartFailed {
		out = append(out, mk(types.SeverityCritical, "SMART health check FAILED"))
	}

	if smart.Temperature != nil {
		temp := *smart.Temperature
		warn, crit := th.NonHDDTempWarnC, th.NonHDDTempCritC
		if dev.Rotational {
			warn, crit = th.HDDTempWarnC, th.HDDTempCritC
		}
		switch {
		case temp >= crit:
			out = append(out, types.Alert{Severity: types.SeverityCritical, Prefix: "TEMP", Source: dev.Name,
				Message: fmt.Sprintf("Temperature %d°C ≥ critical threshold %d°C", temp, crit), Timestamp: now})
		case temp >= warn:
			out = append(out, types.Alert{Severity: types.SeverityWarning, Prefix: "TEMP", Source: dev.Name,
				Message: fmt.Sprintf("Temperature %d°C ≥ warning threshold %d°C", temp, warn), Timestamp: now})
		}
	}

	for _, a := range smart.Attributes {
		if a.AtRisk() {
			out = append(out, mk(types.SeverityWarning,
				fmt.Sprintf("Pre-fail attr %s value %d near threshold %d", a.Name, a.Value, a.Thresh)))
		}
	}

	if v := attrRawValue(smart.Attributes, 197); v > 0 {
		out = append(out, mk(types.SeverityWarning, fmt.Sprintf("%d pending sector(s) detected", v)))
	}
	if v := attrRawValue(smart.Attributes, 5); v > 0 {
		out = append(out, mk(types.SeverityWarning, fmt.Sprintf("%d reallocated sector(s)", v)))
	}

	if dev.PrevSmart != nil {
		for _, cur := range smart.Attributes {
			if !cur.Prefail {
				continue
			}
			if prev, ok := findAttr(dev.PrevSmart.Attributes, cur.ID); ok && cur.Value < prev.Value {
				out = append(out, mk(types.SeverityWarning,
					fmt.Sprintf("Pre-fail attr %s degraded %d → %d (↓%d)", cur.Name, prev.Value, cur.Value, prev.Value-cur.Value)))
			}
		}
	}

	if smart.Nvme != nil {
		n := smart.Nvme
		if n.MediaErrors > 0 {
			out = append(out, mk(types.SeverityWarning, fmt.Sprintf("%d uncorrectable media error(s)", n.MediaErrors)))
		}
		if n.AvailableSparePct < n.AvailableSpareThreshold {
			out = append(out, mk(types.SeverityWarning,
				fmt.Sprintf("NVMe spare %d%% below threshold %d%%", n.AvailableSparePct, n.AvailableSpareThreshold)))
		}
		if n.CriticalWarning != 0 {
			out = append(out, mk(types.SeverityCritical, fmt.Sprintf("NVMe critical warning byte: 0x%02X", n.CriticalWarning)))
		}
	}

	if dev.IO.IoUtilPct >= th.IoUtilSustained {
		out = append(out, types.Alert{Severity: types.SeverityWarning, Prefix: "IO", Source: dev.Name,
			Message: fmt.Sprintf("I/O utilisation %.0f%% (sustained)", dev.IO.IoUtilPct), Timestamp: now})
	}

	return out
}

func evaluateFilesystem(fs *types.Filesystem, th Thresholds, now time.Time) []types.Alert {
	var out []types.Alert

	switch {
	case fs.UsedPct >= th.FsUsePctCrit:
		out = append(out, types.Alert{Severity: types.SeverityCritical, Prefix: "FS", Source: fs.MountPoint,
			Message: fmt.Sprintf("%.0f%% full — critically low space", fs.UsedPct), Timestamp: now})
	case fs.UsedPct >= th.FsUsePctWarn:
		out = append(out, types.Alert{Severity: types.SeverityWarning, Prefix: "FS", Source: fs.MountPoint,
			Message: fmt.Sprintf("%.0f%% full", fs.UsedPct), Timestamp: now})
	}

	inodePct := 0.0
	if fs.TotalInodes > 0 {
		inodePct = float64(fs.TotalInodes-fs.FreeInodes) / float64(fs.TotalInodes) * 100
	}
	switch {
	case inodePct >= th.FsInodePctCrit:
		out = append(out, types.Alert{Severity: types.SeverityCritical, Prefix: "FS", Source: fs.MountPoint,
			Message: fmt.Sprintf("Inodes %.0f%% used — critically low", inodePct), Timestamp: now})
	case inodePct >= th.FsInodePctWarn:
		out = append(out, types.Alert{Severity: types.SeverityWarning, Prefix: "FS", Source: fs.MountPoint,
			Message: fmt.Sprintf("Inodes %.0f%% used", inodePct), Timestamp: now})
	}

	return out
}

func evaluateRaid(r types.RaidArray, now time.Time) []types.Alert {
	var out []types.Alert

	if r.Degraded() {
		out = append(out, types.Alert{Severity: types.SeverityCritical, Prefix: "RAID", Source: r.Name,
			Message: fmt.Sprintf("array degraded: %d/%d devices active", r.ActiveDevices, r.TotalDevices), Timestamp: now})
	}

	if r.SyncPct > 0 {
		out = append(out, types.Alert{Severity: types.SeverityWarning, Prefix: "RAID", Source: r.Name,
			Message: fmt.Sprintf("rebuilding %.0f%%", r.SyncPct), Timestamp: now})
	}

	return out
}

func evaluateZfs(z types.ZfsPool, now time.Time) []types.Alert {
	var out []types.Alert

	if !z.Healthy() {
		out = append(out, types.Alert{Severity: types.SeverityCritical, Prefix: "ZFS", Source: z.Name,
			Message: fmt.Sprintf("pool health: %s", z.Health), Timestamp: now})
	}

	return out
}

func attrRawValue(attrs []types.SmartAttribute, id int) uint64 {
	if a, ok := findAttr(attrs, id); ok {
		return a.RawValue
	}
	return 0
}

func findAttr(attrs []types.SmartAttribute, id int) (types.SmartAttribute, bool) {
	for _, a := range attrs {
		if a.ID == id {
			return a, true
		}
	}
	return types.SmartAttribute{}, false
}
