// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"time"

	"github.com/stratastor/dtop/pkg/monitor/alerts"
	"github.com/stratastor/dtop/pkg/monitor/readers"
	"github.com/stratastor/dtop/pkg/monitor/store"
	"github.com/stratastor/dtop/pkg/monitor/types"
)

// discoverDevices runs lsblk and folds newly seen disks into e.devices,
// deleting any previously tracked device lsblk no longer reports; its
// history buffers are discarded with it.
func (e *Engine) discoverDevices(ctx context.Context) {
	out, err := e.lsblk.ListDisksWithChildren(ctx)
	if err != nil {
		e.logger.Warn("lsblk discovery failed", "err", err)
		return
	}

	disks, err := readers.ParseLsblkJSON(out)
	if err != nil {
		e.logger.Warn("lsblk parse failed", "err", err)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	seen := make(map[string]bool, len(disks))
	for _, d := range disks {
		seen[d.Name] = true

		kind := readers.ClassifyDeviceType(d.Rotational, d.Transport, d.Name)
		dev, ok := e.devices[d.Name]
		if !ok {
			dev = types.NewBlockDevice(d.Name, "/dev/"+d.Name, kind)
			e.devices[d.Name] = dev
		}
		dev.Removed = false
		dev.Model = d.Model
		dev.Serial = d.Serial
		dev.CapacityB = d.SizeBytes
		dev.Rotational = d.Rotational
		dev.Transport = d.Transport
		dev.Partitions = d.Partitions
	}

	for name := range e.devices {
		if !seen[name] {
			delete(e.devices, name)
		}
	}
}

// fastTick samples diskstats and process I/O, the two cheap per-2s
// collections, then re-evaluates and dispatches alerts against the
// refreshed state.
func (e *Engine) fastTick(ctx context.Context) {
	now := time.Now()

	stats, err := readers.ReadDiskstats()
	if err != nil {
		e.logger.Warn("diskstats read failed", "err", err)
	}

	procs := readers.ReadAllProcessIO()

	e.mu.Lock()
	for name, dev := range e.devices {
		if dev.Removed {
			continue
		}
		raw, ok := stats[name]
		if !ok {
			continue
		}
		dev.ApplySample(raw, now)

		if dev.IO.WriteBytesPerSec > 0 {
			store.UpdateEndurance(e.endurance, name, dev.IO.WriteBytesPerSec, now.Sub(e.lastFastTick).Seconds(), now)
		}
	}

	for pid, raw := range procs {
		p, ok := e.processes[pid]
		if !ok {
			p = &types.ProcessIO{PID: pid, Comm: raw.Comm, User: e.uidCache.Lookup(raw.UID)}
			e.processes[pid] = p
		}
		p.ApplySample(raw.ReadBytes, raw.WriteBytes, now)
	}
	// Processes that exited between ticks are dropped; their I/O footprint
	// is no longer relevant to a live view.
	for pid := range e.processes {
		if _, ok := procs[pid]; !ok {
			delete(e.processes, pid)
		}
	}

	e.lastFastTick = now
	e.mu.Unlock()

	e.evaluateAndDispatch(ctx, now)
}

// slowTick reconciles the device list via lsblk, then samples filesystems,
// RAID, LVM, ZFS, NFS, and PSI — all cheap relative to SMART but too bursty
// in syscall/process-spawn count for the fast cadence.
func (e *Engine) slowTick(ctx context.Context) {
	e.discoverDevices(ctx)
	now := time.Now()

	fsSamples, err := readers.ReadFilesystemSamples()
	if err != nil {
		e.logger.Warn("filesystem sample failed", "err", err)
	}
	raid := readers.ReadMdstat()
	nfs := readers.ReadNfsMounts()
	pressure, hasPSI := readers.ReadPressure()

	var lvmState types.LvmState
	if out, err := e.lvm.Vgs(ctx); err == nil {
		lvmState.VolumeGroups = readers.ParseVgs(out)
	}
	if out, err := e.lvm.Lvs(ctx); err == nil {
		lvmState.LogicalVolumes = readers.ParseLvs(out)
	}

	var zfs []types.ZfsPool
	if out, err := e.zpool.List(ctx); err == nil {
		zfs = readers.ParseZpoolList(out)
	}

	e.mu.Lock()
	seen := make(map[string]bool, len(fsSamples))
	for _, s := range fsSamples {
		key := s.MountPoint
		seen[key] = true

		fs, ok := e.filesystems[key]
		if !ok {
			fs = &types.Filesystem{Device: s.Device, MountPoint: s.MountPoint, FSType: s.FSType}
			e.filesystems[key] = fs
		}
		fs.ApplySample(s.Stats.UsedBytes, s.Stats.TotalBytes, s.Stats.AvailableBytes, s.Stats.TotalInodes, s.Stats.FreeInodes, now)
	}
	for key := range e.filesystems {
		if !seen[key] {
			delete(e.filesystems, key)
		}
	}

	e.raid = raid
	e.lvmState = lvmState
	e.zfs = zfs
	e.nfs = nfs
	e.pressure = pressure
	e.hasPSI = hasPSI
	e.lastSlowTick = now
	e.mu.Unlock()
}

// smartTick enqueues a non-blocking SMART poll for every tracked,
// present device. Results land on the scheduler's channel and are folded
// in by drainSmartResults, which runs every fast tick.
func (e *Engine) smartTick(ctx context.Context) {
	e.mu.RLock()
	type target struct{ name, path string }
	targets := make([]target, 0, len(e.devices))
	for name, dev := range e.devices {
		if !dev.Removed {
			targets = append(targets, target{name: name, path: dev.Path})
		}
	}
	e.mu.RUnlock()

	for _, t := range targets {
		e.scheduler.Poll(ctx, t.name, t.path)
	}
}

// drainSmartResults folds completed SMART polls into device state,
// rotating Smart into PrevSmart so the alert evaluator can detect
// pre-fail attribute degradation, and updates every SMART-adjacent
// persisted store.
func (e *Engine) drainSmartResults() {
	results := e.scheduler.Drain()
	if len(results) == 0 {
		return
	}

	now := time.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, r := range results {
		dev, ok := e.devices[r.Device]
		if !ok {
			continue
		}
		if r.Err != nil {
			e.logger.Warn("smartctl poll failed", "device", r.Device, "err", r.Err)
			continue
		}

		dev.PrevSmart = dev.Smart
		dev.Smart = r.Data
		dev.LastSmartPoll = r.PolledAt
		if r.Data.Temperature != nil {
			dev.TemperatureHistory.Push(*r.Data.Temperature)
		}

		e.smartCache[r.Device] = r.Data
		store.AppendHealthScore(e.healthHist, r.Device, r.Data.HealthScore(dev.Rotational))
		store.UpdateAnomalyLog(e.anomalyLog, r.Device, r.Data, now)
	}

	store.SaveSmartCache(e.logger, e.dataDir, e.smartCache)
	store.SaveHealthHistory(e.logger, e.dataDir, e.healthHist)
	store.SaveAnomalyLog(e.logger, e.dataDir, e.anomalyLog)
}

// evaluateAndDispatch runs the pure alert evaluator against the current
// snapshot and hands the result to the dispatcher, which applies
// cooldown/ack suppression and fires notifications for anything new.
func (e *Engine) evaluateAndDispatch(ctx context.Context, now time.Time) {
	th := alerts.Thresholds{
		HDDTempWarnC:    e.cfg.Thresholds.HDDTempWarnC,
		HDDTempCritC:    e.cfg.Thresholds.HDDTempCritC,
		NonHDDTempWarnC: e.cfg.Thresholds.NonHDDTempWarnC,
		NonHDDTempCritC: e.cfg.Thresholds.NonHDDTempCritC,
		FsUsePctWarn:    e.cfg.Thresholds.FsUsePctWarn,
		FsUsePctCrit:    e.cfg.Thresholds.FsUsePctCrit,
		FsInodePctWarn:  e.cfg.Thresholds.FsInodePctWarn,
		FsInodePctCrit:  e.cfg.Thresholds.FsInodePctCrit,
		IoUtilSustained: e.cfg.Thresholds.IoUtilSustained,
	}

	e.mu.RLock()
	devices := make([]*types.BlockDevice, 0, len(e.devices))
	for _, d := range e.devices {
		if !d.Removed {
			devices = append(devices, d)
		}
	}
	filesystems := make([]*types.Filesystem, 0, len(e.filesystems))
	for _, f := range e.filesystems {
		filesystems = append(filesystems, f)
	}
	raid := append([]types.RaidArray(nil), e.raid...)
	zfs := append([]types.ZfsPool(nil), e.zfs...)
	e.mu.RUnlock()

	evaluated := alerts.Evaluate(devices, filesystems, raid, zfs, th, now)
	current, fresh := e.dispatcher.Dispatch(ctx, evaluated, now)

	e.mu.Lock()
	e.currentAlerts = current
	e.mu.Unlock()

	if len(fresh) > 0 {
		store.AppendAlertLog(e.logger, e.dataDir, fresh, now)
	}
}
