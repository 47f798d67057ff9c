// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package engine drives dtop's three-cadence collection loop: a fast tick
// for disk I/O and process I/O, a slow tick for device discovery,
// filesystems, RAID, LVM, ZFS, NFS and PSI, and a SMART tick for device health polling. It owns
// every tracked device/filesystem's lifecycle and exposes read-only
// snapshots for a presentation layer to render.
package engine

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/stratastor/logger"

	"github.com/stratastor/dtop/config"
	"github.com/stratastor/dtop/pkg/errors"
	"github.com/stratastor/dtop/pkg/monitor/alerts"
	"github.com/stratastor/dtop/pkg/monitor/readers"
	"github.com/stratastor/dtop/pkg/monitor/smart"
	"github.com/stratastor/dtop/pkg/monitor/store"
	"github.com/stratastor/dtop/pkg/monitor/tools"
	"github.com/stratastor/dtop/pkg/monitor/types"
)

// Engine holds every piece of tracked state and runs the collection loop.
type Engine struct {
	logger logger.Logger
	cfg    *config.Config

	smartctl  *tools.SmartctlExecutor
	lsblk     *tools.LsblkExecutor
	zpool     *tools.ZpoolExecutor
	lvm       *tools.LvmExecutor
	scheduler *smart.Scheduler

	mu          sync.RWMutex
	devices     map[string]*types.BlockDevice
	filesystems map[string]*types.Filesystem
	processes   map[int]*types.ProcessIO
	uidCache    *readers.UIDUsernameCache

	raid     []types.RaidArray
	lvmState types.LvmState
	zfs      []types.ZfsPool
	nfs      types.NfsMountStats
	pressure types.SystemPressure
	hasPSI   bool

	dispatcher *alerts.Dispatcher

	smartCache  store.SmartCache
	healthHist  store.HealthHistory
	endurance   store.EnduranceMap
	anomalyLog  store.AnomalyLog
	baselineDir string
	dataDir     string

	lastFastTick time.Time
	lastSlowTick time.Time

	currentAlerts []types.Alert
}

// New constructs an Engine wired from cfg. It loads every persisted store
// under cfg.DataDir, so a restart resumes with prior SMART/health/alert
// state instead of starting cold.
func New(l logger.Logger, cfg *config.Config) *Engine {
	smartctl := tools.NewSmartctlExecutor(l, cfg.Tools.SmartctlPath, cfg.Tools.UseSudo)
	lsblk := tools.NewLsblkExecutor(l, cfg.Tools.LsblkPath, cfg.Tools.UseSudo)
	zpool := tools.NewZpoolExecutor(l, cfg.Tools.ZpoolPath, cfg.Tools.UseSudo)
	lvm := tools.NewLvmExecutor(l, cfg.Tools.UseSudo)

	dataDir := cfg.DataDir
	baselineDir := dataDir + "/baselines"

	acked := store.LoadAckedAlerts(l, dataDir)

	e := &Engine{
		logger:      l,
		cfg:         cfg,
		smartctl:    smartctl,
		lsblk:       lsblk,
		zpool:       zpool,
		lvm:         lvm,
		scheduler:   smart.NewScheduler(l, smartctl),
		devices:     make(map[string]*types.BlockDevice),
		filesystems: make(map[string]*types.Filesystem),
		processes:   make(map[int]*types.ProcessIO),
		uidCache:    readers.NewUIDUsernameCache(),
		dispatcher:  alerts.NewDispatcher(l, cfg.Alerts.WebhookURL, cfg.Alerts.NotifyWarning, cfg.Alerts.DesktopNotify, cfg.Alerts.CooldownHours, acked),
		smartCache:  store.LoadSmartCache(l, dataDir),
		healthHist:  store.LoadHealthHistory(l, dataDir),
		endurance:   store.LoadEnduranceMap(l, dataDir),
		anomalyLog:  store.LoadAnomalyLog(l, dataDir),
		baselineDir: baselineDir,
		dataDir:     dataDir,
	}
	return e
}

// Run drives the collection loop until ctx is cancelled. It performs one
// synchronous discovery pass before entering the loop so the first
// snapshot is never empty.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info("starting dtop engine",
		"fast_tick_ms", e.cfg.Engine.FastTickMS,
		"slow_tick_ms", e.cfg.Engine.SlowTickMS,
		"smart_tick_ms", e.cfg.Engine.SmartTickMS)

	e.discoverDevices(ctx)
	e.fastTick(ctx)
	e.slowTick(ctx)

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return errors.Wrap(err, errors.EngineInvariantViolation).WithMetadata("operation", "create_scheduler")
	}

	fastInterval := time.Duration(e.cfg.Engine.FastTickMS) * time.Millisecond
	slowInterval := time.Duration(e.cfg.Engine.SlowTickMS) * time.Millisecond
	smartInterval := time.Duration(e.cfg.Engine.SmartTickMS) * time.Millisecond

	if _, err := scheduler.NewJob(
		gocron.DurationJob(fastInterval),
		gocron.NewTask(func() { e.fastTick(ctx) }),
	); err != nil {
		return errors.Wrap(err, errors.EngineInvariantViolation).WithMetadata("job", "fast_tick")
	}

	if _, err := scheduler.NewJob(
		gocron.DurationJob(slowInterval),
		gocron.NewTask(func() { e.slowTick(ctx) }),
	); err != nil {
		return errors.Wrap(err, errors.EngineInvariantViolation).WithMetadata("job", "slow_tick")
	}

	if _, err := scheduler.NewJob(
		gocron.DurationJob(smartInterval),
		gocron.NewTask(func() { e.smartTick(ctx) }),
	); err != nil {
		return errors.Wrap(err, errors.EngineInvariantViolation).WithMetadata("job", "smart_tick")
	}

	// Drain scheduler results every fast tick regardless of which job fired,
	// so a completed SMART poll shows up promptly instead of waiting for the
	// next SMART tick.
	if _, err := scheduler.NewJob(
		gocron.DurationJob(fastInterval),
		gocron.NewTask(func() { e.drainSmartResults() }),
	); err != nil {
		return errors.Wrap(err, errors.EngineInvariantViolation).WithMetadata("job", "smart_drain")
	}

	scheduler.Start()
	e.smartTick(ctx) // kick off the first SMART poll immediately rather than waiting a full smartInterval

	<-ctx.Done()

	e.logger.Info("stopping dtop engine")
	if err := scheduler.Shutdown(); err != nil {
		e.logger.Warn("error stopping scheduler", "err", err)
	}

	e.persist()
	return nil
}

// persist flushes every store to disk; best-effort, called on shutdown.
func (e *Engine) persist() {
	e.mu.RLock()
	defer e.mu.RUnlock()

	store.SaveSmartCache(e.logger, e.dataDir, e.smartCache)
	store.SaveHealthHistory(e.logger, e.dataDir, e.healthHist)
	store.SaveEnduranceMap(e.logger, e.dataDir, e.endurance)
	store.SaveAnomalyLog(e.logger, e.dataDir, e.anomalyLog)
	store.SaveAckedAlerts(e.logger, e.dataDir, e.dispatcher.AckedAlerts())
}

// Snapshot is the read-only view of current engine state a presentation
// layer renders.
type Snapshot struct {
	Devices     []*types.BlockDevice
	Filesystems []*types.Filesystem
	Processes   []*types.ProcessIO
	Raid        []types.RaidArray
	Lvm         types.LvmState
	Zfs         []types.ZfsPool
	Nfs         types.NfsMountStats
	Pressure    types.SystemPressure
	HasPSI      bool
	Alerts      []types.Alert
	AlertLog    []types.Alert
}

// Snapshot returns a read-only copy of current state. Devices are sorted by
// DeviceType.SortIndex() then name.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	devices := make([]*types.BlockDevice, 0, len(e.devices))
	for _, d := range e.devices {
		devices = append(devices, d)
	}
	sort.Slice(devices, func(i, j int) bool {
		if devices[i].Kind.SortIndex() != devices[j].Kind.SortIndex() {
			return devices[i].Kind.SortIndex() < devices[j].Kind.SortIndex()
		}
		return devices[i].Name < devices[j].Name
	})

	filesystems := make([]*types.Filesystem, 0, len(e.filesystems))
	for _, f := range e.filesystems {
		filesystems = append(filesystems, f)
	}
	sort.Slice(filesystems, func(i, j int) bool { return filesystems[i].MountPoint < filesystems[j].MountPoint })

	processes := make([]*types.ProcessIO, 0, len(e.processes))
	for _, p := range e.processes {
		processes = append(processes, p)
	}

	return Snapshot{
		Devices:     devices,
		Filesystems: filesystems,
		Processes:   processes,
		Raid:        e.raid,
		Lvm:         e.lvmState,
		Zfs:         e.zfs,
		Nfs:         e.nfs,
		Pressure:    e.pressure,
		HasPSI:      e.hasPSI,
		Alerts:      e.currentAlerts,
		AlertLog:    e.dispatcher.History(),
	}
}

// AckAlert acknowledges an alert by key: the alert stays in the current
// list but no longer triggers notifications, for as long as the engine runs.
func (e *Engine) AckAlert(key string) {
	e.dispatcher.Ack(key)
}

// SaveBaseline snapshots the given device's current SMART data as its new
// comparison baseline.
func (e *Engine) SaveBaseline(device string) {
	e.mu.RLock()
	dev, ok := e.devices[device]
	e.mu.RUnlock()
	if !ok || dev.Smart == nil {
		return
	}
	store.SaveBaseline(e.logger, e.baselineDir, device, dev.Smart, time.Now())
}
