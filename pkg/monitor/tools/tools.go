// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package tools wraps the external commands dtop shells out to: smartctl,
// lsblk, zpool, and the LVM report tools. Each executor validates and runs
// its command through internal/command and returns raw output for a reader
// to parse.
package tools

import (
	"context"
	"time"

	"github.com/stratastor/logger"
	"github.com/stratastor/dtop/internal/command"
)

// SmartctlExecutor wraps smartctl command execution with JSON output.
type SmartctlExecutor struct {
	logger   logger.Logger
	executor *command.CommandExecutor
	path     string
}

func NewSmartctlExecutor(l logger.Logger, path string, useSudo bool) *SmartctlExecutor {
	executor := command.NewCommandExecutor(useSudo)
	executor.Timeout = 60 * time.Second
	return &SmartctlExecutor{logger: l, executor: executor, path: path}
}

// GetAll gets complete SMART data (attributes + health) for one device.
// devicePath must be the full device node (e.g. "/dev/sda") — smartctl
// resolves a bare name relative to its working directory, not /dev.
func (s *SmartctlExecutor) GetAll(ctx context.Context, devicePath string) ([]byte, error) {
	s.logger.Debug("polling SMART data", "device", devicePath)
	return s.executor.ExecuteWithCombinedOutput(ctx, s.path, "--json", "--all", devicePath)
}

// LsblkExecutor wraps lsblk command execution.
type LsblkExecutor struct {
	logger   logger.Logger
	executor *command.CommandExecutor
	path     string
}

func NewLsblkExecutor(l logger.Logger, path string, useSudo bool) *LsblkExecutor {
	executor := command.NewCommandExecutor(useSudo)
	executor.Timeout = 10 * time.Second
	return &LsblkExecutor{logger: l, executor: executor, path: path}
}

// ListDisksWithChildren lists disk devices with their partitions.
func (l *LsblkExecutor) ListDisksWithChildren(ctx context.Context) ([]byte, error) {
	l.logger.Debug("listing block devices")
	return l.executor.ExecuteWithCombinedOutput(ctx, l.path,
		"--json", "--bytes", "-o",
		"NAME,TYPE,SIZE,FSTYPE,MOUNTPOINT,MODEL,SERIAL,ROTA,TRAN,VENDOR",
	)
}

// ZpoolExecutor wraps zpool command execution.
type ZpoolExecutor struct {
	logger   logger.Logger
	executor *command.CommandExecutor
	path     string
}

func NewZpoolExecutor(l logger.Logger, path string, useSudo bool) *ZpoolExecutor {
	executor := command.NewCommandExecutor(useSudo)
	executor.Timeout = 15 * time.Second
	return &ZpoolExecutor{logger: l, executor: executor, path: path}
}

// List returns a tab-delimited pool summary. ZFS being absent is expected on
// most hosts — callers treat a command-not-found error as "no pools".
func (z *ZpoolExecutor) List(ctx context.Context) ([]byte, error) {
	z.logger.Debug("listing zfs pools")
	return z.executor.ExecuteWithCombinedOutput(ctx, z.path,
		"list", "-Hp", "-o", "name,size,alloc,free,health,frag",
	)
}

// LvmExecutor wraps the vgs/lvs/pvs report tools.
type LvmExecutor struct {
	logger     logger.Logger
	vgsPath    string
	lvsPath    string
	executor   *command.CommandExecutor
}

func NewLvmExecutor(l logger.Logger, useSudo bool) *LvmExecutor {
	executor := command.NewCommandExecutor(useSudo)
	executor.Timeout = 10 * time.Second
	return &LvmExecutor{logger: l, vgsPath: "vgs", lvsPath: "lvs", executor: executor}
}

func (lv *LvmExecutor) Vgs(ctx context.Context) ([]byte, error) {
	lv.logger.Debug("listing volume groups")
	return lv.executor.ExecuteWithCombinedOutput(ctx, lv.vgsPath,
		"--noheadings", "--nosuffix", "--units", "b",
		"-o", "vg_name,vg_size,vg_free,pv_count",
	)
}

func (lv *LvmExecutor) Lvs(ctx context.Context) ([]byte, error) {
	lv.logger.Debug("listing logical volumes")
	return lv.executor.ExecuteWithCombinedOutput(ctx, lv.lvsPath,
		"--noheadings", "--nosuffix", "--units", "b",
		"-o", "lv_name,vg_name,lv_size,data_percent",
	)
}

// NotifySendExecutor wraps desktop alert notifications.
type NotifySendExecutor struct {
	logger   logger.Logger
	executor *command.CommandExecutor
	path     string
}

func NewNotifySendExecutor(l logger.Logger) *NotifySendExecutor {
	executor := command.NewCommandExecutor(false)
	executor.Timeout = 5 * time.Second
	return &NotifySendExecutor{logger: l, executor: executor, path: "notify-send"}
}

// Send fires a best-effort desktop notification. notify-send being absent
// (headless server, no session bus) is expected and not logged as an error.
func (n *NotifySendExecutor) Send(ctx context.Context, urgency, title, body string) error {
	_, err := n.executor.ExecuteWithCombinedOutput(ctx, n.path, "--urgency="+urgency, title, body)
	if err != nil {
		n.logger.Debug("desktop notification not delivered", "err", err)
	}
	return err
}
