// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sevlyar/go-daemon"
	"github.com/spf13/cobra"
	"github.com/stratastor/logger"

	"github.com/stratastor/dtop/config"
	"github.com/stratastor/dtop/internal/constants"
	"github.com/stratastor/dtop/pkg/lifecycle"
	"github.com/stratastor/dtop/pkg/monitor/engine"
)

var (
	detached   bool
	configPath string
)

// newRunCmd starts the collection engine. Foreground by default; -d backgrounds
// it as a daemon.
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the dtop collection engine",
		Run:   runEngine,
	}

	cmd.Flags().BoolVarP(&detached, "detach", "d", false, "Run as a background daemon")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	return cmd
}

func runEngine(cmd *cobra.Command, args []string) {
	cfg := config.LoadConfig(configPath)

	pidFile := filepath.Join(config.GetDataDir(), constants.DtopPIDFileName)
	if err := lifecycle.EnsureSingleInstance(pidFile); err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}

	if detached {
		logFile := filepath.Join(config.GetDataDir(), "dtop.log")
		dctx := &daemon.Context{
			PidFileName: pidFile,
			PidFilePerm: 0644,
			LogFileName: logFile,
			LogFilePerm: 0640,
			WorkDir:     "/",
			Umask:       027,
			Args:        []string{"dtop", "run"},
		}

		d, err := dctx.Reborn()
		if err != nil {
			fmt.Printf("Failed to start daemon: %v\n", err)
			os.Exit(1)
		}
		if d != nil {
			fmt.Println("dtop is running as a daemon")
			return
		}
		defer dctx.Release()
	}

	startEngine(cfg)
}

func startEngine(cfg *config.Config) {
	logCfg := config.NewLoggerConfig(cfg)
	l, err := logger.NewTag(logCfg, "engine")
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lifecycle.RegisterContextCanceller(cancel)

	eng := engine.New(l, cfg)

	lifecycle.RegisterShutdownHook(func() {
		l.Info("shutting down dtop engine")
	})

	go lifecycle.HandleSignals(ctx)

	l.Info("dtop engine starting")
	if err := eng.Run(ctx); err != nil {
		l.Error("engine stopped with error", "err", err)
		os.Exit(1)
	}
}
