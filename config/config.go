// Copyright 2024 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"github.com/stratastor/logger"
	"github.com/stratastor/dtop/internal/constants"
	"gopkg.in/yaml.v3"
)

var (
	instance   *Config
	once       sync.Once
	configPath string // Tracks where the config was loaded from
)

// Config is the engine's single configuration object: tick cadences, alert
// thresholds, alert delivery, and tool paths. There is deliberately no
// section here for anything a terminal UI or report formatter would own.
type Config struct {
	Engine struct {
		FastTickMS  int `mapstructure:"fastTickMs"`
		SlowTickMS  int `mapstructure:"slowTickMs"`
		SmartTickMS int `mapstructure:"smartTickMs"`
	} `mapstructure:"engine"`

	Thresholds struct {
		HDDTempWarnC     int `mapstructure:"hddTempWarnC"`
		HDDTempCritC     int `mapstructure:"hddTempCritC"`
		NonHDDTempWarnC  int `mapstructure:"nonHddTempWarnC"`
		NonHDDTempCritC  int `mapstructure:"nonHddTempCritC"`
		FsUsePctWarn     float64 `mapstructure:"fsUsePctWarn"`
		FsUsePctCrit     float64 `mapstructure:"fsUsePctCrit"`
		FsInodePctWarn   float64 `mapstructure:"fsInodePctWarn"`
		FsInodePctCrit   float64 `mapstructure:"fsInodePctCrit"`
		IoUtilSustained  float64 `mapstructure:"ioUtilSustainedPct"`
	} `mapstructure:"thresholds"`

	Alerts struct {
		WebhookURL     string `mapstructure:"webhookURL"`
		NotifyWarning  bool   `mapstructure:"notifyWarning"`
		CooldownHours  int    `mapstructure:"cooldownHours"`
		DesktopNotify  bool   `mapstructure:"desktopNotify"`
	} `mapstructure:"alerts"`

	Tools struct {
		SmartctlPath string `mapstructure:"smartctlPath"`
		LsblkPath    string `mapstructure:"lsblkPath"`
		ZpoolPath    string `mapstructure:"zpoolPath"`
		UseSudo      bool   `mapstructure:"useSudo"`
	} `mapstructure:"tools"`

	Logger struct {
		LogLevel     string `mapstructure:"logLevel"`
		EnableSentry bool   `mapstructure:"enableSentry"`
		SentryDSN    string `mapstructure:"sentryDSN"`
	} `mapstructure:"logger"`

	DataDir string `mapstructure:"dataDir"`

	Environment string `mapstructure:"environment"`
}

// LoadConfig loads the configuration with precedence rules: explicit path >
// DTOP_CONFIG env var > system/user default.
func LoadConfig(configFilePath string) *Config {
	once.Do(func() {
		logConfig := logger.Config{LogLevel: "info", EnableSentry: false, SentryDSN: ""}
		l, err := logger.NewTag(logConfig, "config")
		if err != nil {
			fmt.Printf("Failed to create logger: %v\n", err)
			os.Exit(1)
		}

		viper.Reset()
		viper.SetConfigType("yaml")

		systemConfigPath := filepath.Join(GetConfigDir(), constants.ConfigFileName)

		if configFilePath != "" {
			configPath = configFilePath
		} else if envPath := os.Getenv("DTOP_CONFIG"); envPath != "" {
			configPath = envPath
		} else {
			configPath = systemConfigPath
		}

		l.Info("Using config file", "path", configPath)

		if absPath, err := filepath.Abs(configPath); err == nil {
			configPath = absPath
		}

		viper.SetConfigFile(configPath)

		viper.SetDefault("environment", "prod")
		viper.SetDefault("engine.fastTickMs", constants.FastTickIntervalMS)
		viper.SetDefault("engine.slowTickMs", constants.SlowTickIntervalMS)
		viper.SetDefault("engine.smartTickMs", constants.SmartTickIntervalMS)

		viper.SetDefault("thresholds.hddTempWarnC", 50)
		viper.SetDefault("thresholds.hddTempCritC", 60)
		viper.SetDefault("thresholds.nonHddTempWarnC", 55)
		viper.SetDefault("thresholds.nonHddTempCritC", 70)
		viper.SetDefault("thresholds.fsUsePctWarn", 85.0)
		viper.SetDefault("thresholds.fsUsePctCrit", 95.0)
		viper.SetDefault("thresholds.fsInodePctWarn", 85.0)
		viper.SetDefault("thresholds.fsInodePctCrit", 95.0)
		viper.SetDefault("thresholds.ioUtilSustainedPct", 95.0)

		viper.SetDefault("alerts.webhookURL", "")
		viper.SetDefault("alerts.notifyWarning", false)
		viper.SetDefault("alerts.cooldownHours", 0)
		viper.SetDefault("alerts.desktopNotify", true)

		viper.SetDefault("tools.smartctlPath", "smartctl")
		viper.SetDefault("tools.lsblkPath", "lsblk")
		viper.SetDefault("tools.zpoolPath", "zpool")
		viper.SetDefault("tools.useSudo", false)

		viper.SetDefault("logger.logLevel", "info")
		viper.SetDefault("logger.enableSentry", false)
		viper.SetDefault("logger.sentryDSN", "")

		viper.SetDefault("dataDir", GetDataDir())

		viper.AutomaticEnv()
		viper.SetEnvPrefix("DTOP")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

		err = viper.ReadInConfig()

		if err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				l.Info("Config file not found, creating default at system path", "path", systemConfigPath)

				if err := os.MkdirAll(GetConfigDir(), 0755); err != nil {
					l.Error("Failed to create config directory", "err", err)
				}

				var cfg Config
				if err := viper.Unmarshal(&cfg); err != nil {
					l.Error("Failed to unmarshal default configuration", "err", err)
				}

				instance = &cfg
				configPath = systemConfigPath

				if err := SaveConfig(systemConfigPath); err != nil {
					l.Error("Failed to save default configuration", "err", err)
				}
			} else {
				l.Error("Error reading config file", "err", err)

				var cfg Config
				if err := viper.Unmarshal(&cfg); err != nil {
					l.Error("Failed to unmarshal default configuration", "err", err)
				}

				instance = &cfg
			}
		} else {
			l.Info("Config file loaded successfully", "path", viper.ConfigFileUsed())
			configPath = viper.ConfigFileUsed()

			var cfg Config
			if err := viper.Unmarshal(&cfg); err != nil {
				l.Error("Failed to parse configuration", "err", err)
			} else {
				instance = &cfg
			}
		}

		l.Debug("Loaded configuration", "config", fmt.Sprintf("%+v", instance))
	})

	return instance
}

// SaveConfig persists the current configuration to a specified path.
func SaveConfig(path string) error {
	if path == "" {
		if os.Geteuid() == 0 {
			if err := os.MkdirAll(GetConfigDir(), 0755); err != nil {
				return fmt.Errorf("failed to create system config directory: %w", err)
			}
			path = filepath.Join(GetConfigDir(), constants.ConfigFileName)
		} else {
			if err := os.MkdirAll(GetConfigDir(), 0755); err != nil {
				return fmt.Errorf("failed to create user config directory: %w", err)
			}
			path = filepath.Join(GetConfigDir(), constants.ConfigFileName)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configYAML, err := yaml.Marshal(instance)
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}

	if err := os.WriteFile(path, configYAML, 0644); err != nil {
		return fmt.Errorf("failed to write configuration to file: %w", err)
	}

	configPath = path
	return nil
}

// GetLoadedConfigPath returns the path of the currently loaded configuration file.
func GetLoadedConfigPath() string {
	return configPath
}

// GetConfig returns the current configuration instance, loading defaults if needed.
func GetConfig() *Config {
	if instance == nil {
		return LoadConfig("")
	}
	return instance
}

func NewLoggerConfig(cfg *Config) logger.Config {
	if cfg == nil {
		return logger.Config{LogLevel: "info", EnableSentry: false, SentryDSN: ""}
	}

	return logger.Config{
		LogLevel:     cfg.Logger.LogLevel,
		EnableSentry: cfg.Logger.EnableSentry,
		SentryDSN:    cfg.Logger.SentryDSN,
	}
}
