// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads opexport settings from defaults, config files,
// OPEXPORT_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName  = "opexport"
	fileName = "opexport.yaml"
)

// Config is the complete application configuration.
type Config struct {
	Language string       `mapstructure:"language" yaml:"language"`
	OP       OPConfig     `mapstructure:"op" yaml:"op"`
	Loader   LoaderConfig `mapstructure:"loader" yaml:"loader"`
	UI       UIConfig     `mapstructure:"ui" yaml:"ui"`
	Export   ExportConfig `mapstructure:"export" yaml:"export"`
	Log      LogConfig    `mapstructure:"log" yaml:"log"`
}

// OPConfig controls how the 1Password CLI is invoked.
type OPConfig struct {
	Binary  string        `mapstructure:"binary" yaml:"binary"`
	Cache   bool          `mapstructure:"cache" yaml:"cache"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LoaderConfig controls data loading.
type LoaderConfig struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// UIConfig controls the interactive browser.
type UIConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`
}

// ExportConfig controls the written document.
type ExportConfig struct {
	Indent bool `mapstructure:"indent" yaml:"indent"`
}

// LogConfig controls where logs go while the TUI owns the terminal.
type LogConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// Defaults returns the default value of every key.
func Defaults() map[string]any {
	logFile := ""
	if dir, err := os.UserCacheDir(); err == nil {
		logFile = filepath.Join(dir, appName, appName+".log")
	}
	return map[string]any{
		"language":           "en",
		"op.binary":          "op",
		"op.cache":           true,
		"op.timeout":         2 * time.Minute,
		"loader.concurrency": 4,
		"ui.tick_interval":   500 * time.Millisecond,
		"export.indent":      false,
		"log.file":           logFile,
	}
}

// getConfigPath returns the full path for the configuration file.
func getConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), appName)
		default: // Linux, macOS, etc.
			configDir = "/etc/" + appName
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, appName)
	}

	return filepath.Join(configDir, fileName), nil
}

// LoadConfig resolves T from defaults, the first config file found (the
// explicit path if given, else the user dir, the system dir and the current
// directory), OPEXPORT_* environment variables and the flags of cmd. A missing
// config file is not an error.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(appName)
	v.SetConfigType("yaml")
	if explicitPath != nil {
		v.SetConfigFile(*explicitPath)
	}
	if userConfigPath, err := getConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := getConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// WriteConfigFile writes c as YAML to the user (or system) config path and
// returns that path.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := getConfigPath(system)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", err
	}
	return path, nil
}
