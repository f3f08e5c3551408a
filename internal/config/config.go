// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads and persists the FRC Scout configuration. Values are
// layered defaults, YAML file, FRCSCOUT_* environment variables and finally
// command line flags, all resolved through Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName   = "frcscout"
	envPrefix = "FRCSCOUT"
)

// Config is the persisted application configuration.
type Config struct {
	Database struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"database" yaml:"database"`
	Language string `mapstructure:"language" yaml:"language"`
	Feedback struct {
		Recipient string `mapstructure:"recipient" yaml:"recipient"`
	} `mapstructure:"feedback" yaml:"feedback"`
}

// Defaults returns the built-in configuration values keyed the way Viper
// addresses them.
func Defaults() map[string]any {
	return map[string]any{
		"database.path":      "./frcscout.db",
		"language":           "en",
		"feedback.recipient": "",
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		// System-wide configuration paths
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "FRCScout")
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

	return filepath.Join(configDir, appName+".yaml"), nil
}

// LoadConfig resolves the configuration into T. When no config file was
// found (or the only candidate is empty) the values are still fully resolved
// and the returned error is a viper.ConfigFileNotFoundError, so callers can
// write a default file on first run.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, additionalConfigFilePath *string) (T, error) {
	var c T
	v := viper.New()

	// 1. Set defaults
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// 2. Set up file search paths
	v.SetConfigName(appName)
	v.SetConfigType("yaml")

	// 3. An explicit --config path takes precedence over the search paths.
	if additionalConfigFilePath != nil && *additionalConfigFilePath != "" {
		v.SetConfigFile(*additionalConfigFilePath)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	// 4. Read in the primary config file.
	var notFound error
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
		notFound = err
	} else if isEmptyFile(v.ConfigFileUsed()) {
		// An empty file carries no settings; treat it like a missing one so
		// the caller rewrites it with defaults.
		notFound = viper.ConfigFileNotFoundError{}
	}

	// 5. Hidden .frcscout.yaml in the working directory overrides the file.
	mergeLocalConfig(v)

	// 6. Environment variables
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	// 7. Flags
	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, notFound
}

func isEmptyFile(path string) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Size() == 0
}

// mergeLocalConfig merges a `.frcscout.yaml` in the current directory when
// present. A malformed file is ignored so it cannot block startup.
func mergeLocalConfig(v *viper.Viper) {
	localConfigFile := "." + appName + ".yaml"
	if _, err := os.Stat(localConfigFile); err == nil {
		used := v.ConfigFileUsed()
		v.SetConfigFile(localConfigFile)
		_ = v.MergeInConfig()
		v.SetConfigFile(used)
	}
}

// WriteConfigFile writes c as YAML to the user (or system) config path.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}
	return WriteConfigFileTo(c, path)
}

// WriteConfigFileTo writes c as YAML to path, creating parent directories.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	return os.WriteFile(path, data, 0600)
}
