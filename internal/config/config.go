// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads settings from piconnect.yaml, PICONNECT_* environment
// variables and command-line flags, in increasing order of precedence.
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

// Config is the application configuration.
type Config struct {
	SSH       SSHConfig       `mapstructure:"ssh" yaml:"ssh"`
	Inventory InventoryConfig `mapstructure:"inventory" yaml:"inventory"`
	Language  string          `mapstructure:"language" yaml:"language"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
}

type SSHConfig struct {
	Port        int           `mapstructure:"port" yaml:"port"`
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	DialTimeout time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
	KnownHosts  string        `mapstructure:"known_hosts" yaml:"known_hosts"`
}

type InventoryConfig struct {
	Command string `mapstructure:"command" yaml:"command"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// Defaults returns the default values keyed the way viper expects.
func Defaults() map[string]any {
	return map[string]any{
		"ssh.port":          22,
		"ssh.read_timeout":  10 * time.Second,
		"ssh.dial_timeout":  time.Duration(0),
		"ssh.known_hosts":   "",
		"inventory.command": "df -h",
		"language":          "en",
		"log.level":         "warn",
		"output.format":     "table",
	}
}

// getConfigPath returns the full path for the configuration file.
func getConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "PiConnect")
		default:
			configDir = "/etc/piconnect"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "piconnect")
	}

	return filepath.Join(configDir, "piconnect.yaml"), nil
}

// LoadConfig builds a T from defaults, the first piconnect.yaml found (or
// the explicit file), the environment and the flags of cmd. A missing
// config file is not an error unless it was named explicitly.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("piconnect")
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if userConfigPath, err := getConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := getConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return c, err
		}
	}

	v.SetEnvPrefix("piconnect")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := bindFlags(v, cmd); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"port":         "ssh.port",
	"read-timeout": "ssh.read_timeout",
	"dial-timeout": "ssh.dial_timeout",
	"known-hosts":  "ssh.known_hosts",
	"command":      "inventory.command",
	"lang":         "language",
	"log-level":    "log.level",
	"output":       "output.format",
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// WriteConfigFile stores c as YAML in the user (or system) config location
// and returns the path written.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := getConfigPath(system)
	if err != nil {
		return "", err
	}
	return path, WriteConfigFileTo(c, path)
}

// WriteConfigFileTo stores c as YAML at path, creating parent directories.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	return os.WriteFile(path, data, 0o600)
}
