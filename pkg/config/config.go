// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and saves .dsgl/config.yaml, the project-level
// defaults for the partitioner and emitter.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	cerrors "github.com/kraklabs/dsgl/internal/errors"
)

const (
	defaultConfigDir  = ".dsgl"
	defaultConfigFile = "config.yaml"
	configVersion     = "1"
)

// Config represents the .dsgl/config.yaml configuration file.
type Config struct {
	Version   string          `yaml:"version"`
	Partition PartitionConfig `yaml:"partition"`
	Output    OutputConfig    `yaml:"output"`
}

// PartitionConfig holds the partitioner's defaults: how many cores to
// target and the per-core byte budget, plus which Solver backend to use.
type PartitionConfig struct {
	Cores      int    `yaml:"cores"`
	Capacity   int64  `yaml:"capacity_bytes"`
	SMTBackend string `yaml:"smt_backend"` // only "bruteforce" ships today
}

// OutputConfig holds default output paths for the emitter.
type OutputConfig struct {
	HostPath  string `yaml:"host_path"`
	DeviceDir string `yaml:"device_dir,omitempty"`
}

// DefaultConfig returns a config with sensible defaults for local
// compilation: a single core, a generous capacity, and the in-house
// branch-and-bound solver.
func DefaultConfig() *Config {
	return &Config{
		Version: configVersion,
		Partition: PartitionConfig{
			Cores:      1,
			Capacity:   1 << 20, // 1 MiB
			SMTBackend: "bruteforce",
		},
		Output: OutputConfig{
			HostPath: "out/host.c",
		},
	}
}

// LoadConfig loads configuration from configPath, or finds .dsgl/config.yaml
// by searching the current directory and its parents when configPath is
// empty. The DSGL_CONFIG_PATH environment variable takes precedence over
// auto-discovery.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = os.Getenv("DSGL_CONFIG_PATH")
	}
	if configPath == "" {
		var err error
		configPath, err = findConfigFile()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // G304: path comes from user config or discovery
	if err != nil {
		return nil, cerrors.NewConfigError(
			"cannot read configuration file",
			fmt.Sprintf("failed to read %s", configPath),
			"check file permissions and ensure the file exists",
			err,
		)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, cerrors.NewConfigError(
			"invalid configuration format",
			"YAML parsing failed: the config file contains syntax errors",
			fmt.Sprintf("edit %s to fix syntax errors, or run 'dsgl init --force' to recreate it", configPath),
			err,
		)
	}

	if cfg.Version != configVersion {
		return nil, cerrors.NewConfigError(
			"unsupported configuration version",
			fmt.Sprintf("config version %q is not supported (expected %q)", cfg.Version, configVersion),
			fmt.Sprintf("run 'dsgl init --force' to regenerate %s", configPath),
			nil,
		)
	}

	return &cfg, nil
}

// SaveConfig writes cfg to configPath as YAML, creating the parent
// directory if needed.
func SaveConfig(cfg *Config, configPath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return cerrors.NewInternalError(
			"cannot encode configuration",
			"YAML marshaling failed unexpectedly",
			"this is a bug; please report it with your configuration details",
			err,
		)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return cerrors.NewIOError(
			"cannot create configuration directory",
			fmt.Sprintf("failed to create %s", dir),
			"check directory permissions",
			err,
		)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return cerrors.NewIOError(
			"cannot write configuration file",
			fmt.Sprintf("failed to write %s", configPath),
			"check file permissions and available disk space",
			err,
		)
	}

	return nil
}

// ConfigPath returns <dir>/.dsgl/config.yaml.
func ConfigPath(dir string) string {
	return filepath.Join(dir, defaultConfigDir, defaultConfigFile)
}

// ConfigDir returns <dir>/.dsgl.
func ConfigDir(dir string) string {
	return filepath.Join(dir, defaultConfigDir)
}

// findConfigFile searches for .dsgl/config.yaml in the current directory
// and its parents, stopping at the filesystem root.
func findConfigFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", cerrors.NewInternalError(
			"cannot access working directory",
			"failed to determine current directory path",
			"check system permissions and try again",
			err,
		)
	}

	for {
		configPath := ConfigPath(dir)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", cerrors.NewConfigError(
		"configuration not found",
		"no .dsgl/config.yaml file found in the current directory or any parent directory",
		"run 'dsgl init' to create a new configuration, or pass --config explicitly",
		nil,
	)
}
