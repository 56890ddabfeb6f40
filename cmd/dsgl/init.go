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

package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	cerrors "github.com/kraklabs/dsgl/internal/errors"
	"github.com/kraklabs/dsgl/internal/ui"
	dsglconfig "github.com/kraklabs/dsgl/pkg/config"
)

// runInit creates a .dsgl/config.yaml file in the current directory, seeded
// from DefaultConfig and overridden by any flags given.
func runInit(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "overwrite an existing configuration file")
	cores := fs.Int("cores", 0, "default number of accelerator cores (default: 1)")
	capacity := fs.Int64("capacity", 0, "default per-core byte budget (default: 1MiB)")
	output := fs.StringP("output", "o", "", "default host C output path (default: out/host.c)")
	deviceDir := fs.String("device-dir", "", "default directory for the companion device file")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dsgl init [--force] [--cores N] [--capacity BYTES] [--output FILE] [--device-dir DIR]")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cwd, err := os.Getwd()
	if err != nil {
		cerrors.FatalError(cerrors.NewInternalError(
			"cannot access working directory",
			"failed to determine current directory path",
			"check system permissions and try again",
			err,
		), globals.JSON)
	}

	configPath := dsglconfig.ConfigPath(cwd)
	if _, err := os.Stat(configPath); err == nil && !*force {
		cerrors.FatalError(cerrors.NewConfigError(
			"configuration already exists",
			fmt.Sprintf("%s already exists in this directory", configPath),
			"use 'dsgl init --force' to overwrite the existing configuration",
			nil,
		), globals.JSON)
	}

	cfg := dsglconfig.DefaultConfig()
	if *cores > 0 {
		cfg.Partition.Cores = *cores
	}
	if *capacity > 0 {
		cfg.Partition.Capacity = *capacity
	}
	if *output != "" {
		cfg.Output.HostPath = *output
	}
	if *deviceDir != "" {
		cfg.Output.DeviceDir = *deviceDir
	}

	if err := os.MkdirAll(dsglconfig.ConfigDir(cwd), 0o750); err != nil {
		cerrors.FatalError(cerrors.NewIOError(
			"cannot create configuration directory",
			fmt.Sprintf("failed to create %s", dsglconfig.ConfigDir(cwd)),
			"check directory permissions",
			err,
		), globals.JSON)
	}
	if err := dsglconfig.SaveConfig(cfg, configPath); err != nil {
		cerrors.FatalError(err, globals.JSON)
	}

	if !globals.Quiet {
		ui.Header("Initialized")
		fmt.Printf("wrote %s\n", configPath)
	}
}
