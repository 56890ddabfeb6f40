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
	"github.com/kraklabs/dsgl/pkg/emit"
	"github.com/kraklabs/dsgl/pkg/ir"
)

// runCompile parses, resolves, optionally partitions, and emits the host
// and device C translation units for a DSGL program.
func runCompile(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	output := fs.StringP("output", "o", "", "host C output path (default: from .dsgl/config.yaml, or out/host.c)")
	deviceDir := fs.String("device-dir", "", "directory for the companion device file (default: alongside --output)")
	cores := fs.Int("cores", 0, "number of accelerator cores (default: from config)")
	capacity := fs.Int64("capacity", 0, "per-core byte budget (default: from config)")
	noPartition := fs.Bool("no-partition", false, "skip partitioning; emit with every instance in a single bucket (core 0)")
	metricsAddr := fs.String("metrics-addr", "", "HTTP listen address for Prometheus metrics (empty to disable)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dsgl compile [--output FILE] [--cores N] [--capacity BYTES] [--metrics-addr ADDR] <file.dsgl>")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	rest := fs.Args()
	if len(rest) != 1 {
		fs.Usage()
		os.Exit(1)
	}
	path := rest[0]

	cfg, err := dsglconfig.LoadConfig(globals.ConfigPath)
	if err != nil {
		cfg = dsglconfig.DefaultConfig()
	}

	if *output == "" {
		*output = cfg.Output.HostPath
	}
	if *deviceDir == "" {
		*deviceDir = cfg.Output.DeviceDir
	}
	if *cores == 0 {
		*cores = cfg.Partition.Cores
	}
	if *capacity == 0 {
		*capacity = cfg.Partition.Capacity
	}

	logger := newLogger(globals)
	prog, err := frontend(logger, path)
	if err != nil {
		cerrors.FatalError(err, globals.JSON)
	}

	graph, err := firstGraph(prog)
	if err != nil {
		cerrors.FatalError(err, globals.JSON)
	}

	var assignment [][]*ir.NodeInstance
	if *noPartition {
		assignment = [][]*ir.NodeInstance{graph.NodeInstances}
	} else {
		assignment, err = runPartitionOn(globals, logger, graph, *cores, *capacity, *metricsAddr)
		if err != nil {
			cerrors.FatalError(err, globals.JSON)
		}
	}

	emitter := emit.NewReferenceEmitter()
	if err := emit.Emit(emitter, prog, graph, assignment, *output, *deviceDir); err != nil {
		cerrors.FatalError(err, globals.JSON)
	}

	if !globals.Quiet {
		ui.Header("Compiled")
		fmt.Printf("host:   %s\n", *output)
	}
}
