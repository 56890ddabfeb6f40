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
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"

	cerrors "github.com/kraklabs/dsgl/internal/errors"
	"github.com/kraklabs/dsgl/internal/ui"
	"github.com/kraklabs/dsgl/pkg/ir"
	"github.com/kraklabs/dsgl/pkg/partition"
)

// startMetricsServer exposes the partitioner's Prometheus metrics on addr
// and returns the registerer its NewMetrics should use. A disabled server
// (addr == "") still returns a working registerer so callers always get a
// *partition.Metrics, they just see no HTTP endpoint.
func startMetricsServer(logger *slog.Logger, addr string) prometheus.Registerer {
	reg := prometheus.NewRegistry()
	if addr == "" {
		return reg
	}
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
		logger.Info("metrics.http.start", "addr", addr, "path", "/metrics")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics.http.error", "err", err)
		}
	}()
	return reg
}

// firstGraph returns the program's first graph, or a CompileError if the
// program declares none (a compile/check/partition target needs at least
// one graph to act on).
func firstGraph(prog *ir.Program) (*ir.Graph, error) {
	if len(prog.Graphs) == 0 {
		return nil, cerrors.NewInternalError(
			"no graph declared",
			"the source file contains no graph block to compile or partition",
			"add a graph { ... } block instantiating at least one node",
			nil,
		)
	}
	return prog.Graphs[0], nil
}

// runPartitionOn runs the capacity-aware partitioner over graph and prints
// (or, under --quiet, suppresses) a single progress bar while searching,
// advanced with the solver's running count of explored search nodes.
// When metricsAddr is non-empty, the run's Prometheus counters are exposed
// on that address for the duration of the process.
func runPartitionOn(globals GlobalFlags, logger *slog.Logger, graph *ir.Graph, cores int, capacity int64, metricsAddr string) ([][]*ir.NodeInstance, error) {
	progressCfg := ui.NewProgressConfig(globals.Quiet, globals.JSON)
	var bar interface{ Set64(int64) error }
	if progressCfg.Enabled {
		bar = ui.NewProgressBar(progressCfg, int64(len(graph.NodeInstances)), "Partitioning")
	}

	reg := startMetricsServer(logger, metricsAddr)
	p := partition.New(partition.WithMetrics(partition.NewMetrics(reg)))
	assignment, err := p.Partition(graph, cores, capacity, func(explored int64) {
		if bar != nil {
			_ = bar.Set64(explored)
		}
	})
	return assignment, err
}

func runPartition(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("partition", flag.ExitOnError)
	cores := fs.Int("cores", 1, "number of accelerator cores")
	capacity := fs.Int64("capacity", 1<<20, "per-core byte budget")
	metricsAddr := fs.String("metrics-addr", "", "HTTP listen address for Prometheus metrics (empty to disable)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dsgl partition [--cores N] [--capacity BYTES] [--metrics-addr ADDR] <file.dsgl>")
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

	logger := newLogger(globals)
	prog, err := frontend(logger, path)
	if err != nil {
		cerrors.FatalError(err, globals.JSON)
	}

	graph, err := firstGraph(prog)
	if err != nil {
		cerrors.FatalError(err, globals.JSON)
	}

	assignment, err := runPartitionOn(globals, logger, graph, *cores, *capacity, *metricsAddr)
	if err != nil {
		cerrors.FatalError(err, globals.JSON)
	}

	if !globals.Quiet {
		ui.Header("Partition Assignment")
	}
	for core, insts := range assignment {
		names := make([]string, len(insts))
		for i, inst := range insts {
			names[i] = inst.VarName
		}
		fmt.Printf("core %d: %v\n", core, names)
	}
}
