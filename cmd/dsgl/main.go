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

// Package main implements the dsgl CLI: a source-to-source compiler that
// lowers DSGL programs to a host/device C pair targeting an MRAM/DPU
// accelerator model.
//
// Usage:
//
//	dsgl init                   Create a .dsgl/config.yaml in the current directory
//	dsgl compile <file.dsgl>    Parse, resolve, partition, and emit C
//	dsgl check <file.dsgl>      Parse and resolve only; report errors
//	dsgl partition <file.dsgl>  Run the partitioner and print the assignment
//	dsgl completion <shell>     Generate a shell completion script
//	dsgl version                Show version information
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/dsgl/internal/ui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GlobalFlags holds the flags that apply to every subcommand.
type GlobalFlags struct {
	JSON       bool
	NoColor    bool
	Verbose    int
	Quiet      bool
	ConfigPath string
}

func main() {
	var (
		showVersion = flag.BoolP("version", "V", false, "show version and exit")
		configPath  = flag.StringP("config", "c", "", "path to .dsgl/config.yaml (default: auto-discovered)")
		jsonOutput  = flag.Bool("json", false, "report errors as JSON (implies --quiet)")
		noColor     = flag.Bool("no-color", false, "disable color output")
		verbose     = flag.CountP("verbose", "v", "increase verbosity (-v for info, -vv for debug)")
		quiet       = flag.BoolP("quiet", "q", false, "suppress non-essential output (progress, info messages)")
	)

	flag.SetInterspersed(false)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `dsgl - DSGL to C compiler

dsgl lowers DSGL graph programs (typed node/edge/walker declarations plus
a concrete graph instantiation) to a host C program that stages data onto
an accelerator and a device C program whose tasklets process it.

Usage:
  dsgl <command> [options] <file.dsgl>

Commands:
  init          Create a .dsgl/config.yaml in the current directory
  compile       Parse, resolve, partition, and emit host/device C
  check         Parse and resolve a program, reporting errors only
  partition     Run the partitioner and print the core assignment
  completion    Generate a shell completion script (bash|zsh|fish)
  version       Show version information

Global Options:
  --json            Report errors as JSON (implies --quiet)
  --no-color        Disable color output (respects NO_COLOR env var)
  -v, --verbose     Increase verbosity (-v for info, -vv for debug)
  -q, --quiet       Suppress non-essential output
  -c, --config      Path to .dsgl/config.yaml
  -V, --version     Show version and exit

Examples:
  dsgl compile graph.dsgl -o out/host.c
  dsgl check graph.dsgl
  dsgl partition graph.dsgl --cores 4 --capacity 65536
  dsgl completion bash

For detailed command help: dsgl <command> --help

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("dsgl version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	if os.Getenv("NO_COLOR") != "" {
		*noColor = true
	}

	if *quiet && *verbose > 0 {
		fmt.Fprintln(os.Stderr, "error: cannot use --quiet and --verbose together")
		os.Exit(1)
	}
	if *jsonOutput {
		*quiet = true
	}

	globals := GlobalFlags{
		JSON:       *jsonOutput,
		NoColor:    *noColor,
		Verbose:    *verbose,
		Quiet:      *quiet,
		ConfigPath: *configPath,
	}

	ui.InitColors(globals.NoColor)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "init":
		runInit(cmdArgs, globals)
	case "compile":
		runCompile(cmdArgs, globals)
	case "check":
		runCheck(cmdArgs, globals)
	case "partition":
		runPartition(cmdArgs, globals)
	case "completion":
		runCompletion(cmdArgs, globals)
	case "version":
		fmt.Printf("dsgl version %s\n", version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}
