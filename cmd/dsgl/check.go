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
)

// runCheck parses and resolves a DSGL source file, reporting the first
// error encountered (parse or semantic) without emitting C.
func runCheck(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dsgl check <file.dsgl>")
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
	_, err := frontend(logger, path)
	if err != nil {
		cerrors.FatalError(err, globals.JSON)
	}

	if !globals.Quiet {
		ui.Header("OK")
		fmt.Printf("%s is well-formed.\n", path)
	}
}
