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
	"log/slog"
	"os"

	cerrors "github.com/kraklabs/dsgl/internal/errors"
	"github.com/kraklabs/dsgl/pkg/ast"
	"github.com/kraklabs/dsgl/pkg/ir"
	"github.com/kraklabs/dsgl/pkg/resolve"
)

// newLogger builds the driver's structured logger, raising slog's level
// under -v/-vv and lowering it under --quiet.
func newLogger(globals GlobalFlags) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case globals.Verbose >= 2:
		level = slog.LevelDebug
	case globals.Verbose >= 1:
		level = slog.LevelInfo
	}
	if globals.Quiet {
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// readSource reads the DSGL source file at path, wrapping filesystem
// failures in a CompileError.
func readSource(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is a user-supplied CLI argument
	if err != nil {
		return "", cerrors.NewIOError(
			"cannot read source file",
			path,
			"check that the file exists and is readable",
			err,
		)
	}
	return string(data), nil
}

// frontend parses and resolves a DSGL source file into a resolved IR
// program, translating ast.ParseError into the driver's uniform
// CompileError shape.
func frontend(logger *slog.Logger, path string) (*ir.Program, error) {
	source, err := readSource(path)
	if err != nil {
		return nil, err
	}

	blocks, err := ast.Parse(source)
	if err != nil {
		if pe, ok := err.(*ast.ParseError); ok {
			return nil, cerrors.NewParseError(
				pe.Message,
				"",
				cerrors.Location{Line: pe.Pos.Line, Col: pe.Pos.Col},
			)
		}
		return nil, cerrors.NewParseError(err.Error(), "", cerrors.Location{})
	}

	r := resolve.New(logger)
	prog, err := r.Resolve(blocks)
	if err != nil {
		return nil, err
	}
	return prog, nil
}
