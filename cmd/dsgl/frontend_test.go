// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/kraklabs/dsgl/internal/errors"
)

func TestFrontend_ParsesAndResolvesValidSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.dsgl")
	require.NoError(t, os.WriteFile(path, []byte(`
node A { x: int32; };
graph {
	node A a1;
};
`), 0o644))

	logger := newLogger(GlobalFlags{})
	prog, err := frontend(logger, path)
	require.NoError(t, err)
	require.Len(t, prog.Graphs, 1)
	assert.Len(t, prog.Graphs[0].NodeInstances, 1)
}

func TestFrontend_ReportsParseErrorLocation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.dsgl")
	require.NoError(t, os.WriteFile(path, []byte("node 123 {};"), 0o644))

	logger := newLogger(GlobalFlags{})
	_, err := frontend(logger, path)
	require.Error(t, err)
	ce, ok := err.(*cerrors.CompileError)
	require.True(t, ok)
	assert.Equal(t, cerrors.KindParse, ce.Kind)
	require.NotNil(t, ce.Location)
	assert.Equal(t, 1, ce.Location.Line)
	assert.Equal(t, 6, ce.Location.Col)
}

func TestFrontend_MissingFile(t *testing.T) {
	logger := newLogger(GlobalFlags{})
	_, err := frontend(logger, filepath.Join(t.TempDir(), "nope.dsgl"))
	require.Error(t, err)
	ce, ok := err.(*cerrors.CompileError)
	require.True(t, ok)
	assert.Equal(t, cerrors.KindIO, ce.Kind)
}

func TestFirstGraph_ErrorsWhenNoneDeclared(t *testing.T) {
	logger := newLogger(GlobalFlags{})
	path := filepath.Join(t.TempDir(), "empty.dsgl")
	require.NoError(t, os.WriteFile(path, []byte("node A { x: int32; };"), 0o644))

	prog, err := frontend(logger, path)
	require.NoError(t, err)

	_, err = firstGraph(prog)
	require.Error(t, err)
}
