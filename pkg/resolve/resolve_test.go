// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/kraklabs/dsgl/internal/errors"
	"github.com/kraklabs/dsgl/pkg/ast"
)

func mustParse(t *testing.T, src string) []ast.Block {
	t.Helper()
	blocks, err := ast.Parse(src)
	require.NoError(t, err)
	return blocks
}

func TestResolve_SimpleGraph(t *testing.T) {
	blocks := mustParse(t, `
node A { x: int32; };
graph {
	node A a1, a2;
};
`)
	prog, err := New(nil).Resolve(blocks)
	require.NoError(t, err)
	require.Len(t, prog.Graphs, 1)
	assert.Len(t, prog.Graphs[0].NodeInstances, 2)
	assert.Equal(t, "a1", prog.Graphs[0].NodeInstances[0].VarName)
	assert.Equal(t, "a2", prog.Graphs[0].NodeInstances[1].VarName)
}

func TestResolve_EdgeWithEndpoints(t *testing.T) {
	blocks := mustParse(t, `
node A { x: int32; };
node B { y: int32; };
edge Link A B { w: int32; };
graph {
	node A a1;
	node B b1;
	edge Link a1 b1 7;
};
`)
	prog, err := New(nil).Resolve(blocks)
	require.NoError(t, err)
	graph := prog.Graphs[0]
	require.Len(t, graph.EdgeInstances, 1)
	edge := graph.EdgeInstances[0]
	assert.Equal(t, "a1", edge.From.VarName)
	assert.Equal(t, "b1", edge.To.VarName)
	assert.Equal(t, int64(7), edge.Weight)
}

func TestResolve_WalkerTypeMismatch(t *testing.T) {
	blocks := mustParse(t, `
node A { x: int32; };
node B { y: int32; };
walker Crawler : A;
graph {
	node B b1;
	walker Crawler b1;
};
`)
	_, err := New(nil).Resolve(blocks)
	require.Error(t, err)
	ce, ok := err.(*cerrors.CompileError)
	require.True(t, ok)
	assert.Equal(t, cerrors.KindWalkerTypeMismatch, ce.Kind)
}

func TestResolve_DuplicateNodeDeclaration(t *testing.T) {
	blocks := mustParse(t, `
node A { x: int32; };
node A { y: int32; };
`)
	_, err := New(nil).Resolve(blocks)
	require.Error(t, err)
	ce, ok := err.(*cerrors.CompileError)
	require.True(t, ok)
	assert.Equal(t, cerrors.KindDuplicateDecl, ce.Kind)
}

func TestResolve_DuplicateVariableInGraph(t *testing.T) {
	blocks := mustParse(t, `
node A { x: int32; };
graph {
	node A dup, dup;
};
`)
	_, err := New(nil).Resolve(blocks)
	require.Error(t, err)
	ce, ok := err.(*cerrors.CompileError)
	require.True(t, ok)
	assert.Equal(t, cerrors.KindDuplicateVariable, ce.Kind)
}

func TestResolve_UndefinedNodeTypeReference(t *testing.T) {
	blocks := mustParse(t, `
graph {
	node Ghost g1;
};
`)
	_, err := New(nil).Resolve(blocks)
	require.Error(t, err)
	ce, ok := err.(*cerrors.CompileError)
	require.True(t, ok)
	assert.Equal(t, cerrors.KindUndefinedReference, ce.Kind)
}

func TestResolve_EdgeEndpointTypeMismatchIsNonFatal(t *testing.T) {
	blocks := mustParse(t, `
node A { x: int32; };
node B { y: int32; };
node C { z: int32; };
edge Link A B { w: int32; };
graph {
	node A a1;
	node C c1;
	edge Link a1 c1 1;
};
`)
	// The edge declares endpoints A,B but the instance uses A,C: an endpoint
	// type mismatch is a warning, not a failure.
	_, err := New(nil).Resolve(blocks)
	require.NoError(t, err)
}
