// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/dsgl/pkg/types"
)

func TestParse_MinimalNode(t *testing.T) {
	src := `node Sensor { id: int32; reading: float; };`
	blocks, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	node, ok := blocks[0].(NodeDecl)
	require.True(t, ok)
	assert.Equal(t, "Sensor", node.Name)
	assert.Equal(t, []types.Field{
		{Name: "id", Type: types.Scalar(types.Int32)},
		{Name: "reading", Type: types.Scalar(types.Float)},
	}, node.Fields)
}

func TestParse_ArrayField(t *testing.T) {
	src := `node Sensor { samples: double[30]; };`
	blocks, err := Parse(src)
	require.NoError(t, err)
	node := blocks[0].(NodeDecl)
	require.Len(t, node.Fields, 1)
	assert.Equal(t, types.Array(types.Double, 30), node.Fields[0].Type)
}

func TestParse_EdgeDecl(t *testing.T) {
	src := `
node A { x: int32; };
node B { y: int32; };
edge Link A B { weight: int32; };
`
	blocks, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	edge, ok := blocks[2].(EdgeDecl)
	require.True(t, ok)
	assert.Equal(t, "Link", edge.Name)
	assert.Equal(t, "A", edge.FromType)
	assert.Equal(t, "B", edge.ToType)
}

func TestParse_WalkerDecl(t *testing.T) {
	src := `
node A { x: int32; };
walker Crawler : A;
`
	blocks, err := Parse(src)
	require.NoError(t, err)
	walker, ok := blocks[1].(WalkerDecl)
	require.True(t, ok)
	assert.Equal(t, "Crawler", walker.Name)
	assert.Equal(t, "A", walker.NodeType)
}

func TestParse_GraphNodeListExpansion(t *testing.T) {
	src := `
node A { x: int32; };
graph {
	node A a1, a2, a3;
};
`
	blocks, err := Parse(src)
	require.NoError(t, err)
	graph, ok := blocks[1].(GraphDecl)
	require.True(t, ok)
	require.Len(t, graph.Stmts, 1)

	stmt, ok := graph.Stmts[0].(NodeInstStmt)
	require.True(t, ok)
	assert.Equal(t, "A", stmt.NodeType)
	assert.Equal(t, []string{"a1", "a2", "a3"}, stmt.VarNames)
}

func TestParse_GraphEdgeInstWithNegativeWeight(t *testing.T) {
	src := `
node A { x: int32; };
edge Link A A { w: int32; };
graph {
	node A a1, a2;
	edge Link a1 a2 -5;
};
`
	blocks, err := Parse(src)
	require.NoError(t, err)
	graph := blocks[2].(GraphDecl)
	require.Len(t, graph.Stmts, 2)

	edgeStmt, ok := graph.Stmts[1].(EdgeInstStmt)
	require.True(t, ok)
	assert.Equal(t, int64(-5), edgeStmt.Weight)
}

func TestParse_UnknownBaseTypeError(t *testing.T) {
	src := `node A { x: bool; };`
	_, err := Parse(src)
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "unknown base type")
}

func TestParse_ArrayCountOutOfRange(t *testing.T) {
	src := `node A { x: int32[0]; };`
	_, err := Parse(src)
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "array count")
}

func TestParse_UnexpectedTokenReportsPosition(t *testing.T) {
	_, err := Parse("node 123 {};")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Pos.Line)
}
