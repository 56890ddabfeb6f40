// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/kraklabs/dsgl/internal/errors"
	"github.com/kraklabs/dsgl/pkg/ir"
	"github.com/kraklabs/dsgl/pkg/types"
)

func buildGraph(nodeSize int, n int, edges [][3]int) *ir.Graph {
	decl := &ir.NodeDecl{NamedBlock: types.NamedBlock{
		Name:   "A",
		Fields: []types.Field{{Name: "payload", Type: types.Array(types.Int8, nodeSize)}},
	}}
	edgeDecl := &ir.EdgeDecl{
		NamedBlock: types.NamedBlock{Name: "Link"},
		FromType:   decl,
		ToType:     decl,
	}

	insts := make([]*ir.NodeInstance, n)
	for i := range insts {
		insts[i] = &ir.NodeInstance{VarName: "v", Type: decl}
	}

	graph := &ir.Graph{NodeInstances: insts}
	for _, e := range edges {
		from, to, weight := e[0], e[1], e[2]
		graph.EdgeInstances = append(graph.EdgeInstances, &ir.EdgeInstance{
			Type:   edgeDecl,
			From:   insts[from],
			To:     insts[to],
			Weight: int64(weight),
		})
	}
	return graph
}

func TestPartition_DisjointExhaustiveBuckets(t *testing.T) {
	graph := buildGraph(10, 6, [][3]int{{0, 1, 5}, {2, 3, 3}, {4, 5, 1}})
	p := New()

	buckets, err := p.Partition(graph, 3, 1000, nil)
	require.NoError(t, err)
	require.Len(t, buckets, 3)

	seen := make(map[*ir.NodeInstance]bool)
	for _, bucket := range buckets {
		for _, inst := range bucket {
			assert.False(t, seen[inst], "instance assigned to more than one core")
			seen[inst] = true
		}
	}
	assert.Len(t, seen, len(graph.NodeInstances))
}

func TestPartition_RespectsCapacity(t *testing.T) {
	// 4 instances of 100 bytes each, capacity 150: no core may hold more than
	// one instance (plus any double-counted edge cost).
	graph := buildGraph(100, 4, nil)
	p := New()

	buckets, err := p.Partition(graph, 4, 150, nil)
	require.NoError(t, err)
	for _, bucket := range buckets {
		assert.LessOrEqual(t, len(bucket), 1)
	}
}

func TestPartition_NoFeasibleAssignment(t *testing.T) {
	// A single instance larger than the capacity has no feasible placement
	// on any core.
	graph := buildGraph(1000, 1, nil)
	p := New()

	_, err := p.Partition(graph, 2, 10, nil)
	require.Error(t, err)
	ce, ok := err.(*cerrors.CompileError)
	require.True(t, ok)
	assert.Equal(t, cerrors.KindNoFeasibleAssign, ce.Kind)
}

func TestPartition_MaximizesIntraCoreWeight(t *testing.T) {
	// Two instances connected by a single heavy edge, with ample capacity:
	// the optimal placement puts both on the same core to capture the full
	// edge weight.
	graph := buildGraph(1, 2, [][3]int{{0, 1, 100}})
	p := New()

	buckets, err := p.Partition(graph, 2, 1<<20, nil)
	require.NoError(t, err)

	var coreOf = make(map[*ir.NodeInstance]int)
	for core, bucket := range buckets {
		for _, inst := range bucket {
			coreOf[inst] = core
		}
	}
	assert.Equal(t, coreOf[graph.NodeInstances[0]], coreOf[graph.NodeInstances[1]])
}

func TestPartition_SingleCoreIsAlwaysFeasibleWhenCapacityAllows(t *testing.T) {
	graph := buildGraph(10, 3, [][3]int{{0, 1, 1}, {1, 2, 1}})
	p := New()

	buckets, err := p.Partition(graph, 1, 1<<20, nil)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Len(t, buckets[0], 3)
}
