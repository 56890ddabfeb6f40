// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProgramInitializesMaps(t *testing.T) {
	prog := NewProgram()
	assert.NotNil(t, prog.Nodes)
	assert.NotNil(t, prog.Edges)
	assert.NotNil(t, prog.Walkers)
	assert.Empty(t, prog.Graphs)
}

func TestEdgeDeclSharesNodeDeclPointers(t *testing.T) {
	node := &NodeDecl{}
	edge := &EdgeDecl{FromType: node, ToType: node}
	assert.Same(t, node, edge.FromType)
	assert.Same(t, edge.FromType, edge.ToType)
}
