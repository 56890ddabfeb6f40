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

// Package ir defines the resolved intermediate representation DSGL programs
// lower to after semantic analysis. Declarations are shared by
// reference from every instance that uses them; instances are owned by
// their enclosing graph. The IR is immutable once built: the partitioner
// produces an assignment as a separate artifact without mutating it.
package ir

import "github.com/kraklabs/dsgl/pkg/types"

// NodeDecl is a named block tagged as a node declaration.
type NodeDecl struct {
	types.NamedBlock
}

// EdgeDecl is a named block tagged as an edge declaration, plus references
// to the node declarations at its two endpoints. FromType/ToType are
// resolved pointers into Program.Nodes, never nil in a valid Program.
type EdgeDecl struct {
	types.NamedBlock
	FromType *NodeDecl
	ToType   *NodeDecl
}

// WalkerDecl is a name plus a resolved reference to the node declaration the
// walker traverses. A walker is monomorphic in one node type.
type WalkerDecl struct {
	Name     string
	NodeType *NodeDecl
}

// NodeInstance is a variable binding of a node declaration within a graph.
type NodeInstance struct {
	VarName string
	Type    *NodeDecl
}

// EdgeInstance is a variable-level edge between two node instances with an
// affinity weight consumed by the partitioner.
type EdgeInstance struct {
	Type   *EdgeDecl
	From   *NodeInstance
	To     *NodeInstance
	Weight int64
}

// WalkerInstance binds a walker declaration to a start node instance.
type WalkerInstance struct {
	Type      *WalkerDecl
	StartNode *NodeInstance
}

// Graph is one instantiation of the type system: three ordered sequences of
// instances, with names globally unique across all three.
type Graph struct {
	NodeInstances   []*NodeInstance
	EdgeInstances   []*EdgeInstance
	WalkerInstances []*WalkerInstance
}

// Program is the fully resolved IR: declarations keyed by name plus an
// ordered sequence of graphs, in source order.
type Program struct {
	Nodes   map[string]*NodeDecl
	Edges   map[string]*EdgeDecl
	Walkers map[string]*WalkerDecl
	Graphs  []*Graph
}

// NewProgram returns an empty Program with initialized declaration maps.
func NewProgram() *Program {
	return &Program{
		Nodes:   make(map[string]*NodeDecl),
		Edges:   make(map[string]*EdgeDecl),
		Walkers: make(map[string]*WalkerDecl),
	}
}
