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

// Package resolve implements the semantic resolver: it interns
// declarations, binds every instance to its declaration, and produces the
// resolved IR or the first semantic error encountered.
//
// Resolution happens in two phases: a first pass builds a name-keyed index
// of every declaration, then a second pass resolves references against the
// completed index.
package resolve

import (
	"log/slog"

	cerrors "github.com/kraklabs/dsgl/internal/errors"
	"github.com/kraklabs/dsgl/pkg/ast"
	"github.com/kraklabs/dsgl/pkg/ir"
	"github.com/kraklabs/dsgl/pkg/types"
)

// Resolver performs semantic analysis over a block sequence produced by
// pkg/ast. It is stateless between calls to Resolve.
type Resolver struct {
	logger *slog.Logger
}

// New creates a Resolver. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{logger: logger}
}

// Resolve partitions blocks by kind, interns declarations, resolves
// cross-references, and resolves every graph's instances in source order.
func (r *Resolver) Resolve(blocks []ast.Block) (*ir.Program, error) {
	prog := ir.NewProgram()

	var nodeDecls []ast.NodeDecl
	var edgeDecls []ast.EdgeDecl
	var walkerDecls []ast.WalkerDecl
	var graphDecls []ast.GraphDecl

	// Step 1: partition into four buckets by kind, in source order.
	for _, b := range blocks {
		switch block := b.(type) {
		case ast.NodeDecl:
			nodeDecls = append(nodeDecls, block)
		case ast.EdgeDecl:
			edgeDecls = append(edgeDecls, block)
		case ast.WalkerDecl:
			walkerDecls = append(walkerDecls, block)
		case ast.GraphDecl:
			graphDecls = append(graphDecls, block)
		}
	}

	// Intern node declarations first: edges and walkers reference them.
	for _, n := range nodeDecls {
		if _, exists := prog.Nodes[n.Name]; exists {
			return nil, cerrors.NewDuplicateDeclarationError("node", n.Name)
		}
		prog.Nodes[n.Name] = &ir.NodeDecl{
			NamedBlock: namedBlockOf(n.Name, n.Fields),
		}
	}

	// Step 2: resolve edge declarations against the node map.
	for _, e := range edgeDecls {
		if _, exists := prog.Edges[e.Name]; exists {
			return nil, cerrors.NewDuplicateDeclarationError("edge", e.Name)
		}
		fromType, ok := prog.Nodes[e.FromType]
		if !ok {
			return nil, cerrors.NewUndefinedReferenceError(e.FromType)
		}
		toType, ok := prog.Nodes[e.ToType]
		if !ok {
			return nil, cerrors.NewUndefinedReferenceError(e.ToType)
		}
		prog.Edges[e.Name] = &ir.EdgeDecl{
			NamedBlock: namedBlockOf(e.Name, e.Fields),
			FromType:   fromType,
			ToType:     toType,
		}
	}

	// Step 3: resolve walker declarations against the node map.
	for _, w := range walkerDecls {
		if _, exists := prog.Walkers[w.Name]; exists {
			return nil, cerrors.NewDuplicateDeclarationError("walker", w.Name)
		}
		nodeType, ok := prog.Nodes[w.NodeType]
		if !ok {
			return nil, cerrors.NewUndefinedReferenceError(w.NodeType)
		}
		prog.Walkers[w.Name] = &ir.WalkerDecl{Name: w.Name, NodeType: nodeType}
	}

	// Step 4: resolve each graph's instances, in source order.
	for graphIndex, g := range graphDecls {
		graph, err := r.resolveGraph(prog, graphIndex, g)
		if err != nil {
			return nil, err
		}
		prog.Graphs = append(prog.Graphs, graph)
	}

	return prog, nil
}

func namedBlockOf(name string, fields []types.Field) types.NamedBlock {
	return types.NamedBlock{Name: name, Fields: fields}
}
