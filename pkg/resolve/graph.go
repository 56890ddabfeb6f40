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

package resolve

import (
	cerrors "github.com/kraklabs/dsgl/internal/errors"
	"github.com/kraklabs/dsgl/pkg/ast"
	"github.com/kraklabs/dsgl/pkg/ir"
)

// resolveGraph builds one graph's node/edge/walker instances in source
// order.
func (r *Resolver) resolveGraph(prog *ir.Program, graphIndex int, g ast.GraphDecl) (*ir.Graph, error) {
	graph := &ir.Graph{}
	vars := make(map[string]*ir.NodeInstance)

	// 4a: node-instance statements, expanding the ident_list.
	for _, stmt := range g.Stmts {
		nodeStmt, ok := stmt.(ast.NodeInstStmt)
		if !ok {
			continue
		}
		nodeType, ok := prog.Nodes[nodeStmt.NodeType]
		if !ok {
			return nil, cerrors.NewUndefinedReferenceError(nodeStmt.NodeType)
		}
		for _, varName := range nodeStmt.VarNames {
			if _, exists := vars[varName]; exists {
				return nil, cerrors.NewDuplicateVariableError(graphIndex, varName)
			}
			inst := &ir.NodeInstance{VarName: varName, Type: nodeType}
			vars[varName] = inst
			graph.NodeInstances = append(graph.NodeInstances, inst)
		}
	}

	// 4b: edge-instance statements.
	for _, stmt := range g.Stmts {
		edgeStmt, ok := stmt.(ast.EdgeInstStmt)
		if !ok {
			continue
		}
		edgeType, ok := prog.Edges[edgeStmt.EdgeType]
		if !ok {
			return nil, cerrors.NewUndefinedReferenceError(edgeStmt.EdgeType)
		}
		fromInst, ok := vars[edgeStmt.FromVar]
		if !ok {
			return nil, cerrors.NewUndefinedReferenceError(edgeStmt.FromVar)
		}
		toInst, ok := vars[edgeStmt.ToVar]
		if !ok {
			return nil, cerrors.NewUndefinedReferenceError(edgeStmt.ToVar)
		}

		// An endpoint's declared node type may differ from the edge
		// declaration's from_type/to_type. Treated as non-fatal: warn but
		// do not fail, since DSGL does not enforce endpoint typing strictly.
		if fromInst.Type != edgeType.FromType {
			r.logger.Warn("resolve.edge_endpoint_type_mismatch",
				"edge", edgeStmt.EdgeType,
				"endpoint", "from",
				"variable", edgeStmt.FromVar,
				"expected_type", edgeType.FromType.Name,
				"actual_type", fromInst.Type.Name,
			)
		}
		if toInst.Type != edgeType.ToType {
			r.logger.Warn("resolve.edge_endpoint_type_mismatch",
				"edge", edgeStmt.EdgeType,
				"endpoint", "to",
				"variable", edgeStmt.ToVar,
				"expected_type", edgeType.ToType.Name,
				"actual_type", toInst.Type.Name,
			)
		}

		graph.EdgeInstances = append(graph.EdgeInstances, &ir.EdgeInstance{
			Type:   edgeType,
			From:   fromInst,
			To:     toInst,
			Weight: edgeStmt.Weight,
		})
	}

	// 4c: walker-instance statements.
	for _, stmt := range g.Stmts {
		walkerStmt, ok := stmt.(ast.WalkerInstStmt)
		if !ok {
			continue
		}
		walkerType, ok := prog.Walkers[walkerStmt.WalkerType]
		if !ok {
			return nil, cerrors.NewUndefinedReferenceError(walkerStmt.WalkerType)
		}
		startInst, ok := vars[walkerStmt.StartVar]
		if !ok {
			return nil, cerrors.NewUndefinedReferenceError(walkerStmt.StartVar)
		}
		if startInst.Type != walkerType.NodeType {
			return nil, cerrors.NewWalkerTypeMismatchError(
				walkerStmt.StartVar,
				walkerType.NodeType.Name,
				startInst.Type.Name,
			)
		}
		graph.WalkerInstances = append(graph.WalkerInstances, &ir.WalkerInstance{
			Type:      walkerType,
			StartNode: startInst,
		})
	}

	return graph, nil
}
