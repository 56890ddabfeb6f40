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

package ast

import "github.com/kraklabs/dsgl/pkg/types"

// Block is the tagged union over DSGL's four top-level syntactic blocks:
// node, edge, walker, and graph declarations. Consumers dispatch over the
// concrete type with a type switch, the same discipline the resolver uses
// over these four cases.
type Block interface {
	blockKind() string
}

// NodeDecl is the syntactic form of a node declaration: "node" IDENT "{"
// field_list "}" ";".
type NodeDecl struct {
	Name   string
	Fields []types.Field
	Pos    Pos
}

func (NodeDecl) blockKind() string { return "node" }

// EdgeDecl is the syntactic form of an edge declaration: "edge" IDENT IDENT
// IDENT "{" field_list "}" ";", where the two idents after the edge name
// are the from_type and to_type references.
type EdgeDecl struct {
	Name     string
	FromType string
	ToType   string
	Fields   []types.Field
	Pos      Pos
}

func (EdgeDecl) blockKind() string { return "edge" }

// WalkerDecl is the syntactic form of a walker declaration: "walker" IDENT
// ":" IDENT ";".
type WalkerDecl struct {
	Name     string
	NodeType string
	Pos      Pos
}

func (WalkerDecl) blockKind() string { return "walker" }

// GraphDecl is the syntactic form of a graph declaration: "graph" "{"
// graph_body "}" ";". Its body is an ordered sequence of graph statements,
// kept in source order for deterministic downstream resolution.
type GraphDecl struct {
	Stmts []GraphStmt
	Pos   Pos
}

func (GraphDecl) blockKind() string { return "graph" }

// GraphStmt is the tagged union over the three graph-body statement forms:
// node-instance, edge-instance, and walker-instance statements.
type GraphStmt interface {
	graphStmtKind() string
}

// NodeInstStmt declares one or more node instances of the same declared
// type: "node" IDENT ident_list ";". The parser keeps the whole ident_list
// in one NodeInstStmt; the resolver expands it into one node instance per
// identifier.
type NodeInstStmt struct {
	NodeType string
	VarNames []string
	Pos      Pos
}

func (NodeInstStmt) graphStmtKind() string { return "node_inst" }

// EdgeInstStmt declares one edge instance: "edge" IDENT IDENT IDENT INT ";".
type EdgeInstStmt struct {
	EdgeType string
	FromVar  string
	ToVar    string
	Weight   int64
	Pos      Pos
}

func (EdgeInstStmt) graphStmtKind() string { return "edge_inst" }

// WalkerInstStmt declares one walker instance: "walker" IDENT IDENT ";".
type WalkerInstStmt struct {
	WalkerType string
	StartVar   string
	Pos        Pos
}

func (WalkerInstStmt) graphStmtKind() string { return "walker_inst" }
