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

// Package emit lowers a resolved IR (plus an optional partition assignment)
// to two C translation units: a host program that stages node fields into
// accelerator memory and a device program whose tasklets stream MRAM blocks
// through a per-tasklet cache. Only the shape of the generated C is fixed
// here; the device-vendor primitives (mram_read, barrier_wait, ...) are
// emitted verbatim.
package emit

import (
	"github.com/kraklabs/dsgl/pkg/ir"
)

// Unit is one emitted C translation unit: a path and its full text.
type Unit struct {
	Path    string
	Content string
}

// EmitterContract documents, in Go method names, the rules any emitter must
// satisfy to lower a resolved program to C. It is implemented by
// *ReferenceEmitter; it exists as a named interface so alternative
// device-vendor backends can be substituted without touching pkg/resolve or
// pkg/partition.
type EmitterContract interface {
	// StructDecl emits exactly one C struct declaration per node
	// declaration, fields in declared order.
	StructDecl(decl *ir.NodeDecl) string

	// EdgeStructDecl emits a struct declaration with the edge's own fields
	// plus an appended `from` field of the from_type struct and `to` field
	// of the to_type struct.
	EdgeStructDecl(decl *ir.EdgeDecl) string

	// WalkerAlias emits a type alias binding the walker's name to its node
	// type's struct.
	WalkerAlias(decl *ir.WalkerDecl) string

	// ArrayPointerDecls emits one device-memory pointer declaration per
	// array-typed field of a node instance's declared type, named
	// <var>_<field>.
	ArrayPointerDecls(inst *ir.NodeInstance) []string

	// PerInstanceInit emits the host-side `<Type> <var>_init(void);`
	// declaration for a node instance, and `<Edge> <from>_<to>_init(void);`
	// for an edge instance.
	PerInstanceInit(graph *ir.Graph) []string

	// HostUnit produces the full host translation unit for one graph and
	// its (optional) partition assignment.
	HostUnit(prog *ir.Program, graph *ir.Graph, assignment [][]*ir.NodeInstance) Unit

	// DeviceUnit produces the device translation unit's main_kernel1 shell.
	DeviceUnit(prog *ir.Program) Unit
}
