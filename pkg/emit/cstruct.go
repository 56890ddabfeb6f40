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

package emit

import (
	"fmt"
	"strings"

	"github.com/kraklabs/dsgl/pkg/ir"
)

// ReferenceEmitter is the default EmitterContract implementation: plain C,
// no vendor extensions beyond the DPU-style primitives it names.
type ReferenceEmitter struct{}

// NewReferenceEmitter constructs the default emitter.
func NewReferenceEmitter() *ReferenceEmitter {
	return &ReferenceEmitter{}
}

// StructDecl emits "typedef struct _Name { ...fields... } Name;" with
// fields in declared order and no implicit padding at the IR level.
func (e *ReferenceEmitter) StructDecl(decl *ir.NodeDecl) string {
	var b strings.Builder
	fmt.Fprintf(&b, "typedef struct _%s {\n", decl.Name)
	for _, f := range decl.Fields {
		fmt.Fprintf(&b, "\t%s;\n", f.Type.CDecl(f.Name))
	}
	fmt.Fprintf(&b, "} %s;\n", decl.Name)
	return b.String()
}

// EdgeStructDecl emits the edge's own fields followed by `from`/`to`
// fields of the endpoint node structs.
func (e *ReferenceEmitter) EdgeStructDecl(decl *ir.EdgeDecl) string {
	var b strings.Builder
	fmt.Fprintf(&b, "typedef struct _%s {\n", decl.Name)
	for _, f := range decl.Fields {
		fmt.Fprintf(&b, "\t%s;\n", f.Type.CDecl(f.Name))
	}
	fmt.Fprintf(&b, "\t%s from;\n", decl.FromType.Name)
	fmt.Fprintf(&b, "\t%s to;\n", decl.ToType.Name)
	fmt.Fprintf(&b, "} %s;\n", decl.Name)
	return b.String()
}

// WalkerAlias emits a plain C typedef binding the walker's name to its node
// type's struct — the host/device units are plain C, so a typedef is the
// natural alias form.
func (e *ReferenceEmitter) WalkerAlias(decl *ir.WalkerDecl) string {
	return fmt.Sprintf("typedef %s %s;\n", decl.NodeType.Name, decl.Name)
}

// ArrayPointerDecls emits one pointer declaration per array-typed field of
// the instance's declared type, named <var>_<field>.
func (e *ReferenceEmitter) ArrayPointerDecls(inst *ir.NodeInstance) []string {
	var decls []string
	for _, f := range inst.Type.ArrayFields() {
		decls = append(decls, fmt.Sprintf("%s *%s_%s;", f.Type.Base.CType(), inst.VarName, f.Name))
	}
	return decls
}

// PerInstanceInit emits a forward declaration for each node and edge
// instance's generated init function.
func (e *ReferenceEmitter) PerInstanceInit(graph *ir.Graph) []string {
	var decls []string
	for _, inst := range graph.NodeInstances {
		decls = append(decls, fmt.Sprintf("%s %s_init(void);", inst.Type.Name, inst.VarName))
	}
	for _, edge := range graph.EdgeInstances {
		decls = append(decls, fmt.Sprintf("%s %s_%s_init(void);", edge.Type.Name, edge.From.VarName, edge.To.VarName))
	}
	return decls
}
