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

// Package types defines the DSGL primitive and field type model, including
// the byte-size arithmetic used by the emitter and the core partitioner.
package types

import "fmt"

// Primitive is one of DSGL's seven scalar base types.
type Primitive int

const (
	Int8 Primitive = iota
	Int16
	Int32
	Int64
	Float
	Double
	Char
)

// primitiveNames is the canonical DSGL source spelling for each primitive,
// also used as the map key when parsing base_type tokens.
var primitiveNames = map[Primitive]string{
	Int8:   "int8",
	Int16:  "int16",
	Int32:  "int32",
	Int64:  "int64",
	Float:  "float",
	Double: "double",
	Char:   "char",
}

// primitiveSizes holds the fixed byte size of each primitive.
var primitiveSizes = map[Primitive]int{
	Int8:   1,
	Int16:  2,
	Int32:  4,
	Int64:  8,
	Float:  4,
	Double: 8,
	Char:   1,
}

// ParsePrimitive resolves a base_type token to a Primitive. ok is false for
// any identifier that is not one of the seven recognized keywords.
func ParsePrimitive(token string) (Primitive, bool) {
	for p, name := range primitiveNames {
		if name == token {
			return p, true
		}
	}
	return 0, false
}

// String returns the DSGL source spelling of the primitive.
func (p Primitive) String() string {
	if name, ok := primitiveNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Primitive(%d)", int(p))
}

// SizeBytes returns the fixed byte size of the primitive.
func (p Primitive) SizeBytes() int {
	return primitiveSizes[p]
}

// CType returns the C type the emitter maps this primitive to.
func (p Primitive) CType() string {
	switch p {
	case Int8:
		return "int8_t"
	case Int16:
		return "int16_t"
	case Int32:
		return "int32_t"
	case Int64:
		return "int64_t"
	case Float:
		return "float"
	case Double:
		return "double"
	case Char:
		return "char"
	default:
		return "void"
	}
}

// FieldType is either a scalar primitive or a fixed-length array of a
// primitive with count >= 1. It is a tagged union: Count == 0
// means scalar, Count >= 1 means an array of that length.
type FieldType struct {
	Base  Primitive
	Count int // 0 for scalar, >=1 for array length
}

// Scalar constructs a scalar field type.
func Scalar(base Primitive) FieldType {
	return FieldType{Base: base, Count: 0}
}

// Array constructs a fixed-length array field type. count must already be
// validated to lie within [1, 2^31-1] by the parser.
func Array(base Primitive, count int) FieldType {
	return FieldType{Base: base, Count: count}
}

// IsArray reports whether the field type is an array rather than a scalar.
func (t FieldType) IsArray() bool {
	return t.Count > 0
}

// SizeBytes computes size_of(array(T, N)) = N * size_of(T), or size_of(T)
// for a scalar.
func (t FieldType) SizeBytes() int {
	if t.IsArray() {
		return t.Base.SizeBytes() * t.Count
	}
	return t.Base.SizeBytes()
}

// CDecl returns the C declaration fragment for a field of this type with the
// given name, e.g. "int32_t x" or "double samples[30]".
func (t FieldType) CDecl(name string) string {
	if t.IsArray() {
		return fmt.Sprintf("%s %s[%d]", t.Base.CType(), name, t.Count)
	}
	return fmt.Sprintf("%s %s", t.Base.CType(), name)
}

// Field is a named field within a NamedBlock: an identifier and a field
// type. Identifiers are unique within their enclosing named block, enforced
// by the parser rather than by this type.
type Field struct {
	Name string
	Type FieldType
}

// SizeBytes returns the field's contribution to its enclosing block's size.
func (f Field) SizeBytes() int {
	return f.Type.SizeBytes()
}

// NamedBlock is an ordered sequence of fields tagged with a name.
// Field ordering is significant: structs emit fields in declared order, and
// no padding is added at this level.
type NamedBlock struct {
	Name   string
	Fields []Field
}

// SizeBytes returns size_of(named_block) = sum of field sizes, with no
// implicit padding.
func (b NamedBlock) SizeBytes() int {
	total := 0
	for _, f := range b.Fields {
		total += f.SizeBytes()
	}
	return total
}

// FieldNames returns the names of every field, in declared order.
func (b NamedBlock) FieldNames() []string {
	names := make([]string, len(b.Fields))
	for i, f := range b.Fields {
		names[i] = f.Name
	}
	return names
}

// ArrayFields returns every field whose type is an array, in declared
// order. The emitter contract uses this to decide which node-instance
// fields need a separately staged device-memory pointer.
func (b NamedBlock) ArrayFields() []Field {
	var out []Field
	for _, f := range b.Fields {
		if f.Type.IsArray() {
			out = append(out, f)
		}
	}
	return out
}
