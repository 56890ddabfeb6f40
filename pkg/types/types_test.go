// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrimitive(t *testing.T) {
	tests := []struct {
		token string
		want  Primitive
		ok    bool
	}{
		{"int8", Int8, true},
		{"int16", Int16, true},
		{"int32", Int32, true},
		{"int64", Int64, true},
		{"float", Float, true},
		{"double", Double, true},
		{"char", Char, true},
		{"bool", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParsePrimitive(tt.token)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPrimitiveSizeBytes(t *testing.T) {
	assert.Equal(t, 1, Int8.SizeBytes())
	assert.Equal(t, 2, Int16.SizeBytes())
	assert.Equal(t, 4, Int32.SizeBytes())
	assert.Equal(t, 8, Int64.SizeBytes())
	assert.Equal(t, 4, Float.SizeBytes())
	assert.Equal(t, 8, Double.SizeBytes())
	assert.Equal(t, 1, Char.SizeBytes())
}

func TestPrimitiveCType(t *testing.T) {
	assert.Equal(t, "int8_t", Int8.CType())
	assert.Equal(t, "int32_t", Int32.CType())
	assert.Equal(t, "double", Double.CType())
	assert.Equal(t, "char", Char.CType())
}

func TestFieldTypeSizeBytes(t *testing.T) {
	scalar := Scalar(Int32)
	require.False(t, scalar.IsArray())
	assert.Equal(t, 4, scalar.SizeBytes())

	arr := Array(Double, 30)
	require.True(t, arr.IsArray())
	assert.Equal(t, 8*30, arr.SizeBytes())
}

func TestFieldTypeCDecl(t *testing.T) {
	assert.Equal(t, "int32_t x", Scalar(Int32).CDecl("x"))
	assert.Equal(t, "double samples[30]", Array(Double, 30).CDecl("samples"))
}

func TestNamedBlockSizeBytes(t *testing.T) {
	block := NamedBlock{
		Name: "Sensor",
		Fields: []Field{
			{Name: "id", Type: Scalar(Int32)},
			{Name: "readings", Type: Array(Float, 10)},
		},
	}
	// 4 bytes for id + 10*4 bytes for readings, no padding.
	assert.Equal(t, 4+10*4, block.SizeBytes())
	assert.Equal(t, []string{"id", "readings"}, block.FieldNames())
	assert.Equal(t, []Field{{Name: "readings", Type: Array(Float, 10)}}, block.ArrayFields())
}
