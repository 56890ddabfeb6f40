// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package emit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/dsgl/pkg/ast"
	"github.com/kraklabs/dsgl/pkg/ir"
	"github.com/kraklabs/dsgl/pkg/resolve"
)

func buildProgram(t *testing.T) (*ir.Program, *ir.Graph) {
	t.Helper()
	blocks, err := ast.Parse(`
node Sensor { id: int32; samples: float[4]; };
node Hub { id: int32; };
edge Reports Sensor Hub { latency: int32; };
graph {
	node Sensor s1, s2;
	node Hub h1;
	edge Reports s1 h1 3;
};
`)
	require.NoError(t, err)
	prog, err := resolve.New(nil).Resolve(blocks)
	require.NoError(t, err)
	require.Len(t, prog.Graphs, 1)
	return prog, prog.Graphs[0]
}

func TestStructDecl(t *testing.T) {
	prog, _ := buildProgram(t)
	e := NewReferenceEmitter()
	decl := e.StructDecl(prog.Nodes["Sensor"])
	assert.Contains(t, decl, "typedef struct _Sensor {")
	assert.Contains(t, decl, "int32_t id;")
	assert.Contains(t, decl, "float samples[4];")
	assert.Contains(t, decl, "} Sensor;")
}

func TestEdgeStructDecl(t *testing.T) {
	prog, _ := buildProgram(t)
	e := NewReferenceEmitter()
	decl := e.EdgeStructDecl(prog.Edges["Reports"])
	assert.Contains(t, decl, "int32_t latency;")
	assert.Contains(t, decl, "Sensor from;")
	assert.Contains(t, decl, "Hub to;")
}

func TestArrayPointerDecls(t *testing.T) {
	_, graph := buildProgram(t)
	e := NewReferenceEmitter()
	decls := e.ArrayPointerDecls(graph.NodeInstances[0])
	require.Len(t, decls, 1)
	assert.Equal(t, "float *s1_samples;", decls[0])
}

func TestHostUnitIncludesAllStructsAndCoreAssignment(t *testing.T) {
	prog, graph := buildProgram(t)
	e := NewReferenceEmitter()
	assignment := [][]*ir.NodeInstance{
		{graph.NodeInstances[0]},
		{graph.NodeInstances[1], graph.NodeInstances[2]},
	}
	unit := e.HostUnit(prog, graph, assignment)
	assert.Contains(t, unit.Content, "typedef struct _Sensor")
	assert.Contains(t, unit.Content, "typedef struct _Hub")
	assert.Contains(t, unit.Content, "typedef struct _Reports")
	assert.Contains(t, unit.Content, "core 0: s1")
	assert.Contains(t, unit.Content, "core 1: s2 h1")
	assert.Contains(t, unit.Content, "int main(")
}

func TestDeviceUnitHasKernelShell(t *testing.T) {
	prog, _ := buildProgram(t)
	e := NewReferenceEmitter()
	unit := e.DeviceUnit(prog)
	assert.Contains(t, unit.Content, "main_kernel1")
	assert.Contains(t, unit.Content, "mram_read")
	assert.Contains(t, unit.Content, "mram_write")
	assert.Contains(t, unit.Content, "barrier_wait")
}

func TestEmitWritesHostAndDeviceFiles(t *testing.T) {
	prog, graph := buildProgram(t)
	e := NewReferenceEmitter()
	assignment := [][]*ir.NodeInstance{graph.NodeInstances}

	dir := t.TempDir()
	hostPath := filepath.Join(dir, "out", "host.c")

	err := Emit(e, prog, graph, assignment, hostPath, "")
	require.NoError(t, err)

	hostBytes, err := os.ReadFile(hostPath)
	require.NoError(t, err)
	assert.Contains(t, string(hostBytes), "int main(")

	devicePath := filepath.Join(filepath.Dir(hostPath), DeviceFileName)
	deviceBytes, err := os.ReadFile(devicePath)
	require.NoError(t, err)
	assert.Contains(t, string(deviceBytes), "main_kernel1")
}

func TestWalkerAliasEmitsTypedef(t *testing.T) {
	blocks, err := ast.Parse(`
node A { x: int32; };
walker Crawler : A;
`)
	require.NoError(t, err)
	prog, err := resolve.New(nil).Resolve(blocks)
	require.NoError(t, err)

	e := NewReferenceEmitter()
	assert.Equal(t, "typedef A Crawler;\n", e.WalkerAlias(prog.Walkers["Crawler"]))
}
