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
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/kraklabs/dsgl/pkg/ir"
)

// hostTemplate is the host translation unit skeleton: runtime-parameter
// parsing, NR_DPUS allocation, device-binary load, one pointer declaration
// per array field, and a timed loop over n_warmup+n_reps iterations that
// launches synchronously. The array pointers are declared but not allocated
// and no inputs are read into them; the per-DPU staging and read-back loops
// are emitted as empty placeholders. Built as a Go text/template.
var hostTemplate = template.Must(template.New("host").Parse(`// Generated by the DSGL compiler. Do not edit by hand.
#include <stdint.h>
#include <stdio.h>
#include <string.h>
#include <stdlib.h>
#include <stdbool.h>
#include <dpu.h>
#include <dpu_log.h>
#include <unistd.h>
#include <getopt.h>
#include <assert.h>
#include "task.c"

#ifndef DPU_BINARY
#define DPU_BINARY "./dpu_binary.bin"
#endif

{{range .Structs}}{{.}}
{{end}}
{{range .InitDecls}}{{.}}
{{end}}

{{range .CoreComment}}// {{.}}
{{end}}
int main(int argc, char **argv) {
	struct Params p = input_params(argc, argv);
	uint32_t nr_of_dpus = p.nr_of_dpus ? p.nr_of_dpus : NR_DPUS;

	struct dpu_set_t dpu_set, dpu;
	DPU_ASSERT(dpu_alloc(nr_of_dpus, NULL, &dpu_set));
	DPU_ASSERT(dpu_load(dpu_set, DPU_BINARY, NULL));

{{range .NodeInstances}}	{{.Type}} {{.Var}}_inst;
{{end}}
{{range .EdgeInstances}}	{{.Type}} {{.From}}_{{.To}}_inst;
{{end}}

{{range .ArrayPtrs}}	{{.}}
{{end}}

{{range .NodeInstances}}	{{.Var}}_inst = {{.Var}}_init();
{{end}}
{{range .EdgeInstances}}	{{.From}}_{{.To}}_inst = {{.From}}_{{.To}}_init();
{{end}}

	Timer timer;
	for (uint32_t rep = 0; rep < p.n_warmup + p.n_reps; rep++) {
		if (rep >= p.n_warmup) timer_start(&timer);

		DPU_FOREACH(dpu_set, dpu) {
			/* stage inputs to device memory */
		}
		DPU_ASSERT(dpu_launch(dpu_set, DPU_SYNCHRONOUS));
		DPU_FOREACH(dpu_set, dpu) {
			/* read back outputs */
		}

		if (rep >= p.n_warmup) timer_stop(&timer);
	}

	DPU_ASSERT(dpu_free(dpu_set));
	return 0;
}
`))

type hostNodeInst struct{ Type, Var string }
type hostEdgeInst struct{ Type, From, To string }

// HostUnit produces the host translation unit for one graph, incorporating
// every node/edge struct and walker alias in the program plus the
// per-graph instance wiring and array-field staging pointers.
func (e *ReferenceEmitter) HostUnit(prog *ir.Program, graph *ir.Graph, assignment [][]*ir.NodeInstance) Unit {
	var structs []string
	for _, name := range sortedKeys(prog.Nodes) {
		structs = append(structs, e.StructDecl(prog.Nodes[name]))
	}
	for _, name := range sortedEdgeKeys(prog.Edges) {
		structs = append(structs, e.EdgeStructDecl(prog.Edges[name]))
	}
	for _, name := range sortedKeysWalkers(prog.Walkers) {
		structs = append(structs, e.WalkerAlias(prog.Walkers[name]))
	}

	var nodeInsts []hostNodeInst
	for _, inst := range graph.NodeInstances {
		nodeInsts = append(nodeInsts, hostNodeInst{Type: inst.Type.Name, Var: inst.VarName})
	}
	var edgeInsts []hostEdgeInst
	for _, edge := range graph.EdgeInstances {
		edgeInsts = append(edgeInsts, hostEdgeInst{Type: edge.Type.Name, From: edge.From.VarName, To: edge.To.VarName})
	}

	var arrayPtrs []string
	for _, inst := range graph.NodeInstances {
		arrayPtrs = append(arrayPtrs, e.ArrayPointerDecls(inst)...)
	}

	var coreComment []string
	for core, insts := range assignment {
		var vars []string
		for _, inst := range insts {
			vars = append(vars, inst.VarName)
		}
		coreComment = append(coreComment, strings.Join(append([]string{"core " + strconv.Itoa(core) + ":"}, vars...), " "))
	}

	data := struct {
		Structs       []string
		InitDecls     []string
		NodeInstances []hostNodeInst
		EdgeInstances []hostEdgeInst
		ArrayPtrs     []string
		CoreComment   []string
	}{
		Structs:       structs,
		InitDecls:     e.PerInstanceInit(graph),
		NodeInstances: nodeInsts,
		EdgeInstances: edgeInsts,
		ArrayPtrs:     arrayPtrs,
		CoreComment:   coreComment,
	}

	var b strings.Builder
	if err := hostTemplate.Execute(&b, data); err != nil {
		// text/template errors here only indicate a bug in this package's
		// own template, never a user-input problem; surface it plainly.
		panic(err)
	}
	return Unit{Content: b.String()}
}

func sortedKeys(m map[string]*ir.NodeDecl) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedEdgeKeys(m map[string]*ir.EdgeDecl) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysWalkers(m map[string]*ir.WalkerDecl) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
