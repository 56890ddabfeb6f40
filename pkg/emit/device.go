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
	"strings"
	"text/template"

	"github.com/kraklabs/dsgl/pkg/ir"
)

// deviceTemplate is the device translation unit's main_kernel1 shell:
// reset scratch on tasklet 0, barrier-join, a single base address at
// DPU_MRAM_HEAP_POINTER (no separate base per transferred array), a
// BLOCK_SIZE per-tasklet cache, and byte-aligned block iteration over
// input_size_dpu_bytes calling mram_read, kernel_dpu, then mram_write of the
// cache back to the same block. Built as a Go text/template, mirroring
// host.go's templating choice.
var deviceTemplate = template.Must(template.New("device").Parse(`// Generated by the DSGL compiler. Do not edit by hand.
#include <stdint.h>
#include <stddef.h>
#include <defs.h>
#include <mram.h>
#include <alloc.h>
#include <barrier.h>

{{range .Structs}}{{.}}
{{end}}
#ifndef BLOCK_SIZE
#define BLOCK_SIZE 256
#endif

__host uint32_t input_size_dpu_bytes;
__mram_ptr void *DPU_MRAM_HEAP_POINTER;

BARRIER_INIT(kernel_barrier, NR_TASKLETS);

extern void kernel_dpu(void *cache, uint32_t block_size);
static uint32_t base_index_of(uint32_t tasklet_id);

int main_kernel1(void) {
	uint32_t tasklet_id = me();

	if (tasklet_id == 0) {
		mem_reset();
	}
	barrier_wait(&kernel_barrier);

	uint8_t *base = (uint8_t *)DPU_MRAM_HEAP_POINTER;
	uint8_t *cache = (uint8_t *)mem_alloc(BLOCK_SIZE);

	uint32_t block = BLOCK_SIZE;
	for (uint32_t byte_index = base_index_of(tasklet_id); byte_index < input_size_dpu_bytes; byte_index += BLOCK_SIZE * NR_TASKLETS) {
		if (byte_index + block >= input_size_dpu_bytes) {
			block = input_size_dpu_bytes - byte_index;
		}

		mram_read((__mram_ptr void const *)(base + byte_index), cache, block);
		kernel_dpu(cache, block);
		mram_write(cache, (__mram_ptr void *)(base + byte_index), block);
	}

	return 0;
}

static uint32_t base_index_of(uint32_t tasklet_id) {
	return tasklet_id * BLOCK_SIZE;
}
`))

// DeviceUnit produces the device translation unit. Every node and edge
// struct declared anywhere in the program is made available to the device
// side, mirroring HostUnit's program-wide struct emission.
func (e *ReferenceEmitter) DeviceUnit(prog *ir.Program) Unit {
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

	data := struct{ Structs []string }{Structs: structs}

	var b strings.Builder
	if err := deviceTemplate.Execute(&b, data); err != nil {
		panic(err)
	}
	return Unit{Content: b.String()}
}
