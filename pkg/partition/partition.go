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

package partition

import (
	"time"

	cerrors "github.com/kraklabs/dsgl/internal/errors"
	"github.com/kraklabs/dsgl/pkg/ir"
)

// Partitioner assigns each node instance in a graph to one of a fixed
// number of accelerator cores, maximizing intra-core edge weight subject to
// a per-core byte budget.
type Partitioner struct {
	newSolver func(onProgress func(explored int64)) Solver
	metrics   *Metrics
}

// Option configures a Partitioner.
type Option func(*Partitioner)

// WithSolverFactory overrides the Solver implementation the Partitioner
// uses. Tests substitute a mock here; the default is the in-house
// bruteSolver.
func WithSolverFactory(factory func(onProgress func(explored int64)) Solver) Option {
	return func(p *Partitioner) { p.newSolver = factory }
}

// WithMetrics attaches Prometheus instrumentation to every Partition call.
func WithMetrics(m *Metrics) Option {
	return func(p *Partitioner) { p.metrics = m }
}

// New creates a Partitioner. With no options, it solves with the in-house
// branch-and-bound Solver and records no metrics.
func New(opts ...Option) *Partitioner {
	p := &Partitioner{
		newSolver: func(onProgress func(explored int64)) Solver {
			return NewBruteForceSolver(onProgress, 1000)
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProgressFunc is called as the solver explores the search space, with a
// count of nodes explored so far. Callers wire this to a progress bar.
type ProgressFunc func(explored int64)

// Partition runs the capacity-aware cut-maximization over one graph's node
// instances. cores must be >= 1; capacity is the per-core byte budget.
//
// On success it returns exactly `cores` buckets that partition the graph's
// node instances: every instance appears in exactly one bucket. When no
// assignment keeps every core's modelled load within capacity, it returns
// NoFeasibleAssignment. When several assignments reach the same maximal
// intra-core weight, which one is returned is not part of this contract.
func (p *Partitioner) Partition(graph *ir.Graph, cores int, capacity int64, progress ProgressFunc) ([][]*ir.NodeInstance, error) {
	start := time.Now()
	buckets, err := p.partition(graph, cores, capacity, progress)
	if p.metrics != nil {
		p.metrics.observe(err == nil, time.Since(start))
	}
	return buckets, err
}

func (p *Partitioner) partition(graph *ir.Graph, cores int, capacity int64, progress ProgressFunc) ([][]*ir.NodeInstance, error) {
	if cores < 1 {
		cores = 1
	}

	var onProgress func(explored int64)
	if progress != nil {
		onProgress = func(explored int64) { progress(explored) }
	}
	solver := p.newSolver(onProgress)

	n := len(graph.NodeInstances)
	nodeVars := make([]VarRef, n)
	nodeIndex := make(map[*ir.NodeInstance]int, n)
	for i, inst := range graph.NodeInstances {
		v := solver.DeclareInt()
		solver.AssertBound(v, 0, int64(cores-1))
		nodeVars[i] = v
		nodeIndex[inst] = i
	}

	// For each core j, assert load_j <= capacity, where load_j sums every
	// node instance assigned to j plus every edge instance whose from OR to
	// endpoint is assigned to j.
	for j := 0; j < cores; j++ {
		var terms []Term
		for i, inst := range graph.NodeInstances {
			terms = append(terms, NodeIndicator(nodeVars[i], int64(j), int64(inst.Type.SizeBytes())))
		}
		for _, edge := range graph.EdgeInstances {
			fromVar := nodeVars[nodeIndex[edge.From]]
			toVar := nodeVars[nodeIndex[edge.To]]
			terms = append(terms, EdgeCoreIndicator([]VarRef{fromVar, toVar}, int64(j), int64(edge.Type.SizeBytes())))
		}
		solver.AssertLE(terms, capacity)
	}

	// Objective: maximize sum of weight(e) for every edge instance whose
	// endpoints land on the same core.
	var objective []Term
	for _, edge := range graph.EdgeInstances {
		fromVar := nodeVars[nodeIndex[edge.From]]
		toVar := nodeVars[nodeIndex[edge.To]]
		objective = append(objective, SameCoreIndicator(fromVar, toVar, edge.Weight))
	}
	solver.Maximize(objective)

	if !solver.Check() {
		return nil, cerrors.NewNoFeasibleAssignmentError(cores, capacity)
	}

	buckets := make([][]*ir.NodeInstance, cores)
	for i, inst := range graph.NodeInstances {
		core := solver.ModelGetInt64(nodeVars[i])
		buckets[core] = append(buckets[core], inst)
	}
	return buckets, nil
}
