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

// Package partition implements the capacity-aware core partitioner: it
// assigns each node instance in a graph to one of K accelerator cores,
// maximizing intra-core edge weight subject to a per-core byte budget.
//
// The integer-theory search step is abstracted behind a narrow Solver
// interface (declare_int, assert_bound, assert_le, maximize, check,
// model_get_i64): one Int variable per node instance, and a per-core
// summed-load expression asserted <= capacity. Solver's only implementation
// here is an in-house branch-and-bound search (bruteforce.go); the
// interface exists so a real SMT binding — or a test mock — can be
// substituted without touching the encoding in partition.go.
package partition

// VarRef identifies one declared integer variable.
type VarRef int

// Term is one summand of a linear objective or constraint expression. Terms
// are evaluated against a candidate assignment of every declared variable
// (bruteSolver also evaluates partial ones, with undecided variables set to
// a negative sentinel); Solver implementations never need to interpret
// Term's internal shape, only Eval it.
type Term interface {
	Eval(assignment []int64) int64
}

// constTerm contributes coeff to the sum when variable v equals eq.
type constTerm struct {
	v     VarRef
	eq    int64
	coeff int64
}

func (t constTerm) Eval(assignment []int64) int64 {
	if assignment[t.v] == t.eq {
		return t.coeff
	}
	return 0
}

// orConstTerm contributes coeff when ANY of vars equals eq (used for the
// edge-crosses-into-this-core indicator: an edge instance whose from-node
// or to-node is assigned to core j contributes its byte cost to core j's
// load).
type orConstTerm struct {
	vars  []VarRef
	eq    int64
	coeff int64
}

func (t orConstTerm) Eval(assignment []int64) int64 {
	for _, v := range t.vars {
		if assignment[v] == t.eq {
			return t.coeff
		}
	}
	return 0
}

// eqVarTerm contributes coeff when variables a and b are assigned the same
// value (used for the affinity objective's x_from == x_to indicator).
type eqVarTerm struct {
	a, b  VarRef
	coeff int64
}

func (t eqVarTerm) Eval(assignment []int64) int64 {
	if assignment[t.a] == assignment[t.b] {
		return t.coeff
	}
	return 0
}

// NodeIndicator builds a Term contributing coeff when v is assigned eq.
func NodeIndicator(v VarRef, eq int64, coeff int64) Term {
	return constTerm{v: v, eq: eq, coeff: coeff}
}

// EdgeCoreIndicator builds a Term contributing coeff when either endpoint
// variable is assigned eq (core index j).
func EdgeCoreIndicator(vars []VarRef, eq int64, coeff int64) Term {
	return orConstTerm{vars: vars, eq: eq, coeff: coeff}
}

// SameCoreIndicator builds a Term contributing coeff when a and b are
// assigned the same core.
func SameCoreIndicator(a, b VarRef, coeff int64) Term {
	return eqVarTerm{a: a, b: b, coeff: coeff}
}

// Solver is the narrow capability interface the partitioner encodes its
// bin-packing + cut-maximization problem against.
type Solver interface {
	// DeclareInt declares a fresh integer decision variable and returns a
	// stable reference to it.
	DeclareInt() VarRef

	// AssertBound constrains lo <= v <= hi.
	AssertBound(v VarRef, lo, hi int64)

	// AssertLE asserts that the sum of terms is <= bound.
	AssertLE(terms []Term, bound int64)

	// Maximize sets the objective to the sum of terms.
	Maximize(terms []Term)

	// Check solves the model, returning false if the constraint system is
	// unsatisfiable.
	Check() bool

	// ModelGetInt64 returns the value assigned to v in a satisfying model.
	// It is only valid to call after Check returns true.
	ModelGetInt64(v VarRef) int64
}
