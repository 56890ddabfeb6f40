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

// unassigned is the sentinel value left in an in-progress assignment for
// variables not yet decided by the search. Since every declared variable's
// domain is a non-negative core index, no capacity Term (NodeIndicator,
// EdgeCoreIndicator) ever treats unassigned as a match, which makes
// partial-assignment evaluation a sound lower bound on every capacity term's
// eventual contribution (see bruteSolver.feasiblePrefix). The objective is
// only evaluated on complete assignments.
const unassigned int64 = -1

type leConstraint struct {
	terms []Term
	bound int64
}

// bruteSolver is the in-house branch-and-bound implementation of Solver
// (see package doc). It
// explores assignments depth-first in ascending variable-value order,
// pruning a branch as soon as any capacity constraint's sound partial sum
// exceeds its bound, and keeps the best complete assignment found.
type bruteSolver struct {
	bounds        [][2]int64
	leConstraints []leConstraint
	objective     []Term
	nodesExplored int64
	onProgress    func(explored int64)
	progressTick  int64
	best          []int64
	bestValue     int64
	foundFeasible bool
}

// NewBruteForceSolver creates a Solver with no declared variables or
// constraints yet. onProgress, if non-nil, is invoked periodically (every
// progressTick explored nodes) so a caller can drive a progress bar; pass a
// nil onProgress to disable this.
func NewBruteForceSolver(onProgress func(explored int64), progressTick int64) Solver {
	if progressTick <= 0 {
		progressTick = 1000
	}
	return &bruteSolver{onProgress: onProgress, progressTick: progressTick}
}

func (s *bruteSolver) DeclareInt() VarRef {
	s.bounds = append(s.bounds, [2]int64{0, 0})
	return VarRef(len(s.bounds) - 1)
}

func (s *bruteSolver) AssertBound(v VarRef, lo, hi int64) {
	s.bounds[v] = [2]int64{lo, hi}
}

func (s *bruteSolver) AssertLE(terms []Term, bound int64) {
	s.leConstraints = append(s.leConstraints, leConstraint{terms: terms, bound: bound})
}

func (s *bruteSolver) Maximize(terms []Term) {
	s.objective = terms
}

func sumTerms(terms []Term, assignment []int64) int64 {
	var total int64
	for _, t := range terms {
		total += t.Eval(assignment)
	}
	return total
}

// feasiblePrefix reports whether every capacity constraint's sound partial
// sum (unassigned variables treated as unassigned, never matching any real
// core index) is still within bound given the vars fixed so far.
func (s *bruteSolver) feasiblePrefix(assignment []int64) bool {
	for _, c := range s.leConstraints {
		if sumTerms(c.terms, assignment) > c.bound {
			return false
		}
	}
	return true
}

func (s *bruteSolver) Check() bool {
	n := len(s.bounds)
	assignment := make([]int64, n)
	for i := range assignment {
		assignment[i] = unassigned
	}
	s.best = make([]int64, n)
	s.bestValue = 0
	s.foundFeasible = false

	s.search(assignment, 0)
	return s.foundFeasible
}

func (s *bruteSolver) search(assignment []int64, depth int) {
	n := len(assignment)
	if depth == n {
		if !s.feasiblePrefix(assignment) {
			return
		}
		value := sumTerms(s.objective, assignment)
		if !s.foundFeasible || value > s.bestValue {
			s.foundFeasible = true
			s.bestValue = value
			copy(s.best, assignment)
		}
		return
	}

	lo, hi := s.bounds[depth][0], s.bounds[depth][1]
	for v := lo; v <= hi; v++ {
		assignment[depth] = v
		s.nodesExplored++
		if s.onProgress != nil && s.nodesExplored%s.progressTick == 0 {
			s.onProgress(s.nodesExplored)
		}
		if s.feasiblePrefix(assignment) {
			s.search(assignment, depth+1)
		}
	}
	assignment[depth] = unassigned
}

func (s *bruteSolver) ModelGetInt64(v VarRef) int64 {
	return s.best[v]
}
