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

// Package errors defines the compiler's structured error kinds
// and the driver's fatal-error reporting path.
package errors

import (
	"encoding/json"
	"fmt"
	"os"
)

// Kind classifies a CompileError by what stage of the compiler raised it.
type Kind string

const (
	KindIO                 Kind = "io_error"
	KindParse              Kind = "parse_error"
	KindDuplicateDecl      Kind = "duplicate_declaration"
	KindDuplicateVariable  Kind = "duplicate_variable"
	KindUndefinedReference Kind = "undefined_reference"
	KindWalkerTypeMismatch Kind = "walker_type_mismatch"
	KindNoFeasibleAssign   Kind = "no_feasible_assignment"
	KindEmit               Kind = "emit_error"
	KindConfig             Kind = "config_error"
	KindInternal           Kind = "internal_error"
)

// Location is an optional source position attached to an error.
type Location struct {
	Line int
	Col  int
}

// CompileError is the uniform error type surfaced to the driver: a kind, a
// human-readable summary, a more detailed explanation, an actionable hint,
// an optional source location, and a wrapped cause.
type CompileError struct {
	Kind     Kind
	Summary  string
	Detail   string
	Hint     string
	Location *Location
	Cause    error
}

func (e *CompileError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Summary, e.Detail)
	}
	return e.Summary
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}

func newError(kind Kind, summary, detail, hint string, cause error) *CompileError {
	return &CompileError{Kind: kind, Summary: summary, Detail: detail, Hint: hint, Cause: cause}
}

// NewIOError reports a missing or unreadable source file.
func NewIOError(summary, detail, hint string, cause error) *CompileError {
	return newError(KindIO, summary, detail, hint, cause)
}

// NewParseError reports a malformed token or unexpected production at loc.
func NewParseError(summary, detail string, loc Location) *CompileError {
	e := newError(KindParse, summary, detail, "fix the syntax at the reported location", nil)
	e.Location = &loc
	return e
}

// NewDuplicateDeclarationError reports two declarations of the same kind
// sharing a name.
func NewDuplicateDeclarationError(kind, name string) *CompileError {
	return newError(
		KindDuplicateDecl,
		fmt.Sprintf("duplicate %s declaration %q", kind, name),
		fmt.Sprintf("a %s named %q is declared more than once", kind, name),
		"rename one of the declarations",
		nil,
	)
}

// NewDuplicateVariableError reports two instances in one graph sharing a
// variable name.
func NewDuplicateVariableError(graphIndex int, name string) *CompileError {
	return newError(
		KindDuplicateVariable,
		fmt.Sprintf("duplicate variable %q in graph %d", name, graphIndex),
		"every node, edge, and walker instance in a graph must have a unique name",
		"rename the duplicate instance",
		nil,
	)
}

// NewUndefinedReferenceError reports a type or variable reference that
// cannot be resolved.
func NewUndefinedReferenceError(name string) *CompileError {
	return newError(
		KindUndefinedReference,
		fmt.Sprintf("undefined reference %q", name),
		fmt.Sprintf("%q does not refer to any declaration or instance in scope", name),
		"check for typos or a missing declaration",
		nil,
	)
}

// NewWalkerTypeMismatchError reports that a walker instance's start
// variable's declared node type differs from the walker's node type.
func NewWalkerTypeMismatchError(walkerVar, expected, actual string) *CompileError {
	return newError(
		KindWalkerTypeMismatch,
		fmt.Sprintf("walker start variable %q has type %q, expected %q", walkerVar, actual, expected),
		"a walker instance's start variable must have the walker's declared node type",
		"use a start variable of the correct node type, or declare a walker for this node type",
		nil,
	)
}

// NewNoFeasibleAssignmentError reports that the partitioner's capacity
// constraints are unsatisfiable for any placement.
func NewNoFeasibleAssignmentError(cores int, capacity int64) *CompileError {
	return newError(
		KindNoFeasibleAssign,
		"no feasible core assignment",
		fmt.Sprintf("no placement of node instances across %d core(s) keeps every core at or under %d bytes", cores, capacity),
		"raise the per-core capacity, add cores, or shrink the graph",
		nil,
	)
}

// NewEmitError reports a filesystem failure during C output.
func NewEmitError(summary, detail string, cause error) *CompileError {
	return newError(KindEmit, summary, detail, "check the output path and filesystem permissions", cause)
}

// NewConfigError reports a problem loading or validating .dsgl/config.yaml.
func NewConfigError(summary, detail, hint string, cause error) *CompileError {
	return newError(KindConfig, summary, detail, hint, cause)
}

// NewInternalError reports an error the driver did not anticipate.
func NewInternalError(summary, detail, hint string, cause error) *CompileError {
	return newError(KindInternal, summary, detail, hint, cause)
}

// jsonError is the wire shape FatalError prints when json is true.
type jsonError struct {
	Kind    Kind   `json:"kind"`
	Summary string `json:"summary"`
	Detail  string `json:"detail,omitempty"`
	Hint    string `json:"hint,omitempty"`
	Line    int    `json:"line,omitempty"`
	Col     int    `json:"col,omitempty"`
}

// FatalError prints err to stderr — as a one-line human diagnostic followed
// by a hint line when the error carries a hint, or as a JSON object when
// json is true — and exits the process with a non-zero status.
func FatalError(err error, json_ bool) {
	ce, ok := err.(*CompileError)
	if !ok {
		ce = NewInternalError(err.Error(), "", "", err)
	}

	if json_ {
		je := jsonError{Kind: ce.Kind, Summary: ce.Summary, Detail: ce.Detail, Hint: ce.Hint}
		if ce.Location != nil {
			je.Line = ce.Location.Line
			je.Col = ce.Location.Col
		}
		enc := json.NewEncoder(os.Stderr)
		_ = enc.Encode(je)
	} else {
		if ce.Location != nil {
			fmt.Fprintf(os.Stderr, "error: %s:%d:%d: %s\n", ce.Kind, ce.Location.Line, ce.Location.Col, ce.Error())
		} else {
			fmt.Fprintf(os.Stderr, "error: %s: %s\n", ce.Kind, ce.Error())
		}
		if ce.Hint != "" {
			fmt.Fprintf(os.Stderr, "  hint: %s\n", ce.Hint)
		}
	}
	os.Exit(1)
}
