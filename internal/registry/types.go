// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package registry holds the filter and comparer definitions the rest
// of the engine evaluates against. A Registry is a plain value, never
// a package-level singleton: construct one with New, register
// definitions, optionally Freeze it, and pass the *Registry explicitly
// into every builder and evaluator.
package registry

import "github.com/jsonrules/ruleengine/internal/lattice"

// ParamSpec describes one extra argument a filter or comparer accepts
// beyond its fixed operand(s).
type ParamSpec struct {
	PrettyName   string
	Description  string
	Type         lattice.Type
	ValueClasses []string
	MetaOptions  map[string]any
}

// ManipulationPair is one (input type -> output type) entry in a
// filter's manipulation_types.
type ManipulationPair struct {
	In  lattice.Type
	Out lattice.Type
}

// CollationPair is one (left type, right type) entry in a comparer's
// collation_types.
type CollationPair struct {
	Left  lattice.Type
	Right lattice.Type
}

// FilterMethod transforms value — already implicitly converted to the
// chosen manipulation pair's input type — using the given filter
// arguments (already evaluated to Go values by the caller).
type FilterMethod func(value any, args []any) (any, error)

// ComparerMethod evaluates left and right — already implicitly
// converted to the chosen collation's types — using the given comparer
// arguments.
type ComparerMethod func(left, right any, args []any) (bool, error)

// FilterDef is a registered filter.
type FilterDef struct {
	Key               string
	PrettyName        string
	Description       string
	ManipulationTypes []ManipulationPair
	Params            []ParamSpec
	Method            FilterMethod
	Builtin           bool
}

// ComparerDef is a registered comparer.
type ComparerDef struct {
	Key            string
	PrettyName     string
	Description    string
	CollationTypes []CollationPair
	Params         []ParamSpec
	Method         ComparerMethod
	ValueClasses   []string
	Builtin        bool
}

// defaultValueClasses is the comparer value_classes default when a
// comparer is registered without an explicit list.
var defaultValueClasses = []string{"Constant", "Attribute"}
