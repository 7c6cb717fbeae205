// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package valuesource implements the value pipeline:
// Constant and Attribute value sources, each with a filter chain that
// propagates a current semantic type through the registry's declared
// manipulation pairs as it runs.
//
// ValueSource is modeled as a small sealed-by-convention interface with
// an unexported marker method, dispatched by a type switch where
// needed, rather than a tagged struct or an exported marker that third
// parties could satisfy.
package valuesource

import (
	"github.com/jsonrules/ruleengine/internal/lattice"
	"github.com/jsonrules/ruleengine/internal/pathlang"
	"github.com/jsonrules/ruleengine/internal/registry"
	"github.com/jsonrules/ruleengine/pkg/errutil"
)

// ValueSource is either a Constant or an Attribute.
type ValueSource interface {
	isValueSource()
	// Kind is the value_classes tag this source satisfies ("Constant"
	// or "Attribute"), used when validating filter/comparer arguments.
	Kind() string
	// GetType reports the type the source's value carries after its
	// filter chain runs.
	GetType(reg *registry.Registry) (lattice.Type, error)
	// GetValue evaluates the source against row.
	GetValue(reg *registry.Registry, parsers *lattice.Parsers, row any) (any, error)
}

// FilterStep is one filter application in a value source's chain
//: a registered filter key plus its arguments, each
// itself a ValueSource evaluated against the same row.
type FilterStep struct {
	Key  string
	Args []ValueSource
}

// Constant holds a value fixed at build time.
type Constant struct {
	Raw          any
	DeclaredType lattice.Type // empty means auto-detected at construction
	Filters      []FilterStep

	value any
	typ   lattice.Type
}

func (*Constant) isValueSource() {}

// Kind implements ValueSource.
func (*Constant) Kind() string { return "Constant" }

// NewConstant parses raw immediately: with an explicit declaredType it
// parses directly; with none, it auto-detects in lattice order.
func NewConstant(raw any, declaredType lattice.Type, parsers *lattice.Parsers) (*Constant, error) {
	c := &Constant{Raw: raw, DeclaredType: declaredType}
	if declaredType == "" {
		v, t, err := parsers.AutoDetect(raw)
		if err != nil {
			return nil, err
		}
		c.value, c.typ = v, t
		return c, nil
	}
	v, err := parsers.Parse(declaredType, raw)
	if err != nil {
		return nil, err
	}
	c.value, c.typ = v, declaredType
	return c, nil
}

// GetType implements ValueSource.
func (c *Constant) GetType(reg *registry.Registry) (lattice.Type, error) {
	return propagateType(reg, c.typ, c.Filters)
}

// GetValue implements ValueSource.
func (c *Constant) GetValue(reg *registry.Registry, parsers *lattice.Parsers, row any) (any, error) {
	return runPipeline(reg, parsers, row, c.value, c.typ, c.Filters)
}

// BaseValue returns the parsed value Constant was built with, before
// any filters run. Exposed for serialization.
func (c *Constant) BaseValue() any { return c.value }

// InputType returns the type Constant was built with (the auto-detected
// type when DeclaredType was empty). Exposed for serialization.
func (c *Constant) InputType() lattice.Type { return c.typ }

// Attribute reads its value from the current row via the path engine.
type Attribute struct {
	Path         string
	DeclaredType lattice.Type
	Filters      []FilterStep
}

func (*Attribute) isValueSource() {}

// Kind implements ValueSource.
func (*Attribute) Kind() string { return "Attribute" }

// NewAttribute builds an Attribute. declaredType must be one of the
// closed lattice types; unlike Constant, an Attribute never
// auto-detects because its value is not known until row evaluation.
func NewAttribute(path string, declaredType lattice.Type) (*Attribute, error) {
	if !lattice.IsValid(declaredType) {
		return nil, errutil.NewAPIError("attribute declared_type must be a valid lattice type")
	}
	return &Attribute{Path: path, DeclaredType: declaredType}, nil
}

// GetType implements ValueSource.
func (a *Attribute) GetType(reg *registry.Registry) (lattice.Type, error) {
	return propagateType(reg, a.DeclaredType, a.Filters)
}

// GetValue implements ValueSource.
func (a *Attribute) GetValue(reg *registry.Registry, parsers *lattice.Parsers, row any) (any, error) {
	raw, err := pathlang.Get(row, a.Path)
	if err != nil {
		return nil, err
	}
	value, err := parsers.Parse(a.DeclaredType, raw)
	if err != nil {
		return nil, err
	}
	return runPipeline(reg, parsers, row, value, a.DeclaredType, a.Filters)
}

// propagateType threads startType through each filter's first matching
// manipulation pair.
func propagateType(reg *registry.Registry, startType lattice.Type, filters []FilterStep) (lattice.Type, error) {
	current := startType
	for _, step := range filters {
		def, ok := reg.Filter(step.Key)
		if !ok {
			return "", errutil.NewRunnerError("unregistered filter: " + step.Key)
		}
		pair, ok := firstMatchingPair(def.ManipulationTypes, current)
		if !ok {
			return "", errutil.NewRunnerError("no implicit conversion into filter " + step.Key + " from " + string(current))
		}
		current = pair.Out
	}
	return current, nil
}

// runPipeline evaluates the filter chain against an already-parsed
// starting value/type.
func runPipeline(reg *registry.Registry, parsers *lattice.Parsers, row any, value any, typ lattice.Type, filters []FilterStep) (any, error) {
	current, currentType := value, typ
	for _, step := range filters {
		def, ok := reg.Filter(step.Key)
		if !ok {
			return nil, errutil.NewRunnerError("unregistered filter: " + step.Key)
		}
		pair, ok := firstMatchingPair(def.ManipulationTypes, currentType)
		if !ok {
			return nil, errutil.NewRunnerError("no implicit conversion into filter " + step.Key + " from " + string(currentType))
		}
		converted, err := parsers.ImplicitParse(current, currentType, pair.In)
		if err != nil {
			return nil, err
		}
		args := make([]any, len(step.Args))
		for i, src := range step.Args {
			args[i], err = src.GetValue(reg, parsers, row)
			if err != nil {
				return nil, err
			}
		}
		result, err := reg.InvokeFilter(def, converted, args)
		if err != nil {
			return nil, err
		}
		current, currentType = result, pair.Out
	}
	return current, nil
}

func firstMatchingPair(pairs []registry.ManipulationPair, actual lattice.Type) (registry.ManipulationPair, bool) {
	for _, p := range pairs {
		if lattice.Accepts(p.In, actual) {
			return p, true
		}
	}
	return registry.ManipulationPair{}, false
}
