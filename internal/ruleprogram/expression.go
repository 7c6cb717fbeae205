// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package ruleprogram implements the rule program runner: a
// RuleExpression applies its actions to a row when its root container
// matches, and a RuleProgram runs every expression over a row stream
// before filling unassigned outputs from default mappings.
package ruleprogram

import (
	"github.com/jsonrules/ruleengine/internal/environment"
	"github.com/jsonrules/ruleengine/internal/expr"
	"github.com/jsonrules/ruleengine/internal/lattice"
	"github.com/jsonrules/ruleengine/internal/pathlang"
	"github.com/jsonrules/ruleengine/internal/registry"
)

// RuleExpression pairs a root container with the actions run when it
// matches.
type RuleExpression struct {
	Root    *expr.Container
	Actions []environment.Action
}

// RunOnRow evaluates e's root container against row; if it matches,
// each action is applied in order via the path engine, and the set of
// written paths is returned.
func (e *RuleExpression) RunOnRow(reg *registry.Registry, parsers *lattice.Parsers, row any) (any, map[string]bool, error) {
	matched, err := e.Root.Evaluate(reg, parsers, row)
	if err != nil {
		return row, nil, err
	}
	if !matched {
		return row, map[string]bool{}, nil
	}

	changed := make(map[string]bool, len(e.Actions))
	current := row
	for _, action := range e.Actions {
		value, err := action.Value.GetValue(reg, parsers, current)
		if err != nil {
			return current, changed, err
		}
		current, err = pathlang.Set(current, action.Path, value)
		if err != nil {
			return current, changed, err
		}
		changed[action.Path] = true
	}
	return current, changed, nil
}
