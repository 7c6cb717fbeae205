// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package valuesource

import (
	"fmt"

	"github.com/jsonrules/ruleengine/internal/lattice"
	"github.com/jsonrules/ruleengine/internal/registry"
	"github.com/jsonrules/ruleengine/pkg/errutil"
)

// AddFilter validates a filter application against reg and, if every
// argument checks out, appends it to src's filter chain. All
// violations found are accumulated and reported together as a single
// RuleCreationError.
func AddFilter(src ValueSource, reg *registry.Registry, key string, args ...ValueSource) error {
	def, ok := reg.Filter(key)
	if !ok {
		return errutil.NewRuleCreationError("cannot add filter", []string{"unregistered filter key: " + key})
	}

	var detail []string
	if len(args) != len(def.Params) {
		detail = append(detail, fmt.Sprintf("expected %d argument(s), got %d", len(def.Params), len(args)))
	}

	n := len(args)
	if len(def.Params) < n {
		n = len(def.Params)
	}
	for i := 0; i < n; i++ {
		arg, param := args[i], def.Params[i]
		if !classAllowed(param.ValueClasses, arg.Kind()) {
			detail = append(detail, fmt.Sprintf("argument %d (%s) is not an allowed value class for param %q", i, arg.Kind(), param.PrettyName))
			continue
		}
		argType, err := arg.GetType(reg)
		if err != nil {
			detail = append(detail, fmt.Sprintf("argument %d: %v", i, err))
			continue
		}
		if !lattice.Accepts(param.Type, argType) {
			detail = append(detail, fmt.Sprintf("argument %d has type %s, not allowed for param %q (%s)", i, argType, param.PrettyName, param.Type))
		}
	}

	if len(detail) > 0 {
		return errutil.NewRuleCreationError("cannot add filter "+key, detail)
	}

	step := FilterStep{Key: key, Args: args}
	switch v := src.(type) {
	case *Constant:
		v.Filters = append(v.Filters, step)
	case *Attribute:
		v.Filters = append(v.Filters, step)
	default:
		return errutil.NewAPIError("unknown ValueSource implementation")
	}
	return nil
}

// AddableFilters enumerates the filters in reg whose manipulation types
// accept curType, i.e. the filters that may legally extend a value
// source currently carrying curType.
func AddableFilters(reg *registry.Registry, curType lattice.Type) []*registry.FilterDef {
	var out []*registry.FilterDef
	for _, def := range reg.Filters() {
		if _, ok := firstMatchingPair(def.ManipulationTypes, curType); ok {
			out = append(out, def)
		}
	}
	return out
}

func classAllowed(classes []string, kind string) bool {
	for _, c := range classes {
		if c == kind {
			return true
		}
	}
	return false
}
