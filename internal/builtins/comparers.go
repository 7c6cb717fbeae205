// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package builtins

import (
	"strings"

	"github.com/jsonrules/ruleengine/internal/lattice"
	"github.com/jsonrules/ruleengine/internal/registry"
)

func registerComparers(r *registry.Registry) {
	must(r.RegisterComparer("Equals", "Checks whether two values are equal.", "equals",
		[]registry.CollationPair{
			{Left: lattice.Boolean, Right: lattice.Boolean},
			{Left: lattice.String, Right: lattice.String},
			{Left: lattice.Numeric, Right: lattice.Numeric},
			{Left: lattice.DateTime, Right: lattice.DateTime},
		}, nil, equals, nil, true))

	must(r.RegisterComparer("Includes", "Checks whether the first operand's list includes the second.", "includes",
		[]registry.CollationPair{
			{Left: lattice.StringList, Right: lattice.String},
			{Left: lattice.NumericList, Right: lattice.Numeric},
			{Left: lattice.DateTimeList, Right: lattice.DateTime},
		}, nil, includes, nil, true))

	must(r.RegisterComparer("String Includes - Ignore Case", "Checks whether the first operand contains the second, ignoring case.", "string_includes_ignorecase",
		[]registry.CollationPair{
			{Left: lattice.String, Right: lattice.String},
		}, nil, stringIncludesIgnoreCase, nil, true))
}

func equals(left, right any, args []any) (bool, error) {
	if left == nil || right == nil {
		return false, nil
	}
	return left == right, nil
}

func includes(left, right any, args []any) (bool, error) {
	if left == nil || right == nil {
		return false, nil
	}
	items, ok := left.([]any)
	if !ok {
		return false, nil
	}
	for _, item := range items {
		if item == right {
			return true, nil
		}
	}
	return false, nil
}

func stringIncludesIgnoreCase(left, right any, args []any) (bool, error) {
	if left == nil || right == nil {
		return false, nil
	}
	l, lok := left.(string)
	rr, rok := right.(string)
	if !lok || !rok {
		return false, nil
	}
	return strings.Contains(strings.ToLower(l), strings.ToLower(rr)), nil
}
