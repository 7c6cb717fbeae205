// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package builtins is the default filter/comparer provider: the
// concrete builtin set every program can rely on without registering
// its own provider.
package builtins

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jsonrules/ruleengine/internal/lattice"
	"github.com/jsonrules/ruleengine/internal/pathlang"
	"github.com/jsonrules/ruleengine/internal/registry"
)

// Default builds a Registry with every builtin filter and comparer
// registered. Named here rather than in package registry to avoid an
// import cycle (registry cannot import builtins, since builtins must
// import registry for its types).
func Default() *registry.Registry {
	r := registry.New()
	registerFilters(r)
	registerComparers(r)
	return r
}

func dotSpecifierParam() registry.ParamSpec {
	return registry.ParamSpec{
		PrettyName:   "Dot specifier",
		Description:  "Dot specifier of which value will be extracted.",
		Type:         lattice.String,
		ValueClasses: []string{"Constant"},
	}
}

func valueParam(description string) registry.ParamSpec {
	return registry.ParamSpec{
		PrettyName:   "Value",
		Description:  description,
		Type:         lattice.String,
		ValueClasses: []string{"Constant"},
	}
}

func registerFilters(r *registry.Registry) {
	must(r.RegisterFilter("String to Numeric", "Convert string to numeric data.", "string_to_numeric",
		[]registry.ManipulationPair{{In: lattice.String, Out: lattice.Numeric}}, nil, stringToNumeric, true))

	must(r.RegisterFilter("Numeric to String", "Convert numeric to string data.", "numeric_to_string",
		[]registry.ManipulationPair{{In: lattice.Numeric, Out: lattice.String}}, nil, numericToString, true))

	must(r.RegisterFilter("UTC Epoch to DateTime", "Convert unix UTC epoch to DateTime.", "unixepoch_to_datetime",
		[]registry.ManipulationPair{{In: lattice.Numeric, Out: lattice.DateTime}}, nil, unixEpochToDateTime, true))

	must(r.RegisterFilter(
		"Filter by Subvalue(Include) - Ignore case",
		"Filters values of a dictionary list by dot-specified value; first match is returned.",
		"filter_by_subvalue_include",
		[]registry.ManipulationPair{{In: lattice.DictList, Out: lattice.Dict}},
		[]registry.ParamSpec{dotSpecifierParam(), valueParam("Constant which will be tested whether in extracted value.")},
		filterBySubvalueInclude, true))

	must(r.RegisterFilter(
		"Multiple Filter by Subvalue(Include) - Ignore case",
		"Filters values of a dictionary list by dot-specified value; every match is returned.",
		"multiple_filter_by_subvalue_include",
		[]registry.ManipulationPair{{In: lattice.DictList, Out: lattice.DictList}},
		[]registry.ParamSpec{dotSpecifierParam(), valueParam("Constant which will be tested whether in extracted value.")},
		multipleFilterBySubvalueInclude, true))

	must(r.RegisterFilter(
		"Filter by Subvalue(Exact) - Ignore case",
		"Filters values of a dictionary list by dot-specified value; first exact match is returned.",
		"filter_by_subvalue",
		[]registry.ManipulationPair{{In: lattice.DictList, Out: lattice.Dict}},
		[]registry.ParamSpec{dotSpecifierParam(), valueParam("Constant which will be tested whether equal to extracted value.")},
		filterBySubvalue, true))

	must(r.RegisterFilter(
		"Multiple Filter by Subvalue(Exact) - Ignore case",
		"Filters values of a dictionary list by dot-specified value; every exact match is returned.",
		"multiple_filter_by_subvalue",
		[]registry.ManipulationPair{{In: lattice.DictList, Out: lattice.DictList}},
		[]registry.ParamSpec{dotSpecifierParam(), valueParam("Constant which will be tested whether equal to extracted value.")},
		multipleFilterBySubvalue, true))

	must(r.RegisterFilter(
		"Extract with Dot Specifier to String",
		"Extract string value from a single dictionary object.",
		"extract_with_dot_specifier_to_string",
		[]registry.ManipulationPair{{In: lattice.Dict, Out: lattice.String}},
		[]registry.ParamSpec{dotSpecifierParam()},
		extractWithDotSpecifierToString, true))

	must(r.RegisterFilter(
		"Extract with Dot Specifier to Numeric",
		"Extract numeric value from a single dictionary object.",
		"extract_with_dot_specifier_to_numeric",
		[]registry.ManipulationPair{{In: lattice.Dict, Out: lattice.Numeric}},
		[]registry.ParamSpec{dotSpecifierParam()},
		extractWithDotSpecifierToNumeric, true))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func stringToNumeric(value any, args []any) (any, error) {
	if value == nil {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprint(value)), 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func numericToString(value any, args []any) (any, error) {
	if value == nil {
		return nil, nil
	}
	return strconv.FormatFloat(value.(float64), 'g', -1, 64), nil
}

func unixEpochToDateTime(value any, args []any) (any, error) {
	if value == nil {
		return nil, nil
	}
	return time.Unix(int64(value.(float64)), 0).UTC(), nil
}

func dotExtractString(row any, dotSpecifier string) (string, bool) {
	v, err := pathlang.Get(row, dotSpecifier)
	if err != nil || v == nil {
		return "", false
	}
	return fmt.Sprint(v), true
}

func filterBySubvalueInclude(value any, args []any) (any, error) {
	return firstSubvalueMatch(value, args, false)
}

func multipleFilterBySubvalueInclude(value any, args []any) (any, error) {
	return allSubvalueMatches(value, args, false)
}

func filterBySubvalue(value any, args []any) (any, error) {
	return firstSubvalueMatch(value, args, true)
}

func multipleFilterBySubvalue(value any, args []any) (any, error) {
	return allSubvalueMatches(value, args, true)
}

func firstSubvalueMatch(value any, args []any, exact bool) (any, error) {
	if value == nil {
		return nil, nil
	}
	rows, _ := value.([]any)
	dotSpecifier := fmt.Sprint(args[0])
	target := strings.ToLower(fmt.Sprint(args[1]))
	for _, row := range rows {
		extracted, ok := dotExtractString(row, dotSpecifier)
		if !ok {
			continue
		}
		if subvalueMatches(strings.ToLower(extracted), target, exact) {
			return row, nil
		}
	}
	return nil, nil
}

func allSubvalueMatches(value any, args []any, exact bool) (any, error) {
	if value == nil {
		return nil, nil
	}
	rows, _ := value.([]any)
	dotSpecifier := fmt.Sprint(args[0])
	target := strings.ToLower(fmt.Sprint(args[1]))
	result := make([]any, 0)
	for _, row := range rows {
		extracted, ok := dotExtractString(row, dotSpecifier)
		if !ok {
			continue
		}
		if subvalueMatches(strings.ToLower(extracted), target, exact) {
			result = append(result, row)
		}
	}
	return result, nil
}

func subvalueMatches(extracted, target string, exact bool) bool {
	if exact {
		return extracted == target
	}
	return strings.Contains(extracted, target)
}

func extractWithDotSpecifierToString(value any, args []any) (any, error) {
	if value == nil {
		return nil, nil
	}
	dotSpecifier := fmt.Sprint(args[0])
	v, err := pathlang.Get(value, dotSpecifier)
	if err != nil || v == nil {
		return nil, nil
	}
	return fmt.Sprint(v), nil
}

func extractWithDotSpecifierToNumeric(value any, args []any) (any, error) {
	if value == nil {
		return nil, nil
	}
	dotSpecifier := fmt.Sprint(args[0])
	v, err := pathlang.Get(value, dotSpecifier)
	if err != nil || v == nil {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprint(v)), 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}
