// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package environment

import (
	"fmt"

	"github.com/jsonrules/ruleengine/internal/expr"
	"github.com/jsonrules/ruleengine/internal/registry"
	"github.com/jsonrules/ruleengine/internal/valuesource"
	"github.com/jsonrules/ruleengine/pkg/errutil"
)

// ValidateValueSource recursively validates a Constant or Attribute
// against env and reg: a Constant validates every
// filter argument; an Attribute's declared path must match at least
// one INPUT JsonPath.
func ValidateValueSource(env *Environment, reg *registry.Registry, vs valuesource.ValueSource) []string {
	switch v := vs.(type) {
	case *valuesource.Constant:
		var detail []string
		for _, step := range v.Filters {
			for _, arg := range step.Args {
				detail = append(detail, ValidateValueSource(env, reg, arg)...)
			}
		}
		return detail
	case *valuesource.Attribute:
		matches := env.Query(ByPath(v.Path), ByDirection(DirectionIn))
		var detail []string
		if len(matches) == 0 {
			detail = append(detail, fmt.Sprintf("attribute path %q has no matching input json path", v.Path))
		}
		for _, step := range v.Filters {
			for _, arg := range step.Args {
				detail = append(detail, ValidateValueSource(env, reg, arg)...)
			}
		}
		return detail
	default:
		return []string{"unknown value source implementation"}
	}
}

// ValidateMember recursively validates a Container or ComparerCall
//: a Container validates if every child validates;
// a ComparerCall validates if its left, right, and args all validate.
func ValidateMember(env *Environment, reg *registry.Registry, m expr.Member) []string {
	switch v := m.(type) {
	case *expr.Container:
		var detail []string
		for _, child := range v.Members {
			detail = append(detail, ValidateMember(env, reg, child)...)
		}
		return detail
	case *expr.ComparerCall:
		var detail []string
		detail = append(detail, ValidateValueSource(env, reg, v.Left)...)
		detail = append(detail, ValidateValueSource(env, reg, v.Right)...)
		for _, arg := range v.Args {
			detail = append(detail, ValidateValueSource(env, reg, arg)...)
		}
		return detail
	default:
		return []string{"unknown expression member implementation"}
	}
}

// Action is a single write performed when a rule expression's root
// container evaluates true: path plus the value
// source computing what to write there.
type Action struct {
	Path  string
	Value valuesource.ValueSource
}

// ValidateAction checks that an action's path has at least one
// matching non-read-only OUTPUT json path, and that its value
// validates.
func ValidateAction(env *Environment, reg *registry.Registry, a Action) []string {
	var detail []string
	matches := env.Query(ByPath(a.Path), WritableOutput())
	if len(matches) == 0 {
		detail = append(detail, fmt.Sprintf("action path %q has no matching writable output json path", a.Path))
	}
	detail = append(detail, ValidateValueSource(env, reg, a.Value)...)
	return detail
}

// Validate runs the recursive static validation over a root container
// and its expression's actions, returning ok=true with a nil error iff
// every reference resolves and every action targets a writable output.
func Validate(env *Environment, reg *registry.Registry, root *expr.Container, actions []Action) (bool, error) {
	var detail []string
	detail = append(detail, ValidateMember(env, reg, root)...)
	for _, a := range actions {
		detail = append(detail, ValidateAction(env, reg, a)...)
	}
	if len(detail) > 0 {
		return false, errutil.NewValidationError(joinDetail("rule expression failed validation", detail))
	}
	return true, nil
}

func joinDetail(summary string, detail []string) string {
	msg := summary
	for _, d := range detail {
		msg += "; " + d
	}
	return msg
}
