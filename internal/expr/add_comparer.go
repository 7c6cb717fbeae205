// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package expr

import (
	"fmt"

	"github.com/jsonrules/ruleengine/internal/lattice"
	"github.com/jsonrules/ruleengine/internal/registry"
	"github.com/jsonrules/ruleengine/internal/valuesource"
	"github.com/jsonrules/ruleengine/pkg/errutil"
)

func undeclaredComparerError(key string) error {
	return errutil.NewRuleCreationError("cannot add comparer", []string{"unregistered comparer key: " + key})
}

// AddComparer builds a ComparerCall against reg's registered comparer
// key and appends it to c's members. collation is
// optional; a zero value means "search the declared collations".
func AddComparer(c *Container, reg *registry.Registry, key string, left *valuesource.Attribute, right valuesource.ValueSource, collation *registry.CollationPair, args ...valuesource.ValueSource) error {
	def, ok := reg.Comparer(key)
	if !ok {
		return undeclaredComparerError(key)
	}

	var detail []string

	if !classAllowed(def.ValueClasses, right.Kind()) {
		detail = append(detail, fmt.Sprintf("right operand (%s) is not an allowed value class", right.Kind()))
	}

	leftType, err := left.GetType(reg)
	if err != nil {
		detail = append(detail, "left: "+err.Error())
	}
	rightType, err := right.GetType(reg)
	if err != nil {
		detail = append(detail, "right: "+err.Error())
	}

	selected, selErr := selectCollation(def.CollationTypes, collation, leftType, rightType)
	if selErr != nil {
		detail = append(detail, selErr.Error())
	}

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
		return errutil.NewRuleCreationError("cannot add comparer "+key, detail)
	}

	c.AddMember(&ComparerCall{
		ComparerKey:       key,
		Left:              left,
		Right:             right,
		SelectedCollation: selected,
		Args:              args,
	})
	return nil
}

// selectCollation picks the collation a comparer call runs under: an
// explicit collation must be declared and must accept left/right's
// types; otherwise prefer an exact (left.type, right.type) match, else
// the first declared pair whose sides accept left/right's types.
func selectCollation(declared []registry.CollationPair, explicit *registry.CollationPair, leftType, rightType lattice.Type) (registry.CollationPair, error) {
	if explicit != nil {
		for _, d := range declared {
			if d == *explicit {
				if lattice.Accepts(d.Left, leftType) && lattice.Accepts(d.Right, rightType) {
					return d, nil
				}
				return registry.CollationPair{}, fmt.Errorf("explicit collation (%s,%s) does not accept operand types (%s,%s)", d.Left, d.Right, leftType, rightType)
			}
		}
		return registry.CollationPair{}, fmt.Errorf("explicit collation (%s,%s) is not declared by the comparer", explicit.Left, explicit.Right)
	}

	for _, d := range declared {
		if d.Left == leftType && d.Right == rightType {
			return d, nil
		}
	}
	for _, d := range declared {
		if lattice.Accepts(d.Left, leftType) && lattice.Accepts(d.Right, rightType) {
			return d, nil
		}
	}
	return registry.CollationPair{}, fmt.Errorf("no declared collation accepts operand types (%s,%s)", leftType, rightType)
}

func classAllowed(classes []string, kind string) bool {
	for _, c := range classes {
		if c == kind {
			return true
		}
	}
	return false
}
