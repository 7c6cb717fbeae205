// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package expr implements the expression tree:
// AndContainer/OrContainer conjunction/disjunction over ComparerCall
// leaves and nested containers, with comparer collation selection.
package expr

import (
	"github.com/jsonrules/ruleengine/internal/lattice"
	"github.com/jsonrules/ruleengine/internal/registry"
	"github.com/jsonrules/ruleengine/internal/valuesource"
)

// Member is either a Container or a ComparerCall.
type Member interface {
	isMember()
	Evaluate(reg *registry.Registry, parsers *lattice.Parsers, row any) (bool, error)
}

// Container is an AndContainer or OrContainer.
type Container struct {
	Members []Member
	Negated bool
	or      bool // false = AND, true = OR
}

func (*Container) isMember() {}

// NewAndContainer builds an empty conjunction.
func NewAndContainer(negated bool) *Container {
	return &Container{Negated: negated}
}

// NewOrContainer builds an empty disjunction.
func NewOrContainer(negated bool) *Container {
	return &Container{Negated: negated, or: true}
}

// IsOr reports whether this container is a disjunction.
func (c *Container) IsOr() bool { return c.or }

// AddMember appends a child container or comparer call.
func (c *Container) AddMember(m Member) {
	c.Members = append(c.Members, m)
}

// Evaluate implements Member: empty AND is true,
// empty OR is false; Negated flips the result.
func (c *Container) Evaluate(reg *registry.Registry, parsers *lattice.Parsers, row any) (bool, error) {
	var result bool
	if c.or {
		result = false
		for _, m := range c.Members {
			v, err := m.Evaluate(reg, parsers, row)
			if err != nil {
				return false, err
			}
			if v {
				result = true
				break
			}
		}
	} else {
		result = true
		for _, m := range c.Members {
			v, err := m.Evaluate(reg, parsers, row)
			if err != nil {
				return false, err
			}
			if !v {
				result = false
				break
			}
		}
	}
	if c.Negated {
		result = !result
	}
	return result, nil
}

// ComparerCall is the leaf node of an expression.
type ComparerCall struct {
	ComparerKey      string
	Left             *valuesource.Attribute
	Right            valuesource.ValueSource
	SelectedCollation registry.CollationPair
	Args             []valuesource.ValueSource
}

func (*ComparerCall) isMember() {}

// Evaluate implements Member.
func (cc *ComparerCall) Evaluate(reg *registry.Registry, parsers *lattice.Parsers, row any) (bool, error) {
	def, ok := reg.Comparer(cc.ComparerKey)
	if !ok {
		return false, undeclaredComparerError(cc.ComparerKey)
	}

	leftRaw, err := cc.Left.GetValue(reg, parsers, row)
	if err != nil {
		return false, err
	}
	leftType, err := cc.Left.GetType(reg)
	if err != nil {
		return false, err
	}
	left, err := parsers.ImplicitParse(leftRaw, leftType, cc.SelectedCollation.Left)
	if err != nil {
		return false, err
	}

	rightRaw, err := cc.Right.GetValue(reg, parsers, row)
	if err != nil {
		return false, err
	}
	rightType, err := cc.Right.GetType(reg)
	if err != nil {
		return false, err
	}
	right, err := parsers.ImplicitParse(rightRaw, rightType, cc.SelectedCollation.Right)
	if err != nil {
		return false, err
	}

	args := make([]any, len(cc.Args))
	for i, a := range cc.Args {
		argType, err := a.GetType(reg)
		if err != nil {
			return false, err
		}
		argValue, err := a.GetValue(reg, parsers, row)
		if err != nil {
			return false, err
		}
		paramType := def.Params[i].Type
		if argType != paramType {
			argValue, err = parsers.ImplicitParse(argValue, argType, paramType)
			if err != nil {
				return false, err
			}
		}
		args[i] = argValue
	}

	return reg.InvokeComparer(def, left, right, args)
}
