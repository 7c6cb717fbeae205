// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsonrules/ruleengine/internal/expr"
	"github.com/jsonrules/ruleengine/internal/lattice"
	"github.com/jsonrules/ruleengine/internal/registry"
	"github.com/jsonrules/ruleengine/internal/valuesource"
)

func newEnv(t *testing.T) *Environment {
	t.Helper()
	env := New()
	amount, err := NewJsonPath("amount", DirectionIn, lattice.Numeric, "Amount", "", false, 0)
	require.NoError(t, err)
	out, err := NewJsonPath("result", DirectionOut, lattice.String, "Result", "", false, 0)
	require.NoError(t, err)
	env.AddAttribute(amount)
	env.AddAttribute(out)
	return env
}

func TestQueryFiltersByDirection(t *testing.T) {
	env := newEnv(t)
	ins := env.Query(ByDirection(DirectionIn))
	require.Len(t, ins, 1)
	assert.Equal(t, "amount", ins[0].Path)
}

func TestQueryWildcardReturnsAll(t *testing.T) {
	env := newEnv(t)
	assert.Len(t, env.Query(), 2)
}

func TestValidateAttributeRequiresMatchingInputPath(t *testing.T) {
	env := newEnv(t)
	reg := registry.New()

	ok, err := NewJsonPath("amount", DirectionIn, lattice.Numeric, "", "", false, 0)
	require.NoError(t, err)
	_ = ok

	known, err := valuesource.NewAttribute("amount", lattice.Numeric)
	require.NoError(t, err)
	assert.Empty(t, ValidateValueSource(env, reg, known))

	unknown, err := valuesource.NewAttribute("missing", lattice.Numeric)
	require.NoError(t, err)
	assert.NotEmpty(t, ValidateValueSource(env, reg, unknown))
}

func TestValidateActionRequiresWritableOutputPath(t *testing.T) {
	env := newEnv(t)
	parsers := lattice.New("")
	c, err := valuesource.NewConstant("hi", lattice.String, parsers)
	require.NoError(t, err)

	good := Action{Path: "result", Value: c}
	assert.Empty(t, ValidateAction(env, registry.New(), good))

	bad := Action{Path: "nonexistent", Value: c}
	assert.NotEmpty(t, ValidateAction(env, registry.New(), bad))
}

func TestValidateRootContainerAndActions(t *testing.T) {
	env := newEnv(t)
	reg := registry.New()
	require.NoError(t, reg.RegisterComparer("equals", "equality", "equals", []registry.CollationPair{
		{Left: lattice.Numeric, Right: lattice.Numeric},
	}, nil, func(l, r any, args []any) (bool, error) { return l == r, nil }, nil, true))

	parsers := lattice.New("")
	left, err := valuesource.NewAttribute("amount", lattice.Numeric)
	require.NoError(t, err)
	right, err := valuesource.NewConstant(float64(5), lattice.Numeric, parsers)
	require.NoError(t, err)

	root := expr.NewAndContainer(false)
	require.NoError(t, expr.AddComparer(root, reg, "equals", left, right, nil))

	actionValue, err := valuesource.NewConstant("matched", lattice.String, parsers)
	require.NoError(t, err)

	ok, err := Validate(env, reg, root, []Action{{Path: "result", Value: actionValue}})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateFailsWhenActionPathUnknown(t *testing.T) {
	env := newEnv(t)
	reg := registry.New()
	parsers := lattice.New("")
	actionValue, err := valuesource.NewConstant("x", lattice.String, parsers)
	require.NoError(t, err)

	root := expr.NewAndContainer(false)
	ok, err := Validate(env, reg, root, []Action{{Path: "nope", Value: actionValue}})
	assert.False(t, ok)
	assert.Error(t, err)
}
