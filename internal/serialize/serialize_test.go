// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package serialize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsonrules/ruleengine/internal/environment"
	"github.com/jsonrules/ruleengine/internal/expr"
	"github.com/jsonrules/ruleengine/internal/lattice"
	"github.com/jsonrules/ruleengine/internal/registry"
	"github.com/jsonrules/ruleengine/internal/ruleprogram"
	"github.com/jsonrules/ruleengine/internal/valuesource"
)

func newEqualsRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	require.NoError(t, r.RegisterComparer("equals", "equality", "equals", []registry.CollationPair{
		{Left: lattice.Numeric, Right: lattice.Numeric},
		{Left: lattice.String, Right: lattice.String},
	}, nil, func(l, rr any, args []any) (bool, error) { return l == rr, nil }, nil, true))
	return r
}

func marshalEnvelope(t *testing.T, d map[string]any) []byte {
	t.Helper()
	b, err := json.Marshal(d)
	require.NoError(t, err)
	return b
}

func TestConstantRoundTrip(t *testing.T) {
	reg := newEqualsRegistry(t)
	parsers := lattice.New("")
	c, err := valuesource.NewConstant(float64(42), lattice.Numeric, parsers)
	require.NoError(t, err)

	d, err := ConstantToDict(c)
	require.NoError(t, err)

	vs, err := ValueSourceFromDict(reg, parsers, marshalEnvelope(t, d))
	require.NoError(t, err)
	rehydrated, ok := vs.(*valuesource.Constant)
	require.True(t, ok)

	typ, err := rehydrated.GetType(reg)
	require.NoError(t, err)
	assert.Equal(t, lattice.Numeric, typ)

	val, err := rehydrated.GetValue(reg, parsers, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(42), val)
}

func TestAttributeRoundTrip(t *testing.T) {
	reg := newEqualsRegistry(t)
	parsers := lattice.New("")
	a, err := valuesource.NewAttribute("amount", lattice.Numeric)
	require.NoError(t, err)

	d, err := AttributeToDict(a)
	require.NoError(t, err)

	vs, err := ValueSourceFromDict(reg, parsers, marshalEnvelope(t, d))
	require.NoError(t, err)
	rehydrated, ok := vs.(*valuesource.Attribute)
	require.True(t, ok)

	val, err := rehydrated.GetValue(reg, parsers, map[string]any{"amount": float64(7)})
	require.NoError(t, err)
	assert.Equal(t, float64(7), val)
}

func TestContainerRoundTripWithNestedSubContainer(t *testing.T) {
	reg := newEqualsRegistry(t)
	parsers := lattice.New("")

	left, err := valuesource.NewAttribute("amount", lattice.Numeric)
	require.NoError(t, err)
	right, err := valuesource.NewConstant(float64(100), lattice.Numeric, parsers)
	require.NoError(t, err)

	inner := expr.NewOrContainer(false)
	require.NoError(t, expr.AddComparer(inner, reg, "equals", left, right, nil))

	outer := expr.NewAndContainer(false)
	outer.AddMember(inner)

	d, err := ContainerToDict(outer)
	require.NoError(t, err)

	rehydrated, err := ContainerFromDict(reg, parsers, marshalEnvelope(t, d))
	require.NoError(t, err)
	assert.False(t, rehydrated.IsOr())
	require.Len(t, rehydrated.Members, 1)

	result, err := rehydrated.Evaluate(reg, parsers, map[string]any{"amount": float64(100)})
	require.NoError(t, err)
	assert.True(t, result)

	result, err = rehydrated.Evaluate(reg, parsers, map[string]any{"amount": float64(1)})
	require.NoError(t, err)
	assert.False(t, result)
}

func TestContainerFromDictRejectsUnknownComparer(t *testing.T) {
	reg := newEqualsRegistry(t)
	parsers := lattice.New("")

	left, err := valuesource.NewAttribute("amount", lattice.Numeric)
	require.NoError(t, err)
	right, err := valuesource.NewConstant(float64(100), lattice.Numeric, parsers)
	require.NoError(t, err)

	c := expr.NewAndContainer(false)
	require.NoError(t, expr.AddComparer(c, reg, "equals", left, right, nil))
	d, err := ContainerToDict(c)
	require.NoError(t, err)

	goneReg := registry.New()
	_, err = ContainerFromDict(goneReg, parsers, marshalEnvelope(t, d))
	assert.Error(t, err)
}

func TestEnvironmentRoundTrip(t *testing.T) {
	env := environment.New()
	amount, err := environment.NewJsonPath("amount", environment.DirectionIn, lattice.Numeric, "Amount", "", false, 0)
	require.NoError(t, err)
	tier, err := environment.NewJsonPath("tier", environment.DirectionOut, lattice.String, "Tier", "", false, 0)
	require.NoError(t, err)
	env.AddAttribute(amount)
	env.AddAttribute(tier)
	env.AddDefaultMapping(environment.DefaultMapping{InputPath: "amount", OutputPath: "tier"})

	d := EnvironmentToDict(env)
	rehydrated, err := EnvironmentFromDict(marshalEnvelope(t, d))
	require.NoError(t, err)

	require.Len(t, rehydrated.Attributes, 2)
	require.Len(t, rehydrated.DefaultMappings, 1)
	assert.Equal(t, "amount", rehydrated.DefaultMappings[0].InputPath)
	assert.Equal(t, "tier", rehydrated.DefaultMappings[0].OutputPath)
}

func TestEnvironmentFromDictRejectsOutOfRangeMappingIndex(t *testing.T) {
	bad := map[string]any{
		"key": TagEnvironment,
		"obj": map[string]any{
			"attributes":       []any{},
			"default_mappings": []any{[]any{0, 1}},
		},
	}
	_, err := EnvironmentFromDict(marshalEnvelope(t, bad))
	assert.Error(t, err)
}

func TestRuleProgramRoundTrip(t *testing.T) {
	reg := newEqualsRegistry(t)
	parsers := lattice.New("")

	left, err := valuesource.NewAttribute("amount", lattice.Numeric)
	require.NoError(t, err)
	right, err := valuesource.NewConstant(float64(100), lattice.Numeric, parsers)
	require.NoError(t, err)

	root := expr.NewAndContainer(false)
	require.NoError(t, expr.AddComparer(root, reg, "equals", left, right, nil))

	tierValue, err := valuesource.NewConstant("gold", lattice.String, parsers)
	require.NoError(t, err)

	re := &ruleprogram.RuleExpression{
		Root:    root,
		Actions: []environment.Action{{Path: "tier", Value: tierValue}},
	}
	program := &ruleprogram.RuleProgram{Expressions: []*ruleprogram.RuleExpression{re}}

	d, err := RuleProgramToDict(program)
	require.NoError(t, err)

	rehydrated, err := RuleProgramFromDict(reg, parsers, marshalEnvelope(t, d))
	require.NoError(t, err)
	require.Len(t, rehydrated.Expressions, 1)

	row, changed, err := rehydrated.Expressions[0].RunOnRow(reg, parsers, map[string]any{"amount": float64(100)})
	require.NoError(t, err)
	assert.True(t, changed["tier"])
	assert.Equal(t, "gold", row.(map[string]any)["tier"])
}

func TestValueSourceFromDictRejectsUnknownTag(t *testing.T) {
	reg := newEqualsRegistry(t)
	parsers := lattice.New("")
	bad := map[string]any{"key": "NotAThing", "obj": map[string]any{}}
	_, err := ValueSourceFromDict(reg, parsers, marshalEnvelope(t, bad))
	assert.Error(t, err)
}
