// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ruleprogram

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jsonrules/ruleengine/internal/environment"
	"github.com/jsonrules/ruleengine/internal/expr"
	"github.com/jsonrules/ruleengine/internal/lattice"
	"github.com/jsonrules/ruleengine/internal/registry"
	"github.com/jsonrules/ruleengine/internal/valuesource"
)

func buildEnv(t *testing.T) *environment.Environment {
	t.Helper()
	env := environment.New()
	amount, err := environment.NewJsonPath("amount", environment.DirectionIn, lattice.Numeric, "Amount", "", false, 0)
	require.NoError(t, err)
	tier, err := environment.NewJsonPath("tier", environment.DirectionOut, lattice.String, "Tier", "", false, 0)
	require.NoError(t, err)
	passthrough, err := environment.NewJsonPath("echo", environment.DirectionOut, lattice.Numeric, "Echo", "", false, 0)
	require.NoError(t, err)
	env.AddAttribute(amount)
	env.AddAttribute(tier)
	env.AddAttribute(passthrough)
	env.AddDefaultMapping(environment.DefaultMapping{InputPath: "amount", OutputPath: "echo"})
	return env
}

func buildProgram(t *testing.T, reg *registry.Registry) *RuleProgram {
	t.Helper()
	parsers := lattice.New("")
	left, err := valuesource.NewAttribute("amount", lattice.Numeric)
	require.NoError(t, err)
	right, err := valuesource.NewConstant(float64(100), lattice.Numeric, parsers)
	require.NoError(t, err)

	root := expr.NewAndContainer(false)
	require.NoError(t, expr.AddComparer(root, reg, "equals", left, right, nil))

	tierValue, err := valuesource.NewConstant("gold", lattice.String, parsers)
	require.NoError(t, err)

	re := &RuleExpression{
		Root:    root,
		Actions: []environment.Action{{Path: "tier", Value: tierValue}},
	}
	return &RuleProgram{Expressions: []*RuleExpression{re}}
}

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	require.NoError(t, r.RegisterComparer("equals", "equality", "equals", []registry.CollationPair{
		{Left: lattice.Numeric, Right: lattice.Numeric},
	}, nil, func(l, rr any, args []any) (bool, error) { return l == rr, nil }, nil, true))
	return r
}

func TestRunOnRowAppliesActionsOnMatch(t *testing.T) {
	reg := newRegistry(t)
	parsers := lattice.New("")
	program := buildProgram(t, reg)

	row, changed, err := program.Expressions[0].RunOnRow(reg, parsers, map[string]any{"amount": float64(100)})
	require.NoError(t, err)
	assert.True(t, changed["tier"])
	assert.Equal(t, "gold", row.(map[string]any)["tier"])
}

func TestRunOnRowLeavesRowUnchangedWhenNoMatch(t *testing.T) {
	reg := newRegistry(t)
	parsers := lattice.New("")
	program := buildProgram(t, reg)

	row, changed, err := program.Expressions[0].RunOnRow(reg, parsers, map[string]any{"amount": float64(50)})
	require.NoError(t, err)
	assert.Empty(t, changed)
	_, hasTier := row.(map[string]any)["tier"]
	assert.False(t, hasTier)
}

func TestRunOnIterableAppliesDefaultMappingWhenUnassigned(t *testing.T) {
	defer goleak.VerifyNone(t)

	reg := newRegistry(t)
	parsers := lattice.New("")
	env := buildEnv(t)
	program := buildProgram(t, reg)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	in := make(chan any, 1)
	in <- map[string]any{"amount": float64(50)}
	close(in)

	out := program.RunOnIterable(ctx, reg, parsers, env, in)
	result := <-out
	require.NoError(t, result.Err)
	row := result.Row.(map[string]any)
	assert.Equal(t, float64(50), row["echo"])
	_, hasTier := row["tier"]
	assert.False(t, hasTier)

	_, more := <-out
	assert.False(t, more)
}

func TestRunOnIterableDoesNotOverwriteExplicitAssignment(t *testing.T) {
	defer goleak.VerifyNone(t)

	reg := newRegistry(t)
	parsers := lattice.New("")
	env := buildEnv(t)
	env.AddDefaultMapping(environment.DefaultMapping{InputPath: "amount", OutputPath: "tier"})
	program := buildProgram(t, reg)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	in := make(chan any, 1)
	in <- map[string]any{"amount": float64(100)}
	close(in)

	out := program.RunOnIterable(ctx, reg, parsers, env, in)
	result := <-out
	require.NoError(t, result.Err)
	row := result.Row.(map[string]any)
	assert.Equal(t, "gold", row["tier"])
}
