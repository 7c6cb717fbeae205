// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package pathlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSlice(t *testing.T) {
	obj := map[string]any{"x": []any{10.0, 20.0, 30.0, 40.0}}
	v, err := Get(obj, "x[1:3]")
	require.NoError(t, err)
	assert.Equal(t, []any{20.0, 30.0}, v)
}

func TestGetBroadcastOverList(t *testing.T) {
	obj := map[string]any{"x": []any{
		map[string]any{"k": 1.0},
		map[string]any{"k": 2.0},
	}}
	v, err := Get(obj, "x.k")
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0}, v)
}

func TestGetValTerminator(t *testing.T) {
	obj := map[string]any{"x": []any{10.0, 20.0, 30.0}}
	v, err := Get(obj, "x[0].$val")
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)
}

func TestGetValTerminatorRequiresSingleResult(t *testing.T) {
	obj := map[string]any{"x": []any{10.0, 20.0, 30.0}}
	_, err := Get(obj, "x[0:2].$val")
	assert.Error(t, err)
}

func TestGetScalarPassesThroughUnwrapped(t *testing.T) {
	obj := map[string]any{"y": 5.0}
	v, err := Get(obj, "y")
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
}

func TestGetEscapedDotInKey(t *testing.T) {
	obj := map[string]any{"a.b": 1.0}
	v, err := Get(obj, `a\.b`)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestGetSubscriptionOnNonListErrors(t *testing.T) {
	obj := map[string]any{"x": map[string]any{"k": 1.0}}
	_, err := Get(obj, "x[0]")
	assert.Error(t, err)
}

func TestSetScalarDoesNotMutateInput(t *testing.T) {
	obj := map[string]any{"a": map[string]any{"b": 1.0}}
	out, err := Set(obj, "a.b", 2.0)
	require.NoError(t, err)

	outMap := out.(map[string]any)
	assert.Equal(t, 2.0, outMap["a"].(map[string]any)["b"])
	assert.Equal(t, 1.0, obj["a"].(map[string]any)["b"])
}

func TestSetIndexInPlace(t *testing.T) {
	obj := map[string]any{"x": []any{1.0, 2.0, 3.0}}
	out, err := Set(obj, "x[1]", 99.0)
	require.NoError(t, err)

	outMap := out.(map[string]any)
	assert.Equal(t, []any{1.0, 99.0, 3.0}, outMap["x"])
	assert.Equal(t, []any{1.0, 2.0, 3.0}, obj["x"])
}

func TestSetSliceBroadcastsScalarPreservingLength(t *testing.T) {
	obj := map[string]any{"x": []any{1.0, 2.0, 3.0, 4.0}}
	out, err := Set(obj, "x[1:3]", 0.0)
	require.NoError(t, err)

	outMap := out.(map[string]any)
	assert.Equal(t, []any{1.0, 0.0, 0.0, 4.0}, outMap["x"])
}

func TestSetSliceWithListChangesLength(t *testing.T) {
	obj := map[string]any{"x": []any{1.0, 2.0, 3.0, 4.0}}
	out, err := Set(obj, "x[1:3]", []any{8.0, 9.0, 10.0})
	require.NoError(t, err)

	outMap := out.(map[string]any)
	assert.Equal(t, []any{1.0, 8.0, 9.0, 10.0, 4.0}, outMap["x"])
}

func TestSetBroadcastsOverListWithoutBracket(t *testing.T) {
	obj := map[string]any{"x": []any{
		map[string]any{"k": 1.0},
		map[string]any{"k": 2.0},
	}}
	out, err := Set(obj, "x.k", 9.0)
	require.NoError(t, err)

	outMap := out.(map[string]any)
	xs := outMap["x"].([]any)
	assert.Equal(t, 9.0, xs[0].(map[string]any)["k"])
	assert.Equal(t, 9.0, xs[1].(map[string]any)["k"])
}

func TestSetRejectsMultiDimensionalSubscription(t *testing.T) {
	obj := map[string]any{"x": []any{[]any{1.0, 2.0}}}
	_, err := Set(obj, "x[0,1]", 5.0)
	assert.Error(t, err)
}
