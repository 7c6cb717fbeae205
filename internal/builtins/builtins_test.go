// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package builtins

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistersEveryBuiltin(t *testing.T) {
	r := Default()
	for _, key := range []string{
		"string_to_numeric", "numeric_to_string", "unixepoch_to_datetime",
		"filter_by_subvalue_include", "multiple_filter_by_subvalue_include",
		"filter_by_subvalue", "multiple_filter_by_subvalue",
		"extract_with_dot_specifier_to_string", "extract_with_dot_specifier_to_numeric",
	} {
		_, ok := r.Filter(key)
		assert.True(t, ok, "missing filter %s", key)
	}
	for _, key := range []string{"equals", "includes", "string_includes_ignorecase"} {
		_, ok := r.Comparer(key)
		assert.True(t, ok, "missing comparer %s", key)
	}
}

func TestEqualsComparer(t *testing.T) {
	ok, err := equals(float64(3), float64(3), nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = equals(nil, float64(3), nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIncludesComparer(t *testing.T) {
	ok, err := includes([]any{"a", "b"}, "b", nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = includes([]any{"a", "b"}, "c", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStringIncludesIgnoreCase(t *testing.T) {
	ok, err := stringIncludesIgnoreCase("Hello World", "WORLD", nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnixEpochToDateTime(t *testing.T) {
	v, err := unixEpochToDateTime(float64(0), nil)
	require.NoError(t, err)
	assert.Equal(t, time.Unix(0, 0).UTC(), v)
}

func TestFilterBySubvalueIncludeReturnsFirstMatch(t *testing.T) {
	rows := []any{
		map[string]any{"name": "Widget"},
		map[string]any{"name": "Gadget"},
	}
	v, err := filterBySubvalueInclude(rows, []any{"name", "dg"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Widget"}, v)
}

func TestMultipleFilterBySubvalueExactMatchesAll(t *testing.T) {
	rows := []any{
		map[string]any{"name": "Widget"},
		map[string]any{"name": "widget"},
		map[string]any{"name": "Gadget"},
	}
	v, err := multipleFilterBySubvalue(rows, []any{"name", "widget"})
	require.NoError(t, err)
	assert.Len(t, v, 2)
}

func TestExtractWithDotSpecifierToNumeric(t *testing.T) {
	v, err := extractWithDotSpecifierToNumeric(map[string]any{"count": "42"}, []any{"count"})
	require.NoError(t, err)
	assert.Equal(t, float64(42), v)
}
