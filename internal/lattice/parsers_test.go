// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package lattice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumeric(t *testing.T) {
	p := New("")

	v, err := p.Parse(Numeric, "5")
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	v, err = p.Parse(Numeric, 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	_, err = p.Parse(Numeric, "not-a-number")
	assert.Error(t, err)
}

func TestParseDateTimeEpochAndFormatted(t *testing.T) {
	p := New("2006-01-02T15:04:05")

	v, err := p.Parse(DateTime, float64(0))
	require.NoError(t, err)
	assert.Equal(t, time.Unix(0, 0).UTC(), v)

	v, err = p.Parse(DateTime, "2020-01-02T03:04:05")
	require.NoError(t, err)
	want, _ := time.Parse("2006-01-02T15:04:05", "2020-01-02T03:04:05")
	assert.Equal(t, want.UTC(), v)
}

func TestParseStringFormatsDateTimeAndNumeric(t *testing.T) {
	p := New("2006-01-02T15:04:05")

	dt := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	v, err := p.Parse(String, dt)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-02T03:04:05", v)

	v, err = p.Parse(String, 18)
	require.NoError(t, err)
	assert.Equal(t, "18", v)
}

func TestParseListsParseEachElement(t *testing.T) {
	p := New("")

	v, err := p.Parse(NumericList, []any{"1", "2", 3.0})
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, v)

	_, err = p.Parse(NumericList, "not-a-list")
	assert.Error(t, err)
}

func TestAutoDetectOrderAndStringFallback(t *testing.T) {
	p := New("")

	v, typ, err := p.AutoDetect(true)
	require.NoError(t, err)
	assert.Equal(t, Boolean, typ)
	assert.Equal(t, true, v)

	v, typ, err = p.AutoDetect("hello world")
	require.NoError(t, err)
	assert.Equal(t, String, typ)
	assert.Equal(t, "hello world", v)

	_, typ, err = p.AutoDetect([]any{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, StringList, typ)
}

func TestAllowedSourcesAndAccepts(t *testing.T) {
	sources := AllowedSources(String)
	assert.True(t, sources[String])
	assert.True(t, sources[Boolean])
	assert.True(t, sources[Numeric])
	assert.True(t, sources[DateTime])
	assert.False(t, sources[Dict])

	assert.True(t, Accepts(String, Numeric))
	assert.False(t, Accepts(Numeric, String))
}
