// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads the rule engine's one external setting: the
// datetime string format used by the DateTime parser and formatter.
// It is deliberately not a general configuration layer — no files, no
// flags, just the single BUSINESS_RULE_DATETIME_FORMAT environment
// variable.
package config

import (
	"strings"

	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
)

// EnvVar is the environment variable that selects the datetime format.
const EnvVar = "BUSINESS_RULE_DATETIME_FORMAT"

// DefaultDateTimeFormat is the Go time-layout equivalent of the
// "%Y-%m-%dT%H:%M:%S" strftime format used when EnvVar is unset.
const DefaultDateTimeFormat = "2006-01-02T15:04:05"

// Config holds the engine's external configuration.
type Config struct {
	// DateTimeFormat is a Go time.Parse/time.Format layout string.
	DateTimeFormat string
}

// Load reads Config from the environment, falling back to defaults for
// anything unset.
func Load() (*Config, error) {
	k := koanf.New(".")

	provider := env.Provider(".", env.Opt{
		Prefix: "",
		TransformFunc: func(key, value string) (string, any) {
			if key != EnvVar {
				return "", nil
			}
			return strings.ToLower(key), value
		},
	})

	if err := k.Load(provider, nil); err != nil {
		return nil, err
	}

	format := k.String(strings.ToLower(EnvVar))
	if format == "" {
		format = DefaultDateTimeFormat
	}

	return &Config{DateTimeFormat: format}, nil
}
