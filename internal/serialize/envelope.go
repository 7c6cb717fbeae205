// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package serialize implements the tagged-envelope JSON encoding for
// every rule-program artifact: each artifact is
// wrapped as {"key": <class tag>, "obj": <payload>}. Each artifact kind
// has its own FromDict function that checks the tag and rejects any
// other; ValueSourceFromDict dispatches between Constant and Attribute.
// There is no single entry point that rehydrates an arbitrary tag.
// Rehydration of value sources, containers, expressions and programs
// runs against a supplied *registry.Registry and re-runs
// registration-time validation, so a program authored against a
// since-changed registry is rejected.
package serialize

import (
	"encoding/json"
	"time"

	"github.com/jsonrules/ruleengine/pkg/errutil"
)

// Tag values used in the envelope's "key" field.
const (
	TagConstant       = "Constant"
	TagAttribute      = "Attribute"
	TagAndOperator    = "AndOperator"
	TagOrOperator     = "OrOperator"
	TagJsonAttribute  = "JsonAttribute"
	TagEnvironment    = "Environment"
	TagRuleExpression = "RuleExpression"
	TagRuleRunner     = "RuleRunner"
)

// envelope is the wire shape every tagged artifact round-trips through.
type envelope struct {
	Key string          `json:"key"`
	Obj json.RawMessage `json:"obj"`
}

func decodeEnvelope(data []byte) (envelope, error) {
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return envelope{}, errutil.NewAPIError("malformed tagged envelope: " + err.Error())
	}
	if e.Key == "" {
		return envelope{}, errutil.NewAPIError("tagged envelope missing key")
	}
	return e, nil
}

// toJSONCompatible converts a lattice value to the representation used
// on the wire: time.Time becomes a UTC unix-epoch-seconds float, lists
// are converted element-wise, everything else passes through unchanged.
func toJSONCompatible(value any) any {
	switch v := value.(type) {
	case time.Time:
		return float64(v.UTC().Unix())
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = toJSONCompatible(item)
		}
		return out
	default:
		return value
	}
}
