// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package serialize

import (
	"encoding/json"

	"github.com/jsonrules/ruleengine/internal/environment"
	"github.com/jsonrules/ruleengine/internal/lattice"
	"github.com/jsonrules/ruleengine/internal/registry"
	"github.com/jsonrules/ruleengine/internal/ruleprogram"
	"github.com/jsonrules/ruleengine/pkg/errutil"
)

// RuleExpressionToDict encodes e's base container and actions into the
// tagged RuleExpression payload shape.
func RuleExpressionToDict(e *ruleprogram.RuleExpression) (map[string]any, error) {
	base, err := ContainerToDict(e.Root)
	if err != nil {
		return nil, err
	}
	actions := make([]any, 0, len(e.Actions))
	for _, a := range e.Actions {
		v, err := ValueSourceToDict(a.Value)
		if err != nil {
			return nil, err
		}
		actions = append(actions, map[string]any{"param_key": a.Path, "value": v})
	}
	obj := map[string]any{"base_container": base, "actions": actions}
	return map[string]any{"key": TagRuleExpression, "obj": obj}, nil
}

// RuleExpressionFromDict rehydrates a RuleExpression against reg,
// re-running container and action validation.
func RuleExpressionFromDict(reg *registry.Registry, parsers *lattice.Parsers, data []byte) (*ruleprogram.RuleExpression, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	if env.Key != TagRuleExpression {
		return nil, errutil.NewAPIError("unknown rule expression tag: " + env.Key)
	}
	var obj struct {
		BaseContainer json.RawMessage `json:"base_container"`
		Actions       []struct {
			ParamKey string          `json:"param_key"`
			Value    json.RawMessage `json:"value"`
		} `json:"actions"`
	}
	if err := json.Unmarshal(env.Obj, &obj); err != nil {
		return nil, errutil.NewAPIError("malformed RuleExpression payload: " + err.Error())
	}

	root, err := ContainerFromDict(reg, parsers, obj.BaseContainer)
	if err != nil {
		return nil, err
	}
	actions := make([]environment.Action, 0, len(obj.Actions))
	for _, a := range obj.Actions {
		v, err := ValueSourceFromDict(reg, parsers, a.Value)
		if err != nil {
			return nil, err
		}
		actions = append(actions, environment.Action{Path: a.ParamKey, Value: v})
	}
	return &ruleprogram.RuleExpression{Root: root, Actions: actions}, nil
}

// RuleProgramToDict encodes p into the tagged RuleRunner payload shape.
func RuleProgramToDict(p *ruleprogram.RuleProgram) (map[string]any, error) {
	exprs := make([]any, 0, len(p.Expressions))
	for _, e := range p.Expressions {
		d, err := RuleExpressionToDict(e)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, d)
	}
	return map[string]any{"key": TagRuleRunner, "obj": map[string]any{"expressions": exprs}}, nil
}

// RuleProgramFromDict rehydrates a RuleProgram against reg.
func RuleProgramFromDict(reg *registry.Registry, parsers *lattice.Parsers, data []byte) (*ruleprogram.RuleProgram, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	if env.Key != TagRuleRunner {
		return nil, errutil.NewAPIError("unknown rule runner tag: " + env.Key)
	}
	var obj struct {
		Expressions []json.RawMessage `json:"expressions"`
	}
	if err := json.Unmarshal(env.Obj, &obj); err != nil {
		return nil, errutil.NewAPIError("malformed RuleRunner payload: " + err.Error())
	}
	exprs := make([]*ruleprogram.RuleExpression, 0, len(obj.Expressions))
	for _, raw := range obj.Expressions {
		e, err := RuleExpressionFromDict(reg, parsers, raw)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return &ruleprogram.RuleProgram{Expressions: exprs}, nil
}
