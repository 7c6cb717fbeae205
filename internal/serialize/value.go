// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package serialize

import (
	"encoding/json"
	"fmt"

	"github.com/jsonrules/ruleengine/internal/lattice"
	"github.com/jsonrules/ruleengine/internal/registry"
	"github.com/jsonrules/ruleengine/internal/valuesource"
	"github.com/jsonrules/ruleengine/pkg/errutil"
)

// ConstantToDict encodes c into its tagged-envelope payload shape.
func ConstantToDict(c *valuesource.Constant) (map[string]any, error) {
	filters, err := filterStepsToDict(c.Filters)
	if err != nil {
		return nil, err
	}
	obj := map[string]any{
		"value":   toJSONCompatible(c.BaseValue()),
		"type":    string(c.InputType()),
		"filters": filters,
	}
	return map[string]any{"key": TagConstant, "obj": obj}, nil
}

// AttributeToDict encodes a into the same tagged shape as Constant,
// with "value" holding the path string instead.
func AttributeToDict(a *valuesource.Attribute) (map[string]any, error) {
	filters, err := filterStepsToDict(a.Filters)
	if err != nil {
		return nil, err
	}
	obj := map[string]any{
		"value":   a.Path,
		"type":    string(a.DeclaredType),
		"filters": filters,
	}
	return map[string]any{"key": TagAttribute, "obj": obj}, nil
}

func filterStepsToDict(steps []valuesource.FilterStep) ([]any, error) {
	out := make([]any, 0, len(steps))
	for _, step := range steps {
		args := make([]any, 0, len(step.Args))
		for _, arg := range step.Args {
			d, err := ValueSourceToDict(arg)
			if err != nil {
				return nil, err
			}
			args = append(args, d)
		}
		out = append(out, map[string]any{"filter_key": step.Key, "args": args})
	}
	return out, nil
}

// ValueSourceToDict dispatches on vs's concrete type.
func ValueSourceToDict(vs valuesource.ValueSource) (map[string]any, error) {
	switch v := vs.(type) {
	case *valuesource.Constant:
		return ConstantToDict(v)
	case *valuesource.Attribute:
		return AttributeToDict(v)
	default:
		return nil, errutil.NewAPIError("unknown value source implementation")
	}
}

// ValueSourceFromDict rehydrates a Constant or Attribute from a tagged
// envelope against reg, re-running AddFilter validation for every
// filter step.
func ValueSourceFromDict(reg *registry.Registry, parsers *lattice.Parsers, data []byte) (valuesource.ValueSource, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	switch env.Key {
	case TagConstant:
		return constantFromEnvelope(reg, parsers, env.Obj)
	case TagAttribute:
		return attributeFromEnvelope(reg, parsers, env.Obj)
	default:
		return nil, errutil.NewAPIError("unknown value source tag: " + env.Key)
	}
}

func constantFromEnvelope(reg *registry.Registry, parsers *lattice.Parsers, raw json.RawMessage) (*valuesource.Constant, error) {
	var obj struct {
		Value   any               `json:"value"`
		Type    string            `json:"type"`
		Filters []json.RawMessage `json:"filters"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, errutil.NewAPIError("malformed Constant payload: " + err.Error())
	}
	c, err := valuesource.NewConstant(obj.Value, lattice.Type(obj.Type), parsers)
	if err != nil {
		return nil, err
	}
	if err := applyFilterDicts(reg, parsers, c, obj.Filters); err != nil {
		return nil, err
	}
	return c, nil
}

func attributeFromEnvelope(reg *registry.Registry, parsers *lattice.Parsers, raw json.RawMessage) (*valuesource.Attribute, error) {
	var obj struct {
		Value   string            `json:"value"`
		Type    string            `json:"type"`
		Filters []json.RawMessage `json:"filters"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, errutil.NewAPIError("malformed Attribute payload: " + err.Error())
	}
	a, err := valuesource.NewAttribute(obj.Value, lattice.Type(obj.Type))
	if err != nil {
		return nil, err
	}
	if err := applyFilterDicts(reg, parsers, a, obj.Filters); err != nil {
		return nil, err
	}
	return a, nil
}

func applyFilterDicts(reg *registry.Registry, parsers *lattice.Parsers, src valuesource.ValueSource, raws []json.RawMessage) error {
	for _, fr := range raws {
		var step struct {
			FilterKey string            `json:"filter_key"`
			Args      []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(fr, &step); err != nil {
			return errutil.NewAPIError(fmt.Sprintf("malformed filter step: %v", err))
		}
		args := make([]valuesource.ValueSource, 0, len(step.Args))
		for _, argRaw := range step.Args {
			arg, err := ValueSourceFromDict(reg, parsers, argRaw)
			if err != nil {
				return err
			}
			args = append(args, arg)
		}
		if err := valuesource.AddFilter(src, reg, step.FilterKey, args...); err != nil {
			return err
		}
	}
	return nil
}
