// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package serialize

import (
	"encoding/json"

	"github.com/jsonrules/ruleengine/internal/expr"
	"github.com/jsonrules/ruleengine/internal/lattice"
	"github.com/jsonrules/ruleengine/internal/registry"
	"github.com/jsonrules/ruleengine/internal/valuesource"
	"github.com/jsonrules/ruleengine/pkg/errutil"
)

// ContainerToDict encodes c into its tagged AndOperator/OrOperator
// payload shape, splitting members into separate comparers and
// sub_containers lists.
func ContainerToDict(c *expr.Container) (map[string]any, error) {
	var comparers []any
	var subContainers []any
	for _, m := range c.Members {
		switch v := m.(type) {
		case *expr.ComparerCall:
			d, err := comparerCallToDict(v)
			if err != nil {
				return nil, err
			}
			comparers = append(comparers, d)
		case *expr.Container:
			d, err := ContainerToDict(v)
			if err != nil {
				return nil, err
			}
			subContainers = append(subContainers, d)
		default:
			return nil, errutil.NewAPIError("unknown expression member implementation")
		}
	}

	tag := TagAndOperator
	if c.IsOr() {
		tag = TagOrOperator
	}
	obj := map[string]any{
		"comparers":     orEmpty(comparers),
		"sub_containers": orEmpty(subContainers),
		"not_operator":  c.Negated,
	}
	return map[string]any{"key": tag, "obj": obj}, nil
}

func comparerCallToDict(cc *expr.ComparerCall) (map[string]any, error) {
	left, err := AttributeToDict(cc.Left)
	if err != nil {
		return nil, err
	}
	right, err := ValueSourceToDict(cc.Right)
	if err != nil {
		return nil, err
	}
	args := make([]any, 0, len(cc.Args))
	for _, a := range cc.Args {
		d, err := ValueSourceToDict(a)
		if err != nil {
			return nil, err
		}
		args = append(args, d)
	}
	return map[string]any{
		"comparer_key":       cc.ComparerKey,
		"comparable1":        left,
		"comparable2":        right,
		"selected_collation": []string{string(cc.SelectedCollation.Left), string(cc.SelectedCollation.Right)},
		"args":               args,
	}, nil
}

// ContainerFromDict rehydrates an AndOperator/OrOperator container
// against reg, re-running AddComparer validation for every comparer.
func ContainerFromDict(reg *registry.Registry, parsers *lattice.Parsers, data []byte) (*expr.Container, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	var negated bool
	var isOr bool
	switch env.Key {
	case TagAndOperator:
		isOr = false
	case TagOrOperator:
		isOr = true
	default:
		return nil, errutil.NewAPIError("unknown container tag: " + env.Key)
	}

	var obj struct {
		Comparers     []json.RawMessage `json:"comparers"`
		SubContainers []json.RawMessage `json:"sub_containers"`
		NotOperator   bool              `json:"not_operator"`
	}
	if err := json.Unmarshal(env.Obj, &obj); err != nil {
		return nil, errutil.NewAPIError("malformed container payload: " + err.Error())
	}
	negated = obj.NotOperator

	var c *expr.Container
	if isOr {
		c = expr.NewOrContainer(negated)
	} else {
		c = expr.NewAndContainer(negated)
	}

	for _, sub := range obj.SubContainers {
		child, err := ContainerFromDict(reg, parsers, sub)
		if err != nil {
			return nil, err
		}
		c.AddMember(child)
	}
	for _, cmp := range obj.Comparers {
		if err := addComparerFromDict(c, reg, parsers, cmp); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func addComparerFromDict(c *expr.Container, reg *registry.Registry, parsers *lattice.Parsers, raw json.RawMessage) error {
	var obj struct {
		ComparerKey       string            `json:"comparer_key"`
		Comparable1       json.RawMessage   `json:"comparable1"`
		Comparable2       json.RawMessage   `json:"comparable2"`
		SelectedCollation []string          `json:"selected_collation"`
		Args              []json.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return errutil.NewAPIError("malformed comparer payload: " + err.Error())
	}

	left, err := ValueSourceFromDict(reg, parsers, obj.Comparable1)
	if err != nil {
		return err
	}
	leftAttr, ok := left.(*valuesource.Attribute)
	if !ok {
		return errutil.NewAPIError("comparer comparable1 must be an Attribute")
	}
	right, err := ValueSourceFromDict(reg, parsers, obj.Comparable2)
	if err != nil {
		return err
	}
	args := make([]valuesource.ValueSource, 0, len(obj.Args))
	for _, ar := range obj.Args {
		arg, err := ValueSourceFromDict(reg, parsers, ar)
		if err != nil {
			return err
		}
		args = append(args, arg)
	}

	var collation *registry.CollationPair
	if len(obj.SelectedCollation) == 2 {
		collation = &registry.CollationPair{
			Left:  lattice.Type(obj.SelectedCollation[0]),
			Right: lattice.Type(obj.SelectedCollation[1]),
		}
	}

	return expr.AddComparer(c, reg, obj.ComparerKey, leftAttr, right, collation, args...)
}

func orEmpty(s []any) []any {
	if s == nil {
		return []any{}
	}
	return s
}
