// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package serialize

import (
	"encoding/json"

	"github.com/jsonrules/ruleengine/internal/environment"
	"github.com/jsonrules/ruleengine/internal/lattice"
	"github.com/jsonrules/ruleengine/pkg/errutil"
)

// JsonPathToDict encodes p into the tagged JsonAttribute payload shape.
func JsonPathToDict(p environment.JsonPath) map[string]any {
	obj := map[string]any{
		"dot_specifier":      p.Path,
		"attribute_type":     p.Direction.String(),
		"attribute_data_type": string(p.DataType),
		"pretty_name":        p.PrettyName,
		"description":        p.Description,
		"read_only":          p.ReadOnly,
		"max_length":         p.MaxLength,
	}
	return map[string]any{"key": TagJsonAttribute, "obj": obj}
}

func jsonPathFromEnvelope(data []byte) (environment.JsonPath, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return environment.JsonPath{}, err
	}
	if env.Key != TagJsonAttribute {
		return environment.JsonPath{}, errutil.NewAPIError("unknown json path tag: " + env.Key)
	}
	var obj struct {
		DotSpecifier      string `json:"dot_specifier"`
		AttributeType     string `json:"attribute_type"`
		AttributeDataType string `json:"attribute_data_type"`
		PrettyName        string `json:"pretty_name"`
		Description       string `json:"description"`
		ReadOnly          bool   `json:"read_only"`
		MaxLength         int    `json:"max_length"`
	}
	if err := json.Unmarshal(env.Obj, &obj); err != nil {
		return environment.JsonPath{}, errutil.NewAPIError("malformed JsonAttribute payload: " + err.Error())
	}
	dir := environment.DirectionIn
	if obj.AttributeType == "out" {
		dir = environment.DirectionOut
	}
	return environment.NewJsonPath(obj.DotSpecifier, dir, lattice.Type(obj.AttributeDataType), obj.PrettyName, obj.Description, obj.ReadOnly, obj.MaxLength)
}

// EnvironmentToDict encodes env into the tagged Environment payload
// shape: default mappings are stored as indices into the attribute list.
func EnvironmentToDict(env *environment.Environment) map[string]any {
	attrs := make([]any, 0, len(env.Attributes))
	for _, a := range env.Attributes {
		attrs = append(attrs, JsonPathToDict(a))
	}
	mappings := make([]any, 0, len(env.DefaultMappings))
	for _, m := range env.DefaultMappings {
		inIdx := indexOfPath(env, m.InputPath, environment.DirectionIn)
		outIdx := indexOfPath(env, m.OutputPath, environment.DirectionOut)
		mappings = append(mappings, []any{inIdx, outIdx})
	}
	obj := map[string]any{"attributes": attrs, "default_mappings": mappings}
	return map[string]any{"key": TagEnvironment, "obj": obj}
}

func indexOfPath(env *environment.Environment, path string, dir environment.Direction) int {
	for i, a := range env.Attributes {
		if a.Path == path && a.Direction == dir {
			return i
		}
	}
	return -1
}

// EnvironmentFromDict rehydrates an Environment.
func EnvironmentFromDict(data []byte) (*environment.Environment, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	if env.Key != TagEnvironment {
		return nil, errutil.NewAPIError("unknown environment tag: " + env.Key)
	}
	var obj struct {
		Attributes      []json.RawMessage `json:"attributes"`
		DefaultMappings [][2]int          `json:"default_mappings"`
	}
	if err := json.Unmarshal(env.Obj, &obj); err != nil {
		return nil, errutil.NewAPIError("malformed Environment payload: " + err.Error())
	}

	out := environment.New()
	for _, raw := range obj.Attributes {
		p, err := jsonPathFromEnvelope(raw)
		if err != nil {
			return nil, err
		}
		out.AddAttribute(p)
	}
	for _, pair := range obj.DefaultMappings {
		inIdx, outIdx := pair[0], pair[1]
		if inIdx < 0 || inIdx >= len(out.Attributes) || outIdx < 0 || outIdx >= len(out.Attributes) {
			return nil, errutil.NewAPIError("default mapping index out of range")
		}
		out.AddDefaultMapping(environment.DefaultMapping{
			InputPath:  out.Attributes[inIdx].Path,
			OutputPath: out.Attributes[outIdx].Path,
		})
	}
	return out, nil
}
