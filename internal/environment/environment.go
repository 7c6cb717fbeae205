// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package environment defines the rule program's input/output schema:
// the ordered set of JsonPaths a program may read and write, and the
// default mappings that fill unassigned outputs from an input path,
// parsed as the output's data type.
package environment

import (
	"fmt"

	"github.com/jsonrules/ruleengine/internal/lattice"
	"github.com/jsonrules/ruleengine/pkg/errutil"
)

// Direction marks whether a JsonPath is readable input or writable
// output.
type Direction int

// The two path directions.
const (
	DirectionIn Direction = iota
	DirectionOut
)

var directionStrings = [...]string{"in", "out"}

func (d Direction) String() string {
	if d >= 0 && int(d) < len(directionStrings) {
		return directionStrings[d]
	}
	return fmt.Sprintf("unknown(%d)", int(d))
}

// JsonPath describes one path an environment exposes for reading
// (DirectionIn) or writing (DirectionOut).
type JsonPath struct {
	Path        string
	Direction   Direction
	DataType    lattice.Type
	PrettyName  string
	Description string
	ReadOnly    bool
	MaxLength   int // 0 means unbounded
}

// NewJsonPath builds a validated JsonPath.
func NewJsonPath(path string, direction Direction, dataType lattice.Type, prettyName, description string, readOnly bool, maxLength int) (JsonPath, error) {
	if path == "" {
		return JsonPath{}, errutil.NewAPIError("json path must not be empty")
	}
	if !lattice.IsValid(dataType) {
		return JsonPath{}, errutil.NewAPIError("json path data_type must be a valid lattice type: " + string(dataType))
	}
	return JsonPath{
		Path:        path,
		Direction:   direction,
		DataType:    dataType,
		PrettyName:  prettyName,
		Description: description,
		ReadOnly:    readOnly,
		MaxLength:   maxLength,
	}, nil
}

// DefaultMapping copies InputPath's raw value into OutputPath, parsed
// as OutputPath's data type, whenever OutputPath is not otherwise
// assigned by a rule expression.
type DefaultMapping struct {
	InputPath  string
	OutputPath string
}

// Environment is the ordered attribute catalog a rule program is
// authored and validated against.
type Environment struct {
	Attributes      []JsonPath
	DefaultMappings []DefaultMapping
}

// New builds an empty Environment.
func New() *Environment {
	return &Environment{}
}

// AddAttribute appends a JsonPath in declaration order.
func (e *Environment) AddAttribute(p JsonPath) {
	e.Attributes = append(e.Attributes, p)
}

// AddDefaultMapping appends a default mapping in declaration order.
func (e *Environment) AddDefaultMapping(m DefaultMapping) {
	e.DefaultMappings = append(e.DefaultMappings, m)
}

// Filter is a predicate over JsonPath used by Query; a nil Filter
// matches every attribute.
type Filter func(JsonPath) bool

// Query returns the attributes matching every supplied filter, in
// declaration order. No filters means every
// attribute.
func (e *Environment) Query(filters ...Filter) []JsonPath {
	if len(filters) == 0 {
		out := make([]JsonPath, len(e.Attributes))
		copy(out, e.Attributes)
		return out
	}
	var out []JsonPath
	for _, attr := range e.Attributes {
		matched := true
		for _, f := range filters {
			if f != nil && !f(attr) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, attr)
		}
	}
	return out
}

// ByPath matches a JsonPath's Path field exactly.
func ByPath(path string) Filter {
	return func(p JsonPath) bool { return p.Path == path }
}

// ByDirection matches a JsonPath's Direction.
func ByDirection(dir Direction) Filter {
	return func(p JsonPath) bool { return p.Direction == dir }
}

// WritableOutput matches output paths that are not read-only.
func WritableOutput() Filter {
	return func(p JsonPath) bool { return p.Direction == DirectionOut && !p.ReadOnly }
}
