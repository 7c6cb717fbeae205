// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package lattice implements the rule engine's closed semantic type
// system: the ten named types, the directed
// implicit-conversion relation between them, and the canonical parser
// for each type. Every other component treats a Type as an opaque tag;
// this package is the only place the conversion rules are encoded.
package lattice

// Type is one of the ten closed semantic types. Unlike a small fixed
// enum with a String() lookup array, the type lattice also needs
// set-membership and conversion-source queries, so Type is modeled as
// a string newtype with package-level relations rather than an int enum.
type Type string

// The closed set of semantic types.
const (
	Boolean  Type = "Boolean"
	Numeric  Type = "Numeric"
	String   Type = "String"
	DateTime Type = "DateTime"
	Dict     Type = "Dict"

	BooleanList  Type = "BooleanList"
	NumericList  Type = "NumericList"
	StringList   Type = "StringList"
	DateTimeList Type = "DateTimeList"
	DictList     Type = "DictList"
)

// All is the closed set of semantic types, in the order §4.1 specifies
// for Constant auto-detection.
var All = []Type{
	BooleanList, NumericList, DateTimeList, DictList, StringList,
	Boolean, Numeric, DateTime, Dict, String,
}

// IsValid reports whether t is one of the closed set of types.
func IsValid(t Type) bool {
	for _, candidate := range All {
		if candidate == t {
			return true
		}
	}
	return false
}

// IsList reports whether t is one of the list-shaped types.
func (t Type) IsList() bool {
	switch t {
	case BooleanList, NumericList, StringList, DateTimeList, DictList:
		return true
	default:
		return false
	}
}

// implicitConversions is the fixed directed implicit-conversion
// relation: only these pairs, nothing transitive.
var implicitConversions = map[Type]Type{
	Boolean:      String,
	Numeric:      String,
	DateTime:     String,
	BooleanList:  StringList,
	NumericList:  StringList,
	DateTimeList: StringList,
}

// ConvertsTo reports whether from→to is a declared implicit conversion.
func ConvertsTo(from, to Type) bool {
	return implicitConversions[from] == to
}

// AllowedSources returns the set of types that may stand in for target
// under implicit conversion: {target} ∪ {S : S→target}.
func AllowedSources(target Type) map[Type]bool {
	sources := map[Type]bool{target: true}
	for from, to := range implicitConversions {
		if to == target {
			sources[from] = true
		}
	}
	return sources
}

// Accepts reports whether a value of type actual may be used where
// target is required, either directly or via implicit conversion.
func Accepts(target, actual Type) bool {
	return AllowedSources(target)[actual]
}
