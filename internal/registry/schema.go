// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package registry

import (
	"encoding/json"

	"github.com/jsonrules/ruleengine/internal/lattice"
	"github.com/jsonrules/ruleengine/pkg/errutil"
)

func validateManipulationTypes(pairs []ManipulationPair) error {
	if len(pairs) == 0 {
		return errutil.NewAPIError("manipulation_types must be nonempty")
	}
	seen := make(map[lattice.Type]bool, len(pairs))
	for _, p := range pairs {
		if !lattice.IsValid(p.In) || !lattice.IsValid(p.Out) {
			return errutil.NewAPIError("manipulation_types must reference valid types")
		}
		if seen[p.In] {
			return errutil.NewAPIError("duplicate input type in manipulation_types: " + string(p.In))
		}
		seen[p.In] = true
	}
	return nil
}

func validateCollationTypes(pairs []CollationPair) error {
	if len(pairs) == 0 {
		return errutil.NewAPIError("collation_types must be nonempty")
	}
	seen := make(map[CollationPair]bool, len(pairs))
	for _, p := range pairs {
		if !lattice.IsValid(p.Left) || !lattice.IsValid(p.Right) {
			return errutil.NewAPIError("collation_types must reference valid types")
		}
		if seen[p] {
			return errutil.NewAPIError("duplicate collation pair")
		}
		seen[p] = true
	}
	return nil
}

func validateParams(params []ParamSpec) error {
	for _, p := range params {
		if p.PrettyName == "" {
			return errutil.NewAPIError("param pretty_name must be nonempty")
		}
		if !lattice.IsValid(p.Type) {
			return errutil.NewAPIError("param type must be a valid lattice type: " + string(p.Type))
		}
		if len(p.ValueClasses) == 0 {
			return errutil.NewAPIError("param value_classes must be nonempty")
		}
		for _, vc := range p.ValueClasses {
			if vc != "Constant" && vc != "Attribute" {
				return errutil.NewAPIError("param value_classes entries must be Constant or Attribute")
			}
		}
		if p.MetaOptions != nil {
			if _, err := json.Marshal(p.MetaOptions); err != nil {
				return errutil.NewAPIError("param meta_options must be JSON-serializable")
			}
		}
	}
	return nil
}
