// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package pathlang

import "github.com/jsonrules/ruleengine/pkg/errutil"

// MaxSegments bounds how many dot-separated segments a path specifier
// may have, a defensive nesting-depth guard against pathological input.
const MaxSegments = 64

func checkDepth(segments []string, spec string) error {
	if len(segments) > MaxSegments {
		return errutil.NewDotNotationError(spec, "path exceeds maximum segment depth")
	}
	return nil
}
