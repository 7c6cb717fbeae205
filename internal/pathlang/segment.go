// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package pathlang

import (
	"regexp"
	"strconv"
	"strings"
)

// trailingBracket matches a subscription group anchored to the end of a
// segment: "[" then digits/commas/colons/minus/whitespace, then "]",
// then optional trailing whitespace. The charset never contains a
// backslash, so an escaped "]" can never appear inside it.
var trailingBracket = regexp.MustCompile(`\[([-,:\d\s]*)\]\s*$`)

var (
	reIndex  = regexp.MustCompile(`^-?\d+$`)
	reSlice2 = regexp.MustCompile(`^(-?\d+)?\s*:\s*(-?\d+)?$`)
	reSlice3 = regexp.MustCompile(`^(-?\d+)?\s*:\s*(-?\d+)?\s*:\s*(-?\d+)?$`)
)

// splitBracket splits a segment into its key part and the raw
// subscription text, if the segment ends with a bracket group.
func splitBracket(seg string) (keyPart string, subsRaw string, hasBracket bool) {
	loc := trailingBracket.FindStringSubmatchIndex(seg)
	if loc == nil {
		return seg, "", false
	}
	return seg[:loc[0]], seg[loc[2]:loc[3]], true
}

// splitSubs splits a bracket's raw text on commas, trimming each piece.
// Get allows multiple comma-separated subscriptions; Set rejects a
// result with more than one.
func splitSubs(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func parseIntPtr(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
