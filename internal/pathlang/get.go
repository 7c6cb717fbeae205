// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package pathlang

import (
	"strconv"
	"strings"

	"github.com/jsonrules/ruleengine/pkg/errutil"
)

// Get reads the value(s) a path specifier addresses in obj. Reading
// through a list broadcasts: each
// remaining segment is applied to every element and the per-element
// results are recursively flattened into one list. A trailing ".$val"
// segment requires the (flattened) result to be exactly one value and
// unwraps it; without it, Get always returns the flattened result as-is
// (a bare scalar/dict if no list was ever traversed, a flat list
// otherwise).
func Get(obj any, spec string) (any, error) {
	segments, err := splitSegments(spec)
	if err != nil {
		return nil, err
	}
	if err := checkDepth(segments, spec); err != nil {
		return nil, err
	}

	wantSingle := false
	if len(segments) > 0 && segments[len(segments)-1] == "$val" {
		wantSingle = true
		segments = segments[:len(segments)-1]
	}

	result, err := getRecursive(obj, segments, spec)
	if err != nil {
		return nil, err
	}
	flat := flatten(result)

	if wantSingle {
		items, ok := flat.([]any)
		if !ok {
			return flat, nil
		}
		if len(items) != 1 {
			return nil, errutil.NewDotNotationError(spec, "$val requires exactly one matched value")
		}
		return items[0], nil
	}
	return flat, nil
}

func getRecursive(attribute any, specifier []string, origSpec string) (any, error) {
	if len(specifier) == 0 {
		return attribute, nil
	}
	seg := specifier[0]
	rest := specifier[1:]

	keyPart, subsRaw, hasBracket := splitBracket(seg)
	if hasBracket {
		subs := splitSubs(subsRaw)

		if strings.TrimSpace(keyPart) != "" {
			switch v := attribute.(type) {
			case map[string]any:
				child := v[keyPart]
				sub, err := getSubscriptionRecursive(child, subs, origSpec)
				if err != nil {
					return nil, err
				}
				return getRecursive(flatten(sub), rest, origSpec)
			case []any:
				all := make([]any, 0, len(v))
				for _, elem := range v {
					child, err := dictGet(elem, keyPart, origSpec)
					if err != nil {
						return nil, err
					}
					sub, err := getSubscriptionRecursive(child, subs, origSpec)
					if err != nil {
						return nil, err
					}
					all = append(all, sub)
				}
				return getRecursive(flatten(all), rest, origSpec)
			default:
				return nil, errutil.NewDotNotationError(origSpec, "segment \""+seg+"\" requires a dict or list")
			}
		}

		sub, err := getSubscriptionRecursive(attribute, subs, origSpec)
		if err != nil {
			return nil, err
		}
		return getRecursive(flatten(sub), rest, origSpec)
	}

	switch v := attribute.(type) {
	case map[string]any:
		return getRecursive(v[seg], rest, origSpec)
	case []any:
		all := make([]any, 0, len(v))
		for _, elem := range v {
			child, err := dictGet(elem, seg, origSpec)
			if err != nil {
				return nil, err
			}
			result, err := getRecursive(child, rest, origSpec)
			if err != nil {
				return nil, err
			}
			all = append(all, result)
		}
		return all, nil
	default:
		return nil, errutil.NewDotNotationError(origSpec, "segment \""+seg+"\" requires a dict or list")
	}
}

// dictGet reads key from elem if elem is a dict, and errors otherwise
// (a list-of-dicts broadcast meeting a non-dict element).
func dictGet(elem any, key, origSpec string) (any, error) {
	if elem == nil {
		return nil, nil
	}
	m, ok := elem.(map[string]any)
	if !ok {
		return nil, errutil.NewDotNotationError(origSpec, "list element is not a dict")
	}
	return m[key], nil
}

// getSubscriptionRecursive applies a chain of comma-separated
// subscriptions to attribute, one at a time: each one narrows attribute
// (by index or by slice) before the next is applied to that result.
// Every step wraps its result in a one-element list; the caller flattens.
func getSubscriptionRecursive(attribute any, subs []string, origSpec string) (any, error) {
	if len(subs) == 0 {
		return attribute, nil
	}
	list, ok := attribute.([]any)
	if !ok {
		return nil, errutil.NewSubscriptionError(origSpec, "subscription requires a list")
	}

	cur := subs[0]
	rest := subs[1:]

	switch {
	case reIndex.MatchString(cur):
		idx, _ := strconv.Atoi(cur)
		real := idx
		if real < 0 {
			real += len(list)
		}
		if real < 0 || real >= len(list) {
			return nil, errutil.NewSubscriptionError(origSpec, "index out of range: "+cur)
		}
		sub, err := getSubscriptionRecursive(list[real], rest, origSpec)
		if err != nil {
			return nil, err
		}
		return []any{sub}, nil

	case reSlice2.MatchString(cur):
		m := reSlice2.FindStringSubmatch(cur)
		sliced := sliceOf(list, parseIntPtr(m[1]), parseIntPtr(m[2]), nil)
		sub, err := getSubscriptionRecursive(sliced, rest, origSpec)
		if err != nil {
			return nil, err
		}
		return []any{sub}, nil

	case reSlice3.MatchString(cur):
		m := reSlice3.FindStringSubmatch(cur)
		sliced := sliceOf(list, parseIntPtr(m[1]), parseIntPtr(m[2]), parseIntPtr(m[3]))
		sub, err := getSubscriptionRecursive(sliced, rest, origSpec)
		if err != nil {
			return nil, err
		}
		return []any{sub}, nil

	default:
		return nil, errutil.NewSubscriptionError(origSpec, "invalid subscription: "+cur)
	}
}

func sliceOf(list []any, start, end, step *int) []any {
	idxs := sliceIndices(len(list), start, end, step)
	out := make([]any, len(idxs))
	for i, ix := range idxs {
		out[i] = list[ix]
	}
	return out
}

// flatten fully flattens nested lists into one list; non-list values
// pass through unchanged.
func flatten(v any) any {
	list, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]any, 0, len(list))
	for _, el := range list {
		f := flatten(el)
		if fl, ok := f.([]any); ok {
			out = append(out, fl...)
		} else {
			out = append(out, f)
		}
	}
	return out
}
