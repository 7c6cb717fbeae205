// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package pathlang

import (
	"strconv"
	"strings"

	"github.com/jsonrules/ruleengine/pkg/errutil"
)

// Set writes value at the path spec addresses in obj and returns the
// result, leaving obj untouched. Unlike Get,
// Set does not understand a trailing ".$val" segment and does not
// support comma-separated multi-dimensional subscriptions in a single
// bracket group — a path needing nested indexing chains brackets across
// separate dot segments instead. Writing through a list without a
// bracket broadcasts: the remaining specifier is applied to every
// element.
func Set(obj any, spec string, value any) (any, error) {
	segments, err := splitSegments(spec)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return deepCopy(value), nil
	}
	if err := checkDepth(segments, spec); err != nil {
		return nil, err
	}

	root := deepCopy(obj)
	return setRecursive(root, segments, value, spec)
}

func setRecursive(attribute any, specifier []string, value any, origSpec string) (any, error) {
	seg := specifier[0]
	rest := specifier[1:]

	keyPart, subsRaw, hasBracket := splitBracket(seg)
	if hasBracket {
		subs := splitSubs(subsRaw)
		if len(subs) != 1 {
			return nil, errutil.NewSubscriptionError(origSpec, "set does not support multi-dimensional subscription")
		}
		sub := subs[0]

		if strings.TrimSpace(keyPart) != "" {
			m, ok := attribute.(map[string]any)
			if !ok {
				return nil, errutil.NewDotNotationError(origSpec, "segment \""+seg+"\" requires a dict before subscription")
			}
			newChild, err := setSubscription(m[keyPart], sub, rest, value, origSpec)
			if err != nil {
				return nil, err
			}
			m[keyPart] = newChild
			return m, nil
		}

		return setSubscription(attribute, sub, rest, value, origSpec)
	}

	switch v := attribute.(type) {
	case map[string]any:
		if len(rest) == 0 {
			v[seg] = deepCopy(value)
			return v, nil
		}
		newChild, err := setRecursive(v[seg], rest, value, origSpec)
		if err != nil {
			return nil, err
		}
		v[seg] = newChild
		return v, nil

	case []any:
		for i, elem := range v {
			newElem, err := setRecursive(elem, specifier, value, origSpec)
			if err != nil {
				return nil, err
			}
			v[i] = newElem
		}
		return v, nil

	default:
		return nil, errutil.NewDotNotationError(origSpec, "segment \""+seg+"\" requires a dict or list")
	}
}

// setSubscription applies one subscription (index or slice, no commas)
// to attribute and either recurses into the selected element(s) with
// the remaining specifier, or, at the end of the specifier, writes
// value there.
func setSubscription(attribute any, sub string, rest []string, value any, origSpec string) (any, error) {
	list, ok := attribute.([]any)
	if !ok {
		return nil, errutil.NewSubscriptionError(origSpec, "subscription requires a list")
	}

	switch {
	case reIndex.MatchString(sub):
		idx, _ := strconv.Atoi(sub)
		real := idx
		if real < 0 {
			real += len(list)
		}
		if real < 0 || real >= len(list) {
			return nil, errutil.NewSubscriptionError(origSpec, "index out of range: "+sub)
		}
		if len(rest) > 0 {
			newElem, err := setRecursive(list[real], rest, value, origSpec)
			if err != nil {
				return nil, err
			}
			list[real] = newElem
			return list, nil
		}
		list[real] = deepCopy(value)
		return list, nil

	case reSlice2.MatchString(sub):
		m := reSlice2.FindStringSubmatch(sub)
		start, stop, _ := sliceRange(len(list), parseIntPtr(m[1]), parseIntPtr(m[2]), nil)
		return setSliceSpan(list, start, stop, rest, value, origSpec)

	case reSlice3.MatchString(sub):
		m := reSlice3.FindStringSubmatch(sub)
		startP, endP, stepP := parseIntPtr(m[1]), parseIntPtr(m[2]), parseIntPtr(m[3])
		idxs := sliceIndices(len(list), startP, endP, stepP)
		return setSliceIndices(list, idxs, rest, value, origSpec)

	default:
		return nil, errutil.NewSubscriptionError(origSpec, "invalid subscription: "+sub)
	}
}

// setSliceSpan handles a plain [a:b] (step 1) subscription. At the end
// of the specifier it splices: an assigned list value can change the
// overall length, a scalar value broadcasts into every covered slot.
func setSliceSpan(list []any, start, stop int, rest []string, value any, origSpec string) (any, error) {
	if len(rest) > 0 {
		for i := start; i < stop; i++ {
			newElem, err := setRecursive(list[i], rest, value, origSpec)
			if err != nil {
				return nil, err
			}
			list[i] = newElem
		}
		return list, nil
	}

	if vs, ok := value.([]any); ok {
		cloned := make([]any, len(vs))
		for i, it := range vs {
			cloned[i] = deepCopy(it)
		}
		out := make([]any, 0, len(list)-(stop-start)+len(cloned))
		out = append(out, list[:start]...)
		out = append(out, cloned...)
		out = append(out, list[stop:]...)
		return out, nil
	}

	for i := start; i < stop; i++ {
		list[i] = deepCopy(value)
	}
	return list, nil
}

// setSliceIndices handles an extended (stepped) slice subscription: an
// exact length match is required when the replacement is itself a
// list; a scalar value broadcasts into each selected slot.
func setSliceIndices(list []any, idxs []int, rest []string, value any, origSpec string) (any, error) {
	if len(rest) > 0 {
		for _, i := range idxs {
			newElem, err := setRecursive(list[i], rest, value, origSpec)
			if err != nil {
				return nil, err
			}
			list[i] = newElem
		}
		return list, nil
	}

	if vs, ok := value.([]any); ok {
		if len(vs) != len(idxs) {
			return nil, errutil.NewSubscriptionError(origSpec, "extended slice assignment requires matching lengths")
		}
		for j, i := range idxs {
			list[i] = deepCopy(vs[j])
		}
		return list, nil
	}

	for _, i := range idxs {
		list[i] = deepCopy(value)
	}
	return list, nil
}
