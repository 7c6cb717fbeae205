// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package lattice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jsonrules/ruleengine/pkg/errutil"
)

// Parsers is a type-lattice parser bound to a datetime format string,
// kept as an explicit value rather than a package-level global so
// tests can use a fixed format without touching the process
// environment.
type Parsers struct {
	DateTimeFormat string
}

// New builds a Parsers bound to the given datetime format.
func New(dateTimeFormat string) *Parsers {
	if dateTimeFormat == "" {
		dateTimeFormat = "2006-01-02T15:04:05"
	}
	return &Parsers{DateTimeFormat: dateTimeFormat}
}

// Parse converts value to the canonical representation of t, or returns
// a ParseError.
func (p *Parsers) Parse(t Type, value any) (any, error) {
	switch t {
	case Boolean:
		return p.parseBoolean(value)
	case Numeric:
		return p.parseNumeric(value)
	case String:
		return p.parseString(value)
	case DateTime:
		return p.parseDateTime(value)
	case Dict:
		return p.parseDict(value)
	case BooleanList:
		return p.parseList(value, t, p.parseBoolean)
	case NumericList:
		return p.parseList(value, t, p.parseNumeric)
	case StringList:
		return p.parseList(value, t, p.parseString)
	case DateTimeList:
		return p.parseList(value, t, p.parseDateTime)
	case DictList:
		return p.parseList(value, t, p.parseDict)
	default:
		return nil, errutil.NewParseError(string(t), value, fmt.Errorf("unknown type"))
	}
}

// ImplicitParse parses value to target only if actual lies in
// target's allowed source set.
func (p *Parsers) ImplicitParse(value any, actual, target Type) (any, error) {
	if !Accepts(target, actual) {
		return nil, errutil.NewRunnerError(
			fmt.Sprintf("no implicit conversion from %s to %s", actual, target))
	}
	return p.Parse(target, value)
}

// AutoDetect tries parsers in lattice order and
// returns the first successful parse along with its type. String is the
// final fallback and, given a non-nil value, always succeeds.
func (p *Parsers) AutoDetect(value any) (any, Type, error) {
	var lastErr error
	for _, t := range All {
		parsed, err := p.Parse(t, value)
		if err == nil {
			return parsed, t, nil
		}
		lastErr = err
	}
	return nil, "", lastErr
}

func (p *Parsers) parseBoolean(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if b, ok := value.(bool); ok {
		return b, nil
	}
	return nil, errutil.NewParseError(string(Boolean), value, fmt.Errorf("value must be a bool"))
}

func (p *Parsers) parseNumeric(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case time.Time:
		return float64(v.Unix()), nil
	case bool:
		// A bare bool never parses as numeric; fall through to the
		// string route, where it also fails, for one consistent error.
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprint(value)), 64)
	if err != nil {
		return nil, errutil.NewParseError(string(Numeric), value, err)
	}
	return f, nil
}

func (p *Parsers) parseDateTime(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case time.Time:
		return v.UTC(), nil
	case float64:
		return time.Unix(int64(v), 0).UTC(), nil
	case float32:
		return time.Unix(int64(v), 0).UTC(), nil
	case int:
		return time.Unix(int64(v), 0).UTC(), nil
	case int64:
		return time.Unix(v, 0).UTC(), nil
	}
	s := fmt.Sprint(value)
	t, err := time.Parse(p.DateTimeFormat, s)
	if err != nil {
		return nil, errutil.NewParseError(string(DateTime), value, err)
	}
	return t.UTC(), nil
}

func (p *Parsers) parseString(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case time.Time:
		return v.UTC().Format(p.DateTimeFormat), nil
	case string:
		return v, nil
	case int:
		return strconv.FormatFloat(float64(v), 'g', -1, 64), nil
	case int64:
		return strconv.FormatFloat(float64(v), 'g', -1, 64), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 64), nil
	case bool:
		if v {
			return "True", nil
		}
		return "False", nil
	default:
		return fmt.Sprint(value), nil
	}
}

func (p *Parsers) parseDict(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if m, ok := value.(map[string]any); ok {
		return m, nil
	}
	return nil, errutil.NewParseError(string(Dict), value, fmt.Errorf("value must be a dict"))
}

func (p *Parsers) parseList(value any, t Type, elem func(any) (any, error)) (any, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, errutil.NewParseError(string(t), value, fmt.Errorf("value must be a list"))
	}
	out := make([]any, len(items))
	for i, item := range items {
		parsed, err := elem(item)
		if err != nil {
			return nil, err
		}
		out[i] = parsed
	}
	return out, nil
}
