// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package pathlang implements the JSON dot-and-bracket path language:
// Get reads a value out of a JSON-shaped Go value
// (nil/bool/float64/string/[]any/map[string]any) and Set writes one in,
// without mutating its input.
//
// Segmentation (splitting the specifier on unescaped dots) is lexed
// with participle: Go's regexp package cannot express "a dot not
// preceded by a backslash" without lookbehind, which RE2 does not
// support, so a linear token scanner is the natural fit rather than a
// workaround regex. The bracket/slice sub-grammar inside a segment is
// small and fully anchored (no escaping within it), so it is read
// directly off segment text in get.go/set.go rather than through a
// second grammar.
package pathlang

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// segLexer tokenizes a path specifier into escaped-dot, dot, and plain
// text runs. Longer patterns are listed first so the escaped dot is not
// swallowed by the bare-backslash fallback.
var segLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "EscDot", Pattern: `\\\.`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Text", Pattern: `[^.\\]+`},
	{Name: "Backslash", Pattern: `\\`},
})

var segSymbols = invertSymbols(segLexer.Symbols())

func invertSymbols(symbols map[string]lexer.TokenType) map[lexer.TokenType]string {
	out := make(map[lexer.TokenType]string, len(symbols))
	for name, typ := range symbols {
		out[typ] = name
	}
	return out
}

// splitSegments splits spec on unescaped dots, unescaping "\." to "."
// within each resulting segment.
func splitSegments(spec string) ([]string, error) {
	tokens, err := segLexer.LexString("", spec)
	if err != nil {
		return nil, err
	}

	var segments []string
	var current strings.Builder
	for _, tok := range tokens {
		if tok.EOF() {
			continue
		}
		switch segSymbols[tok.Type] {
		case "EscDot":
			current.WriteByte('.')
		case "Dot":
			segments = append(segments, current.String())
			current.Reset()
		default: // "Text", "Backslash"
			current.WriteString(tok.Value)
		}
	}
	segments = append(segments, current.String())
	return segments, nil
}
