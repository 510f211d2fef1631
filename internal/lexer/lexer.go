// Package lexer turns Kielo source text into a flat token stream.
// It is a simple anchored-regex matcher: each pattern class is tried in
// order at the current offset and the first match wins. Trivia
// (whitespace and # comments) is consumed but never emitted.
package lexer

import (
	"regexp"

	"kielo/internal/diag"
	"kielo/internal/source"
	"kielo/internal/token"
)

type pattern struct {
	kind token.Kind
	re   *regexp.Regexp
}

// Pattern order matters: bool literals before identifiers (with a word
// boundary so `trueish` stays an identifier), punctuation before
// operators so `=>` is not split into `=` `>`.
var patterns = []pattern{
	{token.Literal, regexp.MustCompile(`^[0-9]+`)},
	{token.Literal, regexp.MustCompile(`^(?:true|false)\b`)},
	{token.Identifier, regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9]*`)},
	{token.Punctuation, regexp.MustCompile(`^(?:=>|[(){},;:])`)},
	{token.Operator, regexp.MustCompile(`^(?:==|!=|<=|>=|[<>+\-*/%=])`)},
	{token.Other, regexp.MustCompile(`^(?:\s+|#[^\n]*)`)},
}

// Tokenize lexes src into tokens with 1-based line/column positions.
// Other-kind matches are dropped. A character no pattern matches is a
// fatal lexical error.
func Tokenize(src string) ([]token.Token, error) {
	var out []token.Token
	pos := source.Pos{Line: 1, Column: 1}

	rest := src
	for len(rest) > 0 {
		matched := false
		for _, p := range patterns {
			text := p.re.FindString(rest)
			if text == "" {
				continue
			}
			if p.kind != token.Other {
				out = append(out, token.Token{Text: text, Kind: p.kind, Pos: pos})
			}
			pos = pos.Advance(text)
			rest = rest[len(text):]
			matched = true
			break
		}
		if !matched {
			return nil, diag.Errorf(diag.LexUnknownChar, pos, "unknown character %q", rest[0])
		}
	}
	return out, nil
}
