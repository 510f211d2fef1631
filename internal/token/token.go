// Package token defines the lexical token vocabulary of Kielo.
// Invariants:
//   - Other-kind tokens (whitespace, comments) never appear in the token
//     stream handed to the parser; the lexer drops them.
//   - Keywords (if, while, var, ...) are identifiers. They are recognized
//     by the parser through Token.Text, not by a dedicated kind.
package token

import (
	"fmt"

	"kielo/internal/source"
)

// Kind represents the category of a source token.
type Kind uint8

const (
	// Literal is an integer or boolean literal.
	Literal Kind = iota
	// Identifier is a name (including keywords).
	Identifier
	// Operator is one of == != <= >= < > + - * / % =.
	Operator
	// Punctuation is one of ( ) { } , ; : =>.
	Punctuation
	// Other is skipped trivia; never emitted by the lexer.
	Other
	// End marks exhausted input. Synthesized by the parser, never lexed.
	End
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Identifier:
		return "identifier"
	case Operator:
		return "operator"
	case Punctuation:
		return "punctuation"
	case Other:
		return "other"
	case End:
		return "end"
	}
	return "unknown"
}

// Token is a single source token with its position.
type Token struct {
	Text string
	Kind Kind
	Pos  source.Pos
}

func (t Token) String() string {
	return fmt.Sprintf("Token text=%s type=%s", t.Text, t.Kind)
}

// Is reports whether the token's text equals s.
func (t Token) Is(s string) bool {
	return t.Text == s
}
