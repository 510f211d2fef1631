// Package parser builds the AST from a token stream with recursive
// descent and precedence climbing. Parsing is fail-fast: the first
// syntax error aborts with a diag.Error.
package parser

import (
	"slices"
	"strings"

	"kielo/internal/ast"
	"kielo/internal/diag"
	"kielo/internal/source"
	"kielo/internal/token"
)

// parser holds the cursor state for one token sequence.
type parser struct {
	toks []token.Token
	pos  int
	last token.Token // last consumed token; drives the block separator rule
}

// Parse parses a complete top-level sequence. Empty input yields
// *ast.Empty. Unconsumed trailing tokens are an error.
func Parse(toks []token.Token) (ast.Expr, error) {
	if len(toks) == 0 {
		return &ast.Empty{}, nil
	}
	p := &parser{toks: toks}
	return p.parseTopLevel()
}

// peek returns the next token, or an End token positioned at the last
// real token once input is exhausted.
func (p *parser) peek() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return token.Token{Kind: token.End, Pos: p.toks[len(p.toks)-1].Pos}
}

func (p *parser) at(text string) bool {
	return p.peek().Is(text)
}

// advance consumes and returns the next token.
func (p *parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	p.last = tok
	return tok
}

// expect consumes the next token, requiring its text to be one of
// expected.
func (p *parser) expect(expected ...string) (token.Token, error) {
	tok := p.peek()
	if !slices.Contains(expected, tok.Text) {
		if len(expected) == 1 {
			return tok, p.errUnexpected(tok, "expected %q", expected[0])
		}
		quoted := make([]string, len(expected))
		for i, e := range expected {
			quoted[i] = `"` + e + `"`
		}
		return tok, p.errUnexpected(tok, "expected one of: %s", strings.Join(quoted, ", "))
	}
	return p.advance(), nil
}

func (p *parser) errUnexpected(tok token.Token, format string, args ...any) error {
	err := diag.Errorf(diag.SynUnexpectedToken, tok.Pos, format, args...)
	if tok.Kind == token.End {
		err.Diag.Message += ", but input ended"
	} else {
		err.Diag.Message += ", but got " + `"` + tok.Text + `"`
	}
	return err
}

// withPos stamps a node with a source position and returns it.
func withPos[E ast.Expr](e E, pos source.Pos) E {
	type positioned interface{ SetPos(source.Pos) }
	if s, ok := any(e).(positioned); ok {
		s.SetPos(pos)
	}
	return e
}
