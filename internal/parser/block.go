package parser

import (
	"kielo/internal/ast"
	"kielo/internal/diag"
	"kielo/internal/token"
)

// parseBlock parses `{ e; e; ... }`. The final expression keeps its
// value (ReturnsLast) when no ';' follows it. A missing ';' between
// two expressions is an error unless the first one ended in '}' — a
// block or conditional ending in '}' does not need one.
func (p *parser) parseBlock() (ast.Expr, error) {
	open, err := p.expect("{")
	if err != nil {
		return nil, err
	}

	var exprs []ast.Expr
	returnsLast := false
	for !p.at("}") {
		if p.peek().Kind == token.End {
			return nil, p.errUnexpected(p.peek(), "expected %q", "}")
		}
		expr, err := p.parseExpr(true)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)

		if p.at(";") {
			p.advance()
			continue
		}
		if p.at("}") {
			returnsLast = true
			break
		}
		if p.last.Is("}") {
			continue
		}
		return nil, diag.Errorf(diag.SynMissingSemicolon, p.peek().Pos,
			"expected \";\" or \"}\", but got %q", p.peek().Text)
	}
	p.advance() // }
	return withPos(&ast.Block{Exprs: exprs, ReturnsLast: returnsLast}, open.Pos), nil
}

// parseTopLevel parses the braceless statement sequence covering the
// whole input. A single expression with no trailing ';' is returned
// bare instead of wrapped in a TopLevel node.
func (p *parser) parseTopLevel() (ast.Expr, error) {
	startPos := p.peek().Pos

	var exprs []ast.Expr
	returnsLast := false
	for p.peek().Kind != token.End {
		expr, err := p.parseExpr(true)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)

		if p.at(";") {
			p.advance()
			continue
		}
		if p.peek().Kind == token.End {
			returnsLast = true
			break
		}
		if p.last.Is("}") {
			continue
		}
		return nil, diag.Errorf(diag.SynTrailingTokens, p.peek().Pos,
			"unexpected trailing input starting at %q", p.peek().Text)
	}

	if len(exprs) == 1 && returnsLast {
		return exprs[0], nil
	}
	return withPos(&ast.TopLevel{Exprs: exprs, ReturnsLast: returnsLast}, startPos), nil
}
