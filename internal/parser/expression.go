package parser

import (
	"slices"
	"strconv"

	"kielo/internal/ast"
	"kielo/internal/diag"
	"kielo/internal/token"
)

// parseExpr parses a full expression. allowVars is set only for
// statement positions (top level and block bodies); operands,
// conditions and loop bodies parse with it cleared.
func (p *parser) parseExpr(allowVars bool) (ast.Expr, error) {
	return p.parseBinary(0, allowVars)
}

// parseBinary climbs the precedence levels. Operands one level up,
// then a left-associative operator loop — except at the assignment
// level, where the right-hand side re-enters the full grammar, making
// `a = b = c` parse right-associatively.
func (p *parser) parseBinary(level int, allowVars bool) (ast.Expr, error) {
	if level == len(precLevels) {
		return p.parseFactor(allowVars)
	}

	left, err := p.parseBinary(level+1, allowVars)
	if err != nil {
		return nil, err
	}

	for slices.Contains(precLevels[level], p.peek().Text) {
		opTok := p.advance()

		if level == assignLevel {
			right, err := p.parseBinary(assignLevel, false)
			if err != nil {
				return nil, err
			}
			return withPos(&ast.BinaryOp{Left: left, Op: opTok.Text, Right: right}, opTok.Pos), nil
		}

		right, err := p.parseBinary(level+1, false)
		if err != nil {
			return nil, err
		}
		left = withPos(&ast.BinaryOp{Left: left, Op: opTok.Text, Right: right}, opTok.Pos)
	}
	return left, nil
}

func (p *parser) parseFactor(allowVars bool) (ast.Expr, error) {
	tok := p.peek()
	switch {
	case tok.Is("("):
		return p.parseParenthesized()
	case tok.Is("{"):
		return p.parseBlock()
	case tok.Is("if"):
		return p.parseConditional()
	case tok.Is("while"):
		return p.parseWhile()
	case tok.Is("var"):
		if !allowVars {
			return nil, diag.Errorf(diag.SynVarNotAllowed, tok.Pos,
				"variable declarations are only allowed at the top level and in block bodies")
		}
		return p.parseVarDecl()
	case slices.Contains(unaryOps, tok.Text):
		opTok := p.advance()
		target, err := p.parseFactor(false)
		if err != nil {
			return nil, err
		}
		return withPos(&ast.UnaryOp{Op: opTok.Text, Target: target}, opTok.Pos), nil
	case tok.Kind == token.Literal:
		return p.parseLiteral()
	case tok.Kind == token.Identifier:
		return p.parseIdentifierOrCall()
	default:
		return nil, diag.Errorf(diag.SynExpectExpression, tok.Pos,
			"expected an expression, but got %q", tok.Text)
	}
}

func (p *parser) parseParenthesized() (ast.Expr, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *parser) parseConditional() (ast.Expr, error) {
	ifTok := p.advance() // if
	cond, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("then"); err != nil {
		return nil, err
	}
	then, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	if !p.at("else") {
		return withPos(&ast.IfThen{Cond: cond, Then: then}, ifTok.Pos), nil
	}
	p.advance() // else
	els, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	return withPos(&ast.IfThenElse{Cond: cond, Then: then, Else: els}, ifTok.Pos), nil
}

func (p *parser) parseWhile() (ast.Expr, error) {
	whileTok := p.advance() // while
	cond, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("do"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	return withPos(&ast.WhileDo{Cond: cond, Body: body}, whileTok.Pos), nil
}

func (p *parser) parseLiteral() (ast.Expr, error) {
	tok := p.advance()
	switch tok.Text {
	case "true", "false":
		return withPos(&ast.Literal{LitKind: ast.LitBool, BoolVal: tok.Text == "true"}, tok.Pos), nil
	default:
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, diag.Errorf(diag.SynExpectIntLiteral, tok.Pos,
				"invalid integer literal %q", tok.Text)
		}
		return withPos(&ast.Literal{LitKind: ast.LitInt, IntVal: v}, tok.Pos), nil
	}
}

// parseIdentifierOrCall parses a bare identifier, reinterpreting it as
// a function call when it is immediately followed by '('.
func (p *parser) parseIdentifierOrCall() (ast.Expr, error) {
	nameTok := p.advance()
	if !p.at("(") {
		return withPos(&ast.Identifier{Name: nameTok.Text}, nameTok.Pos), nil
	}
	p.advance() // (

	var args []ast.Expr
	if !p.at(")") {
		for {
			arg, err := p.parseExpr(false)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.at(",") {
				break
			}
			p.advance() // ,
		}
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return withPos(&ast.Call{Name: nameTok.Text, Args: args}, nameTok.Pos), nil
}
