package parser

import (
	"kielo/internal/ast"
	"kielo/internal/diag"
	"kielo/internal/token"
	"kielo/internal/types"
)

// parseVarDecl parses
//
//	var name [: Type] = expr
//	var name(params) [: (T, ...) => T] = { ... }
//
// The value of a function declaration must be a block; that is
// enforced here, at parse time.
func (p *parser) parseVarDecl() (ast.Expr, error) {
	varTok := p.advance() // var

	nameTok := p.peek()
	if nameTok.Kind != token.Identifier {
		return nil, diag.Errorf(diag.SynExpectIdentifier, nameTok.Pos,
			"expected a name after \"var\", but got %q", nameTok.Text)
	}
	p.advance()

	if p.at("(") {
		return p.parseFnDecl(varTok, nameTok)
	}

	var ann types.Type
	if p.at(":") {
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		ann = t
	}

	if _, err := p.expect("="); err != nil {
		return nil, err
	}
	value, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	return withPos(&ast.VarDecl{Name: nameTok.Text, TypeAnn: ann, Value: value}, varTok.Pos), nil
}

func (p *parser) parseFnDecl(varTok, nameTok token.Token) (ast.Expr, error) {
	p.advance() // (

	var params []ast.Param
	if !p.at(")") {
		for {
			paramTok := p.peek()
			if paramTok.Kind != token.Identifier {
				return nil, diag.Errorf(diag.SynExpectIdentifier, paramTok.Pos,
					"expected a parameter name, but got %q", paramTok.Text)
			}
			p.advance()
			param := ast.Param{Name: paramTok.Text, Loc: paramTok.Pos}
			if p.at(":") {
				p.advance()
				t, err := p.parseType()
				if err != nil {
					return nil, err
				}
				param.Type = t
			}
			params = append(params, param)
			if !p.at(",") {
				break
			}
			p.advance() // ,
		}
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}

	var ann types.Type
	if p.at(":") {
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		ann = t
	}

	if _, err := p.expect("="); err != nil {
		return nil, err
	}
	if !p.at("{") {
		return nil, diag.Errorf(diag.SynFnBodyNotBlock, p.peek().Pos,
			"the value of a function declaration must be a \"{\" block")
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	fn := withPos(&ast.FnDef{
		Name:   nameTok.Text,
		Params: params,
		Body:   body.(*ast.Block),
	}, nameTok.Pos)
	return withPos(&ast.VarDecl{Name: nameTok.Text, TypeAnn: ann, Value: fn}, varTok.Pos), nil
}

// parseType parses a scalar type name (Int, Bool, Unit) or a function
// type (T, ...) => T. Function types must name a return type.
func (p *parser) parseType() (types.Type, error) {
	tok := p.peek()
	if tok.Is("(") {
		p.advance()
		var params []types.Type
		if !p.at(")") {
			for {
				t, err := p.parseType()
				if err != nil {
					return nil, err
				}
				params = append(params, t)
				if !p.at(",") {
					break
				}
				p.advance() // ,
			}
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
		if !p.at("=>") {
			return nil, diag.Errorf(diag.SynMissingReturnType, p.peek().Pos,
				"a function type must declare a return type with \"=>\"")
		}
		p.advance() // =>
		result, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return types.NewFn(result, params...), nil
	}

	switch tok.Text {
	case "Int":
		p.advance()
		return types.Int, nil
	case "Bool":
		p.advance()
		return types.Bool, nil
	case "Unit":
		p.advance()
		return types.Unit, nil
	default:
		return nil, diag.Errorf(diag.SynBadTypeAnnotation, tok.Pos,
			"expected a type, but got %q", tok.Text)
	}
}
