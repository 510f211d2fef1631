package parser

import (
	"testing"

	"kielo/internal/ast"
	"kielo/internal/diag"
	"kielo/internal/lexer"
	"kielo/internal/types"
)

func parseSource(t *testing.T, src string) (ast.Expr, error) {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return Parse(toks)
}

func mustParse(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, err := parseSource(t, src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return expr
}

func intLit(v int64) *ast.Literal   { return &ast.Literal{LitKind: ast.LitInt, IntVal: v} }
func boolLit(v bool) *ast.Literal   { return &ast.Literal{LitKind: ast.LitBool, BoolVal: v} }
func ident(n string) *ast.Identifier { return &ast.Identifier{Name: n} }

func requireEqual(t *testing.T, src string, want ast.Expr) {
	t.Helper()
	got := mustParse(t, src)
	if !ast.Equal(got, want) {
		t.Errorf("Parse(%q) = %+v, want %+v", src, got, want)
	}
}

func TestEmptyInput(t *testing.T) {
	requireEqual(t, "", &ast.Empty{})
	requireEqual(t, "  # just a comment\n", &ast.Empty{})
}

func TestPrecedence(t *testing.T) {
	requireEqual(t, "1 + 2 * 3",
		&ast.BinaryOp{
			Left:  intLit(1),
			Op:    "+",
			Right: &ast.BinaryOp{Left: intLit(2), Op: "*", Right: intLit(3)},
		})

	requireEqual(t, "(1 + 2) * 3",
		&ast.BinaryOp{
			Left:  &ast.BinaryOp{Left: intLit(1), Op: "+", Right: intLit(2)},
			Op:    "*",
			Right: intLit(3),
		})

	// or < and < equality < comparison < additive
	requireEqual(t, "a or b and c == d < e + f",
		&ast.BinaryOp{
			Left: ident("a"),
			Op:   "or",
			Right: &ast.BinaryOp{
				Left: ident("b"),
				Op:   "and",
				Right: &ast.BinaryOp{
					Left: ident("c"),
					Op:   "==",
					Right: &ast.BinaryOp{
						Left: ident("d"),
						Op:   "<",
						Right: &ast.BinaryOp{
							Left: ident("e"), Op: "+", Right: ident("f"),
						},
					},
				},
			},
		})
}

func TestLeftAssociativity(t *testing.T) {
	requireEqual(t, "1 - 2 - 3",
		&ast.BinaryOp{
			Left: &ast.BinaryOp{Left: intLit(1), Op: "-", Right: intLit(2)},
			Op:   "-", Right: intLit(3),
		})
	requireEqual(t, "8 / 4 / 2",
		&ast.BinaryOp{
			Left: &ast.BinaryOp{Left: intLit(8), Op: "/", Right: intLit(4)},
			Op:   "/", Right: intLit(2),
		})
}

func TestRightAssociativeAssignment(t *testing.T) {
	requireEqual(t, "a = b = c",
		&ast.BinaryOp{
			Left: ident("a"),
			Op:   "=",
			Right: &ast.BinaryOp{
				Left: ident("b"), Op: "=", Right: ident("c"),
			},
		})

	// Assignment binds loosest.
	requireEqual(t, "a = b + 1",
		&ast.BinaryOp{
			Left:  ident("a"),
			Op:    "=",
			Right: &ast.BinaryOp{Left: ident("b"), Op: "+", Right: intLit(1)},
		})
}

func TestUnary(t *testing.T) {
	requireEqual(t, "-5", &ast.UnaryOp{Op: "-", Target: intLit(5)})
	requireEqual(t, "not true", &ast.UnaryOp{Op: "not", Target: boolLit(true)})
	requireEqual(t, "not not b",
		&ast.UnaryOp{Op: "not", Target: &ast.UnaryOp{Op: "not", Target: ident("b")}})
	requireEqual(t, "1 - -2",
		&ast.BinaryOp{Left: intLit(1), Op: "-", Right: &ast.UnaryOp{Op: "-", Target: intLit(2)}})
}

func TestConditionals(t *testing.T) {
	requireEqual(t, "if a then b",
		&ast.IfThen{Cond: ident("a"), Then: ident("b")})
	requireEqual(t, "if a then b else c",
		&ast.IfThenElse{Cond: ident("a"), Then: ident("b"), Else: ident("c")})
	// Conditionals nest as expressions.
	requireEqual(t, "1 + if a then 2 else 3",
		&ast.BinaryOp{
			Left: intLit(1),
			Op:   "+",
			Right: &ast.IfThenElse{Cond: ident("a"), Then: intLit(2), Else: intLit(3)},
		})
}

func TestWhile(t *testing.T) {
	requireEqual(t, "while a < 10 do a = a + 1",
		&ast.WhileDo{
			Cond: &ast.BinaryOp{Left: ident("a"), Op: "<", Right: intLit(10)},
			Body: &ast.BinaryOp{
				Left:  ident("a"),
				Op:    "=",
				Right: &ast.BinaryOp{Left: ident("a"), Op: "+", Right: intLit(1)},
			},
		})
}

func TestFunctionCalls(t *testing.T) {
	requireEqual(t, "f()", &ast.Call{Name: "f"})
	requireEqual(t, "f(1)", &ast.Call{Name: "f", Args: []ast.Expr{intLit(1)}})
	requireEqual(t, "f(1, g(2), x + 1)",
		&ast.Call{Name: "f", Args: []ast.Expr{
			intLit(1),
			&ast.Call{Name: "g", Args: []ast.Expr{intLit(2)}},
			&ast.BinaryOp{Left: ident("x"), Op: "+", Right: intLit(1)},
		}})
}

func TestBlocks(t *testing.T) {
	requireEqual(t, "{ a }",
		&ast.Block{Exprs: []ast.Expr{ident("a")}, ReturnsLast: true})
	requireEqual(t, "{ a; }",
		&ast.Block{Exprs: []ast.Expr{ident("a")}, ReturnsLast: false})
	requireEqual(t, "{ }",
		&ast.Block{})
	requireEqual(t, "{ a; b }",
		&ast.Block{Exprs: []ast.Expr{ident("a"), ident("b")}, ReturnsLast: true})
}

func TestBlockSeparatorRule(t *testing.T) {
	// Two adjacent expressions need a ';' ...
	if _, err := parseSource(t, "{ a b }"); err == nil {
		t.Error("expected a syntax error for { a b }")
	}
	// ... unless the first one ends in '}'.
	requireEqual(t, "{ if true then { a } b }",
		&ast.Block{
			Exprs: []ast.Expr{
				&ast.IfThen{
					Cond: boolLit(true),
					Then: &ast.Block{Exprs: []ast.Expr{ident("a")}, ReturnsLast: true},
				},
				ident("b"),
			},
			ReturnsLast: true,
		})
}

func TestTopLevel(t *testing.T) {
	// Single expression without ';' comes back bare.
	requireEqual(t, "1 + 2",
		&ast.BinaryOp{Left: intLit(1), Op: "+", Right: intLit(2)})

	requireEqual(t, "a;",
		&ast.TopLevel{Exprs: []ast.Expr{ident("a")}, ReturnsLast: false})

	requireEqual(t, "var x = 1; x + 2",
		&ast.TopLevel{
			Exprs: []ast.Expr{
				&ast.VarDecl{Name: "x", Value: intLit(1)},
				&ast.BinaryOp{Left: ident("x"), Op: "+", Right: intLit(2)},
			},
			ReturnsLast: true,
		})
}

func TestVarDeclarations(t *testing.T) {
	// Single expression, no trailing ';': returned bare.
	requireEqual(t, "var x = 1",
		&ast.VarDecl{Name: "x", Value: intLit(1)})
	requireEqual(t, "var x: Int = 1;",
		&ast.TopLevel{Exprs: []ast.Expr{
			&ast.VarDecl{Name: "x", TypeAnn: types.Int, Value: intLit(1)},
		}, ReturnsLast: false})
	requireEqual(t, "var b: Bool = true;",
		&ast.TopLevel{Exprs: []ast.Expr{
			&ast.VarDecl{Name: "b", TypeAnn: types.Bool, Value: boolLit(true)},
		}, ReturnsLast: false})
}

func TestFnDeclarations(t *testing.T) {
	requireEqual(t, "var f(x) = { x + 1 };",
		&ast.TopLevel{Exprs: []ast.Expr{
			&ast.VarDecl{Name: "f", Value: &ast.FnDef{
				Name:   "f",
				Params: []ast.Param{{Name: "x"}},
				Body: &ast.Block{
					Exprs:       []ast.Expr{&ast.BinaryOp{Left: ident("x"), Op: "+", Right: intLit(1)}},
					ReturnsLast: true,
				},
			}},
		}, ReturnsLast: false})

	requireEqual(t, "var f(x: Int, b: Bool): (Int, Bool) => Int = { x };",
		&ast.TopLevel{Exprs: []ast.Expr{
			&ast.VarDecl{
				Name:    "f",
				TypeAnn: types.NewFn(types.Int, types.Int, types.Bool),
				Value: &ast.FnDef{
					Name:   "f",
					Params: []ast.Param{{Name: "x", Type: types.Int}, {Name: "b", Type: types.Bool}},
					Body:   &ast.Block{Exprs: []ast.Expr{ident("x")}, ReturnsLast: true},
				},
			},
		}, ReturnsLast: false})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"trailing_garbage", "1 + 2 xd", diag.SynTrailingTokens},
		{"missing_operand", "1 +", diag.SynExpectExpression},
		{"unclosed_paren", "(1 + 2", diag.SynUnexpectedToken},
		{"unclosed_block", "{ a;", diag.SynUnexpectedToken},
		{"var_in_if_cond", "if var x = 1 then 2", diag.SynVarNotAllowed},
		{"var_in_while_body", "while true do var x = 1", diag.SynVarNotAllowed},
		{"var_in_operand", "1 + var x = 2", diag.SynVarNotAllowed},
		{"var_missing_name", "var = 1", diag.SynExpectIdentifier},
		{"bad_annotation", "var x: Float = 1", diag.SynBadTypeAnnotation},
		{"fn_type_without_return", "var f(x): (Int) = { x }", diag.SynMissingReturnType},
		{"fn_body_not_block", "var f(x) = x + 1", diag.SynFnBodyNotBlock},
		{"block_missing_semicolon", "{ a b }", diag.SynMissingSemicolon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSource(t, tt.src)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.src)
			}
			if diag.CodeOf(err) != tt.code {
				t.Errorf("Parse(%q) code = %v, want %v (err: %v)", tt.src, diag.CodeOf(err), tt.code, err)
			}
		})
	}
}

func TestParseDeterminism(t *testing.T) {
	src := "var n = read_int(); var acc = 1; while n > 1 do { acc = acc * n; n = n - 1 }; acc"
	first := mustParse(t, src)
	second := mustParse(t, src)
	if !ast.Equal(first, second) {
		t.Error("parsing the same tokens twice should yield structurally equal trees")
	}
}
