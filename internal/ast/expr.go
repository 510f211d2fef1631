// Package ast defines the expression tree shared by every compiler stage.
// The set of variants is closed; stages dispatch with exhaustive type
// switches. Every node carries a source position for diagnostics and,
// after type checking, its inferred type. Neither participates in
// structural equality (see Equal).
package ast

import (
	"kielo/internal/source"
	"kielo/internal/types"
)

// Expr is the closed sum of Kielo expression nodes.
type Expr interface {
	isExpr()
	// Pos is the node's source position; source.None for synthetic nodes.
	Pos() source.Pos
	// Type is the inferred type. Nil until the type checker has run.
	Type() types.Type
	// SetType records the inferred type during type checking.
	SetType(types.Type)
}

type base struct {
	Loc source.Pos
	Typ types.Type
}

func (b *base) isExpr()              {}
func (b *base) Pos() source.Pos      { return b.Loc }
func (b *base) SetPos(p source.Pos)  { b.Loc = p }
func (b *base) Type() types.Type     { return b.Typ }
func (b *base) SetType(t types.Type) { b.Typ = t }

// LitKind discriminates literal payloads.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitBool
	LitUnit
)

// Literal is an integer, boolean or unit constant.
type Literal struct {
	base
	LitKind LitKind
	IntVal  int64
	BoolVal bool
}

// Identifier is a name reference.
type Identifier struct {
	base
	Name string
}

// BinaryOp is `Left op Right`. Op is the source operator text,
// `=` included.
type BinaryOp struct {
	base
	Left  Expr
	Op    string
	Right Expr
}

// UnaryOp is `op Target` for `-` and `not`.
type UnaryOp struct {
	base
	Op     string
	Target Expr
}

// IfThen is a conditional without an else branch.
type IfThen struct {
	base
	Cond Expr
	Then Expr
}

// IfThenElse is a conditional with both branches.
type IfThenElse struct {
	base
	Cond Expr
	Then Expr
	Else Expr
}

// WhileDo is `while Cond do Body`.
type WhileDo struct {
	base
	Cond Expr
	Body Expr
}

// Param is a function parameter, optionally annotated.
type Param struct {
	Name string
	Type types.Type // nil when unannotated
	Loc  source.Pos
}

// FnDef is a function definition appearing as the value of a
// `var name(params) = { ... }` declaration.
type FnDef struct {
	base
	Name   string
	Params []Param
	Body   *Block
}

// VarDecl is a `var` declaration. TypeAnn is nil when the declaration
// has no annotation. Value is a *FnDef for function declarations.
type VarDecl struct {
	base
	Name    string
	TypeAnn types.Type
	Value   Expr
}

// Call is a function call `name(args...)`.
type Call struct {
	base
	Name string
	Args []Expr
}

// Block is a `{ ... }` sequence. ReturnsLast reports whether the final
// expression's value escapes the block (no trailing ';') or is
// discarded (trailing ';', implicit Unit result).
type Block struct {
	base
	Exprs       []Expr
	ReturnsLast bool
}

// TopLevel is the braceless top-level sequence. Same value rule as Block.
type TopLevel struct {
	base
	Exprs       []Expr
	ReturnsLast bool
}

// Empty is the parse of empty input.
type Empty struct {
	base
}
