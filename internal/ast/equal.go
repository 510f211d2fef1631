package ast

import (
	"kielo/internal/types"
)

// Equal reports structural equality of two expression trees.
// Source positions and inferred types are deliberately excluded so
// tests can compare parser output against hand-built trees.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch an := a.(type) {
	case *Literal:
		bn, ok := b.(*Literal)
		if !ok || an.LitKind != bn.LitKind {
			return false
		}
		switch an.LitKind {
		case LitInt:
			return an.IntVal == bn.IntVal
		case LitBool:
			return an.BoolVal == bn.BoolVal
		case LitUnit:
			return true
		}
		return false
	case *Identifier:
		bn, ok := b.(*Identifier)
		return ok && an.Name == bn.Name
	case *BinaryOp:
		bn, ok := b.(*BinaryOp)
		return ok && an.Op == bn.Op && Equal(an.Left, bn.Left) && Equal(an.Right, bn.Right)
	case *UnaryOp:
		bn, ok := b.(*UnaryOp)
		return ok && an.Op == bn.Op && Equal(an.Target, bn.Target)
	case *IfThen:
		bn, ok := b.(*IfThen)
		return ok && Equal(an.Cond, bn.Cond) && Equal(an.Then, bn.Then)
	case *IfThenElse:
		bn, ok := b.(*IfThenElse)
		return ok && Equal(an.Cond, bn.Cond) && Equal(an.Then, bn.Then) && Equal(an.Else, bn.Else)
	case *WhileDo:
		bn, ok := b.(*WhileDo)
		return ok && Equal(an.Cond, bn.Cond) && Equal(an.Body, bn.Body)
	case *FnDef:
		bn, ok := b.(*FnDef)
		if !ok || an.Name != bn.Name || len(an.Params) != len(bn.Params) {
			return false
		}
		for i := range an.Params {
			if an.Params[i].Name != bn.Params[i].Name {
				return false
			}
			if !annEqual(an.Params[i].Type, bn.Params[i].Type) {
				return false
			}
		}
		return Equal(an.Body, bn.Body)
	case *VarDecl:
		bn, ok := b.(*VarDecl)
		return ok && an.Name == bn.Name && annEqual(an.TypeAnn, bn.TypeAnn) && Equal(an.Value, bn.Value)
	case *Call:
		bn, ok := b.(*Call)
		if !ok || an.Name != bn.Name || len(an.Args) != len(bn.Args) {
			return false
		}
		for i := range an.Args {
			if !Equal(an.Args[i], bn.Args[i]) {
				return false
			}
		}
		return true
	case *Block:
		bn, ok := b.(*Block)
		return ok && an.ReturnsLast == bn.ReturnsLast && exprsEqual(an.Exprs, bn.Exprs)
	case *TopLevel:
		bn, ok := b.(*TopLevel)
		return ok && an.ReturnsLast == bn.ReturnsLast && exprsEqual(an.Exprs, bn.Exprs)
	case *Empty:
		_, ok := b.(*Empty)
		return ok
	}
	return false
}

func exprsEqual(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// annEqual compares optional type annotations. Unlike inferred types,
// annotations are part of the written program, so they count.
func annEqual(a, b types.Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !types.Same(a, b) {
		return false
	}
	af, aok := a.(*types.Fn)
	bf, bok := b.(*types.Fn)
	if aok && bok {
		if len(af.Params) != len(bf.Params) {
			return false
		}
		for i := range af.Params {
			if !annEqual(af.Params[i], bf.Params[i]) {
				return false
			}
		}
		return annEqual(af.Result, bf.Result)
	}
	return true
}
