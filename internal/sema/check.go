// Package sema type-checks the AST. Checking is fail-fast and
// annotates every visited node with its inferred type as a side
// effect. Known loosenesses of the language are kept on purpose:
// function types compare by variant only, `while` conditions are not
// required to be Bool, and call sites are not checked against the
// callee's arity or parameter types.
package sema

import (
	"kielo/internal/ast"
	"kielo/internal/diag"
	"kielo/internal/symbols"
	"kielo/internal/types"
)

// Check type-checks root in a fresh root scope.
func Check(root ast.Expr) (types.Type, error) {
	return CheckIn(root, NewRootScope())
}

// CheckIn type-checks root in the given scope chain.
func CheckIn(root ast.Expr, scope *symbols.Scope[types.Type]) (types.Type, error) {
	return check(scope, root)
}

func check(scope *symbols.Scope[types.Type], node ast.Expr) (types.Type, error) {
	t, err := checkInner(scope, node)
	if err != nil {
		return nil, err
	}
	node.SetType(t)
	return t, nil
}

func checkInner(scope *symbols.Scope[types.Type], node ast.Expr) (types.Type, error) {
	switch n := node.(type) {
	case *ast.Empty:
		return types.Unit, nil

	case *ast.Literal:
		switch n.LitKind {
		case ast.LitBool:
			return types.Bool, nil
		case ast.LitInt:
			return types.Int, nil
		default:
			return types.Unit, nil
		}

	case *ast.Identifier:
		t, ok := scope.Lookup(n.Name)
		if !ok {
			return nil, diag.Errorf(diag.NameUndeclared, n.Pos(), "%q is not declared", n.Name)
		}
		return t, nil

	case *ast.Call:
		t, ok := scope.Lookup(n.Name)
		if !ok {
			return nil, diag.Errorf(diag.NameUndeclared, n.Pos(), "%q is not declared", n.Name)
		}
		fn, ok := t.(*types.Fn)
		if !ok {
			return nil, diag.Errorf(diag.TypeNotCallable, n.Pos(), "%q is not a function", n.Name)
		}
		// Arguments are checked for their own consistency only;
		// arity and parameter types are not matched against the
		// signature. A known gap, kept.
		for _, arg := range n.Args {
			if _, err := check(scope, arg); err != nil {
				return nil, err
			}
		}
		return fn.Result, nil

	case *ast.UnaryOp:
		return checkUnary(scope, n)

	case *ast.BinaryOp:
		return checkBinary(scope, n)

	case *ast.IfThen:
		condType, err := check(scope, n.Cond)
		if err != nil {
			return nil, err
		}
		if !types.Same(condType, types.Bool) {
			return nil, diag.Errorf(diag.TypeCondNotBool, n.Cond.Pos(),
				"if condition is %s, not Bool", condType)
		}
		// The then-branch's type is discarded; without an else the
		// conditional is always Unit.
		if _, err := check(scope, n.Then); err != nil {
			return nil, err
		}
		return types.Unit, nil

	case *ast.IfThenElse:
		condType, err := check(scope, n.Cond)
		if err != nil {
			return nil, err
		}
		if !types.Same(condType, types.Bool) {
			return nil, diag.Errorf(diag.TypeCondNotBool, n.Cond.Pos(),
				"if condition is %s, not Bool", condType)
		}
		thenType, err := check(scope, n.Then)
		if err != nil {
			return nil, err
		}
		elseType, err := check(scope, n.Else)
		if err != nil {
			return nil, err
		}
		if !types.Same(thenType, elseType) {
			return nil, diag.Errorf(diag.TypeBranchMismatch, n.Pos(),
				"then branch is %s but else branch is %s", thenType, elseType)
		}
		return thenType, nil

	case *ast.WhileDo:
		// Always Unit. The condition is not required to be Bool — a
		// documented looseness, not to be tightened silently.
		if _, err := check(scope, n.Cond); err != nil {
			return nil, err
		}
		if _, err := check(scope, n.Body); err != nil {
			return nil, err
		}
		return types.Unit, nil

	case *ast.VarDecl:
		return checkVarDecl(scope, n)

	case *ast.FnDef:
		return checkFnDef(scope, n)

	case *ast.Block:
		blockScope := symbols.NewScope(scope)
		var last types.Type = types.Unit
		for _, expr := range n.Exprs {
			t, err := check(blockScope, expr)
			if err != nil {
				return nil, err
			}
			last = t
		}
		if !n.ReturnsLast {
			return types.Unit, nil
		}
		if !types.IsBasic(last) {
			return nil, diag.Errorf(diag.TypeBlockResult, n.Pos(),
				"a block cannot produce a function value")
		}
		return last, nil

	case *ast.TopLevel:
		// Top level runs in the current scope; no child scope.
		var last types.Type = types.Unit
		for _, expr := range n.Exprs {
			t, err := check(scope, expr)
			if err != nil {
				return nil, err
			}
			last = t
		}
		if n.ReturnsLast {
			return last, nil
		}
		return types.Unit, nil
	}

	return nil, diag.Errorf(diag.UnknownCode, node.Pos(), "unhandled expression %T", node)
}

func checkUnary(scope *symbols.Scope[types.Type], n *ast.UnaryOp) (types.Type, error) {
	targetType, err := check(scope, n.Target)
	if err != nil {
		return nil, err
	}
	sig, ok := scope.Lookup("unary_" + n.Op)
	if !ok {
		return nil, diag.Errorf(diag.NameUndeclared, n.Pos(), "unknown unary operator %q", n.Op)
	}
	fn, ok := sig.(*types.Fn)
	if !ok {
		return nil, diag.Errorf(diag.TypeNotCallable, n.Pos(), "%q is not an operator", n.Op)
	}
	if len(fn.Params) != 1 {
		return nil, diag.Errorf(diag.TypeBadOperand, n.Pos(),
			"unary %q takes %d parameters, not 1", n.Op, len(fn.Params))
	}
	if !types.Same(targetType, fn.Params[0]) {
		return nil, diag.Errorf(diag.TypeBadOperand, n.Target.Pos(),
			"unary %q expects %s, but got %s", n.Op, fn.Params[0], targetType)
	}
	return fn.Result, nil
}

func checkBinary(scope *symbols.Scope[types.Type], n *ast.BinaryOp) (types.Type, error) {
	if n.Op == "=" {
		if _, ok := n.Left.(*ast.Identifier); !ok {
			return nil, diag.Errorf(diag.TypeAssignTarget, n.Left.Pos(),
				"only an identifier can be assigned to")
		}
	}

	leftType, err := check(scope, n.Left)
	if err != nil {
		return nil, err
	}
	rightType, err := check(scope, n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case "=":
		if !types.Same(leftType, rightType) {
			return nil, diag.Errorf(diag.TypeMismatch, n.Pos(),
				"cannot assign %s to a variable of type %s", rightType, leftType)
		}
		return leftType, nil
	case "==", "!=":
		if !types.Same(leftType, rightType) {
			return nil, diag.Errorf(diag.TypeMismatch, n.Pos(),
				"cannot compare %s with %s", leftType, rightType)
		}
		return types.Bool, nil
	}

	sig, ok := scope.Lookup(n.Op)
	if !ok {
		return nil, diag.Errorf(diag.NameUndeclared, n.Pos(), "unknown operator %q", n.Op)
	}
	fn, ok := sig.(*types.Fn)
	if !ok {
		return nil, diag.Errorf(diag.TypeNotCallable, n.Pos(), "%q is not an operator", n.Op)
	}
	// A block-scope declaration may shadow an operator with a
	// function of any arity; only two-parameter signatures apply here.
	if len(fn.Params) != 2 {
		return nil, diag.Errorf(diag.TypeBadOperand, n.Pos(),
			"operator %q takes %d parameters, not 2", n.Op, len(fn.Params))
	}
	if !types.Same(leftType, fn.Params[0]) {
		return nil, diag.Errorf(diag.TypeBadOperand, n.Left.Pos(),
			"operator %q expects %s, but the left operand is %s", n.Op, fn.Params[0], leftType)
	}
	if !types.Same(rightType, fn.Params[1]) {
		return nil, diag.Errorf(diag.TypeBadOperand, n.Right.Pos(),
			"operator %q expects %s, but the right operand is %s", n.Op, fn.Params[1], rightType)
	}
	return fn.Result, nil
}

func checkVarDecl(scope *symbols.Scope[types.Type], n *ast.VarDecl) (types.Type, error) {
	valueType, err := check(scope, n.Value)
	if err != nil {
		return nil, err
	}
	if n.TypeAnn != nil && !types.Same(n.TypeAnn, valueType) {
		return nil, diag.Errorf(diag.TypeMismatch, n.Pos(),
			"%q is declared as %s but initialized with %s", n.Name, n.TypeAnn, valueType)
	}
	if !scope.Declare(n.Name, valueType) {
		return nil, diag.Errorf(diag.NameRedeclared, n.Pos(),
			"%q is already declared in this scope", n.Name)
	}
	return types.Unit, nil
}

// checkFnDef checks a function body in a child scope holding the
// parameters and synthesizes the function's type. Unannotated
// parameters are assumed Int.
func checkFnDef(scope *symbols.Scope[types.Type], n *ast.FnDef) (types.Type, error) {
	fnScope := symbols.NewScope(scope)
	paramTypes := make([]types.Type, len(n.Params))
	for i, param := range n.Params {
		pt := param.Type
		if pt == nil {
			pt = types.Int
		}
		paramTypes[i] = pt
		if !fnScope.Declare(param.Name, pt) {
			return nil, diag.Errorf(diag.NameRedeclared, param.Loc,
				"duplicate parameter %q", param.Name)
		}
	}
	bodyType, err := check(fnScope, n.Body)
	if err != nil {
		return nil, err
	}
	return types.NewFn(bodyType, paramTypes...), nil
}
