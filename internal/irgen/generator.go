// Package irgen lowers a type-annotated AST into the flat IR
// instruction sequence. Synthetic variables are named v0, v1, ... and
// labels L0, L1, ..., each picked as the lowest-numbered name absent
// from the reserved set. The search is bounded: exhausting it is a
// fatal codegen-limit error rather than an unbounded namespace.
package irgen

import (
	"fmt"

	"kielo/internal/ast"
	"kielo/internal/diag"
	"kielo/internal/ir"
	"kielo/internal/sema"
	"kielo/internal/source"
	"kielo/internal/symbols"
	"kielo/internal/types"
)

// maxFreshNames bounds the synthetic namespace per compilation unit.
const maxFreshNames = 100

type generator struct {
	reserved map[string]bool
	ins      []ir.Instr
}

// DefaultReserved returns the builtin names every root scope reserves.
func DefaultReserved() []string {
	return sema.BuiltinNames()
}

// Generate lowers root into IR. reserved seeds a root scope binding
// every builtin name to an IR variable of the same name, keeping
// synthesized names clear of them. The root expression must already be
// type-annotated: its type decides the final print call.
func Generate(reserved []string, root ast.Expr) ([]ir.Instr, error) {
	g := &generator{reserved: make(map[string]bool, len(reserved))}
	rootScope := symbols.NewScope[ir.Var](nil)
	for _, name := range reserved {
		g.reserved[name] = true
		rootScope.Declare(name, ir.Var{Name: name})
	}

	result, err := g.visit(rootScope, root)
	if err != nil {
		return nil, err
	}

	// Print the program's result according to its checked type.
	switch {
	case types.Same(root.Type(), types.Int):
		if err := g.emitResultPrint(rootScope, root, "print_int", result); err != nil {
			return nil, err
		}
	case types.Same(root.Type(), types.Bool):
		if err := g.emitResultPrint(rootScope, root, "print_bool", result); err != nil {
			return nil, err
		}
	}
	return g.ins, nil
}

func (g *generator) emitResultPrint(scope *symbols.Scope[ir.Var], root ast.Expr, fn string, result ir.Var) error {
	fnVar, _ := scope.Lookup(fn)
	dest, err := g.newVar(root.Pos())
	if err != nil {
		return err
	}
	g.emit(ir.MakeCall(root.Pos(), fnVar, []ir.Var{result}, dest))
	return nil
}

func (g *generator) emit(instr ir.Instr) {
	g.ins = append(g.ins, instr)
}

func (g *generator) newVar(pos source.Pos) (ir.Var, error) {
	for i := 0; i < maxFreshNames; i++ {
		name := fmt.Sprintf("v%d", i)
		if !g.reserved[name] {
			g.reserved[name] = true
			return ir.Var{Name: name}, nil
		}
	}
	return ir.Var{}, diag.Errorf(diag.GenOutOfNames, pos, "ran out of IR variable names")
}

func (g *generator) newLabel(pos source.Pos) (ir.Label, error) {
	for i := 0; i < maxFreshNames; i++ {
		name := fmt.Sprintf("L%d", i)
		if !g.reserved[name] {
			g.reserved[name] = true
			return ir.Label{Name: name}, nil
		}
	}
	return ir.Label{}, diag.Errorf(diag.GenOutOfNames, pos, "ran out of IR label names")
}

// visit lowers expr, appending instructions, and returns the variable
// holding its value (ir.Unit for Unit-typed constructs).
func (g *generator) visit(scope *symbols.Scope[ir.Var], expr ast.Expr) (ir.Var, error) {
	switch n := expr.(type) {
	case *ast.Empty:
		return ir.Unit, nil

	case *ast.Literal:
		switch n.LitKind {
		case ast.LitInt:
			dest, err := g.newVar(n.Pos())
			if err != nil {
				return ir.Var{}, err
			}
			g.emit(ir.MakeLoadIntConst(n.Pos(), n.IntVal, dest))
			return dest, nil
		case ast.LitBool:
			dest, err := g.newVar(n.Pos())
			if err != nil {
				return ir.Var{}, err
			}
			g.emit(ir.MakeLoadBoolConst(n.Pos(), n.BoolVal, dest))
			return dest, nil
		default:
			return ir.Unit, nil
		}

	case *ast.Identifier:
		v, ok := scope.Lookup(n.Name)
		if !ok {
			return ir.Var{}, diag.Errorf(diag.NameUndeclared, n.Pos(), "%q has no IR variable", n.Name)
		}
		return v, nil

	case *ast.UnaryOp:
		opVar, ok := scope.Lookup("unary_" + n.Op)
		if !ok {
			return ir.Var{}, diag.Errorf(diag.NameUndeclared, n.Pos(), "unknown unary operator %q", n.Op)
		}
		target, err := g.visit(scope, n.Target)
		if err != nil {
			return ir.Var{}, err
		}
		dest, err := g.newVar(n.Pos())
		if err != nil {
			return ir.Var{}, err
		}
		g.emit(ir.MakeCall(n.Pos(), opVar, []ir.Var{target}, dest))
		return dest, nil

	case *ast.BinaryOp:
		return g.visitBinary(scope, n)

	case *ast.IfThen:
		thenLabel, err := g.newLabel(n.Pos())
		if err != nil {
			return ir.Var{}, err
		}
		endLabel, err := g.newLabel(n.Pos())
		if err != nil {
			return ir.Var{}, err
		}
		cond, err := g.visit(scope, n.Cond)
		if err != nil {
			return ir.Var{}, err
		}
		g.emit(ir.MakeCondJump(n.Pos(), cond, thenLabel, endLabel))
		g.emit(ir.MakeLabel(n.Pos(), thenLabel))
		if _, err := g.visit(scope, n.Then); err != nil {
			return ir.Var{}, err
		}
		g.emit(ir.MakeLabel(n.Pos(), endLabel))
		return ir.Unit, nil

	case *ast.IfThenElse:
		thenLabel, err := g.newLabel(n.Pos())
		if err != nil {
			return ir.Var{}, err
		}
		elseLabel, err := g.newLabel(n.Pos())
		if err != nil {
			return ir.Var{}, err
		}
		endLabel, err := g.newLabel(n.Pos())
		if err != nil {
			return ir.Var{}, err
		}
		cond, err := g.visit(scope, n.Cond)
		if err != nil {
			return ir.Var{}, err
		}
		g.emit(ir.MakeCondJump(n.Pos(), cond, thenLabel, elseLabel))
		g.emit(ir.MakeLabel(n.Pos(), thenLabel))
		if _, err := g.visit(scope, n.Then); err != nil {
			return ir.Var{}, err
		}
		g.emit(ir.MakeJump(n.Pos(), endLabel))
		g.emit(ir.MakeLabel(n.Pos(), elseLabel))
		if _, err := g.visit(scope, n.Else); err != nil {
			return ir.Var{}, err
		}
		g.emit(ir.MakeLabel(n.Pos(), endLabel))
		return ir.Unit, nil

	case *ast.WhileDo:
		startLabel, err := g.newLabel(n.Pos())
		if err != nil {
			return ir.Var{}, err
		}
		bodyLabel, err := g.newLabel(n.Pos())
		if err != nil {
			return ir.Var{}, err
		}
		endLabel, err := g.newLabel(n.Pos())
		if err != nil {
			return ir.Var{}, err
		}
		g.emit(ir.MakeLabel(n.Pos(), startLabel))
		cond, err := g.visit(scope, n.Cond)
		if err != nil {
			return ir.Var{}, err
		}
		g.emit(ir.MakeCondJump(n.Pos(), cond, bodyLabel, endLabel))
		g.emit(ir.MakeLabel(n.Pos(), bodyLabel))
		if _, err := g.visit(scope, n.Body); err != nil {
			return ir.Var{}, err
		}
		g.emit(ir.MakeJump(n.Pos(), startLabel))
		g.emit(ir.MakeLabel(n.Pos(), endLabel))
		return ir.Unit, nil

	case *ast.VarDecl:
		if _, isFn := n.Value.(*ast.FnDef); isFn {
			return ir.Var{}, diag.Errorf(diag.GenUnsupportedShape, n.Pos(),
				"function definitions are not supported by the native backend")
		}
		value, err := g.visit(scope, n.Value)
		if err != nil {
			return ir.Var{}, err
		}
		if !scope.Declare(n.Name, value) {
			return ir.Var{}, diag.Errorf(diag.NameRedeclared, n.Pos(),
				"%q is already bound in this scope", n.Name)
		}
		return ir.Unit, nil

	case *ast.Call:
		fnVar, ok := scope.Lookup(n.Name)
		if !ok {
			return ir.Var{}, diag.Errorf(diag.NameUndeclared, n.Pos(), "%q has no IR variable", n.Name)
		}
		args := make([]ir.Var, len(n.Args))
		for i, arg := range n.Args {
			v, err := g.visit(scope, arg)
			if err != nil {
				return ir.Var{}, err
			}
			args[i] = v
		}
		dest, err := g.newVar(n.Pos())
		if err != nil {
			return ir.Var{}, err
		}
		g.emit(ir.MakeCall(n.Pos(), fnVar, args, dest))
		return dest, nil

	case *ast.Block:
		// Child scopes chain to the parent so nested blocks see
		// enclosing locals, mirroring the type checker.
		blockScope := symbols.NewScope(scope)
		last := ir.Unit
		for _, child := range n.Exprs {
			v, err := g.visit(blockScope, child)
			if err != nil {
				return ir.Var{}, err
			}
			last = v
		}
		if n.ReturnsLast {
			return last, nil
		}
		return ir.Unit, nil

	case *ast.TopLevel:
		last := ir.Unit
		for _, child := range n.Exprs {
			v, err := g.visit(scope, child)
			if err != nil {
				return ir.Var{}, err
			}
			last = v
		}
		if n.ReturnsLast {
			return last, nil
		}
		return ir.Unit, nil

	case *ast.FnDef:
		return ir.Var{}, diag.Errorf(diag.GenUnsupportedShape, n.Pos(),
			"function definitions are not supported by the native backend")
	}

	return ir.Var{}, diag.Errorf(diag.GenUnsupportedShape, expr.Pos(), "cannot lower %T", expr)
}

func (g *generator) visitBinary(scope *symbols.Scope[ir.Var], n *ast.BinaryOp) (ir.Var, error) {
	switch n.Op {
	case "=":
		target, ok := n.Left.(*ast.Identifier)
		if !ok {
			return ir.Var{}, diag.Errorf(diag.TypeAssignTarget, n.Left.Pos(),
				"only an identifier can be assigned to")
		}
		targetVar, ok := scope.Lookup(target.Name)
		if !ok {
			return ir.Var{}, diag.Errorf(diag.NameUnassignable, target.Pos(),
				"%q is not bound", target.Name)
		}
		value, err := g.visit(scope, n.Right)
		if err != nil {
			return ir.Var{}, err
		}
		g.emit(ir.MakeCopy(n.Pos(), value, targetVar))
		return ir.Unit, nil

	case "and", "or":
		return g.visitShortCircuit(scope, n)
	}

	opVar, ok := scope.Lookup(n.Op)
	if !ok {
		return ir.Var{}, diag.Errorf(diag.NameUndeclared, n.Pos(), "unknown operator %q", n.Op)
	}
	left, err := g.visit(scope, n.Left)
	if err != nil {
		return ir.Var{}, err
	}
	right, err := g.visit(scope, n.Right)
	if err != nil {
		return ir.Var{}, err
	}
	dest, err := g.newVar(n.Pos())
	if err != nil {
		return ir.Var{}, err
	}
	g.emit(ir.MakeCall(n.Pos(), opVar, []ir.Var{left, right}, dest))
	return dest, nil
}

// visitShortCircuit lowers `and`/`or` with real control flow: the
// right operand's instructions are jumped over when the left operand
// already decides the result.
func (g *generator) visitShortCircuit(scope *symbols.Scope[ir.Var], n *ast.BinaryOp) (ir.Var, error) {
	rightLabel, err := g.newLabel(n.Pos())
	if err != nil {
		return ir.Var{}, err
	}
	skipLabel, err := g.newLabel(n.Pos())
	if err != nil {
		return ir.Var{}, err
	}
	endLabel, err := g.newLabel(n.Pos())
	if err != nil {
		return ir.Var{}, err
	}
	dest, err := g.newVar(n.Pos())
	if err != nil {
		return ir.Var{}, err
	}

	left, err := g.visit(scope, n.Left)
	if err != nil {
		return ir.Var{}, err
	}
	if n.Op == "and" {
		// false and _ == false
		g.emit(ir.MakeCondJump(n.Pos(), left, rightLabel, skipLabel))
	} else {
		// true or _ == true
		g.emit(ir.MakeCondJump(n.Pos(), left, skipLabel, rightLabel))
	}

	g.emit(ir.MakeLabel(n.Pos(), rightLabel))
	right, err := g.visit(scope, n.Right)
	if err != nil {
		return ir.Var{}, err
	}
	g.emit(ir.MakeCopy(n.Pos(), right, dest))
	g.emit(ir.MakeJump(n.Pos(), endLabel))

	g.emit(ir.MakeLabel(n.Pos(), skipLabel))
	g.emit(ir.MakeLoadBoolConst(n.Pos(), n.Op == "or", dest))
	g.emit(ir.MakeLabel(n.Pos(), endLabel))
	return dest, nil
}
