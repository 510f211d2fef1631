// Package interp evaluates the typed AST directly, without going
// through the IR or the native backend. It is the reference executor
// for `kielo run` and the only path that supports user-defined
// functions.
package interp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"kielo/internal/ast"
	"kielo/internal/diag"
	"kielo/internal/source"
	"kielo/internal/symbols"
)

// Interp evaluates expressions against an input and output stream.
// read_int pulls whitespace-separated tokens from the input; the
// print builtins write one line each to the output.
type Interp struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Interp {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &Interp{in: sc, out: out}
}

// RootScope builds a scope with every builtin operator and function
// bound to a host closure. One process-wide table would not do here:
// the print/read builtins capture the interpreter's streams.
func (it *Interp) RootScope() *symbols.Scope[Value] {
	scope := symbols.NewScope[Value](nil)
	for name, fn := range arithBuiltins {
		scope.Declare(name, Value{Kind: VKBuiltin, Builtin: fn})
	}
	scope.Declare("print_int", Value{Kind: VKBuiltin, Builtin: it.printInt})
	scope.Declare("print_bool", Value{Kind: VKBuiltin, Builtin: it.printBool})
	scope.Declare("read_int", Value{Kind: VKBuiltin, Builtin: it.readInt})
	return scope
}

// Run evaluates root in a fresh root scope.
func (it *Interp) Run(root ast.Expr) (Value, error) {
	return it.RunIn(it.RootScope(), root)
}

// RunIn evaluates root against a pre-seeded scope.
func (it *Interp) RunIn(scope *symbols.Scope[Value], root ast.Expr) (Value, error) {
	return it.eval(scope, root)
}

func (it *Interp) eval(scope *symbols.Scope[Value], expr ast.Expr) (Value, error) {
	switch n := expr.(type) {
	case *ast.Empty:
		return Unit, nil

	case *ast.Literal:
		switch n.LitKind {
		case ast.LitInt:
			return IntValue(n.IntVal), nil
		case ast.LitBool:
			return BoolValue(n.BoolVal), nil
		default:
			return Unit, nil
		}

	case *ast.Identifier:
		v, ok := scope.Lookup(n.Name)
		if !ok {
			return Value{}, diag.Errorf(diag.NameUndeclared, n.Pos(), "undeclared name %q", n.Name)
		}
		return v, nil

	case *ast.UnaryOp:
		fn, ok := scope.Lookup("unary_" + n.Op)
		if !ok || fn.Kind != VKBuiltin {
			return Value{}, diag.Errorf(diag.NameUndeclared, n.Pos(), "unknown unary operator %q", n.Op)
		}
		target, err := it.eval(scope, n.Target)
		if err != nil {
			return Value{}, err
		}
		return fn.Builtin([]Value{target})

	case *ast.BinaryOp:
		return it.evalBinary(scope, n)

	case *ast.IfThen:
		cond, err := it.evalBool(scope, n.Cond)
		if err != nil {
			return Value{}, err
		}
		if cond {
			if _, err := it.eval(scope, n.Then); err != nil {
				return Value{}, err
			}
		}
		return Unit, nil

	case *ast.IfThenElse:
		cond, err := it.evalBool(scope, n.Cond)
		if err != nil {
			return Value{}, err
		}
		if cond {
			return it.eval(scope, n.Then)
		}
		return it.eval(scope, n.Else)

	case *ast.WhileDo:
		for {
			cond, err := it.evalBool(scope, n.Cond)
			if err != nil {
				return Value{}, err
			}
			if !cond {
				return Unit, nil
			}
			if _, err := it.eval(scope, n.Body); err != nil {
				return Value{}, err
			}
		}

	case *ast.VarDecl:
		var value Value
		if fn, isFn := n.Value.(*ast.FnDef); isFn {
			value = Value{Kind: VKClosure, Closure: &Closure{
				Name:   n.Name,
				Params: fn.Params,
				Body:   fn.Body,
				Env:    scope,
			}}
		} else {
			v, err := it.eval(scope, n.Value)
			if err != nil {
				return Value{}, err
			}
			value = v
		}
		if !scope.Declare(n.Name, value) {
			return Value{}, diag.Errorf(diag.NameRedeclared, n.Pos(), "%q is already declared in this scope", n.Name)
		}
		return Unit, nil

	case *ast.Call:
		return it.evalCall(scope, n)

	case *ast.Block:
		blockScope := symbols.NewScope(scope)
		return it.evalSeq(blockScope, n.Exprs, n.ReturnsLast)

	case *ast.TopLevel:
		return it.evalSeq(scope, n.Exprs, n.ReturnsLast)

	case *ast.FnDef:
		return Value{Kind: VKClosure, Closure: &Closure{
			Name:   n.Name,
			Params: n.Params,
			Body:   n.Body,
			Env:    scope,
		}}, nil
	}

	return Value{}, diag.Errorf(diag.EvalBadCall, expr.Pos(), "cannot evaluate %T", expr)
}

func (it *Interp) evalSeq(scope *symbols.Scope[Value], exprs []ast.Expr, returnsLast bool) (Value, error) {
	last := Unit
	for _, child := range exprs {
		v, err := it.eval(scope, child)
		if err != nil {
			return Value{}, err
		}
		last = v
	}
	if returnsLast {
		return last, nil
	}
	return Unit, nil
}

func (it *Interp) evalBool(scope *symbols.Scope[Value], expr ast.Expr) (bool, error) {
	v, err := it.eval(scope, expr)
	if err != nil {
		return false, err
	}
	if v.Kind != VKBool {
		return false, diag.Errorf(diag.EvalBadCall, expr.Pos(), "condition evaluated to %s, not bool", v.Kind)
	}
	return v.Bool, nil
}

func (it *Interp) evalBinary(scope *symbols.Scope[Value], n *ast.BinaryOp) (Value, error) {
	switch n.Op {
	case "=":
		target, ok := n.Left.(*ast.Identifier)
		if !ok {
			return Value{}, diag.Errorf(diag.TypeAssignTarget, n.Left.Pos(), "only an identifier can be assigned to")
		}
		value, err := it.eval(scope, n.Right)
		if err != nil {
			return Value{}, err
		}
		if !scope.Assign(target.Name, value) {
			return Value{}, diag.Errorf(diag.NameUnassignable, target.Pos(), "%q is not bound", target.Name)
		}
		return value, nil

	case "and", "or":
		left, err := it.evalBool(scope, n.Left)
		if err != nil {
			return Value{}, err
		}
		// The right operand only runs when the left does not already
		// decide the result.
		if n.Op == "and" && !left {
			return BoolValue(false), nil
		}
		if n.Op == "or" && left {
			return BoolValue(true), nil
		}
		right, err := it.evalBool(scope, n.Right)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(right), nil
	}

	fn, ok := scope.Lookup(n.Op)
	if !ok || fn.Kind != VKBuiltin {
		return Value{}, diag.Errorf(diag.NameUndeclared, n.Pos(), "unknown operator %q", n.Op)
	}
	left, err := it.eval(scope, n.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := it.eval(scope, n.Right)
	if err != nil {
		return Value{}, err
	}
	return fn.Builtin([]Value{left, right})
}

func (it *Interp) evalCall(scope *symbols.Scope[Value], n *ast.Call) (Value, error) {
	callee, ok := scope.Lookup(n.Name)
	if !ok {
		return Value{}, diag.Errorf(diag.NameUndeclared, n.Pos(), "undeclared name %q", n.Name)
	}
	args := make([]Value, len(n.Args))
	for i, arg := range n.Args {
		v, err := it.eval(scope, arg)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}

	switch callee.Kind {
	case VKBuiltin:
		return callee.Builtin(args)
	case VKClosure:
		cl := callee.Closure
		// The type checker does not verify arity, so it has to be
		// caught here.
		if len(args) != len(cl.Params) {
			return Value{}, diag.Errorf(diag.EvalBadCall, n.Pos(),
				"%q takes %d argument(s), got %d", n.Name, len(cl.Params), len(args))
		}
		frame := symbols.NewScope(cl.Env)
		for i, p := range cl.Params {
			frame.Declare(p.Name, args[i])
		}
		return it.evalSeq(symbols.NewScope(frame), cl.Body.Exprs, cl.Body.ReturnsLast)
	}
	return Value{}, diag.Errorf(diag.EvalBadCall, n.Pos(), "%q is not callable", n.Name)
}

func (it *Interp) printInt(args []Value) (Value, error) {
	if len(args) != 1 || args[0].Kind != VKInt {
		return Value{}, diag.Errorf(diag.EvalBadCall, source.None, "print_int expects one integer")
	}
	fmt.Fprintf(it.out, "%d\n", args[0].Int)
	return Unit, nil
}

func (it *Interp) printBool(args []Value) (Value, error) {
	if len(args) != 1 || args[0].Kind != VKBool {
		return Value{}, diag.Errorf(diag.EvalBadCall, source.None, "print_bool expects one boolean")
	}
	fmt.Fprintf(it.out, "%t\n", args[0].Bool)
	return Unit, nil
}

func (it *Interp) readInt(args []Value) (Value, error) {
	if len(args) != 0 {
		return Value{}, diag.Errorf(diag.EvalBadCall, source.None, "read_int takes no arguments")
	}
	if !it.in.Scan() {
		return Value{}, diag.Errorf(diag.EvalInputFailed, source.None, "no more input")
	}
	text := strings.TrimSpace(it.in.Text())
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Value{}, diag.Errorf(diag.EvalInputFailed, source.None, "%q is not an integer", text)
	}
	return IntValue(v), nil
}
