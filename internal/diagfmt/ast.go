package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"kielo/internal/ast"
)

// FormatAST writes an indented tree rendering of the expression,
// including inferred types when the tree has been through the checker.
func FormatAST(w io.Writer, root ast.Expr) error {
	p := &astPrinter{w: w}
	p.node(root, 0)
	return p.err
}

type astPrinter struct {
	w   io.Writer
	err error
}

func (p *astPrinter) line(depth int, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func typeSuffix(e ast.Expr) string {
	if t := e.Type(); t != nil {
		return " : " + t.String()
	}
	return ""
}

func (p *astPrinter) node(e ast.Expr, depth int) {
	switch n := e.(type) {
	case *ast.Empty:
		p.line(depth, "Empty")

	case *ast.Literal:
		switch n.LitKind {
		case ast.LitInt:
			p.line(depth, "Literal %d%s", n.IntVal, typeSuffix(n))
		case ast.LitBool:
			p.line(depth, "Literal %t%s", n.BoolVal, typeSuffix(n))
		default:
			p.line(depth, "Literal unit%s", typeSuffix(n))
		}

	case *ast.Identifier:
		p.line(depth, "Identifier %q%s", n.Name, typeSuffix(n))

	case *ast.BinaryOp:
		p.line(depth, "BinaryOp %q%s", n.Op, typeSuffix(n))
		p.node(n.Left, depth+1)
		p.node(n.Right, depth+1)

	case *ast.UnaryOp:
		p.line(depth, "UnaryOp %q%s", n.Op, typeSuffix(n))
		p.node(n.Target, depth+1)

	case *ast.IfThen:
		p.line(depth, "IfThen%s", typeSuffix(n))
		p.node(n.Cond, depth+1)
		p.node(n.Then, depth+1)

	case *ast.IfThenElse:
		p.line(depth, "IfThenElse%s", typeSuffix(n))
		p.node(n.Cond, depth+1)
		p.node(n.Then, depth+1)
		p.node(n.Else, depth+1)

	case *ast.WhileDo:
		p.line(depth, "WhileDo%s", typeSuffix(n))
		p.node(n.Cond, depth+1)
		p.node(n.Body, depth+1)

	case *ast.VarDecl:
		if n.TypeAnn != nil {
			p.line(depth, "VarDecl %q : %s", n.Name, n.TypeAnn)
		} else {
			p.line(depth, "VarDecl %q", n.Name)
		}
		p.node(n.Value, depth+1)

	case *ast.FnDef:
		params := make([]string, len(n.Params))
		for i, param := range n.Params {
			if param.Type != nil {
				params[i] = param.Name + ": " + param.Type.String()
			} else {
				params[i] = param.Name
			}
		}
		p.line(depth, "FnDef (%s)%s", strings.Join(params, ", "), typeSuffix(n))
		p.node(n.Body, depth+1)

	case *ast.Call:
		p.line(depth, "Call %q%s", n.Name, typeSuffix(n))
		for _, arg := range n.Args {
			p.node(arg, depth+1)
		}

	case *ast.Block:
		p.line(depth, "Block returns_last=%t%s", n.ReturnsLast, typeSuffix(n))
		for _, child := range n.Exprs {
			p.node(child, depth+1)
		}

	case *ast.TopLevel:
		p.line(depth, "TopLevel returns_last=%t%s", n.ReturnsLast, typeSuffix(n))
		for _, child := range n.Exprs {
			p.node(child, depth+1)
		}

	default:
		p.line(depth, "%T", e)
	}
}
