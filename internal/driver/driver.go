// Package driver wires the compiler stages together behind simple
// entry points the CLI calls. Each function runs the pipeline up to
// one stage and stops at the first error.
package driver

import (
	"io"
	"os"

	"kielo/internal/ast"
	"kielo/internal/backend/x86"
	"kielo/internal/interp"
	"kielo/internal/ir"
	"kielo/internal/irgen"
	"kielo/internal/lexer"
	"kielo/internal/parser"
	"kielo/internal/sema"
	"kielo/internal/token"
	"kielo/internal/types"
)

// readSource loads one source file.
func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Tokenize runs only the lexer.
func Tokenize(src string) ([]token.Token, error) {
	return lexer.Tokenize(src)
}

// Parse runs the lexer and parser.
func Parse(src string) (ast.Expr, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return parser.Parse(toks)
}

// CheckResult is a parsed program together with its checked type.
type CheckResult struct {
	Root ast.Expr
	Type types.Type
}

// Check runs the pipeline through the type checker. The returned root
// is annotated with inferred types.
func Check(src string) (*CheckResult, error) {
	root, err := Parse(src)
	if err != nil {
		return nil, err
	}
	t, err := sema.Check(root)
	if err != nil {
		return nil, err
	}
	return &CheckResult{Root: root, Type: t}, nil
}

// LowerIR runs the pipeline through IR generation.
func LowerIR(src string) ([]ir.Instr, error) {
	checked, err := Check(src)
	if err != nil {
		return nil, err
	}
	return irgen.Generate(irgen.DefaultReserved(), checked.Root)
}

// Compile runs the full pipeline and returns the assembly text.
func Compile(src string) (string, error) {
	instrs, err := LowerIR(src)
	if err != nil {
		return "", err
	}
	return x86.Generate(instrs)
}

// Run type-checks src and evaluates it with the interpreter, reading
// from in and writing to out. It returns the program's result value.
func Run(src string, in io.Reader, out io.Writer) (interp.Value, error) {
	checked, err := Check(src)
	if err != nil {
		return interp.Value{}, err
	}
	return interp.New(in, out).Run(checked.Root)
}
