package sema

import (
	"sort"

	"kielo/internal/symbols"
	"kielo/internal/types"
)

// builtins is the single process-wide table of builtin operator and
// function signatures. Root scopes reference it through NewRootScope;
// nobody copies or mutates it. Unary operators are registered under a
// "unary_" prefix so `-` the binary and `-` the unary operator can
// coexist. The checker resolves `=`, `==` and `!=` structurally and
// never consults the table for them; `==`/`!=` are still listed so the
// IR generator reserves their names for the backend intrinsics.
var builtins = map[string]types.Type{
	"==": types.NewFn(types.Bool, types.Int, types.Int),
	"!=": types.NewFn(types.Bool, types.Int, types.Int),

	"+": types.NewFn(types.Int, types.Int, types.Int),
	"-": types.NewFn(types.Int, types.Int, types.Int),
	"*": types.NewFn(types.Int, types.Int, types.Int),
	"/": types.NewFn(types.Int, types.Int, types.Int),
	"%": types.NewFn(types.Int, types.Int, types.Int),

	"<":  types.NewFn(types.Bool, types.Int, types.Int),
	"<=": types.NewFn(types.Bool, types.Int, types.Int),
	">":  types.NewFn(types.Bool, types.Int, types.Int),
	">=": types.NewFn(types.Bool, types.Int, types.Int),

	"or":  types.NewFn(types.Bool, types.Bool, types.Bool),
	"and": types.NewFn(types.Bool, types.Bool, types.Bool),

	"unary_-":   types.NewFn(types.Int, types.Int),
	"unary_not": types.NewFn(types.Bool, types.Bool),

	"print_int":  types.NewFn(types.Unit, types.Int),
	"print_bool": types.NewFn(types.Unit, types.Bool),
	"read_int":   types.NewFn(types.Int),
}

// NewRootScope returns a fresh root scope pre-populated with the
// builtin signatures.
func NewRootScope() *symbols.Scope[types.Type] {
	root := symbols.NewScope[types.Type](nil)
	for name, sig := range builtins {
		root.Declare(name, sig)
	}
	return root
}

// BuiltinNames returns the sorted builtin names. The IR generator
// seeds its reserved-name set from this.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
