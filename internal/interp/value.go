package interp

import (
	"fmt"

	"kielo/internal/ast"
	"kielo/internal/symbols"
)

// ValueKind identifies the runtime type of a Value.
type ValueKind uint8

const (
	// VKInvalid represents the zero value.
	VKInvalid ValueKind = iota
	// VKInt represents a signed integer value.
	VKInt
	// VKBool represents a boolean value.
	VKBool
	// VKUnit represents the unit value.
	VKUnit
	// VKClosure represents a user-defined function value.
	VKClosure
	// VKBuiltin represents a builtin function value.
	VKBuiltin
)

func (k ValueKind) String() string {
	switch k {
	case VKInt:
		return "int"
	case VKBool:
		return "bool"
	case VKUnit:
		return "unit"
	case VKClosure:
		return "function"
	case VKBuiltin:
		return "builtin"
	}
	return "invalid"
}

// BuiltinFn is a builtin operator or function implemented in the host.
type BuiltinFn func(args []Value) (Value, error)

// Closure is a user-defined function bound to its defining scope.
type Closure struct {
	Name   string
	Params []ast.Param
	Body   *ast.Block
	Env    *symbols.Scope[Value]
}

// Value is a runtime value. Kind selects which payload field is live.
type Value struct {
	Kind    ValueKind
	Int     int64
	Bool    bool
	Closure *Closure
	Builtin BuiltinFn
}

// Unit is the shared unit value.
var Unit = Value{Kind: VKUnit}

// IntValue wraps an integer.
func IntValue(v int64) Value { return Value{Kind: VKInt, Int: v} }

// BoolValue wraps a boolean.
func BoolValue(v bool) Value { return Value{Kind: VKBool, Bool: v} }

func (v Value) String() string {
	switch v.Kind {
	case VKInt:
		return fmt.Sprintf("%d", v.Int)
	case VKBool:
		return fmt.Sprintf("%t", v.Bool)
	case VKUnit:
		return "unit"
	case VKClosure:
		if v.Closure != nil && v.Closure.Name != "" {
			return "<function " + v.Closure.Name + ">"
		}
		return "<function>"
	case VKBuiltin:
		return "<builtin>"
	}
	return "<invalid>"
}
