package interp

import (
	"kielo/internal/diag"
	"kielo/internal/source"
)

// arithBuiltins holds the stream-independent builtin operators. The
// read/print builtins live on Interp because they capture its streams.
var arithBuiltins = map[string]BuiltinFn{
	"+": intBinary(func(a, b int64) int64 { return a + b }),
	"-": intBinary(func(a, b int64) int64 { return a - b }),
	"*": intBinary(func(a, b int64) int64 { return a * b }),
	"/": intDivide(func(a, b int64) int64 { return a / b }),
	"%": intDivide(func(a, b int64) int64 { return a % b }),

	"<":  intCompare(func(a, b int64) bool { return a < b }),
	"<=": intCompare(func(a, b int64) bool { return a <= b }),
	">":  intCompare(func(a, b int64) bool { return a > b }),
	">=": intCompare(func(a, b int64) bool { return a >= b }),

	"==": equal(false),
	"!=": equal(true),

	"unary_-":   unaryNeg,
	"unary_not": unaryNot,
}

func twoInts(args []Value) (int64, int64, error) {
	if len(args) != 2 || args[0].Kind != VKInt || args[1].Kind != VKInt {
		return 0, 0, diag.Errorf(diag.EvalBadCall, source.None, "operator expects two integers")
	}
	return args[0].Int, args[1].Int, nil
}

func intBinary(op func(a, b int64) int64) BuiltinFn {
	return func(args []Value) (Value, error) {
		a, b, err := twoInts(args)
		if err != nil {
			return Value{}, err
		}
		return IntValue(op(a, b)), nil
	}
}

func intDivide(op func(a, b int64) int64) BuiltinFn {
	return func(args []Value) (Value, error) {
		a, b, err := twoInts(args)
		if err != nil {
			return Value{}, err
		}
		if b == 0 {
			return Value{}, diag.Errorf(diag.EvalDivideByZero, source.None, "division by zero")
		}
		return IntValue(op(a, b)), nil
	}
}

func intCompare(op func(a, b int64) bool) BuiltinFn {
	return func(args []Value) (Value, error) {
		a, b, err := twoInts(args)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(op(a, b)), nil
	}
}

// equal compares same-kind scalar values; the type checker guarantees
// matching operand types, so mixed kinds never reach here.
func equal(negate bool) BuiltinFn {
	return func(args []Value) (Value, error) {
		if len(args) != 2 || args[0].Kind != args[1].Kind {
			return Value{}, diag.Errorf(diag.EvalBadCall, source.None, "equality expects two values of the same type")
		}
		var eq bool
		switch args[0].Kind {
		case VKInt:
			eq = args[0].Int == args[1].Int
		case VKBool:
			eq = args[0].Bool == args[1].Bool
		case VKUnit:
			eq = true
		default:
			return Value{}, diag.Errorf(diag.EvalBadCall, source.None, "cannot compare %s values", args[0].Kind)
		}
		return BoolValue(eq != negate), nil
	}
}

func unaryNeg(args []Value) (Value, error) {
	if len(args) != 1 || args[0].Kind != VKInt {
		return Value{}, diag.Errorf(diag.EvalBadCall, source.None, "unary - expects an integer")
	}
	return IntValue(-args[0].Int), nil
}

func unaryNot(args []Value) (Value, error) {
	if len(args) != 1 || args[0].Kind != VKBool {
		return Value{}, diag.Errorf(diag.EvalBadCall, source.None, "not expects a boolean")
	}
	return BoolValue(!args[0].Bool), nil
}
