package x86

import "fmt"

// IntrinsicArgs carries what an intrinsic's emission routine needs:
// the memory operands for the call's arguments, the register that must
// hold the result when the routine returns, and the sink for emitted
// instruction lines.
type IntrinsicArgs struct {
	Args   []string
	Result string
	Emit   func(line string)
}

// Intrinsic emits the instruction sequence for one builtin operation.
type Intrinsic func(a IntrinsicArgs)

// Intrinsics maps builtin names to their emission routines. Operators
// compute in registers; the print/read builtins call out to the
// runtime support routines declared extern in the preamble.
var Intrinsics = map[string]Intrinsic{
	"+": binaryOp("addq"),
	"-": binaryOp("subq"),
	"*": binaryOp("imulq"),
	"/": divide,
	"%": remainder,

	"<":  comparison("setl"),
	"<=": comparison("setle"),
	">":  comparison("setg"),
	">=": comparison("setge"),
	"==": comparison("sete"),
	"!=": comparison("setne"),

	// Non-short-circuit fallbacks; the IR generator normally lowers
	// `and`/`or` to conditional jumps instead.
	"and": binaryOp("andq"),
	"or":  binaryOp("orq"),

	"unary_-":   unaryNeg,
	"unary_not": unaryNot,

	"print_int":  printCall("print_int"),
	"print_bool": printCall("print_bool"),
	"read_int":   readInt,
}

func binaryOp(mnemonic string) Intrinsic {
	return func(a IntrinsicArgs) {
		a.Emit(fmt.Sprintf("movq %s, %s", a.Args[0], a.Result))
		a.Emit(fmt.Sprintf("%s %s, %s", mnemonic, a.Args[1], a.Result))
	}
}

// divide hardwires %rax/%rdx as idivq demands, then moves the quotient
// into the requested result register.
func divide(a IntrinsicArgs) {
	a.Emit(fmt.Sprintf("movq %s, %%rax", a.Args[0]))
	a.Emit("cqto")
	a.Emit(fmt.Sprintf("idivq %s", a.Args[1]))
	if a.Result != "%rax" {
		a.Emit(fmt.Sprintf("movq %%rax, %s", a.Result))
	}
}

func remainder(a IntrinsicArgs) {
	a.Emit(fmt.Sprintf("movq %s, %%rax", a.Args[0]))
	a.Emit("cqto")
	a.Emit(fmt.Sprintf("idivq %s", a.Args[1]))
	if a.Result != "%rdx" {
		a.Emit(fmt.Sprintf("movq %%rdx, %s", a.Result))
	}
}

// comparison zeroes %rax, compares through %rdx and materializes the
// flag in %al, so the full register holds exactly 0 or 1.
func comparison(setcc string) Intrinsic {
	return func(a IntrinsicArgs) {
		a.Emit("xor %rax, %rax")
		a.Emit(fmt.Sprintf("movq %s, %%rdx", a.Args[0]))
		a.Emit(fmt.Sprintf("cmpq %s, %%rdx", a.Args[1]))
		a.Emit(fmt.Sprintf("%s %%al", setcc))
		if a.Result != "%rax" {
			a.Emit(fmt.Sprintf("movq %%rax, %s", a.Result))
		}
	}
}

func unaryNeg(a IntrinsicArgs) {
	a.Emit(fmt.Sprintf("movq %s, %s", a.Args[0], a.Result))
	a.Emit(fmt.Sprintf("negq %s", a.Result))
}

func unaryNot(a IntrinsicArgs) {
	a.Emit(fmt.Sprintf("movq %s, %s", a.Args[0], a.Result))
	a.Emit(fmt.Sprintf("xorq $1, %s", a.Result))
}

func printCall(fn string) Intrinsic {
	return func(a IntrinsicArgs) {
		a.Emit(fmt.Sprintf("movq %s, %%rdi", a.Args[0]))
		a.Emit(fmt.Sprintf("callq %s", fn))
		if a.Result != "%rax" {
			a.Emit(fmt.Sprintf("movq %%rax, %s", a.Result))
		}
	}
}

func readInt(a IntrinsicArgs) {
	a.Emit("callq read_int")
	if a.Result != "%rax" {
		a.Emit(fmt.Sprintf("movq %%rax, %s", a.Result))
	}
}
