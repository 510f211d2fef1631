package interp

import (
	"strings"
	"testing"

	"kielo/internal/diag"
	"kielo/internal/lexer"
	"kielo/internal/parser"
	"kielo/internal/sema"
)

// sameValue reports whether two values are equal field-by-field. Value
// contains a func field, so it cannot be compared with ==.
func sameValue(a, b Value) bool {
	return a.Kind == b.Kind && a.Int == b.Int && a.Bool == b.Bool &&
		a.Closure == b.Closure && (a.Builtin == nil) == (b.Builtin == nil)
}

func run(t *testing.T, src, input string) (Value, string, error) {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	root, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	if _, err := sema.Check(root); err != nil {
		t.Fatalf("Check(%q): %v", src, err)
	}
	var out strings.Builder
	it := New(strings.NewReader(input), &out)
	v, err := it.Run(root)
	return v, out.String(), err
}

func TestEvalResults(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Value
	}{
		{"int_literal", "42", IntValue(42)},
		{"arithmetic", "1 + 2 * 3", IntValue(7)},
		{"precedence_parens", "(1 + 2) * 3", IntValue(9)},
		{"negation", "-(2 + 3)", IntValue(-5)},
		{"remainder", "17 % 5", IntValue(2)},
		{"comparison", "2 < 3", BoolValue(true)},
		{"equality", "true == false", BoolValue(false)},
		{"not", "not false", BoolValue(true)},
		{"if_else_value", "if 1 < 2 then 10 else 20", IntValue(10)},
		{"if_then_is_unit", "if true then 1", Unit},
		{"block_value", "{ var x = 3; x * x }", IntValue(9)},
		{"block_discard", "{ 1; }", Unit},
		{"assignment_value", "var x = 1; x = 5", IntValue(5)},
		{"while_loop", "var i = 0; var acc = 0; while i < 5 do { acc = acc + i; i = i + 1 }; acc", IntValue(10)},
		{"shadowing", "var x = 1; { var x = 2; x }", IntValue(2)},
		{"function_call", "var sq(x: Int): (Int) => Int = { x * x }; sq(7)", IntValue(49)},
		{"two_functions", "var double(x) = { x * 2 }; var quad(x) = { double(double(x)) }; quad(3)", IntValue(12)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := run(t, tt.src, "")
			if err != nil {
				t.Fatalf("Run(%q): %v", tt.src, err)
			}
			if !sameValue(got, tt.want) {
				t.Errorf("Run(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvalShortCircuit(t *testing.T) {
	// The right operand would crash if evaluated.
	v, _, err := run(t, "true or (1 / 0 == 0)", "")
	if err != nil {
		t.Fatalf("or must skip its right operand: %v", err)
	}
	if !sameValue(v, BoolValue(true)) {
		t.Errorf("got %s, want true", v)
	}

	v, _, err = run(t, "false and (1 / 0 == 0)", "")
	if err != nil {
		t.Fatalf("and must skip its right operand: %v", err)
	}
	if !sameValue(v, BoolValue(false)) {
		t.Errorf("got %s, want false", v)
	}
}

func TestEvalOutput(t *testing.T) {
	_, out, err := run(t, "print_int(3); print_bool(1 < 2); print_int(-7);", "")
	if err != nil {
		t.Fatal(err)
	}
	if out != "3\ntrue\n-7\n" {
		t.Errorf("output = %q", out)
	}
}

func TestEvalReadInt(t *testing.T) {
	_, out, err := run(t, "print_int(read_int() + read_int());", "20 22")
	if err != nil {
		t.Fatal(err)
	}
	if out != "42\n" {
		t.Errorf("output = %q", out)
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"divide_by_zero", "1 / 0", diag.EvalDivideByZero},
		{"remainder_by_zero", "1 % 0", diag.EvalDivideByZero},
		{"arity_mismatch", "var f(x) = { x }; f(1, 2)", diag.EvalBadCall},
		{"int_while_condition", "while 1 do 2", diag.EvalBadCall},
		{"input_exhausted", "read_int();", diag.EvalInputFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.src, "")
			if err == nil {
				t.Fatalf("Run(%q): expected error", tt.src)
			}
			if got := diag.CodeOf(err); got != tt.code {
				t.Errorf("Run(%q) code = %v, want %v", tt.src, got, tt.code)
			}
		})
	}
}

func TestAssignmentReachesEnclosingScope(t *testing.T) {
	v, _, err := run(t, "var x = 1; { x = 2; }; x", "")
	if err != nil {
		t.Fatal(err)
	}
	if !sameValue(v, IntValue(2)) {
		t.Errorf("got %s, want 2", v)
	}
}

func TestClosureCapturesDefiningScope(t *testing.T) {
	v, _, err := run(t, "var base = 10; var add(x) = { base + x }; add(5)", "")
	if err != nil {
		t.Fatal(err)
	}
	if !sameValue(v, IntValue(15)) {
		t.Errorf("got %s, want 15", v)
	}
}
