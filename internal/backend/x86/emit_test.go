package x86

import (
	"strings"
	"testing"

	"kielo/internal/diag"
	"kielo/internal/ir"
	"kielo/internal/source"
)

func v(name string) ir.Var   { return ir.Var{Name: name} }
func l(name string) ir.Label { return ir.Label{Name: name} }

func TestStackSlotsFirstOccurrenceOrder(t *testing.T) {
	instrs := []ir.Instr{
		ir.MakeLoadIntConst(source.None, 1, v("v0")),
		ir.MakeLoadIntConst(source.None, 2, v("v1")),
		ir.MakeCopy(source.None, v("v0"), v("v2")),
		// Re-references must not shift earlier slots.
		ir.MakeCopy(source.None, v("v2"), v("v0")),
	}
	locals := NewLocals(instrs)

	want := map[string]string{"v0": "-8(%rbp)", "v1": "-16(%rbp)", "v2": "-24(%rbp)"}
	for name, ref := range want {
		got, err := locals.Ref(v(name))
		if err != nil {
			t.Fatalf("Ref(%s): %v", name, err)
		}
		if got != ref {
			t.Errorf("Ref(%s) = %s, want %s", name, got, ref)
		}
	}
	if used := locals.StackUsed(); used != 24 {
		t.Errorf("StackUsed() = %d, want 24", used)
	}
}

func TestRefUnknownVariable(t *testing.T) {
	locals := NewLocals(nil)
	if _, err := locals.Ref(v("v0")); err == nil {
		t.Fatal("expected error for variable without a slot")
	}
}

func TestSmallConstantStoresDirectly(t *testing.T) {
	asm, err := Generate([]ir.Instr{ir.MakeLoadIntConst(source.None, 42, v("v0"))})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(asm, "movq $42, -8(%rbp)") {
		t.Errorf("missing direct store:\n%s", asm)
	}
	if strings.Contains(asm, "movabsq") {
		t.Errorf("small constant must not go through a register:\n%s", asm)
	}
}

func TestLargeConstantGoesThroughRegister(t *testing.T) {
	const big = int64(1) << 40
	asm, err := Generate([]ir.Instr{ir.MakeLoadIntConst(source.None, big, v("v0"))})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(asm, "movabsq $1099511627776, %rax") {
		t.Errorf("large constant must load into a register first:\n%s", asm)
	}
	if !strings.Contains(asm, "movq %rax, -8(%rbp)") {
		t.Errorf("large constant must be stored from the register:\n%s", asm)
	}
}

func TestNegative32BitConstantStoresDirectly(t *testing.T) {
	asm, err := Generate([]ir.Instr{ir.MakeLoadIntConst(source.None, -2147483648, v("v0"))})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(asm, "movabsq") {
		t.Errorf("-2^31 still fits the immediate form:\n%s", asm)
	}
}

func TestPreambleAndEpilogue(t *testing.T) {
	asm, err := Generate([]ir.Instr{ir.MakeLoadIntConst(source.None, 1, v("v0"))})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		".extern print_int",
		".extern print_bool",
		".extern read_int",
		".global main",
		"main:",
		"pushq %rbp",
		"movq %rsp, %rbp",
		"subq $8, %rsp",
		"movq $0, %rax",
		"ret",
	} {
		if !strings.Contains(asm, want) {
			t.Errorf("missing %q in:\n%s", want, asm)
		}
	}
}

func TestLabelsAndJumps(t *testing.T) {
	instrs := []ir.Instr{
		ir.MakeLoadBoolConst(source.None, true, v("v0")),
		ir.MakeCondJump(source.None, v("v0"), l("L0"), l("L1")),
		ir.MakeLabel(source.None, l("L0")),
		ir.MakeJump(source.None, l("L2")),
		ir.MakeLabel(source.None, l("L1")),
		ir.MakeLabel(source.None, l("L2")),
	}
	asm, err := Generate(instrs)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"cmpq $0, -8(%rbp)",
		"jne .LL0",
		"jmp .LL1",
		".LL0:",
		"jmp .LL2",
		".LL1:",
		".LL2:",
	} {
		if !strings.Contains(asm, want) {
			t.Errorf("missing %q in:\n%s", want, asm)
		}
	}
}

func TestIntrinsicCallStoresResult(t *testing.T) {
	instrs := []ir.Instr{
		ir.MakeLoadIntConst(source.None, 1, v("v0")),
		ir.MakeLoadIntConst(source.None, 2, v("v1")),
		ir.MakeCall(source.None, v("+"), []ir.Var{v("v0"), v("v1")}, v("v2")),
	}
	asm, err := Generate(instrs)
	if err != nil {
		t.Fatal(err)
	}
	// Slot order: v0, v1, +, v2.
	for _, want := range []string{
		"movq -8(%rbp), %rax",
		"addq -16(%rbp), %rax",
		"movq %rax, -32(%rbp)",
	} {
		if !strings.Contains(asm, want) {
			t.Errorf("missing %q in:\n%s", want, asm)
		}
	}
}

func TestPrintIntrinsicCallsRuntime(t *testing.T) {
	instrs := []ir.Instr{
		ir.MakeLoadIntConst(source.None, 7, v("v0")),
		ir.MakeCall(source.None, v("print_int"), []ir.Var{v("v0")}, v("v1")),
	}
	asm, err := Generate(instrs)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"movq -8(%rbp), %rdi",
		"callq print_int",
	} {
		if !strings.Contains(asm, want) {
			t.Errorf("missing %q in:\n%s", want, asm)
		}
	}
}

func TestNonIntrinsicCallIsTailCall(t *testing.T) {
	instrs := []ir.Instr{
		ir.MakeLoadIntConst(source.None, 1, v("v0")),
		ir.MakeLoadIntConst(source.None, 2, v("v1")),
		ir.MakeCall(source.None, v("helper"), []ir.Var{v("v0"), v("v1")}, v("v2")),
	}
	asm, err := Generate(instrs)
	if err != nil {
		t.Fatal(err)
	}
	callq := strings.Index(asm, "callq helper")
	if callq < 0 {
		t.Fatalf("missing call in:\n%s", asm)
	}
	tail := asm[callq:]
	for _, want := range []string{"movq %rbp, %rsp", "popq %rbp", "ret"} {
		if !strings.Contains(tail, want) {
			t.Errorf("call must be followed by frame teardown, missing %q in:\n%s", want, tail)
		}
	}
	// Arguments land in the first two integer registers.
	if !strings.Contains(asm, "movq -8(%rbp), %rdi") || !strings.Contains(asm, "movq -16(%rbp), %rsi") {
		t.Errorf("arguments not placed in %%rdi/%%rsi:\n%s", asm)
	}
}

func TestCallWithTooManyArguments(t *testing.T) {
	args := make([]ir.Var, 7)
	instrs := make([]ir.Instr, 0, 8)
	for i := range args {
		args[i] = ir.Var{Name: "v" + string(rune('0'+i))}
		instrs = append(instrs, ir.MakeLoadIntConst(source.None, int64(i), args[i]))
	}
	instrs = append(instrs, ir.MakeCall(source.None, v("helper"), args, v("v9")))
	_, err := Generate(instrs)
	if err == nil {
		t.Fatal("expected error for seven-argument call")
	}
	if diag.CodeOf(err) != diag.GenUnsupportedShape {
		t.Errorf("code = %v, want GenUnsupportedShape", diag.CodeOf(err))
	}
}

func TestEmittedCommentsRenderIR(t *testing.T) {
	instrs := []ir.Instr{
		ir.MakeLoadIntConst(source.None, 3, v("v0")),
	}
	asm, err := Generate(instrs)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(asm, "# LoadIntConst(3, v0)") {
		t.Errorf("missing IR comment in:\n%s", asm)
	}
}
