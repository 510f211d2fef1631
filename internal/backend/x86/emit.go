// Package x86 turns the flat IR sequence into x86-64 assembly in GNU
// assembler syntax. Every IR variable lives in its own stack slot and
// every instruction loads its operands from memory, so the output is
// simple to follow at the cost of being naive.
package x86

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"kielo/internal/diag"
	"kielo/internal/ir"
)

// argRegisters holds the integer argument registers of the System V
// AMD64 calling convention, in order.
var argRegisters = [6]string{"%rdi", "%rsi", "%rdx", "%rcx", "%r8", "%r9"}

const scratch = "%rax"

type emitter struct {
	buf    strings.Builder
	locals *Locals
}

// Generate renders instrs as a complete assembly module exporting a
// single main symbol. The print/read support routines are declared
// extern and linked in separately.
func Generate(instrs []ir.Instr) (string, error) {
	e := &emitter{locals: NewLocals(instrs)}
	e.emitPreamble()
	for _, instr := range instrs {
		e.comment(instr.String())
		if err := e.emitInstr(instr); err != nil {
			return "", err
		}
	}
	e.emitEpilogue()
	return e.buf.String(), nil
}

func (e *emitter) line(s string) {
	e.buf.WriteString("    ")
	e.buf.WriteString(s)
	e.buf.WriteByte('\n')
}

func (e *emitter) raw(s string) {
	e.buf.WriteString(s)
	e.buf.WriteByte('\n')
}

func (e *emitter) comment(s string) {
	e.line("# " + s)
}

func (e *emitter) emitPreamble() {
	e.raw(".extern print_int")
	e.raw(".extern print_bool")
	e.raw(".extern read_int")
	e.raw("")
	e.raw(".section .text")
	e.raw("")
	e.raw(".global main")
	e.raw(".type main, @function")
	e.raw("main:")
	e.line("pushq %rbp")
	e.line("movq %rsp, %rbp")
	e.line(fmt.Sprintf("subq $%d, %%rsp", e.locals.StackUsed()))
}

func (e *emitter) emitEpilogue() {
	e.comment("return 0 from main")
	e.line("movq $0, %rax")
	e.line("movq %rbp, %rsp")
	e.line("popq %rbp")
	e.line("ret")
}

// localLabel prefixes IR labels so the assembler treats them as
// non-exported symbols.
func localLabel(l ir.Label) string {
	return ".L" + l.Name
}

func (e *emitter) emitInstr(instr ir.Instr) error {
	switch instr.Kind {
	case ir.KindLabel:
		e.raw(localLabel(instr.Label) + ":")
		return nil

	case ir.KindLoadIntConst:
		dest, err := e.locals.Ref(instr.LoadInt.Dest)
		if err != nil {
			return err
		}
		// movq's direct-to-memory form only takes sign-extended
		// 32-bit immediates; anything wider goes through a register.
		if _, convErr := safecast.Conv[int32](instr.LoadInt.Value); convErr == nil {
			e.line(fmt.Sprintf("movq $%d, %s", instr.LoadInt.Value, dest))
		} else {
			e.line(fmt.Sprintf("movabsq $%d, %s", instr.LoadInt.Value, scratch))
			e.line(fmt.Sprintf("movq %s, %s", scratch, dest))
		}
		return nil

	case ir.KindLoadBoolConst:
		dest, err := e.locals.Ref(instr.LoadBool.Dest)
		if err != nil {
			return err
		}
		value := 0
		if instr.LoadBool.Value {
			value = 1
		}
		e.line(fmt.Sprintf("movq $%d, %s", value, dest))
		return nil

	case ir.KindCopy:
		src, err := e.locals.Ref(instr.Copy.Source)
		if err != nil {
			return err
		}
		dest, err := e.locals.Ref(instr.Copy.Dest)
		if err != nil {
			return err
		}
		e.line(fmt.Sprintf("movq %s, %s", src, scratch))
		e.line(fmt.Sprintf("movq %s, %s", scratch, dest))
		return nil

	case ir.KindJump:
		e.line("jmp " + localLabel(instr.Jump.Target))
		return nil

	case ir.KindCondJump:
		cond, err := e.locals.Ref(instr.CondJump.Cond)
		if err != nil {
			return err
		}
		e.line(fmt.Sprintf("cmpq $0, %s", cond))
		e.line("jne " + localLabel(instr.CondJump.Then))
		e.line("jmp " + localLabel(instr.CondJump.Else))
		return nil

	case ir.KindCall:
		return e.emitCall(instr)
	}
	return diag.Errorf(diag.GenUnsupportedShape, instr.Loc, "cannot emit %s", instr)
}

func (e *emitter) emitCall(instr ir.Instr) error {
	call := instr.Call
	refs := make([]string, len(call.Args))
	for i, arg := range call.Args {
		ref, err := e.locals.Ref(arg)
		if err != nil {
			return err
		}
		refs[i] = ref
	}

	if intrinsic, ok := Intrinsics[call.Fun.Name]; ok {
		intrinsic(IntrinsicArgs{Args: refs, Result: scratch, Emit: e.line})
		dest, err := e.locals.Ref(call.Dest)
		if err != nil {
			return err
		}
		e.line(fmt.Sprintf("movq %s, %s", scratch, dest))
		return nil
	}

	// A plain call never returns here: the callee's result becomes
	// main's result, so the frame is torn down and control handed over
	// for good. Calls that need to resume go through an intrinsic.
	if len(refs) > len(argRegisters) {
		return diag.Errorf(diag.GenUnsupportedShape, instr.Loc,
			"call to %q passes %d arguments, at most %d are supported",
			call.Fun.Name, len(refs), len(argRegisters))
	}
	for i, ref := range refs {
		e.line(fmt.Sprintf("movq %s, %s", ref, argRegisters[i]))
	}
	e.line("callq " + call.Fun.Name)
	e.line("movq %rbp, %rsp")
	e.line("popq %rbp")
	e.line("ret")
	return nil
}
