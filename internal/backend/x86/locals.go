package x86

import (
	"fmt"

	"kielo/internal/diag"
	"kielo/internal/ir"
	"kielo/internal/source"
)

// Locals maps every IR variable referenced by an instruction sequence
// to a frame-relative stack slot. Slots are 8 bytes wide and grow
// downward from the frame base in first-occurrence order: the first
// variable lives at -8(%rbp), the second at -16(%rbp), and so on.
type Locals struct {
	offsets map[ir.Var]int
	order   []ir.Var
}

// NewLocals scans instrs and assigns a slot to each distinct variable.
func NewLocals(instrs []ir.Instr) *Locals {
	l := &Locals{offsets: make(map[ir.Var]int)}
	for _, instr := range instrs {
		for _, v := range instr.Vars() {
			if _, seen := l.offsets[v]; seen {
				continue
			}
			l.offsets[v] = -8 * (len(l.order) + 1)
			l.order = append(l.order, v)
		}
	}
	return l
}

// Ref returns the memory operand for v, e.g. "-8(%rbp)".
func (l *Locals) Ref(v ir.Var) (string, error) {
	off, ok := l.offsets[v]
	if !ok {
		return "", diag.Errorf(diag.GenUnsupportedShape, source.None, "no stack slot for %q", v.Name)
	}
	return fmt.Sprintf("%d(%%rbp)", off), nil
}

// StackUsed reports the bytes of stack space the frame must reserve.
func (l *Locals) StackUsed() int {
	return 8 * len(l.order)
}

// Vars returns the variables in slot order.
func (l *Locals) Vars() []ir.Var {
	return l.order
}
