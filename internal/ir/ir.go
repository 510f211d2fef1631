// Package ir defines the linear three-address intermediate
// representation between the typed AST and assembly. A program is a
// flat, append-ordered []Instr; control flow exists only as
// Label/Jump/CondJump positions in that slice — there is no basic
// block or CFG structure.
package ir

import (
	"fmt"
	"strings"

	"kielo/internal/source"
)

// Var is an opaque handle to a storage location or builtin, compared
// by name.
type Var struct {
	Name string
}

func (v Var) String() string { return v.Name }

// Unit is the shared variable standing in for every Unit-typed result.
var Unit = Var{Name: "unit"}

// Label marks a jump target, compared by name.
type Label struct {
	Name string
}

func (l Label) String() string { return l.Name }

// Kind discriminates instruction variants.
type Kind uint8

const (
	KindLabel Kind = iota
	KindLoadIntConst
	KindLoadBoolConst
	KindCopy
	KindCall
	KindJump
	KindCondJump
)

// Instr is one IR instruction: a kind plus the payload for that kind.
// Loc is carried for diagnostics and assembly comments only and is
// excluded from Equal.
type Instr struct {
	Kind Kind
	Loc  source.Pos

	Label    Label    // KindLabel
	LoadInt  LoadInt  // KindLoadIntConst
	LoadBool LoadBool // KindLoadBoolConst
	Copy     Copy     // KindCopy
	Call     Call     // KindCall
	Jump     Jump     // KindJump
	CondJump CondJump // KindCondJump
}

// LoadInt loads an integer constant into Dest.
type LoadInt struct {
	Value int64
	Dest  Var
}

// LoadBool loads a boolean constant into Dest.
type LoadBool struct {
	Value bool
	Dest  Var
}

// Copy copies Source into Dest.
type Copy struct {
	Source Var
	Dest   Var
}

// Call calls a function or builtin with Args, writing to Dest.
type Call struct {
	Fun  Var
	Args []Var
	Dest Var
}

// Jump unconditionally continues from Target.
type Jump struct {
	Target Label
}

// CondJump continues from Then when Cond is true, else from Else.
type CondJump struct {
	Cond Var
	Then Label
	Else Label
}

func MakeLabel(loc source.Pos, l Label) Instr {
	return Instr{Kind: KindLabel, Loc: loc, Label: l}
}

func MakeLoadIntConst(loc source.Pos, value int64, dest Var) Instr {
	return Instr{Kind: KindLoadIntConst, Loc: loc, LoadInt: LoadInt{Value: value, Dest: dest}}
}

func MakeLoadBoolConst(loc source.Pos, value bool, dest Var) Instr {
	return Instr{Kind: KindLoadBoolConst, Loc: loc, LoadBool: LoadBool{Value: value, Dest: dest}}
}

func MakeCopy(loc source.Pos, source, dest Var) Instr {
	return Instr{Kind: KindCopy, Loc: loc, Copy: Copy{Source: source, Dest: dest}}
}

func MakeCall(loc source.Pos, fun Var, args []Var, dest Var) Instr {
	return Instr{Kind: KindCall, Loc: loc, Call: Call{Fun: fun, Args: args, Dest: dest}}
}

func MakeJump(loc source.Pos, target Label) Instr {
	return Instr{Kind: KindJump, Loc: loc, Jump: Jump{Target: target}}
}

func MakeCondJump(loc source.Pos, cond Var, then, els Label) Instr {
	return Instr{Kind: KindCondJump, Loc: loc, CondJump: CondJump{Cond: cond, Then: then, Else: els}}
}

// String renders the instruction in the textbook form, e.g.
// "LoadIntConst(3, v0)" or "Call(+, [v0, v1], v2)".
func (i Instr) String() string {
	switch i.Kind {
	case KindLabel:
		return fmt.Sprintf("Label(%s)", i.Label)
	case KindLoadIntConst:
		return fmt.Sprintf("LoadIntConst(%d, %s)", i.LoadInt.Value, i.LoadInt.Dest)
	case KindLoadBoolConst:
		return fmt.Sprintf("LoadBoolConst(%t, %s)", i.LoadBool.Value, i.LoadBool.Dest)
	case KindCopy:
		return fmt.Sprintf("Copy(%s, %s)", i.Copy.Source, i.Copy.Dest)
	case KindCall:
		args := make([]string, len(i.Call.Args))
		for j, a := range i.Call.Args {
			args[j] = a.Name
		}
		return fmt.Sprintf("Call(%s, [%s], %s)", i.Call.Fun, strings.Join(args, ", "), i.Call.Dest)
	case KindJump:
		return fmt.Sprintf("Jump(%s)", i.Jump.Target)
	case KindCondJump:
		return fmt.Sprintf("CondJump(%s, %s, %s)", i.CondJump.Cond, i.CondJump.Then, i.CondJump.Else)
	}
	return "Invalid"
}

// Equal compares two instructions structurally, ignoring Loc.
func Equal(a, b Instr) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindLabel:
		return a.Label == b.Label
	case KindLoadIntConst:
		return a.LoadInt == b.LoadInt
	case KindLoadBoolConst:
		return a.LoadBool == b.LoadBool
	case KindCopy:
		return a.Copy == b.Copy
	case KindCall:
		if a.Call.Fun != b.Call.Fun || a.Call.Dest != b.Call.Dest || len(a.Call.Args) != len(b.Call.Args) {
			return false
		}
		for j := range a.Call.Args {
			if a.Call.Args[j] != b.Call.Args[j] {
				return false
			}
		}
		return true
	case KindJump:
		return a.Jump == b.Jump
	case KindCondJump:
		return a.CondJump == b.CondJump
	}
	return false
}

// EqualSeq compares two instruction sequences with Equal.
func EqualSeq(a, b []Instr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Vars lists every variable the instruction references, operands
// before destinations. Labels are not variables.
func (i Instr) Vars() []Var {
	switch i.Kind {
	case KindLoadIntConst:
		return []Var{i.LoadInt.Dest}
	case KindLoadBoolConst:
		return []Var{i.LoadBool.Dest}
	case KindCopy:
		return []Var{i.Copy.Source, i.Copy.Dest}
	case KindCall:
		out := make([]Var, 0, len(i.Call.Args)+2)
		out = append(out, i.Call.Fun)
		out = append(out, i.Call.Args...)
		return append(out, i.Call.Dest)
	case KindCondJump:
		return []Var{i.CondJump.Cond}
	}
	return nil
}
