// Package types models the closed Kielo type vocabulary:
// Int, Bool, Unit and function types.
package types

import (
	"fmt"
	"strings"
)

// Kind discriminates the type variants.
type Kind uint8

const (
	KindInt Kind = iota
	KindBool
	KindUnit
	KindFn
)

// Type is the closed sum of Kielo types.
type Type interface {
	Kind() Kind
	String() string
}

type basic struct {
	kind Kind
	name string
}

func (b *basic) Kind() Kind     { return b.kind }
func (b *basic) String() string { return b.name }

// The three basic types are shared singletons; compare with Same,
// not pointer identity, outside this package.
var (
	Int  Type = &basic{KindInt, "Int"}
	Bool Type = &basic{KindBool, "Bool"}
	Unit Type = &basic{KindUnit, "Unit"}
)

// Fn is a function type: (Params...) => Result.
type Fn struct {
	Params []Type
	Result Type
}

func (f *Fn) Kind() Kind { return KindFn }

func (f *Fn) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	fmt.Fprintf(&sb, ") => %s", f.Result)
	return sb.String()
}

// NewFn builds a function type.
func NewFn(result Type, params ...Type) *Fn {
	return &Fn{Params: params, Result: result}
}

// Same reports whether two types are equal under Kielo's structural
// rule: equality is by variant only. In particular all function types
// compare equal regardless of signature. Callers depend on this
// coarseness; do not tighten it.
func Same(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Kind() == b.Kind()
}

// IsBasic reports whether t is Int, Bool or Unit.
func IsBasic(t Type) bool {
	return t != nil && t.Kind() != KindFn
}
