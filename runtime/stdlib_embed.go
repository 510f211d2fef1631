// Package runtimeembed provides the embedded assembly runtime that
// compiled programs link against.
package runtimeembed

import _ "embed"

//go:embed asm/stdlib.s
var stdlibSource []byte

// StdlibSource returns the runtime assembly text providing _start and
// the print/read support routines.
func StdlibSource() []byte {
	return stdlibSource
}
