package source

import (
	"fmt"
)

// Pos is a 1-based line/column position in the source text.
// The zero value means "no position" (synthetic nodes, end-of-input).
type Pos struct {
	Line   int
	Column int
}

// None is the absent position.
var None = Pos{}

func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "(?, ?)"
	}
	return fmt.Sprintf("(%d, %d)", p.Line, p.Column)
}

// Advance returns the position after consuming text.
// Newlines reset the column to 1.
func (p Pos) Advance(text string) Pos {
	for _, r := range text {
		if r == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}
	return p
}
