package diagfmt

import (
	"fmt"
	"io"

	"kielo/internal/ir"
)

// FormatIR writes one instruction per line. Labels sit flush left so
// jump targets stand out in the listing.
func FormatIR(w io.Writer, instrs []ir.Instr) error {
	for _, instr := range instrs {
		indent := "    "
		if instr.Kind == ir.KindLabel {
			indent = ""
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", indent, instr); err != nil {
			return err
		}
	}
	return nil
}
