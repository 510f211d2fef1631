package diagfmt

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"kielo/internal/diag"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	codeColor    = color.New(color.Bold)
)

func severityText(sev diag.Severity, useColor bool) string {
	text := sev.String()
	if !useColor {
		return text
	}
	switch sev {
	case diag.SevError:
		return errorColor.Sprint(text)
	case diag.SevWarning:
		return warningColor.Sprint(text)
	default:
		return infoColor.Sprint(text)
	}
}

// PrettyDiagnostic prints one diagnostic as
// <path>:<line>:<col>: <severity> <CODE>: <message>
// omitting the position segment when it is unknown.
func PrettyDiagnostic(w io.Writer, path string, d diag.Diagnostic, opts PrettyOpts) {
	if path != "" {
		fmt.Fprintf(w, "%s:", path)
	}
	if d.Pos.IsValid() {
		fmt.Fprintf(w, "%d:%d:", d.Pos.Line, d.Pos.Column)
	}
	if path != "" || d.Pos.IsValid() {
		fmt.Fprint(w, " ")
	}

	id := d.Code.ID()
	if opts.Color {
		id = codeColor.Sprint(id)
	}
	fmt.Fprintf(w, "%s %s: %s\n", severityText(d.Severity, opts.Color), id, d.Message)
}

// PrettyError renders err; diagnostics from the pipeline get the
// structured format, anything else is printed verbatim.
func PrettyError(w io.Writer, path string, err error, opts PrettyOpts) {
	var de *diag.Error
	if errors.As(err, &de) {
		PrettyDiagnostic(w, path, de.Diag, opts)
		return
	}
	fmt.Fprintf(w, "%s: %v\n", severityText(diag.SevError, opts.Color), err)
}
