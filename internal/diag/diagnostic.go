package diag

import (
	"errors"
	"fmt"

	"kielo/internal/source"
)

// Diagnostic describes one user-visible failure.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Pos      source.Pos
}

// Error wraps a Diagnostic so phases can return it through the
// ordinary error path. The pipeline is fail-fast: each phase stops
// at the first Error it produces.
type Error struct {
	Diag Diagnostic
}

func (e *Error) Error() string {
	if e.Diag.Pos.IsValid() {
		return fmt.Sprintf("%s: %s %s: %s", e.Diag.Pos, e.Diag.Severity, e.Diag.Code.ID(), e.Diag.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Diag.Severity, e.Diag.Code.ID(), e.Diag.Message)
}

// Errorf builds a fail-fast error diagnostic at pos.
func Errorf(code Code, pos source.Pos, format string, args ...any) *Error {
	return &Error{
		Diag: Diagnostic{
			Severity: SevError,
			Code:     code,
			Message:  fmt.Sprintf(format, args...),
			Pos:      pos,
		},
	}
}

// CodeOf extracts the diagnostic code from err, or UnknownCode if err
// does not carry one.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Diag.Code
	}
	return UnknownCode
}

// Kind buckets codes into the coarse error taxonomy.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindLex
	KindSyntax
	KindName
	KindType
	KindCodegenLimit
	KindEval
)

func (k Kind) String() string {
	switch k {
	case KindLex:
		return "LexError"
	case KindSyntax:
		return "SyntaxError"
	case KindName:
		return "NameError"
	case KindType:
		return "TypeError"
	case KindCodegenLimit:
		return "CodegenLimitError"
	case KindEval:
		return "EvalError"
	}
	return "UnknownError"
}

// KindOf reports which taxonomy bucket a code belongs to.
func KindOf(c Code) Kind {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return KindLex
	case ic >= 2000 && ic < 3000:
		return KindSyntax
	case ic >= 3000 && ic < 4000:
		return KindName
	case ic >= 4000 && ic < 5000:
		return KindType
	case ic >= 5000 && ic < 6000:
		return KindCodegenLimit
	case ic >= 6000 && ic < 7000:
		return KindEval
	}
	return KindUnknown
}
