package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar Code = 1001

	// Syntax
	SynUnexpectedToken   Code = 2001
	SynTrailingTokens    Code = 2002
	SynExpectExpression  Code = 2003
	SynExpectIdentifier  Code = 2004
	SynExpectIntLiteral  Code = 2005
	SynMissingSemicolon  Code = 2006
	SynBadTypeAnnotation Code = 2007
	SynVarNotAllowed     Code = 2008
	SynFnBodyNotBlock    Code = 2009
	SynMissingReturnType Code = 2010

	// Name resolution
	NameUndeclared   Code = 3001
	NameRedeclared   Code = 3002
	NameUnassignable Code = 3003

	// Types
	TypeMismatch       Code = 4001
	TypeBadOperand     Code = 4002
	TypeCondNotBool    Code = 4003
	TypeBranchMismatch Code = 4004
	TypeAssignTarget   Code = 4005
	TypeBlockResult    Code = 4006
	TypeNotCallable    Code = 4007

	// Codegen limits
	GenOutOfNames       Code = 5001
	GenUnsupportedShape Code = 5002

	// Runtime evaluation
	EvalDivideByZero Code = 6001
	EvalBadCall      Code = 6002
	EvalInputFailed  Code = 6003
)

// ID returns the stable code identifier, e.g. "SYN2001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("NAME%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("TYPE%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("EVAL%04d", ic)
	}
	return "E0000"
}

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	LexUnknownChar: "unknown character",

	SynUnexpectedToken:   "unexpected token",
	SynTrailingTokens:    "trailing input after expression",
	SynExpectExpression:  "expected an expression",
	SynExpectIdentifier:  "expected an identifier",
	SynExpectIntLiteral:  "expected an integer literal",
	SynMissingSemicolon:  "expected ';' between expressions",
	SynBadTypeAnnotation: "malformed type annotation",
	SynVarNotAllowed:     "variable declaration not allowed here",
	SynFnBodyNotBlock:    "function value must be a block",
	SynMissingReturnType: "function type needs a return type",

	NameUndeclared:   "name is not declared",
	NameRedeclared:   "name is already declared in this scope",
	NameUnassignable: "assignment to an unbound name",

	TypeMismatch:       "operand types do not match",
	TypeBadOperand:     "operand type does not match the operator signature",
	TypeCondNotBool:    "condition is not Bool",
	TypeBranchMismatch: "if/else branches have different types",
	TypeAssignTarget:   "assignment target is not an identifier",
	TypeBlockResult:    "block result is not a basic type",
	TypeNotCallable:    "name is not a function",

	GenOutOfNames:       "ran out of synthetic names",
	GenUnsupportedShape: "construct is not supported by the native backend",

	EvalDivideByZero: "division by zero",
	EvalBadCall:      "value cannot be called with these arguments",
	EvalInputFailed:  "could not read input",
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
