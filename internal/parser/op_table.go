package parser

// Binary operator levels, lowest precedence first. Every level is
// left-associative except assignment, which parseBinary special-cases
// by recursing back into the full grammar for its right-hand side.
var precLevels = [][]string{
	{"="},
	{"or"},
	{"and"},
	{"==", "!="},
	{"<", "<=", ">", ">="},
	{"+", "-"},
	{"*", "/", "%"},
}

const assignLevel = 0

// unaryOps are the prefix operators accepted by parseFactor.
var unaryOps = []string{"-", "not"}
