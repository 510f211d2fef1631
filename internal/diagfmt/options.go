// Package diagfmt renders pipeline artifacts and diagnostics for the
// CLI: error lines, token listings, AST trees and IR dumps.
package diagfmt

// PrettyOpts configures human-readable output.
type PrettyOpts struct {
	Color bool
}
