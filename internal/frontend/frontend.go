// Package frontend marks the boundary between Sood's lowering pipeline and
// its lexer/parser, which are explicitly out of scope for this module (see
// the language specification's non-goals): a real build wires in an
// external collaborator that turns source text into a *ast.Block. Parse
// exists only so the CLI driver and tests have a single call site to swap
// a real parser into later, instead of constructing syntax trees by hand
// at every call site.
package frontend

import (
	"errors"

	"sood/internal/ast"
)

// ErrNoParser is returned by Parse: this module ships the lowering
// pipeline only, not a lexer or parser.
var ErrNoParser = errors.New("frontend: no parser wired in; construct an *ast.Block directly or supply an external parser")

// Parse is a placeholder entry point for a Sood source-to-syntax-tree
// front end. It always fails with ErrNoParser; callers that already have
// a tree (tests, an external parser) should skip this and call
// codegen.(*Context).Generate directly.
func Parse(src string) (*ast.Block, error) {
	_ = src
	return nil, ErrNoParser
}
