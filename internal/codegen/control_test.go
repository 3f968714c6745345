package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sood/internal/ast"
)

// TestLowerIfThenElse verifies an if/else statement lowers to a
// verifiable module with distinct then/else/after basic blocks.
func TestLowerIfThenElse(t *testing.T) {
	ctx := NewContext("mod_test")
	defer ctx.Dispose()

	tree := block(
		decl("integer", "x", intLit(0)),
		&ast.If{
			Cond:       ident("x"),
			Then:       block(write(intLit(1))),
			ElseBranch: &ast.Else{Body: block(write(intLit(2)))},
		},
	)

	require.NoError(t, ctx.Generate(tree))
	require.NoError(t, ctx.Verify())

	ir := ctx.Module().String()
	assert.Contains(t, ir, "if_then")
	assert.Contains(t, ir, "if_else")
	assert.Contains(t, ir, "if_after")
}

// TestLowerIfWithoutElse verifies an if with no else branches directly
// from the condition's false edge to the after block.
func TestLowerIfWithoutElse(t *testing.T) {
	ctx := NewContext("mod_test")
	defer ctx.Dispose()

	tree := block(
		decl("integer", "x", intLit(1)),
		&ast.If{Cond: ident("x"), Then: block(write(intLit(1)))},
	)

	require.NoError(t, ctx.Generate(tree))
	require.NoError(t, ctx.Verify())
}

// TestLowerWhileLoop verifies a while loop lowers to a verifiable module
// with cond/body/after blocks, testing its condition before the first
// iteration.
func TestLowerWhileLoop(t *testing.T) {
	ctx := NewContext("mod_test")
	defer ctx.Dispose()

	tree := block(
		decl("integer", "i", intLit(0)),
		&ast.While{
			Cond: binary(ast.OpLt, ident("i"), intLit(10)),
			Body: block(exprStmt(assign("i", binary(ast.OpAdd, ident("i"), intLit(1))))),
		},
	)

	require.NoError(t, ctx.Generate(tree))
	require.NoError(t, ctx.Verify())

	ir := ctx.Module().String()
	assert.Contains(t, ir, "while_cond")
	assert.Contains(t, ir, "while_body")
	assert.Contains(t, ir, "while_after")
}

// TestLowerUntilLoop verifies an until loop runs its body while its
// condition is false, the mirror image of while's branch targets.
func TestLowerUntilLoop(t *testing.T) {
	ctx := NewContext("mod_test")
	defer ctx.Dispose()

	tree := block(
		decl("integer", "i", intLit(0)),
		&ast.Until{
			Cond: binary(ast.OpEq, ident("i"), intLit(10)),
			Body: block(exprStmt(assign("i", binary(ast.OpAdd, ident("i"), intLit(1))))),
		},
	)

	require.NoError(t, ctx.Generate(tree))
	require.NoError(t, ctx.Verify())

	ir := ctx.Module().String()
	assert.Contains(t, ir, "until_cond")
	assert.Contains(t, ir, "until_body")
	assert.Contains(t, ir, "until_after")
}

// TestLowerElseIfChain verifies a chained else-if (ElseBranch holding a
// nested *ast.If) lowers without producing an unreachable block.
func TestLowerElseIfChain(t *testing.T) {
	ctx := NewContext("mod_test")
	defer ctx.Dispose()

	tree := block(
		decl("integer", "x", intLit(2)),
		&ast.If{
			Cond: binary(ast.OpEq, ident("x"), intLit(1)),
			Then: block(write(intLit(1))),
			ElseBranch: &ast.If{
				Cond:       binary(ast.OpEq, ident("x"), intLit(2)),
				Then:       block(write(intLit(2))),
				ElseBranch: &ast.Else{Body: block(write(intLit(0)))},
			},
		},
	)

	require.NoError(t, ctx.Generate(tree))
	require.NoError(t, ctx.Verify())
}
