package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sood/internal/ast"
)

// TestGenerateEmptyProgramReturnsVoid verifies an implicit main with no
// body statements still produces a verifiable module returning void.
func TestGenerateEmptyProgramReturnsVoid(t *testing.T) {
	ctx := NewContext("mod_test")
	defer ctx.Dispose()

	err := ctx.Generate(block())
	require.NoError(t, err)
	require.NoError(t, ctx.Verify())

	ir := ctx.Module().String()
	assert.Contains(t, ir, "define void @main")
	assert.Contains(t, ir, "ret void")
}

// TestGenerateDeclarationAndWrite verifies a declaration followed by a
// write lowers to a verifiable module that calls printf.
func TestGenerateDeclarationAndWrite(t *testing.T) {
	ctx := NewContext("mod_test")
	defer ctx.Dispose()

	tree := block(
		decl("integer", "x", intLit(42)),
		write(ident("x")),
	)

	require.NoError(t, ctx.Generate(tree))
	require.NoError(t, ctx.Verify())

	ir := ctx.Module().String()
	assert.Contains(t, ir, "call i32 (i8*, ...) @printf")
}

// TestGenerateFunctionDeclForwardCall verifies a function defined after
// its first call site in source order still resolves, because Generate
// predeclares every top-level function signature before lowering bodies.
func TestGenerateFunctionDeclForwardCall(t *testing.T) {
	ctx := NewContext("mod_test")
	defer ctx.Dispose()

	tree := block(
		exprStmt(&ast.FunctionCall{Callee: ident("addOne"), Args: []ast.Expr{intLit(41)}}),
		&ast.FunctionDecl{
			Name:       ident("addOne"),
			ReturnType: typeIdent("integer"),
			Params:     []*ast.Param{{Type: typeIdent("integer"), Name: ident("n")}},
			Body: block(
				&ast.Return{Value: binary(ast.OpAdd, ident("n"), intLit(1))},
			),
		},
	)

	require.NoError(t, ctx.Generate(tree))
	require.NoError(t, ctx.Verify())

	ir := ctx.Module().String()
	assert.True(t, strings.Contains(ir, "define internal i64 @addOne"))
	assert.True(t, strings.Contains(ir, "call i64 @addOne"))
}
