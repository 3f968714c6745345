package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sood/internal/ast"
)

// TestVariableDeclDefaultsToZeroValue verifies a declaration with no
// initializer stores the type's zero value rather than leaving storage
// uninitialized.
func TestVariableDeclDefaultsToZeroValue(t *testing.T) {
	ctx := NewContext("mod_test")
	defer ctx.Dispose()

	tree := block(
		decl("integer", "x", nil),
		write(ident("x")),
	)

	require.NoError(t, ctx.Generate(tree))
	require.NoError(t, ctx.Verify())

	ir := ctx.Module().String()
	assert.Contains(t, ir, "store i64 0")
}

// TestFunctionDeclFallsThroughToZeroReturn verifies a function body that
// does not end in an explicit Return still terminates with a ret of the
// declared return type's zero value.
func TestFunctionDeclFallsThroughToZeroReturn(t *testing.T) {
	ctx := NewContext("mod_test")
	defer ctx.Dispose()

	tree := block(
		&ast.FunctionDecl{
			Name:       ident("noop"),
			ReturnType: typeIdent("integer"),
			Body:       block(write(intLit(1))),
		},
	)

	require.NoError(t, ctx.Generate(tree))
	require.NoError(t, ctx.Verify())

	ir := ctx.Module().String()
	assert.Contains(t, ir, "define internal i64 @noop")
	assert.Contains(t, ir, "ret i64 0")
}

// TestFunctionParamsAddressable verifies parameters are materialized as
// stack allocas, so assigning to a parameter inside the function body
// does not fail with UnknownIdentifier or attempt to mutate an SSA value.
func TestFunctionParamsAddressable(t *testing.T) {
	ctx := NewContext("mod_test")
	defer ctx.Dispose()

	tree := block(
		&ast.FunctionDecl{
			Name:       ident("bump"),
			ReturnType: typeIdent("integer"),
			Params:     []*ast.Param{{Type: typeIdent("integer"), Name: ident("n")}},
			Body: block(
				exprStmt(assign("n", binary(ast.OpAdd, ident("n"), intLit(1)))),
				&ast.Return{Value: ident("n")},
			),
		},
	)

	require.NoError(t, ctx.Generate(tree))
	require.NoError(t, ctx.Verify())
}

// TestReadIsUnimplemented verifies Read always fails with Unimplemented,
// since it is reserved syntax with no lowering rule.
func TestReadIsUnimplemented(t *testing.T) {
	ctx := NewContext("mod_test")
	defer ctx.Dispose()

	tree := block(&ast.Read{})

	err := ctx.Generate(tree)
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, Unimplemented, cerr.Kind)
}

// TestWriteEachBackendType verifies Write accepts all three backend
// types without error.
func TestWriteEachBackendType(t *testing.T) {
	ctx := NewContext("mod_test")
	defer ctx.Dispose()

	tree := block(
		write(intLit(1)),
		write(floatLit(1.5)),
		write(strLit("ok")),
	)

	require.NoError(t, ctx.Generate(tree))
	require.NoError(t, ctx.Verify())
}
