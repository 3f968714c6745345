package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/go-llvm"
)

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name    string
		want    llvm.Type
		wantErr bool
	}{
		{"integer", integerType, false},
		{"float", floatType, false},
		{"string", stringType, false},
		{"bogus", llvm.Type{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := typeOf(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				var cerr *Error
				require.ErrorAs(t, err, &cerr)
				assert.Equal(t, UnknownType, cerr.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestPromoteMixedOperands verifies the implicit numeric promotion rule:
// an integer paired with a float is converted to float, with the float
// operand returned unchanged.
func TestPromoteMixedOperands(t *testing.T) {
	ctx := NewContext("mod_test")
	defer ctx.Dispose()

	fn := llvm.AddFunction(ctx.module, "scratch", llvm.FunctionType(llvm.VoidType(), nil, false))
	bb := llvm.AddBasicBlock(fn, "entry")
	ctx.builder.SetInsertPointAtEnd(bb)

	i := llvm.ConstInt(integerType, 7, true)
	f := llvm.ConstFloat(floatType, 2.5)

	lhs, rhs, typ, err := ctx.promote(i, f)
	require.NoError(t, err)
	assert.True(t, isFloat(typ))
	assert.True(t, isFloat(rhs.Type()))
	assert.True(t, isFloat(lhs.Type()))
}

// TestPromoteRejectsString verifies a string operand is never a valid
// promotion target, regardless of the other operand's type.
func TestPromoteRejectsString(t *testing.T) {
	ctx := NewContext("mod_test")
	defer ctx.Dispose()

	fn := llvm.AddFunction(ctx.module, "scratch", llvm.FunctionType(llvm.VoidType(), nil, false))
	bb := llvm.AddBasicBlock(fn, "entry")
	ctx.builder.SetInsertPointAtEnd(bb)

	s := ctx.builder.CreateGlobalStringPtr("hi", "s")
	i := llvm.ConstInt(integerType, 1, true)

	_, _, _, err := ctx.promote(s, i)
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, UnsupportedOperandTypes, cerr.Kind)
}

// TestCastAssignCastsRHSNotLHS verifies assigning a float expression to an
// integer-typed target casts the RHS value (float-to-signed-int), never
// the LHS pointer.
func TestCastAssignCastsRHSNotLHS(t *testing.T) {
	ctx := NewContext("mod_test")
	defer ctx.Dispose()

	fn := llvm.AddFunction(ctx.module, "scratch", llvm.FunctionType(llvm.VoidType(), nil, false))
	bb := llvm.AddBasicBlock(fn, "entry")
	ctx.builder.SetInsertPointAtEnd(bb)

	rhs := llvm.ConstFloat(floatType, 3.9)
	cast, ok := ctx.castAssign(integerType, rhs)
	require.True(t, ok)
	assert.True(t, isInteger(cast.Type()))
}

// TestCastAssignRejectsStringCoercion verifies assigning a non-string
// value into a string-typed target is refused rather than silently
// misinterpreted.
func TestCastAssignRejectsStringCoercion(t *testing.T) {
	ctx := NewContext("mod_test")
	defer ctx.Dispose()

	fn := llvm.AddFunction(ctx.module, "scratch", llvm.FunctionType(llvm.VoidType(), nil, false))
	bb := llvm.AddBasicBlock(fn, "entry")
	ctx.builder.SetInsertPointAtEnd(bb)

	rhs := llvm.ConstInt(integerType, 1, true)
	_, ok := ctx.castAssign(stringType, rhs)
	assert.False(t, ok)
}
