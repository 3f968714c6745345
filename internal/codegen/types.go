package codegen

import (
	"tinygo.org/x/go-llvm"
)

// ----------------------------------------------------
// ----- Type & cast resolver --------------------------
// ----------------------------------------------------

// Backend types. Sood has exactly three source type names; all three map to
// a fixed-width backend type regardless of host architecture.
var (
	integerType = llvm.Int64Type()
	floatType   = llvm.DoubleType()
	stringType  = llvm.PointerType(llvm.Int8Type(), 0)
)

// typeOf maps a source type-name identifier ("integer", "float", "string")
// to its backend type.
func typeOf(name string) (llvm.Type, error) {
	switch name {
	case "integer":
		return integerType, nil
	case "float":
		return floatType, nil
	case "string":
		return stringType, nil
	default:
		return llvm.Type{}, errUnknownType(name)
	}
}

// isInteger reports whether t is the integer backend type.
func isInteger(t llvm.Type) bool { return t == integerType }

// isFloat reports whether t is the float backend type.
func isFloat(t llvm.Type) bool { return t == floatType }

// isString reports whether t is the string backend type.
func isString(t llvm.Type) bool { return t == stringType }

// typeName returns a print-friendly name for one of the three backend
// types, for use in error messages.
func typeName(t llvm.Type) string {
	switch {
	case isInteger(t):
		return "integer"
	case isFloat(t):
		return "float"
	case isString(t):
		return "string"
	default:
		return "unknown"
	}
}

// zeroValue returns the zero-initializer for the declared backend type:
// integer -> 0, float -> 0.0, string -> pointer to a fresh empty global
// string.
func (c *Context) zeroValue(t llvm.Type) (llvm.Value, error) {
	switch {
	case isInteger(t):
		return llvm.ConstInt(integerType, 0, true), nil
	case isFloat(t):
		return llvm.ConstFloat(floatType, 0.0), nil
	case isString(t):
		return c.builder.CreateGlobalStringPtr("", "str.zero"), nil
	default:
		return llvm.Value{}, errUnknownType(typeName(t))
	}
}

// promote applies the implicit numeric promotion rule to a binary
// operation's operands: if exactly one operand is double and the
// other integer, the integer operand is converted to double via an
// unsigned-int-to-float conversion, and the result type becomes double.
// Both-integer and both-double pairs are returned unchanged. Strings are
// rejected outright.
func (c *Context) promote(lhs, rhs llvm.Value) (llvm.Value, llvm.Value, llvm.Type, error) {
	lt, rt := lhs.Type(), rhs.Type()

	if isString(lt) || isString(rt) {
		return lhs, rhs, llvm.Type{}, errUnsupportedOperandTypes("binary operation", typeName(lt), typeName(rt))
	}

	switch {
	case isInteger(lt) && isInteger(rt):
		return lhs, rhs, integerType, nil
	case isFloat(lt) && isFloat(rt):
		return lhs, rhs, floatType, nil
	case isFloat(lt) && isInteger(rt):
		rhs = c.builder.CreateUIToFP(rhs, floatType, "")
		return lhs, rhs, floatType, nil
	case isInteger(lt) && isFloat(rt):
		lhs = c.builder.CreateUIToFP(lhs, floatType, "")
		return lhs, rhs, floatType, nil
	default:
		return lhs, rhs, llvm.Type{}, errUnsupportedOperandTypes("binary operation", typeName(lt), typeName(rt))
	}
}

// castAssign implicitly casts an RHS value to the declared type of an
// assignment's LHS:
//
//   - integer target <- double source: float-to-signed-int conversion.
//   - double target  <- integer source: unsigned-int-to-float conversion.
//   - string target  <- non-string source: rejected; returns ok=false and
//     the assignment must emit no value.
//
// The RHS value is cast to fit the LHS, never the other way around.
func (c *Context) castAssign(target llvm.Type, rhs llvm.Value) (val llvm.Value, ok bool) {
	rt := rhs.Type()

	switch {
	case isInteger(target) && isFloat(rt):
		return c.builder.CreateFPToSI(rhs, integerType, ""), true
	case isFloat(target) && isInteger(rt):
		return c.builder.CreateUIToFP(rhs, floatType, ""), true
	case isString(target) && !isString(rt):
		return llvm.Value{}, false
	default:
		return rhs, true
	}
}
