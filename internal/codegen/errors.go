package codegen

import "fmt"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Kind differentiates the categories of error the lowering pipeline can
// raise. All lowering errors are raised as an *Error carrying one of these
// kinds; no lowering rule returns a null placeholder on failure.
type Kind int

const (
	UnknownType Kind = iota
	UnknownIdentifier
	UnknownFunction
	InvalidUnaryOp
	InvalidBinaryOp
	UnsupportedOperandTypes
	UnsupportedWriteType
	StringCoercion
	Unimplemented
	ToolchainFailure
)

var kindNames = [...]string{
	UnknownType:             "UnknownType",
	UnknownIdentifier:       "UnknownIdentifier",
	UnknownFunction:         "UnknownFunction",
	InvalidUnaryOp:          "InvalidUnaryOp",
	InvalidBinaryOp:         "InvalidBinaryOp",
	UnsupportedOperandTypes: "UnsupportedOperandTypes",
	UnsupportedWriteType:    "UnsupportedWriteType",
	StringCoercion:          "StringCoercion",
	Unimplemented:           "Unimplemented",
	ToolchainFailure:        "ToolchainFailure",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Error is the single error type raised by every lowering rule. It carries
// a Kind for programmatic matching (via errors.As) and a human-readable
// message for the driver to print.
type Error struct {
	Kind    Kind
	Message string
	Wrapped error // non-nil when Error wraps an underlying cause
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// newError builds an *Error of the given kind with a formatted message.
func newError(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// errUnknownType reports a type-name identifier outside {integer, float, string}.
func errUnknownType(name string) error {
	return newError(UnknownType, "unknown type %q", name)
}

// errUnknownIdentifier reports an unresolved symbol at lowering time.
func errUnknownIdentifier(name string) error {
	return newError(UnknownIdentifier, "unresolved identifier %q", name)
}

// errUnknownFunction reports a call to a function not declared in the module.
func errUnknownFunction(name string) error {
	return newError(UnknownFunction, "call to undeclared function %q", name)
}

// errInvalidUnaryOp reports an operator code outside the unary closed set.
func errInvalidUnaryOp(op fmt.Stringer) error {
	return newError(InvalidUnaryOp, "invalid unary operator %s", op)
}

// errInvalidBinaryOp reports an operator code outside the binary closed set.
func errInvalidBinaryOp(op fmt.Stringer) error {
	return newError(InvalidBinaryOp, "invalid binary operator %s", op)
}

// errUnsupportedOperandTypes reports e.g. a comparison between strings. op
// is a short description of the operation being attempted (an operator
// spelling, or a generic phrase when no single operator is involved).
func errUnsupportedOperandTypes(op string, lhs, rhs string) error {
	return newError(UnsupportedOperandTypes, "operator %s not supported between %s and %s", op, lhs, rhs)
}

// errUnsupportedWriteType reports a write expression whose type is neither
// numeric nor string.
func errUnsupportedWriteType(typ string) error {
	return newError(UnsupportedWriteType, "cannot write value of type %s", typ)
}

// errStringCoercion reports an implicit assignment between string and
// non-string types, for implementations that harden the no-op into a hard
// error (see the Open Question this pins).
func errStringCoercion(target string) error {
	return newError(StringCoercion, "cannot implicitly coerce into string variable %q", target)
}

// errUnimplemented reports use of a reserved-but-unimplemented feature.
func errUnimplemented(feature string) error {
	return newError(Unimplemented, "%s is not implemented", feature)
}

// errToolchainFailure reports a failure in a backend toolchain stage:
// module verification, JIT setup, target lookup, and object emission or
// writing. The gcc link step in cmd/sood reports its own failure and does
// not use this kind.
func errToolchainFailure(stage, details string) error {
	return newError(ToolchainFailure, "%s: %s", stage, details)
}
