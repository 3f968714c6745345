package codegen

import (
	"tinygo.org/x/go-llvm"

	"sood/internal/ast"
)

// ----------------------------------------------------
// ----- Expression lowering ----------------------------
// ----------------------------------------------------

// lowerExpr lowers e into one LLVM value in ctx's current basic block. It
// exhaustively matches every Expr variant in package ast; an unmatched type
// is a compiler bug, not a user error, and panics.
func lowerExpr(ctx *Context, e ast.Expr) (llvm.Value, error) {
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		return llvm.ConstInt(integerType, uint64(n.Value), true), nil

	case *ast.FloatLiteral:
		return llvm.ConstFloat(floatType, n.Value), nil

	case *ast.StringLiteral:
		return ctx.builder.CreateGlobalStringPtr(n.Decoded(), "str"), nil

	case *ast.Identifier:
		return lowerIdentifier(ctx, n)

	case *ast.UnaryExpr:
		return lowerUnaryExpr(ctx, n)

	case *ast.BinaryExpr:
		return lowerBinaryExpr(ctx, n)

	case *ast.FunctionCall:
		return lowerFunctionCall(ctx, n)

	case *ast.Block:
		return lowerExprBlock(ctx, n)

	case *ast.Assignment:
		return lowerAssignment(ctx, n)

	default:
		panic("codegen: unhandled expression node")
	}
}

// lowerIdentifier loads the named local's current value. A miss is a user
// error (UnknownIdentifier), not a compiler bug: the resolver has no
// independent scope-check pass, so an unbound reference only surfaces here.
func lowerIdentifier(ctx *Context, n *ast.Identifier) (llvm.Value, error) {
	ptr, _, ok := ctx.getLocal(n.Name)
	if !ok {
		return llvm.Value{}, errUnknownIdentifier(n.Name)
	}
	return ctx.builder.CreateLoad(ptr, n.Name), nil
}

// lowerUnaryExpr lowers "not" (logical/bitwise complement) and "negate"
// (arithmetic negation). Any other Op reaching here is InvalidUnaryOp: the
// parser may accept a wider operator grammar than lowering supports.
func lowerUnaryExpr(ctx *Context, n *ast.UnaryExpr) (llvm.Value, error) {
	v, err := lowerExpr(ctx, n.Operand)
	if err != nil {
		return llvm.Value{}, err
	}

	switch n.Op {
	case ast.OpNot:
		if isFloat(v.Type()) {
			return llvm.Value{}, errUnsupportedOperandTypes(n.Op.String(), typeName(v.Type()), "")
		}
		return ctx.builder.CreateNot(v, ""), nil
	case ast.OpNeg:
		if isFloat(v.Type()) {
			return ctx.builder.CreateFNeg(v, ""), nil
		}
		return ctx.builder.CreateNeg(v, ""), nil
	default:
		return llvm.Value{}, errInvalidUnaryOp(n.Op)
	}
}

// lowerBinaryExpr lowers the arithmetic, comparison and logical binary
// operators over the promoted operand pair.
func lowerBinaryExpr(ctx *Context, n *ast.BinaryExpr) (llvm.Value, error) {
	lhs, err := lowerExpr(ctx, n.Left)
	if err != nil {
		return llvm.Value{}, err
	}
	rhs, err := lowerExpr(ctx, n.Right)
	if err != nil {
		return llvm.Value{}, err
	}

	lhs, rhs, typ, err := ctx.promote(lhs, rhs)
	if err != nil {
		return llvm.Value{}, err
	}
	float := isFloat(typ)

	switch n.Op {
	case ast.OpAdd:
		if float {
			return ctx.builder.CreateFAdd(lhs, rhs, ""), nil
		}
		return ctx.builder.CreateAdd(lhs, rhs, ""), nil
	case ast.OpSub:
		if float {
			return ctx.builder.CreateFSub(lhs, rhs, ""), nil
		}
		return ctx.builder.CreateSub(lhs, rhs, ""), nil
	case ast.OpMul:
		if float {
			return ctx.builder.CreateFMul(lhs, rhs, ""), nil
		}
		return ctx.builder.CreateMul(lhs, rhs, ""), nil
	case ast.OpDiv:
		if float {
			return ctx.builder.CreateFDiv(lhs, rhs, ""), nil
		}
		return ctx.builder.CreateSDiv(lhs, rhs, ""), nil
	case ast.OpMod:
		if float {
			return ctx.builder.CreateFRem(lhs, rhs, ""), nil
		}
		return ctx.builder.CreateSRem(lhs, rhs, ""), nil
	case ast.OpAnd:
		if float {
			return llvm.Value{}, errUnsupportedOperandTypes(n.Op.String(), "float", "float")
		}
		return ctx.builder.CreateAnd(lhs, rhs, ""), nil
	case ast.OpOr:
		if float {
			return llvm.Value{}, errUnsupportedOperandTypes(n.Op.String(), "float", "float")
		}
		return ctx.builder.CreateOr(lhs, rhs, ""), nil
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return lowerComparison(ctx, n.Op, lhs, rhs, float), nil
	default:
		return llvm.Value{}, errInvalidBinaryOp(n.Op)
	}
}

// lowerComparison lowers one of the six comparison operators, zero-extending
// the i1 result to the integer backend type so comparisons compose with
// arithmetic the way an untyped boolean would: conditions are plain
// integer values tested against zero, there is no separate bool type.
func lowerComparison(ctx *Context, op ast.Op, lhs, rhs llvm.Value, float bool) llvm.Value {
	var bit llvm.Value
	if float {
		var pred llvm.FloatPredicate
		switch op {
		case ast.OpEq:
			pred = llvm.FloatOEQ
		case ast.OpNe:
			pred = llvm.FloatONE
		case ast.OpLt:
			pred = llvm.FloatOLT
		case ast.OpLe:
			pred = llvm.FloatOLE
		case ast.OpGt:
			pred = llvm.FloatOGT
		default:
			pred = llvm.FloatOGE
		}
		bit = ctx.builder.CreateFCmp(pred, lhs, rhs, "")
	} else {
		var pred llvm.IntPredicate
		switch op {
		case ast.OpEq:
			pred = llvm.IntEQ
		case ast.OpNe:
			pred = llvm.IntNE
		case ast.OpLt:
			pred = llvm.IntSLT
		case ast.OpLe:
			pred = llvm.IntSLE
		case ast.OpGt:
			pred = llvm.IntSGT
		default:
			pred = llvm.IntSGE
		}
		bit = ctx.builder.CreateICmp(pred, lhs, rhs, "")
	}
	return ctx.builder.CreateZExt(bit, integerType, "")
}

// lowerFunctionCall looks up the callee in the module, lowers its arguments
// left to right, and emits the call.
func lowerFunctionCall(ctx *Context, n *ast.FunctionCall) (llvm.Value, error) {
	fn := ctx.module.NamedFunction(n.Callee.Name)
	if fn.IsNil() {
		return llvm.Value{}, errUnknownFunction(n.Callee.Name)
	}

	args := make([]llvm.Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := lowerExpr(ctx, a)
		if err != nil {
			return llvm.Value{}, err
		}
		args = append(args, v)
	}

	return ctx.builder.CreateCall(fn, args, ""), nil
}

// lowerExprBlock lowers a Block used in expression position (a function
// body, or a then/else/loop body), yielding the value of its last statement
// (or the integer zero value if the block is empty or its last statement
// has no value, e.g. a bare Write).
func lowerExprBlock(ctx *Context, n *ast.Block) (llvm.Value, error) {
	var last llvm.Value
	have := false
	for _, s := range n.Stmts {
		v, hasValue, err := lowerStmt(ctx, s)
		if err != nil {
			return llvm.Value{}, err
		}
		last, have = v, hasValue
	}
	if !have {
		return llvm.ConstInt(integerType, 0, true), nil
	}
	return last, nil
}

// lowerAssignment lowers the RHS, casts it to the target's declared type,
// and stores it. An assignment yields the (possibly cast) stored value, so
// assignments may themselves appear in expression position.
func lowerAssignment(ctx *Context, n *ast.Assignment) (llvm.Value, error) {
	ptr, typ, ok := ctx.getLocal(n.Target.Name)
	if !ok {
		return llvm.Value{}, errUnknownIdentifier(n.Target.Name)
	}

	rhs, err := lowerExpr(ctx, n.Value)
	if err != nil {
		return llvm.Value{}, err
	}

	cast, ok := ctx.castAssign(typ, rhs)
	if !ok {
		return llvm.Value{}, errStringCoercion(n.Target.Name)
	}

	ctx.builder.CreateStore(cast, ptr)
	return cast, nil
}
