package codegen

import (
	"tinygo.org/x/go-llvm"

	"sood/internal/ast"
)

// ----------------------------------------------------
// ----- Statement lowering -----------------------------
// ----------------------------------------------------

// lowerStmt lowers one statement, returning its value and whether it has
// one: only an ExpressionStatement (including one wrapping an Assignment)
// contributes a value to its enclosing block. hasValue is false for
// declarations, writes and control-flow statements, which produce no value
// of their own.
func lowerStmt(ctx *Context, s ast.Stmt) (v llvm.Value, hasValue bool, err error) {
	switch n := s.(type) {
	case *ast.VariableDecl:
		return llvm.Value{}, false, lowerVariableDecl(ctx, n)

	case *ast.FunctionDecl:
		return llvm.Value{}, false, lowerFunctionDecl(ctx, n)

	case *ast.Return:
		return llvm.Value{}, false, lowerReturn(ctx, n)

	case *ast.ExpressionStatement:
		v, err := lowerExpr(ctx, n.Value)
		return v, err == nil, err

	case *ast.If:
		return llvm.Value{}, false, lowerIf(ctx, n)

	case *ast.While:
		return llvm.Value{}, false, lowerWhile(ctx, n)

	case *ast.Until:
		return llvm.Value{}, false, lowerUntil(ctx, n)

	case *ast.Write:
		return llvm.Value{}, false, lowerWrite(ctx, n)

	case *ast.Read:
		return llvm.Value{}, false, errUnimplemented("read")

	default:
		panic("codegen: unhandled statement node")
	}
}

// lowerVariableDecl allocates storage for a new local, declares it in the
// current scope, and stores either its initializer (cast to the declared
// type) or the type's zero value.
func lowerVariableDecl(ctx *Context, n *ast.VariableDecl) error {
	typ, err := typeOf(n.Type.Name)
	if err != nil {
		return err
	}

	ptr := ctx.builder.CreateAlloca(typ, n.Name.Name)

	var init llvm.Value
	if n.Init != nil {
		rhs, err := lowerExpr(ctx, n.Init)
		if err != nil {
			return err
		}
		cast, ok := ctx.castAssign(typ, rhs)
		if !ok {
			return errStringCoercion(n.Name.Name)
		}
		init = cast
	} else {
		init, err = ctx.zeroValue(typ)
		if err != nil {
			return err
		}
	}

	ctx.builder.CreateStore(init, ptr)
	ctx.setLocal(n.Name.Name, ptr, typ)
	return nil
}

// lowerFunctionDecl builds the function's signature, pushes a fresh scope,
// materializes its parameters, lowers its body, and restores the builder's
// insertion point to the caller's block on return. Functions do not nest
// their scope inside an enclosing one: each FunctionDecl starts a brand
// new, unconnected frame.
func lowerFunctionDecl(ctx *Context, n *ast.FunctionDecl) error {
	retType, err := typeOf(n.ReturnType.Name)
	if err != nil {
		return err
	}

	paramTypes := make([]llvm.Type, len(n.Params))
	for i, p := range n.Params {
		pt, err := typeOf(p.Type.Name)
		if err != nil {
			return err
		}
		paramTypes[i] = pt
	}

	// The header may already exist: Generate predeclares every top-level
	// function's signature before lowering any body, so forward and
	// mutually recursive calls resolve regardless of declaration order.
	fn := ctx.module.NamedFunction(n.Name.Name)
	if fn.IsNil() {
		ftyp := llvm.FunctionType(retType, paramTypes, false)
		fn = llvm.AddFunction(ctx.module, n.Name.Name, ftyp)
		fn.SetLinkage(llvm.InternalLinkage)
	}

	callerBlock := llvm.BasicBlock{}
	haveCaller := len(ctx.scopes) > 0
	if haveCaller {
		callerBlock = ctx.currentBlock()
	}

	entry := llvm.AddBasicBlock(fn, ctx.label("entry"))
	ctx.pushScope(entry)
	ctx.builder.SetInsertPointAtEnd(entry)

	// Materialize parameters: rename the incoming SSA value to match the
	// source name, allocate stack storage, store the value, then register
	// the alloca (not the SSA value) as the local so later lowering always
	// addresses parameters the same way it addresses any other local.
	for i, p := range n.Params {
		incoming := fn.Param(i)
		incoming.SetName(p.Name.Name)

		ptr := ctx.builder.CreateAlloca(paramTypes[i], p.Name.Name+".addr")
		ctx.builder.CreateStore(incoming, ptr)
		ctx.setLocal(p.Name.Name, ptr, paramTypes[i])
	}

	if _, err := lowerExprBlock(ctx, n.Body); err != nil {
		ctx.popScope()
		return err
	}

	// A body that falls through without an explicit return yields the
	// type's zero value, matching an implicit "return 0" at the end of a
	// void-like function body.
	if !blockIsTerminated(ctx.currentBlock()) {
		zero, err := ctx.zeroValue(retType)
		if err != nil {
			ctx.popScope()
			return err
		}
		ctx.builder.CreateRet(zero)
	}

	ctx.popScope()

	if haveCaller {
		ctx.builder.SetInsertPointAtEnd(callerBlock)
	}
	return nil
}

// blockIsTerminated reports whether bb already ends in a terminator
// instruction (a ret or a branch), so lowering does not emit a second,
// unreachable terminator after an explicit Return.
func blockIsTerminated(bb llvm.BasicBlock) bool {
	last := bb.LastInstruction()
	return !last.IsNil() && !last.IsATerminatorInst().IsNil()
}

// lowerReturn lowers its operand and emits a ret instruction.
func lowerReturn(ctx *Context, n *ast.Return) error {
	v, err := lowerExpr(ctx, n.Value)
	if err != nil {
		return err
	}
	ctx.setReturnValue(v)
	ctx.builder.CreateRet(v)
	return nil
}

// lowerWrite emits a printf call appropriate to the value's backend type:
// "%d" for integer, "%f" for float, "%s" for string. No newline is added;
// any line breaks in the output come solely from decoded string escapes in
// the written value itself. Any other type (there are none today, but the
// switch is exhaustive against future backend types) is
// UnsupportedWriteType.
func lowerWrite(ctx *Context, n *ast.Write) error {
	v, err := lowerExpr(ctx, n.Value)
	if err != nil {
		return err
	}

	var spec string
	switch {
	case isInteger(v.Type()):
		spec = "%d"
	case isFloat(v.Type()):
		spec = "%f"
	case isString(v.Type()):
		spec = "%s"
	default:
		return errUnsupportedWriteType(typeName(v.Type()))
	}

	fmtPtr := ctx.formatString(spec)
	ctx.builder.CreateCall(ctx.printf, []llvm.Value{fmtPtr, v}, "")
	return nil
}

// formatString returns the cached global for a printf format specifier,
// creating it on first use. Caching keeps the module from accumulating one
// duplicate global constant per Write statement.
func (c *Context) formatString(spec string) llvm.Value {
	if g, ok := c.fmts[spec]; ok {
		return g
	}
	g := c.builder.CreateGlobalStringPtr(spec, "fmt")
	c.fmts[spec] = g
	return g
}
