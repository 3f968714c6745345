package codegen

import (
	"tinygo.org/x/go-llvm"

	"sood/internal/ast"
)

// ----------------------------------------------------
// ----- Control-flow lowering --------------------------
// ----------------------------------------------------

// truthy reduces a condition value to an i1 by comparing it against the
// zero value of its own type: nonzero integer or nonzero float is true.
// Sood has no dedicated boolean type: any expression may sit in condition
// position.
func truthy(ctx *Context, v llvm.Value) (llvm.Value, error) {
	switch {
	case isInteger(v.Type()):
		zero := llvm.ConstInt(integerType, 0, true)
		return ctx.builder.CreateICmp(llvm.IntNE, v, zero, ""), nil
	case isFloat(v.Type()):
		zero := llvm.ConstFloat(floatType, 0.0)
		return ctx.builder.CreateFCmp(llvm.FloatONE, v, zero, ""), nil
	default:
		return llvm.Value{}, errUnsupportedOperandTypes("condition", typeName(v.Type()), "")
	}
}

// lowerIf lowers an if/then[/else] statement as a phi-less basic block
// state machine: pre -> {then, else} -> after. A missing else branch
// branches straight from pre's false edge to after.
func lowerIf(ctx *Context, n *ast.If) error {
	fn := ctx.currentBlock().Parent()

	thenBB := llvm.AddBasicBlock(fn, ctx.label("if_then"))
	afterBB := llvm.AddBasicBlock(fn, ctx.label("if_after"))
	elseBB := afterBB
	if n.ElseBranch != nil {
		elseBB = llvm.AddBasicBlock(fn, ctx.label("if_else"))
	}

	cond, err := lowerExpr(ctx, n.Cond)
	if err != nil {
		return err
	}
	bit, err := truthy(ctx, cond)
	if err != nil {
		return err
	}
	ctx.builder.CreateCondBr(bit, thenBB, elseBB)

	ctx.setInsertBlock(thenBB)
	if _, err := lowerExprBlock(ctx, n.Then); err != nil {
		return err
	}
	if !blockIsTerminated(ctx.currentBlock()) {
		ctx.builder.CreateBr(afterBB)
	}

	if n.ElseBranch != nil {
		ctx.setInsertBlock(elseBB)
		if err := lowerElseBranch(ctx, n.ElseBranch); err != nil {
			return err
		}
		if !blockIsTerminated(ctx.currentBlock()) {
			ctx.builder.CreateBr(afterBB)
		}
	}

	ctx.setInsertBlock(afterBB)
	return nil
}

// lowerElseBranch lowers the terminal branch of an if/else(-if) chain: a
// plain *ast.Else block, or a further *ast.If for an else-if link.
func lowerElseBranch(ctx *Context, s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.Else:
		_, err := lowerExprBlock(ctx, n.Body)
		return err
	case *ast.If:
		return lowerIf(ctx, n)
	default:
		panic("codegen: else branch is neither *ast.Else nor *ast.If")
	}
}

// lowerWhile lowers a pre-tested loop: cond -> {body -> cond, after}.
func lowerWhile(ctx *Context, n *ast.While) error {
	fn := ctx.currentBlock().Parent()

	condBB := llvm.AddBasicBlock(fn, ctx.label("while_cond"))
	bodyBB := llvm.AddBasicBlock(fn, ctx.label("while_body"))
	afterBB := llvm.AddBasicBlock(fn, ctx.label("while_after"))

	ctx.builder.CreateBr(condBB)

	ctx.setInsertBlock(condBB)
	cond, err := lowerExpr(ctx, n.Cond)
	if err != nil {
		return err
	}
	bit, err := truthy(ctx, cond)
	if err != nil {
		return err
	}
	ctx.builder.CreateCondBr(bit, bodyBB, afterBB)

	ctx.setInsertBlock(bodyBB)
	if _, err := lowerExprBlock(ctx, n.Body); err != nil {
		return err
	}
	if !blockIsTerminated(ctx.currentBlock()) {
		ctx.builder.CreateBr(condBB)
	}

	ctx.setInsertBlock(afterBB)
	return nil
}

// lowerUntil lowers a pre-tested loop that runs while its condition is
// false: semantically while(!Cond), reusing the same cond/body/after shape
// as lowerWhile with the branch targets swapped.
func lowerUntil(ctx *Context, n *ast.Until) error {
	fn := ctx.currentBlock().Parent()

	condBB := llvm.AddBasicBlock(fn, ctx.label("until_cond"))
	bodyBB := llvm.AddBasicBlock(fn, ctx.label("until_body"))
	afterBB := llvm.AddBasicBlock(fn, ctx.label("until_after"))

	ctx.builder.CreateBr(condBB)

	ctx.setInsertBlock(condBB)
	cond, err := lowerExpr(ctx, n.Cond)
	if err != nil {
		return err
	}
	bit, err := truthy(ctx, cond)
	if err != nil {
		return err
	}
	ctx.builder.CreateCondBr(bit, afterBB, bodyBB)

	ctx.setInsertBlock(bodyBB)
	if _, err := lowerExprBlock(ctx, n.Body); err != nil {
		return err
	}
	if !blockIsTerminated(ctx.currentBlock()) {
		ctx.builder.CreateBr(condBB)
	}

	ctx.setInsertBlock(afterBB)
	return nil
}
