// Package codegen lowers a Sood syntax tree (package ast) into LLVM IR
// using the tinygo.org/x/go-llvm bindings, and drives verification, textual
// IR printing, JIT execution and object-file emission of the result.
//
// Lowering state (builder, module, scope stack, printf handles) is threaded
// explicitly through a *Context, so one process can build several
// independent modules. The backend types in types.go are package-level
// values of LLVM's global context, and every Context builds into that one
// shared LLVM context.
package codegen

import (
	"fmt"
	"io"
	"os"

	"tinygo.org/x/go-llvm"

	"sood/internal/ast"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// symtab maps a source identifier to the stack alloca that holds it and
// the backend type it was declared with.
type symtab map[string]symbol

type symbol struct {
	value llvm.Value
	typ   llvm.Type
}

// scope is one frame on the Context's scope stack: a symbol table, the
// basic block lowering is currently appending instructions to, and a slot
// for the function's pending return value. Scopes are created on function
// entry (including the implicit top-level main) and torn down on function
// exit; they are not created for nested if/while/until bodies, which share
// their enclosing function's single frame.
type scope struct {
	block  llvm.BasicBlock
	locals symtab
	ret    llvm.Value
}

// Context tracks all state threaded through IR emission for one
// compilation unit: the target module, the scope stack, the printf/fflush
// handles, and the cached format-specifier globals.
type Context struct {
	llctx   llvm.Context
	builder llvm.Builder
	module  llvm.Module

	scopes []*scope // LIFO stack; top is scopes[len(scopes)-1].

	printf llvm.Value            // printf-like external variadic function.
	fflush llvm.Value            // libc fflush, called once as main returns.
	fmts   map[string]llvm.Value // format-specifier globals keyed by specifier text, e.g. "%d".

	labels map[string]int // per-kind counters for readable basic block names.

	Log func(format string, args ...interface{}) // optional tracer hook; no lowering step calls it.
}

// defaultModuleName is used when no name is supplied to NewContext.
const defaultModuleName = "mod_main"

// ---------------------
// ----- functions -----
// ---------------------

// NewContext constructs a Lowering Context targeting a fresh LLVM module
// named name (defaulting to "mod_main"), and declares the printf-like
// external function with C calling convention and external linkage.
func NewContext(name string) *Context {
	if name == "" {
		name = defaultModuleName
	}
	// The global context, because the backend types in types.go (and
	// llvm.AddBasicBlock) belong to it.
	llctx := llvm.GlobalContext()
	b := llctx.NewBuilder()
	m := llctx.NewModule(name)

	c := &Context{
		llctx:   llctx,
		builder: b,
		module:  m,
		fmts:    make(map[string]llvm.Value, 2),
		labels:  make(map[string]int, 8),
	}
	c.printf = c.declarePrintf()
	c.fflush = c.declareFflush()
	return c
}

// Dispose releases the Context's builder and module; the shared global LLVM
// context stays alive. It must be called at most once, after every other
// Context method has returned, and not at all after RunJIT, whose execution
// engine then owns the module.
func (c *Context) Dispose() {
	c.builder.Dispose()
	c.module.Dispose()
}

// declarePrintf declares libc's variadic printf: i32 printf(i8*, ...).
func (c *Context) declarePrintf() llvm.Value {
	params := []llvm.Type{stringType}
	ftyp := llvm.FunctionType(llvm.Int32Type(), params, true)
	fn := llvm.AddFunction(c.module, "printf", ftyp)
	fn.SetFunctionCallConv(llvm.CCallConv)
	return fn
}

// declareFflush declares libc's i32 fflush(i8*). main calls it with a null
// stream pointer (flush every open stream) just before returning, so a
// JIT-executed program's stdout is visible to its caller without relying
// on process-exit flushing, which a JIT run never triggers.
func (c *Context) declareFflush() llvm.Value {
	params := []llvm.Type{stringType}
	ftyp := llvm.FunctionType(llvm.Int32Type(), params, false)
	fn := llvm.AddFunction(c.module, "fflush", ftyp)
	fn.SetFunctionCallConv(llvm.CCallConv)
	return fn
}

// label returns a deterministic, readable name for the next basic block of
// the given kind, e.g. label("if_then") -> "if_then.0", then "if_then.1".
func (c *Context) label(kind string) string {
	n := c.labels[kind]
	c.labels[kind] = n + 1
	return fmt.Sprintf("%s.%d", kind, n)
}

// ------------------------------
// ----- Scope stack access -----
// ------------------------------

// pushScope creates a new scope frame with the given starting basic block
// and pushes it onto the stack.
func (c *Context) pushScope(block llvm.BasicBlock) {
	c.scopes = append(c.scopes, &scope{
		block:  block,
		locals: make(symtab, 8),
	})
}

// popScope destroys the top scope frame.
func (c *Context) popScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// top returns the current (innermost) scope frame. It panics if called
// outside of any scope, which would be a compiler bug: every lowering
// entry point (Generate, a FunctionDecl) pushes a scope before lowering
// its body.
func (c *Context) top() *scope {
	return c.scopes[len(c.scopes)-1]
}

// currentBlock returns the basic block lowering is currently appending
// instructions to.
func (c *Context) currentBlock() llvm.BasicBlock {
	return c.top().block
}

// setInsertBlock moves the IR builder's insertion point to bb and records
// it on the current scope frame, keeping Context.currentBlock() consistent
// with the builder's own state.
func (c *Context) setInsertBlock(bb llvm.BasicBlock) {
	c.builder.SetInsertPointAtEnd(bb)
	c.top().block = bb
}

// setLocal records identifier name in the current scope's symbol table.
func (c *Context) setLocal(name string, value llvm.Value, typ llvm.Type) {
	c.top().locals[name] = symbol{value: value, typ: typ}
}

// getLocal looks up name in the current scope's symbol table only. It does
// not walk outer scopes: a nested function has no access to an enclosing
// function's variables.
func (c *Context) getLocal(name string) (llvm.Value, llvm.Type, bool) {
	s, ok := c.top().locals[name]
	return s.value, s.typ, ok
}

// locals returns the current scope's symbol table for direct inspection
// (e.g. duplicate-declaration checks).
func (c *Context) locals() symtab {
	return c.top().locals
}

// setReturnValue records v as the current scope's pending return value.
func (c *Context) setReturnValue(v llvm.Value) {
	c.top().ret = v
}

// getReturnValue returns the current scope's pending return value.
func (c *Context) getReturnValue() llvm.Value {
	return c.top().ret
}

// ----------------------------------------
// ----- Module-level entry points --------
// ----------------------------------------

// Generate lowers root as the program's implicit top level: every
// FunctionDecl in root is predeclared by signature first (so forward and
// mutually recursive calls resolve), then root itself is lowered as the
// body of an implicit "main" function of type void(void), with any
// trailing expression value discarded and a final "return void" appended
// if the body does not already end in an explicit Return.
func (c *Context) Generate(root *ast.Block) error {
	for _, s := range root.Stmts {
		if fd, ok := s.(*ast.FunctionDecl); ok {
			if err := c.predeclare(fd); err != nil {
				return err
			}
		}
	}

	ftyp := llvm.FunctionType(llvm.VoidType(), nil, false)
	main := llvm.AddFunction(c.module, "main", ftyp)

	entry := llvm.AddBasicBlock(main, c.label("entry"))
	c.pushScope(entry)
	defer c.popScope()
	c.builder.SetInsertPointAtEnd(entry)

	if _, err := lowerExprBlock(c, root); err != nil {
		return err
	}
	if !blockIsTerminated(c.currentBlock()) {
		null := llvm.ConstPointerNull(stringType)
		c.builder.CreateCall(c.fflush, []llvm.Value{null}, "")
		c.builder.CreateRetVoid()
	}
	return nil
}

// predeclare adds fd's signature to the module without lowering its body.
func (c *Context) predeclare(fd *ast.FunctionDecl) error {
	retType, err := typeOf(fd.ReturnType.Name)
	if err != nil {
		return err
	}
	paramTypes := make([]llvm.Type, len(fd.Params))
	for i, p := range fd.Params {
		pt, err := typeOf(p.Type.Name)
		if err != nil {
			return err
		}
		paramTypes[i] = pt
	}
	ftyp := llvm.FunctionType(retType, paramTypes, false)
	fn := llvm.AddFunction(c.module, fd.Name.Name, ftyp)
	fn.SetLinkage(llvm.InternalLinkage)
	return nil
}

// Module returns the underlying LLVM module, for callers that need direct
// access (e.g. tests inspecting generated IR).
func (c *Context) Module() llvm.Module { return c.module }

// Verify runs the backend's module verifier and returns an error
// describing the first problem found, if any.
func (c *Context) Verify() error {
	if err := llvm.VerifyModule(c.module, llvm.ReturnStatusAction); err != nil {
		return errToolchainFailure("verify", err.Error())
	}
	return nil
}

// PrintIR writes the module's textual LLVM IR representation to w.
func (c *Context) PrintIR(w io.Writer) {
	fmt.Fprint(w, c.module.String())
}

// RunJIT JIT-compiles and executes the module's main function, returning
// its generic return value. Once an execution engine has been created it
// takes exclusive ownership of the module; the Context must not be used
// for further lowering or object emission afterwards.
func (c *Context) RunJIT() (llvm.GenericValue, error) {
	llvm.LinkInMCJIT()
	if err := llvm.InitializeNativeTarget(); err != nil {
		return llvm.GenericValue{}, errToolchainFailure("jit", err.Error())
	}
	if err := llvm.InitializeNativeAsmPrinter(); err != nil {
		return llvm.GenericValue{}, errToolchainFailure("jit", err.Error())
	}

	engine, err := llvm.NewExecutionEngine(c.module)
	if err != nil {
		return llvm.GenericValue{}, errToolchainFailure("jit", err.Error())
	}

	main := c.module.NamedFunction("main")
	if main.IsNil() {
		return llvm.GenericValue{}, errToolchainFailure("jit", "module has no main function")
	}
	return engine.RunFunction(main, nil), nil
}

// WriteObject emits a relocatable object file for the host target triple to
// path.
func (c *Context) WriteObject(path string) error {
	llvm.InitializeAllTargetInfos()
	llvm.InitializeAllTargetMCs()
	llvm.InitializeAllAsmParsers()
	llvm.InitializeAllAsmPrinters()
	llvm.InitializeAllTargets()

	triple := llvm.DefaultTargetTriple()
	target, err := llvm.GetTargetFromTriple(triple)
	if err != nil {
		return errToolchainFailure("target-lookup", err.Error())
	}

	tm := target.CreateTargetMachine(triple, "generic", "",
		llvm.CodeGenLevelNone, llvm.RelocDefault, llvm.CodeModelDefault)
	defer tm.Dispose()

	td := tm.CreateTargetData()
	defer td.Dispose()
	c.module.SetDataLayout(td.String())
	c.module.SetTarget(tm.Triple())

	buf, err := tm.EmitToMemoryBuffer(c.module, llvm.ObjectFile)
	if err != nil {
		return errToolchainFailure("emit-object", err.Error())
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return errToolchainFailure("write-object", err.Error())
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return errToolchainFailure("write-object", err.Error())
	}
	return nil
}
