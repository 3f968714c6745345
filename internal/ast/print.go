package ast

import (
	"fmt"
	"io"
	"strings"

	"sood/internal/numfmt"
)

// indent is the per-level indentation unit: two spaces, as called for by
// the pretty-printer contract.
const indent = "  "

// Fprint writes a human-readable, indentation-aware dump of n to w. It is a
// pure sink: it never mutates the tree, and printing the same tree twice
// yields byte-identical output. depth is the starting indentation level.
func Fprint(w io.Writer, n interface{}, depth int) {
	pad := strings.Repeat(indent, depth)
	switch t := n.(type) {
	case *IntegerLiteral:
		fmt.Fprintf(w, "%sint(%s)\n", pad, numfmt.Int(t.Value))
	case *FloatLiteral:
		fmt.Fprintf(w, "%sfloat(%s)\n", pad, numfmt.Float(t.Value))
	case *StringLiteral:
		fmt.Fprintf(w, "%sstr(%s)\n", pad, t.Raw)
	case *Identifier:
		fmt.Fprintf(w, "%sident(%s)\n", pad, t.Name)
	case *UnaryExpr:
		fmt.Fprintf(w, "%sUnaryExpr { op: %s\n", pad, t.Op)
		Fprint(w, t.Operand, depth+1)
		fmt.Fprintf(w, "%s}\n", pad)
	case *BinaryExpr:
		fmt.Fprintf(w, "%sBinaryExpr { op: %s\n", pad, t.Op)
		Fprint(w, t.Left, depth+1)
		Fprint(w, t.Right, depth+1)
		fmt.Fprintf(w, "%s}\n", pad)
	case *FunctionCall:
		fmt.Fprintf(w, "%sFunctionCall { callee: %s\n", pad, t.Callee.Name)
		for _, a := range t.Args {
			Fprint(w, a, depth+1)
		}
		fmt.Fprintf(w, "%s}\n", pad)
	case *Block:
		fmt.Fprintf(w, "%sBlock {\n", pad)
		for _, s := range t.Stmts {
			Fprint(w, s, depth+1)
		}
		fmt.Fprintf(w, "%s}\n", pad)
	case *Assignment:
		fmt.Fprintf(w, "%sAssignment { target: %s\n", pad, t.Target.Name)
		Fprint(w, t.Value, depth+1)
		fmt.Fprintf(w, "%s}\n", pad)
	case *VariableDecl:
		fmt.Fprintf(w, "%sVariableDecl { type: %s, name: %s\n", pad, t.Type.Name, t.Name.Name)
		if t.Init != nil {
			Fprint(w, t.Init, depth+1)
		}
		fmt.Fprintf(w, "%s}\n", pad)
	case *FunctionDecl:
		fmt.Fprintf(w, "%sFunctionDecl { name: %s, returns: %s, params: [", pad, t.Name.Name, t.ReturnType.Name)
		for i, p := range t.Params {
			if i > 0 {
				fmt.Fprint(w, ", ")
			}
			fmt.Fprintf(w, "%s %s", p.Type.Name, p.Name.Name)
		}
		fmt.Fprintf(w, "]\n")
		Fprint(w, t.Body, depth+1)
		fmt.Fprintf(w, "%s}\n", pad)
	case *Return:
		fmt.Fprintf(w, "%sReturn {\n", pad)
		Fprint(w, t.Value, depth+1)
		fmt.Fprintf(w, "%s}\n", pad)
	case *ExpressionStatement:
		fmt.Fprintf(w, "%sExpressionStatement {\n", pad)
		Fprint(w, t.Value, depth+1)
		fmt.Fprintf(w, "%s}\n", pad)
	case *Else:
		fmt.Fprintf(w, "%sElse {\n", pad)
		Fprint(w, t.Body, depth+1)
		fmt.Fprintf(w, "%s}\n", pad)
	case *If:
		fmt.Fprintf(w, "%sIf {\n", pad)
		Fprint(w, t.Cond, depth+1)
		Fprint(w, t.Then, depth+1)
		if t.ElseBranch != nil {
			Fprint(w, t.ElseBranch, depth+1)
		}
		fmt.Fprintf(w, "%s}\n", pad)
	case *While:
		fmt.Fprintf(w, "%sWhile {\n", pad)
		Fprint(w, t.Cond, depth+1)
		Fprint(w, t.Body, depth+1)
		fmt.Fprintf(w, "%s}\n", pad)
	case *Until:
		fmt.Fprintf(w, "%sUntil {\n", pad)
		Fprint(w, t.Cond, depth+1)
		Fprint(w, t.Body, depth+1)
		fmt.Fprintf(w, "%s}\n", pad)
	case *Write:
		fmt.Fprintf(w, "%sWrite {\n", pad)
		Fprint(w, t.Value, depth+1)
		fmt.Fprintf(w, "%s}\n", pad)
	case *Read:
		fmt.Fprintf(w, "%sRead { }\n", pad)
	case nil:
		fmt.Fprintf(w, "%s---> NIL\n", pad)
	default:
		fmt.Fprintf(w, "%s---> UNKNOWN NODE %T\n", pad, t)
	}
}

// String renders n at depth 0 and returns the result, for use in tests and
// quick diagnostics.
func String(n interface{}) string {
	var sb strings.Builder
	Fprint(&sb, n, 0)
	return sb.String()
}
