package codegen

import "sood/internal/ast"

// Shared test fixtures for building small hand-written syntax trees.
// Parsing is out of scope for this module, so every codegen test
// constructs its tree directly rather than going through a parser.

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func typeIdent(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func intLit(v int64) *ast.IntegerLiteral { return &ast.IntegerLiteral{Value: v} }

func floatLit(v float64) *ast.FloatLiteral { return &ast.FloatLiteral{Value: v} }

func strLit(raw string) *ast.StringLiteral { return &ast.StringLiteral{Raw: raw} }

func decl(typ, name string, init ast.Expr) *ast.VariableDecl {
	return &ast.VariableDecl{Type: typeIdent(typ), Name: ident(name), Init: init}
}

func assign(name string, value ast.Expr) *ast.Assignment {
	return &ast.Assignment{Target: ident(name), Value: value}
}

func block(stmts ...ast.Stmt) *ast.Block {
	return &ast.Block{Stmts: stmts}
}

func exprStmt(e ast.Expr) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Value: e}
}

func write(e ast.Expr) *ast.Write {
	return &ast.Write{Value: e}
}

func binary(op ast.Op, lhs, rhs ast.Expr) *ast.BinaryExpr {
	return &ast.BinaryExpr{Op: op, Left: lhs, Right: rhs}
}
