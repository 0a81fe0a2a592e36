// Package optimizer implements the constant-folding pass described in
// spec.md §4.3: a pure transformer over the statement tree that preserves
// observable behavior while collapsing fully-constant subexpressions.
// The shape mirrors the teacher's print_visitor.go (a full structural
// recursion over the tree, rebuilding nodes), generalized from printing to
// rewriting.
package optimizer

import (
	"math"

	"github.com/roxlang/rox/internal/ast"
	"github.com/roxlang/rox/internal/token"
)

// Optimize returns a rewritten copy of stmts (the input is not modified),
// folding every fully-constant expression subtree into a single Constant
// (or, when folding fails, an Error node).
func Optimize(stmts []ast.Stmt) []ast.Stmt {
	out := make([]ast.Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = optimizeStmt(s)
	}
	return out
}

func optimizeStmt(s ast.Stmt) ast.Stmt {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		return &ast.ExpressionStmt{Expr: optimizeExpr(n.Expr)}
	case *ast.If:
		return &ast.If{
			Tok:  n.Tok,
			Cond: optimizeExpr(n.Cond),
			Then: Optimize(n.Then),
			Else: Optimize(n.Else),
		}
	case *ast.While:
		return &ast.While{Tok: n.Tok, Cond: optimizeExpr(n.Cond), Body: Optimize(n.Body)}
	case *ast.For:
		out := &ast.For{Tok: n.Tok, Body: Optimize(n.Body)}
		if n.Init != nil {
			out.Init = optimizeStmt(n.Init)
		}
		if n.Cond != nil {
			out.Cond = optimizeExpr(n.Cond)
		}
		if n.Step != nil {
			out.Step = optimizeExpr(n.Step)
		}
		return out
	case *ast.VarDecl:
		out := &ast.VarDecl{Name: n.Name}
		if n.Init != nil {
			out.Init = optimizeExpr(n.Init)
		}
		return out
	case *ast.Return:
		out := &ast.Return{Tok: n.Tok}
		if n.Value != nil {
			out.Value = optimizeExpr(n.Value)
		}
		return out
	case *ast.FuncDecl:
		return &ast.FuncDecl{Name: n.Name, Params: n.Params, Body: Optimize(n.Body)}
	case *ast.ClassDecl:
		methods := make([]*ast.FuncDecl, len(n.Methods))
		for i, m := range n.Methods {
			methods[i] = optimizeStmt(m).(*ast.FuncDecl)
		}
		return &ast.ClassDecl{Name: n.Name, Methods: methods}
	case *ast.ErrorStmt:
		return n
	default:
		return n
	}
}

// optimizeExpr folds e, returning either the (possibly rewritten) node, a
// bare Constant when folding fully succeeds, or an Error node when folding
// is attempted but fails.
func optimizeExpr(e ast.Expr) ast.Expr {
	switch n := e.(type) {
	case *ast.BinOp:
		left := optimizeExpr(n.Left)
		right := optimizeExpr(n.Right)
		lc, lok := left.(*ast.Constant)
		rc, rok := right.(*ast.Constant)
		if lok && rok {
			if folded, ok := fold(lc.Value, rc.Value, n.Op); ok {
				return &ast.Constant{Tok: n.Tok, Value: folded}
			}
			return &ast.ErrorExpr{Tok: n.Tok}
		}
		return &ast.BinOp{Tok: n.Tok, Op: n.Op, Left: left, Right: right}

	case *ast.Grouping:
		inner := optimizeExpr(n.Inner)
		if c, ok := inner.(*ast.Constant); ok {
			return c
		}
		return &ast.Grouping{Tok: n.Tok, Inner: inner}

	case *ast.Unary:
		return &ast.Unary{Tok: n.Tok, Op: n.Op, Operand: optimizeExpr(n.Operand)}

	case *ast.Assignment:
		return &ast.Assignment{Name: n.Name, Rhs: optimizeExpr(n.Rhs)}

	case *ast.Call:
		args := make([]ast.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = optimizeExpr(a)
		}
		return &ast.Call{Tok: n.Tok, Callee: optimizeExpr(n.Callee), Args: args}

	case *ast.PropertyAccess:
		return &ast.PropertyAccess{Object: optimizeExpr(n.Object), Property: n.Property}

	case *ast.Var, *ast.Constant, *ast.ErrorExpr:
		return n

	default:
		return n
	}
}

// fold evaluates a binary operator over two already-folded literals per
// spec.md §4.3's rule set; ok is false when op is undefined for the kinds
// involved, in which case the caller must produce an Error node instead.
func fold(a, b ast.Literal, op token.Kind) (ast.Literal, bool) {
	switch op {
	case token.Plus:
		if a.Kind == ast.LitNumber && b.Kind == ast.LitNumber {
			return ast.Literal{Kind: ast.LitNumber, Num: a.Num + b.Num}, true
		}
		if a.Kind == ast.LitString && b.Kind == ast.LitString {
			return ast.Literal{Kind: ast.LitString, Str: a.Str + b.Str}, true
		}
		return ast.Literal{}, false

	case token.Minus:
		if a.Kind == ast.LitNumber && b.Kind == ast.LitNumber {
			return ast.Literal{Kind: ast.LitNumber, Num: a.Num - b.Num}, true
		}
		return ast.Literal{}, false

	case token.Star:
		if a.Kind == ast.LitNumber && b.Kind == ast.LitNumber {
			return ast.Literal{Kind: ast.LitNumber, Num: a.Num * b.Num}, true
		}
		return ast.Literal{}, false

	case token.Slash:
		if a.Kind == ast.LitNumber && b.Kind == ast.LitNumber {
			return ast.Literal{Kind: ast.LitNumber, Num: a.Num / b.Num}, true
		}
		return ast.Literal{}, false

	case token.EqualEqual:
		if a.Kind != b.Kind {
			return ast.Literal{}, false
		}
		return ast.Literal{Kind: ast.LitBool, Bool: literalEqual(a, b)}, true

	case token.BangEqual:
		if a.Kind != b.Kind {
			return ast.Literal{}, false
		}
		return ast.Literal{Kind: ast.LitBool, Bool: !literalEqual(a, b)}, true

	case token.GreaterEqual:
		if a.Kind == ast.LitNumber && b.Kind == ast.LitNumber {
			return ast.Literal{Kind: ast.LitBool, Bool: a.Num >= b.Num}, true
		}
		return ast.Literal{}, false

	case token.LessEqual:
		if a.Kind == ast.LitNumber && b.Kind == ast.LitNumber {
			return ast.Literal{Kind: ast.LitBool, Bool: a.Num <= b.Num}, true
		}
		return ast.Literal{}, false

	case token.Greater:
		if a.Kind == ast.LitNumber && b.Kind == ast.LitNumber {
			return ast.Literal{Kind: ast.LitBool, Bool: a.Num > b.Num}, true
		}
		return ast.Literal{}, false

	case token.Less:
		if a.Kind == ast.LitNumber && b.Kind == ast.LitNumber {
			return ast.Literal{Kind: ast.LitBool, Bool: a.Num < b.Num}, true
		}
		return ast.Literal{}, false

	default:
		return ast.Literal{}, false
	}
}

// literalEqual compares two literals of the same Kind. NaN is treated as a
// single equivalence class, matching value.Value's equality rule.
func literalEqual(a, b ast.Literal) bool {
	switch a.Kind {
	case ast.LitNumber:
		if math.IsNaN(a.Num) && math.IsNaN(b.Num) {
			return true
		}
		return a.Num == b.Num
	case ast.LitString:
		return a.Str == b.Str
	case ast.LitBool:
		return a.Bool == b.Bool
	case ast.LitNil:
		return true
	default:
		return false
	}
}
