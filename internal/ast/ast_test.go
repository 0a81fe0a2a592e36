package ast_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roxlang/rox/internal/ast"
	"github.com/roxlang/rox/internal/token"
)

func TestCountNodes_FlatBinOp(t *testing.T) {
	// 1 + 2 * 3  ->  BinOp(+, Constant, BinOp(*, Constant, Constant)) = 5 nodes
	tree := []ast.Stmt{
		&ast.ExpressionStmt{
			Expr: &ast.BinOp{
				Op:   token.Plus,
				Left: &ast.Constant{Value: ast.Literal{Kind: ast.LitNumber, Num: 1}},
				Right: &ast.BinOp{
					Op:    token.Star,
					Left:  &ast.Constant{Value: ast.Literal{Kind: ast.LitNumber, Num: 2}},
					Right: &ast.Constant{Value: ast.Literal{Kind: ast.LitNumber, Num: 3}},
				},
			},
		},
	}
	assert.Equal(t, 5, ast.CountNodes(tree))
}

func TestCountNodes_VarDeclWithoutInitializer(t *testing.T) {
	tree := []ast.Stmt{
		&ast.VarDecl{Name: token.Token{Lexeme: "x"}},
	}
	assert.Equal(t, 1, ast.CountNodes(tree))
}

func TestPrint_RendersVarDeclWithInitializer(t *testing.T) {
	tree := []ast.Stmt{
		&ast.VarDecl{
			Name: token.Token{Lexeme: "x"},
			Init: &ast.Constant{Value: ast.Literal{Kind: ast.LitNumber, Num: 20}},
		},
	}
	out := ast.Print(tree)
	assert.True(t, strings.Contains(out, "(var x"))
	assert.True(t, strings.Contains(out, "20"))
}

func TestPrint_RendersIfWithBothBranches(t *testing.T) {
	tree := []ast.Stmt{
		&ast.If{
			Cond: &ast.Constant{Value: ast.Literal{Kind: ast.LitBool, Bool: true}},
			Then: []ast.Stmt{&ast.ExpressionStmt{Expr: &ast.Constant{Value: ast.Literal{Kind: ast.LitNumber, Num: 1}}}},
			Else: []ast.Stmt{&ast.ExpressionStmt{Expr: &ast.Constant{Value: ast.Literal{Kind: ast.LitNumber, Num: 2}}}},
		},
	}
	out := ast.Print(tree)
	assert.True(t, strings.HasPrefix(out, "(if"))
	assert.True(t, strings.Contains(out, "expr-stmt"))
}

func TestPrint_RendersForWithAllClauses(t *testing.T) {
	tree := []ast.Stmt{
		&ast.For{
			Init: &ast.VarDecl{
				Name: token.Token{Lexeme: "i"},
				Init: &ast.Constant{Value: ast.Literal{Kind: ast.LitNumber, Num: 0}},
			},
			Cond: &ast.BinOp{
				Op:    token.Less,
				Left:  &ast.Var{Name: "i"},
				Right: &ast.Constant{Value: ast.Literal{Kind: ast.LitNumber, Num: 10}},
			},
			Step: &ast.Assignment{
				Name: token.Token{Lexeme: "i"},
				Rhs:  &ast.Constant{Value: ast.Literal{Kind: ast.LitNumber, Num: 1}},
			},
			Body: []ast.Stmt{&ast.ExpressionStmt{Expr: &ast.Var{Name: "i"}}},
		},
	}
	out := ast.Print(tree)
	assert.True(t, strings.HasPrefix(out, "(for"))
	assert.True(t, strings.Contains(out, "(var i"))
	assert.True(t, strings.Contains(out, "(LESS i 10)"))
	assert.True(t, strings.Contains(out, "(= i 1)"))
	assert.True(t, strings.Contains(out, "expr-stmt"))
}

func TestLiteral_StringRendersEachKind(t *testing.T) {
	assert.Equal(t, "hi", ast.Literal{Kind: ast.LitString, Str: "hi"}.String())
	assert.Equal(t, "3", ast.Literal{Kind: ast.LitNumber, Num: 3}.String())
	assert.Equal(t, "true", ast.Literal{Kind: ast.LitBool, Bool: true}.String())
}
