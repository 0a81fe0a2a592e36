package optimizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roxlang/rox/internal/ast"
	"github.com/roxlang/rox/internal/optimizer"
	"github.com/roxlang/rox/internal/parser"
	"github.com/roxlang/rox/internal/scanner"
)

func parseSource(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	toks, err := scanner.ScanTokens(src)
	require.NoError(t, err)
	p := parser.New(toks)
	stmts := p.Parse()
	require.False(t, p.HasErrors(), "unexpected parse errors: %v", p.LogErrors())
	return stmts
}

func TestOptimize_ArithmeticFoldsToSingleConstant(t *testing.T) {
	stmts := parseSource(t, "1 + 2 * 3;")
	optimized := optimizer.Optimize(stmts)
	assert.Equal(t, 1, ast.CountNodes(optimized))

	es := optimized[0].(*ast.ExpressionStmt)
	c, ok := es.Expr.(*ast.Constant)
	require.True(t, ok)
	assert.Equal(t, ast.LitNumber, c.Value.Kind)
	assert.Equal(t, float64(7), c.Value.Num)
}

func TestOptimize_VarDeclInitializerFolds(t *testing.T) {
	stmts := parseSource(t, "var x = (2+3)*4;")
	optimized := optimizer.Optimize(stmts)
	require.Len(t, optimized, 1)

	vd, ok := optimized[0].(*ast.VarDecl)
	require.True(t, ok)
	c, ok := vd.Init.(*ast.Constant)
	require.True(t, ok)
	assert.Equal(t, float64(20), c.Value.Num)
}

func TestOptimize_StringConcatenationFolds(t *testing.T) {
	stmts := parseSource(t, `"hello" + "!";`)
	optimized := optimizer.Optimize(stmts)

	es := optimized[0].(*ast.ExpressionStmt)
	c, ok := es.Expr.(*ast.Constant)
	require.True(t, ok)
	assert.Equal(t, ast.LitString, c.Value.Kind)
	assert.Equal(t, "hello!", c.Value.Str)
}

func TestOptimize_GroupingPeeledWhenConstant(t *testing.T) {
	stmts := parseSource(t, "(42);")
	optimized := optimizer.Optimize(stmts)

	es := optimized[0].(*ast.ExpressionStmt)
	_, isGrouping := es.Expr.(*ast.Grouping)
	assert.False(t, isGrouping, "grouping around a constant should be peeled")
	c, ok := es.Expr.(*ast.Constant)
	require.True(t, ok)
	assert.Equal(t, float64(42), c.Value.Num)
}

func TestOptimize_NonFoldableComparisonBecomesError(t *testing.T) {
	stmts := parseSource(t, `(1 > 2) + 3;`)
	optimized := optimizer.Optimize(stmts)

	es := optimized[0].(*ast.ExpressionStmt)
	_, ok := es.Expr.(*ast.ErrorExpr)
	assert.True(t, ok, "Bool + Number has no defined fold and must become an Error node")
}

func TestOptimize_VariableSubtreeLeftStructurallyIntact(t *testing.T) {
	stmts := parseSource(t, "myVar + 1;")
	optimized := optimizer.Optimize(stmts)

	es := optimized[0].(*ast.ExpressionStmt)
	bin, ok := es.Expr.(*ast.BinOp)
	require.True(t, ok)
	v, ok := bin.Left.(*ast.Var)
	require.True(t, ok)
	assert.Equal(t, "myVar", v.Name)
}

func TestOptimize_IsIdempotent(t *testing.T) {
	stmts := parseSource(t, "var y = 1 + 2 * 3; if (1 < 2) { 3+4; } else { 5*6; }")
	once := optimizer.Optimize(stmts)
	twice := optimizer.Optimize(once)
	assert.Equal(t, ast.Print(once), ast.Print(twice))
}

func TestOptimize_ComparisonsFoldToBool(t *testing.T) {
	stmts := parseSource(t, "1 < 2;")
	optimized := optimizer.Optimize(stmts)

	es := optimized[0].(*ast.ExpressionStmt)
	c, ok := es.Expr.(*ast.Constant)
	require.True(t, ok)
	assert.Equal(t, ast.LitBool, c.Value.Kind)
	assert.True(t, c.Value.Bool)
}
