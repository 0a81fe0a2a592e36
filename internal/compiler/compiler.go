// Package compiler lowers the optimized AST into bytecode. spec.md §1
// notes that "a compiler from the AST to chunks is present only as a stub
// in the sources" and §9 open question 2 leaves the AST-to-opcode binding
// unspecified beyond the opcode set itself. This implementation is
// therefore deliberately narrow: it lowers exactly the constant/arithmetic
// subset that internal/vm's opcode set (spec.md §4.4) can execute —
// Constant, Grouping, Unary{Minus}, and BinOp{+,-,*,/} — and reports
// anything else as a roxerr diagnostic rather than silently miscompiling
// it. Growing the opcode set (conditionals, locals, calls) is future work
// outside this core, matching spec.md §1's scope note.
package compiler

import (
	"fmt"

	"github.com/roxlang/rox/internal/ast"
	"github.com/roxlang/rox/internal/bytecode"
	"github.com/roxlang/rox/internal/roxerr"
	"github.com/roxlang/rox/internal/token"
	"github.com/roxlang/rox/internal/value"
)

// Compile lowers a single statement list into a chunk. Only a bare
// ExpressionStmt or Return whose value lies within the supported
// expression subset compiles; anything else yields an error and a nil
// chunk so the driver can report a CompileError instead of executing
// garbage bytecode.
func Compile(stmts []ast.Stmt) (*bytecode.Chunk, error) {
	chunk := bytecode.New()

	for _, s := range stmts {
		if err := compileStmt(chunk, s); err != nil {
			return nil, err
		}
	}
	chunk.Write(byte(bytecode.OpReturn), lastLine(stmts))
	return chunk, nil
}

func lastLine(stmts []ast.Stmt) int {
	if len(stmts) == 0 {
		return 1
	}
	return stmts[len(stmts)-1].Anchor().Line
}

func compileStmt(chunk *bytecode.Chunk, s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		return compileExpr(chunk, n.Expr)
	case *ast.Return:
		if n.Value == nil {
			return nil
		}
		return compileExpr(chunk, n.Value)
	default:
		return unsupported(s.Anchor(), fmt.Sprintf("statement form %T has no compiled form in this core", s))
	}
}

func compileExpr(chunk *bytecode.Chunk, e ast.Expr) error {
	switch n := e.(type) {
	case *ast.Constant:
		chunk.WriteConstant(literalToValue(n.Value), n.Tok.Line)
		return nil

	case *ast.Grouping:
		return compileExpr(chunk, n.Inner)

	case *ast.Unary:
		if n.Op != token.Minus {
			return unsupported(n.Tok, "only unary '-' compiles in this core")
		}
		if err := compileExpr(chunk, n.Operand); err != nil {
			return err
		}
		chunk.Write(byte(bytecode.OpNegate), n.Tok.Line)
		return nil

	case *ast.BinOp:
		if err := compileExpr(chunk, n.Left); err != nil {
			return err
		}
		if err := compileExpr(chunk, n.Right); err != nil {
			return err
		}
		op, ok := arithmeticOp(n.Op)
		if !ok {
			return unsupported(n.Tok, "only + - * / compile in this core")
		}
		chunk.Write(byte(op), n.Tok.Line)
		return nil

	default:
		return unsupported(e.Anchor(), fmt.Sprintf("expression form %T has no compiled form in this core", e))
	}
}

func arithmeticOp(kind token.Kind) (bytecode.OpCode, bool) {
	switch kind {
	case token.Plus:
		return bytecode.OpAdd, true
	case token.Minus:
		return bytecode.OpSubtract, true
	case token.Star:
		return bytecode.OpMultiply, true
	case token.Slash:
		return bytecode.OpDivide, true
	default:
		return 0, false
	}
}

// literalToValue converts a parsed AST literal into the RuntimeValue the
// chunk's constant pool holds. Only Number and String carry meaningfully
// distinct runtime representations in this core; Bool and Nil collapse to
// their textual form since the VM has no boolean/nil opcode semantics yet.
func literalToValue(lit ast.Literal) value.Value {
	switch lit.Kind {
	case ast.LitNumber:
		return value.Number(lit.Num)
	case ast.LitString:
		return value.Literal(lit.Str)
	default:
		return value.Literal(lit.String())
	}
}

func unsupported(tok token.Token, msg string) error {
	return roxerr.New(tok, msg)
}
