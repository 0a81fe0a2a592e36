package ast

import (
	"fmt"
	"strings"
)

// Print renders a statement list as an s-expression-flavored tree, the
// same spirit as the teacher's PrintingVisitor but walking the closed
// Expr/Stmt interfaces with a type switch instead of a visitor interface.
func Print(stmts []Stmt) string {
	var b strings.Builder
	for _, s := range stmts {
		printStmt(&b, s, 0)
	}
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func printStmt(b *strings.Builder, s Stmt, depth int) {
	indent(b, depth)
	switch n := s.(type) {
	case *ExpressionStmt:
		b.WriteString("(expr-stmt\n")
		printExpr(b, n.Expr, depth+1)
		b.WriteByte('\n')
		indent(b, depth)
		b.WriteByte(')')
	case *If:
		fmt.Fprintf(b, "(if\n")
		printExpr(b, n.Cond, depth+1)
		b.WriteByte('\n')
		for _, t := range n.Then {
			printStmt(b, t, depth+1)
			b.WriteByte('\n')
		}
		for _, e := range n.Else {
			printStmt(b, e, depth+1)
			b.WriteByte('\n')
		}
		indent(b, depth)
		b.WriteByte(')')
	case *While:
		b.WriteString("(while\n")
		printExpr(b, n.Cond, depth+1)
		b.WriteByte('\n')
		for _, t := range n.Body {
			printStmt(b, t, depth+1)
			b.WriteByte('\n')
		}
		indent(b, depth)
		b.WriteByte(')')
	case *For:
		b.WriteString("(for\n")
		if n.Init != nil {
			printStmt(b, n.Init, depth+1)
			b.WriteByte('\n')
		}
		if n.Cond != nil {
			printExpr(b, n.Cond, depth+1)
			b.WriteByte('\n')
		}
		if n.Step != nil {
			printExpr(b, n.Step, depth+1)
			b.WriteByte('\n')
		}
		for _, t := range n.Body {
			printStmt(b, t, depth+1)
			b.WriteByte('\n')
		}
		indent(b, depth)
		b.WriteByte(')')
	case *VarDecl:
		fmt.Fprintf(b, "(var %s", n.Name.Lexeme)
		if n.Init != nil {
			b.WriteByte(' ')
			printExpr(b, n.Init, 0)
		}
		b.WriteByte(')')
	case *Return:
		b.WriteString("(return")
		if n.Value != nil {
			b.WriteByte(' ')
			printExpr(b, n.Value, 0)
		}
		b.WriteByte(')')
	case *FuncDecl:
		fmt.Fprintf(b, "(fun %s (", n.Name.Lexeme)
		for i, p := range n.Params {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(p.Lexeme)
		}
		b.WriteString(")\n")
		for _, st := range n.Body {
			printStmt(b, st, depth+1)
			b.WriteByte('\n')
		}
		indent(b, depth)
		b.WriteByte(')')
	case *ClassDecl:
		fmt.Fprintf(b, "(class %s\n", n.Name.Lexeme)
		for _, m := range n.Methods {
			printStmt(b, m, depth+1)
			b.WriteByte('\n')
		}
		indent(b, depth)
		b.WriteByte(')')
	case *ErrorStmt:
		b.WriteString("(error-stmt)")
	default:
		b.WriteString("(unknown-stmt)")
	}
}

func printExpr(b *strings.Builder, e Expr, depth int) {
	indent(b, depth)
	switch n := e.(type) {
	case *Constant:
		fmt.Fprintf(b, "%v", n.Value)
	case *Var:
		b.WriteString(n.Name)
	case *Unary:
		fmt.Fprintf(b, "(%s ", n.Op)
		printExpr(b, n.Operand, 0)
		b.WriteByte(')')
	case *BinOp:
		fmt.Fprintf(b, "(%s ", n.Op)
		printExpr(b, n.Left, 0)
		b.WriteByte(' ')
		printExpr(b, n.Right, 0)
		b.WriteByte(')')
	case *Assignment:
		fmt.Fprintf(b, "(= %s ", n.Name.Lexeme)
		printExpr(b, n.Rhs, 0)
		b.WriteByte(')')
	case *Grouping:
		b.WriteString("(group ")
		printExpr(b, n.Inner, 0)
		b.WriteByte(')')
	case *Call:
		b.WriteString("(call ")
		printExpr(b, n.Callee, 0)
		for _, a := range n.Args {
			b.WriteByte(' ')
			printExpr(b, a, 0)
		}
		b.WriteByte(')')
	case *PropertyAccess:
		b.WriteString("(. ")
		printExpr(b, n.Object, 0)
		b.WriteByte(' ')
		b.WriteString(n.Property.Lexeme)
		b.WriteByte(')')
	case *ErrorExpr:
		b.WriteString("(error)")
	default:
		b.WriteString("(unknown-expr)")
	}
}

// String renders a Literal the way the disassembler and printer need it.
func (l Literal) String() string {
	switch l.Kind {
	case LitString:
		return l.Str
	case LitNumber:
		return fmt.Sprintf("%g", l.Num)
	case LitBool:
		return fmt.Sprintf("%t", l.Bool)
	default:
		return "nil"
	}
}
