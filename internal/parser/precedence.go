package parser

import (
	"strconv"

	"github.com/roxlang/rox/internal/ast"
	"github.com/roxlang/rox/internal/token"
)

// bindingPower is the (left, right) pair from spec.md §4.2's table: left
// gates whether the current loop iteration may consume the operator at
// all, right is the minimum power passed to the recursive call that
// parses its right-hand operand.
type bindingPower struct {
	left, right int
}

// prefixPower holds the binding power of a prefix operator's operand.
var prefixPower = map[token.Kind]int{
	token.Minus: 90,
	token.Plus:  90,
	token.Bang:  100,
}

// infixPower holds the (left, right) binding powers for infix operators.
var infixPower = map[token.Kind]bindingPower{
	token.Equal:        {5, 6}, // right-associative via rightAssoc below, not via this pair
	token.Or:           {7, 8},
	token.And:          {9, 10},
	token.EqualEqual:   {13, 14},
	token.BangEqual:    {13, 14},
	token.Less:         {17, 18},
	token.LessEqual:    {17, 18},
	token.Greater:      {17, 18},
	token.GreaterEqual: {17, 18},
	token.Plus:         {21, 22},
	token.Minus:        {21, 22},
	token.Star:         {31, 32},
	token.Slash:        {31, 32},
}

// postfixPower holds the (left, right) binding powers for postfix
// operators (call and property access); right is unused by the loop but
// kept alongside left to mirror the spec's table shape.
var postfixPower = map[token.Kind]bindingPower{
	token.LeftParen: {41, 42},
	token.Dot:       {51, 52},
}

// rightAssoc marks operators whose right-hand recursion must be able to
// re-capture the same operator, producing right-grouped chains (a = b = 1
// parses as a = (b = 1)) rather than left-grouped ones. Assignment is the
// only one in the grammar. The recursive call uses the operator's own left
// power as its minBP rather than its right power for exactly these
// operators — the conventional trick for right-associativity in a
// binding-power Pratt loop.
var rightAssoc = map[token.Kind]bool{
	token.Equal: true,
}

// isExpressionTerminator reports whether kind ends an expression: the
// Pratt loop stops here regardless of any binding power lookup.
func isExpressionTerminator(kind token.Kind) bool {
	switch kind {
	case token.EOF, token.Semicolon, token.RightParen, token.Comma:
		return true
	default:
		return false
	}
}

// expression runs the Pratt loop: parse a prefix atom, then repeatedly
// extend it with postfix/infix operators whose left binding power is at
// least minBP.
func (p *Parser) expression(minBP int) ast.Expr {
	left := p.prefix()

	for {
		opKind := p.peek().Kind
		if isExpressionTerminator(opKind) {
			break
		}

		if bp, ok := postfixPower[opKind]; ok {
			if bp.left < minBP {
				break
			}
			opTok := p.advance()
			left = p.finishPostfix(opTok, left)
			continue
		}

		if bp, ok := infixPower[opKind]; ok {
			if bp.left < minBP {
				break
			}
			opTok := p.advance()
			rhsBP := bp.right
			if rightAssoc[opKind] {
				rhsBP = bp.left
			}
			right := p.expression(rhsBP)
			left = p.finishInfix(opTok, left, right)
			continue
		}

		break
	}

	return left
}

// prefix parses a single prefix atom: a literal, identifier, unary
// operator, or parenthesized group.
func (p *Parser) prefix() ast.Expr {
	tok := p.peek()

	switch tok.Kind {
	case token.Number:
		p.advance()
		n, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return p.errorExprAt(tok, "invalid number literal "+tok.Lexeme)
		}
		return &ast.Constant{Tok: tok, Value: ast.Literal{Kind: ast.LitNumber, Num: n}}

	case token.StringLiteral:
		p.advance()
		text := tok.Lexeme
		if len(text) >= 2 {
			text = text[1 : len(text)-1] // strip quotes
		}
		return &ast.Constant{Tok: tok, Value: ast.Literal{Kind: ast.LitString, Str: text}}

	case token.True, token.False:
		p.advance()
		return &ast.Constant{Tok: tok, Value: ast.Literal{Kind: ast.LitBool, Bool: tok.Kind == token.True}}

	case token.Nil:
		p.advance()
		return &ast.Constant{Tok: tok, Value: ast.Literal{Kind: ast.LitNil}}

	case token.Identifier:
		p.advance()
		return &ast.Var{Tok: tok, Name: tok.Lexeme}

	case token.Minus, token.Plus, token.Bang:
		p.advance()
		operand := p.expression(prefixPower[tok.Kind])
		return &ast.Unary{Tok: tok, Op: tok.Kind, Operand: operand}

	case token.LeftParen:
		p.advance()
		inner := p.expression(0)
		p.expect(token.RightParen, "expect ')' after expression")
		return &ast.Grouping{Tok: tok, Inner: inner}

	default:
		p.advance()
		return p.errorExprAt(tok, "expect expression, got "+tok.Kind.String())
	}
}

// finishInfix builds the node for an infix operator once both operands
// are in hand, enforcing the assignment-specific invariants from
// spec.md §4.2: the lhs must be a Var, and assignment chaining is banned.
func (p *Parser) finishInfix(opTok token.Token, left, right ast.Expr) ast.Expr {
	if opTok.Kind == token.Equal {
		v, ok := left.(*ast.Var)
		if !ok {
			return p.errorExprAt(opTok, "invalid assignment target")
		}
		if _, chained := right.(*ast.Assignment); chained {
			return p.errorExprAt(opTok, "invalid chaining of assignments")
		}
		return &ast.Assignment{Name: v.Tok, Rhs: right}
	}
	return &ast.BinOp{Tok: opTok, Op: opTok.Kind, Left: left, Right: right}
}

// finishPostfix builds a Call or PropertyAccess node once the postfix
// operator token has been consumed.
func (p *Parser) finishPostfix(opTok token.Token, left ast.Expr) ast.Expr {
	switch opTok.Kind {
	case token.LeftParen:
		var args []ast.Expr
		if !p.check(token.RightParen) {
			for {
				args = append(args, p.expression(0))
				if !p.matchKind(token.Comma) {
					break
				}
			}
		}
		p.expect(token.RightParen, "expect ')' after arguments")
		return &ast.Call{Tok: opTok, Callee: left, Args: args}

	case token.Dot:
		propTok := p.prefix().Anchor() // "parse an atom and take its anchor token as the property name"
		return &ast.PropertyAccess{Object: left, Property: propTok}

	default:
		return p.errorExprAt(opTok, "unexpected postfix operator")
	}
}
