package parser

import (
	"github.com/roxlang/rox/internal/ast"
	"github.com/roxlang/rox/internal/token"
)

// statement dispatches on the current token's kind per spec.md §4.2's
// statement grammar.
func (p *Parser) statement() ast.Stmt {
	switch p.peek().Kind {
	case token.If:
		return p.ifStatement()
	case token.While:
		return p.whileStatement()
	case token.For:
		return p.forStatement()
	case token.Var:
		return p.varDecl()
	case token.Return:
		return p.returnStatement()
	case token.Fun:
		return p.funDecl()
	case token.Class:
		return p.classDecl()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) block() []ast.Stmt {
	p.expect(token.LeftBrace, "expect '{' to start block")
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.check(token.EOF) {
		stmts = append(stmts, p.statement())
	}
	p.expect(token.RightBrace, "expect '}' to close block")
	return stmts
}

func (p *Parser) ifStatement() ast.Stmt {
	tok := p.advance() // 'if'
	p.expect(token.LeftParen, "expect '(' after 'if'")
	cond := p.expression(0)
	p.expect(token.RightParen, "expect ')' after if condition")
	then := p.block()
	var elseBody []ast.Stmt
	if p.matchKind(token.Else) {
		elseBody = p.block()
	}
	return &ast.If{Tok: tok, Cond: cond, Then: then, Else: elseBody}
}

func (p *Parser) whileStatement() ast.Stmt {
	tok := p.advance() // 'while'
	p.expect(token.LeftParen, "expect '(' after 'while'")
	cond := p.expression(0)
	p.expect(token.RightParen, "expect ')' after while condition")
	body := p.block()
	return &ast.While{Tok: tok, Cond: cond, Body: body}
}

// forStatement parses `for ( init? ; cond? ; step? ) { body }`. Per
// spec.md §9 open question 1, the initializer clause is restricted to a
// VarDecl or an expression statement; any other statement form (a nested
// `if`, `while`, `for`, `fun`, or `class`) is a parse error, since a bare
// statement grammar there would admit nonsense like a loop or a class
// declaration as an initializer.
func (p *Parser) forStatement() ast.Stmt {
	tok := p.advance() // 'for'
	p.expect(token.LeftParen, "expect '(' after 'for'")

	var init ast.Stmt
	if p.check(token.Semicolon) {
		p.advance()
	} else {
		init = p.statement()
		switch init.(type) {
		case *ast.VarDecl, *ast.ExpressionStmt:
			// varDecl/expressionStatement already consumed the ';'
			// that separates the initializer from the condition.
		default:
			p.errorAt(init.Anchor(), "invalid for-loop initializer")
			init = nil
			p.expect(token.Semicolon, "expect ';' after for-loop initializer")
		}
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.expression(0)
	}
	p.expect(token.Semicolon, "expect ';' after loop condition")

	var step ast.Expr
	if !p.check(token.RightParen) {
		step = p.expression(0)
	}
	p.expect(token.RightParen, "expect ')' after for clauses")

	body := p.block()
	return &ast.For{Tok: tok, Init: init, Cond: cond, Step: step, Body: body}
}

func (p *Parser) varDecl() ast.Stmt {
	p.advance() // 'var'
	nameTok, ok := p.expect(token.Identifier, "expect variable name")
	if !ok {
		return &ast.ErrorStmt{Tok: nameTok}
	}
	var init ast.Expr
	if p.matchKind(token.Equal) {
		init = p.expression(0)
	}
	p.expect(token.Semicolon, "expect ';' after variable declaration")
	return &ast.VarDecl{Name: nameTok, Init: init}
}

func (p *Parser) returnStatement() ast.Stmt {
	tok := p.advance() // 'return'
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression(0)
	}
	p.expect(token.Semicolon, "expect ';' after return value")
	return &ast.Return{Tok: tok, Value: value}
}

func (p *Parser) funDecl() ast.Stmt {
	p.advance() // 'fun'
	return p.funDeclBody()
}

// funDeclBody parses `IDENT ( params? ) { body }`, shared by top-level
// function declarations and class methods. Each parameter must parse as
// a Var expression whose token is captured, per spec.md §4.2.
func (p *Parser) funDeclBody() *ast.FuncDecl {
	nameTok, ok := p.expect(token.Identifier, "expect function name")
	if !ok {
		return &ast.FuncDecl{Name: nameTok}
	}
	p.expect(token.LeftParen, "expect '(' after function name")
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			paramExpr := p.expression(0)
			if v, ok := paramExpr.(*ast.Var); ok {
				params = append(params, v.Tok)
			} else {
				p.errorAt(paramExpr.Anchor(), "expect parameter name")
			}
			if !p.matchKind(token.Comma) {
				break
			}
		}
	}
	p.expect(token.RightParen, "expect ')' after parameters")
	body := p.block()
	return &ast.FuncDecl{Name: nameTok, Params: params, Body: body}
}

func (p *Parser) classDecl() ast.Stmt {
	p.advance() // 'class'
	nameTok, ok := p.expect(token.Identifier, "expect class name")
	if !ok {
		return &ast.ErrorStmt{Tok: nameTok}
	}
	p.expect(token.LeftBrace, "expect '{' before class body")
	var methods []*ast.FuncDecl
	for !p.check(token.RightBrace) && !p.check(token.EOF) {
		if !p.matchKind(token.Fun) {
			p.errorAt(p.peek(), "expect method declaration")
			p.synchronize()
			if p.check(token.RightParen) {
				p.advance() // synchronize leaves ')' in place; skip it so the loop progresses
			}
			continue
		}
		methods = append(methods, p.funDeclBody())
	}
	p.expect(token.RightBrace, "expect '}' after class body")
	return &ast.ClassDecl{Name: nameTok, Methods: methods}
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression(0)
	p.expect(token.Semicolon, "expect ';' after expression")
	return &ast.ExpressionStmt{Expr: expr}
}
