// Package scanner implements a single-pass, UTF-8-aware lexer for Rox
// source text. It borrows slices of the input for token lexemes, the way
// the teacher's own lexer does (see internal/token), and reports the two
// documented failure modes — an unterminated string and an unrecognized
// byte — as plain errors rather than panicking.
package scanner

import (
	"fmt"

	"github.com/roxlang/rox/internal/token"
)

// Scanner walks a source string one byte at a time, tracking a start/cur
// cursor pair so lexemes can be sliced directly out of src without copying.
type Scanner struct {
	src   string
	start int
	cur   int
	line  int
}

// New creates a Scanner positioned at the beginning of src, line 1.
func New(src string) *Scanner {
	return &Scanner{src: src, line: 1}
}

// ScanTokens drains the scanner into a token slice terminated by exactly
// one EOF. It stops at the first scanning error.
func ScanTokens(src string) ([]token.Token, error) {
	s := New(src)
	var tokens []token.Token
	for {
		tok, err := s.ScanToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

func (s *Scanner) atEnd() bool { return s.cur >= len(s.src) }

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.cur]
}

func (s *Scanner) peekNext() byte {
	if s.cur+1 >= len(s.src) {
		return 0
	}
	return s.src[s.cur+1]
}

func (s *Scanner) advance() byte {
	b := s.src[s.cur]
	s.cur++
	return b
}

// match consumes the current byte if it equals want, reporting whether it
// did. Used for the one/two-character operator family (!, !=, <, <=, ...).
func (s *Scanner) match(want byte) bool {
	if s.atEnd() || s.src[s.cur] != want {
		return false
	}
	s.cur++
	return true
}

func (s *Scanner) lexeme() string { return s.src[s.start:s.cur] }

// skipWhitespace consumes whitespace and `//` line comments, incrementing
// line on every newline. It never advances past a byte that starts a real
// token.
func (s *Scanner) skipWhitespace() {
	for !s.atEnd() {
		switch c := s.peek(); c {
		case ' ', '\t', '\r':
			s.advance()
		case '\n':
			s.line++
			s.advance()
		case '/':
			if s.peekNext() == '/' {
				for !s.atEnd() && s.peek() != '\n' {
					s.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

// ScanToken returns the next token, or an error for the two documented
// failure cases (unterminated string, unrecognized byte).
func (s *Scanner) ScanToken() (token.Token, error) {
	s.skipWhitespace()
	s.start = s.cur

	if s.atEnd() {
		return token.New(token.EOF, s.line), nil
	}

	c := s.advance()

	switch {
	case isDigit(c):
		return s.number(), nil
	case isAlpha(c):
		return s.identifier(), nil
	}

	switch c {
	case '(':
		return s.simple(token.LeftParen), nil
	case ')':
		return s.simple(token.RightParen), nil
	case '{':
		return s.simple(token.LeftBrace), nil
	case '}':
		return s.simple(token.RightBrace), nil
	case ',':
		return s.simple(token.Comma), nil
	case '.':
		return s.simple(token.Dot), nil
	case '-':
		return s.simple(token.Minus), nil
	case '+':
		return s.simple(token.Plus), nil
	case ';':
		return s.simple(token.Semicolon), nil
	case '*':
		return s.simple(token.Star), nil
	case '/':
		return s.simple(token.Slash), nil
	case '!':
		return s.simpleOrEqual(token.Bang, token.BangEqual), nil
	case '=':
		return s.simpleOrEqual(token.Equal, token.EqualEqual), nil
	case '<':
		return s.simpleOrEqual(token.Less, token.LessEqual), nil
	case '>':
		return s.simpleOrEqual(token.Greater, token.GreaterEqual), nil
	case '"':
		return s.string()
	}

	return token.Token{}, fmt.Errorf("scanning error in line %d at %c", s.line, c)
}

func (s *Scanner) simple(kind token.Kind) token.Token {
	return token.NewLexeme(kind, s.lexeme(), s.line)
}

func (s *Scanner) simpleOrEqual(one, two token.Kind) token.Token {
	if s.match('=') {
		return token.NewLexeme(two, s.lexeme(), s.line)
	}
	return token.NewLexeme(one, s.lexeme(), s.line)
}

func (s *Scanner) string() (token.Token, error) {
	startLine := s.line
	for !s.atEnd() && s.peek() != '"' {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.atEnd() {
		return token.Token{}, fmt.Errorf("scanning error in line %d at %s: unterminated string", startLine, s.lexeme())
	}
	s.advance() // closing quote
	return token.NewLexeme(token.StringLiteral, s.lexeme(), startLine), nil
}

func (s *Scanner) number() token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // consume '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	return s.simple(token.Number)
}

func (s *Scanner) identifier() token.Token {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	lex := s.lexeme()
	return token.NewLexeme(token.Lookup(lex), lex, s.line)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
