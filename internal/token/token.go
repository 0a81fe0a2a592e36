// Package token defines the closed set of lexical token kinds produced by
// the scanner and consumed by the parser.
package token

import "fmt"

// Kind identifies the syntactic category of a Token. It is a closed
// enumeration: every value the scanner can ever emit is listed below, and
// no consumer should need a default case that isn't "this can't happen."
type Kind int

const (
	// Punctuation
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One or two character tokens
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals
	Identifier
	StringLiteral
	Number

	// Keywords
	And
	Class
	Else
	False
	For
	Fun
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	// Sentinels
	EOF
	Error
)

// names holds the display form for each Kind, indexed by its ordinal.
var names = map[Kind]string{
	LeftParen: "LEFT_PAREN", RightParen: "RIGHT_PAREN",
	LeftBrace: "LEFT_BRACE", RightBrace: "RIGHT_BRACE",
	Comma: "COMMA", Dot: "DOT", Minus: "MINUS", Plus: "PLUS",
	Semicolon: "SEMICOLON", Slash: "SLASH", Star: "STAR",
	Bang: "BANG", BangEqual: "BANG_EQUAL",
	Equal: "EQUAL", EqualEqual: "EQUAL_EQUAL",
	Greater: "GREATER", GreaterEqual: "GREATER_EQUAL",
	Less: "LESS", LessEqual: "LESS_EQUAL",
	Identifier: "IDENTIFIER", StringLiteral: "STRING", Number: "NUMBER",
	And: "AND", Class: "CLASS", Else: "ELSE", False: "FALSE", For: "FOR",
	Fun: "FUN", If: "IF", Nil: "NIL", Or: "OR", Print: "PRINT",
	Return: "RETURN", Super: "SUPER", This: "THIS", True: "TRUE",
	Var: "VAR", While: "WHILE",
	EOF: "EOF", Error: "ERROR",
}

// String renders a Kind using its display name, falling back to the raw
// ordinal for anything that should never occur.
func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps exact keyword spellings to their Kind. Any identifier-like
// lexeme that doesn't appear here is a plain Identifier.
var Keywords = map[string]Kind{
	"and": And, "class": Class, "else": Else, "false": False,
	"for": For, "fun": Fun, "if": If, "nil": Nil, "or": Or,
	"print": Print, "return": Return, "super": Super, "this": This,
	"true": True, "var": Var, "while": While,
}

// Lookup classifies an identifier-shaped lexeme as a keyword Kind or, if it
// isn't a reserved word, as Identifier.
func Lookup(ident string) Kind {
	if kind, ok := Keywords[ident]; ok {
		return kind
	}
	return Identifier
}

// Token is an immutable lexical unit produced by the scanner. Lexeme
// borrows a slice of the source text that produced it; callers must not
// retain a Token past the lifetime of that source string.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
}

// New builds a Token with no lexeme, used for sentinel tokens like EOF.
func New(kind Kind, line int) Token {
	return Token{Kind: kind, Line: line}
}

// NewLexeme builds a Token carrying a borrowed source slice.
func NewLexeme(kind Kind, lexeme string, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line}
}

// String renders the token the way scanner/parser error messages quote it.
func (t Token) String() string {
	if t.Lexeme == "" {
		return t.Kind.String()
	}
	return t.Lexeme
}
