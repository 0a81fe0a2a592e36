package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roxlang/rox/internal/token"
)

func kinds(t *testing.T, toks []token.Token) []token.Kind {
	t.Helper()
	ks := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		ks = append(ks, tok.Kind)
	}
	return ks
}

func TestScanTokens_Punctuation(t *testing.T) {
	toks, err := ScanTokens("(){},.-+;*/")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.Slash, token.EOF,
	}, kinds(t, toks))
}

func TestScanTokens_TwoCharOperators(t *testing.T) {
	toks, err := ScanTokens("! != = == < <= > >=")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
		token.Less, token.LessEqual, token.Greater, token.GreaterEqual, token.EOF,
	}, kinds(t, toks))
}

func TestScanTokens_KeywordsVsIdentifiers(t *testing.T) {
	toks, err := ScanTokens("var while myVar _hidden for42")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.Var, token.While, token.Identifier, token.Identifier, token.Identifier, token.EOF,
	}, kinds(t, toks))
}

func TestScanTokens_Number(t *testing.T) {
	toks, err := ScanTokens("42 3.14 7.")
	require.NoError(t, err)
	require.Len(t, toks, 5) // "7." stops at the dot: no digit follows; then DOT, EOF
	assert.Equal(t, "42", toks[0].Lexeme)
	assert.Equal(t, "3.14", toks[1].Lexeme)
	assert.Equal(t, "7", toks[2].Lexeme)
	assert.Equal(t, token.Dot, toks[3].Kind)
}

func TestScanTokens_String(t *testing.T) {
	toks, err := ScanTokens(`"hello world"`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.StringLiteral, toks[0].Kind)
	assert.Equal(t, `"hello world"`, toks[0].Lexeme)
}

func TestScanTokens_UnterminatedString(t *testing.T) {
	_, err := ScanTokens(`"unterminated`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string")
}

func TestScanTokens_UnknownByte(t *testing.T) {
	_, err := ScanTokens("@")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scanning error in line 1")
}

func TestScanTokens_CommentsAndNewlines(t *testing.T) {
	toks, err := ScanTokens("1 // a comment\n2")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
}

func TestScanTokens_ExactlyOneEOF(t *testing.T) {
	toks, err := ScanTokens("1 + 2")
	require.NoError(t, err)
	for i, tok := range toks {
		if tok.Kind == token.EOF {
			assert.Equal(t, len(toks)-1, i, "EOF must be the last token")
		}
	}
}

func TestScanTokens_LexemeRoundTrip(t *testing.T) {
	src := `var greeting = "hi" + 1.5;`
	toks, err := ScanTokens(src)
	require.NoError(t, err)
	for _, tok := range toks {
		if tok.Lexeme == "" {
			continue
		}
		idx := indexOf(src, tok.Lexeme)
		require.GreaterOrEqual(t, idx, 0, "lexeme %q must be a slice of the source", tok.Lexeme)
	}
}

func TestScanTokens_MonotonicLines(t *testing.T) {
	toks, err := ScanTokens("1\n2\n\n3")
	require.NoError(t, err)
	last := 0
	for _, tok := range toks {
		assert.GreaterOrEqual(t, tok.Line, last)
		last = tok.Line
	}
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
