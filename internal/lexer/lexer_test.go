package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdcook/tlox/internal/lexer"
	"github.com/sdcook/tlox/internal/token"
)

func scan(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, errs := lexer.New([]byte(src)).Scan()
	require.Empty(t, errs)
	return toks
}

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, tk := range toks {
		out[i] = tk.Type
	}
	return out
}

func TestScanOperatorsAndPunctuation(t *testing.T) {
	toks := scan(t, "(){},.-+;*!= == <= >= < >")
	assert.Equal(t, []token.Type{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.BangEqual, token.EqualEqual, token.LessEqual,
		token.GreaterEqual, token.Less, token.Greater, token.EOF,
	}, types(toks))
}

func TestScanSkipsCommentsAndWhitespace(t *testing.T) {
	toks := scan(t, "// a comment\n  1 + 1 // trailing\n")
	assert.Equal(t, []token.Type{token.Number, token.Plus, token.Number, token.EOF}, types(toks))
	assert.Equal(t, 2, toks[0].Line)
}

func TestScanString(t *testing.T) {
	toks := scan(t, `"hello world"`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.String, toks[0].Type)
	assert.Equal(t, "hello world", toks[0].Literal)
}

func TestScanMultilineString(t *testing.T) {
	toks := scan(t, "\"line1\nline2\"\nvar")
	require.Len(t, toks, 3)
	assert.Equal(t, "line1\nline2", toks[0].Literal)
	assert.Equal(t, 3, toks[1].Line) // "var" starts on the line after the closing quote
}

func TestScanUnterminatedString(t *testing.T) {
	_, errs := lexer.New([]byte(`"oops`)).Scan()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Unterminated string.")
}

func TestScanNumber(t *testing.T) {
	toks := scan(t, "123 45.67")
	require.Len(t, toks, 3)
	assert.Equal(t, "123.0", toks[0].Literal)
	assert.Equal(t, "45.67", toks[1].Literal)
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	toks := scan(t, "foo_bar and class fun nil")
	assert.Equal(t, []token.Type{
		token.Identifier, token.And, token.Class, token.Fun, token.Nil, token.EOF,
	}, types(toks))
	assert.Equal(t, "foo_bar", toks[0].Lexeme)
}

func TestScanAcceptsBracketsAsUnknownCharacters(t *testing.T) {
	// '[' sits just above 'Z' in ASCII; it must be reported as an
	// unexpected character rather than swallowed into an identifier by an
	// overly broad alphabetic range check.
	_, errs := lexer.New([]byte("[")).Scan()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Unexpected character: [")
}

func TestScanReportsMultipleErrorsInOnePass(t *testing.T) {
	_, errs := lexer.New([]byte("@ # $")).Scan()
	assert.Len(t, errs, 3)
}

func TestScanAlwaysEndsWithEOF(t *testing.T) {
	toks := scan(t, "")
	require.Len(t, toks, 1)
	assert.Equal(t, token.EOF, toks[0].Type)
}
