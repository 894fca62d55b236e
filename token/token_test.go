package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordsCoversAllSixteenReservedWords(t *testing.T) {
	assert.Len(t, Keywords, 16)
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, IsKeyword(AND))
	assert.True(t, IsKeyword(WHILE))
	assert.False(t, IsKeyword(IDENTIFIER))
	assert.False(t, IsKeyword(EOF))
}

func TestNewLiteralCarriesValue(t *testing.T) {
	tok := NewLiteral(NUMBER, "42", float64(42), 3, 1)
	assert.Equal(t, NUMBER, tok.TokenType)
	assert.Equal(t, float64(42), tok.Literal)
	assert.Equal(t, 3, tok.Line)
}

func TestNewErrorCarriesMessageAsLexeme(t *testing.T) {
	tok := NewError("unterminated string", 5, 0)
	assert.Equal(t, ERROR, tok.TokenType)
	assert.Equal(t, "unterminated string", tok.Lexeme)
}
