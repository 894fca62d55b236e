package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/informatter/lumen/token"
)

func kinds(tokens []token.Token) []token.TokenType {
	out := make([]token.TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.TokenType
	}
	return out
}

func TestScanOperators(t *testing.T) {
	tokens := New("== / = * + > - < != <= >= !").Scan()
	assert.Equal(t, []token.TokenType{
		token.EQUAL_EQUAL, token.SLASH, token.ASSIGN, token.STAR, token.PLUS,
		token.GREATER, token.MINUS, token.LESS, token.NOT_EQUAL, token.LESS_EQUAL,
		token.GREATER_EQUAL, token.BANG, token.EOF,
	}, kinds(tokens))
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	tokens := New("var x = foo and bar").Scan()
	assert.Equal(t, []token.TokenType{
		token.VAR, token.IDENTIFIER, token.ASSIGN, token.IDENTIFIER,
		token.AND, token.IDENTIFIER, token.EOF,
	}, kinds(tokens))
}

func TestScanNumberLiteral(t *testing.T) {
	tokens := New("1.5").Scan()
	require := tokens[0]
	assert.Equal(t, token.NUMBER, require.TokenType)
	assert.Equal(t, 1.5, require.Literal)
}

func TestScanStringLiteralNoEscapeProcessing(t *testing.T) {
	tokens := New(`"hello\nworld"`).Scan()
	assert.Equal(t, token.STRING, tokens[0].TokenType)
	assert.Equal(t, `hello\nworld`, tokens[0].Literal)
}

func TestScanUnterminatedStringYieldsErrorToken(t *testing.T) {
	tokens := New(`"unterminated`).Scan()
	assert.Equal(t, token.ERROR, tokens[0].TokenType)
	assert.Equal(t, token.EOF, tokens[1].TokenType)
}

func TestScanLineCommentsAreSkipped(t *testing.T) {
	tokens := New("1 // a comment\n+ 2").Scan()
	assert.Equal(t, []token.TokenType{token.NUMBER, token.PLUS, token.NUMBER, token.EOF}, kinds(tokens))
}

func TestScanTracksLineNumbers(t *testing.T) {
	tokens := New("1\n2\n3").Scan()
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 3, tokens[2].Line)
}

func TestScanAlwaysReachesEOF(t *testing.T) {
	tokens := New("").Scan()
	assert.Equal(t, []token.TokenType{token.EOF}, kinds(tokens))
}

func TestNextIsLazyAndEquivalentToScan(t *testing.T) {
	l := New("1 + 2")
	var got []token.Token
	for {
		tok := l.Next()
		got = append(got, tok)
		if tok.TokenType == token.EOF {
			break
		}
	}
	assert.Equal(t, New("1 + 2").Scan(), got)
}
