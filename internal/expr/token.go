package expr

import (
	"fmt"
	"strconv"
)

// TokenType identifies a lexical token.
type TokenType int

// Token types.
const (
	EOF TokenType = iota
	NUMBER
	IDENT
	PLUS
	MINUS
	STAR
	SLASH
	LPAREN
	RPAREN
)

var tokenNames = [...]string{
	EOF:    "end of input",
	NUMBER: "number",
	IDENT:  "identifier",
	PLUS:   "'+'",
	MINUS:  "'-'",
	STAR:   "'*'",
	SLASH:  "'/'",
	LPAREN: "'('",
	RPAREN: "')'",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token is a lexeme with its byte offset in the source.
type Token struct {
	Type  TokenType
	Text  string
	Pos   int
	Value float64 // NUMBER only
}

// Lex splits src into tokens. The last token is always EOF.
func Lex(src string) ([]Token, error) {
	var toks []Token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			j := scanNumber(src, i)
			v, err := strconv.ParseFloat(src[i:j], 64)
			if err != nil {
				return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("invalid number %q", src[i:j])}
			}
			toks = append(toks, Token{Type: NUMBER, Text: src[i:j], Pos: i, Value: v})
			i = j
		case isIdentStart(c):
			j := i + 1
			for j < len(src) && (isIdentStart(src[j]) || isDigit(src[j])) {
				j++
			}
			toks = append(toks, Token{Type: IDENT, Text: src[i:j], Pos: i})
			i = j
		default:
			tt, ok := punct[c]
			if !ok {
				return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", c)}
			}
			toks = append(toks, Token{Type: tt, Text: string(c), Pos: i})
			i++
		}
	}
	return append(toks, Token{Type: EOF, Pos: len(src)}), nil
}

var punct = map[byte]TokenType{
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'(': LPAREN,
	')': RPAREN,
}

// scanNumber returns the end offset of the number starting at i.
func scanNumber(src string, i int) int {
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i < len(src) && src[i] == '.' {
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(src[j]) {
			for j < len(src) && isDigit(src[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
