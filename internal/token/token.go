package token

import (
	"unicode"
	"unicode/utf8"
)

type TokenType int

const (
	EOF TokenType = iota
	LPAREN
	RPAREN
	PERIOD
	COMMA
	COLON
	PLUS
	MINUS
	NUMBER
	STRING
	IDENT

	// Marker kinds never come out of the lexer as regular tokens; they only
	// decorate rendered diagnostics.
	ERROR_MARKER
	WARN_MARKER
	INFO_MARKER
)

var typeNames = [...]string{
	EOF:          "EOF",
	LPAREN:       "L_PAREN",
	RPAREN:       "R_PAREN",
	PERIOD:       "PERIOD",
	COMMA:        "COMMA",
	COLON:        "COLON",
	PLUS:         "PLUS",
	MINUS:        "MINUS",
	NUMBER:       "NUMBER",
	STRING:       "STRING",
	IDENT:        "IDENTIFIER",
	ERROR_MARKER: "ERROR_MARKER",
	WARN_MARKER:  "WARN_MARKER",
	INFO_MARKER:  "INFO_MARKER",
}

func (t TokenType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "UNKNOWN"
}

// IsMarker reports whether t is one of the diagnostic marker kinds.
func (t TokenType) IsMarker() bool {
	return t == ERROR_MARKER || t == WARN_MARKER || t == INFO_MARKER
}

// Token is a single lexeme with its position in the normalized source.
// Lexeme is the raw source slice; Literal is the recomposed value
// (unescaped for strings). Index is a byte offset, Line and Column are
// zero-based and Column counts visible characters.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal string
	Index   int
	Line    int
	Column  int
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Index + len(t.Lexeme)
}

// Width is the number of columns the raw slice occupies on screen.
// Combining marks do not take a column of their own. Empty tokens
// still occupy one column so they can be pointed at.
func (t Token) Width() int {
	return Width(t.Lexeme)
}

// Is reports whether the token is an identifier spelled exactly as word.
func (t Token) Is(word string) bool {
	return t.Type == IDENT && t.Literal == word
}

// Width returns the on-screen width of s, at least 1.
func Width(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		n++
	}
	if n == 0 {
		return 1
	}
	return n
}
