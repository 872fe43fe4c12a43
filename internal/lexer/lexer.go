package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/token"
	"golang.org/x/text/unicode/norm"
)

// Normalize prepares raw source for lexing: tabs become two spaces and
// the text is canonically decomposed so diacritics are separate marks.
func Normalize(source string) string {
	return norm.NFD.String(strings.ReplaceAll(source, "\t", "  "))
}

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // line of ch, zero-based
	column       int  // visible column of ch, zero-based
}

// New creates a lexer over already normalized input.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.position < l.readPosition {
		switch {
		case l.ch == '\n':
			l.line++
			l.column = 0
		case !unicode.Is(unicode.Mn, l.ch):
			l.column++
		}
	}
	l.position = l.readPosition
	if l.readPosition >= len(l.input) {
		l.ch = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.readPosition += w
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// Tokenize scans the whole input. The result always ends with an EOF token.
func (l *Lexer) Tokenize() ([]token.Token, *diagnostics.Failure) {
	var tokens []token.Token
	for {
		tok, fail := l.NextToken()
		if fail != nil {
			return nil, fail
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) NextToken() (token.Token, *diagnostics.Failure) {
	l.skipWhitespace()

	if l.atEnd() {
		return token.Token{Type: token.EOF, Literal: "EOF", Index: l.position, Line: l.line, Column: l.column}, nil
	}

	var tok token.Token
	switch l.ch {
	case '(':
		tok = l.newToken(token.LPAREN)
	case ')':
		tok = l.newToken(token.RPAREN)
	case '.':
		tok = l.newToken(token.PERIOD)
	case ',':
		tok = l.newToken(token.COMMA)
	case ':':
		tok = l.newToken(token.COLON)
	case '+':
		tok = l.newToken(token.PLUS)
	case '-':
		tok = l.newToken(token.MINUS)
	case '"', '\'':
		return l.readString()
	default:
		switch {
		case isDigit(l.ch):
			return l.readNumber(), nil
		case isIdentStart(l.ch):
			return l.readIdentifier(), nil
		}
		marker := l.marker()
		return token.Token{}, diagnostics.NewError(diagnostics.ErrL002, []token.Token{marker}, "Unexpected token %q", string(l.ch))
	}
	l.readChar()
	return tok, nil
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) newToken(t token.TokenType) token.Token {
	s := string(l.ch)
	return token.Token{Type: t, Lexeme: s, Literal: s, Index: l.position, Line: l.line, Column: l.column}
}

func (l *Lexer) marker() token.Token { return l.newToken(token.ERROR_MARKER) }

func (l *Lexer) readNumber() token.Token {
	tok := token.Token{Type: token.NUMBER, Index: l.position, Line: l.line, Column: l.column}
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	tok.Lexeme = l.input[tok.Index:l.position]
	tok.Literal = tok.Lexeme
	return tok
}

func (l *Lexer) readIdentifier() token.Token {
	tok := token.Token{Type: token.IDENT, Index: l.position, Line: l.line, Column: l.column}
	for isIdentPart(l.ch) && !l.atEnd() {
		l.readChar()
	}
	tok.Lexeme = l.input[tok.Index:l.position]
	tok.Literal = norm.NFC.String(tok.Lexeme)
	return tok
}

// readString reads a quoted string. A backslash takes the next character
// literally and strings may span lines.
func (l *Lexer) readString() (token.Token, *diagnostics.Failure) {
	quote := l.ch
	start := l.marker()
	tok := token.Token{Type: token.STRING, Index: l.position, Line: l.line, Column: l.column}

	var value strings.Builder
	l.readChar()
	for {
		if l.atEnd() {
			return token.Token{}, diagnostics.NewError(diagnostics.ErrL001, []token.Token{start}, "Unterminated string literal")
		}
		if l.ch == quote {
			l.readChar()
			break
		}
		if l.ch == '\\' {
			l.readChar()
			if l.atEnd() {
				return token.Token{}, diagnostics.NewError(diagnostics.ErrL001, []token.Token{start}, "Unterminated string literal")
			}
		}
		value.WriteRune(l.ch)
		l.readChar()
	}
	tok.Lexeme = l.input[tok.Index:l.position]
	tok.Literal = norm.NFC.String(value.String())
	return tok, nil
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_' || unicode.Is(unicode.Sc, ch) || unicode.Is(unicode.Mn, ch)
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || unicode.IsDigit(ch)
}
