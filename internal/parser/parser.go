package parser

import (
	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/token"
)

// Parser is a backtracking recursive-descent parser over a complete
// token slice. index points at the last consumed token and starts at -1,
// so peek(1) is the next token and peek(0) the one just consumed.
type Parser struct {
	tokens []token.Token
	index  int
}

func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		tokens = append(tokens, token.Token{Type: token.EOF, Literal: "EOF"})
	}
	return &Parser{tokens: tokens, index: -1}
}

// ParseProgram parses statements until the end of input.
func (p *Parser) ParseProgram() (*ast.Program, *diagnostics.Failure) {
	body := &ast.BlockStatement{}
	for !p.isAtEnd() {
		stmt, fail := p.parseStatementWithoutPeriod()
		if fail != nil {
			return nil, fail
		}
		body.Statements = append(body.Statements, stmt)
	}
	body.Span = p.span(-1)
	return &ast.Program{Span: body.Span, Body: body}, nil
}

func (p *Parser) peek(n int) token.Token {
	i := p.index + n
	if i < 0 {
		return token.Token{}
	}
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) advance() token.Token {
	if p.index < len(p.tokens)-1 {
		p.index++
	}
	return p.tokens[p.index]
}

func (p *Parser) isAtEnd() bool {
	return p.peek(1).Type == token.EOF
}

// span returns the tokens consumed since from.
func (p *Parser) span(from int) ast.Span {
	if from+1 > p.index {
		return nil
	}
	return ast.Span(p.tokens[from+1 : p.index+1])
}

// is reports whether the token n ahead is the keyword word.
func (p *Parser) is(n int, word string) bool {
	return p.peek(n).Is(word)
}

func (p *Parser) errorAt(code diagnostics.ErrorCode, tokens []token.Token, format string, args ...interface{}) *diagnostics.Failure {
	return diagnostics.NewError(code, tokens, format, args...)
}

// expectWords consumes the given keywords in order or fails pointing at
// what is there instead.
func (p *Parser) expectWords(words ...string) *diagnostics.Failure {
	for i, w := range words {
		if !p.is(i+1, w) {
			got := make([]token.Token, len(words))
			for j := range words {
				got[j] = p.peek(j + 1)
			}
			return p.errorAt(diagnostics.ErrP001, got, "Expected %q, but got %q", joinWords(words), describeTokens(got))
		}
	}
	for range words {
		p.advance()
	}
	return nil
}

// expectOperator consumes one token that must be the connective word.
func (p *Parser) expectOperator(word string) *diagnostics.Failure {
	tok := p.advance()
	if !tok.Is(word) {
		return p.errorAt(diagnostics.ErrP001, []token.Token{tok}, "Expected operator %q, but got %q", word, describe(tok))
	}
	return nil
}

// caret marks the position right after the last consumed token.
func (p *Parser) caret() token.Token {
	last := p.peek(0)
	column := 0
	if p.index >= 0 {
		column = last.Column + last.Width()
	}
	return token.Token{Type: token.ERROR_MARKER, Lexeme: "^", Literal: "^", Index: last.End(), Line: last.Line, Column: column}
}

func describe(t token.Token) string {
	if t.Type == token.EOF {
		return "EOF"
	}
	return t.Literal
}

func describeTokens(toks []token.Token) string {
	s := ""
	for i, t := range toks {
		if i > 0 {
			s += " "
		}
		s += describe(t)
	}
	return s
}

func joinWords(words []string) string {
	s := ""
	for i, w := range words {
		if i > 0 {
			s += " "
		}
		s += w
	}
	return s
}

// sequence parses members joined by "," with "a" before the last one.
// Without any separator after the first member the list has one element;
// a missing separator after a later member is an error.
func sequence[T any](p *Parser, member func() (T, *diagnostics.Failure)) ([]T, *diagnostics.Failure) {
	var members []T
	isFirst, isLast := true, false
	for !p.isAtEnd() {
		m, fail := member()
		if fail != nil {
			return nil, fail
		}
		members = append(members, m)
		if isLast {
			break
		}
		switch {
		case p.peek(1).Type == token.COMMA:
			p.advance()
		case p.is(1, "a"):
			p.advance()
			isLast = true
		case !isFirst:
			return nil, p.errorAt(diagnostics.ErrP005, []token.Token{p.peek(1)}, "Expected \",\" or \"a\", but got %q", describe(p.peek(1)))
		default:
			return members, nil
		}
		isFirst = false
	}
	if len(members) == 0 {
		return nil, p.errorAt(diagnostics.ErrP003, []token.Token{p.peek(1)}, "Expected expression, but got %q", describe(p.peek(1)))
	}
	return members, nil
}
