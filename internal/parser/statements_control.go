package parser

import (
	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/token"
)

// expectCommaWord consumes ", word".
func (p *Parser) expectCommaWord(word string) *diagnostics.Failure {
	if p.peek(1).Type != token.COMMA || !p.is(2, word) {
		got := []token.Token{p.peek(1), p.peek(2)}
		return p.errorAt(diagnostics.ErrP001, got, "Expected \", %s\", but got %q", word, describeTokens(got))
	}
	p.advance()
	p.advance()
	return nil
}

// Ak test, tak body[, inak body]
func (p *Parser) parseIfStatement() (ast.Statement, *diagnostics.Failure) {
	start := p.index
	p.advance()

	test, fail := p.parseNthExpression()
	if fail != nil {
		return nil, fail
	}
	if fail := p.expectCommaWord("tak"); fail != nil {
		return nil, fail
	}
	consequent, _, fail := p.parseBlock()
	if fail != nil {
		return nil, fail
	}

	stmt := &ast.IfStatement{Test: test, Consequent: consequent}
	if p.peek(1).Type == token.COMMA && p.is(2, "inak") {
		p.advance()
		p.advance()
		alternate, kind, fail := p.parseBlock()
		if fail != nil {
			return nil, fail
		}
		if kind == bodyStatement {
			stmt.Alternate = alternate.Statements[0]
		} else {
			stmt.Alternate = alternate
		}
	}
	stmt.Span = p.span(start)
	return stmt, nil
}

// Pokiaľ test, tak body
func (p *Parser) parseWhileStatement() (ast.Statement, *diagnostics.Failure) {
	start := p.index
	p.advance()

	test, fail := p.parseNthExpression()
	if fail != nil {
		return nil, fail
	}
	if fail := p.expectCommaWord("tak"); fail != nil {
		return nil, fail
	}
	body, _, fail := p.parseBlock()
	if fail != nil {
		return nil, fail
	}
	return &ast.WhileStatement{Span: p.span(start), Test: test, Body: body}, nil
}

// Pre každé a, b a c v objekte object body
func (p *Parser) parseForInStatement() (ast.Statement, *diagnostics.Failure) {
	start := p.index
	if fail := p.expectWords("Pre", "každé"); fail != nil {
		return nil, fail
	}
	names, fail := sequence(p, p.parseIdentifier)
	if fail != nil {
		return nil, fail
	}
	if fail := p.expectWords("v", "objekte"); fail != nil {
		return nil, fail
	}
	object, fail := p.parseNthExpression()
	if fail != nil {
		return nil, fail
	}
	body, _, fail := p.parseBlock()
	if fail != nil {
		return nil, fail
	}
	return &ast.ForInStatement{Span: p.span(start), Names: names, Object: object, Body: body}, nil
}
