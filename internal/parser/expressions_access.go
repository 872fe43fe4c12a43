package parser

import (
	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/token"
)

func (p *Parser) parseIdentifier() (*ast.Identifier, *diagnostics.Failure) {
	if p.peek(1).Type != token.IDENT {
		return nil, p.errorAt(diagnostics.ErrP004, []token.Token{p.peek(1)}, "Expected identifier, but got %q", describe(p.peek(1)))
	}
	tok := p.advance()
	return &ast.Identifier{Span: ast.Span{tok}, Value: tok.Literal}, nil
}

// parseAccessor parses "hodnota vlastnosti K objektu O" or an identifier.
func (p *Parser) parseAccessor() (ast.Expression, *diagnostics.Failure) {
	start := p.index
	if !p.is(1, "hodnota") || !p.is(2, "vlastnosti") {
		return p.parseIdentifier()
	}
	p.advance()
	p.advance()

	property, fail := p.parseExpression()
	if fail != nil {
		return nil, fail
	}
	if !p.is(1, "objektu") {
		return nil, p.errorAt(diagnostics.ErrP001, []token.Token{p.peek(1)}, "Expected keyword \"objektu\", but got %q", describe(p.peek(1)))
	}
	p.advance()

	object, fail := p.parseExpression()
	if fail != nil {
		return nil, fail
	}
	return &ast.MemberExpression{Span: p.span(start), Object: object, Property: property}, nil
}

// tento objekt
func (p *Parser) parseThis() (ast.Expression, *diagnostics.Failure) {
	start := p.index
	if fail := p.expectWords("tento", "objekt"); fail != nil {
		return nil, fail
	}
	return &ast.ThisExpression{Span: p.span(start)}, nil
}

// argumenty funkcie
func (p *Parser) parseArguments() (ast.Expression, *diagnostics.Failure) {
	start := p.index
	if fail := p.expectWords("argumenty", "funkcie"); fail != nil {
		return nil, fail
	}
	return &ast.ArgumentsExpression{Span: p.span(start)}, nil
}

// importuj modul M
func (p *Parser) parseImport() (ast.Expression, *diagnostics.Failure) {
	start := p.index
	if fail := p.expectWords("importuj", "modul"); fail != nil {
		return nil, fail
	}
	module, fail := p.parseExpression()
	if fail != nil {
		return nil, fail
	}
	return &ast.ImportExpression{Span: p.span(start), Module: module}, nil
}

// exportuj E ako N
func (p *Parser) parseExport() (ast.Expression, *diagnostics.Failure) {
	start := p.index
	p.advance()

	value, fail := p.parseExpression()
	if fail != nil {
		return nil, fail
	}
	if fail := p.expectWords("ako"); fail != nil {
		return nil, fail
	}
	name, fail := p.parseExpression()
	if fail != nil {
		return nil, fail
	}
	return &ast.ExportExpression{Span: p.span(start), Value: value, Name: name}, nil
}
