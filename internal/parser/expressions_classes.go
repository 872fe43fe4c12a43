package parser

import (
	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/token"
)

// trieda [Name] [rozširujúca triedu P[,]] [obsahujúca members]
func (p *Parser) parseClass() (ast.Expression, *diagnostics.Failure) {
	start := p.index
	p.advance()

	class := &ast.ClassExpression{}

	// A name is present unless the next word is already one of the
	// clauses. "trieda obsahujúca obsahujúca x" names the class
	// "obsahujúca".
	clauseNext := p.is(1, "rozširujúca") || p.is(1, "obsahujúca")
	clauseAfter := p.is(2, "rozširujúca") || p.is(2, "obsahujúca")
	if p.peek(1).Type == token.IDENT && (clauseAfter || !clauseNext) {
		name, fail := p.parseIdentifier()
		if fail != nil {
			return nil, fail
		}
		class.Name = name
	}

	if p.is(1, "rozširujúca") {
		p.advance()
		if fail := p.expectWords("triedu"); fail != nil {
			return nil, fail
		}
		parent, fail := p.parseNthExpression()
		if fail != nil {
			return nil, fail
		}
		class.Parent = parent

		if p.is(1, "obsahujúca") || (p.peek(1).Type != token.COMMA && p.is(2, "obsahujúca")) {
			return nil, p.errorAt(diagnostics.ErrP002, []token.Token{p.peek(1)}, "Expected \",\", but got %q", describe(p.peek(1))).WithMarkers(p.caret())
		}
		if p.peek(1).Type == token.COMMA && p.is(2, "obsahujúca") {
			p.advance()
		}
	}

	if p.is(1, "obsahujúca") {
		p.advance()
		members, fail := p.parseParameterList()
		if fail != nil {
			return nil, fail
		}
		for _, m := range members {
			value := m.Default
			if value == nil {
				value = &ast.Literal{Span: m.Span, Kind: ast.UnsetLiteral}
			}
			class.Properties = append(class.Properties, &ast.Property{Key: m.Name, Value: value})
		}
	}

	class.Span = p.span(start)
	return class, nil
}

// nová inštancia triedy C[, pre args]
func (p *Parser) parseNew() (ast.Expression, *diagnostics.Failure) {
	start := p.index
	p.advance()

	if fail := p.expectWords("inštancia", "triedy"); fail != nil {
		return nil, fail
	}
	class, fail := p.parseExpression()
	if fail != nil {
		return nil, fail
	}
	args, fail := p.parseArgumentList()
	if fail != nil {
		return nil, fail
	}
	return &ast.NewExpression{Span: p.span(start), Class: class, Arguments: args}, nil
}
