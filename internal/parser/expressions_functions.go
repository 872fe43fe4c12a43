package parser

import (
	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/token"
)

// funkcia [name:] body [, definovaná pre params]
func (p *Parser) parseFunction() (ast.Expression, *diagnostics.Failure) {
	start := p.index
	p.advance()

	fn := &ast.FunctionExpression{}

	backtrack := p.index
	if name, fail := p.parseIdentifier(); fail == nil && p.peek(1).Type == token.COLON {
		p.advance()
		fn.Name = name
	} else {
		p.index = backtrack
	}

	body, kind, fail := p.parseBlock()
	if fail != nil {
		return nil, fail
	}
	if kind == bodyExpression {
		es := body.Statements[0].(*ast.ExpressionStatement)
		body.Statements[0] = &ast.ReturnStatement{Span: es.Span, Value: es.Expression}
	}
	fn.Body = body

	if p.peek(1).Type == token.COMMA && p.is(2, "definovaná") && p.is(3, "pre") {
		p.advance()
		p.advance()
		p.advance()
		params, fail := p.parseParameterList()
		if fail != nil {
			return nil, fail
		}
		fn.Parameters = params
	}
	fn.Span = p.span(start)
	return fn, nil
}

// funkčná hodnota funkcie F[, pre args]
func (p *Parser) parseCall() (ast.Expression, *diagnostics.Failure) {
	start := p.index
	p.advance()

	if fail := p.expectWords("hodnota", "funkcie"); fail != nil {
		return nil, fail
	}
	callee, fail := p.parseExpression()
	if fail != nil {
		return nil, fail
	}
	args, fail := p.parseArgumentList()
	if fail != nil {
		return nil, fail
	}
	return &ast.CallExpression{Span: p.span(start), Callee: callee, Arguments: args}, nil
}

// parseArgumentList parses an optional ", pre a, b a c".
func (p *Parser) parseArgumentList() ([]ast.Expression, *diagnostics.Failure) {
	if p.peek(1).Type != token.COMMA || !p.is(2, "pre") {
		return nil, nil
	}
	p.advance()
	p.advance()
	return sequence(p, p.parseExpression)
}

func (p *Parser) parseParameterList() ([]*ast.Parameter, *diagnostics.Failure) {
	return sequence(p, p.parseParameter)
}

// parseParameter parses "x, predvolene default" or a bare "x". When the
// default form got past the identifier its own error is reported,
// otherwise the cursor is rewound to read a plain identifier.
func (p *Parser) parseParameter() (*ast.Parameter, *diagnostics.Failure) {
	start := p.index

	param, fail := p.parseAssignmentPattern()
	if fail == nil {
		return param, nil
	}
	if p.index > start+1 {
		return nil, fail
	}

	p.index = start
	name, fail := p.parseIdentifier()
	if fail != nil {
		return nil, fail
	}
	return &ast.Parameter{Span: name.Span, Name: name}, nil
}

func (p *Parser) parseAssignmentPattern() (*ast.Parameter, *diagnostics.Failure) {
	start := p.index

	name, fail := p.parseIdentifier()
	if fail != nil {
		return nil, fail
	}
	if p.peek(1).Type != token.COMMA || !p.is(2, "predvolene") {
		got := []token.Token{p.peek(1), p.peek(2)}
		return nil, p.errorAt(diagnostics.ErrP001, got[:1], "Expected \", predvolene\", but got %q", describeTokens(got))
	}
	p.advance()
	p.advance()

	def, fail := p.parseExpression()
	if fail != nil {
		return nil, fail
	}
	return &ast.Parameter{Span: p.span(start), Name: name, Default: def}, nil
}
