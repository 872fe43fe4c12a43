package parser

import (
	"strconv"

	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/config"
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/token"
)

// parseArithmetic handles the "<keyword> X <connective> Y" forms:
// ku/pripočítaj, od/odpočítaj, vynásob/s, vydeľ/s and umocni/na.
func (p *Parser) parseArithmetic(operator, connective string) (ast.Expression, *diagnostics.Failure) {
	start := p.index
	p.advance()

	left, fail := p.parseNthExpression()
	if fail != nil {
		return nil, fail
	}
	if fail := p.expectOperator(connective); fail != nil {
		return nil, fail
	}
	right, fail := p.parseNthExpression()
	if fail != nil {
		return nil, fail
	}
	return &ast.BinaryExpression{Span: p.span(start), Operator: operator, Left: left, Right: right}, nil
}

// nie je pravda, že X
func (p *Parser) parseNot() (ast.Expression, *diagnostics.Failure) {
	start := p.index
	p.advance()
	p.advance()

	if !p.is(1, "pravda") || p.peek(2).Type != token.COMMA || !p.is(3, "že") {
		got := []token.Token{p.peek(1), p.peek(2), p.peek(3)}
		return nil, p.errorAt(diagnostics.ErrP001, got, "Expected \"pravda, že\", but got %q", describeTokens(got))
	}
	p.advance()
	p.advance()
	p.advance()

	operand, fail := p.parseExpression()
	if fail != nil {
		return nil, fail
	}
	return &ast.UnaryExpression{Span: p.span(start), Operator: "!", Operand: operand}, nil
}

// nastav target na value
func (p *Parser) parseAssignment() (ast.Expression, *diagnostics.Failure) {
	start := p.index
	p.advance()

	target, fail := p.parseAccessor()
	if fail != nil {
		return nil, fail
	}
	if fail := p.expectOperator("na"); fail != nil {
		return nil, fail
	}
	value, fail := p.parseNthExpression()
	if fail != nil {
		return nil, fail
	}
	return &ast.AssignmentExpression{Span: p.span(start), Target: target, Value: value}, nil
}

// typ X
func (p *Parser) parseTypeof() (ast.Expression, *diagnostics.Failure) {
	start := p.index
	p.advance()

	operand, fail := p.parseNthExpression()
	if fail != nil {
		return nil, fail
	}
	return &ast.UnaryExpression{Span: p.span(start), Operator: "typeof", Operand: operand}, nil
}

// +X and -X
func (p *Parser) parseSign() (ast.Expression, *diagnostics.Failure) {
	start := p.index
	operator := p.advance().Literal

	operand, fail := p.parseNthExpression()
	if fail != nil {
		return nil, fail
	}
	return &ast.UnaryExpression{Span: p.span(start), Operator: operator, Operand: operand}, nil
}

func (p *Parser) parseNumber() (ast.Expression, *diagnostics.Failure) {
	tok := p.advance()
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return nil, p.errorAt(diagnostics.ErrP003, []token.Token{tok}, "Invalid number %q", tok.Literal)
	}
	return &ast.Literal{Span: ast.Span{tok}, Kind: ast.NumberLiteral, Number: value}, nil
}

func (p *Parser) parseString() (ast.Expression, *diagnostics.Failure) {
	tok := p.advance()
	return &ast.Literal{Span: ast.Span{tok}, Kind: ast.StringLiteral, String: tok.Literal}, nil
}

// nedefinovaná hodnota
func (p *Parser) parseUnset() (ast.Expression, *diagnostics.Failure) {
	start := p.index
	if fail := p.expectWords("nedefinovaná", "hodnota"); fail != nil {
		return nil, fail
	}
	return &ast.Literal{Span: p.span(start), Kind: ast.UnsetLiteral}, nil
}

// ( sequence )
func (p *Parser) parseGrouped() (ast.Expression, *diagnostics.Failure) {
	p.advance()

	expr, fail := p.parseExpressionSequence()
	if fail != nil {
		return nil, fail
	}
	if p.peek(1).Type != token.RPAREN {
		return nil, p.errorAt(diagnostics.ErrP002, []token.Token{p.peek(1)}, "Expected \")\", but got %q", describe(p.peek(1))).WithMarkers(p.caret())
	}
	p.advance()
	return expr, nil
}

// Vypíš X is a call of the native print function.
func (p *Parser) parsePrint() (ast.Expression, *diagnostics.Failure) {
	start := p.index
	p.advance()

	arg, fail := p.parseNthExpression()
	if fail != nil {
		return nil, fail
	}
	return &ast.CallExpression{
		Span:      p.span(start),
		Callee:    &ast.Identifier{Value: config.PrintFuncName},
		Arguments: []ast.Expression{arg},
	}, nil
}

// spoj A, B a C is a call of the native concatenation function.
func (p *Parser) parseConcat() (ast.Expression, *diagnostics.Failure) {
	start := p.index
	p.advance()

	args, fail := sequence(p, p.parseExpression)
	if fail != nil {
		return nil, fail
	}
	return &ast.CallExpression{
		Span:      p.span(start),
		Callee:    &ast.Identifier{Value: config.ConcatFuncName},
		Arguments: args,
	}, nil
}
