package parser

import (
	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/token"
)

// parseExpressionSequence parses "x, y a z" and collapses a single member.
func (p *Parser) parseExpressionSequence() (ast.Expression, *diagnostics.Failure) {
	start := p.index
	exprs, fail := sequence(p, p.parseNthExpression)
	if fail != nil {
		return nil, fail
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return &ast.SequenceExpression{Span: p.span(start), Expressions: exprs}, nil
}

// parseExpression dispatches on the leading keyword. Productions are
// tried in a fixed order and fall through to literals, accessors and
// parenthesized sequences.
func (p *Parser) parseExpression() (ast.Expression, *diagnostics.Failure) {
	switch {
	case p.is(1, "ku"):
		return p.parseArithmetic("+", "pripočítaj")
	case p.is(1, "od"):
		return p.parseArithmetic("-", "odpočítaj")
	case p.is(1, "vynásob"):
		return p.parseArithmetic("*", "s")
	case p.is(1, "vydeľ"):
		return p.parseArithmetic("/", "s")
	case p.is(1, "nie") && p.is(2, "je"):
		return p.parseNot()
	case p.is(1, "nastav"):
		return p.parseAssignment()
	case p.is(1, "umocni"):
		return p.parseArithmetic("**", "na")
	case p.is(1, "funkcia"):
		return p.parseFunction()
	case p.is(1, "funkčná"):
		return p.parseCall()
	case p.is(1, "trieda"):
		return p.parseClass()
	case p.is(1, "nová"):
		return p.parseNew()
	case p.is(1, "typ"):
		return p.parseTypeof()
	case p.is(1, "nedefinovaná"):
		return p.parseUnset()
	case p.is(1, "tento"):
		return p.parseThis()
	case p.is(1, "argumenty"):
		return p.parseArguments()
	case p.is(1, "importuj"):
		return p.parseImport()
	case p.is(1, "exportuj"):
		return p.parseExport()
	case p.is(1, "Vypíš"):
		return p.parsePrint()
	case p.is(1, "spoj"):
		return p.parseConcat()
	}

	switch p.peek(1).Type {
	case token.PLUS, token.MINUS:
		return p.parseSign()
	case token.NUMBER:
		return p.parseNumber()
	case token.STRING:
		return p.parseString()
	case token.IDENT:
		return p.parseAccessor()
	case token.LPAREN:
		return p.parseGrouped()
	}
	return nil, p.errorAt(diagnostics.ErrP003, []token.Token{p.peek(1)}, "Expected expression, but got %q", describe(p.peek(1)))
}

// parseNthExpression parses an expression followed by an optional
// postfix form: a root ("X-há odmocnina z Y"), equality ("X sa rovná Y")
// or a comparison ("X je viac ako Y").
func (p *Parser) parseNthExpression() (ast.Expression, *diagnostics.Failure) {
	start := p.index
	left, fail := p.parseExpression()
	if fail != nil {
		return nil, fail
	}

	switch {
	case p.peek(1).Type == token.MINUS && p.peek(2).Type == token.IDENT && p.is(3, "odmocnina") && p.is(4, "z"):
		if fail := checkOrdinal(left, p.peek(2)); fail != nil {
			return nil, fail
		}
		for i := 0; i < 4; i++ {
			p.advance()
		}
		right, fail := p.parseExpression()
		if fail != nil {
			return nil, fail
		}
		return &ast.BinaryExpression{Span: p.span(start), Operator: "//", Left: left, Right: right}, nil

	case p.is(1, "sa"):
		if !p.is(2, "rovná") {
			return nil, p.errorAt(diagnostics.ErrP001, []token.Token{p.peek(2)}, "Expected \"rovná\", but got %q", describe(p.peek(2)))
		}
		p.advance()
		p.advance()
		right, fail := p.parseExpression()
		if fail != nil {
			return nil, fail
		}
		return &ast.BinaryExpression{Span: p.span(start), Operator: "===", Left: left, Right: right}, nil

	case p.is(1, "je"):
		p.advance()
		var operator string
		switch {
		case p.is(1, "viac"):
			operator = ">"
		case p.is(1, "menej"):
			operator = "<"
		default:
			return nil, p.errorAt(diagnostics.ErrP001, []token.Token{p.peek(1)}, "Expected \"viac\" or \"menej\", but got %q", describe(p.peek(1)))
		}
		p.advance()

		orEqual := p.is(1, "alebo")
		if orEqual && !(p.is(2, "sa") && p.is(3, "rovná")) {
			got := []token.Token{p.peek(1), p.peek(2), p.peek(3)}
			return nil, p.errorAt(diagnostics.ErrP001, got, "Expected \"alebo sa rovná\", but got %q", describeTokens(got))
		}
		if !orEqual && !p.is(1, "ako") {
			return nil, p.errorAt(diagnostics.ErrP001, []token.Token{p.peek(1)}, "Expected \"ako\" or \"alebo sa rovná\", but got %q", describe(p.peek(1)))
		}
		if orEqual {
			p.advance()
			p.advance()
			operator += "="
		}
		p.advance()

		right, fail := p.parseExpression()
		if fail != nil {
			return nil, fail
		}
		return &ast.BinaryExpression{Span: p.span(start), Operator: operator, Left: left, Right: right}, nil
	}
	return left, nil
}

// checkOrdinal verifies that the ordinal suffix agrees with the degree of
// a root. The degree is the first numeric literal found under unary
// operators; other degrees are not checked.
func checkOrdinal(degree ast.Expression, suffix token.Token) *diagnostics.Failure {
	queue := []ast.Expression{degree}
	var lit *ast.Literal
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if l, ok := current.(*ast.Literal); ok {
			lit = l
			break
		}
		if u, ok := current.(*ast.UnaryExpression); ok {
			queue = append(queue, u.Operand)
		}
	}
	if lit == nil || lit.Kind != ast.NumberLiteral {
		return nil
	}

	n := lit.Number
	want := ""
	switch {
	case n == 1:
		want = "vá"
	case n == 2:
		want = "há"
	case n == 3:
		want = "tia"
	case n > 3:
		want = "tá"
	}
	if want != "" && suffix.Literal != want {
		return diagnostics.NewError(diagnostics.ErrP007, []token.Token{suffix}, "Incorrect ordinality %q of number %s, expected %q", suffix.Literal, lit.Span.GetToken().Literal, want)
	}
	return nil
}
