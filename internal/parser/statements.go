package parser

import (
	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/token"
)

// bodyKind tells how a body position was parsed.
type bodyKind int

const (
	bodyBlock      bodyKind = iota // ( statement. statement. )
	bodyStatement                  // a single statement
	bodyExpression                 // a bare expression
)

// parseStatementWithoutPeriod parses the statements that carry their own
// terminator: conditionals and parenthesized blocks. Everything else is
// delegated to parseStatement, which requires a period.
func (p *Parser) parseStatementWithoutPeriod() (ast.Statement, *diagnostics.Failure) {
	switch {
	case p.is(1, "Ak"):
		return p.parseIfStatement()
	case p.peek(1).Type == token.LPAREN:
		block, kind, fail := p.parseBlock()
		if fail != nil {
			return nil, fail
		}
		if kind != bodyBlock {
			return block.Statements[0], nil
		}
		return block, nil
	}
	return p.parseStatement()
}

func (p *Parser) parseStatement() (ast.Statement, *diagnostics.Failure) {
	var (
		stmt ast.Statement
		fail *diagnostics.Failure
	)
	switch {
	case p.is(1, "Nech"):
		stmt, fail = p.parseVariableDeclaration()
	case p.is(1, "Vráť"):
		stmt, fail = p.parseReturnStatement()
	case p.is(1, "Pokiaľ"):
		stmt, fail = p.parseWhileStatement()
	case p.is(1, "Pre"):
		stmt, fail = p.parseForInStatement()
	case p.peek(1).Type == token.PERIOD:
		stmt = &ast.EmptyStatement{Span: ast.Span{p.peek(1)}}
	default:
		start := p.index
		var expr ast.Expression
		expr, fail = p.parseExpressionSequence()
		if fail == nil {
			stmt = &ast.ExpressionStatement{Span: p.span(start), Expression: expr}
		}
	}
	if fail != nil {
		return nil, fail
	}

	if p.peek(1).Type != token.PERIOD {
		return nil, p.errorAt(diagnostics.ErrP006, []token.Token{p.peek(1)},
			"Expected \".\" at the end of the statement, but got %q", describe(p.peek(1))).WithMarkers(p.caret())
	}
	p.advance()
	return stmt, nil
}

// Nech x je value
func (p *Parser) parseVariableDeclaration() (ast.Statement, *diagnostics.Failure) {
	start := p.index
	p.advance()

	name, fail := p.parseIdentifier()
	if fail != nil {
		return nil, fail
	}
	if fail := p.expectWords("je"); fail != nil {
		return nil, fail
	}
	value, fail := p.parseNthExpression()
	if fail != nil {
		return nil, fail
	}
	return &ast.VariableDeclaration{Span: p.span(start), Name: name, Value: value}, nil
}

// Vráť [value]. A bare period returns the unset value.
func (p *Parser) parseReturnStatement() (ast.Statement, *diagnostics.Failure) {
	start := p.index
	p.advance()

	var value ast.Expression
	if p.peek(1).Type == token.PERIOD {
		value = &ast.Literal{Span: p.span(start), Kind: ast.UnsetLiteral}
	} else {
		v, fail := p.parseNthExpression()
		if fail != nil {
			return nil, fail
		}
		value = v
	}
	return &ast.ReturnStatement{Span: p.span(start), Value: value}, nil
}

// parseBlock parses a body position. It first remembers how far a bare
// expression would get, then tries a parenthesized block or a single
// statement, and falls back to the expression. When everything fails the
// error that reached furthest wins.
func (p *Parser) parseBlock() (*ast.BlockStatement, bodyKind, *diagnostics.Failure) {
	start := p.index

	expr, exprFail := p.parseNthExpression()
	exprEnd := p.index
	p.index = start

	stmtFail := p.errorAt(diagnostics.ErrP003, []token.Token{p.peek(1)}, "Expected expression or statement, but got %q", describe(p.peek(1)))

	if p.peek(1).Type == token.LPAREN {
		p.advance()
		block := &ast.BlockStatement{}
		for !p.isAtEnd() {
			stmt, fail := p.parseStatementWithoutPeriod()
			stmtFail = fail
			if fail != nil {
				break
			}
			block.Statements = append(block.Statements, stmt)
			if p.peek(1).Type == token.RPAREN {
				break
			}
		}
		if stmtFail == nil {
			if p.peek(1).Type != token.RPAREN {
				stmtFail = p.errorAt(diagnostics.ErrP002, []token.Token{p.peek(1)}, "Expected \")\", but got %q", describe(p.peek(1))).WithMarkers(p.caret())
			} else {
				p.advance()
				block.Span = p.span(start)
				return block, bodyBlock, nil
			}
		}
	} else {
		stmt, fail := p.parseStatementWithoutPeriod()
		if fail == nil {
			return &ast.BlockStatement{Span: p.span(start), Statements: []ast.Statement{stmt}}, bodyStatement, nil
		}
		stmtFail = fail
	}

	if exprFail == nil {
		p.index = exprEnd
		span := p.span(start)
		block := &ast.BlockStatement{
			Span:       span,
			Statements: []ast.Statement{&ast.ExpressionStatement{Span: span, Expression: expr}},
		}
		return block, bodyExpression, nil
	}

	return nil, bodyBlock, exprFail.Furthest(stmtFail)
}
