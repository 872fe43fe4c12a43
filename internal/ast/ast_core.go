package ast

import "github.com/funvibe/spj/internal/token"

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
	// Tokens returns the contiguous token slice the node was parsed from.
	Tokens() []token.Token
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Span is embedded by every node and holds the tokens it came from.
// Synthetic nodes built by the parser (like the print call target) have
// an empty span.
type Span []token.Token

func (s Span) Tokens() []token.Token { return s }

func (s Span) GetToken() token.Token {
	if len(s) == 0 {
		return token.Token{}
	}
	return s[0]
}

func (s Span) TokenLiteral() string { return s.GetToken().Lexeme }

// Program is the root node of every AST our parser produces.
type Program struct {
	Span
	File string
	Body *BlockStatement
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }

// BlockStatement represents a list of statements, either the program
// body, a parenthesized block, or a single statement in body position.
type BlockStatement struct {
	Span
	Statements []Statement
}

func (bs *BlockStatement) Accept(v Visitor) { v.VisitBlockStatement(bs) }
func (bs *BlockStatement) statementNode()   {}

// VariableDeclaration binds a name in the current scope.
// Nech x je 5.
type VariableDeclaration struct {
	Span
	Name  *Identifier
	Value Expression
}

func (vd *VariableDeclaration) Accept(v Visitor) { v.VisitVariableDeclaration(vd) }
func (vd *VariableDeclaration) statementNode()   {}

// ExpressionStatement is a statement that consists of a single expression.
type ExpressionStatement struct {
	Span
	Expression Expression
}

func (es *ExpressionStatement) Accept(v Visitor) { v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) statementNode()   {}

// ReturnStatement leaves the innermost function.
// Vráť x.
type ReturnStatement struct {
	Span
	Value Expression
}

func (rs *ReturnStatement) Accept(v Visitor) { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()   {}

// IfStatement: Ak test, tak body[, inak body]
// Alternate is nil, a *BlockStatement, or a single unwrapped statement.
type IfStatement struct {
	Span
	Test       Expression
	Consequent *BlockStatement
	Alternate  Statement
}

func (is *IfStatement) Accept(v Visitor) { v.VisitIfStatement(is) }
func (is *IfStatement) statementNode()   {}

// WhileStatement: Pokiaľ test, tak body.
type WhileStatement struct {
	Span
	Test Expression
	Body *BlockStatement
}

func (ws *WhileStatement) Accept(v Visitor) { v.VisitWhileStatement(ws) }
func (ws *WhileStatement) statementNode()   {}

// ForInStatement: Pre každé a, b a c v objekte x body.
type ForInStatement struct {
	Span
	Names  []*Identifier
	Object Expression
	Body   *BlockStatement
}

func (fs *ForInStatement) Accept(v Visitor) { v.VisitForInStatement(fs) }
func (fs *ForInStatement) statementNode()   {}

// EmptyStatement is a lone period.
type EmptyStatement struct {
	Span
}

func (es *EmptyStatement) Accept(v Visitor) { v.VisitEmptyStatement(es) }
func (es *EmptyStatement) statementNode()   {}
