package ast

// Identifier is a name reference.
type Identifier struct {
	Span
	Value string
}

func (i *Identifier) Accept(v Visitor) { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()  {}

type LiteralKind int

const (
	NumberLiteral LiteralKind = iota
	StringLiteral
	UnsetLiteral
)

// Literal is a number, a string, or the unset value (nedefinovaná hodnota).
type Literal struct {
	Span
	Kind   LiteralKind
	Number float64
	String string
}

func (l *Literal) Accept(v Visitor) { v.VisitLiteral(l) }
func (l *Literal) expressionNode()  {}

// UnaryExpression covers "!", "typeof", "+" and "-".
type UnaryExpression struct {
	Span
	Operator string
	Operand  Expression
}

func (ue *UnaryExpression) Accept(v Visitor) { v.VisitUnaryExpression(ue) }
func (ue *UnaryExpression) expressionNode()  {}

// BinaryExpression covers arithmetic, "//" (root), "===" and comparisons.
type BinaryExpression struct {
	Span
	Operator string
	Left     Expression
	Right    Expression
}

func (be *BinaryExpression) Accept(v Visitor) { v.VisitBinaryExpression(be) }
func (be *BinaryExpression) expressionNode()  {}

// AssignmentExpression: nastav target na value
// Target is an *Identifier or a *MemberExpression.
type AssignmentExpression struct {
	Span
	Target Expression
	Value  Expression
}

func (ae *AssignmentExpression) Accept(v Visitor) { v.VisitAssignmentExpression(ae) }
func (ae *AssignmentExpression) expressionNode()  {}

// SequenceExpression evaluates all members and yields the last one.
type SequenceExpression struct {
	Span
	Expressions []Expression
}

func (se *SequenceExpression) Accept(v Visitor) { v.VisitSequenceExpression(se) }
func (se *SequenceExpression) expressionNode()  {}

// Parameter is a function parameter or a class member declaration.
// Default is nil when none was given.
type Parameter struct {
	Span
	Name    *Identifier
	Default Expression
}

// FunctionExpression: funkcia [name:] body [, definovaná pre params]
type FunctionExpression struct {
	Span
	Name       *Identifier
	Parameters []*Parameter
	Body       *BlockStatement
}

func (fe *FunctionExpression) Accept(v Visitor) { v.VisitFunctionExpression(fe) }
func (fe *FunctionExpression) expressionNode()  {}

// CallExpression: funkčná hodnota funkcie f, pre args
type CallExpression struct {
	Span
	Callee    Expression
	Arguments []Expression
}

func (ce *CallExpression) Accept(v Visitor) { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()  {}

// MemberExpression: hodnota vlastnosti property objektu object
type MemberExpression struct {
	Span
	Object   Expression
	Property Expression
}

func (me *MemberExpression) Accept(v Visitor) { v.VisitMemberExpression(me) }
func (me *MemberExpression) expressionNode()  {}

// NewExpression: nová inštancia triedy class, pre args
type NewExpression struct {
	Span
	Class     Expression
	Arguments []Expression
}

func (ne *NewExpression) Accept(v Visitor) { v.VisitNewExpression(ne) }
func (ne *NewExpression) expressionNode()  {}

// ThisExpression: tento objekt
type ThisExpression struct {
	Span
}

func (te *ThisExpression) Accept(v Visitor) { v.VisitThisExpression(te) }
func (te *ThisExpression) expressionNode()  {}

// ArgumentsExpression: argumenty funkcie
type ArgumentsExpression struct {
	Span
}

func (ae *ArgumentsExpression) Accept(v Visitor) { v.VisitArgumentsExpression(ae) }
func (ae *ArgumentsExpression) expressionNode()  {}

// Property is one class member. Properties keep declaration order,
// which is also their evaluation order.
type Property struct {
	Key   *Identifier
	Value Expression
}

// ClassExpression: trieda [Name] [rozširujúca triedu P] [, obsahujúca members]
type ClassExpression struct {
	Span
	Name       *Identifier
	Parent     Expression
	Properties []*Property
}

func (ce *ClassExpression) Accept(v Visitor) { v.VisitClassExpression(ce) }
func (ce *ClassExpression) expressionNode()  {}

// Property returns the member declared under key, or nil.
func (ce *ClassExpression) Property(key string) *Property {
	for _, p := range ce.Properties {
		if p.Key.Value == key {
			return p
		}
	}
	return nil
}

// ImportExpression: importuj modul path
type ImportExpression struct {
	Span
	Module Expression
}

func (ie *ImportExpression) Accept(v Visitor) { v.VisitImportExpression(ie) }
func (ie *ImportExpression) expressionNode()  {}

// ExportExpression: exportuj value ako name
type ExportExpression struct {
	Span
	Value Expression
	Name  Expression
}

func (ee *ExportExpression) Accept(v Visitor) { v.VisitExportExpression(ee) }
func (ee *ExportExpression) expressionNode()  {}
