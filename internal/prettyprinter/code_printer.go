package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/config"
)

// --- Code Printer (Output looks like source code) ---

// level is the narrowest parser production that reads a slot.
type level int

const (
	levelExpr level = iota // a plain expression
	levelNth               // an expression with an optional postfix form
	levelSeq               // a whole sequence
)

// follow describes what the parser sees right after a slot.
type follow int

const (
	followClosed  follow = iota // ".", ")", a body or the end of input
	followKeyword               // a connective such as "pripočítaj" or "objektu"
	followList                  // "," or "a" of an enclosing list, or ", tak"
	followClause                // ", pre" or ", obsahujúca"
	followPostfix               // "sa rovná", "je viac ako" or "-tá odmocnina z"
)

type slot struct {
	level  level
	follow follow
}

var topSlot = slot{levelSeq, followClosed}

var arithmeticWords = map[string][2]string{
	"+":  {"ku", "pripočítaj"},
	"-":  {"od", "odpočítaj"},
	"*":  {"vynásob", "s"},
	"/":  {"vydeľ", "s"},
	"**": {"umocni", "na"},
}

var postfixWords = map[string]string{
	"===": "sa rovná",
	">":   "je viac ako",
	"<":   "je menej ako",
	">=":  "je viac alebo sa rovná",
	"<=":  "je menej alebo sa rovná",
}

// CodePrinter writes an AST back as source text. Parentheses are added
// only where the parser would otherwise read a different tree.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
	slot   slot
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{slot: topSlot}
}

// Code prints a single node.
func Code(node ast.Node) string {
	if node == nil {
		return ""
	}
	p := NewCodePrinter()
	node.Accept(p)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

// printExpr prints an expression into a slot, adding parentheses only if
// needed.
func (p *CodePrinter) printExpr(expr ast.Expression, s slot) {
	if expr == nil {
		p.write("<???>")
		return
	}
	saved := p.slot
	defer func() { p.slot = saved }()

	if needsParens(expr, s) {
		p.write("(")
		p.slot = topSlot
		expr.Accept(p)
		p.write(")")
		return
	}
	p.slot = s
	expr.Accept(p)
}

// printList prints "x", "x a y" or "x, y a z". Every member but the last
// is followed by a separator.
func (p *CodePrinter) printList(exprs []ast.Expression, lvl level, outer follow) {
	for i, e := range exprs {
		p.writeSeparator(i, len(exprs))
		f := followList
		if i == len(exprs)-1 {
			f = outer
		}
		p.printExpr(e, slot{lvl, f})
	}
}

func (p *CodePrinter) writeSeparator(i, n int) {
	switch {
	case i == 0:
	case i == n-1:
		p.write(" a ")
	default:
		p.write(", ")
	}
}

// printBody prints a parenthesized block on its own lines.
func (p *CodePrinter) printBody(block *ast.BlockStatement) {
	if block == nil || len(block.Statements) == 0 {
		p.write("()")
		return
	}
	p.write("(")
	p.writeln()
	p.indent++
	for _, stmt := range block.Statements {
		p.writeIndent()
		p.printStatement(stmt)
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write(")")
}

func (p *CodePrinter) printStatement(stmt ast.Statement) {
	if stmt == nil {
		p.write("<???>")
		return
	}
	saved := p.slot
	p.slot = topSlot
	stmt.Accept(p)
	p.slot = saved
}

func needsParens(expr ast.Expression, s slot) bool {
	switch e := expr.(type) {
	case *ast.SequenceExpression:
		return s.level < levelSeq
	case *ast.BinaryExpression:
		if _, ok := arithmeticWords[e.Operator]; !ok && s.level < levelNth {
			return true
		}
	}

	switch s.follow {
	case followKeyword:
		return isBareClass(expr)
	case followList:
		return isBareClass(expr) || endsWithList(expr)
	case followClause:
		return isBareClass(expr) || endsWithList(expr) || takesClause(expr)
	case followPostfix:
		return isBareClass(expr) || endsWithNth(expr)
	}
	return false
}

// isBareClass reports a class with neither name nor clauses. The next
// identifier would be read as its name.
func isBareClass(expr ast.Expression) bool {
	c, ok := expr.(*ast.ClassExpression)
	return ok && c.Name == nil && c.Parent == nil && len(c.Properties) == 0
}

// endsWithList reports forms whose last part is an open list that would
// swallow a following "," or "a".
func endsWithList(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.CallExpression:
		if isNative(e, config.PrintFuncName) {
			return false
		}
		return isNative(e, config.ConcatFuncName) || len(e.Arguments) > 0
	case *ast.NewExpression:
		return len(e.Arguments) > 0
	case *ast.FunctionExpression:
		return len(e.Parameters) > 0
	case *ast.ClassExpression:
		return len(e.Properties) > 0
	}
	return false
}

// takesClause reports forms that would claim a following ", pre" or
// ", obsahujúca" of the enclosing form.
func takesClause(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.CallExpression:
		return !isNative(e, config.PrintFuncName)
	case *ast.NewExpression:
		return true
	case *ast.ClassExpression:
		return e.Parent != nil
	}
	return false
}

// endsWithNth reports forms whose last operand is read with postfix
// forms, so a following "sa rovná" would attach to that operand.
func endsWithNth(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		_, ok := arithmeticWords[e.Operator]
		return ok
	case *ast.AssignmentExpression:
		return true
	case *ast.UnaryExpression:
		return e.Operator != "!"
	case *ast.CallExpression:
		return isNative(e, config.PrintFuncName) && len(e.Arguments) == 1
	case *ast.ClassExpression:
		return e.Parent != nil && len(e.Properties) == 0
	}
	return false
}

func isNative(call *ast.CallExpression, name string) bool {
	id, ok := call.Callee.(*ast.Identifier)
	return ok && id.Value == name
}

// ordinalSuffix picks the suffix a root of the given degree needs.
func ordinalSuffix(degree ast.Expression) string {
	for {
		switch d := degree.(type) {
		case *ast.Literal:
			if d.Kind != ast.NumberLiteral {
				return "tá"
			}
			switch d.Number {
			case 1:
				return "vá"
			case 2:
				return "há"
			case 3:
				return "tia"
			}
			return "tá"
		case *ast.UnaryExpression:
			degree = d.Operand
		default:
			return "tá"
		}
	}
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// --- Statements ---

func (p *CodePrinter) VisitProgram(n *ast.Program) {
	if n.Body == nil {
		return
	}
	for _, stmt := range n.Body.Statements {
		p.writeIndent()
		p.printStatement(stmt)
		p.writeln()
	}
}

func (p *CodePrinter) VisitBlockStatement(n *ast.BlockStatement) {
	p.printBody(n)
}

func (p *CodePrinter) VisitVariableDeclaration(n *ast.VariableDeclaration) {
	p.write("Nech " + n.Name.Value + " je ")
	p.printExpr(n.Value, slot{levelNth, followClosed})
	p.write(".")
}

// VisitExpressionStatement ends the statement with a period. A statement
// that has to open with "(" is written without one: the parser reads it
// as an expression only once the block attempt has failed.
func (p *CodePrinter) VisitExpressionStatement(n *ast.ExpressionStatement) {
	sub := &CodePrinter{indent: p.indent}
	sub.printExpr(n.Expression, topSlot)
	text := sub.String()

	if !strings.HasPrefix(text, "(") {
		p.write(text + ".")
		return
	}
	if _, ok := n.Expression.(*ast.SequenceExpression); ok {
		p.write("(" + text + ")")
		return
	}
	p.write(text)
}

func (p *CodePrinter) VisitReturnStatement(n *ast.ReturnStatement) {
	if lit, ok := n.Value.(*ast.Literal); ok && lit.Kind == ast.UnsetLiteral {
		p.write("Vráť.")
		return
	}
	p.write("Vráť ")
	p.printExpr(n.Value, slot{levelNth, followClosed})
	p.write(".")
}

func (p *CodePrinter) VisitIfStatement(n *ast.IfStatement) {
	p.write("Ak ")
	p.printExpr(n.Test, slot{levelNth, followList})
	p.write(", tak ")
	p.printBody(n.Consequent)
	if n.Alternate == nil {
		return
	}
	p.write(", inak ")
	if block, ok := n.Alternate.(*ast.BlockStatement); ok {
		p.printBody(block)
		return
	}
	p.printStatement(n.Alternate)
}

func (p *CodePrinter) VisitWhileStatement(n *ast.WhileStatement) {
	p.write("Pokiaľ ")
	p.printExpr(n.Test, slot{levelNth, followList})
	p.write(", tak ")
	p.printBody(n.Body)
	p.write(".")
}

func (p *CodePrinter) VisitForInStatement(n *ast.ForInStatement) {
	p.write("Pre každé ")
	for i, id := range n.Names {
		p.writeSeparator(i, len(n.Names))
		p.write(id.Value)
	}
	p.write(" v objekte ")
	p.printExpr(n.Object, slot{levelNth, followClosed})
	p.write(" ")
	p.printBody(n.Body)
	p.write(".")
}

func (p *CodePrinter) VisitEmptyStatement(n *ast.EmptyStatement) {
	p.write(".")
}

// --- Expressions ---

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) {
	p.write(n.Value)
}

func (p *CodePrinter) VisitLiteral(n *ast.Literal) {
	switch n.Kind {
	case ast.NumberLiteral:
		p.write(strconv.FormatFloat(n.Number, 'f', -1, 64))
	case ast.StringLiteral:
		p.write(quote(n.String))
	default:
		p.write("nedefinovaná hodnota")
	}
}

func (p *CodePrinter) VisitUnaryExpression(n *ast.UnaryExpression) {
	outer := p.slot
	switch n.Operator {
	case "!":
		p.write("nie je pravda, že ")
		p.printExpr(n.Operand, slot{levelExpr, outer.follow})
	case "typeof":
		p.write("typ ")
		p.printExpr(n.Operand, slot{levelNth, outer.follow})
	default:
		p.write(n.Operator)
		p.printExpr(n.Operand, slot{levelNth, outer.follow})
	}
}

func (p *CodePrinter) VisitBinaryExpression(n *ast.BinaryExpression) {
	outer := p.slot
	if words, ok := arithmeticWords[n.Operator]; ok {
		p.write(words[0] + " ")
		p.printExpr(n.Left, slot{levelNth, followKeyword})
		p.write(" " + words[1] + " ")
		p.printExpr(n.Right, slot{levelNth, outer.follow})
		return
	}

	p.printExpr(n.Left, slot{levelExpr, followPostfix})
	if n.Operator == "//" {
		p.write("-" + ordinalSuffix(n.Left) + " odmocnina z ")
	} else {
		p.write(" " + postfixWords[n.Operator] + " ")
	}
	p.printExpr(n.Right, slot{levelExpr, outer.follow})
}

func (p *CodePrinter) VisitAssignmentExpression(n *ast.AssignmentExpression) {
	outer := p.slot
	p.write("nastav ")
	// The target is read as an accessor and never parenthesized.
	p.slot = slot{levelExpr, followKeyword}
	n.Target.Accept(p)
	p.slot = outer
	p.write(" na ")
	p.printExpr(n.Value, slot{levelNth, outer.follow})
}

func (p *CodePrinter) VisitSequenceExpression(n *ast.SequenceExpression) {
	p.printList(n.Expressions, levelNth, p.slot.follow)
}

func (p *CodePrinter) VisitFunctionExpression(n *ast.FunctionExpression) {
	outer := p.slot
	p.write("funkcia ")
	if n.Name != nil {
		p.write(n.Name.Value + ": ")
	}
	p.printBody(n.Body)
	if len(n.Parameters) == 0 {
		return
	}
	p.write(", definovaná pre ")
	for i, param := range n.Parameters {
		p.writeSeparator(i, len(n.Parameters))
		p.write(param.Name.Value)
		if param.Default == nil {
			continue
		}
		f := followList
		if i == len(n.Parameters)-1 {
			f = outer.follow
		}
		p.write(", predvolene ")
		p.printExpr(param.Default, slot{levelExpr, f})
	}
}

func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) {
	outer := p.slot
	switch {
	case isNative(n, config.PrintFuncName) && len(n.Arguments) == 1:
		p.write("Vypíš ")
		p.printExpr(n.Arguments[0], slot{levelNth, outer.follow})
		return
	case isNative(n, config.ConcatFuncName) && len(n.Arguments) > 0:
		p.write("spoj ")
		p.printList(n.Arguments, levelExpr, outer.follow)
		return
	}

	p.write("funkčná hodnota funkcie ")
	if len(n.Arguments) == 0 {
		p.printExpr(n.Callee, slot{levelExpr, outer.follow})
		return
	}
	p.printExpr(n.Callee, slot{levelExpr, followClause})
	p.write(", pre ")
	p.printList(n.Arguments, levelExpr, outer.follow)
}

func (p *CodePrinter) VisitMemberExpression(n *ast.MemberExpression) {
	outer := p.slot
	p.write("hodnota vlastnosti ")
	p.printExpr(n.Property, slot{levelExpr, followKeyword})
	p.write(" objektu ")
	p.printExpr(n.Object, slot{levelExpr, outer.follow})
}

func (p *CodePrinter) VisitNewExpression(n *ast.NewExpression) {
	outer := p.slot
	p.write("nová inštancia triedy ")
	if len(n.Arguments) == 0 {
		p.printExpr(n.Class, slot{levelExpr, outer.follow})
		return
	}
	p.printExpr(n.Class, slot{levelExpr, followClause})
	p.write(", pre ")
	p.printList(n.Arguments, levelExpr, outer.follow)
}

func (p *CodePrinter) VisitThisExpression(n *ast.ThisExpression) {
	p.write("tento objekt")
}

func (p *CodePrinter) VisitArgumentsExpression(n *ast.ArgumentsExpression) {
	p.write("argumenty funkcie")
}

func (p *CodePrinter) VisitClassExpression(n *ast.ClassExpression) {
	outer := p.slot
	p.write("trieda")
	if n.Name != nil {
		p.write(" " + n.Name.Value)
	}
	if n.Parent != nil {
		p.write(" rozširujúca triedu ")
		if len(n.Properties) == 0 {
			p.printExpr(n.Parent, slot{levelNth, outer.follow})
			return
		}
		p.printExpr(n.Parent, slot{levelNth, followClause})
		p.write(",")
	}
	if len(n.Properties) == 0 {
		return
	}
	p.write(" obsahujúca ")
	for i, prop := range n.Properties {
		p.writeSeparator(i, len(n.Properties))
		p.write(prop.Key.Value)
		if lit, ok := prop.Value.(*ast.Literal); ok && lit.Kind == ast.UnsetLiteral {
			continue
		}
		f := followList
		if i == len(n.Properties)-1 {
			f = outer.follow
		}
		p.write(", predvolene ")
		p.printExpr(prop.Value, slot{levelExpr, f})
	}
}

func (p *CodePrinter) VisitImportExpression(n *ast.ImportExpression) {
	outer := p.slot
	p.write("importuj modul ")
	p.printExpr(n.Module, slot{levelExpr, outer.follow})
}

func (p *CodePrinter) VisitExportExpression(n *ast.ExportExpression) {
	outer := p.slot
	p.write("exportuj ")
	p.printExpr(n.Value, slot{levelExpr, followKeyword})
	p.write(" ako ")
	p.printExpr(n.Name, slot{levelExpr, outer.follow})
}
