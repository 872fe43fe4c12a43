package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/spj/internal/ast"
)

// --- Tree Printer (Output shows the node structure) ---

// TreePrinter dumps one node per line, children indented below their
// parent, each with its 0-based source position.
type TreePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

// Tree dumps a node and everything below it.
func Tree(node ast.Node) string {
	p := NewTreePrinter()
	p.Print(node)
	return p.String()
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}

func (p *TreePrinter) Print(node ast.Node) {
	if node == nil {
		return
	}
	p.buf.WriteString(strings.Repeat("  ", p.indent))
	p.buf.WriteString(strings.TrimPrefix(fmt.Sprintf("%T", node), "*ast."))
	if detail := describe(node); detail != "" {
		p.buf.WriteString(" " + detail)
	}
	if toks := node.Tokens(); len(toks) > 0 {
		fmt.Fprintf(&p.buf, " @%d:%d", toks[0].Line, toks[0].Column)
	}
	p.buf.WriteString("\n")

	p.indent++
	for _, child := range ast.Children(node) {
		p.Print(child)
	}
	p.indent--
}

func describe(node ast.Node) string {
	switch n := node.(type) {
	case *ast.Program:
		return n.File
	case *ast.Identifier:
		return n.Value
	case *ast.Literal:
		switch n.Kind {
		case ast.NumberLiteral:
			return strconv.FormatFloat(n.Number, 'g', -1, 64)
		case ast.StringLiteral:
			return strconv.Quote(n.String)
		}
		return "unset"
	case *ast.UnaryExpression:
		return n.Operator
	case *ast.BinaryExpression:
		return n.Operator
	case *ast.FunctionExpression:
		return fmt.Sprintf("params=%d", len(n.Parameters))
	case *ast.CallExpression:
		return fmt.Sprintf("args=%d", len(n.Arguments))
	case *ast.NewExpression:
		return fmt.Sprintf("args=%d", len(n.Arguments))
	case *ast.ClassExpression:
		return fmt.Sprintf("properties=%d", len(n.Properties))
	}
	return ""
}
