package mutator

import (
	"math/rand"

	"github.com/funvibe/spj/internal/ast"
)

// ASTMutator applies random mutations to an AST. Every mutation keeps
// the tree printable: operators are only swapped within the same
// precedence group and statements only move between blocks.
type ASTMutator struct {
	rnd *rand.Rand
}

// NewASTMutator creates a new ASTMutator with the given seed.
func NewASTMutator(seed int64) *ASTMutator {
	return &ASTMutator{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

var (
	arithmeticOperators = []string{"+", "-", "*", "/", "**"}
	comparisonOperators = []string{"===", ">", "<", ">=", "<="}
	signOperators       = []string{"+", "-"}
	replacementStrings  = []string{"", "x", "ň", "\"", "\\", "dlhší reťazec"}
)

// Mutate applies one random mutation to the program in place. It
// reports false when the program has nothing to mutate.
func (m *ASTMutator) Mutate(program *ast.Program) bool {
	if program == nil || program.Body == nil {
		return false
	}

	var candidates []ast.Node
	ast.Inspect(program, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Literal, *ast.BinaryExpression:
			candidates = append(candidates, n)
		case *ast.UnaryExpression:
			if n.Operator == "+" || n.Operator == "-" {
				candidates = append(candidates, n)
			}
		case *ast.BlockStatement:
			if len(n.Statements) > 0 {
				candidates = append(candidates, n)
			}
		}
		return true
	})
	if len(candidates) == 0 {
		return false
	}

	switch n := candidates[m.rnd.Intn(len(candidates))].(type) {
	case *ast.Literal:
		m.mutateLiteral(n)
	case *ast.BinaryExpression:
		m.mutateBinary(n)
	case *ast.UnaryExpression:
		n.Operator = signOperators[m.rnd.Intn(len(signOperators))]
	case *ast.BlockStatement:
		m.mutateBlock(n)
	}
	return true
}

func (m *ASTMutator) mutateLiteral(l *ast.Literal) {
	switch l.Kind {
	case ast.NumberLiteral:
		// Literals are never negative; a sign is a unary expression.
		l.Number += float64(m.rnd.Intn(21))
		if m.rnd.Intn(4) == 0 {
			l.Number = 0
		}
	case ast.StringLiteral:
		l.String = replacementStrings[m.rnd.Intn(len(replacementStrings))]
	case ast.UnsetLiteral:
		l.Kind = ast.NumberLiteral
		l.Number = float64(m.rnd.Intn(10))
	}
}

func (m *ASTMutator) mutateBinary(b *ast.BinaryExpression) {
	switch {
	case contains(arithmeticOperators, b.Operator):
		b.Operator = arithmeticOperators[m.rnd.Intn(len(arithmeticOperators))]
	case contains(comparisonOperators, b.Operator):
		b.Operator = comparisonOperators[m.rnd.Intn(len(comparisonOperators))]
	default:
		b.Left, b.Right = b.Right, b.Left
		if l, ok := b.Left.(*ast.Literal); ok && b.Operator == "//" && l.Kind == ast.NumberLiteral && l.Number < 1 {
			// A root degree below one has no ordinal.
			l.Number = 2
		}
	}
}

func (m *ASTMutator) mutateBlock(block *ast.BlockStatement) {
	n := len(block.Statements)
	switch m.rnd.Intn(3) {
	case 0:
		if n > 1 {
			idx := m.rnd.Intn(n)
			block.Statements = append(block.Statements[:idx], block.Statements[idx+1:]...)
		}
	case 1:
		idx := m.rnd.Intn(n)
		block.Statements = append(block.Statements, block.Statements[idx])
	default:
		i, j := m.rnd.Intn(n), m.rnd.Intn(n)
		block.Statements[i], block.Statements[j] = block.Statements[j], block.Statements[i]
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
