package evaluator

import (
	"math"
	"strconv"
	"strings"

	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/diagnostics"
)

func evalLiteral(node *ast.Literal) Object {
	switch node.Kind {
	case ast.NumberLiteral:
		return &Number{Value: node.Number}
	case ast.StringLiteral:
		return &String{Value: node.String}
	}
	return UNSET
}

func (e *Evaluator) evalSequenceExpression(node *ast.SequenceExpression, env *Environment) Object {
	var result Object = UNSET
	for _, expr := range node.Expressions {
		result = e.Eval(expr, env)
		if isError(result) {
			return result
		}
	}
	return result
}

func (e *Evaluator) evalUnaryExpression(node *ast.UnaryExpression, env *Environment) Object {
	operand := e.Eval(node.Operand, env)
	if isError(operand) {
		return operand
	}

	switch node.Operator {
	case "!":
		return nativeBool(!isTruthy(operand))
	case "typeof":
		return &String{Value: string(operand.Type())}
	}

	if _, ok := operand.(*Unset); ok {
		return e.newError(diagnostics.ErrR002, node.Tokens(), "Cannot apply unary operator %q to value type of %q", node.Operator, operand.Type())
	}
	n, ok := toNumber(operand)
	if !ok {
		return e.newError(diagnostics.ErrR003, node.Tokens(), "Cannot apply unary operator %q to value type of %q", node.Operator, operand.Type())
	}
	switch node.Operator {
	case "-":
		return &Number{Value: -n}
	case "+":
		return &Number{Value: n}
	}
	panic("evaluator: unknown unary operator " + node.Operator)
}

func (e *Evaluator) evalBinaryExpression(node *ast.BinaryExpression, env *Environment) Object {
	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}

	if node.Operator == "===" {
		return nativeBool(strictEquals(left, right))
	}

	_, leftUnset := left.(*Unset)
	_, rightUnset := right.(*Unset)
	if leftUnset || rightUnset {
		return e.newError(diagnostics.ErrR002, node.Tokens(), "Cannot apply binary operator %q to value type of %q and %q", node.Operator, left.Type(), right.Type())
	}

	switch node.Operator {
	case "<", ">", "<=", ">=":
		return nativeBool(compare(node.Operator, left, right))
	}

	l, lok := left.(*Number)
	r, rok := right.(*Number)
	if !lok || !rok {
		return e.newError(diagnostics.ErrR003, node.Tokens(), "Cannot apply binary operator %q to value type of %q and %q", node.Operator, left.Type(), right.Type())
	}
	switch node.Operator {
	case "+":
		return &Number{Value: l.Value + r.Value}
	case "-":
		return &Number{Value: l.Value - r.Value}
	case "*":
		return &Number{Value: l.Value * r.Value}
	case "/":
		return &Number{Value: l.Value / r.Value}
	case "**":
		return &Number{Value: math.Pow(l.Value, r.Value)}
	case "//":
		// The left operand is the degree of the root.
		return &Number{Value: math.Pow(r.Value, 1/l.Value)}
	}
	panic("evaluator: unknown binary operator " + node.Operator)
}

// isTruthy: false, 0, NaN, "" and unset are false.
func isTruthy(obj Object) bool {
	switch v := obj.(type) {
	case *Boolean:
		return v.Value
	case *Number:
		return v.Value != 0 && !math.IsNaN(v.Value)
	case *String:
		return v.Value != ""
	case *Unset:
		return false
	}
	return true
}

// strictEquals compares primitives by kind and value and everything
// else by identity.
func strictEquals(left, right Object) bool {
	switch l := left.(type) {
	case *Number:
		r, ok := right.(*Number)
		return ok && l.Value == r.Value
	case *String:
		r, ok := right.(*String)
		return ok && l.Value == r.Value
	case *Boolean:
		r, ok := right.(*Boolean)
		return ok && l.Value == r.Value
	case *Unset:
		_, ok := right.(*Unset)
		return ok
	}
	return left == right
}

// compare orders two strings lexically and anything else numerically.
// A comparison involving NaN is false.
func compare(op string, left, right Object) bool {
	if l, ok := left.(*String); ok {
		if r, ok := right.(*String); ok {
			c := strings.Compare(l.Value, r.Value)
			switch op {
			case "<":
				return c < 0
			case ">":
				return c > 0
			case "<=":
				return c <= 0
			}
			return c >= 0
		}
	}
	l, _ := toNumber(left)
	r, _ := toNumber(right)
	switch op {
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	}
	return l >= r
}

// toNumber coerces a value to a number. ok is false when the value has
// no numeric reading; the number is then NaN.
func toNumber(obj Object) (float64, bool) {
	switch v := obj.(type) {
	case *Number:
		return v.Value, true
	case *Boolean:
		if v.Value {
			return 1, true
		}
		return 0, true
	case *String:
		s := strings.TrimSpace(v.Value)
		if s == "" {
			return 0, true
		}
		switch s {
		case "Infinity", "+Infinity":
			return math.Inf(1), true
		case "-Infinity":
			return math.Inf(-1), true
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || strings.ContainsAny(s, "_xXpPnN") {
			return math.NaN(), false
		}
		return n, true
	}
	return math.NaN(), false
}
