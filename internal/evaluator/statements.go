package evaluator

import (
	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/diagnostics"
)

// evalProgram runs top level statements directly in env and returns the
// value of the last one.
func (e *Evaluator) evalProgram(program *ast.Program, env *Environment) Object {
	var result Object = UNSET
	for _, stmt := range program.Body.Statements {
		result = e.Eval(stmt, env)
		if isError(result) {
			return result
		}
	}
	return result
}

// evalBlockStatement runs statements in a child scope. Once the active
// call has recorded a return value no further statements run; only the
// block that is the function's own body hands the value back.
func (e *Evaluator) evalBlockStatement(block *ast.BlockStatement, env *Environment) Object {
	blockEnv := NewEnclosedEnvironment(env)
	for _, stmt := range block.Statements {
		result := e.Eval(stmt, blockEnv)
		if isError(result) {
			return result
		}
		if frame := e.currentFrame(); frame != nil && frame.Return != nil {
			if frame.Function.Decl.Body == block {
				return frame.Return
			}
			break
		}
	}
	return UNSET
}

func (e *Evaluator) evalVariableDeclaration(node *ast.VariableDeclaration, env *Environment) Object {
	val := e.Eval(node.Value, env)
	if isError(val) {
		return val
	}
	// Anonymous literals take the name they are declared under.
	switch v := val.(type) {
	case *Function:
		if _, ok := node.Value.(*ast.FunctionExpression); ok && v.Name == "" {
			v.Name = node.Name.Value
		}
	case *Class:
		if _, ok := node.Value.(*ast.ClassExpression); ok && v.Name == "" {
			v.Name = node.Name.Value
		}
	}
	env.Set(node.Name.Value, val)
	return UNSET
}

func (e *Evaluator) evalReturnStatement(node *ast.ReturnStatement, env *Environment) Object {
	frame := e.currentFrame()
	if frame == nil {
		return e.newError(diagnostics.ErrR011, node.Tokens(), "Cannot return outside of function")
	}
	val := e.Eval(node.Value, env)
	if isError(val) {
		return val
	}
	frame.Return = val
	return val
}

func (e *Evaluator) evalIfStatement(node *ast.IfStatement, env *Environment) Object {
	test := e.Eval(node.Test, env)
	if isError(test) {
		return test
	}
	if isTruthy(test) {
		return e.Eval(node.Consequent, env)
	}
	if node.Alternate != nil {
		return e.Eval(node.Alternate, env)
	}
	return UNSET
}

func (e *Evaluator) evalWhileStatement(node *ast.WhileStatement, env *Environment) Object {
	for {
		test := e.Eval(node.Test, env)
		if isError(test) {
			return test
		}
		if !isTruthy(test) {
			return UNSET
		}
		result := e.Eval(node.Body, env)
		if isError(result) {
			return result
		}
		if e.returning() {
			return UNSET
		}
	}
}
