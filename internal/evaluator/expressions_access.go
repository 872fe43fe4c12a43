package evaluator

import (
	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/config"
	"github.com/funvibe/spj/internal/diagnostics"
)

func (e *Evaluator) evalIdentifier(node *ast.Identifier, env *Environment) Object {
	if val, ok := env.Get(node.Value); ok {
		return val
	}
	return e.newError(diagnostics.ErrR001, node.Tokens(), "Variable %q is not declared", node.Value)
}

func (e *Evaluator) evalThisExpression(node *ast.ThisExpression, env *Environment) Object {
	val, ok := env.Get(config.ThisBinding)
	if !ok {
		return UNSET
	}
	if val == uninitialized {
		return e.newError(diagnostics.ErrR012, node.Tokens(), "Must call superclass constructor before using \"this\"")
	}
	return val
}

func (e *Evaluator) evalArgumentsExpression(node *ast.ArgumentsExpression, env *Environment) Object {
	if val, ok := env.Get(config.ArgumentsBinding); ok {
		return val
	}
	return e.newError(diagnostics.ErrR001, node.Tokens(), "Variable %q is not declared", config.ArgumentsBinding)
}

// evalMemberExpression reads a property. Strings can be indexed by
// number and yield one character; a missing property is unset.
func (e *Evaluator) evalMemberExpression(node *ast.MemberExpression, env *Environment) Object {
	obj := e.Eval(node.Object, env)
	if isError(obj) {
		return obj
	}
	key := e.Eval(node.Property, env)
	if isError(key) {
		return key
	}

	if s, ok := obj.(*String); ok {
		n, ok := key.(*Number)
		if !ok {
			return e.newError(diagnostics.ErrR019, node.Property.Tokens(), "Cannot access string character with non-number index")
		}
		return charAt(s.Value, n.Value)
	}

	instance, ok := obj.(*Instance)
	if !ok {
		return e.newError(diagnostics.ErrR008, node.Object.Tokens(), "Cannot access property of non-instance value of type %q", obj.Type())
	}
	if _, ok := keyOf(key); !ok {
		return e.newError(diagnostics.ErrR019, node.Property.Tokens(), "Value of type %q cannot be a property key", key.Type())
	}
	return instance.Get(key)
}

func charAt(s string, index float64) Object {
	runes := []rune(s)
	i := int(index)
	if float64(i) != index || i < 0 || i >= len(runes) {
		return UNSET
	}
	return &String{Value: string(runes[i])}
}

// evalAssignmentExpression evaluates the value first, then stores it in
// the nearest scope declaring the name or in an instance property.
func (e *Evaluator) evalAssignmentExpression(node *ast.AssignmentExpression, env *Environment) Object {
	val := e.Eval(node.Value, env)
	if isError(val) {
		return val
	}

	switch target := node.Target.(type) {
	case *ast.Identifier:
		if !env.Update(target.Value, val) {
			return e.newError(diagnostics.ErrR004, node.Tokens(), "Variable %s is not defined", target.Value)
		}
		return val

	case *ast.MemberExpression:
		obj := e.Eval(target.Object, env)
		if isError(obj) {
			return obj
		}
		key := e.Eval(target.Property, env)
		if isError(key) {
			return key
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return e.newError(diagnostics.ErrR005, node.Value.Tokens(), "Cannot assign to property of non-instance value of type %q", obj.Type())
		}
		k, ok := keyOf(key)
		if !ok {
			return e.newError(diagnostics.ErrR019, target.Property.Tokens(), "Value of type %q cannot be a property key", key.Type())
		}
		instance.Properties.Set(k, val)
		return val
	}
	return e.newError(diagnostics.ErrR005, node.Target.Tokens(), "Cannot assign to non-variable")
}
