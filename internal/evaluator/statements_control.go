package evaluator

import (
	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/config"
	"github.com/funvibe/spj/internal/diagnostics"
)

// evalForInStatement drives the iterator protocol: the object's
// `iterátor` method yields an iterator whose `ďalší` method returns an
// instance per step and unset when done. Loop names bind positionally to
// the entries 0, 1, ... of each step.
func (e *Evaluator) evalForInStatement(node *ast.ForInStatement, env *Environment) Object {
	obj := e.Eval(node.Object, env)
	if isError(obj) {
		return obj
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return e.newError(diagnostics.ErrR009, node.Object.Tokens(), "Cannot iterate over non-instance object of type %q", obj.Type())
	}
	site := node.GetToken()

	iteratorFn, ok := instance.Get(&String{Value: config.IteratorMethodName}).(*Function)
	if !ok {
		return e.newError(diagnostics.ErrR010, node.Object.Tokens(), "Object is not iterable, %q is not a function", config.IteratorMethodName)
	}
	it := e.applyFunction(iteratorFn, nil, site)
	if isError(it) {
		return it
	}
	iterator, ok := it.(*Instance)
	if !ok {
		return e.newError(diagnostics.ErrR010, node.Object.Tokens(), "Object iterator did not return an instance")
	}
	next, ok := iterator.Get(&String{Value: config.NextMethodName}).(*Function)
	if !ok {
		return e.newError(diagnostics.ErrR010, node.Object.Tokens(), "Iterator does not have a %q method", config.NextMethodName)
	}

	for {
		current := e.applyFunction(next, nil, site)
		if isError(current) {
			return current
		}
		if _, done := current.(*Unset); done {
			return UNSET
		}
		step, ok := current.(*Instance)
		if !ok {
			return e.newError(diagnostics.ErrR010, node.Object.Tokens(), "Iterator %q method did not return an instance", config.NextMethodName)
		}

		loopEnv := NewEnclosedEnvironment(env)
		for i, name := range node.Names {
			loopEnv.Set(name.Value, step.Get(&Number{Value: float64(i)}))
		}
		result := e.Eval(node.Body, loopEnv)
		if isError(result) {
			return result
		}
		if e.returning() {
			return UNSET
		}
	}
}
