package evaluator

import (
	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/config"
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/token"
)

func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *Environment) Object {
	callee := e.Eval(node.Callee, env)
	if isError(callee) {
		return callee
	}
	fn, ok := callee.(*Function)
	if !ok {
		return e.newError(diagnostics.ErrR006, tokensOf(node.Callee, node), "Cannot call non-function expression of type %q", callee.Type())
	}
	args, err := e.evalExpressions(node.Arguments, env)
	if err != nil {
		return err
	}
	return e.applyFunction(fn, args, node.GetToken())
}

// evalExpressions evaluates left to right, stopping at the first error.
func (e *Evaluator) evalExpressions(exprs []ast.Expression, env *Environment) ([]Object, *Error) {
	result := make([]Object, 0, len(exprs))
	for _, expr := range exprs {
		val := e.Eval(expr, env)
		if err, ok := val.(*Error); ok {
			return nil, err
		}
		result = append(result, val)
	}
	return result, nil
}

// applyFunction calls fn. Natives get the values directly. A user
// function runs in a fresh scope under its closure scope with the
// parameters, `this` and the arguments object bound, inside its own
// call frame.
func (e *Evaluator) applyFunction(fn *Function, args []Object, site token.Token) Object {
	if fn.Native != nil {
		saved := e.nativeSite
		e.nativeSite = site
		defer func() { e.nativeSite = saved }()
		return fn.Native(e, args...)
	}

	scope := NewEnclosedEnvironment(fn.Env)
	if fn.This != nil {
		scope.Set(config.ThisBinding, fn.This)
	}
	for i, param := range fn.Decl.Parameters {
		var val Object = UNSET
		switch {
		case i < len(args):
			val = args[i]
		case param.Default != nil:
			val = e.Eval(param.Default, scope)
			if isError(val) {
				return val
			}
		}
		scope.Set(param.Name.Value, val)
	}

	arguments := e.newArguments(args)
	if isError(arguments) {
		return arguments
	}
	scope.Set(config.ArgumentsBinding, arguments)

	frame := e.pushCall(fn, site)
	defer e.popCall()

	result := e.Eval(fn.Decl.Body, scope)
	if isError(result) {
		return result
	}
	if frame.Return != nil {
		return frame.Return
	}
	return UNSET
}

// newArguments builds the arguments object: an instance of the builtin
// Argumenty class when the library defines one, holding `dĺžka` and the
// values under 0, 1, ...
func (e *Evaluator) newArguments(args []Object) Object {
	var instance *Instance
	if class, ok := e.lookupGlobal(config.ArgumentsClassName).(*Class); ok {
		obj := e.instantiate(class, nil, e.GlobalEnv, nil, token.Token{})
		if isError(obj) {
			return obj
		}
		instance = obj.(*Instance)
	} else {
		instance = NewInstance(nil)
	}
	instance.SetString(config.LengthName, &Number{Value: float64(len(args))})
	for i, arg := range args {
		k, _ := keyOf(&Number{Value: float64(i)})
		instance.Properties.Set(k, arg)
	}
	return instance
}

func (e *Evaluator) lookupGlobal(name string) Object {
	if obj, ok := e.GlobalEnv.Get(name); ok {
		return obj
	}
	return nil
}

// Call invokes a function value from Go.
func (e *Evaluator) Call(fn *Function, args ...Object) Object {
	return e.applyFunction(fn, args, token.Token{})
}

// Fail reports a failure from inside a native function, pointing at the
// expression that called it.
func (e *Evaluator) Fail(format string, args ...interface{}) Object {
	return e.newError(diagnostics.ErrR021, []token.Token{e.nativeSite}, format, args...)
}
