package evaluator

import (
	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/config"
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/token"
)

func (e *Evaluator) evalClassExpression(node *ast.ClassExpression, env *Environment) Object {
	class := &Class{Decl: node}
	if node.Name != nil {
		class.Name = node.Name.Value
	}
	if node.Parent != nil {
		parent := e.Eval(node.Parent, env)
		if isError(parent) {
			return parent
		}
		p, ok := parent.(*Class)
		if !ok {
			return e.newError(diagnostics.ErrR018, node.Parent.Tokens(), "Cannot extend a non-class expression of type %q", parent.Type())
		}
		class.Parent = p
	}
	return class
}

func (e *Evaluator) evalNewExpression(node *ast.NewExpression, env *Environment) Object {
	obj := e.Eval(node.Class, env)
	if isError(obj) {
		return obj
	}
	class, ok := obj.(*Class)
	if !ok {
		return e.newError(diagnostics.ErrR007, node.Class.Tokens(), "Cannot instantiate a non-class expression of type %q", obj.Type())
	}
	args, err := e.evalExpressions(node.Arguments, env)
	if err != nil {
		return err
	}
	return e.instantiate(class, args, env, nil, node.GetToken())
}

// Instantiate creates an instance from Go the way `nová inštancia
// triedy` does, evaluating initializers in the global scope.
func (e *Evaluator) Instantiate(class *Class, args ...Object) Object {
	return e.instantiate(class, args, e.GlobalEnv, nil, token.Token{})
}

// instantiate builds an instance of class, or fills into when a derived
// class is building its parent part. Property initializers and the
// constructor are evaluated in env, the scope the instance is created
// in.
func (e *Evaluator) instantiate(class *Class, args []Object, env *Environment, into *Instance, site token.Token) Object {
	instance := into
	if instance == nil {
		instance = NewInstance(class)
	}

	var ctor *Function
	ctorProp := class.Decl.Property(config.ConstructorName)
	if ctorProp != nil {
		val := e.Eval(ctorProp.Value, env)
		if isError(val) {
			return val
		}
		fn, ok := val.(*Function)
		if !ok {
			return e.newError(diagnostics.ErrR006, ctorProp.Value.Tokens(), "Class constructor is not a function")
		}
		ctor = fn
	}

	if class.Parent == nil {
		if err := e.initProperties(class, instance, env); err != nil {
			return err
		}
		if ctor != nil {
			if result := e.applyFunction(ctor.bind(instance), args, site); isError(result) {
				return result
			}
		}
		return instance
	}

	// A derived constructor sees an uninitialized `this` and the
	// `nadtrieda` binding until the parent part is built.
	var ctorEnv *Environment
	superCalled := false
	super := func(e *Evaluator, parentArgs ...Object) Object {
		if result := e.instantiate(class.Parent, parentArgs, env, instance, site); isError(result) {
			return result
		}
		if err := e.initProperties(class, instance, env); err != nil {
			return err
		}
		if ctorEnv != nil {
			ctorEnv.Set(config.ThisBinding, instance)
		}
		superCalled = true
		return instance
	}

	if ctor == nil {
		if result := super(e); isError(result) {
			return result
		}
		return instance
	}

	ctorEnv = NewEnclosedEnvironment(ctor.Env)
	ctorEnv.Set(config.ThisBinding, uninitialized)
	ctorEnv.Set(config.SuperName, &Function{Native: super, Name: config.SuperName})
	derived := *ctor
	derived.Env = ctorEnv
	derived.This = nil

	if result := e.applyFunction(&derived, args, site); isError(result) {
		return result
	}
	if !superCalled {
		return e.newError(diagnostics.ErrR013, ctorProp.Value.Tokens(), "Must call super constructor in derived class before returning from derived constructor")
	}
	return instance
}

// initProperties evaluates each declared property afresh and stores it
// on instance. Functions become methods bound to the instance.
func (e *Evaluator) initProperties(class *Class, instance *Instance, env *Environment) *Error {
	for _, prop := range class.Decl.Properties {
		val := e.Eval(prop.Value, env)
		if err, ok := val.(*Error); ok {
			return err
		}
		if fn, ok := val.(*Function); ok {
			val = fn.bind(instance)
		}
		instance.SetString(prop.Key.Value, val)
	}
	return nil
}
