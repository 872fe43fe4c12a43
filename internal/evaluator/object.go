package evaluator

import (
	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/config"
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/prettyprinter"
)

// ObjectType is the runtime type name, as returned by `typ`.
type ObjectType string

const (
	NUMBER_OBJ   ObjectType = config.NumberTypeName
	STRING_OBJ   ObjectType = config.StringTypeName
	BOOLEAN_OBJ  ObjectType = config.BooleanTypeName
	UNSET_OBJ    ObjectType = config.UnsetTypeName
	FUNCTION_OBJ ObjectType = config.FunctionTypeName
	CLASS_OBJ    ObjectType = config.ClassTypeName
	INSTANCE_OBJ ObjectType = config.InstanceTypeName

	// Internal types never observable from a program.
	ERROR_OBJ         ObjectType = "ERROR"
	UNINITIALIZED_OBJ ObjectType = "UNINITIALIZED"
)

// Object is a runtime value.
type Object interface {
	Type() ObjectType
	// Inspect renders the value the way it appears nested inside
	// another value. Stringify gives the top level print form.
	Inspect() string
}

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	UNSET = &Unset{}

	// uninitialized is bound to `this` in a derived constructor until
	// the superclass constructor has run.
	uninitialized = &Uninitialized{}
)

type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string  { return FormatNumber(n.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return quote(s.Value) }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string {
	if b.Value {
		return config.TrueName
	}
	return config.FalseName
}

// Unset is the explicit "no value" value.
type Unset struct{}

func (u *Unset) Type() ObjectType { return UNSET_OBJ }
func (u *Unset) Inspect() string  { return config.UnsetTypeName }

type Uninitialized struct{}

func (u *Uninitialized) Type() ObjectType { return UNINITIALIZED_OBJ }
func (u *Uninitialized) Inspect() string  { return "<neinicializované>" }

// NativeFunction implements a function in Go.
type NativeFunction func(e *Evaluator, args ...Object) Object

// Function is a closure over the scope it was created in, or a native.
// This is set when the function was bound to an instance as a method.
type Function struct {
	Decl   *ast.FunctionExpression
	Env    *Environment
	This   Object
	Name   string
	Native NativeFunction
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	if f.Native != nil {
		return "<natívna funkcia>"
	}
	return prettyprinter.Code(f.Decl)
}

// bind returns a copy of f with `this` set to instance.
func (f *Function) bind(instance Object) *Function {
	bound := *f
	bound.This = instance
	return &bound
}

type Class struct {
	Decl   *ast.ClassExpression
	Parent *Class
	Name   string
}

func (c *Class) Type() ObjectType { return CLASS_OBJ }
func (c *Class) Inspect() string  { return prettyprinter.Code(c.Decl) }

// Instance holds properties in insertion order. Class is nil for
// instances created by the runtime itself, such as module objects.
type Instance struct {
	Class      *Class
	Properties *Properties
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Properties: NewProperties()}
}

func (i *Instance) Type() ObjectType { return INSTANCE_OBJ }
func (i *Instance) Inspect() string {
	if i.Class == nil || i.Class.Name == "" {
		return "<anonymný objekt>"
	}
	return "<objekt " + i.Class.Name + ">"
}

// Get returns the property stored under key, or UNSET.
func (i *Instance) Get(key Object) Object {
	k, ok := keyOf(key)
	if !ok {
		return UNSET
	}
	if v, ok := i.Properties.Get(k); ok {
		return v
	}
	return UNSET
}

// Set stores a property. It reports false when key cannot be a
// property key.
func (i *Instance) Set(key, value Object) bool {
	k, ok := keyOf(key)
	if ok {
		i.Properties.Set(k, value)
	}
	return ok
}

// SetString stores a property under a string key.
func (i *Instance) SetString(key string, value Object) {
	i.Properties.Set(propertyKey{kind: STRING_OBJ, str: key}, value)
}

// Error carries a Failure through evaluation.
type Error struct {
	Failure *diagnostics.Failure
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "ERROR: " + e.Failure.Message }
