package evaluator

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Environment is one scope. Closures keep a reference to the scope they
// were created in, so scopes are shared and never copied.
type Environment struct {
	store map[string]Object
	outer *Environment
}

// Get walks the scope chain from the innermost scope outwards.
func (e *Environment) Get(name string) (Object, bool) {
	for env := e; env != nil; env = env.outer {
		if obj, ok := env.store[name]; ok {
			return obj, true
		}
	}
	return nil, false
}

// Set declares or overwrites name in this scope.
func (e *Environment) Set(name string, val Object) Object {
	e.store[name] = val
	return val
}

// Update assigns to the nearest scope that already declares name.
func (e *Environment) Update(name string, val Object) bool {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.store[name]; ok {
			env.store[name] = val
			return true
		}
	}
	return false
}

// GetStore returns a copy of this scope's own bindings.
func (e *Environment) GetStore() map[string]Object {
	copy := make(map[string]Object, len(e.store))
	for k, v := range e.store {
		copy[k] = v
	}
	return copy
}
