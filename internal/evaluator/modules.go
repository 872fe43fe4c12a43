package evaluator

import (
	"errors"
	"time"

	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/modules"
)

// evalImportExpression evaluates a module once per resolved path and
// returns an object holding its exports.
func (e *Evaluator) evalImportExpression(node *ast.ImportExpression, env *Environment) Object {
	name := e.Eval(node.Module, env)
	if isError(name) {
		return name
	}
	s, ok := name.(*String)
	if !ok {
		return e.newError(diagnostics.ErrR014, node.Module.Tokens(), "Module name must be a string, got %q", name.Type())
	}
	if e.Loader == nil {
		return e.newError(diagnostics.ErrR017, node.Tokens(), "Cannot load module %q: no module loader", s.Value)
	}

	path, err := e.Loader.Resolve(s.Value, e.CurrentDir)
	if err != nil {
		return e.newError(diagnostics.ErrR017, node.Module.Tokens(), "Cannot load module %q: %v", s.Value, err)
	}
	if cached, ok := e.ModuleCache[path]; ok {
		return cached
	}

	mod, err := e.Loader.Load(path)
	if err != nil {
		var fail *diagnostics.Failure
		if errors.As(err, &fail) {
			return &Error{Failure: fail}
		}
		return e.newError(diagnostics.ErrR017, node.Module.Tokens(), "Cannot load module %q: %v", s.Value, err)
	}

	exports := e.RunModule(mod)
	if isError(exports) {
		return exports
	}
	instance := exports.(*Instance)
	e.ModuleCache[path] = instance
	return instance
}

func (e *Evaluator) evalExportExpression(node *ast.ExportExpression, env *Environment) Object {
	if e.exports == nil {
		return e.newError(diagnostics.ErrR015, node.Tokens(), "Cannot export outside module")
	}
	val := e.Eval(node.Value, env)
	if isError(val) {
		return val
	}
	name := e.Eval(node.Name, env)
	if isError(name) {
		return name
	}
	s, ok := name.(*String)
	if !ok {
		return e.newError(diagnostics.ErrR016, node.Name.Tokens(), "Export name must be a string, got %q", name.Type())
	}
	e.exports.SetString(s.Value, val)
	return val
}

// RunModule evaluates a module's top level in a fresh scope under the
// global one and returns its exports as an instance. Failures keep the
// module's own source for rendering.
func (e *Evaluator) RunModule(mod *modules.Module) Object {
	start := time.Now()
	savedExports, savedDir := e.exports, e.CurrentDir
	e.exports = NewInstance(nil)
	e.CurrentDir = mod.Dir
	defer func() {
		e.exports, e.CurrentDir = savedExports, savedDir
	}()

	result := e.Eval(mod.Program, NewEnclosedEnvironment(e.GlobalEnv))
	if err, ok := result.(*Error); ok {
		err.Failure.WithSource(mod.Path, mod.Source)
		return err
	}
	e.tracef("evaluated module %s in %s (%d exports)", mod.Path, time.Since(start), e.exports.Properties.Len())
	return e.exports
}

// LoadBuiltins runs each library module in order and merges its exports
// into the global scope.
func (e *Evaluator) LoadBuiltins(mods []*modules.Module) *diagnostics.Failure {
	for _, mod := range mods {
		exports := e.RunModule(mod)
		if err, ok := exports.(*Error); ok {
			return err.Failure
		}
		exports.(*Instance).Properties.Each(func(key, value Object) {
			if s, ok := key.(*String); ok {
				e.GlobalEnv.Set(s.Value, value)
			}
		})
		e.tracef("loaded builtin module %s", mod.Name)
	}
	return nil
}
