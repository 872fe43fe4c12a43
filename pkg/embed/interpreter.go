package spj

import (
	"fmt"
	"io"
	"log"
	"os"
	"reflect"

	"github.com/funvibe/spj/internal/config"
	"github.com/funvibe/spj/internal/evaluator"
	"github.com/funvibe/spj/internal/lexer"
	"github.com/funvibe/spj/internal/modules"
	"github.com/funvibe/spj/internal/parser"
	"github.com/funvibe/spj/internal/pipeline"
)

// Interpreter wraps an evaluator and provides a high-level embedding API.
// Every Eval and LoadFile runs in one persistent scope, so declarations
// made by one call are visible to the next.
type Interpreter struct {
	eval       *evaluator.Evaluator
	loader     *modules.Loader
	env        *evaluator.Environment
	marshaller *Marshaller
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput redirects `Vypíš`. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) { in.eval.Out = w }
}

// WithProject applies an spj.yaml configuration.
func WithProject(p *config.Project) Option {
	return func(in *Interpreter) {
		in.loader.ModulePaths = append(in.loader.ModulePaths, p.ModulePaths...)
		in.loader.BuiltinDir = p.Builtins
		if p.MaxDepth > 0 {
			in.eval.MaxDepth = p.MaxDepth
		}
	}
}

// WithModulePaths adds directories searched by `importuj modul`.
func WithModulePaths(dirs ...string) Option {
	return func(in *Interpreter) { in.loader.ModulePaths = append(in.loader.ModulePaths, dirs...) }
}

// WithMaxDepth bounds evaluator recursion.
func WithMaxDepth(n int) Option {
	return func(in *Interpreter) { in.eval.MaxDepth = n }
}

// WithTracer logs loading and evaluation events.
func WithTracer(l *log.Logger) Option {
	return func(in *Interpreter) {
		in.eval.Tracer = l
		in.loader.Tracer = l
	}
}

// New creates an interpreter with the builtin library loaded.
func New(opts ...Option) (*Interpreter, error) {
	e := evaluator.New()
	loader := modules.NewLoader()
	e.Loader = loader

	in := &Interpreter{eval: e, loader: loader}
	for _, opt := range opts {
		opt(in)
	}

	mods, err := loader.Builtins()
	if err != nil {
		return nil, fmt.Errorf("loading builtins: %w", err)
	}
	if fail := e.LoadBuiltins(mods); fail != nil {
		return nil, fail
	}
	in.env = evaluator.NewEnclosedEnvironment(e.GlobalEnv)
	in.marshaller = NewMarshaller(e)
	return in, nil
}

// Bind registers a Go function or value under name. Functions become
// native functions callable with `funkčná hodnota funkcie`; other values
// are converted as Set does.
func (in *Interpreter) Bind(name string, val interface{}) error {
	if fn := reflect.ValueOf(val); fn.Kind() == reflect.Func {
		in.env.Set(name, in.marshaller.wrapFunc(name, fn))
		return nil
	}
	return in.Set(name, val)
}

// Set converts val and stores it as a variable.
func (in *Interpreter) Set(name string, val interface{}) error {
	obj, err := in.marshaller.ToValue(val)
	if err != nil {
		return fmt.Errorf("setting %s: %w", name, err)
	}
	in.env.Set(name, obj)
	return nil
}

// Get reads a variable and converts it to a Go value.
func (in *Interpreter) Get(name string) (interface{}, error) {
	obj, ok := in.env.Get(name)
	if !ok {
		return nil, fmt.Errorf("variable '%s' not found", name)
	}
	return in.marshaller.FromValue(obj, nil)
}

// Call calls a function defined in the program (or bound from Go) by name.
func (in *Interpreter) Call(funcName string, args ...interface{}) (interface{}, error) {
	obj, ok := in.env.Get(funcName)
	if !ok {
		return nil, fmt.Errorf("function '%s' not found", funcName)
	}
	fn, ok := obj.(*evaluator.Function)
	if !ok {
		return nil, fmt.Errorf("'%s' is a %s, not a function", funcName, obj.Type())
	}

	callArgs := make([]evaluator.Object, len(args))
	for i, arg := range args {
		val, err := in.marshaller.ToValue(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		callArgs[i] = val
	}

	result := in.eval.Call(fn, callArgs...)
	if err, ok := result.(*evaluator.Error); ok {
		return nil, err.Failure
	}
	return in.marshaller.FromValue(result, nil)
}

// Eval runs source and returns the value of its last statement. A
// failure is returned as a *diagnostics.Failure.
func (in *Interpreter) Eval(source string) (interface{}, error) {
	return in.run(source, "")
}

// LoadFile runs a program file. Its imports resolve against the file's
// directory.
func (in *Interpreter) LoadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = in.run(string(content), path)
	return err
}

func (in *Interpreter) run(source, path string) (interface{}, error) {
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = path

	ctx = pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&evaluator.EvaluatorProcessor{Evaluator: in.eval, Env: in.env},
	).Run(ctx)
	if ctx.Failure != nil {
		return nil, ctx.Failure
	}

	obj, ok := ctx.Result.(evaluator.Object)
	if !ok {
		return nil, nil
	}
	return in.marshaller.FromValue(obj, nil)
}
