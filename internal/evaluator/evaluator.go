package evaluator

import (
	"io"
	"log"
	"os"

	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/config"
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/modules"
	"github.com/funvibe/spj/internal/token"
)

// CallFrame is one active call of a user function. Return is set by a
// return statement and checked at every statement boundary.
type CallFrame struct {
	Function *Function
	Name     string
	Site     token.Token
	Return   Object
}

// ModuleLoader resolves and parses modules for `importuj modul`.
type ModuleLoader interface {
	Resolve(name, fromDir string) (string, error)
	Load(path string) (*modules.Module, error)
}

type Evaluator struct {
	Out io.Writer
	// Loader for modules
	Loader ModuleLoader
	// Tracer receives evaluation events. Nil discards them.
	Tracer *log.Logger
	// MaxDepth bounds the nesting of Eval calls.
	MaxDepth int

	// GlobalEnv holds the constants, natives and builtin exports.
	GlobalEnv *Environment
	// CallStack of active user function calls, innermost last.
	CallStack []*CallFrame
	// ModuleCache maps a resolved module path to its export object.
	ModuleCache map[string]*Instance
	// CurrentDir is the directory of the file whose top level is running.
	CurrentDir string

	// exports collects the exports of the module being evaluated; nil
	// outside a module.
	exports *Instance

	evalDepth int
	// nativeSite is the call site of the running native function.
	nativeSite token.Token
}

func New() *Evaluator {
	e := &Evaluator{
		Out:         os.Stdout,
		MaxDepth:    config.DefaultMaxDepth,
		ModuleCache: make(map[string]*Instance),
	}
	e.GlobalEnv = NewEnvironment()
	RegisterBuiltins(e.GlobalEnv)
	return e
}

func (e *Evaluator) tracef(format string, args ...interface{}) {
	if e.Tracer != nil {
		e.Tracer.Printf(format, args...)
	}
}

func (e *Evaluator) Eval(node ast.Node, env *Environment) Object {
	// Check recursion depth to prevent Go stack overflow
	e.evalDepth++
	defer func() { e.evalDepth-- }()
	if e.evalDepth > e.MaxDepth {
		return e.newError(diagnostics.ErrR020, tokensOf(node), "Maximum recursion depth exceeded")
	}

	switch node := node.(type) {
	// Statements
	case *ast.Program:
		return e.evalProgram(node, env)
	case *ast.BlockStatement:
		return e.evalBlockStatement(node, env)
	case *ast.VariableDeclaration:
		return e.evalVariableDeclaration(node, env)
	case *ast.ExpressionStatement:
		return e.Eval(node.Expression, env)
	case *ast.ReturnStatement:
		return e.evalReturnStatement(node, env)
	case *ast.IfStatement:
		return e.evalIfStatement(node, env)
	case *ast.WhileStatement:
		return e.evalWhileStatement(node, env)
	case *ast.ForInStatement:
		return e.evalForInStatement(node, env)
	case *ast.EmptyStatement:
		return UNSET

	// Expressions
	case *ast.Literal:
		return evalLiteral(node)
	case *ast.Identifier:
		return e.evalIdentifier(node, env)
	case *ast.UnaryExpression:
		return e.evalUnaryExpression(node, env)
	case *ast.BinaryExpression:
		return e.evalBinaryExpression(node, env)
	case *ast.AssignmentExpression:
		return e.evalAssignmentExpression(node, env)
	case *ast.SequenceExpression:
		return e.evalSequenceExpression(node, env)
	case *ast.FunctionExpression:
		fn := &Function{Decl: node, Env: env}
		if node.Name != nil {
			fn.Name = node.Name.Value
		}
		return fn
	case *ast.CallExpression:
		return e.evalCallExpression(node, env)
	case *ast.MemberExpression:
		return e.evalMemberExpression(node, env)
	case *ast.NewExpression:
		return e.evalNewExpression(node, env)
	case *ast.ThisExpression:
		return e.evalThisExpression(node, env)
	case *ast.ArgumentsExpression:
		return e.evalArgumentsExpression(node, env)
	case *ast.ClassExpression:
		return e.evalClassExpression(node, env)
	case *ast.ImportExpression:
		return e.evalImportExpression(node, env)
	case *ast.ExportExpression:
		return e.evalExportExpression(node, env)
	}
	panic("evaluator: unknown node type")
}

// currentFrame returns the innermost active call, or nil at top level.
func (e *Evaluator) currentFrame() *CallFrame {
	if len(e.CallStack) == 0 {
		return nil
	}
	return e.CallStack[len(e.CallStack)-1]
}

// returning reports whether the innermost call has executed a return.
func (e *Evaluator) returning() bool {
	frame := e.currentFrame()
	return frame != nil && frame.Return != nil
}

func (e *Evaluator) pushCall(fn *Function, site token.Token) *CallFrame {
	frame := &CallFrame{Function: fn, Name: fn.Name, Site: site}
	e.CallStack = append(e.CallStack, frame)
	return frame
}

func (e *Evaluator) popCall() {
	if len(e.CallStack) > 0 {
		e.CallStack = e.CallStack[:len(e.CallStack)-1]
	}
}

// stack snapshots the call stack for a Failure, outermost call first.
func (e *Evaluator) stack() []diagnostics.Frame {
	frames := make([]diagnostics.Frame, len(e.CallStack))
	for i, f := range e.CallStack {
		frames[i] = diagnostics.Frame{Function: f.Name, Site: f.Site}
	}
	return frames
}

// newError builds a runtime failure carrying the current stack.
func (e *Evaluator) newError(code diagnostics.ErrorCode, tokens []token.Token, format string, args ...interface{}) *Error {
	return &Error{Failure: diagnostics.NewError(code, tokens, format, args...).WithStack(e.stack())}
}

func isError(obj Object) bool {
	if obj != nil {
		return obj.Type() == ERROR_OBJ
	}
	return false
}

// tokensOf returns the span of the first node that has one. Synthetic
// nodes have none, so callers pass an enclosing node as fallback.
func tokensOf(nodes ...ast.Node) []token.Token {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if toks := n.Tokens(); len(toks) > 0 {
			return toks
		}
	}
	return nil
}

func nativeBool(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}
