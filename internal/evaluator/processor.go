package evaluator

import (
	"path/filepath"
	"time"

	"github.com/funvibe/spj/internal/pipeline"
)

// EvaluatorProcessor runs a parsed program. Env, when set, is reused
// across runs so an interactive session keeps its declarations;
// otherwise each run gets a fresh scope under the global one.
type EvaluatorProcessor struct {
	Evaluator *Evaluator
	Env       *Environment
}

func (ep *EvaluatorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.Failure != nil {
		return ctx
	}

	eval := ep.Evaluator
	if eval == nil {
		eval = New()
	}
	env := ep.Env
	if env == nil {
		env = NewEnclosedEnvironment(eval.GlobalEnv)
	}
	if ctx.FilePath != "" {
		eval.CurrentDir = filepath.Dir(ctx.FilePath)
	}

	start := time.Now()
	result := eval.Eval(ctx.AstRoot, env)
	eval.tracef("evaluated %s in %s", displayName(ctx.FilePath), time.Since(start))
	if err, ok := result.(*Error); ok {
		ctx.Failure = err.Failure
		return ctx
	}
	ctx.Result = result
	return ctx
}

func displayName(path string) string {
	if path == "" {
		return "<stdin>"
	}
	return path
}
