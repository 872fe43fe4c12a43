package parser

import (
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/pipeline"
	"github.com/funvibe/spj/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Tokens == nil {
		ctx.Failure = diagnostics.NewError(diagnostics.ErrP002, []token.Token{{Type: token.EOF}}, "parser: token stream is nil")
		return ctx
	}

	program, fail := New(ctx.Tokens).ParseProgram()
	if fail != nil {
		fail.File = ctx.FilePath
		ctx.Failure = fail
		return ctx
	}
	program.File = ctx.FilePath
	ctx.AstRoot = program
	return ctx
}
