package lexer

import "github.com/funvibe/spj/internal/pipeline"

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Normalized = Normalize(ctx.SourceCode)
	tokens, fail := New(ctx.Normalized).Tokenize()
	if fail != nil {
		fail.File = ctx.FilePath
		ctx.Failure = fail
		return ctx
	}
	ctx.Tokens = tokens
	return ctx
}
