package pipeline_test

import (
	"testing"

	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/pipeline"
	"github.com/funvibe/spj/internal/token"
)

type recordStage struct {
	name  string
	seen  *[]string
	fails bool
}

func (r recordStage) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	*r.seen = append(*r.seen, r.name)
	if r.fails {
		ctx.Failure = diagnostics.NewError(diagnostics.ErrP003, []token.Token{{Type: token.IDENT, Lexeme: "x"}}, "boom")
	}
	return ctx
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	var seen []string
	p := pipeline.New(
		recordStage{name: "lex", seen: &seen},
		recordStage{name: "parse", seen: &seen, fails: true},
		recordStage{name: "eval", seen: &seen},
	)
	ctx := p.Run(&pipeline.PipelineContext{SourceCode: "x.", FilePath: "main.spj"})
	if len(seen) != 2 || seen[1] != "parse" {
		t.Fatalf("stages run = %v, want [lex parse]", seen)
	}
	if ctx.Failure == nil {
		t.Fatal("expected failure")
	}
	if ctx.Failure.Source != "x." || ctx.Failure.File != "main.spj" {
		t.Errorf("source not attached: %q %q", ctx.Failure.Source, ctx.Failure.File)
	}
}
