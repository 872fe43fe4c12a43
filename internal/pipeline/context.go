package pipeline

import (
	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/token"
)

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries one source file through lexing, parsing and
// evaluation.
type PipelineContext struct {
	SourceCode string
	FilePath   string

	// Normalized is the source after tab expansion and canonical
	// decomposition; token positions refer to it.
	Normalized string
	Tokens     []token.Token
	AstRoot    *ast.Program

	// Result is the value of the last evaluated statement, if any.
	Result interface{}

	Failure *diagnostics.Failure
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{SourceCode: source}
}
