package pipeline

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages after a failing one are skipped;
// there is exactly one failure per run.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		if ctx.Failure != nil {
			break
		}
		ctx = processor.Process(ctx)
	}
	if ctx.Failure != nil {
		ctx.Failure.WithSource(ctx.FilePath, ctx.SourceCode)
	}
	return ctx
}
