// Package pipeline chains the stages that turn a document file into a
// reconciled statement tree.
package pipeline

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Later stages see earlier errors and decide whether to skip.
	}
	return ctx
}

// Load builds the standard read, decode and reconcile pipeline.
func Load(reconcile *ReconcileProcessor) *Pipeline {
	return New(&SourceProcessor{}, &DecodeProcessor{}, reconcile)
}
