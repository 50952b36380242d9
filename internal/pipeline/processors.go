package pipeline

import (
	"fmt"
	"os"

	"github.com/funvibe/chainlang/internal/document"
	"github.com/funvibe/chainlang/internal/propagation"
)

// SourceProcessor reads FilePath unless Source is already set.
type SourceProcessor struct{}

func (sp *SourceProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Source != nil || ctx.Document != nil {
		return ctx
	}
	data, err := os.ReadFile(ctx.FilePath)
	if err != nil {
		ctx.Errors = append(ctx.Errors, fmt.Errorf("failed to read document: %w", err))
		return ctx
	}
	ctx.Source = data
	return ctx
}

// DecodeProcessor parses Source into Document.
type DecodeProcessor struct{}

func (dp *DecodeProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Document != nil || len(ctx.Errors) > 0 {
		return ctx
	}
	doc, err := document.Unmarshal(ctx.Source, ctx.Format)
	if err != nil {
		ctx.Errors = append(ctx.Errors, fmt.Errorf("%s: %w", ctx.FilePath, err))
		return ctx
	}
	ctx.Document = doc
	return ctx
}

// ReconcileProcessor runs a full propagation pass over the document.
type ReconcileProcessor struct {
	Engine *propagation.Engine
}

func (rp *ReconcileProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Document == nil || len(ctx.Errors) > 0 {
		return ctx
	}
	ctx.Result, ctx.Stats = rp.Engine.Reconcile(ctx.Document.Operations, ctx.Scope)
	ctx.Document = &document.Document{Name: ctx.Document.Name, Operations: ctx.Result}
	return ctx
}
