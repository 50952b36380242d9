package pipeline

import (
	"errors"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/document"
	"github.com/funvibe/chainlang/internal/symbols"
	"github.com/funvibe/chainlang/internal/telemetry"
)

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries the state passed between stages.
type PipelineContext struct {
	FilePath string
	Source   []byte
	Format   document.Format

	Document *document.Document
	Scope    *symbols.Context // outer bindings visible to the document, may be nil
	Result   []*ast.Statement
	Stats    telemetry.PassStats

	Errors []error
}

// NewContext starts a pipeline for the file at path.
func NewContext(path string) *PipelineContext {
	return &PipelineContext{FilePath: path, Format: document.FormatOf(path)}
}

// NewSourceContext starts a pipeline for in-memory source.
func NewSourceContext(source []byte, format document.Format) *PipelineContext {
	return &PipelineContext{FilePath: "<stdin>", Source: source, Format: format}
}

// Err joins every stage error, or returns nil.
func (c *PipelineContext) Err() error {
	return errors.Join(c.Errors...)
}
