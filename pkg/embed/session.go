// Package chainlang embeds the engine behind a Session that owns one document.
package chainlang

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/config"
	"github.com/funvibe/chainlang/internal/document"
	"github.com/funvibe/chainlang/internal/editor"
	"github.com/funvibe/chainlang/internal/evaluator"
	"github.com/funvibe/chainlang/internal/pipeline"
	"github.com/funvibe/chainlang/internal/propagation"
	"github.com/funvibe/chainlang/internal/symbols"
	"github.com/funvibe/chainlang/internal/telemetry"
	"github.com/funvibe/chainlang/internal/typesystem"
	"github.com/rs/zerolog"
)

// Session is the single owner of a document tree. Edits are serialized and
// each one publishes a complete new tree; readers always see either the tree
// before an edit or the tree after it.
type Session struct {
	editor     *editor.Editor
	marshaller *Marshaller
	logger     zerolog.Logger

	writeMu sync.Mutex // serializes edits

	mu      sync.RWMutex // guards the published tree
	name    string
	stmts   []*ast.Statement
	version uint64
}

// New creates a session with default engine settings and an empty document.
func New() *Session {
	return newSession(evaluator.New(), zerolog.Nop(), nil)
}

// NewFromConfig creates a session from a loaded configuration.
func NewFromConfig(cfg *config.Config, logger zerolog.Logger, metrics *telemetry.Metrics) *Session {
	return newSession(evaluator.NewFromConfig(cfg.Engine, logger, metrics), logger, metrics)
}

func newSession(ev *evaluator.Evaluator, logger zerolog.Logger, metrics *telemetry.Metrics) *Session {
	return &Session{
		editor:     editor.New(propagation.New(ev, logger, metrics)),
		marshaller: NewMarshaller(),
		logger:     telemetry.Component(logger, "session"),
	}
}

// Open replaces the session's document with doc after a full reconciliation.
func (s *Session) Open(doc *document.Document) propagation.Stats {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	stmts, stats := s.editor.Engine.Reconcile(doc.Operations, nil)
	s.publish(doc.Name, stmts)
	s.logger.Debug().Str("document", doc.Name).Int("statements", len(stmts)).Msg("document opened")
	return stats
}

// OpenFile loads, decodes and reconciles a document file.
func (s *Session) OpenFile(path string) (propagation.Stats, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	ctx := pipeline.Load(&pipeline.ReconcileProcessor{Engine: s.editor.Engine}).Run(pipeline.NewContext(path))
	if err := ctx.Err(); err != nil {
		return propagation.Stats{}, err
	}
	s.publish(ctx.Document.Name, ctx.Result)
	return ctx.Stats, nil
}

// Apply performs one edit. On error the published tree is unchanged.
func (s *Session) Apply(edit editor.Edit) (propagation.Stats, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	name, current := s.name, s.stmts
	s.mu.RUnlock()

	next, stats, err := s.editor.Apply(current, edit, nil)
	if err != nil {
		s.logger.Debug().Err(err).Str("target", edit.Target()).Msg("edit rejected")
		return stats, err
	}
	s.publish(name, next)
	return stats, nil
}

// Set replaces the base value of the statement or value node id with a Go
// value converted by the session's Marshaller.
func (s *Session) Set(id string, val interface{}) (propagation.Stats, error) {
	d, err := s.marshaller.ToValue(val)
	if err != nil {
		return propagation.Stats{}, fmt.Errorf("set %s: %w", id, err)
	}
	return s.Apply(editor.SetData{ID: id, Data: d})
}

func (s *Session) publish(name string, stmts []*ast.Statement) {
	s.mu.Lock()
	s.name, s.stmts = name, stmts
	s.version++
	s.mu.Unlock()
}

// Snapshot returns the current document. The returned tree is shared and must
// not be modified.
func (s *Session) Snapshot() *document.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &document.Document{Name: s.name, Operations: s.stmts}
}

// Version counts published trees.
func (s *Session) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Result returns the cached result of the node id: a statement's chain
// result, a call's result, or a value node itself.
func (s *Session) Result(id string) (*ast.Data, bool) {
	s.mu.RLock()
	stmts := s.stmts
	s.mu.RUnlock()

	n, ok := ast.Find(stmts, id)
	if !ok {
		return nil, false
	}
	switch v := n.(type) {
	case *ast.Statement:
		return v.Result(), true
	case *ast.Call:
		return v.Result, v.Result != nil
	case *ast.Data:
		return v, true
	}
	return nil, false
}

// Type returns the type of the node id. For a call it is the call's signature.
func (s *Session) Type(id string) (typesystem.Type, bool) {
	s.mu.RLock()
	stmts := s.stmts
	s.mu.RUnlock()

	n, ok := ast.Find(stmts, id)
	if !ok {
		return nil, false
	}
	switch v := n.(type) {
	case *ast.Statement:
		if r := v.Result(); r != nil {
			return r.Type, true
		}
	case *ast.Call:
		return v.Type, v.Type != nil
	case *ast.Data:
		return v.Type, true
	}
	return nil, false
}

// Value returns the Go form of the result of node id. targetType may be nil.
func (s *Session) Value(id string, targetType reflect.Type) (interface{}, error) {
	d, ok := s.Result(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", editor.ErrNodeNotFound, id)
	}
	return s.marshaller.FromValue(d, targetType)
}

// Skip explains why part of the tree is not evaluated. id names either a call
// (paramIndex selects an argument, -1 the call itself) or a condition value
// (paramIndex is evaluator.TrueBranch or evaluator.FalseBranch). An empty
// string means the part is evaluated normally.
func (s *Session) Skip(id string, paramIndex int) string {
	s.mu.RLock()
	stmts := s.stmts
	s.mu.RUnlock()

	ev := s.editor.Engine.Evaluator
	for i, top := range stmts {
		scope := scopeBefore(stmts, i)
		var reason string
		found := false
		ast.Inspect(top, func(n ast.Node) bool {
			if found {
				return false
			}
			switch v := n.(type) {
			case *ast.Statement:
				for j, c := range v.Operations {
					if c.ID == id {
						reason = ev.SkipExecution(scope, subjectOf(v, j), c, paramIndex)
						found = true
					}
				}
			case *ast.Data:
				if v.ID == id {
					reason = ev.SkipExecution(scope, v, nil, paramIndex)
					found = true
				}
			}
			return !found
		})
		if found {
			return reason
		}
	}
	return ""
}

// scopeBefore binds the named top-level statements preceding index i.
func scopeBefore(stmts []*ast.Statement, i int) *symbols.Context {
	scope := symbols.NewContext()
	for _, s := range stmts[:i] {
		scope = scope.BindStatement(s)
	}
	return scope
}

// subjectOf returns the value call j of s is applied to.
func subjectOf(s *ast.Statement, j int) *ast.Data {
	if j > 0 {
		return s.Operations[j-1].Result
	}
	if c, ok := s.Data.Value.(*ast.Condition); ok && c.Cached != nil {
		return c.Cached
	}
	return s.Data
}
