// Package propagation keeps a statement list consistent after an edit. A pass
// walks the statements left to right with a scope built from the results of
// the statements already reconciled, so every reference can only see earlier
// statements.
package propagation

import (
	"errors"
	"fmt"
	"time"

	"github.com/funvibe/chainlang/internal/analyzer"
	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/evaluator"
	"github.com/funvibe/chainlang/internal/symbols"
	"github.com/funvibe/chainlang/internal/telemetry"
	"github.com/rs/zerolog"
)

// ErrIndexOutOfRange is returned for a change addressing no statement.
var ErrIndexOutOfRange = errors.New("statement index out of range")

// Stats summarizes one pass.
type Stats = telemetry.PassStats

// Change describes one top-level edit. Statement replaces the statement at
// Index, or is inserted before it when Insert is set. Remove drops the
// statement at Index.
type Change struct {
	Index     int
	Statement *ast.Statement
	Remove    bool
	Insert    bool
}

// Engine runs propagation passes.
type Engine struct {
	Evaluator *evaluator.Evaluator
	Logger    zerolog.Logger
	Metrics   *telemetry.Metrics
}

// New creates an engine around ev.
func New(ev *evaluator.Evaluator, logger zerolog.Logger, metrics *telemetry.Metrics) *Engine {
	return &Engine{
		Evaluator: ev,
		Logger:    telemetry.Component(logger, "propagation"),
		Metrics:   metrics,
	}
}

// Apply splices change into stmts and reconciles every statement from the
// change onward. Statements before it are carried over untouched. The input
// slice is never modified.
func (en *Engine) Apply(stmts []*ast.Statement, change Change, ctx *symbols.Context) ([]*ast.Statement, Stats, error) {
	i := change.Index
	limit := len(stmts)
	if change.Insert {
		limit++
	}
	if i < 0 || i >= limit {
		return nil, Stats{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(stmts))
	}
	if !change.Remove && change.Statement == nil {
		return nil, Stats{}, errors.New("change carries no statement")
	}

	next := make([]*ast.Statement, 0, len(stmts)+1)
	next = append(next, stmts[:i]...)
	switch {
	case change.Remove:
		next = append(next, stmts[i+1:]...)
	case change.Insert:
		next = append(next, change.Statement)
		next = append(next, stmts[i:]...)
	default:
		next = append(next, change.Statement)
		next = append(next, stmts[i+1:]...)
	}
	out, stats := en.run(next, i, ctx)
	return out, stats, nil
}

// Reconcile runs a full pass over stmts, as after loading a document.
func (en *Engine) Reconcile(stmts []*ast.Statement, ctx *symbols.Context) ([]*ast.Statement, Stats) {
	next := make([]*ast.Statement, len(stmts))
	copy(next, stmts)
	return en.run(next, 0, ctx)
}

func (en *Engine) run(stmts []*ast.Statement, from int, ctx *symbols.Context) ([]*ast.Statement, Stats) {
	start := time.Now()
	p := &pass{ev: en.Evaluator}
	scope := ctx
	for i, s := range stmts {
		if i >= from {
			stmts[i] = p.reconcile(s, scope)
		}
		if r := stmts[i].Result(); r.IsError() && i >= from {
			p.stats.Errors++
		}
		scope = scope.BindStatement(stmts[i])
	}
	p.stats.Duration = time.Since(start)

	en.Metrics.ObservePass(p.stats)
	en.Logger.Debug().
		Int("from", from).
		Int("reconciled", p.stats.Reconciled).
		Int("reused", p.stats.Reused).
		Int("detached", p.stats.Detached).
		Int("resets", p.stats.ArgumentResets).
		Dur("took", p.stats.Duration).
		Msg("propagation pass")
	return stmts, p.stats
}

// pass carries the counters of one propagation run.
type pass struct {
	ev    *evaluator.Evaluator
	stats Stats
}

// reconcile rebuilds s against scope. When nothing changed, the original
// statement is returned so its identity is kept.
func (p *pass) reconcile(s *ast.Statement, scope *symbols.Context) *ast.Statement {
	if s == nil {
		return nil
	}
	next := p.statement(s, scope)
	if ast.SameStatement(s, next) {
		p.stats.Reused++
		return s
	}
	p.stats.Reconciled++
	return next
}

func (p *pass) statement(s *ast.Statement, scope *symbols.Context) *ast.Statement {
	data := p.data(s.Data, scope)
	next := &ast.Statement{ID: s.ID, Name: s.Name, Data: data}

	// The base value of the chain: a condition's branch or an evaluated container.
	cur := p.ev.Evaluate(&ast.Statement{ID: s.ID, Data: data}, scope)
	if c, ok := data.Value.(*ast.Condition); ok && data.Reference == nil {
		c.Cached = cur
	}
	for _, call := range s.Operations {
		nc := p.call(call, cur, scope)
		next.Operations = append(next.Operations, nc)
		cur = nc.Result
	}
	return next
}

// call re-runs one link of a chain on subject.
func (p *pass) call(c *ast.Call, subject *ast.Data, scope *symbols.Context) *ast.Call {
	next := &ast.Call{ID: c.ID, Name: c.Name, Type: c.Type}
	var (
		op *evaluator.Operation
		ok bool
	)
	if !subject.IsError() {
		op, ok = p.ev.Registry.Lookup(subject, c.Name, scope)
	}
	params := make([]*ast.Statement, len(c.Parameters))
	for i, param := range c.Parameters {
		if ok && op.ShortCircuit != nil && op.ShortCircuit(subject, i) != "" {
			// Never evaluated: carried through as is.
			params[i] = param
			continue
		}
		params[i] = p.reconcile(param, scope)
	}
	next.Parameters = params

	if subject.IsError() {
		next.Result = subject
		return next
	}
	if !ok {
		next.Result = p.ev.Apply(scope, subject, c)
		return next
	}
	specs := op.Arguments(subject)
	if analyzer.NeedsReset(specs, params) {
		p.stats.ArgumentResets++
		next.Parameters = analyzer.DefaultArguments(specs)
	}
	next.Result = p.ev.Dispatch(scope, op, subject, next.Parameters)
	next.Type = analyzer.Signature(op.Specs(subject), next.Result.Type)
	return next
}

// data reconciles a base value: references are copied through or detached,
// and nested statements are reconciled recursively.
func (p *pass) data(d *ast.Data, scope *symbols.Context) *ast.Data {
	if d == nil {
		return ast.NewUndefined()
	}
	if d.Reference != nil {
		return p.reference(d, scope)
	}
	switch v := d.Value.(type) {
	case *ast.Operation:
		op := p.operation(v, scope)
		return &ast.Data{ID: d.ID, Type: ast.InferType(op), Value: op, IsGeneric: d.IsGeneric, IsTypeEditable: d.IsTypeEditable}
	case *ast.Array:
		arr := &ast.Array{Elements: p.each(v.Elements, scope)}
		return p.settle(d, arr)
	case *ast.Object:
		obj := &ast.Object{Properties: make([]*ast.Property, len(v.Properties))}
		for i, prop := range v.Properties {
			obj.Properties[i] = &ast.Property{Key: prop.Key, Value: p.reconcile(prop.Value, scope)}
		}
		return p.settle(d, obj)
	case *ast.Condition:
		// Only the branch the test selects is reconciled; a failed test
		// selects neither.
		c := &ast.Condition{Test: p.reconcile(v.Test, scope), True: v.True, False: v.False}
		if test := c.Test.Result(); test != nil && !test.IsError() {
			if evaluator.Truthy(test) {
				c.True = p.reconcile(v.True, scope)
			} else {
				c.False = p.reconcile(v.False, scope)
			}
		}
		return &ast.Data{ID: d.ID, Type: ast.InferType(c), Value: c, IsGeneric: d.IsGeneric, IsTypeEditable: d.IsTypeEditable}
	}
	return d
}

func (p *pass) each(stmts []*ast.Statement, scope *symbols.Context) []*ast.Statement {
	out := make([]*ast.Statement, len(stmts))
	for i, s := range stmts {
		out[i] = p.reconcile(s, scope)
	}
	return out
}

// settle wraps a rebuilt container, keeping its declared type while the new
// elements still fit it.
func (p *pass) settle(d *ast.Data, v ast.Value) *ast.Data {
	inferred := ast.InferType(v)
	t, ok := analyzer.SettleValue(d, inferred, &ast.Data{Type: inferred, Value: v})
	switch {
	case len(ast.Children(v)) == 0 && d.Type != nil:
		// An empty container keeps whatever element type it was declared with.
		t = d.Type
	case !ok:
		t = inferred
	}
	return &ast.Data{ID: d.ID, Type: t, Value: v, IsGeneric: d.IsGeneric, IsTypeEditable: d.IsTypeEditable}
}

// operation reconciles an operation literal: parameters first, then the body
// with each parameter and named body statement in scope.
func (p *pass) operation(op *ast.Operation, scope *symbols.Context) *ast.Operation {
	next := &ast.Operation{
		Parameters: make([]*ast.Statement, len(op.Parameters)),
		Statements: make([]*ast.Statement, len(op.Statements)),
	}
	inner := scope
	for i, param := range op.Parameters {
		next.Parameters[i] = p.reconcile(param, scope)
		inner = inner.BindStatement(next.Parameters[i])
	}
	for i, s := range op.Statements {
		next.Statements[i] = p.reconcile(s, inner)
		inner = inner.BindStatement(next.Statements[i])
	}
	return next
}

// reference copies the source value through when it still resolves to a
// compatible value and detaches to the declared default otherwise.
func (p *pass) reference(d *ast.Data, scope *symbols.Context) *ast.Data {
	declared := d.Reference.Type
	if declared == nil {
		declared = d.Type
	}
	b, ok := scope.Resolve(d.Reference)
	if ok && b.Data != nil {
		src := b.Data
		if src.IsError() {
			// The source failed; keep the link so it recovers with its source.
			return &ast.Data{ID: d.ID, Type: src.Type, Value: src.Value, IsGeneric: d.IsGeneric, IsTypeEditable: d.IsTypeEditable, Reference: d.Reference}
		}
		declaredAs := &ast.Data{Type: declared, IsGeneric: d.IsGeneric, IsTypeEditable: d.IsTypeEditable}
		if t, fits := analyzer.SettleValue(declaredAs, src.Type, src); fits {
			return &ast.Data{ID: d.ID, Type: t, Value: src.Value, IsGeneric: d.IsGeneric, IsTypeEditable: d.IsTypeEditable, Reference: d.Reference}
		}
	}
	p.stats.Detached++
	def := ast.DefaultData(declared)
	return &ast.Data{ID: d.ID, Type: def.Type, Value: def.Value, IsGeneric: d.IsGeneric || def.IsGeneric, IsTypeEditable: d.IsTypeEditable}
}
