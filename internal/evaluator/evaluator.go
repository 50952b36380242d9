// Package evaluator computes statement results: it resolves a statement's
// base value, then folds the value through the statement's call chain.
package evaluator

import (
	"fmt"
	"math"

	"github.com/funvibe/chainlang/internal/analyzer"
	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/config"
	"github.com/funvibe/chainlang/internal/symbols"
	"github.com/funvibe/chainlang/internal/telemetry"
	"github.com/funvibe/chainlang/internal/typesystem"
	"github.com/rs/zerolog"
)

// Evaluator runs statements against a scope. The call depth travels with the
// scope, so one Evaluator may serve concurrent evaluations.
type Evaluator struct {
	Registry     *Registry
	MaxCallDepth int
	Metrics      *telemetry.Metrics
	Logger       zerolog.Logger
}

// New creates an evaluator over the builtin registry.
func New() *Evaluator {
	return &Evaluator{
		Registry:     DefaultRegistry(),
		MaxCallDepth: config.DefaultMaxCallDepth,
		Logger:       zerolog.Nop(),
	}
}

// NewFromConfig creates an evaluator using the engine settings of cfg.
func NewFromConfig(cfg config.EngineConfig, logger zerolog.Logger, metrics *telemetry.Metrics) *Evaluator {
	e := New()
	if cfg.MaxCallDepth > 0 {
		e.MaxCallDepth = cfg.MaxCallDepth
	}
	e.Logger = telemetry.Component(logger, "evaluator")
	e.Metrics = metrics
	return e
}

// Evaluate computes the result of a statement. An error value produced by any
// step is returned as is and the rest of the chain is skipped.
func (e *Evaluator) Evaluate(s *ast.Statement, ctx *symbols.Context) *ast.Data {
	if s == nil {
		return ast.NewUndefined()
	}
	data := e.base(s.Data, ctx)
	if data.IsError() {
		return data
	}
	for _, call := range s.Operations {
		data = e.Apply(ctx, data, call)
		if data.IsError() {
			return data
		}
	}
	return data
}

// EvaluateBody evaluates statements in order, each seeing the names bound by
// the ones before it, and returns the last result.
func (e *Evaluator) EvaluateBody(stmts []*ast.Statement, ctx *symbols.Context) *ast.Data {
	result := ast.NewUndefined()
	for _, s := range stmts {
		result = e.Evaluate(s, ctx)
		if s.Name != "" {
			ctx = ctx.Bind(s.Name, s.ID, result)
		}
	}
	return result
}

// base resolves the value a chain starts from.
func (e *Evaluator) base(d *ast.Data, ctx *symbols.Context) *ast.Data {
	if d == nil {
		return ast.NewUndefined()
	}
	if d.Reference != nil {
		if b, ok := ctx.Resolve(d.Reference); ok && b.Data != nil {
			d = b.Data
		}
	}
	switch v := d.Value.(type) {
	case *ast.Condition:
		return e.condition(v, ctx)
	case *ast.Array, *ast.Object:
		if NeedsEvaluation(d) {
			return e.composite(d, ctx)
		}
	}
	return d
}

func (e *Evaluator) condition(c *ast.Condition, ctx *symbols.Context) *ast.Data {
	test := e.Evaluate(c.Test, ctx)
	if test.IsError() {
		return test
	}
	if Truthy(test) {
		return e.Evaluate(c.True, ctx)
	}
	return e.Evaluate(c.False, ctx)
}

// composite evaluates the element statements of an array or object whose
// elements read from scope or carry calls.
func (e *Evaluator) composite(d *ast.Data, ctx *symbols.Context) *ast.Data {
	eval := func(s *ast.Statement) *ast.Statement {
		return &ast.Statement{ID: s.ID, Name: s.Name, Data: e.Evaluate(s, ctx)}
	}
	var value ast.Value
	switch v := d.Value.(type) {
	case *ast.Array:
		arr := &ast.Array{Elements: make([]*ast.Statement, len(v.Elements))}
		for i, el := range v.Elements {
			arr.Elements[i] = eval(el)
		}
		value = arr
	case *ast.Object:
		obj := &ast.Object{Properties: make([]*ast.Property, len(v.Properties))}
		for i, p := range v.Properties {
			obj.Properties[i] = &ast.Property{Key: p.Key, Value: eval(p.Value)}
		}
		value = obj
	default:
		return d
	}
	inferred := ast.InferType(value)
	t, ok := analyzer.SettleValue(d, inferred, &ast.Data{Type: inferred, Value: value})
	if !ok {
		t = inferred
	}
	return &ast.Data{ID: d.ID, Type: t, Value: value, IsGeneric: d.IsGeneric, IsTypeEditable: d.IsTypeEditable}
}

// NeedsEvaluation reports whether a container holds a nested reference, call
// or condition anywhere below it.
func NeedsEvaluation(d *ast.Data) bool {
	found := false
	ast.Inspect(d, func(n ast.Node) bool {
		if found {
			return false
		}
		switch n := n.(type) {
		case *ast.Statement:
			if len(n.Operations) > 0 {
				found = true
			}
		case *ast.Data:
			if n != d && n.Reference != nil {
				found = true
			}
			if _, ok := n.Value.(*ast.Condition); ok {
				found = true
			}
			// Operation bodies run only when invoked.
			if _, ok := n.Value.(*ast.Operation); ok {
				return false
			}
		}
		return !found
	})
	return found
}

// Truthy reports the truthiness used by conditions and the boolean operations.
func Truthy(d *ast.Data) bool {
	if d == nil {
		return false
	}
	switch v := d.Value.(type) {
	case *ast.BooleanLit:
		return v.Value
	case *ast.NumberLit:
		return v.Value != 0 && !math.IsNaN(v.Value)
	case *ast.StringLit:
		return v.Value != ""
	case *ast.Undefined, *ast.Error, nil:
		return false
	}
	return true
}

// Invoke runs an operation value with positional arguments. Missing arguments
// take the parameter's default value; surplus ones are ignored.
func (e *Evaluator) Invoke(ctx *symbols.Context, fn *ast.Data, args []*ast.Data) *ast.Data {
	op, ok := fn.Value.(*ast.Operation)
	if !ok {
		return newError(typesystem.ErrorKindType, "%s is not an operation", fn.Kind())
	}
	if e.MaxCallDepth > 0 && ctx.Depth() >= e.MaxCallDepth {
		return newError(typesystem.ErrorKindDepth, "maximum call depth %d exceeded", e.MaxCallDepth)
	}

	scope := ctx.Enter()
	for i, p := range op.Parameters {
		var v *ast.Data
		if i < len(args) && args[i] != nil {
			v = args[i]
		} else {
			v = p.Result()
		}
		if p.Name != "" {
			scope = scope.Bind(p.Name, p.ID, v)
		}
	}
	return e.EvaluateBody(op.Statements, scope)
}

func newError(kind, format string, a ...interface{}) *ast.Data {
	return ast.NewError(kind, fmt.Sprintf(format, a...))
}
