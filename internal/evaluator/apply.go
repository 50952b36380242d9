package evaluator

import (
	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/symbols"
	"github.com/funvibe/chainlang/internal/typesystem"
)

// Apply runs one call of a chain on subject. A call naming an operation that
// is not applicable keeps its cached result, if any.
func (e *Evaluator) Apply(ctx *symbols.Context, subject *ast.Data, call *ast.Call) *ast.Data {
	if subject.IsError() {
		return subject
	}
	op, ok := e.Registry.Lookup(subject, call.Name, ctx)
	if !ok {
		if call.Result != nil {
			return call.Result
		}
		return e.fail(newError(typesystem.ErrorKindNotFound, "operation %q is not available for %s", call.Name, subject.Type))
	}
	return e.Dispatch(ctx, op, subject, call.Parameters)
}

// Dispatch runs op with the given argument statements. Arguments beyond the
// operation's parameter list are ignored and missing ones take defaults. A
// panic inside the handler becomes a runtime error value.
func (e *Evaluator) Dispatch(ctx *symbols.Context, op *Operation, subject *ast.Data, params []*ast.Statement) (result *ast.Data) {
	defer func() {
		if r := recover(); r != nil {
			e.Metrics.ObserveRecoveredFault()
			e.Logger.Warn().Str("operation", op.Name).Interface("panic", r).Msg("recovered fault in operation")
			result = e.fail(newError(typesystem.ErrorKindRuntime, "%s: %v", op.Name, r))
		}
	}()

	specs := op.Arguments(subject)
	switch h := op.Handler.(type) {
	case Eager:
		args := make([]*ast.Data, len(specs))
		for i, spec := range specs {
			if i >= len(params) {
				args[i] = ast.DefaultData(spec.Type)
				continue
			}
			arg := e.Evaluate(params[i], ctx)
			if arg.IsError() {
				return arg
			}
			args[i] = arg
		}
		result = h(e, ctx, subject, args...)
	case Lazy:
		stmts := make([]*ast.Statement, len(specs))
		for i, spec := range specs {
			if i < len(params) {
				stmts[i] = params[i]
			} else {
				stmts[i] = ast.NewStatement("", ast.DefaultData(spec.Type))
			}
		}
		result = h(e, ctx, subject, stmts...)
	default:
		result = newError(typesystem.ErrorKindRuntime, "operation %q has no handler", op.Name)
	}
	if result == nil {
		return ast.NewUndefined()
	}
	if result.IsError() {
		return e.fail(result)
	}
	return result
}

// fail records an error value before handing it back.
func (e *Evaluator) fail(d *ast.Data) *ast.Data {
	if te, ok := d.Type.(typesystem.TError); ok {
		e.Metrics.ObserveErrorValue(te.ErrorKind)
	}
	return d
}
