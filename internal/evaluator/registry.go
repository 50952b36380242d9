package evaluator

import (
	"fmt"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/symbols"
	"github.com/funvibe/chainlang/internal/typesystem"
)

// Params is the parameter list of an operation. The first spec is always the
// subject the operation is chained onto.
type Params interface {
	Specs(subject *ast.Data) []typesystem.Param
}

// FixedParams is a parameter list that does not depend on the subject.
type FixedParams []typesystem.Param

func (p FixedParams) Specs(*ast.Data) []typesystem.Param { return p }

// ComputedParams derives the parameter list from the subject, e.g. a callback
// typed after an array's element type.
type ComputedParams func(subject *ast.Data) []typesystem.Param

func (p ComputedParams) Specs(subject *ast.Data) []typesystem.Param { return p(subject) }

// Handler computes an operation's result. It is either Eager or Lazy.
type Handler interface {
	handler()
}

// Eager receives its arguments already evaluated.
type Eager func(e *Evaluator, ctx *symbols.Context, subject *ast.Data, args ...*ast.Data) *ast.Data

// Lazy receives the unevaluated argument statements and evaluates only what
// it needs.
type Lazy func(e *Evaluator, ctx *symbols.Context, subject *ast.Data, params ...*ast.Statement) *ast.Data

func (Eager) handler() {}
func (Lazy) handler()  {}

// Operation is a named computation applicable to a family of subjects.
type Operation struct {
	Name    string
	Params  Params
	Handler Handler
	// ShortCircuit reports why argument index would not be evaluated for the
	// given subject, or "" when it would be. Only lazy operations set it.
	ShortCircuit func(subject *ast.Data, index int) string
}

// Specs returns the parameter specs for subject, subject first.
func (op *Operation) Specs(subject *ast.Data) []typesystem.Param {
	if op == nil || op.Params == nil {
		return nil
	}
	return op.Params.Specs(subject)
}

// Arguments returns the specs of the explicit arguments, subject excluded.
func (op *Operation) Arguments(subject *ast.Data) []typesystem.Param {
	specs := op.Specs(subject)
	if len(specs) == 0 {
		return nil
	}
	return specs[1:]
}

// Registry holds the builtin operations grouped by the kind of their subject.
// Names are unique within one group.
type Registry struct {
	order  []*Operation
	byKind map[typesystem.Kind]map[string]*Operation
}

// NewRegistry creates a registry holding ops.
func NewRegistry(ops ...*Operation) (*Registry, error) {
	r := &Registry{byKind: make(map[typesystem.Kind]map[string]*Operation)}
	for _, op := range ops {
		if err := r.Register(op); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry creates a registry with every builtin operation.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(builtinOperations()...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds op. The subject kind is taken from the first spec computed
// for an undefined subject.
func (r *Registry) Register(op *Operation) error {
	specs := op.Specs(ast.NewUndefined())
	if len(specs) == 0 {
		return fmt.Errorf("operation %q declares no subject", op.Name)
	}
	kind := specs[0].Type.Kind()
	group, ok := r.byKind[kind]
	if !ok {
		group = make(map[string]*Operation)
		r.byKind[kind] = group
	}
	if _, dup := group[op.Name]; dup {
		return fmt.Errorf("operation %q already registered for %s", op.Name, kind)
	}
	group[op.Name] = op
	r.order = append(r.order, op)
	return nil
}

// Builtins returns every registered operation in registration order.
func (r *Registry) Builtins() []*Operation {
	out := make([]*Operation, len(r.order))
	copy(out, r.order)
	return out
}

// SupportsOperation reports whether op may be chained onto data: the first
// parameter's kind equals the data's kind, is unknown, or every member of a
// union subject has that kind.
func SupportsOperation(data *ast.Data, op *Operation) bool {
	specs := op.Specs(data)
	if len(specs) == 0 || specs[0].Type == nil {
		return false
	}
	return supportsKind(data, specs[0].Type.Kind())
}

func supportsKind(data *ast.Data, kind typesystem.Kind) bool {
	if kind == typesystem.KindUnknown {
		return true
	}
	if data.Kind() == kind {
		return true
	}
	if u, ok := data.Type.(typesystem.TUnion); ok {
		for _, m := range u.Types {
			if m.Kind() != kind {
				return false
			}
		}
		return len(u.Types) > 0
	}
	return false
}

// Filtered lists the operations applicable to data: builtins first, then the
// operation values bound in ctx, in declaration order.
func (r *Registry) Filtered(data *ast.Data, ctx *symbols.Context) []*Operation {
	var out []*Operation
	for _, op := range r.order {
		if SupportsOperation(data, op) {
			out = append(out, op)
		}
	}
	for _, b := range ctx.Bindings() {
		op := UserOperation(b)
		if op != nil && SupportsOperation(data, op) {
			out = append(out, op)
		}
	}
	return out
}

// Lookup finds the first applicable operation named name.
func (r *Registry) Lookup(data *ast.Data, name string, ctx *symbols.Context) (*Operation, bool) {
	for _, op := range r.Filtered(data, ctx) {
		if op.Name == name {
			return op, true
		}
	}
	return nil, false
}

// UserOperation wraps an operation value bound in scope as a registry entry.
// It returns nil when the binding does not hold an operation with at least
// one parameter.
func UserOperation(b symbols.Binding) *Operation {
	if b.Data == nil || b.Name == "" {
		return nil
	}
	if _, ok := b.Data.Value.(*ast.Operation); !ok {
		return nil
	}
	sig, ok := b.Data.Type.(typesystem.TOperation)
	if !ok || len(sig.Params) == 0 {
		return nil
	}
	fn := b.Data
	return &Operation{
		Name:   b.Name,
		Params: FixedParams(sig.Params),
		Handler: Eager(func(e *Evaluator, ctx *symbols.Context, subject *ast.Data, args ...*ast.Data) *ast.Data {
			return e.Invoke(ctx, fn, append([]*ast.Data{subject}, args...))
		}),
	}
}
