// Package analyzer derives and checks types over a reconciled statement tree.
// It never evaluates anything; every nested statement contributes the result
// cached on it by the last reconciliation pass.
package analyzer

import (
	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/symbols"
	"github.com/funvibe/chainlang/internal/typesystem"
)

// InferType derives the type of a value node. A reference that still resolves
// in ctx takes the type of its source.
func InferType(d *ast.Data, ctx *symbols.Context) typesystem.Type {
	if d == nil {
		return typesystem.Undefined
	}
	if d.Reference != nil {
		if b, ok := ctx.Resolve(d.Reference); ok && b.Data != nil && b.Data != d {
			return InferType(b.Data, ctx)
		}
	}
	if _, ok := d.Value.(*ast.Error); ok {
		if te, ok := d.Type.(typesystem.TError); ok {
			return te
		}
	}
	return ast.InferType(d.Value)
}

// SettleType decides the type a value node keeps after its payload changed.
// A pinned declared type survives when the new payload is compatible with it;
// an editable or generic one follows the payload. ok is false when the payload
// no longer fits a pinned declaration.
func SettleType(d *ast.Data, inferred typesystem.Type) (t typesystem.Type, ok bool) {
	declared := d.Type
	if declared == nil || d.IsGeneric || d.IsTypeEditable {
		return inferred, true
	}
	if typesystem.IsCompatible(inferred, declared) {
		return declared, true
	}
	return declared, false
}

// SettleValue is SettleType for a payload whose inferred type may be wider
// than what it holds. A pinned declaration must also fit the concrete type of
// actual, so a union-typed source holding a string never settles into a
// number.
func SettleValue(d *ast.Data, inferred typesystem.Type, actual *ast.Data) (t typesystem.Type, ok bool) {
	t, ok = SettleType(d, inferred)
	if !ok || d.Type == nil || d.IsGeneric || d.IsTypeEditable {
		return t, ok
	}
	return t, typesystem.IsCompatible(ast.Concrete(actual), d.Type)
}
