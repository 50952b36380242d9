package analyzer

import (
	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/typesystem"
)

// IncompatibleArguments returns the indexes of argument statements whose
// current result does not fit the parameter spec at the same position. specs
// exclude the subject.
func IncompatibleArguments(specs []typesystem.Param, args []*ast.Statement) []int {
	var bad []int
	for i, arg := range args {
		if i >= len(specs) {
			break
		}
		spec := specs[i]
		if spec.Type == nil || spec.Type.Kind() == typesystem.KindUnknown {
			continue
		}
		res := arg.Result()
		if res == nil || res.IsError() {
			continue
		}
		// An editable spec only pins the kind (callbacks of any arity).
		if spec.IsTypeEditable {
			if res.Kind() != spec.Type.Kind() {
				bad = append(bad, i)
			}
			continue
		}
		if !typesystem.IsCompatible(res.Type, spec.Type) {
			bad = append(bad, i)
		}
	}
	return bad
}

// NeedsReset reports whether a call site's arguments no longer match the
// parameter list: the arity changed or some argument stopped fitting its type.
func NeedsReset(specs []typesystem.Param, args []*ast.Statement) bool {
	if len(specs) != len(args) {
		return true
	}
	return len(IncompatibleArguments(specs, args)) > 0
}

// DefaultArguments builds fresh argument statements for a parameter list.
func DefaultArguments(specs []typesystem.Param) []*ast.Statement {
	out := make([]*ast.Statement, 0, len(specs))
	for _, spec := range specs {
		d := ast.DefaultData(spec.Type)
		d.IsTypeEditable = spec.IsTypeEditable
		out = append(out, ast.NewStatement("", d))
	}
	return out
}

// Signature builds the call-site operation type for a parameter list.
func Signature(specs []typesystem.Param, result typesystem.Type) typesystem.TOperation {
	params := make([]typesystem.Param, len(specs))
	copy(params, specs)
	return typesystem.TOperation{Params: params, Result: result}
}
