package evaluator

import (
	"math"
	"strings"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/config"
	"github.com/funvibe/chainlang/internal/symbols"
	"github.com/funvibe/chainlang/internal/typesystem"
)

func arraySubject(s *ast.Data) typesystem.Param {
	return subject(typesystem.TArray{Elem: elemType(s)})
}

// callback is the spec of a per-element operation argument. Only its kind is
// pinned, so operations declaring just the item parameter fit as well.
func callback(s *ast.Data, result typesystem.Type) typesystem.Param {
	return typesystem.Param{
		Name: "callback",
		Type: typesystem.TOperation{
			Params: []typesystem.Param{param("item", elemType(s)), param("index", typesystem.Number)},
			Result: result,
		},
		IsTypeEditable: true,
	}
}

// arrayOp builds an array operation with a subject-dependent parameter list.
func arrayOp(name string, params func(s *ast.Data) []typesystem.Param, fn func(e *Evaluator, ctx *symbols.Context, s *ast.Data, arr *ast.Array, args []*ast.Data) *ast.Data) *Operation {
	return &Operation{
		Name: name,
		Params: ComputedParams(func(s *ast.Data) []typesystem.Param {
			return append([]typesystem.Param{arraySubject(s)}, params(s)...)
		}),
		Handler: Eager(func(e *Evaluator, ctx *symbols.Context, s *ast.Data, args ...*ast.Data) *ast.Data {
			arr, ok := arrayArg(s)
			if !ok {
				return typeMismatch(typesystem.KindArray, s)
			}
			return fn(e, ctx, s, arr, args)
		}),
	}
}

// eachElement invokes fn on every element with its index and hands each
// result to visit. It stops at the first error value or when visit returns
// false.
func eachElement(e *Evaluator, ctx *symbols.Context, fn *ast.Data, arr *ast.Array, visit func(i int, el, r *ast.Data) bool) *ast.Data {
	if _, ok := fn.Value.(*ast.Operation); !ok {
		return typeMismatch(typesystem.KindOperation, fn)
	}
	for i, st := range arr.Elements {
		el := element(st)
		r := e.Invoke(ctx, fn, []*ast.Data{el, ast.NewNumber(float64(i))})
		if r.IsError() {
			return r
		}
		if !visit(i, el, r) {
			break
		}
	}
	return nil
}

func arrayBuiltins() []*Operation {
	none := func(*ast.Data) []typesystem.Param { return nil }
	return []*Operation{
		arrayOp(config.MapOpName, func(s *ast.Data) []typesystem.Param {
			return []typesystem.Param{callback(s, typesystem.Unknown)}
		}, func(e *Evaluator, ctx *symbols.Context, _ *ast.Data, arr *ast.Array, args []*ast.Data) *ast.Data {
			out := make([]*ast.Statement, 0, len(arr.Elements))
			if err := eachElement(e, ctx, args[0], arr, func(_ int, _, r *ast.Data) bool {
				out = append(out, wrap(r))
				return true
			}); err != nil {
				return err
			}
			var fallback typesystem.Type = typesystem.Undefined
			if sig, ok := args[0].Type.(typesystem.TOperation); ok && sig.Result != nil {
				fallback = sig.Result
			}
			return ast.NewArray(fallback, out...)
		}),
		arrayOp(config.FilterOpName, func(s *ast.Data) []typesystem.Param {
			return []typesystem.Param{callback(s, typesystem.Boolean)}
		}, func(e *Evaluator, ctx *symbols.Context, s *ast.Data, arr *ast.Array, args []*ast.Data) *ast.Data {
			kept := []*ast.Statement{}
			if err := eachElement(e, ctx, args[0], arr, func(_ int, el, r *ast.Data) bool {
				if Truthy(r) {
					kept = append(kept, wrap(el))
				}
				return true
			}); err != nil {
				return err
			}
			return &ast.Data{ID: ast.NewID(), Type: s.Type, Value: &ast.Array{Elements: kept}}
		}),
		arrayOp(config.FindOpName, func(s *ast.Data) []typesystem.Param {
			return []typesystem.Param{callback(s, typesystem.Boolean)}
		}, func(e *Evaluator, ctx *symbols.Context, _ *ast.Data, arr *ast.Array, args []*ast.Data) *ast.Data {
			var found *ast.Data
			if err := eachElement(e, ctx, args[0], arr, func(_ int, el, r *ast.Data) bool {
				if Truthy(r) {
					found = el
					return false
				}
				return true
			}); err != nil {
				return err
			}
			if found == nil {
				return ast.NewUndefined()
			}
			return found
		}),
		arrayOp(config.LengthOpName, none, func(_ *Evaluator, _ *symbols.Context, _ *ast.Data, arr *ast.Array, _ []*ast.Data) *ast.Data {
			return ast.NewNumber(float64(len(arr.Elements)))
		}),
		arrayOp(config.AtOpName, func(*ast.Data) []typesystem.Param {
			return []typesystem.Param{param("index", typesystem.Number)}
		}, func(_ *Evaluator, _ *symbols.Context, _ *ast.Data, arr *ast.Array, args []*ast.Data) *ast.Data {
			f, ok := numberArg(args[0])
			if !ok {
				return typeMismatch(typesystem.KindNumber, args[0])
			}
			if f != math.Trunc(f) || f < 0 || int(f) >= len(arr.Elements) {
				return newError(typesystem.ErrorKindRuntime, "index %s out of range [0, %d)", ast.FormatNumber(f), len(arr.Elements))
			}
			return element(arr.Elements[int(f)])
		}),
		arrayOp(config.JoinOpName, func(*ast.Data) []typesystem.Param {
			return []typesystem.Param{param("separator", typesystem.String)}
		}, func(_ *Evaluator, _ *symbols.Context, _ *ast.Data, arr *ast.Array, args []*ast.Data) *ast.Data {
			sep, ok := stringArg(args[0])
			if !ok {
				return typeMismatch(typesystem.KindString, args[0])
			}
			parts := make([]string, len(arr.Elements))
			for i, el := range arr.Elements {
				parts[i] = Display(element(el))
			}
			return ast.NewString(strings.Join(parts, sep))
		}),
		arrayOp(config.ConcatOpName, func(s *ast.Data) []typesystem.Param {
			return []typesystem.Param{param("other", typesystem.TArray{Elem: elemType(s)})}
		}, func(_ *Evaluator, _ *symbols.Context, s *ast.Data, arr *ast.Array, args []*ast.Data) *ast.Data {
			other, ok := arrayArg(args[0])
			if !ok {
				return typeMismatch(typesystem.KindArray, args[0])
			}
			out := make([]*ast.Statement, 0, len(arr.Elements)+len(other.Elements))
			for _, el := range arr.Elements {
				out = append(out, wrap(element(el)))
			}
			for _, el := range other.Elements {
				out = append(out, wrap(element(el)))
			}
			return ast.NewArray(elemType(s), out...)
		}),
		arrayOp(config.IncludesOpName, func(s *ast.Data) []typesystem.Param {
			return []typesystem.Param{param("item", elemType(s))}
		}, func(_ *Evaluator, _ *symbols.Context, _ *ast.Data, arr *ast.Array, args []*ast.Data) *ast.Data {
			for _, el := range arr.Elements {
				if ast.EqualData(element(el), args[0]) {
					return ast.NewBoolean(true)
				}
			}
			return ast.NewBoolean(false)
		}),
	}
}

func objectOp(name string, params []typesystem.Param, fn func(obj *ast.Object, args []*ast.Data) *ast.Data) *Operation {
	return &Operation{
		Name: name,
		Params: ComputedParams(func(s *ast.Data) []typesystem.Param {
			t := s.Type
			if t == nil || t.Kind() != typesystem.KindObject {
				t = typesystem.TObject{}
			}
			return append([]typesystem.Param{subject(t)}, params...)
		}),
		Handler: Eager(func(_ *Evaluator, _ *symbols.Context, s *ast.Data, args ...*ast.Data) *ast.Data {
			obj, ok := objectArg(s)
			if !ok {
				return typeMismatch(typesystem.KindObject, s)
			}
			return fn(obj, args)
		}),
	}
}

func objectBuiltins() []*Operation {
	key := []typesystem.Param{param("key", typesystem.String)}
	return []*Operation{
		objectOp(config.GetOpName, key, func(obj *ast.Object, args []*ast.Data) *ast.Data {
			k, ok := stringArg(args[0])
			if !ok {
				return typeMismatch(typesystem.KindString, args[0])
			}
			if p, ok := obj.Get(k); ok {
				return element(p)
			}
			return ast.NewUndefined()
		}),
		objectOp(config.KeysOpName, nil, func(obj *ast.Object, _ []*ast.Data) *ast.Data {
			out := make([]*ast.Statement, len(obj.Properties))
			for i, p := range obj.Properties {
				out[i] = wrap(ast.NewString(p.Key))
			}
			return ast.NewArray(typesystem.String, out...)
		}),
		objectOp(config.ValuesOpName, nil, func(obj *ast.Object, _ []*ast.Data) *ast.Data {
			out := make([]*ast.Statement, len(obj.Properties))
			for i, p := range obj.Properties {
				out[i] = wrap(element(p.Value))
			}
			return ast.NewArray(typesystem.Undefined, out...)
		}),
		objectOp(config.HasOpName, key, func(obj *ast.Object, args []*ast.Data) *ast.Data {
			k, ok := stringArg(args[0])
			if !ok {
				return typeMismatch(typesystem.KindString, args[0])
			}
			_, found := obj.Get(k)
			return ast.NewBoolean(found)
		}),
	}
}

func operationBuiltins() []*Operation {
	return []*Operation{
		{
			Name: config.CallOpName,
			Params: ComputedParams(func(s *ast.Data) []typesystem.Param {
				sig, ok := s.Type.(typesystem.TOperation)
				if !ok {
					return []typesystem.Param{subject(typesystem.TOperation{Result: typesystem.Unknown})}
				}
				return append([]typesystem.Param{subject(sig)}, sig.Params...)
			}),
			Handler: Eager(func(e *Evaluator, ctx *symbols.Context, s *ast.Data, args ...*ast.Data) *ast.Data {
				return e.Invoke(ctx, s, args)
			}),
		},
	}
}
