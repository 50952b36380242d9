package evaluator

import (
	"strings"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/config"
	"github.com/funvibe/chainlang/internal/symbols"
	"github.com/funvibe/chainlang/internal/typesystem"
)

// stringOp builds a string operation taking string arguments.
func stringOp(name string, arity int, fn func(s string, args []string) *ast.Data) *Operation {
	params := FixedParams{subject(typesystem.String)}
	for i := 0; i < arity; i++ {
		params = append(params, param("value", typesystem.String))
	}
	return &Operation{
		Name:   name,
		Params: params,
		Handler: Eager(func(_ *Evaluator, _ *symbols.Context, s *ast.Data, args ...*ast.Data) *ast.Data {
			str, ok := stringArg(s)
			if !ok {
				return typeMismatch(typesystem.KindString, s)
			}
			values := make([]string, len(args))
			for i, a := range args {
				v, ok := stringArg(a)
				if !ok {
					return typeMismatch(typesystem.KindString, a)
				}
				values[i] = v
			}
			return fn(str, values)
		}),
	}
}

func stringBuiltins() []*Operation {
	return []*Operation{
		stringOp(config.ConcatOpName, 1, func(s string, a []string) *ast.Data {
			return ast.NewString(s + a[0])
		}),
		stringOp(config.LengthOpName, 0, func(s string, _ []string) *ast.Data {
			return ast.NewNumber(float64(len([]rune(s))))
		}),
		stringOp(config.IncludesOpName, 1, func(s string, a []string) *ast.Data {
			return ast.NewBoolean(strings.Contains(s, a[0]))
		}),
		stringOp(config.StartsWithOpName, 1, func(s string, a []string) *ast.Data {
			return ast.NewBoolean(strings.HasPrefix(s, a[0]))
		}),
		stringOp(config.EndsWithOpName, 1, func(s string, a []string) *ast.Data {
			return ast.NewBoolean(strings.HasSuffix(s, a[0]))
		}),
		stringOp(config.ToUpperCaseOpName, 0, func(s string, _ []string) *ast.Data {
			return ast.NewString(strings.ToUpper(s))
		}),
		stringOp(config.ToLowerCaseOpName, 0, func(s string, _ []string) *ast.Data {
			return ast.NewString(strings.ToLower(s))
		}),
		stringOp(config.SplitOpName, 1, func(s string, a []string) *ast.Data {
			parts := strings.Split(s, a[0])
			elems := make([]*ast.Statement, len(parts))
			for i, p := range parts {
				elems[i] = wrap(ast.NewString(p))
			}
			return ast.NewArray(typesystem.String, elems...)
		}),
		stringOp(config.TrimOpName, 0, func(s string, _ []string) *ast.Data {
			return ast.NewString(strings.TrimSpace(s))
		}),
	}
}
