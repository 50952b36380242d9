package evaluator

import (
	"math"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/config"
	"github.com/funvibe/chainlang/internal/symbols"
	"github.com/funvibe/chainlang/internal/typesystem"
)

// builtinOperations returns every builtin in registry order.
func builtinOperations() []*Operation {
	var ops []*Operation
	ops = append(ops, anyBuiltins()...)
	ops = append(ops, numberBuiltins()...)
	ops = append(ops, stringBuiltins()...)
	ops = append(ops, booleanBuiltins()...)
	ops = append(ops, arrayBuiltins()...)
	ops = append(ops, objectBuiltins()...)
	ops = append(ops, operationBuiltins()...)
	return ops
}

func anyBuiltins() []*Operation {
	same := FixedParams{subject(typesystem.Unknown), param("other", typesystem.Unknown)}
	return []*Operation{
		{
			Name:   config.EqualsOpName,
			Params: same,
			Handler: Eager(func(_ *Evaluator, _ *symbols.Context, s *ast.Data, args ...*ast.Data) *ast.Data {
				return ast.NewBoolean(ast.EqualData(s, args[0]))
			}),
		},
		{
			Name:   config.NotEqualsOpName,
			Params: same,
			Handler: Eager(func(_ *Evaluator, _ *symbols.Context, s *ast.Data, args ...*ast.Data) *ast.Data {
				return ast.NewBoolean(!ast.EqualData(s, args[0]))
			}),
		},
		{
			Name:   config.ToStringOpName,
			Params: FixedParams{subject(typesystem.Unknown)},
			Handler: Eager(func(_ *Evaluator, _ *symbols.Context, s *ast.Data, _ ...*ast.Data) *ast.Data {
				return ast.NewString(Display(s))
			}),
		},
	}
}

// arith builds a binary number operation.
func arith(name string, fn func(x, y float64) *ast.Data) *Operation {
	return &Operation{
		Name:   name,
		Params: FixedParams{subject(typesystem.Number), param("value", typesystem.Number)},
		Handler: Eager(func(_ *Evaluator, _ *symbols.Context, s *ast.Data, args ...*ast.Data) *ast.Data {
			x, ok := numberArg(s)
			if !ok {
				return typeMismatch(typesystem.KindNumber, s)
			}
			y, ok := numberArg(args[0])
			if !ok {
				return typeMismatch(typesystem.KindNumber, args[0])
			}
			return fn(x, y)
		}),
	}
}

func compare(name string, fn func(x, y float64) bool) *Operation {
	return arith(name, func(x, y float64) *ast.Data { return ast.NewBoolean(fn(x, y)) })
}

func unaryNumber(name string, fn func(x float64) float64) *Operation {
	return &Operation{
		Name:   name,
		Params: FixedParams{subject(typesystem.Number)},
		Handler: Eager(func(_ *Evaluator, _ *symbols.Context, s *ast.Data, _ ...*ast.Data) *ast.Data {
			x, ok := numberArg(s)
			if !ok {
				return typeMismatch(typesystem.KindNumber, s)
			}
			return ast.NewNumber(fn(x))
		}),
	}
}

func numberBuiltins() []*Operation {
	return []*Operation{
		arith(config.AddOpName, func(x, y float64) *ast.Data { return ast.NewNumber(x + y) }),
		arith(config.SubtractOpName, func(x, y float64) *ast.Data { return ast.NewNumber(x - y) }),
		arith(config.MultiplyOpName, func(x, y float64) *ast.Data { return ast.NewNumber(x * y) }),
		arith(config.DivideOpName, func(x, y float64) *ast.Data {
			if y == 0 {
				return ast.NewError(typesystem.ErrorKindDivisionByZero, "division by zero")
			}
			return ast.NewNumber(x / y)
		}),
		arith(config.ModOpName, func(x, y float64) *ast.Data {
			if y == 0 {
				return ast.NewError(typesystem.ErrorKindDivisionByZero, "division by zero in mod")
			}
			return ast.NewNumber(math.Mod(x, y))
		}),
		arith(config.PowerOpName, func(x, y float64) *ast.Data { return ast.NewNumber(math.Pow(x, y)) }),
		compare(config.GreaterThanOpName, func(x, y float64) bool { return x > y }),
		compare(config.LessThanOpName, func(x, y float64) bool { return x < y }),
		compare(config.GreaterThanOrEqualOpName, func(x, y float64) bool { return x >= y }),
		compare(config.LessThanOrEqualOpName, func(x, y float64) bool { return x <= y }),
		unaryNumber(config.NegateOpName, func(x float64) float64 { return -x }),
		unaryNumber(config.RoundOpName, math.Round),
	}
}

func booleanBuiltins() []*Operation {
	subj := subject(typesystem.Boolean)
	return []*Operation{
		{
			Name:   config.AndOpName,
			Params: FixedParams{subj, param("value", typesystem.Boolean)},
			Handler: Lazy(func(e *Evaluator, ctx *symbols.Context, s *ast.Data, params ...*ast.Statement) *ast.Data {
				if !Truthy(s) {
					return ast.NewBoolean(false)
				}
				v := e.Evaluate(params[0], ctx)
				if v.IsError() {
					return v
				}
				return ast.NewBoolean(Truthy(v))
			}),
			ShortCircuit: func(s *ast.Data, _ int) string {
				if !Truthy(s) {
					return "not evaluated: the subject is false"
				}
				return ""
			},
		},
		{
			Name:   config.OrOpName,
			Params: FixedParams{subj, param("value", typesystem.Boolean)},
			Handler: Lazy(func(e *Evaluator, ctx *symbols.Context, s *ast.Data, params ...*ast.Statement) *ast.Data {
				if Truthy(s) {
					return ast.NewBoolean(true)
				}
				v := e.Evaluate(params[0], ctx)
				if v.IsError() {
					return v
				}
				return ast.NewBoolean(Truthy(v))
			}),
			ShortCircuit: func(s *ast.Data, _ int) string {
				if Truthy(s) {
					return "not evaluated: the subject is true"
				}
				return ""
			},
		},
		{
			Name:   config.NotOpName,
			Params: FixedParams{subj},
			Handler: Eager(func(_ *Evaluator, _ *symbols.Context, s *ast.Data, _ ...*ast.Data) *ast.Data {
				return ast.NewBoolean(!Truthy(s))
			}),
		},
		{
			Name:   config.ThenElseOpName,
			Params: FixedParams{subj, param("then", typesystem.Unknown), param("else", typesystem.Unknown)},
			Handler: Lazy(func(e *Evaluator, ctx *symbols.Context, s *ast.Data, params ...*ast.Statement) *ast.Data {
				if Truthy(s) {
					return e.Evaluate(params[0], ctx)
				}
				return e.Evaluate(params[1], ctx)
			}),
			ShortCircuit: func(s *ast.Data, index int) string {
				if index == 0 && !Truthy(s) {
					return "branch not taken: the subject is false"
				}
				if index == 1 && Truthy(s) {
					return "branch not taken: the subject is true"
				}
				return ""
			},
		},
	}
}
