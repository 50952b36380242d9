package evaluator

import (
	"testing"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/symbols"
	"github.com/funvibe/chainlang/internal/typesystem"
)

func TestBuiltins(t *testing.T) {
	obj := func() *ast.Data {
		return ast.NewObject(
			&ast.Property{Key: "name", Value: str("ada")},
			&ast.Property{Key: "age", Value: num(36)},
		)
	}
	tests := []struct {
		name string
		base *ast.Data
		call *ast.Call
		want string
	}{
		{"equals", ast.NewNumber(2), ast.NewCall("equals", num(2)), "true"},
		{"notEquals", ast.NewString("a"), ast.NewCall("notEquals", str("b")), "true"},
		{"toString number", ast.NewNumber(2.5), ast.NewCall("toString"), "2.5"},
		{"add", ast.NewNumber(2), ast.NewCall("add", num(3)), "5"},
		{"add default argument", ast.NewNumber(2), ast.NewCall("add"), "2"},
		{"multiply", ast.NewNumber(4), ast.NewCall("multiply", num(2.5)), "10"},
		{"divide", ast.NewNumber(9), ast.NewCall("divide", num(3)), "3"},
		{"mod", ast.NewNumber(7), ast.NewCall("mod", num(4)), "3"},
		{"power", ast.NewNumber(2), ast.NewCall("power", num(10)), "1024"},
		{"lessThanOrEqual", ast.NewNumber(3), ast.NewCall("lessThanOrEqual", num(3)), "true"},
		{"negate", ast.NewNumber(3), ast.NewCall("negate"), "-3"},
		{"round", ast.NewNumber(2.5), ast.NewCall("round"), "3"},
		{"concat", ast.NewString("foo"), ast.NewCall("concat", str("bar")), "foobar"},
		{"string length", ast.NewString("héllo"), ast.NewCall("length"), "5"},
		{"startsWith", ast.NewString("chain"), ast.NewCall("startsWith", str("ch")), "true"},
		{"toUpperCase", ast.NewString("abc"), ast.NewCall("toUpperCase"), "ABC"},
		{"trim", ast.NewString("  x "), ast.NewCall("trim"), "x"},
		{"split", ast.NewString("a,b"), ast.NewCall("split", str(",")), `["a", "b"]`},
		{"not", ast.NewBoolean(false), ast.NewCall("not"), "true"},
		{"thenElse true", ast.NewBoolean(true), ast.NewCall("thenElse", str("yes"), str("no")), "yes"},
		{"thenElse false", ast.NewBoolean(false), ast.NewCall("thenElse", str("yes"), str("no")), "no"},
		{"array length", numbers(1, 2, 3), ast.NewCall("length"), "3"},
		{"at", numbers(4, 5, 6), ast.NewCall("at", num(1)), "5"},
		{"join", numbers(1, 2), ast.NewCall("join", str("-")), "1-2"},
		{"array concat", numbers(1), ast.NewCall("concat", lit(numbers(2, 3))), "[1, 2, 3]"},
		{"array includes", numbers(1, 2), ast.NewCall("includes", num(2)), "true"},
		{"get", obj(), ast.NewCall("get", str("age")), "36"},
		{"get missing", obj(), ast.NewCall("get", str("x")), "undefined"},
		{"keys", obj(), ast.NewCall("keys"), `["name", "age"]`},
		{"has", obj(), ast.NewCall("has", str("name")), "true"},
	}

	e := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Evaluate(lit(tt.base, tt.call), symbols.NewContext())
			if got.IsError() {
				t.Fatalf("unexpected error: %s", Reason(got))
			}
			if s := Display(got); s != tt.want {
				t.Errorf("got %s, want %s", s, tt.want)
			}
		})
	}
}

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		name string
		base *ast.Data
		call *ast.Call
		kind string
	}{
		{"mod by zero", ast.NewNumber(1), ast.NewCall("mod", num(0)), typesystem.ErrorKindDivisionByZero},
		{"at out of range", numbers(1), ast.NewCall("at", num(3)), typesystem.ErrorKindRuntime},
		{"wrong argument payload", ast.NewNumber(1), ast.NewCall("add", str("x")), typesystem.ErrorKindType},
		{"map without operation", numbers(1), ast.NewCall("map", num(1)), typesystem.ErrorKindType},
	}
	e := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Evaluate(lit(tt.base, tt.call), symbols.NewContext())
			te, ok := got.Type.(typesystem.TError)
			if !ok || te.ErrorKind != tt.kind {
				t.Errorf("got %s (%s), want error kind %s", got.Type, Reason(got), tt.kind)
			}
		})
	}
}

func TestFilterAndFind(t *testing.T) {
	e := New()
	x := ast.NewParameter("x", typesystem.Number)
	body := ref(x, typesystem.Number)
	body.Operations = []*ast.Call{ast.NewCall("greaterThan", num(1))}
	big := ast.NewStatement("big", ast.NewOperation([]*ast.Statement{x}, []*ast.Statement{body}))
	ctx := symbols.NewContext().BindStatement(big)

	got := e.Evaluate(lit(numbers(1, 2, 3), ast.NewCall("filter", ref(big, big.Data.Type))), ctx)
	if s := Display(got); s != "[2, 3]" {
		t.Errorf("filter = %s", s)
	}
	got = e.Evaluate(lit(numbers(1, 2, 3), ast.NewCall("find", ref(big, big.Data.Type))), ctx)
	if s := Display(got); s != "2" {
		t.Errorf("find = %s", s)
	}
}

func TestCallOperationValue(t *testing.T) {
	e := New()
	fn := addOne()
	ctx := symbols.NewContext().BindStatement(fn)
	call := ast.NewCall("call", num(41))
	got := e.Evaluate(&ast.Statement{ID: ast.NewID(), Data: fn.Data, Operations: []*ast.Call{call}}, ctx)
	if s := Display(got); s != "42" {
		t.Errorf("call = %s", s)
	}
	op, ok := e.Registry.Lookup(fn.Data, "call", ctx)
	if !ok {
		t.Fatal("call not offered for an operation value")
	}
	if specs := op.Arguments(fn.Data); len(specs) != 1 || specs[0].Name != "x" {
		t.Errorf("call arguments = %+v", specs)
	}
}
