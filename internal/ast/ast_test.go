package ast

import (
	"testing"

	"github.com/funvibe/chainlang/internal/typesystem"
)

func TestDefaultData(t *testing.T) {
	tests := []struct {
		name string
		typ  typesystem.Type
		want string
	}{
		{"string", typesystem.String, `""`},
		{"number", typesystem.Number, "0"},
		{"boolean", typesystem.Boolean, "false"},
		{"undefined", typesystem.Undefined, "undefined"},
		{"array", typesystem.TArray{Elem: typesystem.Number}, "[]"},
		{
			"object",
			typesystem.TObject{Fields: []typesystem.Field{{Name: "a", Type: typesystem.Number}, {Name: "b", Type: typesystem.String}}},
			`{ a: 0, b: "" }`,
		},
		{"union picks first member", typesystem.ResolveUnion([]typesystem.Type{typesystem.Boolean, typesystem.Number}, false), "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DefaultData(tt.typ)
			if got := d.Value.String(); got != tt.want {
				t.Errorf("DefaultData(%s) = %s, want %s", tt.typ, got, tt.want)
			}
			if !typesystem.Equal(d.Type, tt.typ) {
				t.Errorf("DefaultData(%s) changed the declared type to %s", tt.typ, d.Type)
			}
			if d.ID == "" {
				t.Errorf("DefaultData(%s) has no id", tt.typ)
			}
		})
	}
}

func TestDefaultDataOperation(t *testing.T) {
	sig := typesystem.TOperation{
		Params: []typesystem.Param{{Name: "x", Type: typesystem.Number}, {Name: "y", Type: typesystem.String}},
		Result: typesystem.Undefined,
	}
	d := DefaultData(sig)
	op, ok := d.Value.(*Operation)
	if !ok {
		t.Fatalf("expected operation value, got %T", d.Value)
	}
	if len(op.Parameters) != 2 || op.Parameters[0].Name != "x" || op.Parameters[1].Data.Kind() != typesystem.KindString {
		t.Errorf("unexpected parameters: %+v", op.Parameters)
	}
	if got := InferType(op); !typesystem.Equal(got, sig) {
		t.Errorf("InferType = %s, want %s", got, sig)
	}
}

func TestInferType(t *testing.T) {
	arr := NewArray(nil,
		NewStatement("", NewNumber(1)),
		NewStatement("", NewString("a")),
		NewStatement("", NewNumber(2)),
	)
	if got := arr.Type.String(); got != "(number | string)[]" {
		t.Errorf("array type = %s", got)
	}

	obj := NewObject(&Property{Key: "n", Value: NewStatement("", NewNumber(1))})
	if got := obj.Type.String(); got != "{ n: number }" {
		t.Errorf("object type = %s", got)
	}

	x := NewParameter("x", typesystem.Number)
	body := NewStatement("", NewBoolean(true))
	op := NewOperation([]*Statement{x}, []*Statement{body})
	if got := op.Type.String(); got != "(x: number) => boolean" {
		t.Errorf("operation type = %s", got)
	}

	cond := NewCondition(NewStatement("", NewBoolean(true)), NewStatement("", NewNumber(1)), NewStatement("", NewString("no")))
	if got := cond.Type.String(); got != "condition<number | string>" {
		t.Errorf("condition type = %s", got)
	}

	if te, ok := InferType(&Error{Reason: "stop"}).(typesystem.TError); !ok || te.ErrorKind != typesystem.ErrorKindUser {
		t.Errorf("error literal type = %v", InferType(&Error{Reason: "stop"}))
	}

	empty := NewArray(typesystem.String)
	if got := empty.Type.String(); got != "string[]" {
		t.Errorf("empty array type = %s", got)
	}
}

func TestStatementResult(t *testing.T) {
	s := NewStatement("x", NewNumber(1))
	if s.Result() != s.Data {
		t.Errorf("Result() without calls should be the base data")
	}

	res := NewNumber(2)
	s.Operations = []*Call{NewCall("add", NewStatement("", NewNumber(1)))}
	s.Operations[0].Result = res
	if s.Result() != res {
		t.Errorf("Result() should be the last call result")
	}
}

func TestInspectAndFind(t *testing.T) {
	inner := NewStatement("", NewNumber(3))
	call := NewCall("add", inner)
	root := NewStatement("a", NewArray(nil, NewStatement("", NewNumber(1))), call)

	count := 0
	Inspect(root, func(Node) bool {
		count++
		return true
	})
	// statement, data, element statement, element data, call, param statement, param data
	if count != 7 {
		t.Errorf("visited %d nodes, want 7", count)
	}

	n, ok := Find([]*Statement{root}, inner.Data.ID)
	if !ok || n != inner.Data {
		t.Errorf("Find did not locate nested parameter data")
	}
	if _, ok := Find([]*Statement{root}, "missing"); ok {
		t.Errorf("Find should fail for an unknown id")
	}
}

func TestEquality(t *testing.T) {
	a := NewArray(nil, NewStatement("", NewNumber(1)), NewStatement("", NewNumber(2)))
	b := NewArray(nil, NewStatement("", NewNumber(1)), NewStatement("", NewNumber(2)))
	if !EqualData(a, b) {
		t.Errorf("arrays with equal elements should compare equal")
	}
	c := NewArray(nil, NewStatement("", NewNumber(1)), NewStatement("", NewNumber(3)))
	if EqualData(a, c) {
		t.Errorf("arrays with different elements should differ")
	}

	s := NewStatement("x", NewNumber(1))
	copyOf := *s
	if !SameStatement(s, &copyOf) {
		t.Errorf("shallow copy should be the same statement")
	}
	renamed := copyOf
	renamed.Name = "y"
	if SameStatement(s, &renamed) {
		t.Errorf("renamed statement should differ")
	}
}
