package analyzer

import (
	"testing"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/symbols"
	"github.com/funvibe/chainlang/internal/typesystem"
)

func TestInferTypeFollowsReference(t *testing.T) {
	src := ast.NewStatement("xs", ast.NewArray(nil, ast.NewStatement("", ast.NewString("a"))))
	ctx := symbols.NewContext().BindStatement(src)

	ref := ast.NewReferenceData(src, typesystem.Unknown)
	if got := InferType(ref, ctx); got.String() != "string[]" {
		t.Errorf("InferType(reference) = %s, want string[]", got)
	}

	// Without the binding the reference falls back to its own payload.
	if got := InferType(ref, symbols.NewContext()); got.Kind() != typesystem.KindUndefined {
		t.Errorf("InferType(detached reference) = %s", got)
	}
}

func TestInferTypeKeepsErrorKind(t *testing.T) {
	d := ast.NewError(typesystem.ErrorKindDivisionByZero, "division by zero")
	if got := InferType(d, nil); got.String() != "error<divisionByZero>" {
		t.Errorf("InferType(error) = %s", got)
	}
}

func TestSettleType(t *testing.T) {
	pinned := ast.NewNumber(1)
	if typ, ok := SettleType(pinned, typesystem.String); ok || typ.Kind() != typesystem.KindNumber {
		t.Errorf("pinned number should reject string, got %s %v", typ, ok)
	}

	union := typesystem.ResolveUnion([]typesystem.Type{typesystem.Number, typesystem.String}, false)
	pinned.Type = union
	if typ, ok := SettleType(pinned, typesystem.String); !ok || typ.Kind() != typesystem.KindUnion {
		t.Errorf("union declaration should accept a member, got %s %v", typ, ok)
	}

	editable := ast.NewNumber(1)
	editable.IsTypeEditable = true
	if typ, ok := SettleType(editable, typesystem.String); !ok || typ.Kind() != typesystem.KindString {
		t.Errorf("editable declaration should follow the payload, got %s %v", typ, ok)
	}
}

func TestNeedsReset(t *testing.T) {
	specs := []typesystem.Param{{Name: "a", Type: typesystem.Number}, {Name: "b", Type: typesystem.String}}

	good := []*ast.Statement{ast.NewStatement("", ast.NewNumber(1)), ast.NewStatement("", ast.NewString("s"))}
	if NeedsReset(specs, good) {
		t.Errorf("matching arguments should not reset")
	}
	if !NeedsReset(specs, good[:1]) {
		t.Errorf("arity change should reset")
	}
	swapped := []*ast.Statement{good[1], good[0]}
	if got := IncompatibleArguments(specs, swapped); len(got) != 2 {
		t.Errorf("IncompatibleArguments = %v, want both positions", got)
	}

	fresh := DefaultArguments(specs)
	if len(fresh) != 2 || fresh[0].Data.Kind() != typesystem.KindNumber || fresh[1].Data.Kind() != typesystem.KindString {
		t.Errorf("DefaultArguments built %+v", fresh)
	}
}

func TestSettleValueUsesHeldMember(t *testing.T) {
	union := typesystem.ResolveUnion([]typesystem.Type{typesystem.Number, typesystem.String}, false)
	pinned := ast.NewNumber(0)

	holdsString := &ast.Data{Type: union, Value: &ast.StringLit{Value: "hi"}}
	if _, ok := SettleValue(pinned, union, holdsString); ok {
		t.Error("a number declaration accepted a union holding a string")
	}
	holdsNumber := &ast.Data{Type: union, Value: &ast.NumberLit{Value: 2}}
	if typ, ok := SettleValue(pinned, union, holdsNumber); !ok || typ.Kind() != typesystem.KindNumber {
		t.Errorf("got %s %v, want the number declaration kept", typ, ok)
	}

	editable := ast.NewNumber(0)
	editable.IsTypeEditable = true
	if typ, ok := SettleValue(editable, union, holdsString); !ok || typ.Kind() != typesystem.KindUnion {
		t.Errorf("editable declaration should follow the source type, got %s %v", typ, ok)
	}
}
