package symbols

import (
	"testing"

	"github.com/funvibe/chainlang/internal/ast"
)

func TestBindDoesNotMutateParent(t *testing.T) {
	root := NewContext().Bind("a", "id-a", ast.NewNumber(1))
	left := root.Bind("b", "id-b", ast.NewNumber(2))
	right := root.Bind("c", "id-c", ast.NewNumber(3))

	if root.Len() != 1 {
		t.Errorf("root scope grew to %d bindings", root.Len())
	}
	if _, ok := left.Lookup("c"); ok {
		t.Errorf("sibling scope leaked binding c")
	}
	if _, ok := right.Lookup("b"); ok {
		t.Errorf("sibling scope leaked binding b")
	}
}

func TestResolveRequiresNameAndID(t *testing.T) {
	ctx := NewContext().Bind("x", "id-1", ast.NewNumber(6))

	tests := []struct {
		name string
		ref  *ast.Reference
		want bool
	}{
		{"match", &ast.Reference{ID: "id-1", Name: "x"}, true},
		{"renamed source", &ast.Reference{ID: "id-1", Name: "y"}, false},
		{"replaced source", &ast.Reference{ID: "id-2", Name: "x"}, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ctx.Resolve(tt.ref); ok != tt.want {
				t.Errorf("Resolve(%v) = %v, want %v", tt.ref, ok, tt.want)
			}
		})
	}
}

func TestBindingsOrderAndShadowing(t *testing.T) {
	ctx := NewContext().
		Bind("a", "1", ast.NewNumber(1)).
		Bind("b", "2", ast.NewNumber(2)).
		Bind("a", "3", ast.NewNumber(3))

	got := ctx.Bindings()
	if len(got) != 2 || got[0].Name != "b" || got[1].Name != "a" || got[1].ID != "3" {
		t.Errorf("unexpected bindings: %+v", got)
	}

	anon := ast.NewStatement("", ast.NewNumber(9))
	if ctx.BindStatement(anon) != ctx {
		t.Errorf("anonymous statements must not extend the scope")
	}
}

func TestEnterKeepsBindingsAndCountsDepth(t *testing.T) {
	root := NewContext().Bind("a", "id-a", ast.NewNumber(1))
	inner := root.Enter().Enter().Bind("b", "id-b", ast.NewNumber(2))

	if inner.Depth() != 2 {
		t.Errorf("depth = %d, want 2", inner.Depth())
	}
	if root.Depth() != 0 {
		t.Errorf("entering changed the parent depth to %d", root.Depth())
	}
	if _, ok := inner.Lookup("a"); !ok {
		t.Error("outer binding lost after Enter")
	}
	var nilCtx *Context
	if nilCtx.Depth() != 0 || nilCtx.Enter().Depth() != 1 {
		t.Error("nil context depth")
	}
}
