package chainlang

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/document"
	"github.com/funvibe/chainlang/internal/editor"
	"github.com/funvibe/chainlang/internal/evaluator"
	"github.com/funvibe/chainlang/internal/typesystem"
)

func num(f float64) *ast.Statement { return ast.NewStatement("", ast.NewNumber(f)) }

// sampleDocument builds a = 10; x = a |> subtract(4) |> greaterThan(5).
func sampleDocument() (*document.Document, *ast.Statement, *ast.Statement) {
	a := ast.NewStatement("a", ast.NewNumber(10))
	x := ast.NewStatement("x", ast.NewReferenceData(a, typesystem.Number),
		ast.NewCall("subtract", num(4)), ast.NewCall("greaterThan", num(5)))
	return &document.Document{Name: "sample", Operations: []*ast.Statement{a, x}}, a, x
}

func TestSessionAPI(t *testing.T) {
	doc, a, x := sampleDocument()
	s := New()
	s.Open(doc)

	if got, _ := s.Result(x.ID); evaluator.Display(got) != "true" {
		t.Fatalf("x = %s", evaluator.Display(got))
	}
	if typ, ok := s.Type(x.ID); !ok || typ.Kind() != typesystem.KindBoolean {
		t.Errorf("type(x) = %v", typ)
	}
	sub := s.Snapshot().Operations[1].Operations[0]
	if got, _ := s.Result(sub.ID); evaluator.Display(got) != "6" {
		t.Errorf("subtract = %s", evaluator.Display(got))
	}
	if typ, ok := s.Type(sub.ID); !ok || typ.Kind() != typesystem.KindOperation {
		t.Errorf("call signature = %v", typ)
	}

	before := s.Snapshot()
	if _, err := s.Apply(editor.SetData{ID: a.ID, Data: ast.NewNumber(2)}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got, _ := s.Result(x.ID); evaluator.Display(got) != "false" {
		t.Errorf("x after edit = %s", evaluator.Display(got))
	}
	if got := evaluator.Display(before.Operations[1].Result()); got != "true" {
		t.Errorf("earlier snapshot changed: %s", got)
	}
	if s.Version() != 2 {
		t.Errorf("version = %d", s.Version())
	}

	if _, err := s.Apply(editor.Rename{ID: "missing", Name: "b"}); err == nil {
		t.Error("expected an error for an unknown id")
	}
	if s.Version() != 2 {
		t.Errorf("failed edit published a tree")
	}
}

func TestSetAndValue(t *testing.T) {
	doc, a, x := sampleDocument()
	s := New()
	s.Open(doc)

	if _, err := s.Set(a.ID, 20); err != nil {
		t.Fatal(err)
	}
	v, err := s.Value(x.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v != true {
		t.Errorf("x = %v", v)
	}

	if _, err := s.Set(a.ID, []int{3, 4}); err != nil {
		t.Fatal(err)
	}
	got, err := s.Value(a.ID, reflect.TypeOf([]int{}))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []int{3, 4}) {
		t.Errorf("a = %#v", got)
	}
	// a is no longer a number: x detaches and restarts from 0
	if r, _ := s.Result(x.ID); evaluator.Display(r) != "false" {
		t.Errorf("x = %s", evaluator.Display(r))
	}
	if s.Snapshot().Operations[1].Data.Reference != nil {
		t.Error("x kept its reference to a non-number")
	}
}

func TestSkip(t *testing.T) {
	a := ast.NewStatement("a", ast.NewNumber(10))
	x := ast.NewStatement("x", ast.NewReferenceData(a, typesystem.Number),
		ast.NewCall("divide", num(0)), ast.NewCall("add", num(1)))
	cond := ast.NewStatement("c", ast.NewCondition(
		ast.NewStatement("", ast.NewBoolean(false)), num(1), num(2)))
	s := New()
	s.Open(&document.Document{Name: "d", Operations: []*ast.Statement{a, x, cond}})

	snap := s.Snapshot()
	add := snap.Operations[1].Operations[1]
	if reason := s.Skip(add.ID, -1); reason == "" {
		t.Error("a call after an error should be skipped")
	}
	if reason := s.Skip(snap.Operations[1].Operations[0].ID, 0); reason != "" {
		t.Errorf("divide argument skipped: %s", reason)
	}
	condID := snap.Operations[2].Data.ID
	if reason := s.Skip(condID, evaluator.TrueBranch); reason == "" {
		t.Error("true branch of a false condition should be skipped")
	}
	if reason := s.Skip(condID, evaluator.FalseBranch); reason != "" {
		t.Errorf("false branch skipped: %s", reason)
	}
}

func TestOpenFile(t *testing.T) {
	doc, _, x := sampleDocument()
	path := filepath.Join(t.TempDir(), "sample.chain.json")
	if err := document.Save(path, doc); err != nil {
		t.Fatal(err)
	}
	s := New()
	if _, err := s.OpenFile(path); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Result(x.ID); evaluator.Display(got) != "true" {
		t.Errorf("x = %s", evaluator.Display(got))
	}
	if _, err := s.OpenFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error")
	}
}

func TestConcurrentReaders(t *testing.T) {
	doc, a, x := sampleDocument()
	s := New()
	s.Open(doc)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				r, ok := s.Result(x.ID)
				if !ok || r.Kind() != typesystem.KindBoolean {
					t.Errorf("reader saw a partial tree")
					return
				}
			}
		}()
	}
	for i := 0; i < 20; i++ {
		if _, err := s.Set(a.ID, i); err != nil {
			t.Fatal(err)
		}
	}
	wg.Wait()
}

// Skip evaluates condition tests that call user operations; run it from many
// goroutines while edits are published (meaningful under -race).
func TestConcurrentSkip(t *testing.T) {
	n := ast.NewParameter("n", typesystem.Number)
	body := ast.NewStatement("", ast.NewReferenceData(n, typesystem.Number), ast.NewCall("greaterThan", num(5)))
	isBig := ast.NewStatement("isBig", ast.NewOperation([]*ast.Statement{n}, []*ast.Statement{body}))
	a := ast.NewStatement("a", ast.NewNumber(10))
	test := ast.NewStatement("", ast.NewReferenceData(a, typesystem.Number), ast.NewCall("isBig"))
	cond := ast.NewStatement("c", ast.NewCondition(test, num(1), num(2)))
	s := New()
	s.Open(&document.Document{Name: "d", Operations: []*ast.Statement{isBig, a, cond}})
	condID := s.Snapshot().Operations[2].Data.ID

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if reason := s.Skip(condID, evaluator.FalseBranch); strings.HasPrefix(reason, "not evaluated") {
					t.Errorf("condition failed: %s", reason)
					return
				}
			}
		}()
	}
	for i := 0; i < 20; i++ {
		if _, err := s.Set(a.ID, i); err != nil {
			t.Fatal(err)
		}
	}
	wg.Wait()
}

func TestMarshaller(t *testing.T) {
	type point struct {
		X, Y int
		tag  string
	}
	m := NewMarshaller()
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"int", 3, "3"},
		{"float", 2.5, "2.5"},
		{"string", "hi", "hi"},
		{"bool", true, "true"},
		{"nil", nil, "undefined"},
		{"slice", []string{"a", "b"}, `["a", "b"]`},
		{"map", map[string]int{"b": 2, "a": 1}, `{a: 1, b: 2}`},
		{"struct", point{X: 1, Y: 2, tag: "p"}, `{X: 1, Y: 2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := m.ToValue(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got := evaluator.Display(d); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := m.ToValue(make(chan int)); err == nil {
		t.Error("expected an error for a channel")
	}
	if _, err := m.FromValue(ast.NewError("runtime", "boom"), nil); err == nil {
		t.Error("expected an error value to convert to a Go error")
	}

	d, err := m.ToValue(errors.New("out of stock"))
	if err != nil {
		t.Fatal(err)
	}
	if te, ok := d.Type.(typesystem.TError); !ok || te.ErrorKind != typesystem.ErrorKindUser {
		t.Errorf("Go error converted to %s", d.Type)
	}
}
