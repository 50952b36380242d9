package editor

import (
	"math/rand"
	"testing"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/evaluator"
	"github.com/funvibe/chainlang/internal/typesystem"
)

var fuzzOps = []string{"add", "subtract", "divide", "greaterThan", "toString", "length", "not", "negate"}

// randomEdit picks an edit against a random node of stmts.
func randomEdit(r *rand.Rand, stmts []*ast.Statement) Edit {
	if len(stmts) == 0 {
		return InsertStatement{Index: 0, Statement: ast.NewStatement("n", ast.NewNumber(float64(r.Intn(10))))}
	}
	s := stmts[r.Intn(len(stmts))]
	var call *ast.Call
	if len(s.Operations) > 0 {
		call = s.Operations[r.Intn(len(s.Operations))]
	}
	switch r.Intn(8) {
	case 0:
		return SetData{ID: s.ID, Data: ast.NewNumber(float64(r.Intn(20) - 10))}
	case 1:
		return AddCall{ID: s.ID, Name: fuzzOps[r.Intn(len(fuzzOps))]}
	case 2:
		if call != nil {
			return RemoveCall{ID: call.ID}
		}
	case 3:
		if call != nil {
			return MoveCall{ID: call.ID, Index: r.Intn(len(s.Operations))}
		}
	case 4:
		return Rename{ID: s.ID, Name: string(rune('a' + r.Intn(4)))}
	case 5:
		if call != nil && len(call.Parameters) > 0 {
			return SetParameter{ID: call.ID, Index: 0, Statement: ast.NewStatement("", ast.NewString("s"))}
		}
	case 6:
		return RemoveStatement{ID: s.ID}
	}
	src := stmts[r.Intn(len(stmts))]
	return InsertStatement{
		Index:     len(stmts),
		Statement: ast.NewStatement("", ast.NewReferenceData(src, typesystem.Number), ast.NewCall("add", num(1))),
	}
}

func results(stmts []*ast.Statement) []string {
	out := make([]string, len(stmts))
	for i, s := range stmts {
		out[i] = evaluator.Display(s.Result())
	}
	return out
}

// FuzzEdits applies random edit sequences and checks that the input list is
// never modified and that every produced list is already reconciled.
func FuzzEdits(f *testing.F) {
	f.Add([]byte("seed"))
	f.Add([]byte{0, 1, 2, 3, 4, 5, 6, 7})
	f.Add([]byte("a longer seed with more edits in it"))

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 64 {
			return
		}
		seed := int64(len(data))
		for _, b := range data {
			seed = seed*31 + int64(b)
		}
		r := rand.New(rand.NewSource(seed))

		ed := newEditor()
		stmts := document(t, ed)
		for i := 0; i < len(data); i++ {
			before := results(stmts)
			next, _, err := ed.Apply(stmts, randomEdit(r, stmts), nil)
			if err != nil {
				continue
			}
			after := results(stmts)
			for j := range before {
				if before[j] != after[j] {
					t.Fatalf("edit %d modified its input: %v -> %v", i, before, after)
				}
			}
			again, _ := ed.Engine.Reconcile(next, nil)
			want, got := results(next), results(again)
			for j := range want {
				if want[j] != got[j] {
					t.Fatalf("edit %d left statement %d unreconciled: %s, full pass gives %s", i, j, want[j], got[j])
				}
			}
			stmts = next
		}
	})
}
