package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/document"
	"github.com/funvibe/chainlang/internal/evaluator"
	"github.com/funvibe/chainlang/internal/propagation"
	"github.com/funvibe/chainlang/internal/typesystem"
	"github.com/rs/zerolog"
)

func loader() *Pipeline {
	return Load(&ReconcileProcessor{Engine: propagation.New(evaluator.New(), zerolog.Nop(), nil)})
}

func TestLoadReconciles(t *testing.T) {
	a := ast.NewStatement("a", ast.NewNumber(10))
	x := ast.NewStatement("x", ast.NewReferenceData(a, typesystem.Number),
		ast.NewCall("subtract", ast.NewStatement("", ast.NewNumber(4))))
	path := filepath.Join(t.TempDir(), "doc.chain.yaml")
	if err := document.Save(path, &document.Document{Name: "d", Operations: []*ast.Statement{a, x}}); err != nil {
		t.Fatal(err)
	}

	ctx := loader().Run(NewContext(path))
	if err := ctx.Err(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(ctx.Result) != 2 {
		t.Fatalf("got %d statements", len(ctx.Result))
	}
	if got := evaluator.Display(ctx.Result[1].Result()); got != "6" {
		t.Errorf("x = %s", got)
	}
	if ctx.Stats.Reconciled == 0 {
		t.Errorf("stats not recorded: %+v", ctx.Stats)
	}
}

func TestStagesStopOnError(t *testing.T) {
	tests := []struct {
		name string
		ctx  *PipelineContext
	}{
		{"missing file", NewContext(filepath.Join(t.TempDir(), "absent.json"))},
		{"bad source", NewSourceContext([]byte(`{"name":`), document.FormatJSON)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := loader().Run(tt.ctx)
			if ctx.Err() == nil {
				t.Fatal("expected an error")
			}
			if len(ctx.Errors) != 1 {
				t.Errorf("errors = %v", ctx.Errors)
			}
			if ctx.Result != nil {
				t.Error("reconcile ran after a failed stage")
			}
		})
	}
}
