package modules

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

func newLoader() *Loader {
	return NewLoader(propagation.New(evaluator.New(), zerolog.Nop(), nil))
}

// incrementDoc defines inc = (n: number) => n |> add(step) with step = 1.
func incrementDoc() *document.Document {
	step := ast.NewStatement("_step", ast.NewNumber(1))
	n := ast.NewParameter("n", typesystem.Number)
	body := ast.NewStatement("", ast.NewReferenceData(n, typesystem.Number),
		ast.NewCall("add", ast.NewStatement("", ast.NewNumber(1))))
	inc := ast.NewStatement("inc", ast.NewOperation([]*ast.Statement{n}, []*ast.Statement{body}))
	return &document.Document{Name: "inc", Operations: []*ast.Statement{step, inc}}
}

func writeLibrary(t *testing.T, docs map[string]*document.Document) string {
	t.Helper()
	dir := t.TempDir()
	for file, doc := range docs {
		if err := document.Save(filepath.Join(dir, file), doc); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadExports(t *testing.T) {
	dir := writeLibrary(t, map[string]*document.Document{"a.chain.yaml": incrementDoc()})
	l := newLoader()
	mod, err := l.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := mod.ExportNames(); len(got) != 1 || got[0] != "inc" {
		t.Errorf("exports = %v", got)
	}
	again, err := l.Load(dir)
	if err != nil || again != mod {
		t.Errorf("second load did not hit the cache")
	}
}

func TestScopeMakesOperationsCallable(t *testing.T) {
	dir := writeLibrary(t, map[string]*document.Document{"a.chain.json": incrementDoc()})
	l := newLoader()
	scope, err := l.Scope(dir)
	if err != nil {
		t.Fatal(err)
	}
	use := ast.NewStatement("r", ast.NewNumber(41), ast.NewCall("inc"))
	stmts, _ := l.engine.Reconcile([]*ast.Statement{use}, scope)
	if got := evaluator.Display(stmts[0].Result()); got != "42" {
		t.Errorf("r = %s", got)
	}
	if _, ok := scope.Lookup("_step"); ok {
		t.Error("private statement exported")
	}
}

func TestLoadErrors(t *testing.T) {
	l := newLoader()
	if _, err := l.Load(t.TempDir()); err == nil {
		t.Error("expected an error for an empty directory")
	}
	dup := writeLibrary(t, map[string]*document.Document{
		"a.chain.json": incrementDoc(),
		"b.chain.json": incrementDoc(),
	})
	if _, err := l.Load(dup); err == nil {
		t.Error("expected an error for a duplicate export")
	}
}
