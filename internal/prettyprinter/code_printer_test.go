package prettyprinter

import (
	"strings"
	"testing"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/evaluator"
	"github.com/funvibe/chainlang/internal/propagation"
	"github.com/funvibe/chainlang/internal/typesystem"
	"github.com/rs/zerolog"
)

func num(f float64) *ast.Statement { return ast.NewStatement("", ast.NewNumber(f)) }

func TestPrintStatements(t *testing.T) {
	a := ast.NewStatement("a", ast.NewNumber(10))
	tests := []struct {
		name string
		stmt *ast.Statement
		want string
	}{
		{"literal", a, "a = 10\n"},
		{"string", ast.NewStatement("s", ast.NewString("hi")), "s = \"hi\"\n"},
		{"single call", ast.NewStatement("x", ast.NewReferenceData(a, typesystem.Number), ast.NewCall("subtract", num(4))),
			"x = a |> subtract(4)\n"},
		{"chain", ast.NewStatement("y", ast.NewNumber(1), ast.NewCall("add", num(2)), ast.NewCall("multiply", num(3))),
			"y = 1\n    |> add(2)\n    |> multiply(3)\n"},
		{"array", ast.NewStatement("", ast.NewArray(typesystem.Number, num(1), num(2))), "[1, 2]\n"},
		{"object", ast.NewStatement("o", ast.NewObject(&ast.Property{Key: "k", Value: num(1)})), "o = { k: 1 }\n"},
		{"nested chain argument", ast.NewStatement("", ast.NewNumber(1),
			ast.NewCall("add", ast.NewStatement("", ast.NewNumber(2), ast.NewCall("negate")))),
			"1 |> add((2 |> negate()))\n"},
		{"condition", ast.NewStatement("c", ast.NewCondition(
			ast.NewStatement("", ast.NewBoolean(true)), num(1), num(2))),
			"c = if true then 1 else 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Print([]*ast.Statement{tt.stmt}, false); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintOperation(t *testing.T) {
	n := ast.NewParameter("n", typesystem.Number)
	body := ast.NewStatement("", ast.NewReferenceData(n, typesystem.Number), ast.NewCall("add", num(1)))
	inc := ast.NewStatement("inc", ast.NewOperation([]*ast.Statement{n}, []*ast.Statement{body}))
	want := "inc = (n: number) => {\n    n |> add(1)\n}\n"
	if got := Print([]*ast.Statement{inc}, false); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintResults(t *testing.T) {
	a := ast.NewStatement("a", ast.NewNumber(10))
	x := ast.NewStatement("x", ast.NewReferenceData(a, typesystem.Number), ast.NewCall("divide", num(0)))
	en := propagation.New(evaluator.New(), zerolog.Nop(), nil)
	stmts, _ := en.Reconcile([]*ast.Statement{a, x}, nil)

	out := Print(stmts, true)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasSuffix(lines[0], "// number: 10") {
		t.Errorf("line 1 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "error: ") {
		t.Errorf("line 2 = %q", lines[1])
	}
}

func TestLongChainWraps(t *testing.T) {
	s := ast.NewStatement("averyveryverylongname", ast.NewString(strings.Repeat("x", 40)),
		ast.NewCall("concat", ast.NewStatement("", ast.NewString(strings.Repeat("y", 40)))))
	p := NewCodePrinterWithWidth(60)
	p.PrintStatements([]*ast.Statement{s})
	if !strings.Contains(p.String(), "\n    |> concat(") {
		t.Errorf("expected wrapped chain:\n%s", p.String())
	}
}
