package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/evaluator"
)

// --- Code Printer (Output looks like source code) ---

// CodePrinter renders statement trees as readable chain code:
//
//	total = price
//	    |> multiply(qty)
//	    |> greaterThan(100)   // boolean: true
type CodePrinter struct {
	buf         bytes.Buffer
	indent      int
	lineWidth   int  // max line width (0 = unlimited)
	column      int  // current column position
	showResults bool // append "// type: result" after top-level statements
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{indent: 0, lineWidth: 100, column: 0}
}

func NewCodePrinterWithWidth(width int) *CodePrinter {
	return &CodePrinter{indent: 0, lineWidth: width, column: 0}
}

func (p *CodePrinter) SetLineWidth(width int) {
	p.lineWidth = width
}

// ShowResults toggles the trailing result annotation.
func (p *CodePrinter) ShowResults(on bool) {
	p.showResults = on
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

// Print renders a statement list, one statement per line.
func Print(stmts []*ast.Statement, results bool) string {
	p := NewCodePrinter()
	p.ShowResults(results)
	p.PrintStatements(stmts)
	return p.String()
}

// PrintStatements renders stmts at the current indentation.
func (p *CodePrinter) PrintStatements(stmts []*ast.Statement) {
	for _, s := range stmts {
		p.writeIndent()
		s.Accept(p)
		if p.showResults {
			p.annotate(s.Result())
		}
		p.writeln()
	}
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
	p.column = p.indent * 4
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
	// Track column position
	if idx := strings.LastIndex(s, "\n"); idx != -1 {
		p.column = len(s) - idx - 1
	} else {
		p.column += len(s)
	}
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
	p.column = 0
}

func (p *CodePrinter) annotate(d *ast.Data) {
	t := "undefined"
	if d != nil && d.Type != nil {
		t = d.Type.String()
	}
	text := evaluator.Display(d)
	if r := evaluator.Reason(d); r != "" {
		text = "error: " + r
	}
	p.write("   // " + t + ": " + text)
}

func (p *CodePrinter) VisitStatement(s *ast.Statement) {
	if s == nil {
		p.write("<???>")
		return
	}
	if s.Name != "" {
		p.write(s.Name + " = ")
	}
	if s.Data != nil {
		s.Data.Accept(p)
	} else {
		p.write("<???>")
	}

	// Chains of two or more calls put each link on its own line
	if len(s.Operations) >= 2 || (p.lineWidth > 0 && p.column+p.chainWidth(s) > p.lineWidth) {
		p.indent++
		for _, c := range s.Operations {
			p.writeln()
			p.writeIndent()
			p.write("|> ")
			c.Accept(p)
		}
		p.indent--
		return
	}
	for _, c := range s.Operations {
		p.write(" |> ")
		c.Accept(p)
	}
}

// chainWidth estimates the width of s's calls printed on one line.
func (p *CodePrinter) chainWidth(s *ast.Statement) int {
	if len(s.Operations) == 0 {
		return 0
	}
	sub := &CodePrinter{}
	for _, c := range s.Operations {
		sub.write(" |> ")
		c.Accept(sub)
	}
	return sub.buf.Len()
}

func (p *CodePrinter) VisitCall(c *ast.Call) {
	if c == nil {
		p.write("<???>")
		return
	}
	p.write(c.Name + "(")
	for i, param := range c.Parameters {
		if i > 0 {
			p.write(", ")
		}
		p.inline(param)
	}
	p.write(")")
}

// inline prints a nested statement without a line break.
func (p *CodePrinter) inline(s *ast.Statement) {
	if s == nil {
		p.write("<???>")
		return
	}
	if len(s.Operations) == 0 {
		s.Accept(p)
		return
	}
	p.write("(")
	if s.Data != nil {
		s.Data.Accept(p)
	}
	for _, c := range s.Operations {
		p.write(" |> ")
		c.Accept(p)
	}
	p.write(")")
}

func (p *CodePrinter) VisitData(d *ast.Data) {
	if d == nil {
		p.write("undefined")
		return
	}
	if d.Reference != nil {
		p.write(d.Reference.Name)
		return
	}
	switch v := d.Value.(type) {
	case nil, *ast.Undefined:
		p.write("undefined")
	case *ast.StringLit:
		p.write(strconv.Quote(v.Value))
	case *ast.NumberLit, *ast.BooleanLit:
		p.write(v.String())
	case *ast.Array:
		p.printArray(v)
	case *ast.Object:
		p.printObject(v)
	case *ast.Operation:
		p.printOperation(v)
	case *ast.Condition:
		p.write("if ")
		p.inline(v.Test)
		p.write(" then ")
		p.inline(v.True)
		p.write(" else ")
		p.inline(v.False)
	case *ast.Error:
		p.write("error(" + strconv.Quote(v.Reason) + ")")
	default:
		p.write("<???>")
	}
}

func (p *CodePrinter) printArray(a *ast.Array) {
	if len(a.Elements) > 5 {
		// Multiline for large arrays
		p.write("[\n")
		p.indent++
		for i, el := range a.Elements {
			p.writeIndent()
			p.inline(el)
			if i < len(a.Elements)-1 {
				p.write(",")
			}
			p.writeln()
		}
		p.indent--
		p.writeIndent()
		p.write("]")
		return
	}
	p.write("[")
	for i, el := range a.Elements {
		if i > 0 {
			p.write(", ")
		}
		p.inline(el)
	}
	p.write("]")
}

func (p *CodePrinter) printObject(o *ast.Object) {
	if len(o.Properties) == 0 {
		p.write("{}")
		return
	}
	p.write("{ ")
	for i, prop := range o.Properties {
		if i > 0 {
			p.write(", ")
		}
		p.write(prop.Key + ": ")
		p.inline(prop.Value)
	}
	p.write(" }")
}

func (p *CodePrinter) printOperation(o *ast.Operation) {
	p.write("(")
	for i, param := range o.Parameters {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Name)
		if param.Data != nil && param.Data.Type != nil {
			p.write(": " + param.Data.Type.String())
		}
	}
	p.write(") => {")
	if len(o.Statements) == 0 {
		p.write("}")
		return
	}
	p.writeln()
	p.indent++
	saved := p.showResults
	p.showResults = false
	p.PrintStatements(o.Statements)
	p.showResults = saved
	p.indent--
	p.writeIndent()
	p.write("}")
}
