package evaluator

import (
	"strings"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/typesystem"
)

func param(name string, t typesystem.Type) typesystem.Param {
	return typesystem.Param{Name: name, Type: t}
}

func subject(t typesystem.Type) typesystem.Param {
	return param("subject", t)
}

func numberArg(d *ast.Data) (float64, bool) {
	n, ok := d.Value.(*ast.NumberLit)
	if !ok {
		return 0, false
	}
	return n.Value, true
}

func stringArg(d *ast.Data) (string, bool) {
	s, ok := d.Value.(*ast.StringLit)
	if !ok {
		return "", false
	}
	return s.Value, true
}

func booleanArg(d *ast.Data) (bool, bool) {
	b, ok := d.Value.(*ast.BooleanLit)
	if !ok {
		return false, false
	}
	return b.Value, true
}

func arrayArg(d *ast.Data) (*ast.Array, bool) {
	a, ok := d.Value.(*ast.Array)
	return a, ok
}

func objectArg(d *ast.Data) (*ast.Object, bool) {
	o, ok := d.Value.(*ast.Object)
	return o, ok
}

func typeMismatch(want typesystem.Kind, got *ast.Data) *ast.Data {
	return newError(typesystem.ErrorKindType, "expected %s, got %s", want, got.Type)
}

// elemType returns the element type of an array value, unknown otherwise.
func elemType(d *ast.Data) typesystem.Type {
	if t, ok := d.Type.(typesystem.TArray); ok && t.Elem != nil {
		return t.Elem
	}
	return typesystem.Unknown
}

// element reads the current value held by a nested statement.
func element(s *ast.Statement) *ast.Data {
	if r := s.Result(); r != nil {
		return r
	}
	return ast.NewUndefined()
}

// wrap turns a computed value into a statement for a new container.
func wrap(d *ast.Data) *ast.Statement {
	return ast.NewStatement("", d)
}

// Display renders a value as plain text: strings unquoted, containers in
// literal form.
func Display(d *ast.Data) string {
	if d == nil || d.Value == nil {
		return "undefined"
	}
	switch v := d.Value.(type) {
	case *ast.StringLit:
		return v.Value
	case *ast.Array:
		parts := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			parts[i] = element(el).Value.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.Object:
		parts := make([]string, len(v.Properties))
		for i, p := range v.Properties {
			parts[i] = p.Key + ": " + element(p.Value).Value.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return d.Value.String()
}

// Reason returns the message of an error value, "" for any other value.
func Reason(d *ast.Data) string {
	if d == nil {
		return ""
	}
	if e, ok := d.Value.(*ast.Error); ok {
		return e.Reason
	}
	return ""
}
