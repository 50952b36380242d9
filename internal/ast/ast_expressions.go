package ast

import (
	"strconv"

	"github.com/funvibe/chainlang/internal/typesystem"
)

// Value is the kind-specific payload of a Data node. The set is closed.
// Composite values hold nested statements, never raw scalars.
type Value interface {
	valueNode()
	String() string
}

type Undefined struct{}

func (*Undefined) valueNode()       {}
func (*Undefined) String() string { return "undefined" }

type StringLit struct {
	Value string
}

func (*StringLit) valueNode()       {}
func (s *StringLit) String() string { return strconv.Quote(s.Value) }

type NumberLit struct {
	Value float64
}

func (*NumberLit) valueNode()       {}
func (n *NumberLit) String() string { return FormatNumber(n.Value) }

type BooleanLit struct {
	Value bool
}

func (*BooleanLit) valueNode()       {}
func (b *BooleanLit) String() string { return strconv.FormatBool(b.Value) }

// Array holds one statement per element.
type Array struct {
	Elements []*Statement
}

func (*Array) valueNode() {}
func (a *Array) String() string {
	out := "["
	for i, el := range a.Elements {
		if i > 0 {
			out += ", "
		}
		out += valueString(el.Result())
	}
	return out + "]"
}

// Property is one ordered entry of an object value.
type Property struct {
	Key   string
	Value *Statement
}

// Object holds an ordered map of properties.
type Object struct {
	Properties []*Property
}

func (*Object) valueNode() {}
func (o *Object) String() string {
	out := "{"
	for i, p := range o.Properties {
		if i > 0 {
			out += ","
		}
		out += " " + p.Key + ": " + valueString(p.Value.Result())
	}
	return out + " }"
}

// Get returns the statement stored under key.
func (o *Object) Get(key string) (*Statement, bool) {
	for _, p := range o.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Operation is a user-defined operation literal. The first parameter binds the
// subject the operation is chained onto; the last body statement is its result.
type Operation struct {
	Parameters []*Statement
	Statements []*Statement
}

func (*Operation) valueNode() {}
func (o *Operation) String() string {
	out := "("
	for i, p := range o.Parameters {
		if i > 0 {
			out += ", "
		}
		out += p.Name
	}
	return out + ") => { ... }"
}

// Condition selects one of two branches from the truthiness of Test.
// Cached holds the value of the selected branch from the last reconciliation.
type Condition struct {
	Test   *Statement
	True   *Statement
	False  *Statement
	Cached *Data
}

func (*Condition) valueNode()       {}
func (c *Condition) String() string { return "if ... then ... else ..." }

// Error is a first-class error value.
type Error struct {
	Reason string
}

func (*Error) valueNode()       {}
func (e *Error) String() string { return "error: " + e.Reason }

func valueString(d *Data) string {
	if d == nil || d.Value == nil {
		return "undefined"
	}
	return d.Value.String()
}

// FormatNumber prints a float64 without a trailing fraction for integral values.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func NewUndefined() *Data {
	return &Data{ID: NewID(), Type: typesystem.Undefined, Value: &Undefined{}}
}

func NewString(s string) *Data {
	return &Data{ID: NewID(), Type: typesystem.String, Value: &StringLit{Value: s}}
}

func NewNumber(f float64) *Data {
	return &Data{ID: NewID(), Type: typesystem.Number, Value: &NumberLit{Value: f}}
}

func NewBoolean(b bool) *Data {
	return &Data{ID: NewID(), Type: typesystem.Boolean, Value: &BooleanLit{Value: b}}
}

// NewError creates an error value of the given error kind.
func NewError(kind, reason string) *Data {
	return &Data{ID: NewID(), Type: typesystem.TError{ErrorKind: kind}, Value: &Error{Reason: reason}}
}

// NewUserError creates an error value raised by the user rather than by a
// fault.
func NewUserError(reason string) *Data {
	return NewError(typesystem.ErrorKindUser, reason)
}

// NewArray creates an array value. The element type is inferred from the
// elements; elem is used when there are none.
func NewArray(elem typesystem.Type, elements ...*Statement) *Data {
	arr := &Array{Elements: elements}
	t := InferType(arr)
	if len(elements) == 0 && elem != nil {
		t = typesystem.TArray{Elem: elem}
	}
	return &Data{ID: NewID(), Type: t, Value: arr}
}

// NewObject creates an object value with properties in the given order.
func NewObject(props ...*Property) *Data {
	obj := &Object{Properties: props}
	return &Data{ID: NewID(), Type: InferType(obj), Value: obj}
}

// NewOperation creates an operation literal. Its signature is derived from the
// parameter statements and the body's last result.
func NewOperation(params []*Statement, body []*Statement) *Data {
	op := &Operation{Parameters: params, Statements: body}
	return &Data{ID: NewID(), Type: InferType(op), Value: op}
}

// NewParameter creates a parameter statement holding the default value of t.
func NewParameter(name string, t typesystem.Type) *Statement {
	return NewStatement(name, DefaultData(t))
}

// NewCondition creates a branching value.
func NewCondition(test, whenTrue, whenFalse *Statement) *Data {
	c := &Condition{Test: test, True: whenTrue, False: whenFalse}
	return &Data{ID: NewID(), Type: InferType(c), Value: c}
}
