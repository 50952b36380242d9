package typesystem

import (
	"strings"
)

// Type is the interface for all types in our system.
type Type interface {
	String() string
	Kind() Kind
}

// TPrimitive covers the shapes without structure: undefined, string, number,
// boolean and the unknown wildcard.
type TPrimitive struct {
	K Kind
}

func (t TPrimitive) Kind() Kind     { return t.K }
func (t TPrimitive) String() string { return string(t.K) }

var (
	Undefined = TPrimitive{K: KindUndefined}
	String    = TPrimitive{K: KindString}
	Number    = TPrimitive{K: KindNumber}
	Boolean   = TPrimitive{K: KindBoolean}
	Unknown   = TPrimitive{K: KindUnknown}
)

// TArray represents a homogeneous list (e.g. number[]).
type TArray struct {
	Elem Type
}

func (t TArray) Kind() Kind { return KindArray }

func (t TArray) String() string {
	elem := orUndefined(t.Elem).String()
	if _, ok := t.Elem.(TUnion); ok {
		elem = "(" + elem + ")"
	}
	return elem + "[]"
}

// Field is one named property of an object type.
type Field struct {
	Name string
	Type Type
}

// TObject represents a record with an ordered set of named properties.
type TObject struct {
	Fields []Field
}

func (t TObject) Kind() Kind { return KindObject }

func (t TObject) String() string {
	parts := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		parts = append(parts, f.Name+": "+orUndefined(f.Type).String())
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// Field looks up a property type by name.
func (t TObject) Field(name string) (Type, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// TUnion represents a union type (e.g. number | string).
// Types are canonical: flattened and deduplicated, in first-occurrence order.
// Build it with ResolveUnion rather than directly.
type TUnion struct {
	Types      []Type // At least 2 types
	IsEditable bool   // The user may still add members
}

func (t TUnion) Kind() Kind { return KindUnion }

func (t TUnion) String() string {
	parts := []string{}
	for _, typ := range t.Types {
		parts = append(parts, typ.String())
	}
	return strings.Join(parts, " | ")
}

// Param is one declared parameter of an operation type.
type Param struct {
	Name           string
	Type           Type
	IsTypeEditable bool
}

// TOperation represents a callable (e.g. (x: number, y: number) => number).
// Params includes the subject the operation is chained onto as its first element.
type TOperation struct {
	Params []Param
	Result Type
}

func (t TOperation) Kind() Kind { return KindOperation }

func (t TOperation) String() string {
	parts := make([]string, 0, len(t.Params))
	for _, p := range t.Params {
		if p.Name != "" {
			parts = append(parts, p.Name+": "+orUndefined(p.Type).String())
		} else {
			parts = append(parts, orUndefined(p.Type).String())
		}
	}
	return "(" + strings.Join(parts, ", ") + ") => " + orUndefined(t.Result).String()
}

// TCondition is the type of a branching node; Result is the union of both branches.
type TCondition struct {
	Result Type
}

func (t TCondition) Kind() Kind { return KindCondition }

func (t TCondition) String() string {
	return "condition<" + orUndefined(t.Result).String() + ">"
}

// TError is the type of a first-class error value.
type TError struct {
	ErrorKind string
}

func (t TError) Kind() Kind { return KindError }

func (t TError) String() string {
	if t.ErrorKind == "" {
		return "error"
	}
	return "error<" + t.ErrorKind + ">"
}

func orUndefined(t Type) Type {
	if t == nil {
		return Undefined
	}
	return t
}

// Members returns the members of a union, or the type itself as a single member.
func Members(t Type) []Type {
	if u, ok := t.(TUnion); ok {
		return u.Types
	}
	return []Type{orUndefined(t)}
}

// Equal reports structural identity. Unlike IsCompatible it treats unknown as a
// distinct shape and compares unions member by member in order.
func Equal(a, b Type) bool {
	a, b = orUndefined(a), orUndefined(b)
	if a.Kind() != b.Kind() {
		return false
	}
	switch ta := a.(type) {
	case TPrimitive:
		return true
	case TArray:
		return Equal(ta.Elem, b.(TArray).Elem)
	case TObject:
		tb := b.(TObject)
		if len(ta.Fields) != len(tb.Fields) {
			return false
		}
		for i, f := range ta.Fields {
			if f.Name != tb.Fields[i].Name || !Equal(f.Type, tb.Fields[i].Type) {
				return false
			}
		}
		return true
	case TUnion:
		tb := b.(TUnion)
		if len(ta.Types) != len(tb.Types) {
			return false
		}
		for i := range ta.Types {
			if !Equal(ta.Types[i], tb.Types[i]) {
				return false
			}
		}
		return true
	case TOperation:
		tb := b.(TOperation)
		if len(ta.Params) != len(tb.Params) {
			return false
		}
		for i := range ta.Params {
			if !Equal(ta.Params[i].Type, tb.Params[i].Type) {
				return false
			}
		}
		return Equal(ta.Result, tb.Result)
	case TCondition:
		return Equal(ta.Result, b.(TCondition).Result)
	case TError:
		return ta.ErrorKind == b.(TError).ErrorKind
	}
	return false
}

// ResolveUnion creates a canonical union type.
// It flattens nested unions and removes structural duplicates, keeping the first
// occurrence of each member. A single remaining member is returned directly and
// an empty input resolves to undefined.
func ResolveUnion(types []Type, editable bool) Type {
	flat := []Type{}
	for _, t := range types {
		if t == nil {
			continue
		}
		if u, ok := t.(TUnion); ok {
			flat = append(flat, u.Types...)
		} else {
			flat = append(flat, t)
		}
	}

	unique := []Type{}
	for _, t := range flat {
		dup := false
		for _, seen := range unique {
			if Equal(seen, t) {
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, t)
		}
	}

	switch len(unique) {
	case 0:
		return Undefined
	case 1:
		return unique[0]
	}
	return TUnion{Types: unique, IsEditable: editable}
}

// IsEditable reports whether a type was marked user-extensible.
func IsEditable(t Type) bool {
	u, ok := t.(TUnion)
	return ok && u.IsEditable
}
