package ast

import (
	"github.com/funvibe/chainlang/internal/typesystem"
)

// DefaultData builds the default value of a declared type: empty string, zero,
// false, empty containers, an operation with default parameters and an empty
// body, or the default of a union's first member.
func DefaultData(t typesystem.Type) *Data {
	if t == nil {
		return NewUndefined()
	}
	d := &Data{ID: NewID(), Type: t}
	switch tt := t.(type) {
	case typesystem.TPrimitive:
		switch tt.K {
		case typesystem.KindString:
			d.Value = &StringLit{}
		case typesystem.KindNumber:
			d.Value = &NumberLit{}
		case typesystem.KindBoolean:
			d.Value = &BooleanLit{}
		case typesystem.KindUnknown:
			d.Type = typesystem.Undefined
			d.Value = &Undefined{}
			d.IsGeneric = true
		default:
			d.Value = &Undefined{}
		}
	case typesystem.TArray:
		d.Value = &Array{}
	case typesystem.TObject:
		obj := &Object{}
		for _, f := range tt.Fields {
			obj.Properties = append(obj.Properties, &Property{Key: f.Name, Value: NewStatement("", DefaultData(f.Type))})
		}
		d.Value = obj
	case typesystem.TUnion:
		if len(tt.Types) == 0 {
			d.Type = typesystem.Undefined
			d.Value = &Undefined{}
			break
		}
		d.Value = DefaultData(tt.Types[0]).Value
	case typesystem.TOperation:
		op := &Operation{}
		for _, p := range tt.Params {
			param := NewParameter(p.Name, p.Type)
			param.Data.IsTypeEditable = p.IsTypeEditable
			op.Parameters = append(op.Parameters, param)
		}
		d.Value = op
	case typesystem.TCondition:
		d.Value = &Condition{
			Test:  NewStatement("", NewBoolean(false)),
			True:  NewStatement("", DefaultData(tt.Result)),
			False: NewStatement("", DefaultData(tt.Result)),
		}
	case typesystem.TError:
		d.Value = &Error{}
	default:
		d.Type = typesystem.Undefined
		d.Value = &Undefined{}
	}
	return d
}

// InferType derives a type from a value. Nested statements contribute their
// cached results, so the value must come from a reconciled tree.
func InferType(v Value) typesystem.Type {
	switch vv := v.(type) {
	case nil, *Undefined:
		return typesystem.Undefined
	case *StringLit:
		return typesystem.String
	case *NumberLit:
		return typesystem.Number
	case *BooleanLit:
		return typesystem.Boolean
	case *Array:
		members := make([]typesystem.Type, 0, len(vv.Elements))
		for _, el := range vv.Elements {
			members = append(members, resultType(el))
		}
		return typesystem.TArray{Elem: typesystem.ResolveUnion(members, false)}
	case *Object:
		obj := typesystem.TObject{}
		for _, p := range vv.Properties {
			obj.Fields = append(obj.Fields, typesystem.Field{Name: p.Key, Type: resultType(p.Value)})
		}
		return obj
	case *Operation:
		op := typesystem.TOperation{Result: typesystem.Undefined}
		for _, p := range vv.Parameters {
			op.Params = append(op.Params, typesystem.Param{
				Name:           p.Name,
				Type:           declaredType(p.Data),
				IsTypeEditable: p.Data != nil && p.Data.IsTypeEditable,
			})
		}
		if n := len(vv.Statements); n > 0 {
			op.Result = resultType(vv.Statements[n-1])
		}
		return op
	case *Condition:
		return typesystem.TCondition{Result: typesystem.ResolveUnion([]typesystem.Type{
			resultType(vv.True), resultType(vv.False),
		}, true)}
	case *Error:
		// A bare error value is one the user wrote; faults carry their own kind.
		return typesystem.TError{ErrorKind: typesystem.ErrorKindUser}
	}
	return typesystem.Undefined
}

func resultType(s *Statement) typesystem.Type {
	if s == nil {
		return typesystem.Undefined
	}
	return declaredType(s.Result())
}

func declaredType(d *Data) typesystem.Type {
	if d == nil || d.Type == nil {
		return typesystem.Undefined
	}
	return d.Type
}

// Holds reports whether a payload of v's shape can stand for type t. Kinds
// must agree; a union accepts the kind of any member and unknown accepts
// everything.
func Holds(t typesystem.Type, v Value) bool {
	if t == nil {
		return true
	}
	kind := InferType(v).Kind()
	for _, m := range typesystem.Members(t) {
		if m.Kind() == typesystem.KindUnknown || m.Kind() == kind {
			return true
		}
	}
	return false
}

// Concrete returns the type of what d currently holds. A union-typed value
// reports the member it holds and containers are rebuilt from the concrete
// types of their elements. Empty containers keep their declared type.
func Concrete(d *Data) typesystem.Type {
	if d == nil {
		return typesystem.Undefined
	}
	switch v := d.Value.(type) {
	case nil, *Undefined, *StringLit, *NumberLit, *BooleanLit:
		return InferType(d.Value)
	case *Array:
		if len(v.Elements) == 0 {
			if _, ok := d.Type.(typesystem.TArray); ok {
				return d.Type
			}
			return InferType(v)
		}
		members := make([]typesystem.Type, 0, len(v.Elements))
		for _, el := range v.Elements {
			members = append(members, Concrete(el.Result()))
		}
		return typesystem.TArray{Elem: typesystem.ResolveUnion(members, false)}
	case *Object:
		obj := typesystem.TObject{}
		for _, p := range v.Properties {
			obj.Fields = append(obj.Fields, typesystem.Field{Name: p.Key, Type: Concrete(p.Value.Result())})
		}
		return obj
	}
	if d.Type != nil && d.Type.Kind() != typesystem.KindUnion {
		return d.Type
	}
	return InferType(d.Value)
}
