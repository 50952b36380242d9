package document

import (
	"fmt"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/typesystem"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ExportResults renders the cached result of every top-level statement, and
// of every statement in an operation body, as a protobuf Struct:
//
//	{name, statements: [{id, name, type, result, body?}]}
func ExportResults(doc *Document) (*structpb.Struct, error) {
	stmts, err := exportStatements(doc.Operations)
	if err != nil {
		return nil, err
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"name":       structpb.NewStringValue(doc.Name),
		"statements": structpb.NewListValue(stmts),
	}}, nil
}

// ExportJSON renders ExportResults with protojson.
func ExportJSON(doc *Document) ([]byte, error) {
	s, err := ExportResults(doc)
	if err != nil {
		return nil, err
	}
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
}

func exportStatements(stmts []*ast.Statement) (*structpb.ListValue, error) {
	list := &structpb.ListValue{}
	for _, s := range stmts {
		result := s.Result()
		v, err := ToValue(result)
		if err != nil {
			return nil, fmt.Errorf("statement %s: %w", s.ID, err)
		}
		fields := map[string]*structpb.Value{
			"id":     structpb.NewStringValue(s.ID),
			"type":   structpb.NewStringValue(typeName(result)),
			"result": v,
		}
		if s.Name != "" {
			fields["name"] = structpb.NewStringValue(s.Name)
		}
		if op, ok := s.Data.Value.(*ast.Operation); ok && len(s.Operations) == 0 {
			body, err := exportStatements(op.Statements)
			if err != nil {
				return nil, err
			}
			fields["body"] = structpb.NewListValue(body)
		}
		list.Values = append(list.Values, structpb.NewStructValue(&structpb.Struct{Fields: fields}))
	}
	return list, nil
}

func typeName(d *ast.Data) string {
	if d == nil || d.Type == nil {
		return string(typesystem.KindUndefined)
	}
	return d.Type.String()
}

// ToValue converts a value node to a protobuf Value. Operations render as
// their signature and errors as {error, kind}.
func ToValue(d *ast.Data) (*structpb.Value, error) {
	if d == nil {
		return structpb.NewNullValue(), nil
	}
	switch v := d.Value.(type) {
	case nil, *ast.Undefined:
		return structpb.NewNullValue(), nil
	case *ast.StringLit:
		return structpb.NewStringValue(v.Value), nil
	case *ast.NumberLit:
		return structpb.NewNumberValue(v.Value), nil
	case *ast.BooleanLit:
		return structpb.NewBoolValue(v.Value), nil
	case *ast.Array:
		list := &structpb.ListValue{}
		for _, el := range v.Elements {
			ev, err := ToValue(el.Result())
			if err != nil {
				return nil, err
			}
			list.Values = append(list.Values, ev)
		}
		return structpb.NewListValue(list), nil
	case *ast.Object:
		obj := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(v.Properties))}
		for _, p := range v.Properties {
			pv, err := ToValue(p.Value.Result())
			if err != nil {
				return nil, err
			}
			obj.Fields[p.Key] = pv
		}
		return structpb.NewStructValue(obj), nil
	case *ast.Operation:
		return structpb.NewStringValue(typeName(d)), nil
	case *ast.Condition:
		return ToValue(v.Cached)
	case *ast.Error:
		kind := ""
		if te, ok := d.Type.(typesystem.TError); ok {
			kind = te.ErrorKind
		}
		return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"error": structpb.NewStringValue(v.Reason),
			"kind":  structpb.NewStringValue(kind),
		}}), nil
	}
	return nil, fmt.Errorf("cannot export %T", d.Value)
}
