package document

import (
	"errors"
	"fmt"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/typesystem"
)

// Payload kinds of a wire value.
const (
	valueUndefined = "undefined"
	valueString    = "string"
	valueNumber    = "number"
	valueBoolean   = "boolean"
	valueArray     = "array"
	valueObject    = "object"
	valueOperation = "operation"
	valueCondition = "condition"
	valueError     = "error"
)

type wireDocument struct {
	Name       string           `json:"name" yaml:"name"`
	Operations []*wireStatement `json:"operations" yaml:"operations"`
}

type wireStatement struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	Data       *wireData   `json:"data" yaml:"data"`
	Operations []*wireCall `json:"operations,omitempty" yaml:"operations,omitempty"`
}

type wireCall struct {
	ID         string           `json:"id" yaml:"id"`
	Name       string           `json:"name" yaml:"name"`
	Type       *typesystem.Wire `json:"type,omitempty" yaml:"type,omitempty"`
	Parameters []*wireStatement `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Result     *wireData        `json:"result,omitempty" yaml:"result,omitempty"`
}

type wireReference struct {
	ID   string           `json:"id" yaml:"id"`
	Name string           `json:"name" yaml:"name"`
	Type *typesystem.Wire `json:"type,omitempty" yaml:"type,omitempty"`
}

type wireProperty struct {
	Key   string         `json:"key" yaml:"key"`
	Value *wireStatement `json:"value" yaml:"value"`
}

type wireValue struct {
	Kind       string           `json:"kind" yaml:"kind"`
	String     *string          `json:"string,omitempty" yaml:"string,omitempty"`
	Number     *float64         `json:"number,omitempty" yaml:"number,omitempty"`
	Boolean    *bool            `json:"boolean,omitempty" yaml:"boolean,omitempty"`
	Elements   []*wireStatement `json:"elements,omitempty" yaml:"elements,omitempty"`
	Properties []*wireProperty  `json:"properties,omitempty" yaml:"properties,omitempty"`
	Parameters []*wireStatement `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Statements []*wireStatement `json:"statements,omitempty" yaml:"statements,omitempty"`
	Test       *wireStatement   `json:"test,omitempty" yaml:"test,omitempty"`
	True       *wireStatement   `json:"whenTrue,omitempty" yaml:"whenTrue,omitempty"`
	False      *wireStatement   `json:"whenFalse,omitempty" yaml:"whenFalse,omitempty"`
	Cached     *wireData        `json:"cached,omitempty" yaml:"cached,omitempty"`
	Reason     string           `json:"reason,omitempty" yaml:"reason,omitempty"`
}

type wireData struct {
	ID             string           `json:"id" yaml:"id"`
	Type           *typesystem.Wire `json:"type" yaml:"type"`
	Value          *wireValue       `json:"value" yaml:"value"`
	IsGeneric      bool             `json:"isGeneric,omitempty" yaml:"isGeneric,omitempty"`
	IsTypeEditable bool             `json:"isTypeEditable,omitempty" yaml:"isTypeEditable,omitempty"`
	Reference      *wireReference   `json:"reference,omitempty" yaml:"reference,omitempty"`
}

func encodeStatements(stmts []*ast.Statement) []*wireStatement {
	if len(stmts) == 0 {
		return nil
	}
	out := make([]*wireStatement, len(stmts))
	for i, s := range stmts {
		out[i] = encodeStatement(s)
	}
	return out
}

func encodeStatement(s *ast.Statement) *wireStatement {
	if s == nil {
		return nil
	}
	w := &wireStatement{ID: s.ID, Name: s.Name, Data: encodeData(s.Data)}
	for _, c := range s.Operations {
		wc := &wireCall{ID: c.ID, Name: c.Name, Parameters: encodeStatements(c.Parameters), Result: encodeData(c.Result)}
		if c.Type != nil {
			wc.Type = typesystem.Encode(c.Type)
		}
		w.Operations = append(w.Operations, wc)
	}
	return w
}

func encodeData(d *ast.Data) *wireData {
	if d == nil {
		return nil
	}
	w := &wireData{
		ID:             d.ID,
		Type:           typesystem.Encode(d.Type),
		Value:          encodeValue(d.Value),
		IsGeneric:      d.IsGeneric,
		IsTypeEditable: d.IsTypeEditable,
	}
	if r := d.Reference; r != nil {
		w.Reference = &wireReference{ID: r.ID, Name: r.Name}
		if r.Type != nil {
			w.Reference.Type = typesystem.Encode(r.Type)
		}
	}
	return w
}

func encodeValue(v ast.Value) *wireValue {
	switch vv := v.(type) {
	case *ast.StringLit:
		s := vv.Value
		return &wireValue{Kind: valueString, String: &s}
	case *ast.NumberLit:
		n := vv.Value
		return &wireValue{Kind: valueNumber, Number: &n}
	case *ast.BooleanLit:
		b := vv.Value
		return &wireValue{Kind: valueBoolean, Boolean: &b}
	case *ast.Array:
		return &wireValue{Kind: valueArray, Elements: encodeStatements(vv.Elements)}
	case *ast.Object:
		w := &wireValue{Kind: valueObject}
		for _, p := range vv.Properties {
			w.Properties = append(w.Properties, &wireProperty{Key: p.Key, Value: encodeStatement(p.Value)})
		}
		return w
	case *ast.Operation:
		return &wireValue{Kind: valueOperation, Parameters: encodeStatements(vv.Parameters), Statements: encodeStatements(vv.Statements)}
	case *ast.Condition:
		return &wireValue{
			Kind:   valueCondition,
			Test:   encodeStatement(vv.Test),
			True:   encodeStatement(vv.True),
			False:  encodeStatement(vv.False),
			Cached: encodeData(vv.Cached),
		}
	case *ast.Error:
		return &wireValue{Kind: valueError, Reason: vv.Reason}
	}
	return &wireValue{Kind: valueUndefined}
}

func decodeStatements(ws []*wireStatement) ([]*ast.Statement, error) {
	if len(ws) == 0 {
		return nil, nil
	}
	out := make([]*ast.Statement, len(ws))
	for i, w := range ws {
		s, err := decodeStatement(w)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func decodeStatement(w *wireStatement) (*ast.Statement, error) {
	if w == nil {
		return nil, errors.New("missing statement")
	}
	if w.ID == "" {
		return nil, fmt.Errorf("statement %q has no id", w.Name)
	}
	data, err := decodeData(w.Data)
	if err != nil {
		return nil, fmt.Errorf("statement %s: %w", w.ID, err)
	}
	if data == nil {
		data = ast.NewUndefined()
	}
	s := &ast.Statement{ID: w.ID, Name: w.Name, Data: data}
	for _, wc := range w.Operations {
		c := &ast.Call{ID: wc.ID, Name: wc.Name}
		if wc.Type != nil {
			if c.Type, err = typesystem.Decode(wc.Type); err != nil {
				return nil, fmt.Errorf("call %s: %w", wc.ID, err)
			}
		}
		if c.Parameters, err = decodeStatements(wc.Parameters); err != nil {
			return nil, fmt.Errorf("call %s: %w", wc.ID, err)
		}
		if c.Result, err = decodeData(wc.Result); err != nil {
			return nil, fmt.Errorf("call %s: %w", wc.ID, err)
		}
		s.Operations = append(s.Operations, c)
	}
	return s, nil
}

func decodeData(w *wireData) (*ast.Data, error) {
	if w == nil {
		return nil, nil
	}
	t, err := typesystem.Decode(w.Type)
	if err != nil {
		return nil, err
	}
	v, err := decodeValue(w.Value)
	if err != nil {
		return nil, err
	}
	if !ast.Holds(t, v) {
		return nil, fmt.Errorf("data %s: %s value declared as %s", w.ID, ast.InferType(v).Kind(), t)
	}
	d := &ast.Data{ID: w.ID, Type: t, Value: v, IsGeneric: w.IsGeneric, IsTypeEditable: w.IsTypeEditable}
	if d.ID == "" {
		d.ID = ast.NewID()
	}
	if r := w.Reference; r != nil {
		d.Reference = &ast.Reference{ID: r.ID, Name: r.Name}
		if r.Type != nil {
			if d.Reference.Type, err = typesystem.Decode(r.Type); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

func decodeValue(w *wireValue) (ast.Value, error) {
	if w == nil {
		return &ast.Undefined{}, nil
	}
	var err error
	switch w.Kind {
	case valueUndefined, "":
		return &ast.Undefined{}, nil
	case valueString:
		if w.String == nil {
			return &ast.StringLit{}, nil
		}
		return &ast.StringLit{Value: *w.String}, nil
	case valueNumber:
		if w.Number == nil {
			return &ast.NumberLit{}, nil
		}
		return &ast.NumberLit{Value: *w.Number}, nil
	case valueBoolean:
		return &ast.BooleanLit{Value: w.Boolean != nil && *w.Boolean}, nil
	case valueArray:
		arr := &ast.Array{}
		arr.Elements, err = decodeStatements(w.Elements)
		return arr, err
	case valueObject:
		obj := &ast.Object{}
		for _, p := range w.Properties {
			s, err := decodeStatement(p.Value)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", p.Key, err)
			}
			obj.Properties = append(obj.Properties, &ast.Property{Key: p.Key, Value: s})
		}
		return obj, nil
	case valueOperation:
		op := &ast.Operation{}
		if op.Parameters, err = decodeStatements(w.Parameters); err != nil {
			return nil, err
		}
		op.Statements, err = decodeStatements(w.Statements)
		return op, err
	case valueCondition:
		c := &ast.Condition{}
		if c.Test, err = decodeStatement(w.Test); err != nil {
			return nil, err
		}
		if c.True, err = decodeStatement(w.True); err != nil {
			return nil, err
		}
		if c.False, err = decodeStatement(w.False); err != nil {
			return nil, err
		}
		c.Cached, err = decodeData(w.Cached)
		return c, err
	case valueError:
		return &ast.Error{Reason: w.Reason}, nil
	}
	return nil, fmt.Errorf("unknown value kind %q", w.Kind)
}
