package typesystem

import "fmt"

// Wire is the serializable form of a Type shared by the JSON and YAML codecs.
type Wire struct {
	Kind       string      `json:"kind" yaml:"kind"`
	Elem       *Wire       `json:"elementType,omitempty" yaml:"elementType,omitempty"`
	Fields     []WireField `json:"properties,omitempty" yaml:"properties,omitempty"`
	Types      []*Wire     `json:"types,omitempty" yaml:"types,omitempty"`
	Params     []WireParam `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Result     *Wire       `json:"result,omitempty" yaml:"result,omitempty"`
	ErrorKind  string      `json:"errorKind,omitempty" yaml:"errorKind,omitempty"`
	IsEditable bool        `json:"isEditable,omitempty" yaml:"isEditable,omitempty"`
}

type WireField struct {
	Name string `json:"name" yaml:"name"`
	Type *Wire  `json:"type" yaml:"type"`
}

type WireParam struct {
	Name           string `json:"name,omitempty" yaml:"name,omitempty"`
	Type           *Wire  `json:"type" yaml:"type"`
	IsTypeEditable bool   `json:"isTypeEditable,omitempty" yaml:"isTypeEditable,omitempty"`
}

// Encode converts a Type to its wire form.
func Encode(t Type) *Wire {
	t = orUndefined(t)
	w := &Wire{Kind: string(t.Kind())}
	switch tt := t.(type) {
	case TArray:
		w.Elem = Encode(tt.Elem)
	case TObject:
		for _, f := range tt.Fields {
			w.Fields = append(w.Fields, WireField{Name: f.Name, Type: Encode(f.Type)})
		}
	case TUnion:
		for _, m := range tt.Types {
			w.Types = append(w.Types, Encode(m))
		}
		w.IsEditable = tt.IsEditable
	case TOperation:
		for _, p := range tt.Params {
			w.Params = append(w.Params, WireParam{Name: p.Name, Type: Encode(p.Type), IsTypeEditable: p.IsTypeEditable})
		}
		w.Result = Encode(tt.Result)
	case TCondition:
		w.Result = Encode(tt.Result)
	case TError:
		w.ErrorKind = tt.ErrorKind
	}
	return w
}

// Decode rebuilds a Type from its wire form.
func Decode(w *Wire) (Type, error) {
	if w == nil {
		return Undefined, nil
	}
	k, err := ParseKind(w.Kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case KindUndefined, KindString, KindNumber, KindBoolean, KindUnknown:
		return TPrimitive{K: k}, nil
	case KindArray:
		elem, err := Decode(w.Elem)
		if err != nil {
			return nil, fmt.Errorf("array element: %w", err)
		}
		return TArray{Elem: elem}, nil
	case KindObject:
		obj := TObject{}
		for _, f := range w.Fields {
			ft, err := Decode(f.Type)
			if err != nil {
				return nil, fmt.Errorf("property %s: %w", f.Name, err)
			}
			obj.Fields = append(obj.Fields, Field{Name: f.Name, Type: ft})
		}
		return obj, nil
	case KindUnion:
		members := make([]Type, 0, len(w.Types))
		for _, m := range w.Types {
			mt, err := Decode(m)
			if err != nil {
				return nil, fmt.Errorf("union member: %w", err)
			}
			members = append(members, mt)
		}
		return ResolveUnion(members, w.IsEditable), nil
	case KindOperation:
		op := TOperation{}
		for _, p := range w.Params {
			pt, err := Decode(p.Type)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
			}
			op.Params = append(op.Params, Param{Name: p.Name, Type: pt, IsTypeEditable: p.IsTypeEditable})
		}
		res, err := Decode(w.Result)
		if err != nil {
			return nil, fmt.Errorf("operation result: %w", err)
		}
		op.Result = res
		return op, nil
	case KindCondition:
		res, err := Decode(w.Result)
		if err != nil {
			return nil, fmt.Errorf("condition result: %w", err)
		}
		return TCondition{Result: res}, nil
	case KindError:
		return TError{ErrorKind: w.ErrorKind}, nil
	}
	return nil, NewUnknownKindError(w.Kind)
}
