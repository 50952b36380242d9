package chainlang

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/funvibe/chainlang/internal/ast"
)

// Marshaller handles conversion between Go and chainlang values.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

// ToValue converts a Go value to a value node.
func (m *Marshaller) ToValue(val interface{}) (*ast.Data, error) {
	if val == nil {
		return ast.NewUndefined(), nil
	}

	// Check if already a value node
	if d, ok := val.(*ast.Data); ok {
		return ast.CloneData(d), nil
	}
	if err, ok := val.(error); ok {
		return ast.NewUserError(err.Error()), nil
	}

	v := reflect.ValueOf(val)
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ast.NewUndefined(), nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ast.NewNumber(float64(v.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ast.NewNumber(float64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return ast.NewNumber(v.Float()), nil
	case reflect.Bool:
		return ast.NewBoolean(v.Bool()), nil
	case reflect.String:
		return ast.NewString(v.String()), nil
	case reflect.Slice, reflect.Array:
		return m.sliceToArray(v)
	case reflect.Map:
		return m.mapToObject(v)
	case reflect.Struct:
		return m.structToObject(v)
	}
	return nil, fmt.Errorf("unsupported Go type %s", v.Type())
}

func (m *Marshaller) sliceToArray(v reflect.Value) (*ast.Data, error) {
	elements := make([]*ast.Statement, v.Len())
	for i := 0; i < v.Len(); i++ {
		val, err := m.ToValue(v.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elements[i] = ast.NewStatement("", val)
	}
	return ast.NewArray(nil, elements...), nil
}

func (m *Marshaller) mapToObject(v reflect.Value) (*ast.Data, error) {
	if v.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("map key must be a string, got %s", v.Type().Key())
	}
	keys := make([]string, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	// Go maps are unordered; objects are not
	sort.Strings(keys)
	props := make([]*ast.Property, len(keys))
	for i, k := range keys {
		val, err := m.ToValue(v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key())).Interface())
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", k, err)
		}
		props[i] = &ast.Property{Key: k, Value: ast.NewStatement("", val)}
	}
	return ast.NewObject(props...), nil
}

func (m *Marshaller) structToObject(v reflect.Value) (*ast.Data, error) {
	t := v.Type()
	var props []*ast.Property
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // Skip unexported fields
			continue
		}
		val, err := m.ToValue(v.Field(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		props = append(props, &ast.Property{Key: field.Name, Value: ast.NewStatement("", val)})
	}
	return ast.NewObject(props...), nil
}

// FromValue converts a value node to a Go value.
// targetType is optional; if provided, tries to convert to that type.
func (m *Marshaller) FromValue(d *ast.Data, targetType reflect.Type) (interface{}, error) {
	if d == nil {
		return nil, nil
	}
	switch v := d.Value.(type) {
	case nil, *ast.Undefined:
		return nil, nil
	case *ast.NumberLit:
		if targetType != nil {
			switch targetType.Kind() {
			case reflect.Int:
				return int(v.Value), nil
			case reflect.Int64:
				return int64(v.Value), nil
			}
		}
		return v.Value, nil
	case *ast.StringLit:
		return v.Value, nil
	case *ast.BooleanLit:
		return v.Value, nil
	case *ast.Array:
		return m.arrayToSlice(v, targetType)
	case *ast.Object:
		return m.objectToMap(v)
	case *ast.Condition:
		return m.FromValue(v.Cached, targetType)
	case *ast.Error:
		return nil, fmt.Errorf("error value: %s", v.Reason)
	}
	return nil, fmt.Errorf("unsupported value for conversion: %s", d.Type)
}

func (m *Marshaller) arrayToSlice(a *ast.Array, targetType reflect.Type) (interface{}, error) {
	// If targetType is nil, default to []interface{}
	elemType := reflect.TypeOf((*interface{})(nil)).Elem()
	if targetType != nil && targetType.Kind() == reflect.Slice {
		elemType = targetType.Elem()
	}

	slice := reflect.MakeSlice(reflect.SliceOf(elemType), 0, len(a.Elements))
	for _, el := range a.Elements {
		val, err := m.FromValue(el.Result(), elemType)
		if err != nil {
			return nil, err
		}
		if val == nil {
			slice = reflect.Append(slice, reflect.Zero(elemType))
			continue
		}
		rv := reflect.ValueOf(val)
		switch {
		case rv.Type().AssignableTo(elemType):
			slice = reflect.Append(slice, rv)
		case rv.Type().ConvertibleTo(elemType):
			slice = reflect.Append(slice, rv.Convert(elemType))
		default:
			return nil, fmt.Errorf("cannot convert %s to %s", rv.Type(), elemType)
		}
	}
	return slice.Interface(), nil
}

func (m *Marshaller) objectToMap(o *ast.Object) (map[string]interface{}, error) {
	result := make(map[string]interface{}, len(o.Properties))
	for _, p := range o.Properties {
		val, err := m.FromValue(p.Value.Result(), nil)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", p.Key, err)
		}
		result[p.Key] = val
	}
	return result, nil
}

