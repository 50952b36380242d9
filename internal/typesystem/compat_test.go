package typesystem

import "testing"

func sampleTypes() []Type {
	return []Type{
		Undefined,
		String,
		Number,
		Boolean,
		TArray{Elem: Number},
		TArray{Elem: TArray{Elem: String}},
		TObject{Fields: []Field{{Name: "a", Type: Number}, {Name: "b", Type: String}}},
		TUnion{Types: []Type{Number, String}},
		TOperation{Params: []Param{{Name: "x", Type: Number}}, Result: Boolean},
		TCondition{Result: Number},
		TError{ErrorKind: ErrorKindRuntime},
	}
}

func TestIsCompatibleReflexive(t *testing.T) {
	for _, typ := range sampleTypes() {
		if !IsCompatible(typ, typ) {
			t.Errorf("IsCompatible(%s, %s) = false, want true", typ, typ)
		}
	}
}

func TestIsCompatibleSymmetricForPrimitivesAndContainers(t *testing.T) {
	types := []Type{
		Undefined, String, Number, Boolean,
		TArray{Elem: Number},
		TArray{Elem: String},
		TObject{Fields: []Field{{Name: "a", Type: Number}}},
		TObject{Fields: []Field{{Name: "a", Type: String}}},
		TObject{Fields: []Field{{Name: "b", Type: Number}}},
	}
	for _, a := range types {
		for _, b := range types {
			if IsCompatible(a, b) != IsCompatible(b, a) {
				t.Errorf("IsCompatible not symmetric for %s and %s", a, b)
			}
		}
	}
}

func TestIsCompatible(t *testing.T) {
	numOrStr := TUnion{Types: []Type{Number, String}}
	numStrBool := TUnion{Types: []Type{Number, String, Boolean}}

	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"different primitives", Number, String, false},
		{"unknown left", Unknown, TArray{Elem: Number}, true},
		{"unknown right", String, Unknown, true},
		{"array elements differ", TArray{Elem: Number}, TArray{Elem: String}, false},
		{
			"object same keys any order",
			TObject{Fields: []Field{{Name: "a", Type: Number}, {Name: "b", Type: String}}},
			TObject{Fields: []Field{{Name: "b", Type: String}, {Name: "a", Type: Number}}},
			true,
		},
		{
			"object missing key",
			TObject{Fields: []Field{{Name: "a", Type: Number}}},
			TObject{Fields: []Field{{Name: "a", Type: Number}, {Name: "b", Type: String}}},
			false,
		},
		{"single in union", Number, numOrStr, true},
		{"union holds single", numOrStr, String, true},
		{"single not in union", Boolean, numOrStr, false},
		{"union subset", numOrStr, numStrBool, true},
		{"union superset", numStrBool, numOrStr, false},
		{
			"operation params positional",
			TOperation{Params: []Param{{Type: Number}, {Type: String}}, Result: Number},
			TOperation{Params: []Param{{Type: Number}, {Type: String}}, Result: Number},
			true,
		},
		{
			"operation params swapped",
			TOperation{Params: []Param{{Type: Number}, {Type: String}}, Result: Number},
			TOperation{Params: []Param{{Type: String}, {Type: Number}}, Result: Number},
			false,
		},
		{
			"operation arity",
			TOperation{Params: []Param{{Type: Number}}, Result: Number},
			TOperation{Params: []Param{{Type: Number}, {Type: Number}}, Result: Number},
			false,
		},
		{
			"operation result",
			TOperation{Params: []Param{{Type: Number}}, Result: Number},
			TOperation{Params: []Param{{Type: Number}}, Result: String},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCompatible(tt.a, tt.b); got != tt.want {
				t.Errorf("IsCompatible(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
