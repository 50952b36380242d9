package typesystem

import (
	"testing"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(string(k))
		if err != nil {
			t.Fatalf("ParseKind(%q) returned error: %v", k, err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %q", k, got)
		}
	}

	if _, err := ParseKind("Int"); err == nil {
		t.Errorf("ParseKind(Int) should fail")
	}
}

func TestTypeStrings(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"number", Number, "number"},
		{"array of union", TArray{Elem: TUnion{Types: []Type{Number, String}}}, "(number | string)[]"},
		{"object", TObject{Fields: []Field{{Name: "a", Type: Number}, {Name: "b", Type: Boolean}}}, "{ a: number, b: boolean }"},
		{
			"operation",
			TOperation{Params: []Param{{Name: "x", Type: Number}, {Name: "y", Type: Number}}, Result: Number},
			"(x: number, y: number) => number",
		},
		{"condition", TCondition{Result: String}, "condition<string>"},
		{"error", TError{ErrorKind: ErrorKindDivisionByZero}, "error<divisionByZero>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
