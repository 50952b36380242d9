package document

import (
	"testing"

	"github.com/funvibe/chainlang/internal/ast"
)

// FuzzUnmarshal checks that arbitrary input never panics the decoder and that
// anything it accepts survives a second round trip unchanged.
func FuzzUnmarshal(f *testing.F) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		data, err := Marshal(sample(f), format)
		if err != nil {
			f.Fatal(err)
		}
		f.Add(data, format == FormatYAML)
	}
	f.Add([]byte(`{"name":"d","operations":[]}`), false)
	f.Add([]byte("name: d\noperations: []\n"), true)

	f.Fuzz(func(t *testing.T, data []byte, yamlInput bool) {
		format := FormatJSON
		if yamlInput {
			format = FormatYAML
		}
		doc, err := Unmarshal(data, format)
		if err != nil {
			return
		}
		out, err := Marshal(doc, FormatJSON)
		if err != nil {
			// YAML admits numbers JSON cannot carry (.nan, .inf)
			return
		}
		back, err := Unmarshal(out, FormatJSON)
		if err != nil {
			t.Fatalf("re-decode: %v\n%s", err, out)
		}
		if len(back.Operations) != len(doc.Operations) {
			t.Fatalf("statement count changed: %d -> %d", len(doc.Operations), len(back.Operations))
		}
		for i := range doc.Operations {
			if !ast.SameStatement(doc.Operations[i], back.Operations[i]) {
				t.Fatalf("statement %d changed on re-encode", i)
			}
		}
	})
}
