package modules

import (
	"sort"
	"strings"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/document"
	"github.com/funvibe/chainlang/internal/symbols"
)

// Module is a library directory: every document in it, reconciled in file
// name order, with later documents seeing the statements of earlier ones.
type Module struct {
	Name      string
	Dir       string
	Documents []*document.Document
	Exports   map[string]*ast.Statement // named top-level statements not starting with "_"
}

// GetName returns the module name, the base name of its directory.
func (m *Module) GetName() string {
	return m.Name
}

// ExportNames lists the exported statement names in sorted order.
func (m *Module) ExportNames() []string {
	names := make([]string, 0, len(m.Exports))
	for name := range m.Exports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bind extends scope with the module's exports, in declaration order.
func (m *Module) Bind(scope *symbols.Context) *symbols.Context {
	for _, doc := range m.Documents {
		for _, s := range doc.Operations {
			if m.Exports[s.Name] == s {
				scope = scope.BindStatement(s)
			}
		}
	}
	return scope
}

func isExported(name string) bool {
	return name != "" && !strings.HasPrefix(name, "_")
}
