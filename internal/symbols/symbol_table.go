// Package symbols implements the scope used while executing and reconciling
// statements.
//
// A Context is an ordered, append-only list of bindings. Bind never mutates the
// receiver; it returns a new Context that shares the older bindings. Only
// statements that come earlier in a list are ever bound, so a statement can
// never observe itself or anything after it.
package symbols

import (
	"github.com/funvibe/chainlang/internal/ast"
)

// Binding is one named value visible in a scope.
type Binding struct {
	Name string
	ID   string // id of the statement or parameter that produced the value
	Data *ast.Data
}

// Reference returns a reference pointing at this binding's source, declared
// with the source's current type.
func (b Binding) Reference() *ast.Reference {
	ref := &ast.Reference{ID: b.ID, Name: b.Name}
	if b.Data != nil {
		ref.Type = b.Data.Type
	}
	return ref
}

// Context is an immutable scope. It also carries the depth of user operation
// calls that led to it, so concurrent evaluations never share a counter.
type Context struct {
	bindings []Binding
	depth    int
}

// NewContext creates an empty scope.
func NewContext() *Context {
	return &Context{}
}

// Bind returns a scope that extends c with one more binding. A later binding
// shadows an earlier one of the same name.
func (c *Context) Bind(name, id string, data *ast.Data) *Context {
	if c == nil {
		c = NewContext()
	}
	n := len(c.bindings)
	// Full slice expression: appending must never write into a sibling scope.
	next := append(c.bindings[:n:n], Binding{Name: name, ID: id, Data: data})
	return &Context{bindings: next, depth: c.depth}
}

// Enter returns a scope with the same bindings one call level deeper.
func (c *Context) Enter() *Context {
	if c == nil {
		return &Context{depth: 1}
	}
	return &Context{bindings: c.bindings, depth: c.depth + 1}
}

// Depth is the number of user operation calls entered to reach c.
func (c *Context) Depth() int {
	if c == nil {
		return 0
	}
	return c.depth
}

// BindStatement binds a named statement's current result. Anonymous
// statements leave the scope unchanged.
func (c *Context) BindStatement(s *ast.Statement) *Context {
	if s == nil || s.Name == "" {
		return c
	}
	return c.Bind(s.Name, s.ID, s.Result())
}

// Lookup finds the innermost binding for name.
func (c *Context) Lookup(name string) (Binding, bool) {
	if c == nil {
		return Binding{}, false
	}
	for i := len(c.bindings) - 1; i >= 0; i-- {
		if c.bindings[i].Name == name {
			return c.bindings[i], true
		}
	}
	return Binding{}, false
}

// Resolve finds the binding a reference points at. The innermost binding with
// the reference's name must also carry its id; a renamed or removed source
// therefore no longer resolves.
func (c *Context) Resolve(ref *ast.Reference) (Binding, bool) {
	if ref == nil {
		return Binding{}, false
	}
	b, ok := c.Lookup(ref.Name)
	if !ok || b.ID != ref.ID {
		return Binding{}, false
	}
	return b, true
}

// Bindings returns the visible bindings in declaration order. Shadowed
// bindings are omitted.
func (c *Context) Bindings() []Binding {
	if c == nil {
		return nil
	}
	out := make([]Binding, 0, len(c.bindings))
	for i, b := range c.bindings {
		shadowed := false
		for _, later := range c.bindings[i+1:] {
			if later.Name == b.Name {
				shadowed = true
				break
			}
		}
		if !shadowed {
			out = append(out, b)
		}
	}
	return out
}

// Len returns the number of bindings, shadowed ones included.
func (c *Context) Len() int {
	if c == nil {
		return 0
	}
	return len(c.bindings)
}
