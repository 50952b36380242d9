package editor

import (
	"fmt"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/typesystem"
)

// Edit is one discrete change keyed by a node id.
type Edit interface {
	// Target is the id of the node the edit addresses.
	Target() string
	apply(at *site, doc []*ast.Statement) error
}

// SetData replaces a statement's base value. ID may name the statement or
// its current data; the data node keeps its id.
type SetData struct {
	ID   string
	Data *ast.Data
}

func (e SetData) Target() string { return e.ID }

func (e SetData) apply(at *site, _ []*ast.Statement) error {
	if at.call != nil {
		return fmt.Errorf("%w: %s is a call", ErrWrongNode, e.ID)
	}
	if e.Data == nil {
		return fmt.Errorf("%w: no data", ErrInvalidEdit)
	}
	if !ast.Holds(e.Data.Type, e.Data.Value) {
		return fmt.Errorf("%w: %s value declared as %s", ErrInvalidEdit, ast.InferType(e.Data.Value).Kind(), e.Data.Type)
	}
	d := ast.CloneData(e.Data)
	if at.stmt.Data != nil {
		d.ID = at.stmt.Data.ID
	}
	at.stmt.Data = d
	return nil
}

// SetReference makes a statement read from an earlier named statement or
// parameter. The reference is declared with the source's current type.
type SetReference struct {
	ID       string
	SourceID string
}

func (e SetReference) Target() string { return e.ID }

func (e SetReference) apply(at *site, doc []*ast.Statement) error {
	if at.call != nil {
		return fmt.Errorf("%w: %s is a call", ErrWrongNode, e.ID)
	}
	node, ok := ast.Find(doc, e.SourceID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, e.SourceID)
	}
	src, ok := node.(*ast.Statement)
	if !ok || src.Name == "" {
		return fmt.Errorf("%w: %s is not a named statement", ErrWrongNode, e.SourceID)
	}
	var declared typesystem.Type = typesystem.Unknown
	if r := src.Result(); r != nil && r.Type != nil {
		declared = r.Type
	}
	d := ast.NewReferenceData(src, declared)
	if at.stmt.Data != nil {
		d.ID = at.stmt.Data.ID
	}
	at.stmt.Data = d
	return nil
}

// ClearReference detaches a statement from its source, keeping the value it
// currently holds.
type ClearReference struct {
	ID string
}

func (e ClearReference) Target() string { return e.ID }

func (e ClearReference) apply(at *site, _ []*ast.Statement) error {
	if at.call != nil || at.stmt.Data == nil {
		return fmt.Errorf("%w: %s holds no value", ErrWrongNode, e.ID)
	}
	at.stmt.Data.Reference = nil
	return nil
}

// AddCall appends a call to a statement's chain. Its arguments start at the
// parameter defaults.
type AddCall struct {
	ID   string
	Name string
	Call *ast.Call // optional, built from Name when nil
}

func (e AddCall) Target() string { return e.ID }

func (e AddCall) apply(at *site, _ []*ast.Statement) error {
	if at.call != nil {
		return fmt.Errorf("%w: %s is a call", ErrWrongNode, e.ID)
	}
	c := e.Call
	if c == nil {
		if e.Name == "" {
			return fmt.Errorf("%w: call has no name", ErrInvalidEdit)
		}
		c = ast.NewCall(e.Name)
	}
	at.stmt.Operations = append(at.stmt.Operations, c)
	return nil
}

// RemoveCall drops a call from its chain.
type RemoveCall struct {
	ID string
}

func (e RemoveCall) Target() string { return e.ID }

func (e RemoveCall) apply(at *site, _ []*ast.Statement) error {
	if at.call == nil {
		return fmt.Errorf("%w: %s is not a call", ErrWrongNode, e.ID)
	}
	ops := at.stmt.Operations
	at.stmt.Operations = append(ops[:at.calls:at.calls], ops[at.calls+1:]...)
	return nil
}

// MoveCall moves a call to another position of the same chain.
type MoveCall struct {
	ID    string
	Index int
}

func (e MoveCall) Target() string { return e.ID }

func (e MoveCall) apply(at *site, _ []*ast.Statement) error {
	if at.call == nil {
		return fmt.Errorf("%w: %s is not a call", ErrWrongNode, e.ID)
	}
	ops := at.stmt.Operations
	if e.Index < 0 || e.Index >= len(ops) {
		return fmt.Errorf("%w: call index %d of %d", ErrInvalidEdit, e.Index, len(ops))
	}
	rest := append(ops[:at.calls:at.calls], ops[at.calls+1:]...)
	moved := make([]*ast.Call, 0, len(ops))
	moved = append(moved, rest[:e.Index]...)
	moved = append(moved, at.call)
	at.stmt.Operations = append(moved, rest[e.Index:]...)
	return nil
}

// Rename changes a statement's or parameter's name. References to the old
// name detach on the following pass.
type Rename struct {
	ID   string
	Name string
}

func (e Rename) Target() string { return e.ID }

func (e Rename) apply(at *site, _ []*ast.Statement) error {
	if at.call != nil || at.data {
		return fmt.Errorf("%w: %s is not a statement", ErrWrongNode, e.ID)
	}
	at.stmt.Name = e.Name
	return nil
}

// SetParameter replaces the argument statement at Index of a call.
type SetParameter struct {
	ID        string // call id
	Index     int
	Statement *ast.Statement
}

func (e SetParameter) Target() string { return e.ID }

func (e SetParameter) apply(at *site, _ []*ast.Statement) error {
	if at.call == nil {
		return fmt.Errorf("%w: %s is not a call", ErrWrongNode, e.ID)
	}
	if e.Statement == nil {
		return fmt.Errorf("%w: no statement", ErrInvalidEdit)
	}
	params := at.call.Parameters
	switch {
	case e.Index >= 0 && e.Index < len(params):
		params[e.Index] = ast.Clone(e.Statement)
	case e.Index == len(params):
		at.call.Parameters = append(params, ast.Clone(e.Statement))
	default:
		return fmt.Errorf("%w: parameter index %d of %d", ErrInvalidEdit, e.Index, len(params))
	}
	return nil
}

// InsertStatement inserts a statement before Index. With an empty Parent the
// statement goes into the top-level list; otherwise Parent names an
// operation value (its body) or an array value (its elements).
type InsertStatement struct {
	Parent    string
	Index     int
	Statement *ast.Statement
}

func (e InsertStatement) Target() string { return e.Parent }

func (e InsertStatement) apply(at *site, _ []*ast.Statement) error {
	if e.Statement == nil {
		return fmt.Errorf("%w: no statement", ErrInvalidEdit)
	}
	if at.call != nil || at.stmt.Data == nil {
		return fmt.Errorf("%w: %s holds no statements", ErrWrongNode, e.Parent)
	}
	var list *[]*ast.Statement
	switch v := at.stmt.Data.Value.(type) {
	case *ast.Operation:
		list = &v.Statements
	case *ast.Array:
		list = &v.Elements
	default:
		return fmt.Errorf("%w: %s holds no statements", ErrWrongNode, e.Parent)
	}
	return insert(list, e.Index, ast.Clone(e.Statement))
}

// RemoveStatement removes a statement from the list holding it.
type RemoveStatement struct {
	ID string
}

func (e RemoveStatement) Target() string { return e.ID }

func (e RemoveStatement) apply(at *site, _ []*ast.Statement) error {
	if at.call != nil || at.data || at.list == nil {
		return fmt.Errorf("%w: %s cannot be removed", ErrWrongNode, e.ID)
	}
	l := *at.list
	*at.list = append(l[:at.index:at.index], l[at.index+1:]...)
	return nil
}

func insert(list *[]*ast.Statement, index int, s *ast.Statement) error {
	l := *list
	if index < 0 || index > len(l) {
		return fmt.Errorf("%w: index %d of %d", ErrInvalidEdit, index, len(l))
	}
	next := make([]*ast.Statement, 0, len(l)+1)
	next = append(next, l[:index]...)
	next = append(next, s)
	*list = append(next, l[index:]...)
	return nil
}
