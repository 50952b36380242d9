package ast

import (
	"github.com/funvibe/chainlang/internal/typesystem"
	"github.com/google/uuid"
)

// Node is the base interface for all document nodes.
type Node interface {
	NodeID() string
	Accept(v Visitor)
}

// NewID returns a fresh document-unique node id.
func NewID() string {
	return uuid.NewString()
}

// Reference is a non-owning link from a value to the statement or parameter
// that supplies it. It resolves only while both the id and the name still match.
type Reference struct {
	ID   string
	Name string
	Type typesystem.Type // declared type, restored when the reference detaches
}

// Data is a value node. Its Type always describes the shape of Value.
type Data struct {
	ID             string
	Type           typesystem.Type
	Value          Value
	IsGeneric      bool // type not yet pinned by the user
	IsTypeEditable bool
	Reference      *Reference
}

func (d *Data) NodeID() string   { return d.ID }
func (d *Data) Accept(v Visitor) { v.VisitData(d) }

// Kind returns the kind of the value's type.
func (d *Data) Kind() typesystem.Kind {
	if d == nil || d.Type == nil {
		return typesystem.KindUndefined
	}
	return d.Type.Kind()
}

// IsError reports whether d is a first-class error value.
func (d *Data) IsError() bool {
	if d == nil {
		return false
	}
	_, ok := d.Value.(*Error)
	return ok
}

// Statement pairs a base value with an ordered chain of operation calls.
// A named statement is visible to every later statement of the same scope.
type Statement struct {
	ID         string
	Name       string
	Data       *Data
	Operations []*Call
}

func (s *Statement) NodeID() string   { return s.ID }
func (s *Statement) Accept(v Visitor) { v.VisitStatement(s) }

// Result returns the cached result of the last call, or the base data when the
// chain is empty. A condition without calls yields its cached branch value.
func (s *Statement) Result() *Data {
	if s == nil {
		return nil
	}
	if n := len(s.Operations); n > 0 && s.Operations[n-1].Result != nil {
		return s.Operations[n-1].Result
	}
	if s.Data != nil {
		if c, ok := s.Data.Value.(*Condition); ok && c.Cached != nil {
			return c.Cached
		}
	}
	return s.Data
}

// Call is one link of a statement's chain: a named operation applied to the
// previous link's value.
type Call struct {
	ID         string
	Name       string
	Type       typesystem.Type // signature at the call site, subject first
	Parameters []*Statement
	Result     *Data
}

func (c *Call) NodeID() string   { return c.ID }
func (c *Call) Accept(v Visitor) { v.VisitCall(c) }

// NewStatement creates an anonymous or named statement over data.
func NewStatement(name string, data *Data, calls ...*Call) *Statement {
	return &Statement{ID: NewID(), Name: name, Data: data, Operations: calls}
}

// NewCall creates a call link with the given argument statements.
func NewCall(name string, params ...*Statement) *Call {
	return &Call{ID: NewID(), Name: name, Parameters: params}
}

// NewReferenceData creates a value that reads from the named statement.
// The declared type is what the reference falls back to if it detaches; the
// value itself is filled in by the next reconciliation pass.
func NewReferenceData(target *Statement, declared typesystem.Type) *Data {
	d := DefaultData(declared)
	d.Reference = &Reference{ID: target.ID, Name: target.Name, Type: declared}
	return d
}
