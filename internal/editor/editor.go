// Package editor turns discrete edit events into new statement lists. The
// edited top-level statement is copied, changed, and handed to the
// propagation engine; the input list is never modified.
package editor

import (
	"errors"
	"fmt"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/propagation"
	"github.com/funvibe/chainlang/internal/symbols"
)

var (
	// ErrNodeNotFound is returned when an edit names an id absent from the list.
	ErrNodeNotFound = errors.New("node not found")
	// ErrWrongNode is returned when the id names a node of the wrong kind.
	ErrWrongNode = errors.New("edit does not apply to node")
	// ErrInvalidEdit is returned for malformed edit arguments.
	ErrInvalidEdit = errors.New("invalid edit")
)

// Editor applies edits through a propagation engine.
type Editor struct {
	Engine *propagation.Engine
}

// New creates an editor.
func New(engine *propagation.Engine) *Editor {
	return &Editor{Engine: engine}
}

// Apply performs edit on stmts and returns the reconciled list.
func (ed *Editor) Apply(stmts []*ast.Statement, edit Edit, ctx *symbols.Context) ([]*ast.Statement, propagation.Stats, error) {
	if change, ok, err := topLevelChange(stmts, edit); ok || err != nil {
		if err != nil {
			return nil, propagation.Stats{}, err
		}
		return ed.Engine.Apply(stmts, change, ctx)
	}

	i, ok := topLevel(stmts, edit.Target())
	if !ok {
		return nil, propagation.Stats{}, fmt.Errorf("%w: %s", ErrNodeNotFound, edit.Target())
	}
	root := ast.Clone(stmts[i])
	at, _ := locate(root, edit.Target())
	// Sources may be earlier top-level statements or nodes of the edited one.
	if err := edit.apply(at, append(stmts[:i:i], root)); err != nil {
		return nil, propagation.Stats{}, err
	}
	return ed.Engine.Apply(stmts, propagation.Change{Index: i, Statement: root}, ctx)
}

// topLevelChange maps edits on the top-level list itself to a change.
func topLevelChange(stmts []*ast.Statement, edit Edit) (propagation.Change, bool, error) {
	switch e := edit.(type) {
	case InsertStatement:
		if e.Parent != "" {
			return propagation.Change{}, false, nil
		}
		if e.Statement == nil || e.Index < 0 || e.Index > len(stmts) {
			return propagation.Change{}, false, fmt.Errorf("%w: insert at %d of %d", ErrInvalidEdit, e.Index, len(stmts))
		}
		return propagation.Change{Index: e.Index, Statement: ast.Clone(e.Statement), Insert: true}, true, nil
	case RemoveStatement:
		for i, s := range stmts {
			if s.ID == e.ID {
				return propagation.Change{Index: i, Remove: true}, true, nil
			}
		}
	}
	return propagation.Change{}, false, nil
}
