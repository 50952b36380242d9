package editor

import "github.com/funvibe/chainlang/internal/ast"

// site is where a node sits inside a cloned top-level statement.
type site struct {
	stmt  *ast.Statement    // the statement itself, or the owner of call/data
	list  *[]*ast.Statement // the list holding stmt, nil for fixed slots
	index int               // position of stmt in list
	call  *ast.Call         // set when the id names a call
	calls int               // position of call in stmt.Operations
	data  bool              // the id names stmt.Data
}

// locate finds id under root. The root itself is reported without a list.
func locate(root *ast.Statement, id string) (*site, bool) {
	s := walk(root, nil, -1, id)
	return s, s != nil
}

func walk(s *ast.Statement, list *[]*ast.Statement, index int, id string) *site {
	if s == nil {
		return nil
	}
	if s.ID == id {
		return &site{stmt: s, list: list, index: index}
	}
	if s.Data != nil && s.Data.ID == id {
		return &site{stmt: s, list: list, index: index, data: true}
	}
	for i, c := range s.Operations {
		if c.ID == id {
			return &site{stmt: s, list: list, index: index, call: c, calls: i}
		}
		if found := walkList(&c.Parameters, id); found != nil {
			return found
		}
	}
	if s.Data == nil {
		return nil
	}
	switch v := s.Data.Value.(type) {
	case *ast.Array:
		return walkList(&v.Elements, id)
	case *ast.Object:
		for _, p := range v.Properties {
			if found := walk(p.Value, nil, -1, id); found != nil {
				return found
			}
		}
	case *ast.Operation:
		if found := walkList(&v.Parameters, id); found != nil {
			return found
		}
		return walkList(&v.Statements, id)
	case *ast.Condition:
		for _, branch := range []*ast.Statement{v.Test, v.True, v.False} {
			if found := walk(branch, nil, -1, id); found != nil {
				return found
			}
		}
	}
	return nil
}

func walkList(list *[]*ast.Statement, id string) *site {
	for i, s := range *list {
		if found := walk(s, list, i, id); found != nil {
			return found
		}
	}
	return nil
}

// topLevel returns the index of the top-level statement containing id.
func topLevel(stmts []*ast.Statement, id string) (int, bool) {
	for i, s := range stmts {
		if _, ok := locate(s, id); ok {
			return i, true
		}
	}
	return -1, false
}
