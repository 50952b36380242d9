package ast

// Visitor is the recursive-descent visitor over the closed node set.
type Visitor interface {
	VisitStatement(s *Statement)
	VisitCall(c *Call)
	VisitData(d *Data)
}

// Inspect walks the tree rooted at n in depth-first order, calling fn for every
// node. Returning false from fn skips the node's children.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	n.Accept(&inspector{fn: fn})
}

type inspector struct {
	fn func(Node) bool
}

func (in *inspector) VisitStatement(s *Statement) {
	if s == nil || !in.fn(s) {
		return
	}
	if s.Data != nil {
		s.Data.Accept(in)
	}
	for _, c := range s.Operations {
		c.Accept(in)
	}
}

func (in *inspector) VisitCall(c *Call) {
	if c == nil || !in.fn(c) {
		return
	}
	for _, p := range c.Parameters {
		p.Accept(in)
	}
}

func (in *inspector) VisitData(d *Data) {
	if d == nil || !in.fn(d) {
		return
	}
	for _, child := range Children(d.Value) {
		child.Accept(in)
	}
}

// Children returns the statements nested directly inside a value.
func Children(v Value) []*Statement {
	switch vv := v.(type) {
	case *Array:
		return vv.Elements
	case *Object:
		out := make([]*Statement, 0, len(vv.Properties))
		for _, p := range vv.Properties {
			out = append(out, p.Value)
		}
		return out
	case *Operation:
		out := make([]*Statement, 0, len(vv.Parameters)+len(vv.Statements))
		out = append(out, vv.Parameters...)
		return append(out, vv.Statements...)
	case *Condition:
		return []*Statement{vv.Test, vv.True, vv.False}
	}
	return nil
}

// Find returns the node with the given id anywhere under roots.
func Find(roots []*Statement, id string) (Node, bool) {
	var found Node
	for _, root := range roots {
		Inspect(root, func(n Node) bool {
			if found != nil {
				return false
			}
			if n.NodeID() == id {
				found = n
				return false
			}
			return true
		})
		if found != nil {
			return found, true
		}
	}
	return nil, false
}
