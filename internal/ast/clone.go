package ast

// Clone returns a deep copy of s that keeps every node id. Types are shared;
// they are immutable values.
func Clone(s *Statement) *Statement {
	if s == nil {
		return nil
	}
	out := &Statement{ID: s.ID, Name: s.Name, Data: CloneData(s.Data)}
	if s.Operations != nil {
		out.Operations = make([]*Call, len(s.Operations))
		for i, c := range s.Operations {
			out.Operations[i] = cloneCall(c)
		}
	}
	return out
}

func cloneCall(c *Call) *Call {
	if c == nil {
		return nil
	}
	return &Call{
		ID:         c.ID,
		Name:       c.Name,
		Type:       c.Type,
		Parameters: cloneAll(c.Parameters),
		Result:     CloneData(c.Result),
	}
}

// CloneData returns a deep copy of d.
func CloneData(d *Data) *Data {
	if d == nil {
		return nil
	}
	out := *d
	if d.Reference != nil {
		ref := *d.Reference
		out.Reference = &ref
	}
	out.Value = cloneValue(d.Value)
	return &out
}

func cloneValue(v Value) Value {
	switch vv := v.(type) {
	case *Array:
		return &Array{Elements: cloneAll(vv.Elements)}
	case *Object:
		obj := &Object{Properties: make([]*Property, len(vv.Properties))}
		for i, p := range vv.Properties {
			obj.Properties[i] = &Property{Key: p.Key, Value: Clone(p.Value)}
		}
		return obj
	case *Operation:
		return &Operation{Parameters: cloneAll(vv.Parameters), Statements: cloneAll(vv.Statements)}
	case *Condition:
		return &Condition{Test: Clone(vv.Test), True: Clone(vv.True), False: Clone(vv.False), Cached: CloneData(vv.Cached)}
	}
	// Scalars are never mutated in place.
	return v
}

func cloneAll(stmts []*Statement) []*Statement {
	if stmts == nil {
		return nil
	}
	out := make([]*Statement, len(stmts))
	for i, s := range stmts {
		out[i] = Clone(s)
	}
	return out
}
