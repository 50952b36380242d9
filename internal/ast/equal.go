package ast

import "github.com/funvibe/chainlang/internal/typesystem"

// EqualData reports value equality: same type and the same payload. Node ids
// and references are ignored, so two evaluations of the same statement
// compare equal.
func EqualData(a, b *Data) bool {
	return equalData(a, b, false)
}

// SameStatement reports whether two statements are structurally identical:
// same ids and names, same base data, same calls with equal cached results.
func SameStatement(a, b *Statement) bool {
	return equalStatement(a, b, true)
}

func equalStatement(a, b *Statement, strict bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if !strict {
		return equalData(a.Result(), b.Result(), false)
	}
	if a.ID != b.ID || a.Name != b.Name || len(a.Operations) != len(b.Operations) {
		return false
	}
	if !equalData(a.Data, b.Data, true) {
		return false
	}
	for i := range a.Operations {
		if !equalCall(a.Operations[i], b.Operations[i]) {
			return false
		}
	}
	return true
}

func equalCall(a, b *Call) bool {
	if a == b {
		return true
	}
	if a.ID != b.ID || a.Name != b.Name || len(a.Parameters) != len(b.Parameters) {
		return false
	}
	if (a.Type == nil) != (b.Type == nil) || (a.Type != nil && !typesystem.Equal(a.Type, b.Type)) {
		return false
	}
	for i := range a.Parameters {
		if !equalStatement(a.Parameters[i], b.Parameters[i], true) {
			return false
		}
	}
	return equalData(a.Result, b.Result, false)
}

func equalData(a, b *Data, strict bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if strict && (a.ID != b.ID || a.IsGeneric != b.IsGeneric || a.IsTypeEditable != b.IsTypeEditable) {
		return false
	}
	if !typesystem.Equal(a.Type, b.Type) {
		return false
	}
	if strict {
		if (a.Reference == nil) != (b.Reference == nil) {
			return false
		}
		if a.Reference != nil && !equalReference(a.Reference, b.Reference) {
			return false
		}
	}
	return equalValue(a.Value, b.Value, strict)
}

func equalReference(a, b *Reference) bool {
	if a.ID != b.ID || a.Name != b.Name || (a.Type == nil) != (b.Type == nil) {
		return false
	}
	return a.Type == nil || typesystem.Equal(a.Type, b.Type)
}

func equalValue(a, b Value, strict bool) bool {
	switch va := a.(type) {
	case nil, *Undefined:
		switch b.(type) {
		case nil, *Undefined:
			return true
		}
		return false
	case *StringLit:
		vb, ok := b.(*StringLit)
		return ok && va.Value == vb.Value
	case *NumberLit:
		vb, ok := b.(*NumberLit)
		return ok && va.Value == vb.Value
	case *BooleanLit:
		vb, ok := b.(*BooleanLit)
		return ok && va.Value == vb.Value
	case *Error:
		vb, ok := b.(*Error)
		return ok && va.Reason == vb.Reason
	case *Array:
		vb, ok := b.(*Array)
		return ok && equalStatements(va.Elements, vb.Elements, strict)
	case *Object:
		vb, ok := b.(*Object)
		if !ok || len(va.Properties) != len(vb.Properties) {
			return false
		}
		for i := range va.Properties {
			if va.Properties[i].Key != vb.Properties[i].Key ||
				!equalStatement(va.Properties[i].Value, vb.Properties[i].Value, strict) {
				return false
			}
		}
		return true
	case *Operation:
		vb, ok := b.(*Operation)
		return ok && equalStatements(va.Parameters, vb.Parameters, strict) &&
			equalStatements(va.Statements, vb.Statements, strict)
	case *Condition:
		vb, ok := b.(*Condition)
		return ok && equalStatement(va.Test, vb.Test, strict) &&
			equalStatement(va.True, vb.True, strict) &&
			equalStatement(va.False, vb.False, strict) &&
			equalData(va.Cached, vb.Cached, false)
	}
	return false
}

func equalStatements(a, b []*Statement, strict bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalStatement(a[i], b[i], strict) {
			return false
		}
	}
	return true
}
