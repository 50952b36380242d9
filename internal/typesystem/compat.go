package typesystem

// IsCompatible reports whether a value of type a may stand where b is expected.
//
// Primitives match by kind. Arrays and objects match structurally (objects need
// the same property names). A union matches a single type when any member does,
// and a union matches another union when every member of a has a compatible
// member in b. Operations match when parameters line up positionally and the
// results match. Unknown matches everything.
func IsCompatible(a, b Type) bool {
	a, b = orUndefined(a), orUndefined(b)

	if a.Kind() == KindUnknown || b.Kind() == KindUnknown {
		return true
	}

	ua, aIsUnion := a.(TUnion)
	ub, bIsUnion := b.(TUnion)
	switch {
	case aIsUnion && bIsUnion:
		for _, m := range ua.Types {
			if !anyCompatible(m, ub.Types) {
				return false
			}
		}
		return true
	case aIsUnion:
		return anyCompatible(b, ua.Types)
	case bIsUnion:
		return anyCompatible(a, ub.Types)
	}

	if a.Kind() != b.Kind() {
		return false
	}

	switch ta := a.(type) {
	case TPrimitive, TError:
		return true
	case TArray:
		return IsCompatible(ta.Elem, b.(TArray).Elem)
	case TObject:
		tb := b.(TObject)
		if len(ta.Fields) != len(tb.Fields) {
			return false
		}
		for _, f := range ta.Fields {
			other, ok := tb.Field(f.Name)
			if !ok || !IsCompatible(f.Type, other) {
				return false
			}
		}
		return true
	case TOperation:
		tb := b.(TOperation)
		if len(ta.Params) != len(tb.Params) {
			return false
		}
		for i := range ta.Params {
			if !IsCompatible(ta.Params[i].Type, tb.Params[i].Type) {
				return false
			}
		}
		return IsCompatible(ta.Result, tb.Result)
	case TCondition:
		return IsCompatible(ta.Result, b.(TCondition).Result)
	}
	return false
}

func anyCompatible(t Type, members []Type) bool {
	for _, m := range members {
		if IsCompatible(t, m) {
			return true
		}
	}
	return false
}
