package typesystem

// Kind is the tag of a type shape. The set is closed: every Type reports one of
// the constants below.
type Kind string

const (
	KindUndefined Kind = "undefined"
	KindString    Kind = "string"
	KindNumber    Kind = "number"
	KindBoolean   Kind = "boolean"
	KindArray     Kind = "array"
	KindObject    Kind = "object"
	KindUnion     Kind = "union"
	KindOperation Kind = "operation"
	KindCondition Kind = "condition"
	KindError     Kind = "error"
	// KindUnknown is the dispatch wildcard. It is never the runtime type of a stored value.
	KindUnknown Kind = "unknown"
)

var allKinds = []Kind{
	KindUndefined, KindString, KindNumber, KindBoolean, KindArray, KindObject,
	KindUnion, KindOperation, KindCondition, KindError, KindUnknown,
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// ParseKind maps a kind name back to its constant.
func ParseKind(s string) (Kind, error) {
	for _, k := range allKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", NewUnknownKindError(s)
}

// IsPrimitive reports whether values of this kind carry no nested statements.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindUndefined, KindString, KindNumber, KindBoolean:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }
