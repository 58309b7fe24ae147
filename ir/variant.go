package ir

// Variant encodes an enum-style variant. A variant with no payload is
// a bare string scalar of the variant name; a variant with a payload is
// a one-entry mapping {name: payload}.
func Variant(name string, payload *Node) *Node {
	if payload == nil {
		return FromString(name)
	}
	node, err := FromKeyVals([]KeyVal{{Key: FromString(name), Val: payload}})
	if err != nil {
		// one entry cannot collide
		panic(err)
	}
	return node
}

// AsVariant decodes the variant convention: a bare string is a unit
// variant, a one-entry mapping with a string key is a variant with a
// payload. ok is false for any other shape.
func (y *Node) AsVariant() (name string, payload *Node, ok bool) {
	switch y.Type {
	case StringType:
		return y.String, nil, true
	case MappingType:
		if len(y.Fields) != 1 || y.Fields[0].Type != StringType {
			return "", nil, false
		}
		return y.Fields[0].String, y.Values[0], true
	default:
		return "", nil, false
	}
}
