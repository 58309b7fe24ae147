package ir

// Type discriminates the variants of a Node.
type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	SequenceType
	MappingType
)

func (t Type) String() string {
	switch t {
	case NullType:
		return "null"
	case BoolType:
		return "bool"
	case NumberType:
		return "number"
	case StringType:
		return "string"
	case SequenceType:
		return "sequence"
	case MappingType:
		return "mapping"
	}
	return "unknown"
}

// Types returns all node types in rank order.
func Types() []Type {
	return []Type{NullType, BoolType, NumberType, StringType, SequenceType, MappingType}
}

func (t Type) IsScalar() bool {
	switch t {
	case NullType, BoolType, NumberType, StringType:
		return true
	default:
		return false
	}
}
