package ir

import (
	"cmp"
	"math"
	"strings"
)

// Equal reports structural equality. Two mappings are equal iff they
// have the same key set with equal values, independent of insertion
// order. Numbers compare bit-exactly: 1 and 1.0 are not equal, and two
// NaNs with the same bit pattern are.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type || a.Tag != b.Tag {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case NumberType:
		if (a.Int64 == nil) != (b.Int64 == nil) {
			return false
		}
		if a.Int64 != nil {
			return *a.Int64 == *b.Int64
		}
		if a.Float64 == nil || b.Float64 == nil {
			return a.Float64 == b.Float64
		}
		return math.Float64bits(*a.Float64) == math.Float64bits(*b.Float64)
	case StringType:
		return a.String == b.String
	case SequenceType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case MappingType:
		return equalMappings(a, b)
	}
	return false
}

func equalMappings(a, b *Node) bool {
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	used := make([]bool, len(b.Fields))
outer:
	for i := range a.Fields {
		for j := range b.Fields {
			if used[j] {
				continue
			}
			if Equal(a.Fields[i], b.Fields[j]) {
				if !Equal(a.Values[i], b.Values[j]) {
					return false
				}
				used[j] = true
				continue outer
			}
		}
		return false
	}
	return true
}

// Compare returns a total order over nodes: 0 if a==b under this
// order, -1 if a < b, +1 if a > b. The order is by type rank, then by
// value; mappings compare by their entries in insertion order, so
// Compare(a,b)==0 is stricter about order than Equal.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	rankA, rankB := rank(a.Type), rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}
	switch a.Type {
	case NullType:
		return 0
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case SequenceType:
		return compareNodes(a.Values, b.Values)
	case MappingType:
		if c := compareNodes(a.Fields, b.Fields); c != 0 {
			return c
		}
		return compareNodes(a.Values, b.Values)
	}
	return 0
}

// rank orders types: Null < Bool < Number < String < Sequence < Mapping.
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case NumberType:
		return 2
	case StringType:
		return 3
	case SequenceType:
		return 4
	case MappingType:
		return 5
	}
	return 100
}

func compareNumbers(a, b *Node) int {
	af, aok := a.AsFloat()
	bf, bok := b.AsFloat()
	if !aok || !bok {
		return cmp.Compare(boolInt(aok), boolInt(bok))
	}
	if c := cmp.Compare(af, bf); c != 0 {
		return c
	}
	// ints sort before equal-valued floats so the order is total
	return cmp.Compare(boolInt(a.Int64 == nil), boolInt(b.Int64 == nil))
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func compareNodes(a, b []*Node) int {
	for i := 0; i < min(len(a), len(b)); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}
