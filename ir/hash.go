package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

// hashSeed is shared so hashes are comparable across calls within a
// process. Hashes are not stable across process restarts.
var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the node consistent with Equal:
// Equal(a, b) implies a.Hash() == b.Hash(). Mapping entries are
// combined order-independently so insertion order does not matter.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}
	var h maphash.Hash
	h.SetSeed(hashSeed)
	hashNode(&h, n)
	return h.Sum64()
}

func hashNode(h *maphash.Hash, n *Node) {
	h.WriteByte(byte(n.Type))
	h.WriteString(n.Tag)
	switch n.Type {
	case NullType:
	case BoolType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case NumberType:
		var b [8]byte
		if n.Int64 != nil {
			h.WriteByte('i')
			binary.LittleEndian.PutUint64(b[:], uint64(*n.Int64))
			h.Write(b[:])
		} else if n.Float64 != nil {
			h.WriteByte('f')
			binary.LittleEndian.PutUint64(b[:], math.Float64bits(*n.Float64))
			h.Write(b[:])
		}
	case StringType:
		h.WriteString(n.String)
	case SequenceType:
		for _, v := range n.Values {
			hashNode(h, v)
		}
	case MappingType:
		// XOR of entry hashes, insensitive to entry order.
		var acc uint64
		for i := range n.Fields {
			var eh maphash.Hash
			eh.SetSeed(hashSeed)
			hashNode(&eh, n.Fields[i])
			hashNode(&eh, n.Values[i])
			acc ^= eh.Sum64()
		}
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], acc)
		h.Write(b[:])
	}
}
