package ir

import (
	"maps"
	"slices"
)

// Node is a single YAML value. It is a tagged union: the Type field
// selects which of the value fields is meaningful.
//
// For MappingType, Fields[i] is the key for Values[i]; keys may be any
// scalar or collection node and are compared structurally. For
// SequenceType only Values is used. For NumberType exactly one of
// Int64, Float64 is non-nil; the distinction records whether the
// source text looked like an integer or a float and is preserved on
// re-emission.
//
// Tag holds an explicit tag ("!!str", "!point") verbatim, or "" when
// the node's type was implied. Anchor records an anchor name for
// re-emission only; it never implies shared identity within the tree.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	Tag    string
	Anchor string

	String  string
	Bool    bool
	Int64   *int64
	Float64 *float64
}

func (y *Node) WithTag(tag string) *Node {
	y.Tag = tag
	return y
}

func (y *Node) WithAnchor(anchor string) *Node {
	y.Anchor = anchor
	return y
}

// Clone returns a deep copy of y. The copy keeps y's parent linkage so
// it can stand in for y, but shares no nodes with it: mutating the
// clone never affects the original. Alias resolution relies on this.
func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Tag = y.Tag
	dst.Anchor = y.Anchor
	dst.String = y.String
	dst.Bool = y.Bool
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dstI := &Node{}
			yv.CloneTo(dstI)
			dstI.Parent = dst
			dstI.ParentIndex = i
			dstI.ParentField = yv.ParentField
			dst.Values[i] = dstI
		}
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, yf := range y.Fields {
			dstI := &Node{}
			yf.CloneTo(dstI)
			dstI.Parent = dst
			dstI.ParentIndex = i
			dst.Fields[i] = dstI
		}
	}
	return dst
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromFloat(f float64) *Node {
	return &Node{Type: NumberType, Float64: &f}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromSlice(ys []*Node) *Node {
	res := &Node{Type: SequenceType}
	res.Values = make([]*Node, len(ys))
	for i, y := range ys {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

// FromMap builds a mapping with string keys in sorted key order.
func FromMap(yMap map[string]*Node) *Node {
	res := &Node{Type: MappingType}
	res.Fields = make([]*Node, len(yMap))
	res.Values = make([]*Node, len(yMap))
	keys := slices.Sorted(maps.Keys(yMap))
	for i, key := range keys {
		y := yMap[key]
		y.Parent = res
		y.ParentIndex = i
		y.ParentField = key
		yField := &Node{
			Parent:      res,
			ParentIndex: i,
			ParentField: key,
			Type:        StringType,
			String:      key,
		}
		res.Fields[i] = yField
		res.Values[i] = y
	}
	return res
}

// ToMap projects a string-keyed mapping onto a Go map. Non-string keys
// are skipped; returns nil for non-mapping nodes.
func ToMap(node *Node) map[string]*Node {
	if node.Type != MappingType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		field := node.Fields[i]
		if field.Type != StringType {
			continue
		}
		res[field.String] = node.Values[i]
	}
	return res
}

type KeyVal struct {
	Key *Node
	Val *Node
}

// FromKeyVals builds a mapping preserving insertion order. Two
// structurally equal keys are a hard error, never last-wins.
func FromKeyVals(kvs []KeyVal) (*Node, error) {
	return FromKeyValsAt(&Node{}, kvs)
}

func FromKeyValsAt(res *Node, kvs []KeyVal) (*Node, error) {
	res.Type = MappingType
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	seen := make(map[uint64][]int, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		if kv.Key == nil {
			kv.Key = Null()
		}
		h := kv.Key.Hash()
		for _, j := range seen[h] {
			if Equal(kvs[j].Key, kv.Key) {
				return nil, &DuplicateKeyError{Key: kv.Key}
			}
		}
		seen[h] = append(seen[h], i)
		if kv.Key.Type == StringType {
			kv.Key.ParentField = kv.Key.String
			kv.Val.ParentField = kv.Key.String
		}
		kv.Key.Parent = res
		kv.Key.ParentIndex = i
		kv.Val.Parent = res
		kv.Val.ParentIndex = i
		res.Fields[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res, nil
}

// Get returns the value under a string key, or nil when absent.
// Probing for a missing key is a normal operation, not an error.
func Get(y *Node, field string) *Node {
	if y == nil || y.Type != MappingType {
		return nil
	}
	for i := range y.Fields {
		if y.Fields[i].Type == StringType && y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// GetKey returns the value under a structurally equal key, or nil.
func GetKey(y *Node, key *Node) *Node {
	if y == nil || y.Type != MappingType {
		return nil
	}
	for i := range y.Fields {
		if Equal(y.Fields[i], key) {
			return y.Values[i]
		}
	}
	return nil
}

// Index returns the i'th sequence element, or nil when out of range.
func Index(y *Node, i int) *Node {
	if y == nil || y.Type != SequenceType {
		return nil
	}
	if i < 0 || i >= len(y.Values) {
		return nil
	}
	return y.Values[i]
}

// Visit walks y depth-first. f is called before (isPost=false) and
// after (isPost=true) each node's children; returning false from the
// pre call skips the children.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yf := range y.Fields {
			if err := yf.Visit(f); err != nil {
				return err
			}
		}
		for _, yv := range y.Values {
			if err := yv.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// AsInt returns the integer value of a number node. Floats that happen
// to be integral are not converted; the int/float distinction is part
// of the value.
func (y *Node) AsInt() (int64, bool) {
	if y.Type != NumberType || y.Int64 == nil {
		return 0, false
	}
	return *y.Int64, true
}

// AsFloat returns the float value of a number node, widening integers.
func (y *Node) AsFloat() (float64, bool) {
	if y.Type != NumberType {
		return 0, false
	}
	if y.Float64 != nil {
		return *y.Float64, true
	}
	if y.Int64 != nil {
		return float64(*y.Int64), true
	}
	return 0, false
}

func (y *Node) AsString() (string, bool) {
	if y.Type != StringType {
		return "", false
	}
	return y.String, true
}

func (y *Node) AsBool() (bool, bool) {
	if y.Type != BoolType {
		return false, false
	}
	return y.Bool, true
}

func (y *Node) IsNull() bool {
	return y.Type == NullType
}
