package eval

import (
	"github.com/signadot/yaml-format/go-yaml/encode"
	"github.com/signadot/yaml-format/go-yaml/gomap"
	"github.com/signadot/yaml-format/go-yaml/ir"
)

// ToAny projects a node onto plain Go values: nil, bool, int64,
// float64, string, []any, map[string]any. Non-string mapping keys are
// rendered to their flow text so the result stays string-keyed.
func ToAny(node *ir.Node) any {
	switch node.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return node.Bool
	case ir.StringType:
		return node.String
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return nil
	case ir.SequenceType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToAny(elt)
		}
		return res
	case ir.MappingType:
		res := make(map[string]any, len(node.Fields))
		for i := range node.Fields {
			res[keyString(node.Fields[i])] = ToAny(node.Values[i])
		}
		return res
	}
	return nil
}

func keyString(key *ir.Node) string {
	if key.Type == ir.StringType {
		return key.String
	}
	return encode.MustString(key, encode.Flow(true))
}

// FromAny lifts an evaluation result back into a node. Nodes pass
// through as deep copies; containers recurse so embedded nodes are
// handled; everything else goes through gomap.
func FromAny(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case *ir.Node:
		if x == nil {
			return ir.Null(), nil
		}
		return x.Clone(), nil
	case []*ir.Node:
		nodes := make([]*ir.Node, len(x))
		for i, n := range x {
			nodes[i] = n.Clone()
		}
		return ir.FromSlice(nodes), nil
	case []any:
		nodes := make([]*ir.Node, len(x))
		for i, elt := range x {
			n, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			nodes[i] = n
		}
		return ir.FromSlice(nodes), nil
	case map[string]any:
		res := make(map[string]*ir.Node, len(x))
		for k, elt := range x {
			n, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			res[k] = n
		}
		return ir.FromMap(res), nil
	default:
		return gomap.ToIR(v)
	}
}
