package gomap

import (
	"bytes"
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/signadot/yaml-format/go-yaml/encode"
	"github.com/signadot/yaml-format/go-yaml/ir"
)

// FromIR converts an IR node to a Go value. v must be a non-nil
// pointer. Types implementing IRUnmarshaler consume the node
// themselves; encoding.TextUnmarshaler types are fed string nodes.
func FromIR(node *ir.Node, v interface{}, opts ...UnmapOption) error {
	if v == nil {
		return &UnmarshalError{Message: "destination must be a non-nil pointer"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return &UnmarshalError{Message: "destination must be a non-nil pointer"}
	}
	u := &unmarshaler{}
	for _, opt := range opts {
		opt.applyUnmap(&u.cfg)
	}
	return u.assign(node, val.Elem(), "")
}

type unmarshaler struct {
	cfg unmapConfig
}

func (u *unmarshaler) assign(node *ir.Node, val reflect.Value, path string) error {
	if node == nil {
		return &UnmarshalError{FieldPath: path, Message: "nil node"}
	}

	if done, err := u.hooks(node, val, path); done {
		return err
	}

	switch val.Kind() {
	case reflect.Ptr:
		if node.Type == ir.NullType {
			val.Set(reflect.Zero(val.Type()))
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(val.Type().Elem()))
		}
		return u.assign(node, val.Elem(), path)

	case reflect.Interface:
		if val.NumMethod() != 0 {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("cannot decode into non-empty interface %s", val.Type()),
			}
		}
		out, err := u.anyValue(node, path)
		if err != nil {
			return err
		}
		if out == nil {
			val.Set(reflect.Zero(val.Type()))
		} else {
			val.Set(reflect.ValueOf(out))
		}
		return nil
	}

	if node.Type == ir.NullType {
		val.Set(reflect.Zero(val.Type()))
		return nil
	}

	switch val.Kind() {
	case reflect.String:
		if node.Type != ir.StringType {
			return typeErr(path, "string", node)
		}
		val.SetString(node.String)
		return nil

	case reflect.Bool:
		if node.Type != ir.BoolType {
			return typeErr(path, "bool", node)
		}
		val.SetBool(node.Bool)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return u.assignInt(node, val, path)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return u.assignUint(node, val, path)

	case reflect.Float32, reflect.Float64:
		return u.assignFloat(node, val, path)

	case reflect.Slice, reflect.Array:
		return u.assignSlice(node, val, path)

	case reflect.Map:
		return u.assignMap(node, val, path)

	case reflect.Struct:
		return u.assignStruct(node, val, path)

	default:
		return &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("unsupported type %s", val.Type()),
		}
	}
}

func (u *unmarshaler) hooks(node *ir.Node, val reflect.Value, path string) (bool, error) {
	if !val.CanAddr() {
		return false, nil
	}
	addr := val.Addr()
	if !addr.CanInterface() {
		return false, nil
	}
	switch iface := addr.Interface().(type) {
	case IRUnmarshaler:
		if err := iface.UnmarshalIR(node); err != nil {
			return true, &UnmarshalError{FieldPath: path, Message: "UnmarshalIR failed", Err: err}
		}
		return true, nil
	case encoding.TextUnmarshaler:
		if node.Type == ir.NullType {
			val.Set(reflect.Zero(val.Type()))
			return true, nil
		}
		if node.Type != ir.StringType {
			return true, typeErr(path, "string", node)
		}
		if err := iface.UnmarshalText([]byte(node.String)); err != nil {
			return true, &UnmarshalError{FieldPath: path, Message: "UnmarshalText failed", Err: err}
		}
		return true, nil
	}
	return false, nil
}

func (u *unmarshaler) assignInt(node *ir.Node, val reflect.Value, path string) error {
	i, ok := node.AsInt()
	if !ok {
		return typeErr(path, "integer", node)
	}
	if val.OverflowInt(i) {
		return &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("value %d overflows %s", i, val.Type()),
		}
	}
	val.SetInt(i)
	return nil
}

func (u *unmarshaler) assignUint(node *ir.Node, val reflect.Value, path string) error {
	i, ok := node.AsInt()
	if !ok {
		return typeErr(path, "integer", node)
	}
	if i < 0 {
		return &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("cannot assign negative value %d to %s", i, val.Type()),
		}
	}
	if val.OverflowUint(uint64(i)) {
		return &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("value %d overflows %s", i, val.Type()),
		}
	}
	val.SetUint(uint64(i))
	return nil
}

// assignFloat widens integer nodes, so "x: 1" decodes into a float64
// field.
func (u *unmarshaler) assignFloat(node *ir.Node, val reflect.Value, path string) error {
	f, ok := node.AsFloat()
	if !ok {
		return typeErr(path, "number", node)
	}
	val.SetFloat(f)
	return nil
}

func (u *unmarshaler) assignSlice(node *ir.Node, val reflect.Value, path string) error {
	if node.Type != ir.SequenceType {
		return typeErr(path, "sequence", node)
	}
	n := len(node.Values)
	if val.Kind() == reflect.Array {
		if val.Len() != n {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("sequence length %d does not fit array %s", n, val.Type()),
			}
		}
	} else {
		val.Set(reflect.MakeSlice(val.Type(), n, n))
	}
	for i := 0; i < n; i++ {
		if err := u.assign(node.Values[i], val.Index(i), indexPath(path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (u *unmarshaler) assignMap(node *ir.Node, val reflect.Value, path string) error {
	if node.Type != ir.MappingType {
		return typeErr(path, "mapping", node)
	}
	typ := val.Type()
	if typ.Key().Kind() != reflect.String {
		return &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("map keys must be strings, got %s", typ.Key()),
		}
	}
	val.Set(reflect.MakeMapWithSize(typ, len(node.Fields)))
	for i := range node.Fields {
		keyNode := node.Fields[i]
		if keyNode.Type != ir.StringType {
			return typeErr(path, "string key", keyNode)
		}
		elem := reflect.New(typ.Elem()).Elem()
		if err := u.assign(node.Values[i], elem, fieldPath(path, keyNode.String)); err != nil {
			return err
		}
		val.SetMapIndex(reflect.ValueOf(keyNode.String).Convert(typ.Key()), elem)
	}
	return nil
}

func (u *unmarshaler) assignStruct(node *ir.Node, val reflect.Value, path string) error {
	if node.Type != ir.MappingType {
		return typeErr(path, "mapping", node)
	}
	specs, err := structFields(val.Type())
	if err != nil {
		return &UnmarshalError{FieldPath: path, Message: err.Error()}
	}
	byName := make(map[string]*fieldSpec, len(specs))
	var inline *fieldSpec
	for i := range specs {
		spec := &specs[i]
		if spec.Inline {
			inline = spec
			continue
		}
		byName[spec.Name] = spec
	}

	var rest []ir.KeyVal
	for i := range node.Fields {
		keyNode := node.Fields[i]
		if keyNode.Type != ir.StringType {
			return typeErr(path, "string key", keyNode)
		}
		key := keyNode.String
		spec, found := byName[key]
		if !found {
			if inline != nil {
				rest = append(rest, ir.KeyVal{Key: keyNode, Val: node.Values[i]})
				continue
			}
			if u.cfg.DisallowUnknown {
				return &UnmarshalError{
					FieldPath: path,
					Message:   fmt.Sprintf("unknown field %q", key),
				}
			}
			continue
		}
		fieldVal, err := allocFieldByIndex(val, spec.Index)
		if err != nil {
			return &UnmarshalError{FieldPath: fieldPath(path, key), Message: err.Error()}
		}
		if err := u.assign(node.Values[i], fieldVal, fieldPath(path, key)); err != nil {
			return err
		}
	}

	if inline != nil && len(rest) > 0 {
		restNode, err := ir.FromKeyVals(rest)
		if err != nil {
			return &UnmarshalError{FieldPath: path, Message: "duplicate inline keys", Err: err}
		}
		fieldVal, err := allocFieldByIndex(val, inline.Index)
		if err != nil {
			return &UnmarshalError{FieldPath: path, Message: err.Error()}
		}
		return u.assign(restNode, fieldVal, path)
	}
	return nil
}

// anyValue projects a node onto untyped Go values: nil, bool, int64,
// float64, string, []interface{}, and map[string]interface{}. Mappings
// with non-string keys fall back to map[interface{}]interface{}.
func (u *unmarshaler) anyValue(node *ir.Node, path string) (interface{}, error) {
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.StringType:
		return node.String, nil
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64, nil
		}
		if node.Float64 != nil {
			return *node.Float64, nil
		}
		return math.NaN(), nil
	case ir.SequenceType:
		out := make([]interface{}, len(node.Values))
		for i, elem := range node.Values {
			v, err := u.anyValue(elem, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case ir.MappingType:
		stringKeys := true
		for _, keyNode := range node.Fields {
			if keyNode.Type != ir.StringType {
				stringKeys = false
				break
			}
		}
		if stringKeys {
			out := make(map[string]interface{}, len(node.Fields))
			for i := range node.Fields {
				key := node.Fields[i].String
				v, err := u.anyValue(node.Values[i], fieldPath(path, key))
				if err != nil {
					return nil, err
				}
				out[key] = v
			}
			return out, nil
		}
		out := make(map[interface{}]interface{}, len(node.Fields))
		for i := range node.Fields {
			var key interface{}
			switch node.Fields[i].Type {
			case ir.SequenceType, ir.MappingType:
				// Go maps cannot hash the projected slice or map;
				// keep such keys as their flow text
				text, err := keyText(node.Fields[i], path)
				if err != nil {
					return nil, err
				}
				key = text
			default:
				k, err := u.anyValue(node.Fields[i], path)
				if err != nil {
					return nil, err
				}
				key = k
			}
			v, err := u.anyValue(node.Values[i], path)
			if err != nil {
				return nil, err
			}
			out[key] = v
		}
		return out, nil
	}
	return nil, &UnmarshalError{
		FieldPath: path,
		Message:   fmt.Sprintf("unsupported node type %v", node.Type),
	}
}

func keyText(key *ir.Node, path string) (string, error) {
	var buf bytes.Buffer
	if err := encode.Encode(key, &buf, encode.Flow(true)); err != nil {
		return "", &UnmarshalError{FieldPath: path, Message: "unsupported mapping key", Err: err}
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// allocFieldByIndex is FieldByIndex that allocates nil embedded
// pointers along the way.
func allocFieldByIndex(val reflect.Value, index []int) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 {
			if val.Kind() == reflect.Ptr {
				if val.IsNil() {
					if !val.CanSet() {
						return reflect.Value{}, fmt.Errorf("cannot allocate embedded pointer")
					}
					val.Set(reflect.New(val.Type().Elem()))
				}
				val = val.Elem()
			}
		}
		val = val.Field(x)
	}
	return val, nil
}

func typeErr(path, expected string, node *ir.Node) error {
	return &TypeError{
		FieldPath: path,
		Expected:  expected,
		Actual:    nodeTypeName(node),
	}
}

func nodeTypeName(node *ir.Node) string {
	switch node.Type {
	case ir.NullType:
		return "null"
	case ir.BoolType:
		return "bool"
	case ir.NumberType:
		if node.Float64 != nil {
			return "float"
		}
		return "integer"
	case ir.StringType:
		return "string"
	case ir.SequenceType:
		return "sequence"
	case ir.MappingType:
		return "mapping"
	}
	return "unknown"
}
