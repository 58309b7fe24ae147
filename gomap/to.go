package gomap

import (
	"encoding"
	"fmt"
	"math"
	"reflect"

	"github.com/signadot/yaml-format/go-yaml/ir"
)

// ToIR converts a Go value to an IR node. Values implementing
// IRMarshaler produce their own node; encoding.TextMarshaler types
// become strings; everything else is walked by reflection.
func ToIR(v interface{}, opts ...MapOption) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	m := &marshaler{visited: make(map[uintptr]string)}
	for _, opt := range opts {
		opt.applyMap(&m.cfg)
	}
	return m.node(reflect.ValueOf(v), "")
}

type marshaler struct {
	cfg mapConfig
	// visited maps pointer addresses to the path where a reference
	// type was first entered, so cycles fail instead of recursing.
	visited map[uintptr]string
}

func (m *marshaler) cycleErr(addr uintptr, path string) error {
	return &MarshalError{
		FieldPath: path,
		Message:   fmt.Sprintf("circular reference, first seen at %s", m.visited[addr]),
	}
}

func (m *marshaler) node(val reflect.Value, path string) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}

	if node, done, err := m.hooks(val, path); done {
		return node, err
	}

	typ := val.Type()
	switch typ.Kind() {
	case reflect.Ptr:
		if val.IsNil() {
			return ir.Null(), nil
		}
		addr := val.Pointer()
		if _, seen := m.visited[addr]; seen {
			return nil, m.cycleErr(addr, path)
		}
		m.visited[addr] = path
		node, err := m.node(val.Elem(), path)
		delete(m.visited, addr)
		return node, err

	case reflect.Interface:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return m.node(val.Elem(), path)

	case reflect.String:
		return ir.FromString(val.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := val.Uint()
		if u > math.MaxInt64 {
			return nil, &MarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("value %d overflows int64", u),
			}
		}
		return ir.FromInt(int64(u)), nil

	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float()), nil

	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil

	case reflect.Slice, reflect.Array:
		return m.sequence(val, path)

	case reflect.Map:
		return m.mapping(val, path)

	case reflect.Struct:
		kvs, err := m.structKeyVals(val, path)
		if err != nil {
			return nil, err
		}
		return fromKeyVals(kvs, path)

	default:
		return nil, &MarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("unsupported type %s", typ),
		}
	}
}

// hooks tries IRMarshaler then encoding.TextMarshaler, on the value
// and on its address when addressable.
func (m *marshaler) hooks(val reflect.Value, path string) (*ir.Node, bool, error) {
	if val.Kind() == reflect.Ptr && val.IsNil() {
		return nil, false, nil
	}
	candidates := []reflect.Value{val}
	if val.CanAddr() {
		candidates = append(candidates, val.Addr())
	}
	for _, cand := range candidates {
		if !cand.CanInterface() {
			continue
		}
		switch iface := cand.Interface().(type) {
		case IRMarshaler:
			node, err := iface.MarshalIR()
			if err != nil {
				err = &MarshalError{FieldPath: path, Message: "MarshalIR failed", Err: err}
			}
			return node, true, err
		case encoding.TextMarshaler:
			text, err := iface.MarshalText()
			if err != nil {
				return nil, true, &MarshalError{FieldPath: path, Message: "MarshalText failed", Err: err}
			}
			return ir.FromString(string(text)), true, nil
		}
	}
	return nil, false, nil
}

func (m *marshaler) sequence(val reflect.Value, path string) (*ir.Node, error) {
	if val.Kind() == reflect.Slice && !val.IsNil() {
		addr := val.Pointer()
		if _, seen := m.visited[addr]; seen {
			return nil, m.cycleErr(addr, path)
		}
		m.visited[addr] = path
		defer delete(m.visited, addr)
	}
	elems := make([]*ir.Node, val.Len())
	for i := range elems {
		elem, err := m.node(val.Index(i), indexPath(path, i))
		if err != nil {
			return nil, err
		}
		elems[i] = elem
	}
	return ir.FromSlice(elems), nil
}

// mapping emits string-keyed maps in sorted key order so output is
// deterministic.
func (m *marshaler) mapping(val reflect.Value, path string) (*ir.Node, error) {
	if val.IsNil() {
		return ir.Null(), nil
	}
	if val.Type().Key().Kind() != reflect.String {
		return nil, &MarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("map keys must be strings, got %s", val.Type().Key()),
		}
	}
	addr := val.Pointer()
	if _, seen := m.visited[addr]; seen {
		return nil, m.cycleErr(addr, path)
	}
	m.visited[addr] = path
	defer delete(m.visited, addr)

	irMap := make(map[string]*ir.Node, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		key := iter.Key().String()
		node, err := m.node(iter.Value(), fieldPath(path, key))
		if err != nil {
			return nil, err
		}
		irMap[key] = node
	}
	return ir.FromMap(irMap), nil
}

// structKeyVals returns a struct's entries in field declaration order,
// with inline fields spliced in place.
func (m *marshaler) structKeyVals(val reflect.Value, path string) ([]ir.KeyVal, error) {
	specs, err := structFields(val.Type())
	if err != nil {
		return nil, &MarshalError{FieldPath: path, Message: err.Error()}
	}
	var kvs []ir.KeyVal
	for _, spec := range specs {
		fieldVal, err := fieldByIndex(val, spec.Index)
		if err != nil {
			continue // nil embedded pointer, nothing to emit
		}
		if spec.OmitEmpty && isEmptyValue(fieldVal) {
			continue
		}
		if spec.Inline {
			inlined, err := m.inlineKeyVals(fieldVal, path)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, inlined...)
			continue
		}
		node, err := m.node(fieldVal, fieldPath(path, spec.Name))
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString(spec.Name), Val: node})
	}
	return kvs, nil
}

func (m *marshaler) inlineKeyVals(val reflect.Value, path string) ([]ir.KeyVal, error) {
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, nil
		}
		val = val.Elem()
	}
	if val.Kind() == reflect.Struct {
		return m.structKeyVals(val, path)
	}
	// string-keyed map, checked at tag parse time
	if val.IsNil() {
		return nil, nil
	}
	node, err := m.mapping(val, path)
	if err != nil {
		return nil, err
	}
	kvs := make([]ir.KeyVal, len(node.Fields))
	for i := range node.Fields {
		kvs[i] = ir.KeyVal{Key: node.Fields[i], Val: node.Values[i]}
	}
	return kvs, nil
}

func fromKeyVals(kvs []ir.KeyVal, path string) (*ir.Node, error) {
	node, err := ir.FromKeyVals(kvs)
	if err != nil {
		return nil, &MarshalError{FieldPath: path, Message: "conflicting field names", Err: err}
	}
	return node, nil
}

// fieldByIndex is FieldByIndex that reports nil embedded pointers
// instead of panicking.
func fieldByIndex(val reflect.Value, index []int) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 {
			if val.Kind() == reflect.Ptr {
				if val.IsNil() {
					return reflect.Value{}, fmt.Errorf("nil embedded pointer")
				}
				val = val.Elem()
			}
		}
		val = val.Field(x)
	}
	return val, nil
}

func fieldPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
