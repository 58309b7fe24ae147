package gomap

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// fieldSpec is one mapping entry contributed by a struct field. Index
// is the reflect index path from the outer struct, so embedded fields
// resolve with FieldByIndex.
type fieldSpec struct {
	Name      string
	Index     []int
	Type      reflect.Type
	OmitEmpty bool
	Inline    bool
}

// tagOptions is the parsed form of a `yaml:"..."` struct tag.
type tagOptions struct {
	Name      string
	Skip      bool
	OmitEmpty bool
	Inline    bool
}

func parseTag(tag string) (tagOptions, error) {
	var opts tagOptions
	if tag == "" {
		return opts, nil
	}
	parts := strings.Split(tag, ",")
	if parts[0] == "-" && len(parts) == 1 {
		opts.Skip = true
		return opts, nil
	}
	opts.Name = parts[0]
	for _, part := range parts[1:] {
		switch part {
		case "omitempty":
			opts.OmitEmpty = true
		case "inline":
			opts.Inline = true
		case "":
		default:
			return opts, fmt.Errorf("unknown yaml tag option %q", part)
		}
	}
	return opts, nil
}

var fieldCache sync.Map // reflect.Type -> []fieldSpec

// structFields returns the mapping entries of a struct type in
// declaration order. Embedded structs are flattened; a name collision
// between an embedded field and a direct one is an error.
func structFields(typ reflect.Type) ([]fieldSpec, error) {
	if cached, ok := fieldCache.Load(typ); ok {
		return cached.([]fieldSpec), nil
	}
	specs, err := collectFields(typ, nil)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if spec.Inline {
			continue
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("duplicate field name %q in %s", spec.Name, typ)
		}
		seen[spec.Name] = true
	}
	fieldCache.Store(typ, specs)
	return specs, nil
}

func collectFields(typ reflect.Type, index []int) ([]fieldSpec, error) {
	var specs []fieldSpec
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() && !field.Anonymous {
			continue
		}
		opts, err := parseTag(field.Tag.Get("yaml"))
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", typ, field.Name, err)
		}
		if opts.Skip {
			continue
		}
		fieldIndex := append(append([]int(nil), index...), i)
		if field.Anonymous && opts.Name == "" && !opts.Inline {
			embedded := field.Type
			if embedded.Kind() == reflect.Ptr {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				// an embedded struct of unexported type still
				// promotes its exported fields, unless it hides
				// behind an unexported pointer we cannot allocate
				if !field.IsExported() && field.Type.Kind() == reflect.Ptr {
					continue
				}
				sub, err := collectFields(embedded, fieldIndex)
				if err != nil {
					return nil, err
				}
				specs = append(specs, sub...)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		spec := fieldSpec{
			Name:      field.Name,
			Index:     fieldIndex,
			Type:      field.Type,
			OmitEmpty: opts.OmitEmpty,
			Inline:    opts.Inline,
		}
		if opts.Name != "" {
			spec.Name = opts.Name
		}
		if spec.Inline {
			k := field.Type.Kind()
			if k != reflect.Struct && !(k == reflect.Map && field.Type.Key().Kind() == reflect.String) {
				return nil, fmt.Errorf("field %s.%s: inline requires a struct or string-keyed map", typ, field.Name)
			}
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// isEmptyValue mirrors the omitempty rule of encoding/json.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
