// Package gomap converts between IR nodes and native Go values by
// reflection.
//
// # Usage
//
//	type User struct {
//	    Name  string `yaml:"name"`
//	    Age   int    `yaml:"age,omitempty"`
//	    Notes []string
//	}
//
//	node, err := gomap.ToIR(user)
//
//	var back User
//	err = gomap.FromIR(node, &back)
//
// Field handling follows encoding/json conventions: only exported
// fields participate, the `yaml` struct tag renames a field or drops
// it with "-", and embedded structs are flattened into the parent
// mapping. Matching on decode is case-sensitive.
//
// Types may take over their own conversion by implementing IRMarshaler
// or IRUnmarshaler; encoding.TextMarshaler and encoding.TextUnmarshaler
// are honored as a fallback for scalar-like types.
package gomap
