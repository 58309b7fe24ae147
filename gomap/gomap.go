package gomap

import "github.com/signadot/yaml-format/go-yaml/ir"

// IRMarshaler lets a type produce its own IR node. ToIR calls it
// before any reflection happens.
type IRMarshaler interface {
	MarshalIR() (*ir.Node, error)
}

// IRUnmarshaler lets a type consume an IR node directly. FromIR calls
// it before any reflection happens.
type IRUnmarshaler interface {
	UnmarshalIR(node *ir.Node) error
}
