package yaml

import (
	"github.com/signadot/yaml-format/go-yaml/ir"
	"github.com/signadot/yaml-format/go-yaml/parse"
)

// ToJSON converts a YAML document to JSON. Tags and anchors are
// dropped; non-string mapping keys and non-finite floats are errors.
func ToJSON(data []byte) ([]byte, error) {
	node, err := parse.Parse(data)
	if err != nil {
		return nil, err
	}
	return ir.ToJSON(node)
}

// FromJSON converts JSON to a YAML document.
func FromJSON(data []byte) ([]byte, error) {
	node, err := ir.FromJSON(data)
	if err != nil {
		return nil, err
	}
	out, err := EncodeString(node)
	if err != nil {
		return nil, err
	}
	return append([]byte(out), '\n'), nil
}
