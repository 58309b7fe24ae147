package yaml

import (
	"bytes"

	"github.com/signadot/yaml-format/go-yaml/encode"
	"github.com/signadot/yaml-format/go-yaml/gomap"
	"github.com/signadot/yaml-format/go-yaml/ir"
	"github.com/signadot/yaml-format/go-yaml/parse"
)

// Marshal renders a Go value as a YAML document.
func Marshal(v interface{}, opts ...gomap.MapOption) ([]byte, error) {
	node, err := gomap.ToIR(v, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encode.Encode(node, &buf, gomap.ToEncodeOptions(opts...)...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses a single YAML document into a Go value. v must be a
// non-nil pointer.
func Unmarshal(data []byte, v interface{}, opts ...gomap.UnmapOption) error {
	node, err := parse.Parse(data, gomap.ToParseOptions(opts...)...)
	if err != nil {
		return err
	}
	return gomap.FromIR(node, v, opts...)
}

// Parse parses a single YAML document into a node tree. Empty input is
// a null document; more than one document is an error.
func Parse(data []byte, opts ...parse.ParseOption) (*ir.Node, error) {
	return parse.Parse(data, opts...)
}

// ParseAll parses a document stream. Empty input yields zero documents.
func ParseAll(data []byte, opts ...parse.ParseOption) ([]*ir.Node, error) {
	return parse.ParseAll(data, opts...)
}

// EncodeString renders a node without the trailing newline.
func EncodeString(node *ir.Node, opts ...encode.EncodeOption) (string, error) {
	var buf bytes.Buffer
	if err := encode.Encode(node, &buf, opts...); err != nil {
		return "", err
	}
	out := buf.String()
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	return out, nil
}
