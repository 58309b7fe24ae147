package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/yaml-format/go-yaml/ir"
)

// MustString renders a node as YAML without the trailing newline,
// panicking on encoding errors. Intended for values known to encode,
// such as trees built from parsed input.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
