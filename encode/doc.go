// Package encode renders ir nodes as YAML text.
//
// # Usage
//
//	node, _ := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: ir.FromString("name"), Val: ir.FromString("alice")},
//	    {Key: ir.FromString("age"), Val: ir.FromInt(30)},
//	})
//	err := encode.Encode(node, os.Stdout)
//
//	// one-line flow style
//	err = encode.Encode(node, os.Stdout, encode.Flow(true))
//
//	// wider indentation
//	err = encode.Encode(node, os.Stdout, encode.Indent(4))
//
// Output always re-parses to a structurally equal tree: strings whose
// text would be misread as null, bool, or a number come out quoted,
// multiline strings come out as literal blocks, and anchors and tags
// on nodes are written back.
//
// # Related Packages
//
//   - github.com/signadot/yaml-format/go-yaml/ir - value trees
//   - github.com/signadot/yaml-format/go-yaml/parse - text to trees
package encode
