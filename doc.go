// Package yaml is a bidirectional codec between Go values and YAML
// text, built on an explicit document tree.
//
// # Usage
//
//	type Config struct {
//	    Name     string `yaml:"name"`
//	    Replicas int    `yaml:"replicas,omitempty"`
//	}
//
//	data, err := yaml.Marshal(cfg)
//
//	var cfg Config
//	err = yaml.Unmarshal(data, &cfg)
//
// For structural work, Parse returns the document as an *ir.Node tree
// that preserves mapping order, the int/float distinction, tags, and
// anchors; encode.Encode renders a tree back to text. ToJSON/FromJSON
// bridge to JSON, Patch applies RFC 6902 patches over that bridge, and
// Diff compares canonical encodings.
//
// # Subpackages
//
//   - ir: the document tree
//   - token: scanning, scalar resolution, quoting
//   - stream: the event layer between tokens and trees
//   - parse: text to tree
//   - encode: tree to text
//   - gomap: tree to Go values by reflection
//   - eval: expressions over documents
package yaml
