// Package ir provides the in-memory representation for YAML documents.
//
// # Overview
//
// All YAML documents handled by this module (parsed from text, built
// programmatically, or produced from Go values) are trees of ir.Node.
// A Node is a recursive tagged union: null, bool, number, string,
// sequence, or mapping, plus an optional explicit tag and an optional
// anchor name kept for re-emission.
//
// # Structure constraints
//
// For MappingType nodes, Fields[i] is the key for the value at
// Values[i], so there are always the same number of fields as values.
// Keys may be any node and are compared structurally; a mapping must
// not contain two structurally equal keys. FromKeyVals enforces this
// and fails rather than keeping the last value.
//
// Number values live under exactly one of:
//   - Int64: the literal looked like an integer (64-bit signed)
//   - Float64: the literal looked like a float (IEEE-754 double)
//
// The distinction survives round trips: 1 and 1.0 are different values.
//
// # Ownership
//
// Ownership is strictly tree shaped. Nodes are never shared between
// trees: Clone produces fully independent copies, and alias resolution
// during parsing clones the anchored node into place. The Anchor field
// is cosmetic metadata for re-emission and carries no sharing
// semantics.
//
// # Comparison and hashing
//
// Equal is structural and order-independent for mappings. Compare is a
// total order useful for sorting; it is order-sensitive for mappings.
// Hash is consistent with Equal within a process.
//
// # Related packages
//
//   - github.com/signadot/yaml-format/go-yaml/parse - parses text into nodes
//   - github.com/signadot/yaml-format/go-yaml/encode - encodes nodes to text
//   - github.com/signadot/yaml-format/go-yaml/gomap - maps nodes to Go values
package ir
