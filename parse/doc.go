// Package parse builds ir value trees from YAML text.
//
// Parse handles single documents, ParseAll handles --- separated
// streams. The parser consumes structural events from package stream
// and applies the semantic layer on top:
//
//   - implicit typing of plain scalars (null, bool, int, float)
//   - explicit core tags (!!str, !!int, ...) forcing scalar types
//   - unknown tags carried verbatim on nodes
//   - anchor definition and alias expansion by deep copy, with no
//     forward references
//   - merge keys (<<) spliced with explicit-key precedence
//   - structurally duplicate mapping keys as hard errors
//
// Failure reasons are the package sentinels (ErrSyntax,
// ErrDuplicateMapKey, ...) wrapped in Error values carrying source
// positions; test for them with errors.Is.
package parse
