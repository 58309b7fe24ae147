// Package eval runs expressions against YAML documents.
//
// A document is projected onto plain Go values with ToAny, evaluated
// with expr-lang, and the result is lifted back into a node with
// FromAny:
//
//	node, _ := parse.Parse([]byte("replicas: 3\nname: web\n"))
//	out, err := eval.Eval(node, "replicas * 2")
//	// out is the number node 6
//
// Top-level mapping keys become identifiers in the expression
// environment; the whole document is always available as "doc".
package eval
