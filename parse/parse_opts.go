package parse

import (
	"github.com/signadot/yaml-format/go-yaml/ir"
	"github.com/signadot/yaml-format/go-yaml/token"
)

const (
	// DefaultMaxDepth bounds value nesting. Deeply nested documents
	// are hostile input, not data.
	DefaultMaxDepth = 1000

	// defaultAliasBudget bounds the total number of nodes alias
	// expansion may produce per document, which is what actually
	// explodes in amplification attacks.
	defaultAliasBudget = 1 << 22
)

type parseOpts struct {
	maxDepth    int
	aliasBudget int
	positions   map[*ir.Node]*token.Pos
}

func newParseOpts(opts []ParseOption) *parseOpts {
	pOpts := &parseOpts{
		maxDepth:    DefaultMaxDepth,
		aliasBudget: defaultAliasBudget,
	}
	for _, f := range opts {
		f(pOpts)
	}
	return pOpts
}

type ParseOption func(*parseOpts)

// MaxDepth overrides the nesting depth limit.
func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}

// ParsePositions records the source position of every parsed node in
// m. This allows consumers to report errors against the input text
// after parsing has finished.
func ParsePositions(m map[*ir.Node]*token.Pos) ParseOption {
	return func(o *parseOpts) { o.positions = m }
}

// GetPositions extracts the positions map from the provided options.
func GetPositions(opts ...ParseOption) map[*ir.Node]*token.Pos {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	return pOpts.positions
}
