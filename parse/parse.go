package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/yaml-format/go-yaml/ir"
	"github.com/signadot/yaml-format/go-yaml/stream"
	"github.com/signadot/yaml-format/go-yaml/token"
)

// Parse parses a single-document input. Empty input parses to a null
// node; inputs holding more than one document are an error, use
// ParseAll for streams.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	docs, err := ParseAll(d, opts...)
	if err != nil {
		return nil, err
	}
	switch len(docs) {
	case 0:
		return ir.Null(), nil
	case 1:
		return docs[0], nil
	}
	return nil, errAt(ErrSyntax, fmt.Sprintf("%d documents in input, want one", len(docs)), nil)
}

// ParseAll parses a multi-document stream, one node per document.
func ParseAll(d []byte, opts ...ParseOption) ([]*ir.Node, error) {
	pOpts := newParseOpts(opts)
	evs, err := stream.Events(d)
	if err != nil {
		if errors.Is(err, stream.ErrDepth) {
			return nil, errAt(ErrRecursionLimit, err.Error(), nil)
		}
		return nil, err
	}
	p := &parser{evs: evs, opts: pOpts}
	var docs []*ir.Node
	for !p.done() {
		doc, err := p.document()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

type parser struct {
	evs  []stream.Event
	i    int
	opts *parseOpts

	// per-document state
	anchors map[string]*ir.Node
	budget  int
}

func (p *parser) done() bool {
	return p.i >= len(p.evs)
}

func (p *parser) peek() *stream.Event {
	if p.done() {
		return nil
	}
	return &p.evs[p.i]
}

func (p *parser) next() *stream.Event {
	e := p.peek()
	if e != nil {
		p.i++
	}
	return e
}

func (p *parser) track(node *ir.Node, pos *token.Pos) {
	if p.opts.positions != nil && pos != nil {
		p.opts.positions[node] = pos
	}
}

func (p *parser) document() (*ir.Node, error) {
	ev := p.next()
	if ev == nil || ev.Type != stream.EventBeginDocument {
		return nil, errAt(ErrUnexpectedEvent, evText(ev), evPos(ev))
	}
	p.anchors = map[string]*ir.Node{}
	p.budget = p.opts.aliasBudget
	node, err := p.node(0)
	if err != nil {
		return nil, err
	}
	ev = p.next()
	if ev == nil || ev.Type != stream.EventEndDocument {
		return nil, errAt(ErrUnexpectedEvent, evText(ev), evPos(ev))
	}
	return node, nil
}

func (p *parser) node(depth int) (*ir.Node, error) {
	if depth > p.opts.maxDepth {
		return nil, errAt(ErrRecursionLimit,
			fmt.Sprintf("nesting deeper than %d", p.opts.maxDepth), evPos(p.peek()))
	}
	ev := p.next()
	if ev == nil {
		return nil, errAt(ErrUnexpectedEvent, "end of stream", nil)
	}
	var (
		node *ir.Node
		err  error
	)
	switch ev.Type {
	case stream.EventScalar:
		node, err = p.scalar(ev)
	case stream.EventAlias:
		return p.alias(ev)
	case stream.EventBeginMapping:
		node, err = p.mapping(ev, depth)
	case stream.EventBeginSequence:
		node, err = p.sequence(ev, depth)
	default:
		return nil, errAt(ErrUnexpectedEvent, ev.String(), ev.Pos)
	}
	if err != nil {
		return nil, err
	}
	// anchors resolve only after their node is complete, so an alias
	// can never reach forward or into its own subtree
	if ev.Anchor != "" {
		node.Anchor = ev.Anchor
		p.anchors[ev.Anchor] = node
	}
	p.track(node, ev.Pos)
	return node, nil
}

// alias expands a *name reference to a deep copy of the anchored
// node. Copies are independent: mutating one leaves the others alone.
func (p *parser) alias(ev *stream.Event) (*ir.Node, error) {
	target, ok := p.anchors[ev.Value]
	if !ok {
		return nil, errAt(ErrUnknownAnchor, "*"+ev.Value, ev.Pos)
	}
	p.budget -= nodeCount(target)
	if p.budget < 0 {
		return nil, errAt(ErrRecursionLimit, "alias expansion too large", ev.Pos)
	}
	cp := target.Clone()
	cp.Anchor = ""
	p.track(cp, ev.Pos)
	return cp, nil
}

// coreScalarTags are the core-schema tags that force a scalar type
// instead of surviving as Node.Tag.
var coreScalarTags = map[string]token.Kind{
	"!!str":   token.KindString,
	"!!null":  token.KindNull,
	"!!bool":  token.KindBool,
	"!!int":   token.KindInt,
	"!!float": token.KindFloat,
}

func (p *parser) scalar(ev *stream.Event) (*ir.Node, error) {
	if kind, ok := coreScalarTags[ev.Tag]; ok {
		return typedScalar(ev, kind)
	}
	var node *ir.Node
	if ev.Style.Quoted() {
		node = ir.FromString(ev.Value)
	} else {
		var err error
		node, err = plainScalar(ev)
		if err != nil {
			return nil, err
		}
	}
	if ev.Tag != "" {
		node.Tag = ev.Tag
	}
	return node, nil
}

// plainScalar applies core-schema implicit typing to an untagged
// plain scalar.
func plainScalar(ev *stream.Event) (*ir.Node, error) {
	v := ev.Value
	switch kind := token.Resolve(v); kind {
	case token.KindNull:
		return ir.Null(), nil
	case token.KindBool:
		return ir.FromBool(boolValue(v)), nil
	case token.KindInt, token.KindFloat:
		i, f, err := token.ParseNumber(v, kind)
		if err != nil {
			return nil, errAt(ErrSyntax, v, ev.Pos)
		}
		if i != nil {
			return ir.FromInt(*i), nil
		}
		return ir.FromFloat(*f), nil
	}
	return ir.FromString(v), nil
}

// typedScalar resolves a scalar under an explicit core tag. The tag
// wins over style, so !!int '3' is the integer 3, but text that cannot
// inhabit the tagged type is an error rather than a silent string.
func typedScalar(ev *stream.Event, kind token.Kind) (*ir.Node, error) {
	v := ev.Value
	switch kind {
	case token.KindString:
		return ir.FromString(v), nil
	case token.KindNull:
		if token.Resolve(v) != token.KindNull {
			return nil, errAt(ErrInvalidTag, fmt.Sprintf("!!null on %q", v), ev.Pos)
		}
		return ir.Null(), nil
	case token.KindBool:
		if token.Resolve(v) != token.KindBool {
			return nil, errAt(ErrInvalidTag, fmt.Sprintf("!!bool on %q", v), ev.Pos)
		}
		return ir.FromBool(boolValue(v)), nil
	case token.KindInt:
		i, err := token.ParseInt(v)
		if err != nil {
			return nil, errAt(ErrInvalidTag, fmt.Sprintf("!!int on %q", v), ev.Pos)
		}
		return ir.FromInt(i), nil
	default:
		f, err := token.ParseFloat(v)
		if err != nil {
			return nil, errAt(ErrInvalidTag, fmt.Sprintf("!!float on %q", v), ev.Pos)
		}
		return ir.FromFloat(f), nil
	}
}

func boolValue(v string) bool {
	switch v {
	case "true", "True", "TRUE":
		return true
	}
	return false
}

func (p *parser) sequence(open *stream.Event, depth int) (*ir.Node, error) {
	var vals []*ir.Node
	for {
		ev := p.peek()
		if ev == nil {
			return nil, errAt(ErrUnexpectedEvent, "end of stream in sequence", open.Pos)
		}
		if ev.Type == stream.EventEndSequence {
			p.i++
			break
		}
		v, err := p.node(depth + 1)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return applyTag(ir.FromSlice(vals), open)
}

func (p *parser) mapping(open *stream.Event, depth int) (*ir.Node, error) {
	var (
		kvs    []ir.KeyVal
		merges []*ir.Node
	)
	for {
		ev := p.peek()
		if ev == nil {
			return nil, errAt(ErrUnexpectedEvent, "end of stream in mapping", open.Pos)
		}
		if ev.Type == stream.EventEndMapping {
			p.i++
			break
		}
		if isMergeKey(ev) {
			p.i++
			src, err := p.node(depth + 1)
			if err != nil {
				return nil, err
			}
			expanded, err := mergeSources(src, ev.Pos)
			if err != nil {
				return nil, err
			}
			merges = append(merges, expanded...)
			continue
		}
		key, err := p.node(depth + 1)
		if err != nil {
			return nil, err
		}
		val, err := p.node(depth + 1)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
	}
	kvs = spliceMerges(kvs, merges)
	node, err := ir.FromKeyVals(kvs)
	if err != nil {
		var dup *ir.DuplicateKeyError
		if errors.As(err, &dup) {
			return nil, errAt(ErrDuplicateMapKey, keyText(dup.Key), open.Pos)
		}
		return nil, err
	}
	return applyTag(node, open)
}

// isMergeKey recognizes the merge indicator: a plain, untagged <<
// in key position.
func isMergeKey(ev *stream.Event) bool {
	return ev.Type == stream.EventScalar &&
		ev.Style == stream.StylePlain &&
		ev.Tag == "" &&
		ev.Value == "<<"
}

// mergeSources normalizes a merge value to its source mappings: one
// mapping, or a sequence of mappings.
func mergeSources(src *ir.Node, pos *token.Pos) ([]*ir.Node, error) {
	switch src.Type {
	case ir.MappingType:
		return []*ir.Node{src}, nil
	case ir.SequenceType:
		for _, v := range src.Values {
			if v.Type != ir.MappingType {
				return nil, errAt(ErrSyntax, "merge source must be a mapping", pos)
			}
		}
		return src.Values, nil
	}
	return nil, errAt(ErrSyntax, "merge source must be a mapping", pos)
}

// spliceMerges appends merged entries whose keys are not already
// present. Explicit keys always win, and earlier merge sources win
// over later ones.
func spliceMerges(kvs []ir.KeyVal, merges []*ir.Node) []ir.KeyVal {
	if len(merges) == 0 {
		return kvs
	}
	have := func(k *ir.Node) bool {
		for i := range kvs {
			if ir.Equal(kvs[i].Key, k) {
				return true
			}
		}
		return false
	}
	for _, m := range merges {
		for i := range m.Fields {
			if have(m.Fields[i]) {
				continue
			}
			kvs = append(kvs, ir.KeyVal{Key: m.Fields[i], Val: m.Values[i]})
		}
	}
	return kvs
}

// applyTag applies a collection tag: core collection tags must match
// the value shape, anything else is carried verbatim.
func applyTag(node *ir.Node, open *stream.Event) (*ir.Node, error) {
	switch open.Tag {
	case "":
	case "!!map":
		if node.Type != ir.MappingType {
			return nil, errAt(ErrInvalidTag, "!!map on sequence", open.Pos)
		}
	case "!!seq":
		if node.Type != ir.SequenceType {
			return nil, errAt(ErrInvalidTag, "!!seq on mapping", open.Pos)
		}
	default:
		if _, ok := coreScalarTags[open.Tag]; ok {
			return nil, errAt(ErrInvalidTag, open.Tag+" on collection", open.Pos)
		}
		node.Tag = open.Tag
	}
	return node, nil
}

func nodeCount(y *ir.Node) int {
	n := 0
	y.Visit(func(_ *ir.Node, post bool) (bool, error) {
		if !post {
			n++
		}
		return true, nil
	})
	return n
}

func keyText(key *ir.Node) string {
	if key == nil {
		return "?"
	}
	if s, ok := key.AsString(); ok {
		return fmt.Sprintf("%q", s)
	}
	return key.Type.String() + " key"
}

func evText(ev *stream.Event) string {
	if ev == nil {
		return "end of stream"
	}
	return ev.String()
}

func evPos(ev *stream.Event) *token.Pos {
	if ev == nil {
		return nil
	}
	return ev.Pos
}
