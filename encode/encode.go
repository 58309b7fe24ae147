package encode

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/yaml-format/go-yaml/ir"
	"github.com/signadot/yaml-format/go-yaml/token"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int
	flow          bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode renders a node as YAML text. Block style by default, with
// empty collections in flow ({} and []); the Flow option renders the
// whole value on one line. A trailing newline is always written.
//
// Encoded output re-parses to a structurally equal node: plain scalars
// are quoted whenever implicit typing would change their meaning, and
// multiline strings render as literal blocks when the block form can
// carry them.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if es.indent < 1 {
		return fmt.Errorf("%w: indent must be positive", ErrEncoding)
	}
	e := &enc{w: w, es: es, aliases: anchorAliases(node)}
	if es.flow {
		e.flowValue(node)
	} else {
		e.node(node, es.depth)
	}
	e.ws("\n")
	return e.err
}

type enc struct {
	w       io.Writer
	es      *EncState
	aliases map[*ir.Node]string
	err     error
}

// anchorAliases finds, in output order, the nodes that repeat an
// already-written anchor with an equal value; those render as aliases.
func anchorAliases(root *ir.Node) map[*ir.Node]string {
	first := map[string]*ir.Node{}
	sites := map[*ir.Node]string{}
	var walk func(n *ir.Node)
	walk = func(n *ir.Node) {
		if n == nil {
			return
		}
		if n.Anchor != "" {
			if f, ok := first[n.Anchor]; ok {
				if ir.Equal(f, n) {
					sites[n] = n.Anchor
				}
			} else {
				first[n.Anchor] = n
			}
		}
		if n.Type == ir.MappingType {
			for i := range n.Fields {
				walk(n.Fields[i])
				walk(n.Values[i])
			}
			return
		}
		for _, v := range n.Values {
			walk(v)
		}
	}
	walk(root)
	if len(sites) == 0 {
		return nil
	}
	return sites
}

// writeAlias writes *name when n repeats an anchor already written,
// reporting whether it did.
func (e *enc) writeAlias(n *ir.Node) bool {
	name, ok := e.aliases[n]
	if !ok {
		return false
	}
	e.ws(e.color(n.Type, AnchorColor, "*"+name))
	return true
}

func (e *enc) aliased(n *ir.Node) bool {
	_, ok := e.aliases[n]
	return ok
}

func (e *enc) ws(s string) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write([]byte(s))
}

func (e *enc) color(t ir.Type, attr ColorAttr, s string) string {
	if e.es.Color == nil {
		return s
	}
	return e.es.Color(t, attr, s)
}

func (e *enc) ind(depth int) string {
	return strings.Repeat(" ", depth*e.es.indent)
}

// propsText renders the anchor and tag prefix of a node, with a
// trailing space when non-empty.
func (e *enc) propsText(node *ir.Node) string {
	res := ""
	if node.Anchor != "" {
		res += e.color(node.Type, AnchorColor, "&"+node.Anchor) + " "
	}
	if node.Tag != "" {
		res += e.color(node.Type, TagColor, node.Tag) + " "
	}
	return res
}

// node writes a block-form value whose first line the cursor already
// sits on, at the indentation of depth.
func (e *enc) node(n *ir.Node, depth int) {
	if e.err != nil {
		return
	}
	if e.writeAlias(n) {
		return
	}
	switch n.Type {
	case ir.MappingType:
		if len(n.Fields) == 0 {
			e.ws(e.propsText(n))
			e.flowCollection(n)
			return
		}
		e.ownLineProps(n, depth)
		e.entries(n, depth)
	case ir.SequenceType:
		if len(n.Values) == 0 {
			e.ws(e.propsText(n))
			e.flowCollection(n)
			return
		}
		e.ownLineProps(n, depth)
		e.items(n, depth)
	default:
		e.scalarInline(n, depth)
	}
}

// ownLineProps writes collection properties on their own line so the
// entries below stay aligned.
func (e *enc) ownLineProps(n *ir.Node, depth int) {
	p := e.propsText(n)
	if p == "" {
		return
	}
	e.ws(strings.TrimRight(p, " "))
	e.ws("\n")
	e.ws(e.ind(depth))
}

// entries writes mapping entries; the cursor sits at the first entry's
// position.
func (e *enc) entries(n *ir.Node, depth int) {
	for i := range n.Fields {
		if i > 0 {
			e.ws("\n")
			e.ws(e.ind(depth))
		}
		e.entry(n.Fields[i], n.Values[i], depth)
	}
}

func (e *enc) entry(key, val *ir.Node, depth int) {
	if key.Type == ir.MappingType || key.Type == ir.SequenceType {
		e.err = fmt.Errorf("%w: collection mapping keys are not supported", ErrEncoding)
		return
	}
	if !e.writeAlias(key) {
		e.ws(e.propsText(key))
		e.ws(e.color(key.Type, FieldColor, keyText(key)))
	}
	e.ws(e.color(key.Type, SepColor, ":"))
	if inlineValue(val) || e.aliased(val) {
		e.ws(" ")
		e.scalarInline(val, depth)
		return
	}
	// a non-empty collection continues below the key; its properties
	// stay on the key line
	if p := e.propsText(val); p != "" {
		e.ws(" ")
		e.ws(strings.TrimRight(p, " "))
	}
	e.ws("\n")
	e.ws(e.ind(depth + 1))
	if val.Type == ir.MappingType {
		e.entries(val, depth+1)
	} else {
		e.items(val, depth+1)
	}
}

// items writes sequence elements; the cursor sits at the first dash's
// position.
func (e *enc) items(n *ir.Node, depth int) {
	for i, v := range n.Values {
		if i > 0 {
			e.ws("\n")
			e.ws(e.ind(depth))
		}
		e.ws(e.color(ir.SequenceType, SepColor, "- "))
		e.seqValue(v, depth)
	}
}

// seqValue writes a sequence element after its dash. Nested non-empty
// collections continue on the dash line, indented one level past it.
func (e *enc) seqValue(v *ir.Node, depth int) {
	if e.writeAlias(v) {
		return
	}
	switch v.Type {
	case ir.MappingType:
		if len(v.Fields) == 0 {
			e.ws(e.propsText(v))
			e.flowCollection(v)
			return
		}
		if p := e.propsText(v); p != "" {
			e.ws(strings.TrimRight(p, " "))
			e.ws("\n")
			e.ws(e.ind(depth + 1))
		}
		e.entries(v, depth+1)
	case ir.SequenceType:
		if len(v.Values) == 0 {
			e.ws(e.propsText(v))
			e.flowCollection(v)
			return
		}
		if p := e.propsText(v); p != "" {
			e.ws(strings.TrimRight(p, " "))
			e.ws("\n")
			e.ws(e.ind(depth + 1))
		}
		e.items(v, depth+1)
	default:
		e.scalarInline(v, depth)
	}
}

// inlineValue reports whether val fits after "key: " on its key's
// line (scalars, multiline strings via block headers, and empty
// collections do).
func inlineValue(val *ir.Node) bool {
	switch val.Type {
	case ir.MappingType:
		return len(val.Fields) == 0
	case ir.SequenceType:
		return len(val.Values) == 0
	}
	return true
}

// scalarInline writes a scalar (or empty collection) whose rendering
// starts on the current line; depth is the enclosing depth, used by
// literal block bodies.
func (e *enc) scalarInline(n *ir.Node, depth int) {
	if e.writeAlias(n) {
		return
	}
	e.ws(e.propsText(n))
	switch n.Type {
	case ir.MappingType, ir.SequenceType:
		e.flowCollection(n)
	case ir.StringType:
		if strings.Contains(n.String, "\n") && blockable(n.String) {
			e.blockString(n.String, depth+1)
			return
		}
		e.ws(e.color(ir.StringType, ValueColor, quoteFlat(n.String)))
	default:
		e.ws(e.color(n.Type, ValueColor, scalarText(n)))
	}
}

// blockString writes a multiline string as a literal block scalar
// with its body indented to depth.
func (e *enc) blockString(s string, depth int) {
	header := "|"
	switch {
	case strings.HasSuffix(s, "\n\n"):
		header = "|+"
	case !strings.HasSuffix(s, "\n"):
		header = "|-"
	}
	body := strings.TrimRight(s, "\n")
	trailing := len(s) - len(body)
	e.ws(e.color(ir.StringType, SepColor, header))
	for _, ln := range strings.Split(body, "\n") {
		e.ws("\n")
		if ln != "" {
			e.ws(e.ind(depth))
			e.ws(e.color(ir.StringType, ValueColor, ln))
		}
	}
	// under |+ every trailing newline beyond the first is a blank line
	for i := 1; i < trailing; i++ {
		e.ws("\n")
	}
}

// flowValue writes a node in flow form on the current line.
func (e *enc) flowValue(node *ir.Node) {
	if e.err != nil {
		return
	}
	if e.writeAlias(node) {
		return
	}
	e.ws(e.propsText(node))
	switch node.Type {
	case ir.MappingType, ir.SequenceType:
		e.flowCollection(node)
	case ir.StringType:
		e.ws(e.color(ir.StringType, ValueColor, quoteFlat(node.String)))
	default:
		e.ws(e.color(node.Type, ValueColor, scalarText(node)))
	}
}

func (e *enc) flowCollection(node *ir.Node) {
	if node.Type == ir.SequenceType {
		e.ws(e.color(node.Type, SepColor, "["))
		for i, v := range node.Values {
			if i > 0 {
				e.ws(e.color(node.Type, SepColor, ", "))
			}
			e.flowValue(v)
		}
		e.ws(e.color(node.Type, SepColor, "]"))
		return
	}
	e.ws(e.color(node.Type, SepColor, "{"))
	for i := range node.Fields {
		if i > 0 {
			e.ws(e.color(node.Type, SepColor, ", "))
		}
		key := node.Fields[i]
		if key.Type == ir.MappingType || key.Type == ir.SequenceType {
			e.err = fmt.Errorf("%w: collection mapping keys are not supported", ErrEncoding)
			return
		}
		if !e.writeAlias(key) {
			e.ws(e.propsText(key))
			e.ws(e.color(key.Type, FieldColor, keyText(key)))
		}
		e.ws(e.color(node.Type, SepColor, ": "))
		e.flowValue(node.Values[i])
	}
	e.ws(e.color(node.Type, SepColor, "}"))
}

// keyText renders a scalar node in key position, always on one line.
func keyText(key *ir.Node) string {
	if key.Type == ir.StringType {
		return quoteFlat(key.String)
	}
	return scalarText(key)
}

// scalarText renders a non-string scalar.
func scalarText(node *ir.Node) string {
	switch node.Type {
	case ir.NullType:
		return "null"
	case ir.BoolType:
		if node.Bool {
			return "true"
		}
		return "false"
	case ir.NumberType:
		if node.Int64 != nil {
			return token.FormatInt(*node.Int64)
		}
		return token.FormatFloat(*node.Float64)
	}
	return ""
}

// quoteFlat quotes a string for single-line contexts: plain when
// possible, single quotes next, double quotes as a last resort.
func quoteFlat(v string) string {
	if !token.NeedsQuote(v) {
		return v
	}
	if token.CanSingleQuote(v) {
		return token.QuoteSingle(v)
	}
	return token.QuoteDouble(v)
}

// blockable reports whether a multiline string survives a literal
// block scalar: no control characters besides its newlines, and no
// line whose outer whitespace indentation handling would eat.
func blockable(s string) bool {
	for _, r := range s {
		if r != '\n' && (r < 0x20 || r == 0x7f) {
			return false
		}
	}
	for _, ln := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		if ln != strings.TrimRight(ln, " \t") {
			return false
		}
		if strings.HasPrefix(ln, " ") || strings.HasPrefix(ln, "\t") {
			return false
		}
	}
	return true
}
