package stream

import (
	"fmt"
	"io"

	"github.com/signadot/yaml-format/go-yaml/token"
)

// Decoder provides structural event-based decoding. Block nesting is
// resolved from token columns, so consumers see only the shape of each
// document: begin/end of documents, mappings and sequences, scalars,
// and aliases, in order.
type Decoder struct {
	evs  []Event
	next int
}

// NewDecoder creates a new Decoder reading from r. The whole input is
// scanned and structured up front; ReadEvent then replays the events.
func NewDecoder(r io.Reader, opts ...StreamOption) (*Decoder, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	evs, err := Events(d)
	if err != nil {
		return nil, err
	}
	return &Decoder{evs: evs}, nil
}

// ReadEvent reads the next structural event from the stream.
// Returns io.EOF when the stream is exhausted.
func (d *Decoder) ReadEvent() (*Event, error) {
	if d.next >= len(d.evs) {
		return nil, io.EOF
	}
	e := &d.evs[d.next]
	d.next++
	return e, nil
}

// Events scans a document and returns its full event stream. Every
// document in the input contributes a BeginDocument/EndDocument pair
// with exactly one value between them; empty documents hold a null
// scalar.
func Events(d []byte) ([]Event, error) {
	toks, err := token.Tokenize(d)
	if err != nil {
		return nil, err
	}
	// indentation tokens carry no information beyond the columns
	// already on every token
	kept := toks[:0]
	for _, t := range toks {
		if t.Type != token.TIndent {
			kept = append(kept, t)
		}
	}
	b := &builder{toks: kept}
	if err := b.stream(); err != nil {
		return nil, err
	}
	return b.evs, nil
}

// maxDepth bounds builder recursion so that adversarial nesting fails
// with an error instead of exhausting the stack.
const maxDepth = 10000

type builder struct {
	toks  []token.Token
	i     int
	evs   []Event
	depth int
}

func (b *builder) enter() error {
	b.depth++
	if b.depth > maxDepth {
		return &Error{Err: ErrDepth,
			Msg: fmt.Sprintf("deeper than %d", maxDepth), Pos: posOf(b.peek())}
	}
	return nil
}

func (b *builder) leave() {
	b.depth--
}

func (b *builder) peek() *token.Token {
	if b.i >= len(b.toks) {
		return nil
	}
	return &b.toks[b.i]
}

func (b *builder) emit(e Event) {
	b.evs = append(b.evs, e)
}

func (b *builder) errAt(msg string, t *token.Token) error {
	if t == nil {
		return &Error{Msg: msg + " at end of input"}
	}
	return &Error{Msg: msg, Pos: t.Pos}
}

// docMarker reports whether t bounds a document.
func docMarker(t *token.Token) bool {
	return t != nil && (t.Type == token.TDocStart || t.Type == token.TDocEnd)
}

func (b *builder) stream() error {
	open := false
	content := false
	closeDoc := func(t *token.Token) {
		if !open {
			return
		}
		if !content {
			b.emit(Event{Type: EventScalar, Style: StylePlain, Pos: posOf(t)})
		}
		b.emit(Event{Type: EventEndDocument, Pos: posOf(t)})
		open, content = false, false
	}
	for b.i < len(b.toks) {
		t := &b.toks[b.i]
		switch t.Type {
		case token.TDocStart:
			closeDoc(t)
			b.emit(Event{Type: EventBeginDocument, Pos: t.Pos})
			open = true
			b.i++
		case token.TDocEnd:
			closeDoc(t)
			b.i++
		default:
			if !open {
				b.emit(Event{Type: EventBeginDocument, Pos: t.Pos})
				open = true
			}
			if content {
				return b.errAt("unexpected content after document value", t)
			}
			if err := b.node(); err != nil {
				return err
			}
			content = true
		}
	}
	closeDoc(nil)
	return nil
}

func posOf(t *token.Token) *token.Pos {
	if t == nil {
		return nil
	}
	return t.Pos
}

// props consumes anchor and tag properties in either order.
func (b *builder) props() (anchor, tag string, err error) {
	for {
		t := b.peek()
		if t == nil {
			return anchor, tag, nil
		}
		switch t.Type {
		case token.TAnchor:
			if anchor != "" {
				return "", "", b.errAt("duplicate anchor property", t)
			}
			anchor = string(t.Bytes)
		case token.TTag:
			if tag != "" {
				return "", "", b.errAt("duplicate tag property", t)
			}
			tag = string(t.Bytes)
		default:
			return anchor, tag, nil
		}
		b.i++
	}
}

// isKey reports whether the token at index i opens a mapping entry: a
// scalar, alias, or flow collection immediately followed by a colon on
// the line where it ends.
func (b *builder) isKey(i int) bool {
	if i >= len(b.toks) {
		return false
	}
	t := &b.toks[i]
	end := i
	switch {
	case t.Type.IsScalar() || t.Type == token.TAlias:
	case t.Type == token.TLSquare || t.Type == token.TLCurl:
		end = b.flowEnd(i)
		if end < 0 {
			return false
		}
	default:
		return false
	}
	if end+1 >= len(b.toks) {
		return false
	}
	nxt := &b.toks[end+1]
	return nxt.Type == token.TColon && nxt.Pos.Line() == b.toks[end].Pos.Line()
}

// flowEnd returns the index of the bracket matching the flow opener at
// i, or -1 when the collection never closes.
func (b *builder) flowEnd(i int) int {
	depth := 0
	for ; i < len(b.toks); i++ {
		switch b.toks[i].Type {
		case token.TLSquare, token.TLCurl:
			depth++
		case token.TRSquare, token.TRCurl:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// node parses one block-context value starting at the cursor.
func (b *builder) node() error {
	if err := b.enter(); err != nil {
		return err
	}
	defer b.leave()
	propTok := b.peek()
	anchor, tag, err := b.props()
	if err != nil {
		return err
	}
	t := b.peek()
	if t == nil || docMarker(t) {
		// properties with nothing after them anchor an empty scalar
		b.emit(Event{Type: EventScalar, Anchor: anchor, Tag: tag, Style: StylePlain, Pos: posOf(propTok)})
		return nil
	}
	switch {
	case t.Type == token.TDash:
		return b.blockSeq(t.Pos.Col(), anchor, tag)
	case t.Type == token.TLSquare, t.Type == token.TLCurl,
		t.Type == token.TAlias, t.Type.IsScalar():
		if b.isKey(b.i) {
			// properties written on the line of the first key belong
			// to that key, not the mapping
			if (anchor != "" || tag != "") && propTok.Pos.Line() == t.Pos.Line() {
				return b.blockMap(t.Pos.Col(), "", "", anchor, tag)
			}
			return b.blockMap(t.Pos.Col(), anchor, tag, "", "")
		}
		return b.key(anchor, tag)
	}
	return b.errAt("unexpected "+t.Type.String(), t)
}

// key emits the value at the cursor in key position: a scalar, alias,
// or flow collection.
func (b *builder) key(anchor, tag string) error {
	switch b.peek().Type {
	case token.TLSquare:
		return b.flowSeq(anchor, tag)
	case token.TLCurl:
		return b.flowMap(anchor, tag)
	}
	return b.scalarOrAlias(anchor, tag)
}

// scalarOrAlias emits the scalar or alias at the cursor and advances.
func (b *builder) scalarOrAlias(anchor, tag string) error {
	t := b.peek()
	if t.Type == token.TAlias {
		if anchor != "" || tag != "" {
			return b.errAt("alias cannot carry anchor or tag", t)
		}
		b.emit(Event{Type: EventAlias, Value: string(t.Bytes), Pos: t.Pos})
		b.i++
		return nil
	}
	b.emit(Event{
		Type:   EventScalar,
		Anchor: anchor,
		Tag:    tag,
		Style:  styleOf(t.Type),
		Value:  string(t.Bytes),
		Pos:    t.Pos,
	})
	b.i++
	return nil
}

func styleOf(t token.TokenType) Style {
	switch t {
	case token.TSingle:
		return StyleSingle
	case token.TDouble:
		return StyleDouble
	case token.TLiteral:
		return StyleLiteral
	case token.TFolded:
		return StyleFolded
	default:
		return StylePlain
	}
}

func (b *builder) blockMap(mapCol int, anchor, tag, keyAnchor, keyTag string) error {
	b.emit(Event{Type: EventBeginMapping, Anchor: anchor, Tag: tag, Pos: posOf(b.peek())})
	first := true
	for {
		t := b.peek()
		if t == nil || docMarker(t) {
			break
		}
		if t.Pos.Col() < mapCol {
			break
		}
		if t.Pos.Col() > mapCol {
			return b.errAt("misindented mapping entry", t)
		}
		ka, kt := "", ""
		if first {
			ka, kt = keyAnchor, keyTag
			first = false
		}
		if t.Type == token.TAnchor || t.Type == token.TTag {
			var err error
			ka, kt, err = b.props()
			if err != nil {
				return err
			}
			t = b.peek()
			if t == nil {
				break
			}
		}
		if !b.isKey(b.i) {
			return b.errAt("expected mapping key", t)
		}
		if err := b.key(ka, kt); err != nil {
			return err
		}
		// the colon; a flow key may end lines below where it began
		keyLine := b.toks[b.i].Pos.Line()
		b.i++
		if err := b.entryValue(keyLine, mapCol); err != nil {
			return err
		}
	}
	b.emit(Event{Type: EventEndMapping})
	return nil
}

// entryValue parses the value of a mapping entry, or emits a null
// scalar when the value is absent. A present value sits either on the
// key's line or on a later line indented past the key; a block
// sequence may align with the key itself.
func (b *builder) entryValue(keyLine, mapCol int) error {
	v := b.peek()
	if v != nil && !docMarker(v) {
		switch {
		case v.Pos.Line() == keyLine,
			v.Pos.Col() > mapCol,
			v.Type == token.TDash && v.Pos.Col() >= mapCol:
			return b.node()
		}
	}
	b.emit(Event{Type: EventScalar, Style: StylePlain, Pos: posOf(v)})
	return nil
}

func (b *builder) blockSeq(seqCol int, anchor, tag string) error {
	b.emit(Event{Type: EventBeginSequence, Anchor: anchor, Tag: tag, Pos: posOf(b.peek())})
	for {
		t := b.peek()
		if t == nil || docMarker(t) {
			break
		}
		if t.Pos.Col() < seqCol || (t.Pos.Col() == seqCol && t.Type != token.TDash) {
			break
		}
		if t.Type != token.TDash {
			return b.errAt("misindented sequence entry", t)
		}
		dashLine, dashCol := t.Pos.Line(), t.Pos.Col()
		b.i++
		v := b.peek()
		if v != nil && !docMarker(v) &&
			(v.Pos.Line() == dashLine || v.Pos.Col() > dashCol) {
			if err := b.node(); err != nil {
				return err
			}
			continue
		}
		b.emit(Event{Type: EventScalar, Style: StylePlain, Pos: posOf(v)})
	}
	b.emit(Event{Type: EventEndSequence})
	return nil
}

func (b *builder) flowSeq(anchor, tag string) error {
	open := b.peek()
	b.emit(Event{Type: EventBeginSequence, Anchor: anchor, Tag: tag, Flow: true, Pos: open.Pos})
	b.i++
	for {
		t := b.peek()
		if t == nil {
			return b.errAt("unterminated flow sequence", open)
		}
		if t.Type == token.TRSquare {
			b.i++
			break
		}
		if err := b.flowNode(); err != nil {
			return err
		}
		if err := b.flowSep(token.TRSquare, open); err != nil {
			return err
		}
	}
	b.emit(Event{Type: EventEndSequence})
	return nil
}

func (b *builder) flowMap(anchor, tag string) error {
	open := b.peek()
	b.emit(Event{Type: EventBeginMapping, Anchor: anchor, Tag: tag, Flow: true, Pos: open.Pos})
	b.i++
	for {
		t := b.peek()
		if t == nil {
			return b.errAt("unterminated flow mapping", open)
		}
		if t.Type == token.TRCurl {
			b.i++
			break
		}
		ka, kt, err := b.props()
		if err != nil {
			return err
		}
		t = b.peek()
		if t == nil {
			return b.errAt("unterminated flow mapping", open)
		}
		if !t.Type.IsScalar() && t.Type != token.TAlias &&
			t.Type != token.TLSquare && t.Type != token.TLCurl {
			return b.errAt("expected mapping key", t)
		}
		if err := b.key(ka, kt); err != nil {
			return err
		}
		t = b.peek()
		if t != nil && t.Type == token.TColon {
			b.i++
			t = b.peek()
			if t == nil {
				return b.errAt("unterminated flow mapping", open)
			}
			if t.Type == token.TComma || t.Type == token.TRCurl {
				b.emit(Event{Type: EventScalar, Style: StylePlain, Pos: t.Pos})
			} else if err := b.flowNode(); err != nil {
				return err
			}
		} else {
			// {a, b} carries null values
			b.emit(Event{Type: EventScalar, Style: StylePlain, Pos: posOf(t)})
		}
		if err := b.flowSep(token.TRCurl, open); err != nil {
			return err
		}
	}
	b.emit(Event{Type: EventEndMapping})
	return nil
}

// flowSep consumes the comma between flow entries, leaving a closer
// for the caller.
func (b *builder) flowSep(closer token.TokenType, open *token.Token) error {
	t := b.peek()
	switch {
	case t == nil:
		return b.errAt("unterminated flow collection", open)
	case t.Type == token.TComma:
		b.i++
		return nil
	case t.Type == closer:
		return nil
	}
	return b.errAt("expected , or close of flow collection", t)
}

// flowNode parses one flow-context value starting at the cursor.
func (b *builder) flowNode() error {
	if err := b.enter(); err != nil {
		return err
	}
	defer b.leave()
	anchor, tag, err := b.props()
	if err != nil {
		return err
	}
	t := b.peek()
	if t == nil {
		return b.errAt("expected value", t)
	}
	switch {
	case t.Type == token.TLSquare:
		return b.flowSeq(anchor, tag)
	case t.Type == token.TLCurl:
		return b.flowMap(anchor, tag)
	case t.Type == token.TAlias || t.Type.IsScalar():
		return b.scalarOrAlias(anchor, tag)
	}
	return b.errAt("unexpected "+t.Type.String(), t)
}
