package stream

import (
	"io"

	"github.com/signadot/yaml-format/go-yaml/token"
)

// Encoder provides explicit stack management for streaming document
// encoding. Output is flow style ({...} and [...]), one line per
// document, which re-parses to the same values as the block form.
type Encoder struct {
	writer        io.Writer
	state         *State
	offset        int64
	opts          *streamOpts
	needSep       bool   // a value was written at this depth
	pendingTag    string // tag to apply to the next value
	pendingAnchor string // anchor to apply to the next value
	docs          int
	inDoc         bool
}

// NewEncoder creates a new Encoder writing to w.
func NewEncoder(w io.Writer, opts ...StreamOption) *Encoder {
	streamOpts := &streamOpts{}
	for _, opt := range opts {
		opt(streamOpts)
	}
	return &Encoder{
		writer: w,
		state:  NewState(),
		opts:   streamOpts,
	}
}

// Queryable State Methods

// Depth returns the current nesting depth (0 = top level).
func (e *Encoder) Depth() int {
	return e.state.Depth()
}

// CurrentPath returns the current dotted path (e.g. "", "key",
// "key[0]").
func (e *Encoder) CurrentPath() string {
	return e.state.CurrentPath()
}

// IsInMapping returns true if currently inside a mapping.
func (e *Encoder) IsInMapping() bool {
	return e.state.IsInMapping()
}

// IsInSequence returns true if currently inside a sequence.
func (e *Encoder) IsInSequence() bool {
	return e.state.IsInSequence()
}

// Offset returns the byte offset in the output stream.
func (e *Encoder) Offset() int64 {
	return e.offset
}

// Tag sets the tag for the next value. The tag is written before the
// next scalar, mapping, or sequence.
func (e *Encoder) Tag(tag string) {
	e.pendingTag = tag
}

// Anchor sets the anchor for the next value.
func (e *Encoder) Anchor(name string) {
	e.pendingAnchor = name
}

// BeginDocument starts a document. The first document omits the ---
// marker unless WithDocumentMarkers is set.
func (e *Encoder) BeginDocument() error {
	if e.inDoc {
		return &Error{Msg: "document inside document"}
	}
	e.inDoc = true
	e.docs++
	if e.docs > 1 || e.opts.markers {
		if e.docs > 1 {
			if err := e.writeBytes([]byte("\n")); err != nil {
				return err
			}
		}
		return e.writeBytes([]byte("--- "))
	}
	return nil
}

// EndDocument closes the current document.
func (e *Encoder) EndDocument() error {
	if !e.inDoc {
		return &Error{Msg: "end of document without begin"}
	}
	if e.state.Depth() != 0 {
		return &Error{Msg: "end of document inside " + e.state.CurrentPath()}
	}
	e.inDoc = false
	e.needSep = false
	return nil
}

// WriteEvent dispatches a decoded event back into the encoder,
// allowing event streams to be replayed verbatim.
func (e *Encoder) WriteEvent(ev *Event) error {
	if ev.Anchor != "" {
		e.Anchor(ev.Anchor)
	}
	if ev.Tag != "" {
		e.Tag(ev.Tag)
	}
	switch ev.Type {
	case EventBeginDocument:
		return e.BeginDocument()
	case EventEndDocument:
		return e.EndDocument()
	case EventBeginMapping:
		return e.BeginMapping()
	case EventEndMapping:
		return e.EndMapping()
	case EventBeginSequence:
		return e.BeginSequence()
	case EventEndSequence:
		return e.EndSequence()
	case EventAlias:
		return e.WriteAlias(ev.Value)
	case EventScalar:
		return e.writeScalarEvent(ev)
	}
	return &Error{Msg: "unknown event " + ev.Type.String()}
}

func (e *Encoder) writeScalarEvent(ev *Event) error {
	if ev.Style.Quoted() {
		return e.WriteString(ev.Value)
	}
	switch token.Resolve(ev.Value) {
	case token.KindNull:
		return e.WriteNull()
	case token.KindBool:
		return e.WriteBool(ev.Value == "true" || ev.Value == "True" || ev.Value == "TRUE")
	case token.KindInt, token.KindFloat:
		return e.writeValue([]byte(ev.Value))
	}
	return e.WriteString(ev.Value)
}

// BeginMapping opens a mapping.
func (e *Encoder) BeginMapping() error {
	if err := e.beginValue(); err != nil {
		return err
	}
	if err := e.process(&Event{Type: EventBeginMapping}); err != nil {
		return err
	}
	return e.writeBytes([]byte("{"))
}

// EndMapping closes the current mapping.
func (e *Encoder) EndMapping() error {
	if err := e.process(&Event{Type: EventEndMapping}); err != nil {
		return err
	}
	e.needSep = true
	return e.writeBytes([]byte("}"))
}

// BeginSequence opens a sequence.
func (e *Encoder) BeginSequence() error {
	if err := e.beginValue(); err != nil {
		return err
	}
	if err := e.process(&Event{Type: EventBeginSequence}); err != nil {
		return err
	}
	return e.writeBytes([]byte("["))
}

// EndSequence closes the current sequence.
func (e *Encoder) EndSequence() error {
	if err := e.process(&Event{Type: EventEndSequence}); err != nil {
		return err
	}
	e.needSep = true
	return e.writeBytes([]byte("]"))
}

// WriteKey writes a mapping key.
func (e *Encoder) WriteKey(key string) error {
	if !e.state.KeyPending() {
		return &Error{Msg: "key outside mapping"}
	}
	return e.writeKeyBytes([]byte(e.renderScalar(key)))
}

// writeKeyBytes emits a rendered key with its separator and colon.
func (e *Encoder) writeKeyBytes(d []byte) error {
	if e.needSep {
		if err := e.sep(","); err != nil {
			return err
		}
	}
	e.needSep = false
	if err := e.process(&Event{Type: EventScalar, Value: string(d)}); err != nil {
		return err
	}
	if err := e.flushProps(); err != nil {
		return err
	}
	if err := e.writeBytes(d); err != nil {
		return err
	}
	return e.sepColon()
}

// WriteString writes a string value, quoted as needed.
func (e *Encoder) WriteString(value string) error {
	return e.scalar([]byte(e.renderScalar(value)))
}

// WriteInt writes an integer value.
func (e *Encoder) WriteInt(value int64) error {
	return e.scalar([]byte(token.FormatInt(value)))
}

// WriteFloat writes a float value.
func (e *Encoder) WriteFloat(value float64) error {
	return e.scalar([]byte(token.FormatFloat(value)))
}

// WriteBool writes a boolean value.
func (e *Encoder) WriteBool(value bool) error {
	if value {
		return e.scalar([]byte("true"))
	}
	return e.scalar([]byte("false"))
}

// WriteNull writes a null value.
func (e *Encoder) WriteNull() error {
	return e.scalar([]byte("null"))
}

// WriteAlias writes an alias referencing an earlier anchor.
func (e *Encoder) WriteAlias(name string) error {
	if e.state.KeyPending() {
		return e.writeKeyBytes([]byte("*" + name))
	}
	if err := e.beginValue(); err != nil {
		return err
	}
	if err := e.process(&Event{Type: EventAlias, Value: name}); err != nil {
		return err
	}
	e.needSep = true
	return e.writeBytes([]byte("*" + name))
}

func (e *Encoder) scalar(d []byte) error {
	if e.state.KeyPending() {
		return e.writeKeyBytes(d)
	}
	if err := e.beginValue(); err != nil {
		return err
	}
	if err := e.process(&Event{Type: EventScalar, Value: string(d)}); err != nil {
		return err
	}
	return e.writeValueBytes(d)
}

// writeValue emits pre-rendered scalar bytes, such as a number kept in
// its source spelling.
func (e *Encoder) writeValue(d []byte) error {
	return e.scalar(d)
}

func (e *Encoder) writeValueBytes(d []byte) error {
	e.needSep = true
	return e.writeBytes(d)
}

// beginValue handles separators and pending properties common to all
// value starts.
func (e *Encoder) beginValue() error {
	if !e.inDoc {
		return &Error{Msg: "value outside document"}
	}
	if e.needSep && e.state.Depth() > 0 && e.state.IsInSequence() {
		if err := e.sep(","); err != nil {
			return err
		}
	}
	e.needSep = false
	return e.flushProps()
}

// flushProps writes any pending anchor and tag.
func (e *Encoder) flushProps() error {
	if e.pendingAnchor != "" {
		if err := e.writeBytes([]byte("&" + e.pendingAnchor + " ")); err != nil {
			return err
		}
		e.pendingAnchor = ""
	}
	if e.pendingTag != "" {
		if err := e.writeBytes([]byte(e.pendingTag + " ")); err != nil {
			return err
		}
		e.pendingTag = ""
	}
	return nil
}

func (e *Encoder) renderScalar(v string) string {
	if !token.NeedsQuote(v) {
		return v
	}
	if token.CanSingleQuote(v) {
		return token.QuoteSingle(v)
	}
	return token.QuoteDouble(v)
}

func (e *Encoder) sep(s string) error {
	if !e.opts.compact {
		s += " "
	}
	return e.writeBytes([]byte(s))
}

func (e *Encoder) sepColon() error {
	if e.opts.compact {
		return e.writeBytes([]byte(":"))
	}
	return e.writeBytes([]byte(": "))
}

func (e *Encoder) process(ev *Event) error {
	return e.state.ProcessEvent(ev)
}

func (e *Encoder) writeBytes(data []byte) error {
	n, err := e.writer.Write(data)
	e.offset += int64(n)
	return err
}
