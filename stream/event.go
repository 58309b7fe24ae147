package stream

import (
	"fmt"

	"github.com/signadot/yaml-format/go-yaml/token"
)

// Event represents a structural event from the decoder.
// Events correspond to the encoder's API methods, providing a symmetric
// encode/decode interface.
type Event struct {
	Type EventType

	// Node properties (apply to Scalar, BeginMapping, BeginSequence)
	Anchor string
	Tag    string

	// Scalar presentation and text. Style distinguishes plain scalars,
	// which undergo implicit typing, from quoted and block scalars,
	// which are always strings. Value holds the alias target name for
	// EventAlias.
	Style Style
	Value string

	// Flow marks collections written in [] or {} form.
	Flow bool

	Pos *token.Pos
}

// IsValueStart returns true if this event starts a value (as opposed
// to an end marker or document boundary).
func (e *Event) IsValueStart() bool {
	switch e.Type {
	case EventScalar, EventAlias, EventBeginMapping, EventBeginSequence:
		return true
	default:
		return false
	}
}

func (e *Event) String() string {
	switch e.Type {
	case EventScalar:
		return fmt.Sprintf("%s(%s %q)", e.Type, e.Style, e.Value)
	case EventAlias:
		return fmt.Sprintf("%s(*%s)", e.Type, e.Value)
	default:
		return e.Type.String()
	}
}

// EventType represents the type of a structural event.
type EventType int

const (
	EventBeginDocument EventType = iota
	EventEndDocument
	EventBeginMapping
	EventEndMapping
	EventBeginSequence
	EventEndSequence
	EventScalar
	EventAlias
)

func (t EventType) String() string {
	switch t {
	case EventBeginDocument:
		return "BeginDocument"
	case EventEndDocument:
		return "EndDocument"
	case EventBeginMapping:
		return "BeginMapping"
	case EventEndMapping:
		return "EndMapping"
	case EventBeginSequence:
		return "BeginSequence"
	case EventEndSequence:
		return "EndSequence"
	case EventScalar:
		return "Scalar"
	case EventAlias:
		return "Alias"
	default:
		return "Unknown"
	}
}

// Style is the presentation style of a scalar.
type Style int

const (
	StylePlain Style = iota
	StyleSingle
	StyleDouble
	StyleLiteral
	StyleFolded
)

func (s Style) String() string {
	switch s {
	case StyleSingle:
		return "single"
	case StyleDouble:
		return "double"
	case StyleLiteral:
		return "literal"
	case StyleFolded:
		return "folded"
	default:
		return "plain"
	}
}

// Quoted reports whether the style pins the scalar to a string,
// exempting it from implicit typing.
func (s Style) Quoted() bool {
	return s != StylePlain
}
