package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/yaml-format/go-yaml/token"
)

var (
	ErrSyntax          = errors.New("syntax error")
	ErrUnexpectedEvent = errors.New("unexpected event")
	ErrUnknownAnchor   = errors.New("unknown anchor")
	ErrDuplicateMapKey = errors.New("duplicate mapping key")
	ErrInvalidTag      = errors.New("invalid tag")
	ErrRecursionLimit  = errors.New("recursion limit exceeded")
)

// Error wraps a parse failure with its sentinel kind and position.
type Error struct {
	Err error
	Msg string
	Pos *token.Pos
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	msg := e.Err.Error()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Pos != nil {
		msg = fmt.Sprintf("%s at %s", msg, e.Pos)
	}
	return msg
}

func errAt(kind error, msg string, pos *token.Pos) error {
	return &Error{Err: kind, Msg: msg, Pos: pos}
}
