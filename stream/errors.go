package stream

import (
	"errors"
	"fmt"

	"github.com/signadot/yaml-format/go-yaml/token"
)

// ErrDepth is returned when input nesting exceeds the depth the
// builder will track.
var ErrDepth = errors.New("nesting too deep")

// Error represents a stream error.
type Error struct {
	Err error
	Msg string
	Pos *token.Pos
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg = e.Err.Error()
		if e.Msg != "" {
			msg += ": " + e.Msg
		}
	}
	if e.Pos == nil {
		return msg
	}
	return fmt.Sprintf("%s at %s", msg, e.Pos)
}
