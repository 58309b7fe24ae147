package token

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax       = errors.New("syntax error")
	ErrTabIndent    = errors.New("tab in indentation")
	ErrUnterminated = errors.New("unterminated quoted scalar")
	ErrEscape       = errors.New("invalid escape sequence")
	ErrAnchorName   = errors.New("invalid anchor name")
	ErrNumber       = errors.New("invalid number")
	ErrCodePoint    = errors.New("forbidden code point")
)

// TokenizeErr wraps a scanner error with its position.
type TokenizeErr struct {
	Err error
	Pos Pos
}

func NewTokenizeErr(e error, p *Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: *p}
}

func (e *TokenizeErr) Unwrap() error {
	return e.Err
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}
