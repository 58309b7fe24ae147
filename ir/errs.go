package ir

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey reports two structurally equal keys in one mapping.
	ErrDuplicateKey = errors.New("duplicate mapping key")

	// ErrNotJSONRepresentable reports a node that has no JSON form,
	// such as a mapping with non-string keys.
	ErrNotJSONRepresentable = errors.New("not representable in JSON")
)

// DuplicateKeyError carries the offending key.
type DuplicateKeyError struct {
	Key *Node
}

func (e *DuplicateKeyError) Error() string {
	switch e.Key.Type {
	case StringType:
		return fmt.Sprintf("duplicate mapping key %q", e.Key.String)
	default:
		return fmt.Sprintf("duplicate %s mapping key", e.Key.Type)
	}
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}
