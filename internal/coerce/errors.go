package coerce

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInteger is matched by a FormatError for a non-integer input.
	ErrInvalidInteger = errors.New("not a valid integer")
	// ErrInvalidBoolean is matched by a FormatError for a non-boolean input.
	ErrInvalidBoolean = errors.New("not a valid boolean")
)

// FormatError is a user-input problem: the text typed into a field does not
// fit the field's kind. It is meant to be shown next to the field.
type FormatError struct {
	Input string
	Kind  Kind
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s value %q: %v", e.Kind, e.Input, e.Err)
}

// Unwrap exposes the sentinel error.
func (e *FormatError) Unwrap() error {
	return e.Err
}
