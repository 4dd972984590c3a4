package path

import (
	"errors"
	"fmt"
	"strings"
)

// ErrShapeMismatch is matched by every *ShapeError.
var ErrShapeMismatch = errors.New("path does not match record shape")

// ShapeError reports a path that cannot be resolved against a record.
type ShapeError struct {
	// Path is the full path being resolved.
	Path Path
	// Position is the index of the offending segment, or Path.Len() when
	// the problem is with the leaf value itself.
	Position int
	// Reason describes what went wrong.
	Reason string
	// Suggestions lists known field names close to an unknown one.
	Suggestions []string
}

func (e *ShapeError) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "path %q", e.Path.String())

	if e.Position < e.Path.Len() {
		fmt.Fprintf(&sb, " at %q", e.Path.Segments[e.Position].String())
	}

	sb.WriteString(": ")
	sb.WriteString(e.Reason)

	if len(e.Suggestions) > 0 {
		quoted := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			quoted[i] = fmt.Sprintf("%q", s)
		}

		sb.WriteString(" (did you mean ")
		sb.WriteString(strings.Join(quoted, ", "))
		sb.WriteString("?)")
	}

	return sb.String()
}

// Unwrap lets errors.Is match ErrShapeMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

func shapeErr(p Path, pos int, format string, args ...any) *ShapeError {
	return &ShapeError{Path: p, Position: pos, Reason: fmt.Sprintf(format, args...)}
}
