package path

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyPath is returned when parsing an empty expression.
var ErrEmptyPath = errors.New("empty path")

// Segment is a single step of a Path: either a named field or an index
// into an array.
type Segment struct {
	// Name is the field name; empty for index segments.
	Name string
	// Index is the array position; meaningful only when IsIndex is set.
	Index int
	// IsIndex distinguishes Index(0) from an identifier.
	IsIndex bool
}

// Ident returns an identifier segment.
func Ident(name string) Segment {
	return Segment{Name: name}
}

// Idx returns an index segment.
func Idx(i int) Segment {
	return Segment{Index: i, IsIndex: true}
}

// String returns the segment as it appears in a canonical path.
func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}

	return s.Name
}

// Path is a parsed path expression.
type Path struct {
	Segments []Segment
}

// New builds a path from segments.
func New(segments ...Segment) Path {
	return Path{Segments: segments}
}

// Parse parses a dotted/bracketed path expression.
// "a.0.b" and "a[0].b" both yield [Ident(a), Idx(0), Ident(b)].
func Parse(expr string) (Path, error) {
	if expr == "" {
		return Path{}, ErrEmptyPath
	}

	var segments []Segment

	for i := 0; i < len(expr); {
		switch expr[i] {
		case '[':
			if len(segments) == 0 {
				return Path{}, fmt.Errorf("invalid path %q: index without a field", expr)
			}

			end := strings.IndexByte(expr[i:], ']')
			if end < 0 {
				return Path{}, fmt.Errorf("invalid path %q: unterminated index", expr)
			}

			n, err := parseIndex(expr[i+1 : i+end])
			if err != nil {
				return Path{}, fmt.Errorf("invalid path %q: %w", expr, err)
			}

			segments = append(segments, Idx(n))
			i += end + 1

			if i < len(expr) && expr[i] != '.' && expr[i] != '[' {
				return Path{}, fmt.Errorf("invalid path %q: unexpected %q after index", expr, expr[i])
			}

		case '.':
			if i == 0 || i == len(expr)-1 || expr[i+1] == '.' || expr[i+1] == '[' {
				return Path{}, fmt.Errorf("invalid path %q: empty segment", expr)
			}

			i++

		default:
			j := i
			for j < len(expr) && expr[j] != '.' && expr[j] != '[' {
				j++
			}

			token := expr[i:j]

			switch {
			case isDigits(token):
				if len(segments) == 0 {
					return Path{}, fmt.Errorf("invalid path %q: index without a field", expr)
				}

				n, err := parseIndex(token)
				if err != nil {
					return Path{}, fmt.Errorf("invalid path %q: %w", expr, err)
				}

				segments = append(segments, Idx(n))
			case isValidIdent(token):
				segments = append(segments, Ident(token))
			default:
				return Path{}, fmt.Errorf("invalid path %q: invalid identifier %q", expr, token)
			}

			i = j
		}
	}

	return Path{Segments: segments}, nil
}

// MustParse is like Parse but panics on error. Intended for paths that are
// constants of the program, such as the ones bound by a section structure.
func MustParse(expr string) Path {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}

	return p
}

// Canonical reformats expr into the canonical bracket notation.
func Canonical(expr string) (string, error) {
	p, err := Parse(expr)
	if err != nil {
		return "", err
	}

	return p.String(), nil
}

// String returns the canonical form of the path.
func (p Path) String() string {
	var sb strings.Builder

	for i, seg := range p.Segments {
		if i > 0 && !seg.IsIndex {
			sb.WriteByte('.')
		}

		sb.WriteString(seg.String())
	}

	return sb.String()
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.Segments)
}

// IsEmpty returns true if the path has no segments.
func (p Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// Last returns the final segment, or the zero Segment for an empty path.
func (p Path) Last() Segment {
	if len(p.Segments) == 0 {
		return Segment{}
	}

	return p.Segments[len(p.Segments)-1]
}

// Parent returns the path without its final segment.
func (p Path) Parent() Path {
	if len(p.Segments) == 0 {
		return p
	}

	return Path{Segments: p.Segments[: len(p.Segments)-1 : len(p.Segments)-1]}
}

// Append returns a new path with segs added; p is left untouched.
func (p Path) Append(segs ...Segment) Path {
	out := make([]Segment, 0, len(p.Segments)+len(segs))
	out = append(out, p.Segments...)

	return Path{Segments: append(out, segs...)}
}

// TrimRoot drops a leading identifier segment named root, if present.
func (p Path) TrimRoot(root string) Path {
	if len(p.Segments) > 1 && !p.Segments[0].IsIndex && p.Segments[0].Name == root {
		return Path{Segments: p.Segments[1:]}
	}

	return p
}

// Equal returns true if both paths have the same segments.
func (p Path) Equal(other Path) bool {
	if len(p.Segments) != len(other.Segments) {
		return false
	}

	for i, seg := range p.Segments {
		if seg != other.Segments[i] {
			return false
		}
	}

	return true
}

// HasPrefix reports whether prefix is equal to, or a leading part of, p.
// Comparison is per segment, so "votes" is not a prefix of "votes_counts".
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix.Segments) > len(p.Segments) {
		return false
	}

	for i, seg := range prefix.Segments {
		if seg != p.Segments[i] {
			return false
		}
	}

	return true
}

func parseIndex(s string) (int, error) {
	if !isDigits(s) {
		return 0, fmt.Errorf("invalid index %q", s)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}

	return n, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// isValidIdent checks for a letter or underscore followed by letters,
// digits or underscores.
func isValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}

	return true
}
