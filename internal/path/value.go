package path

import (
	"strconv"

	"tally-mapper/internal/common"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	// KindUndefined means no value: an unanswered optional field or a
	// path that addresses a structural node rather than a leaf.
	KindUndefined ValueKind = iota
	KindBool
	KindNumber
	KindString
)

// String returns a human-readable kind name.
func (k ValueKind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return common.UnknownStr
	}
}

// Value is a leaf value read from or written to a record.
// The zero Value is undefined.
type Value struct {
	kind ValueKind
	b    bool
	n    int64
	s    string
}

// Undefined returns the undefined value.
func Undefined() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps an integer.
func Number(n int64) Value { return Value{kind: KindNumber, n: n} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Kind returns the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsUndefined returns true for the undefined value.
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }

// AsBool returns the boolean and whether v holds one.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the integer and whether v holds one.
func (v Value) AsNumber() (int64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string and whether v holds one.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// Equal compares kind and payload.
func (v Value) Equal(other Value) bool {
	return v == other
}

// GoString makes test failures readable.
func (v Value) GoString() string {
	switch v.kind {
	case KindBool:
		return "path.Bool(" + strconv.FormatBool(v.b) + ")"
	case KindNumber:
		return "path.Number(" + strconv.FormatInt(v.n, 10) + ")"
	case KindString:
		return "path.String(" + strconv.Quote(v.s) + ")"
	default:
		return "path.Undefined()"
	}
}
