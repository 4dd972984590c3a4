// Package coerce converts between the strings held by form inputs and the
// typed leaf values of a tally record.
//
// Two kinds treat the empty string differently on purpose: an empty
// boolean is undefined (the question has not been answered yet), an empty
// formatted number is zero (an uncounted field counts as nothing).
package coerce

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind selects how a form string is typed.
type Kind int

const (
	_ Kind = iota // skip zero value, it is never a valid Kind

	KindPlainString     // plainString
	KindBoolean         // boolean
	KindFormattedNumber // formattedNumber
)

// IsValid reports whether k is one of the declared kinds.
func (k Kind) IsValid() bool {
	return k >= KindPlainString && k <= KindFormattedNumber
}
