package coerce

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tally-mapper/internal/path"
)

// DefaultLanguage is used by Default; tallies are entered with "." as the
// thousands separator.
var DefaultLanguage = language.Dutch

// Coercer formats and parses form strings for one locale.
// It is safe for concurrent use.
type Coercer struct {
	mu        sync.Mutex
	printer   *message.Printer
	separator string
}

// New returns a Coercer for the given locale.
func New(tag language.Tag) *Coercer {
	p := message.NewPrinter(tag)

	return &Coercer{
		printer:   p,
		separator: groupSeparator(p.Sprintf("%d", 1000000)),
	}
}

var (
	defaultOnce    sync.Once
	defaultCoercer *Coercer
)

// Default returns a shared Coercer for DefaultLanguage.
func Default() *Coercer {
	defaultOnce.Do(func() {
		defaultCoercer = New(DefaultLanguage)
	})

	return defaultCoercer
}

// groupSeparator extracts the thousands separator from a formatted
// million, or "" when the locale does not group digits.
func groupSeparator(formatted string) string {
	for i, r := range formatted {
		if r < '0' || r > '9' {
			_, size := utf8.DecodeRuneInString(formatted[i:])
			return formatted[i : i+size]
		}
	}

	return ""
}

// Separator returns the thousands separator of the locale.
func (c *Coercer) Separator() string {
	return c.separator
}

// FormatNumber renders n with locale thousands separators: 1234 -> "1.234".
func (c *Coercer) FormatNumber(n int64) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.printer.Sprintf("%d", n)
}

// DeformatNumber strips thousands separators: "1.234" -> "1234".
func (c *Coercer) DeformatNumber(s string) string {
	if c.separator == "" {
		return s
	}

	return strings.ReplaceAll(s, c.separator, "")
}

// ToFormString renders a leaf value for a form input.
func (c *Coercer) ToFormString(v path.Value) string {
	switch v.Kind() {
	case path.KindBool:
		b, _ := v.AsBool()
		if b {
			return "true"
		}

		return "false"
	case path.KindNumber:
		n, _ := v.AsNumber()
		return c.FormatNumber(n)
	case path.KindString:
		s, _ := v.AsString()
		return s
	default:
		return ""
	}
}

// ToTypedValue converts a form string into a leaf value of kind k.
// Malformed input yields a *FormatError.
func (c *Coercer) ToTypedValue(raw string, k Kind) (path.Value, error) {
	switch k {
	case KindPlainString:
		return path.String(raw), nil

	case KindBoolean:
		switch raw {
		case "":
			return path.Undefined(), nil
		case "true":
			return path.Bool(true), nil
		case "false":
			return path.Bool(false), nil
		default:
			return path.Undefined(), &FormatError{Input: raw, Kind: k, Err: ErrInvalidBoolean}
		}

	case KindFormattedNumber:
		if raw == "" {
			return path.Number(0), nil
		}

		n, err := ParseInteger(c.DeformatNumber(raw))
		if err != nil {
			return path.Undefined(), &FormatError{Input: raw, Kind: k, Err: ErrInvalidInteger}
		}

		return path.Number(n), nil

	default:
		return path.Undefined(), fmt.Errorf("unknown coercion kind %s", k)
	}
}
