package coerce

import (
	"strconv"
)

// IsInteger reports whether s consists solely of ASCII digits.
// "007" is an integer; "", "-1", "3.14", " 1" and "1e3" are not.
func IsInteger(s string) bool {
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

// ParseInteger strictly parses s as a non-negative integer.
func ParseInteger(s string) (int64, error) {
	if !IsInteger(s) {
		return 0, &FormatError{Input: s, Kind: KindFormattedNumber, Err: ErrInvalidInteger}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &FormatError{Input: s, Kind: KindFormattedNumber, Err: ErrInvalidInteger}
	}

	return n, nil
}

// ValidatePollingStationNumber checks the polling station number typed by
// an operator. It does not accept separators, signs or blanks.
func ValidatePollingStationNumber(raw string) (int64, error) {
	return ParseInteger(raw)
}
