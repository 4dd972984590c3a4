package diagnostic

import "tally-mapper/internal/common"

// Severity of a finding.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Max returns the more severe of s and other.
func (s Severity) Max(other Severity) Severity {
	return max(s, other)
}
