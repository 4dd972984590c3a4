package diagnostic

import (
	"slices"
	"strings"
)

// Code identifies a validation rule. Codes starting with F are errors,
// codes starting with W are warnings.
type Code string

// Error codes.
const (
	CodeF101 Code = "F101"
	CodeF102 Code = "F102"
	CodeF111 Code = "F111"
	CodeF112 Code = "F112"
	CodeF201 Code = "F201"
	CodeF202 Code = "F202"
	CodeF203 Code = "F203"
	CodeF204 Code = "F204"
	CodeF301 Code = "F301"
	CodeF302 Code = "F302"
	CodeF303 Code = "F303"
	CodeF304 Code = "F304"
	CodeF401 Code = "F401"
	CodeF402 Code = "F402"
)

// Warning codes.
const (
	CodeW001 Code = "W001"
	CodeW201 Code = "W201"
	CodeW202 Code = "W202"
	CodeW203 Code = "W203"
	CodeW301 Code = "W301"
	CodeW302 Code = "W302"
)

type codeInfo struct {
	global      bool
	description string
}

// A code is global when it blames a combination of fields rather than one
// of them, such as a sum that does not add up.
var codes = map[Code]codeInfo{
	CodeF101: {description: "extra investigation for another reason: answer exactly one of yes or no"},
	CodeF102: {description: "ballots recounted after extra investigation: answer exactly one of yes or no"},
	CodeF111: {description: "unexplained difference between ballots and voters: answer exactly one of yes or no"},
	CodeF112: {description: "difference in ballots per list: answer exactly one of yes or no"},
	CodeF201: {global: true, description: "poll cards plus proxy certificates do not equal the admitted voters"},
	CodeF202: {global: true, description: "votes on candidates, blank and invalid votes do not add up to the votes cast"},
	CodeF203: {global: true, description: "the list totals do not add up to the votes on candidates"},
	CodeF204: {description: "the number of votes cast is zero while voters were admitted"},
	CodeF301: {description: "select exactly one comparison of votes cast and admitted voters"},
	CodeF302: {global: true, description: "more ballots counted does not match the difference between votes cast and admitted voters"},
	CodeF303: {global: true, description: "fewer ballots counted does not match the difference between admitted voters and votes cast"},
	CodeF304: {description: "difference completely accounted for: answer exactly one of yes or no"},
	CodeF401: {global: true, description: "the candidate votes do not add up to the list total"},
	CodeF402: {global: true, description: "the list total differs from the total entered for the list on the counts page"},

	CodeW001: {global: true, description: "the entry differs from the first entry"},
	CodeW201: {description: "high number of blank votes"},
	CodeW202: {description: "high number of invalid votes"},
	CodeW203: {global: true, description: "large difference between admitted voters and votes cast"},
	CodeW301: {description: "more ballots counted is high"},
	CodeW302: {description: "fewer ballots counted is high"},
}

// Codes returns the whole taxonomy in sorted order.
func Codes() []Code {
	out := make([]Code, 0, len(codes))
	for c := range codes {
		out = append(out, c)
	}

	slices.Sort(out)

	return out
}

// IsKnown reports whether c is part of the taxonomy.
func (c Code) IsKnown() bool {
	_, ok := codes[c]
	return ok
}

// Severity is derived from the code prefix.
func (c Code) Severity() Severity {
	switch {
	case strings.HasPrefix(string(c), "F"):
		return SeverityError
	case strings.HasPrefix(string(c), "W"):
		return SeverityWarning
	default:
		return SeverityUnknown
	}
}

// IsGlobal reports whether the finding cannot be attributed to a single
// field. Unknown codes are local.
func (c Code) IsGlobal() bool {
	return codes[c].global
}

// Description returns the operator-facing text of c, or "" when unknown.
func (c Code) Description() string {
	return codes[c].description
}
