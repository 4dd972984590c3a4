package reconcile

import (
	"tally-mapper/internal/common"
	"tally-mapper/internal/mapper"
)

// CorrectedValue returns candidate when it is non-empty and previous
// otherwise. Two empty strings stay empty: an unanswered field is not
// defaulted here.
func CorrectedValue(previous, candidate string) string {
	if candidate != "" {
		return candidate
	}

	return previous
}

// DetermineCorrections returns the empty correction map for two entries:
// every path present in either entry maps to "". Equal values need nothing;
// differing values wait for a human-entered resolution.
func DetermineCorrections(first, second mapper.FormValues) mapper.FormValues {
	out := make(mapper.FormValues, len(first)+len(second))

	for _, p := range common.UnionKeys(first, second) {
		out[p] = ""
	}

	return out
}

// ApplyCorrections resolves every path of previous and corrections with
// CorrectedValue. Neither argument is modified.
func ApplyCorrections(previous, corrections mapper.FormValues) mapper.FormValues {
	out := make(mapper.FormValues, len(previous)+len(corrections))

	for _, p := range common.UnionKeys(previous, corrections) {
		out[p] = CorrectedValue(previous[p], corrections[p])
	}

	return out
}
