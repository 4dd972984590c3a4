package match

import (
	"cmp"
	"slices"
	"strings"
)

// MinSimilarity is the score below which a candidate is not worth suggesting.
const MinSimilarity = 0.5

// Normalize lower-cases s and drops '_', '-' and spaces, so that
// "PollCardCount", "poll_card_count" and "poll-card-count" compare equal.
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

type scored struct {
	name  string
	score float64
}

// Closest returns at most limit candidates that resemble name, best first.
// Ties keep the order in which candidates were given.
func Closest(name string, candidates []string, limit int) []string {
	if limit <= 0 || len(candidates) == 0 {
		return nil
	}

	norm := Normalize(name)
	ranked := make([]scored, 0, len(candidates))

	for _, c := range candidates {
		s := Similarity(norm, Normalize(c))
		if s < MinSimilarity {
			continue
		}

		ranked = append(ranked, scored{name: c, score: s})
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]string, 0, min(limit, len(ranked)))
	for _, r := range ranked[:min(limit, len(ranked))] {
		out = append(out, r.name)
	}

	return out
}
