// Package common holds small helpers shared by the tally-mapper packages.
package common

import (
	"cmp"
	"maps"
	"slices"
)

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	return slices.Sorted(maps.Keys(m))
}

// UnionKeys returns the keys present in any of ms, sorted and without
// duplicates.
func UnionKeys[M ~map[K]V, K cmp.Ordered, V any](ms ...M) []K {
	seen := make(map[K]struct{})

	for _, m := range ms {
		for k := range m {
			seen[k] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen))
}

// First returns the first element of s and true, or the zero value and
// false if s is empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}
