package match

// Distance returns the Levenshtein distance between a and b: the minimum
// number of single-byte insertions, deletions or substitutions needed to
// turn one into the other.
func Distance(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return len(b)
	case b == "":
		return len(a)
	}

	// keep the row as short as possible
	if len(a) > len(b) {
		a, b = b, a
	}

	row := make([]int, len(a)+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= len(b); j++ {
		diag := row[0]
		row[0] = j

		for i := 1; i <= len(a); i++ {
			above := row[i]

			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			row[i] = min(above+1, row[i-1]+1, diag+cost)
			diag = above
		}
	}

	return row[len(a)]
}

// Similarity scales Distance into 0..1 where 1 means identical.
func Similarity(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1.0
	}

	return 1.0 - float64(Distance(a, b))/float64(longest)
}
