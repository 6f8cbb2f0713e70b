// Package fuzzy implements bounded Levenshtein distance for typo-tolerant matching.
package fuzzy

import "unicode/utf8"

// LongTermLength is the rune length from which a term tolerates two edits.
const LongTermLength = 7

// AllowedDistance returns the edit budget for a search term.
func AllowedDistance(term string) int {
	if utf8.RuneCountInString(term) >= LongTermLength {
		return 2
	}
	return 1
}

// EditDistance returns the Levenshtein distance between a and b measured
// in runes, or maxDistance+1 once the distance provably exceeds maxDistance.
// A negative maxDistance is treated as zero.
func EditDistance(a, b string, maxDistance int) int {
	if maxDistance < 0 {
		maxDistance = 0
	}
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if abs(len(ra)-len(rb)) > maxDistance {
		return maxDistance + 1
	}
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Two-row DP; the shorter string spans the columns.
	if len(rb) > len(ra) {
		ra, rb = rb, ra
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
			rowMin = min(rowMin, curr[j])
		}
		// Row minima never decrease, so the bound is already exceeded.
		if rowMin > maxDistance {
			return maxDistance + 1
		}
		prev, curr = curr, prev
	}
	if d := prev[len(rb)]; d <= maxDistance {
		return d
	}
	return maxDistance + 1
}

// Within reports whether a and b are at most maxDistance edits apart.
func Within(a, b string, maxDistance int) bool {
	return EditDistance(a, b, maxDistance) <= maxDistance
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
