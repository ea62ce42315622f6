package ui

import "strings"

type scoredIdx struct {
	idx   int
	score int
}

// fuzzyMatchScore matches needle as a case-insensitive subsequence of
// haystack. The score is the sum of matched positions, so lower is better.
func fuzzyMatchScore(needle, haystack string) (int, bool) {
	n := []rune(strings.ToLower(needle))
	if len(n) == 0 {
		return 0, true
	}

	score, j := 0, 0
	for i, r := range []rune(strings.ToLower(haystack)) {
		if r != n[j] {
			continue
		}
		score += i
		j++
		if j == len(n) {
			return score, true
		}
	}
	return 0, false
}
