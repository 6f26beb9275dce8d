package nlp

import "strings"

// Similar reports whether two words are close enough under normalized
// edit distance. With no embedding model available this is the advisory
// similarity check used for suggestion matching: 1-(distance/maxLen)
// against the threshold.
func Similar(a, b string, threshold float64) bool {
	if a == "" || b == "" {
		return false
	}
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return true
	}

	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	distance := editDistance(a, b)
	return 1.0-float64(distance)/float64(maxLen) >= threshold
}

// editDistance computes the Levenshtein distance between two words using
// a two-row rolling table.
func editDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func minInt(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
