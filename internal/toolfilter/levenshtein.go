package toolfilter

import "strings"

// maxSuggestDistance is the largest edit distance SuggestTool accepts.
const maxSuggestDistance = 3

// LevenshteinDistance is the edit distance between a and b, counted in
// runes. Comparison is case-sensitive.
func LevenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range ra {
		curr[0] = i + 1
		for j, cb := range rb {
			cost := 1
			if ca == cb {
				cost = 0
			}
			curr[j+1] = min(prev[j+1]+1, curr[j]+1, prev[j]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// SuggestTool returns the entry of available closest to name, ignoring
// case, or "" when nothing is within maxSuggestDistance edits. Ties go to
// the earliest entry.
func SuggestTool(name string, available []string) string {
	name = strings.ToLower(name)
	best, bestDist := "", maxSuggestDistance+1
	for _, candidate := range available {
		if d := LevenshteinDistance(name, strings.ToLower(candidate)); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
