package shoppinglist

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// MergeSuggestion pairs two list items whose labels look close enough
// that the user may want to combine them by hand. Grouping itself stays
// exact; suggestions are advisory only.
type MergeSuggestion struct {
	A          string  `json:"a"`
	B          string  `json:"b"`
	Similarity float64 `json:"similarity"`
}

// minMergeSimilarity is the cutoff below which pairs are not reported.
const minMergeSimilarity = 0.8

// SuggestMerges compares every pair of items and returns the pairs whose
// normalized labels are nearly identical.
func SuggestMerges(items []Item) []MergeSuggestion {
	var suggestions []MergeSuggestion
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			a, b := items[i].NormalizedLabel, items[j].NormalizedLabel
			sim := labelSimilarity(a, b)
			if sim >= minMergeSimilarity && sim < 1 {
				suggestions = append(suggestions, MergeSuggestion{A: a, B: b, Similarity: sim})
			}
		}
	}
	return suggestions
}

func labelSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
