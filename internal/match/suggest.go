package match

import (
	"sort"
)

// DefaultThreshold is the minimum Similarity a candidate needs to be suggested.
const DefaultThreshold = 0.6

// maxSuggestions caps how many names Suggest returns.
const maxSuggestions = 3

// Suggest returns up to three candidates resembling name, best first.
// Candidates equal to name are skipped. Ties keep the input order.
func Suggest(name string, candidates []string, threshold float64) []string {
	type scored struct {
		name  string
		score float64
	}

	want := NormalizeIdent(name)

	var ranked []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		score := Similarity(want, NormalizeIdent(c))
		if score >= threshold {
			ranked = append(ranked, scored{name: c, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]string, 0, min(len(ranked), maxSuggestions))
	for i := 0; i < len(ranked) && i < maxSuggestions; i++ {
		out = append(out, ranked[i].name)
	}

	return out
}
