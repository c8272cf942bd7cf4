package recommend

import "sort"

// Rank sorts recommendations by Confidence in descending order. Ties keep
// their original order. The input slice is not modified.
func Rank(recs []Recommendation) []Recommendation {
	sorted := make([]Recommendation, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})
	return sorted
}

// FilterByType keeps recommendations of type t, preserving order.
func FilterByType(recs []Recommendation, t Type) []Recommendation {
	var filtered []Recommendation
	for _, r := range recs {
		if r.Type == t {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Limit truncates recs to at most n entries. n <= 0 means no limit.
func Limit(recs []Recommendation, n int) []Recommendation {
	if n > 0 && len(recs) > n {
		return recs[:n]
	}
	return recs
}
