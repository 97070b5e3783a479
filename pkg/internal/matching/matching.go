// Package matching provides string matching utilities using Jaro-Winkler similarity.
package matching

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/josegonzalez/gamenote/pkg/internal/normalization"
)

// jaroWinkler is a reusable Jaro-Winkler metric instance.
var jaroWinkler = metrics.NewJaroWinkler()

// JaroWinklerSimilarity calculates the Jaro-Winkler similarity between two strings.
// The comparison is case-insensitive and returns a value between 0 and 1,
// where 1 indicates an exact match.
func JaroWinklerSimilarity(s1, s2 string) float64 {
	return strutil.Similarity(strings.ToLower(s1), strings.ToLower(s2), jaroWinkler)
}

// BestIndex returns the index of the candidate closest to searchTerm after
// normalization, with its score. Ties keep the earliest candidate.
// It returns (-1, 0) for an empty candidate list.
func BestIndex(searchTerm string, candidates []string) (int, float64) {
	if len(candidates) == 0 {
		return -1, 0
	}

	term := normalization.NormalizeSearchTermDefault(searchTerm)
	best, bestScore := 0, -1.0
	for i, candidate := range candidates {
		score := JaroWinklerSimilarity(term, normalization.NormalizeSearchTermDefault(candidate))
		if score > bestScore {
			best, bestScore = i, score
			if score == 1.0 {
				break
			}
		}
	}
	return best, bestScore
}

// MatchConfidence returns a human-readable confidence level for a score.
func MatchConfidence(score float64) string {
	switch {
	case score == 1.0:
		return "exact"
	case score >= 0.95:
		return "high"
	case score >= 0.85:
		return "medium"
	case score >= 0.75:
		return "low"
	default:
		return "none"
	}
}
