package checker

import (
	"github.com/al-lang/al/internal/config"
)

// suggest finds the closest known name to an unresolved reference, for a
// "did you mean" hint (spec.md §4.3). Candidates are taken in the order the
// caller supplies them — typeenv.Environment.AllNames() walks the scope
// chain innermost-first, so among equally-close candidates the nearest
// shadowing binding wins the `d < bestDist` tie-break rather than an
// alphabetically earlier one. It returns "" if no candidate is within
// config.MaxLevenshteinDistance.
func suggest(name string, candidates []string) string {
	best := ""
	bestDist := config.MaxLevenshteinDistance + 1
	for _, cand := range candidates {
		if cand == name {
			continue
		}
		d := levenshtein(name, cand)
		if d < bestDist {
			bestDist = d
			best = cand
		}
	}
	if bestDist > config.MaxLevenshteinDistance {
		return ""
	}
	return best
}

// levenshtein computes classic edit distance with a single rolling row.
func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	prev := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}
	cur := make([]int, len(br)+1)
	for i := 1; i <= len(ar); i++ {
		cur[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			cur[j] = m
		}
		prev, cur = cur, prev
	}
	return prev[len(br)]
}

// didYouMean renders the standard suffix appended to an unknown-name error,
// or "" when no suggestion cleared the distance threshold.
func didYouMean(name string, candidates []string) string {
	if s := suggest(name, candidates); s != "" {
		return " (did you mean '" + s + "'?)"
	}
	return ""
}
