package match

import "strings"

// MinSimilarity is the score a candidate needs to be suggested.
const MinSimilarity = 0.5

// Closest returns the candidate most similar to word, compared case
// insensitively. ok is false if word matches a candidate exactly or no
// candidate reaches MinSimilarity. Ties go to the earlier candidate.
func Closest(word string, candidates []string) (best string, ok bool) {
	word = strings.ToLower(word)

	bestScore := MinSimilarity
	for _, c := range candidates {
		lc := strings.ToLower(c)
		if lc == word {
			return "", false
		}

		if score := Similarity(word, lc); score >= bestScore && (!ok || score > bestScore) {
			best, bestScore, ok = c, score, true
		}
	}

	return best, ok
}

// DidYouMean formats a hint for word, or returns "" if there is none.
func DidYouMean(word string, candidates []string) string {
	best, ok := Closest(word, candidates)
	if !ok {
		return ""
	}

	return " (did you mean " + best + "?)"
}
