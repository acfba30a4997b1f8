package match

import (
	"math"

	"github.com/hbollon/go-edlib"
)

// DefaultBase is the per-word acceptance base: a single-word phrase must score
// at least 0.9, a two-word phrase 0.81, and so on.
const DefaultBase = 0.9

// Similarity returns the Jaro-Winkler similarity of two words in [0, 1].
// Equal strings always score 1.0; an empty string never matches a non-empty one.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	return float64(edlib.JaroWinklerSimilarity(a, b))
}

// Score returns the phrase match score for two word sequences of equal length:
// the product over positions of the forward and reversed word similarities.
// Sequences of differing length never match and score zero.
func Score(query, candidate []string) float64 {
	if len(query) == 0 || len(query) != len(candidate) {
		return 0.0
	}

	score := 1.0
	for i := range query {
		score *= Similarity(query[i], candidate[i])
		score *= Similarity(reverse(query[i]), reverse(candidate[i]))
		if score == 0 {
			return 0.0
		}
	}
	return score
}

// Threshold returns the acceptance bar for a phrase of the given word count:
// base^words. It is strictly decreasing in the word count for any base in (0, 1).
func Threshold(base float64, words int) float64 {
	return math.Pow(base, float64(words))
}

// reverse returns the rune-wise reversal of s.
func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
