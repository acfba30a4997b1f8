package nameindex

import (
	"strings"

	"mention-scanner/core/textnorm"
)

// Scan slides word windows over a title and resolves each window against the
// index. The result maps canonical names to the best confidence any window
// achieved: 1.0 for exact or alias hits, otherwise the matcher's product
// score. The map is empty when nothing matched.
//
// Tokenization is literal single-space splitting, mirroring how canonical
// names are word-counted; window length is bounded by the longest canonical
// name currently indexed.
func (ix *Index) Scan(text string) map[string]float64 {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	results := make(map[string]float64)
	if ix.maxWords == 0 {
		return results
	}

	tokens := strings.Split(text, " ")
	for start := range tokens {
		for length := 1; length <= ix.maxWords && start+length <= len(tokens); length++ {
			phrase := strings.Join(tokens[start:start+length], " ")

			if canonical, ok := ix.lookupExactLocked(phrase); ok {
				results[canonical] = 1.0
				continue
			}

			words := strings.Split(textnorm.Normalize(phrase), " ")
			canonical, score, ok := ix.bestMatchLocked(words)
			if ok && score > results[canonical] {
				results[canonical] = score
			}
		}
	}
	return results
}
