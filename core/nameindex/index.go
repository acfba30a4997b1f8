package nameindex

import (
	"sort"
	"strings"
	"sync"

	"mention-scanner/core/match"
	"mention-scanner/core/textnorm"

	"go.uber.org/zap"
)

// Index is the fuzzy name-resolution index for a single entry type.
// All state is per-instance; an Index is safe for concurrent use.
type Index struct {
	mu     sync.RWMutex
	logger *zap.Logger

	// base is the per-word acceptance base for fuzzy matches.
	base float64

	// variantSet holds every known alias string, canonical self forms included.
	variantSet map[string]struct{}
	// variantMap maps each alias to its canonical name.
	variantMap map[string]string
	// canonicalSet holds the canonical names currently known.
	canonicalSet map[string]struct{}
	// maxWords caches the maximum word count over canonicalSet.
	maxWords int
}

// Options tunes index behavior.
type Options struct {
	// WordThreshold is the per-word acceptance base for fuzzy matching.
	// Zero selects match.DefaultBase.
	WordThreshold float64
}

// RefreshOptions controls one reconciliation pass.
type RefreshOptions struct {
	// Ignore lists names to drop from the snapshot, matched case-insensitively.
	Ignore []string

	// Partial marks the snapshot as incomplete. Adds are still applied but
	// removal processing is skipped, so names missing from a partial fetch
	// are not treated as deleted.
	Partial bool
}

// RefreshStats summarizes one reconciliation pass.
type RefreshStats struct {
	// Added is the number of canonical names inserted.
	Added int
	// Removed is the number of canonical names retracted.
	Removed int
	// Collisions counts alias strings already owned by another canonical name.
	Collisions int
}

// Candidate is one index entry: an alias and the canonical name it resolves to.
type Candidate struct {
	Alias     string
	Canonical string
}

// New creates an empty index. A nil logger is replaced with a no-op logger.
func New(logger *zap.Logger, opts Options) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	base := opts.WordThreshold
	if base <= 0 || base > 1 {
		base = match.DefaultBase
	}
	return &Index{
		logger:       logger,
		base:         base,
		variantSet:   make(map[string]struct{}),
		variantMap:   make(map[string]string),
		canonicalSet: make(map[string]struct{}),
	}
}

// Refresh reconciles the index against a complete catalog snapshot.
//
// Names on the ignore list and names prefixed "Category:" (a scraper artifact)
// never enter the index. Names present in both the old and new sets are left
// untouched; only the difference is processed.
func (ix *Index) Refresh(fresh []string, opts RefreshOptions) RefreshStats {
	ignore := make(map[string]struct{}, len(opts.Ignore))
	for _, name := range opts.Ignore {
		ignore[strings.ToLower(name)] = struct{}{}
	}

	filtered := make(map[string]struct{}, len(fresh))
	for _, name := range fresh {
		if name == "" || strings.HasPrefix(name, "Category:") {
			continue
		}
		if _, skip := ignore[strings.ToLower(name)]; skip {
			continue
		}
		filtered[name] = struct{}{}
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	var stats RefreshStats

	var added []string
	for name := range filtered {
		if _, known := ix.canonicalSet[name]; !known {
			added = append(added, name)
		}
	}
	// Sorted insertion order makes alias collision resolution reproducible.
	sort.Strings(added)
	for _, name := range added {
		ix.insert(name, &stats)
	}

	if !opts.Partial {
		var removed []string
		for name := range ix.canonicalSet {
			if _, still := filtered[name]; !still {
				removed = append(removed, name)
			}
		}
		sort.Strings(removed)

		recalcMaxWords := false
		for _, name := range removed {
			if ix.remove(name, &stats) {
				recalcMaxWords = true
			}
		}
		if recalcMaxWords {
			ix.maxWords = 0
			for name := range ix.canonicalSet {
				if n := textnorm.WordCount(name); n > ix.maxWords {
					ix.maxWords = n
				}
			}
		}
	}

	return stats
}

// insert registers one canonical name and its alias variants.
// Generated aliases resolve first-registered-wins on collision; the self
// alias always maps a canonical name to itself.
func (ix *Index) insert(name string, stats *RefreshStats) {
	ix.canonicalSet[name] = struct{}{}
	if n := textnorm.WordCount(name); n > ix.maxWords {
		ix.maxWords = n
	}

	if owner, taken := ix.variantMap[name]; taken && owner != name {
		stats.Collisions++
		ix.logger.Warn("self alias reclaimed from earlier registration",
			zap.String("alias", name),
			zap.String("previous", owner))
	}
	ix.variantMap[name] = name
	ix.variantSet[name] = struct{}{}

	for _, alias := range textnorm.AliasVariants(name) {
		if owner, taken := ix.variantMap[alias]; taken {
			if owner != name {
				stats.Collisions++
				ix.logger.Warn("alias collision, keeping first registration",
					zap.String("alias", alias),
					zap.String("kept", owner),
					zap.String("dropped", name))
			}
			continue
		}
		ix.variantMap[alias] = name
		ix.variantSet[alias] = struct{}{}
	}

	stats.Added++
}

// remove retracts one canonical name and every alias it owns. It reports
// whether the removed name could have defined the cached maximum word count.
func (ix *Index) remove(name string, stats *RefreshStats) bool {
	for _, alias := range textnorm.AliasVariants(name) {
		if ix.variantMap[alias] == name {
			delete(ix.variantMap, alias)
			delete(ix.variantSet, alias)
		}
	}
	if ix.variantMap[name] == name {
		delete(ix.variantMap, name)
		delete(ix.variantSet, name)
	}
	delete(ix.canonicalSet, name)
	stats.Removed++

	return textnorm.WordCount(name) == ix.maxWords
}

// LookupExact resolves text to a canonical name by exact canonical or alias
// match, both with implied confidence 1.0.
func (ix *Index) LookupExact(text string) (string, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.lookupExactLocked(text)
}

func (ix *Index) lookupExactLocked(text string) (string, bool) {
	if _, ok := ix.canonicalSet[text]; ok {
		return text, true
	}
	if canonical, ok := ix.variantMap[text]; ok {
		return canonical, true
	}
	return "", false
}

// CandidatesOfWordCount returns every index entry whose alias has exactly n
// words, sorted by alias.
func (ix *Index) CandidatesOfWordCount(n int) []Candidate {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var candidates []Candidate
	for alias, canonical := range ix.variantMap {
		if textnorm.WordCount(alias) == n {
			candidates = append(candidates, Candidate{Alias: alias, Canonical: canonical})
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Alias < candidates[j].Alias })
	return candidates
}

// Resolve resolves a name exactly or fuzzily. The returned confidence is the
// best match score seen even when no candidate cleared the acceptance
// threshold, so callers can log near misses.
func (ix *Index) Resolve(name string) (canonical string, confidence float64, ok bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if canonical, ok := ix.lookupExactLocked(name); ok {
		return canonical, 1.0, true
	}
	words := strings.Split(textnorm.Normalize(name), " ")
	return ix.bestMatchLocked(words)
}

// Exists reports whether name resolves to any canonical name, exactly or
// within the fuzzy acceptance threshold.
func (ix *Index) Exists(name string) bool {
	_, _, ok := ix.Resolve(name)
	return ok
}

// bestMatchLocked scores the query words against every alias of equal word
// count. Ties break toward the lexicographically smaller alias so results do
// not depend on map iteration order.
func (ix *Index) bestMatchLocked(words []string) (string, float64, bool) {
	var (
		bestScore float64
		bestAlias string
		bestName  string
	)
	for alias, canonical := range ix.variantMap {
		if textnorm.WordCount(alias) != len(words) {
			continue
		}
		score := match.Score(words, strings.Split(alias, " "))
		if score > bestScore || (score == bestScore && score > 0 && alias < bestAlias) {
			bestScore = score
			bestAlias = alias
			bestName = canonical
		}
	}

	if bestScore < match.Threshold(ix.base, len(words)) {
		return "", bestScore, false
	}
	return bestName, bestScore, true
}

// MaxWordCount returns the cached maximum word count over the canonical set.
func (ix *Index) MaxWordCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.maxWords
}

// Len returns the number of canonical names in the index.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.canonicalSet)
}

// CanonicalNames returns the canonical names currently known, sorted.
func (ix *Index) CanonicalNames() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	names := make([]string, 0, len(ix.canonicalSet))
	for name := range ix.canonicalSet {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
