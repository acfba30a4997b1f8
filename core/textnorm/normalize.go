package textnorm

import "strings"

// symbolReplacer strips punctuation that should never appear in an entity name.
var symbolReplacer = strings.NewReplacer(
	"?", "", ",", "", ".", "", "!", "", "(", "", ")", "", ":", "",
)

// apostropheReplacer strips both straight and curly single quotes.
var apostropheReplacer = strings.NewReplacer("'", "", "’", "")

// joinReplacer swaps typical joining characters with spaces.
var joinReplacer = strings.NewReplacer("-", " ", "_", " ")

// betaReplacer strips the wiki's beta tag in any of its observed forms.
// The underscore variants must run first so "_beta" does not leave a
// dangling underscore behind.
var betaReplacer = strings.NewReplacer("_beta", "", "_Beta", "", "Beta", "", "beta", "")

func stripSymbols(name string) string { return symbolReplacer.Replace(name) }

func stripApostrophes(name string) string { return apostropheReplacer.Replace(name) }

func lower(name string) string { return strings.ToLower(name) }

func flattenJoins(name string) string { return joinReplacer.Replace(name) }

func stripBeta(name string) string { return betaReplacer.Replace(name) }

func pluralize(name string) string { return name + "s" }

// pipeline is the fixed transform order. Alias generation applies suffixes of
// this sequence; Normalize applies only the first four steps.
var pipeline = []func(string) string{
	stripSymbols,
	stripApostrophes,
	lower,
	flattenJoins,
	stripBeta,
	pluralize,
}

// Normalize canonicalizes a query phrase: punctuation and apostrophes are
// stripped, the result is lowercased, and hyphens/underscores become spaces.
// It does not pluralize or strip beta tags; those transforms exist only to
// generate alias variants.
func Normalize(phrase string) string {
	return flattenJoins(lower(stripApostrophes(stripSymbols(phrase))))
}

// WordCount reports the number of tokens in a name under the literal
// single-space splitting used throughout the index.
func WordCount(name string) int {
	return strings.Count(name, " ") + 1
}
