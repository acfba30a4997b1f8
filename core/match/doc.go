// Package match scores how well a query phrase matches a candidate alias.
//
// Word-level similarity uses Jaro-Winkler, which is well suited to short
// entity names where users typically get the start of a word right. Because
// Jaro-Winkler is prefix weighted, each word is scored twice: once forward and
// once reversed, so a word that matches only at the prefix and diverges at the
// suffix is penalized relative to one that matches throughout.
//
// Phrase scores are the product of the per-word scores, computed only for
// word sequences of equal length; there is no insertion or deletion tolerance
// across differing word counts. The acceptance threshold compounds downward
// per word (base^n), so longer phrases are allowed proportionally more noise.
package match
