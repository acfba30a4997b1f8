// Package textnorm provides the name normalization pipeline used by the
// fuzzy name index.
//
// It has two jobs:
//
//   - Normalize canonicalizes an incoming query phrase (punctuation,
//     apostrophes, casing, joining characters) before fuzzy comparison.
//   - AliasVariants expands one canonical entity name into the full set of
//     alias spellings it should also match, covering common partial
//     misspellings such as a dropped apostrophe with retained casing.
//
// The pipeline is a fixed, ordered sequence of six pure string transforms.
// Both entry points are deterministic: the same input always produces the
// same output, and AliasVariants returns its result sorted.
package textnorm
