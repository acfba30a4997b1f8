package textnorm

import "sort"

// AliasVariants expands a canonical name into every partial application of the
// normalization pipeline.
//
// For each starting offset o, the pipeline suffix is applied to the original
// name one transform at a time, and every intermediate string is collected.
// This makes "lowercased-then-hyphen-stripped" a distinct variant from
// "lowercased-then-hyphen-stripped-then-pluralized", so a title that drops the
// apostrophe but keeps the casing still resolves.
//
// The canonical name's own self form is not included; the index registers that
// mapping itself. The result is deduplicated and sorted so generation is
// reproducible regardless of map iteration order.
func AliasVariants(name string) []string {
	seen := make(map[string]struct{})
	for offset := range pipeline {
		variant := name
		for _, transform := range pipeline[offset:] {
			variant = transform(variant)
			seen[variant] = struct{}{}
		}
	}

	variants := make([]string, 0, len(seen))
	for v := range seen {
		variants = append(variants, v)
	}
	sort.Strings(variants)
	return variants
}
