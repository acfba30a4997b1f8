// Package wiki scrapes entity catalogs from the game's fandom wiki.
//
// Two page shapes are understood:
//
//   - Category listing pages, where each entry is an anchor with the
//     category-page__member-link class (relics, potions).
//   - Card table pages, where the first table lists one card per row with
//     rarity, type, energy cost and effect columns (cards).
//
// Relic and potion descriptions live on per-entry pages in a data-source
// infobox, so building them costs one extra fetch per entry. A failed detail
// fetch degrades to an empty description; it never drops the entry itself,
// because a missing name would later read as a catalog removal.
//
// Parsing is separated from fetching so the parsers can be exercised against
// static HTML in tests.
package wiki
