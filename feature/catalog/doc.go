// Package catalog keeps the game-entity catalog (cards, potions, relics)
// synchronized from the wiki and resolvable by name.
//
// One Reader per entry type scrapes its wiki pages, feeds a fuzzy name index,
// persists entries to the database store, and archives snapshots to object
// storage. The Service aggregates the readers behind status, describe, and
// refresh operations, exposed over HTTP by the Handler.
package catalog
