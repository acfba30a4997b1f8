// Package models defines the catalog data model: the supported entry types
// (cards, potions, relics) and the WikiEntry GORM model that caches scraped
// wiki entries in the database.
package models
