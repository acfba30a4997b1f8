package models

import (
	"strings"
	"time"
)

// EntryType classifies a catalog entry. Each type gets its own reader and its
// own name index; the types are never merged.
type EntryType string

const (
	EntryCard   EntryType = "Card"
	EntryPotion EntryType = "Potion"
	EntryRelic  EntryType = "Relic"
)

// EntryTypes lists every supported entry type.
func EntryTypes() []EntryType {
	return []EntryType{EntryCard, EntryPotion, EntryRelic}
}

// Valid reports whether t is a supported entry type.
func (t EntryType) Valid() bool {
	switch t {
	case EntryCard, EntryPotion, EntryRelic:
		return true
	default:
		return false
	}
}

// Plural returns the lowercase plural label used in logs and status output.
func (t EntryType) Plural() string {
	return strings.ToLower(string(t)) + "s"
}

// WikiEntry is one catalog entry scraped from the wiki, persisted as the
// local catalog cache.
type WikiEntry struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"size:255;uniqueIndex:idx_entry_name_type" json:"name"`
	EntryType EntryType `gorm:"size:16;uniqueIndex:idx_entry_name_type" json:"entry_type"`
	Descr     string    `gorm:"type:text" json:"descr"`
	Link      string    `gorm:"size:512" json:"link"`
	Class     string    `gorm:"size:64" json:"class"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
