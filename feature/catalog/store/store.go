// Package store persists the scraped catalog in the database, giving the
// application a warm-start cache that survives restarts and wiki outages.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mention-scanner/feature/catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the database-backed catalog cache.
type Store struct {
	db *gorm.DB
}

// New creates a store and migrates its schema.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&models.WikiEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Sync reconciles the stored entries of one type against a fetched snapshot:
// fetched entries are upserted by (name, entry type), and entries no longer
// present are deleted. A partial snapshot skips the deletion pass, matching
// the index's partial-refresh semantics.
func (s *Store) Sync(ctx context.Context, entryType models.EntryType, entries []models.WikiEntry, partial bool) error {
	names := make([]string, 0, len(entries))
	for i := range entries {
		entries[i].EntryType = entryType
		names = append(names, entries[i].Name)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(entries) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "name"}, {Name: "entry_type"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"descr", "link", "class", "updated_at",
				}),
			}).Create(&entries).Error
			if err != nil {
				return fmt.Errorf("failed to upsert entries: %w", err)
			}
		}

		if !partial {
			q := tx.Where("entry_type = ?", entryType)
			if len(names) > 0 {
				q = q.Where("name NOT IN ?", names)
			}
			if err := q.Delete(&models.WikiEntry{}).Error; err != nil {
				return fmt.Errorf("failed to delete vanished entries: %w", err)
			}
		}
		return nil
	})
}

// List returns every stored entry of one type along with the most recent
// update timestamp, used to judge staleness at startup.
func (s *Store) List(ctx context.Context, entryType models.EntryType) ([]models.WikiEntry, time.Time, error) {
	var entries []models.WikiEntry
	err := s.db.WithContext(ctx).
		Where("entry_type = ?", entryType).
		Order("name").
		Find(&entries).Error
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to list entries: %w", err)
	}

	var newest time.Time
	for _, e := range entries {
		if e.UpdatedAt.After(newest) {
			newest = e.UpdatedAt
		}
	}
	return entries, newest, nil
}

// FindByName returns the stored entries matching a name case-insensitively,
// across all entry types.
func (s *Store) FindByName(ctx context.Context, name string) ([]models.WikiEntry, error) {
	var entries []models.WikiEntry
	err := s.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %q: %w", name, err)
	}
	return entries, nil
}

// CountByType returns the number of stored entries per entry type.
func (s *Store) CountByType(ctx context.Context) (map[models.EntryType]int64, error) {
	counts := make(map[models.EntryType]int64)
	for _, entryType := range models.EntryTypes() {
		var n int64
		err := s.db.WithContext(ctx).
			Model(&models.WikiEntry{}).
			Where("entry_type = ?", entryType).
			Count(&n).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count %s entries: %w", entryType, err)
		}
		counts[entryType] = n
	}
	return counts, nil
}
