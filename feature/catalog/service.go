package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mention-scanner/feature/catalog/models"
	"mention-scanner/feature/catalog/snapshot"
	"mention-scanner/feature/catalog/store"
	"mention-scanner/feature/catalog/wiki"

	"go.uber.org/zap"
)

// Service aggregates the per-type readers behind the catalog operations.
type Service struct {
	readers []*Reader
	store   *store.Store
	archive *snapshot.Archive
	logger  *zap.Logger
}

// TypeStatus reports one reader's live state.
type TypeStatus struct {
	EntryType  models.EntryType `json:"entry_type"`
	Count      int              `json:"count"`
	LastUpdate time.Time        `json:"last_update"`
}

// NewService creates the catalog service over the given readers.
func NewService(readers []*Reader, st *store.Store, archive *snapshot.Archive, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{readers: readers, store: st, archive: archive, logger: logger}
}

// NewReaders builds one reader per configured source.
func NewReaders(cfg Config, scraper *wiki.Scraper, st *store.Store, archive *snapshot.Archive, logger *zap.Logger) ([]*Reader, error) {
	sources := cfg.Sources()
	readers := make([]*Reader, 0, len(sources))
	for _, src := range sources {
		r, err := NewReader(ReaderOptions{
			Source:        src,
			Scraper:       scraper,
			Store:         st,
			Archive:       archive,
			Logger:        logger,
			Staleness:     time.Duration(cfg.StalenessDays) * 24 * time.Hour,
			WordThreshold: cfg.WordThreshold,
		})
		if err != nil {
			return nil, err
		}
		readers = append(readers, r)
	}
	return readers, nil
}

// Start seeds every reader, trying sources in order of cost: the database
// store first, then a live wiki update, and finally the archived snapshot. A
// reader that ends up with no catalog at all fails startup.
func (s *Service) Start(ctx context.Context) error {
	for _, r := range s.readers {
		seeded, err := r.SeedFromStore(ctx)
		if err != nil {
			s.logger.Warn("store seed failed", zap.Error(err))
		}
		if seeded > 0 {
			s.logger.Info("catalog seeded from store",
				zap.String("entry_type", string(r.EntryType())),
				zap.Int("entries", seeded))
		}

		if err := r.EnsureFresh(ctx); err != nil {
			if seeded > 0 {
				// Stale data still serves; the next scan retries the wiki.
				s.logger.Warn("live catalog update failed, serving stored data",
					zap.String("entry_type", string(r.EntryType())),
					zap.Error(err))
				continue
			}
			if s.archive != nil {
				snap, aerr := s.archive.LoadLatest(ctx, r.EntryType())
				if aerr == nil {
					n := r.SeedFromSnapshot(snap)
					s.logger.Warn("catalog seeded from archived snapshot",
						zap.String("entry_type", string(r.EntryType())),
						zap.Int("entries", n),
						zap.Error(err))
					continue
				}
				s.logger.Warn("snapshot seed failed", zap.Error(aerr))
			}
			return fmt.Errorf("no catalog source available for %s: %w", r.EntryType().Plural(), err)
		}
	}
	return nil
}

// Status returns the live entry counts per type.
func (s *Service) Status() []TypeStatus {
	statuses := make([]TypeStatus, 0, len(s.readers))
	for _, r := range s.readers {
		statuses = append(statuses, TypeStatus{
			EntryType:  r.EntryType(),
			Count:      r.Len(),
			LastUpdate: r.LastUpdate(),
		})
	}
	return statuses
}

// Describe returns the stored entries matching the given names, looked up
// case-insensitively across all entry types.
func (s *Service) Describe(ctx context.Context, names []string) ([]models.WikiEntry, error) {
	if s.store == nil {
		return nil, errors.New("catalog store is not configured")
	}

	var (
		results []models.WikiEntry
		seen    = make(map[uint]struct{})
	)
	for _, name := range names {
		entries, err := s.store.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if _, dup := seen[e.ID]; dup {
				continue
			}
			seen[e.ID] = struct{}{}
			results = append(results, e)
		}
	}
	return results, nil
}

// Refresh forces a live update of every reader.
func (s *Service) Refresh(ctx context.Context) error {
	var errs []error
	for _, r := range s.readers {
		if err := r.Update(ctx, true); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Readers exposes the per-type readers for the mention scanner.
func (s *Service) Readers() []*Reader {
	return s.readers
}
