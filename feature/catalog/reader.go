package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"mention-scanner/core/nameindex"
	"mention-scanner/feature/catalog/models"
	"mention-scanner/feature/catalog/snapshot"
	"mention-scanner/feature/catalog/store"
	"mention-scanner/feature/catalog/wiki"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultStaleness is how long a reader's index stays fresh without a refresh.
const DefaultStaleness = 15 * 24 * time.Hour

// Reader keeps one entry type's catalog synchronized: it scrapes the type's
// wiki pages, maintains the fuzzy name index, persists entries to the store,
// and archives snapshots.
type Reader struct {
	entryType models.EntryType
	links     []string
	ignore    []string
	scraper   *wiki.Scraper
	store     *store.Store
	archive   *snapshot.Archive
	logger    *zap.Logger
	staleness time.Duration

	index *nameindex.Index
	sf    singleflight.Group

	mu         sync.Mutex
	lastUpdate time.Time
}

// ReaderOptions configures a Reader. Store and Archive are optional; without
// them the reader only maintains its in-memory index.
type ReaderOptions struct {
	Source        Source
	Scraper       *wiki.Scraper
	Store         *store.Store
	Archive       *snapshot.Archive
	Logger        *zap.Logger
	Staleness     time.Duration
	WordThreshold float64
}

// NewReader creates a reader for one entry type. An unsupported entry type is
// a configuration error.
func NewReader(opts ReaderOptions) (*Reader, error) {
	if !opts.Source.EntryType.Valid() {
		return nil, fmt.Errorf("unsupported entry type %q, must be one of %v",
			opts.Source.EntryType, models.EntryTypes())
	}
	if opts.Scraper == nil {
		return nil, errors.New("reader requires a scraper")
	}
	if len(opts.Source.Links) == 0 {
		return nil, fmt.Errorf("no pages configured for %s", opts.Source.EntryType.Plural())
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	staleness := opts.Staleness
	if staleness <= 0 {
		staleness = DefaultStaleness
	}

	return &Reader{
		entryType: opts.Source.EntryType,
		links:     opts.Source.Links,
		ignore:    opts.Source.Ignore,
		scraper:   opts.Scraper,
		store:     opts.Store,
		archive:   opts.Archive,
		logger:    logger.With(zap.String("entry_type", string(opts.Source.EntryType))),
		staleness: staleness,
		index:     nameindex.New(logger, nameindex.Options{WordThreshold: opts.WordThreshold}),
	}, nil
}

// EntryType returns the entry type this reader serves.
func (r *Reader) EntryType() models.EntryType {
	return r.entryType
}

// Len returns the number of canonical names currently indexed.
func (r *Reader) Len() int {
	return r.index.Len()
}

// LastUpdate returns when the reader last applied a catalog snapshot.
func (r *Reader) LastUpdate() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastUpdate
}

// Scan resolves entity mentions in a title against the reader's index.
func (r *Reader) Scan(text string) map[string]float64 {
	return r.index.Scan(text)
}

// Resolve resolves one name against the reader's index.
func (r *Reader) Resolve(name string) (string, float64, bool) {
	return r.index.Resolve(name)
}

// Update fetches the reader's wiki pages and reconciles index, store, and
// archive against the result. Without force it is a no-op while the reader is
// still fresh.
//
// When every page fails the update errors out and nothing changes. When only
// some pages fail the fetched subset is applied as a partial refresh: new
// entries register, but names missing from the subset are not treated as
// removed.
func (r *Reader) Update(ctx context.Context, force bool) error {
	if !force && !r.stale() {
		return nil
	}

	entries, partial, err := r.fetch(ctx)
	if err != nil {
		return err
	}
	entries = r.filter(entries)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	stats := r.index.Refresh(names, nameindex.RefreshOptions{Ignore: r.ignore, Partial: partial})
	r.logger.Info("catalog refreshed",
		zap.Int("entries", len(entries)),
		zap.Int("added", stats.Added),
		zap.Int("removed", stats.Removed),
		zap.Int("collisions", stats.Collisions),
		zap.Bool("partial", partial))

	if r.store != nil {
		if err := r.store.Sync(ctx, r.entryType, entries, partial); err != nil {
			return fmt.Errorf("failed to persist %s catalog: %w", r.entryType.Plural(), err)
		}
	}
	if r.archive != nil && !partial {
		snap := snapshot.Snapshot{
			EntryType: r.entryType,
			TakenAt:   time.Now().UTC(),
			Entries:   entries,
		}
		// Archival is best effort; the index and store already hold the data.
		if err := r.archive.Save(ctx, snap); err != nil {
			r.logger.Warn("snapshot archive failed", zap.Error(err))
		}
	}

	r.mu.Lock()
	r.lastUpdate = time.Now()
	r.mu.Unlock()
	return nil
}

// EnsureFresh refreshes the reader when it is older than the staleness
// threshold. Concurrent callers share a single update.
func (r *Reader) EnsureFresh(ctx context.Context) error {
	if !r.stale() {
		return nil
	}
	_, err, _ := r.sf.Do(string(r.entryType), func() (any, error) {
		return nil, r.Update(ctx, false)
	})
	return err
}

// SeedFromStore loads the persisted catalog into the index, returning how many
// entries were restored. The stored update time carries over, so a stale
// store still reads as stale.
func (r *Reader) SeedFromStore(ctx context.Context) (int, error) {
	if r.store == nil {
		return 0, nil
	}
	entries, newest, err := r.store.List(ctx, r.entryType)
	if err != nil {
		return 0, fmt.Errorf("failed to seed %s catalog from store: %w", r.entryType.Plural(), err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	r.index.Refresh(names, nameindex.RefreshOptions{Ignore: r.ignore})

	r.mu.Lock()
	r.lastUpdate = newest
	r.mu.Unlock()
	return len(entries), nil
}

// SeedFromSnapshot loads an archived snapshot into the index, returning how
// many entries it held.
func (r *Reader) SeedFromSnapshot(snap *snapshot.Snapshot) int {
	names := make([]string, 0, len(snap.Entries))
	for _, e := range snap.Entries {
		names = append(names, e.Name)
	}
	r.index.Refresh(names, nameindex.RefreshOptions{Ignore: r.ignore})

	r.mu.Lock()
	r.lastUpdate = snap.TakenAt
	r.mu.Unlock()
	return len(snap.Entries)
}

func (r *Reader) stale() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastUpdate.IsZero() || time.Since(r.lastUpdate) > r.staleness
}

// fetch collects entries from every configured page. It reports partial when
// some pages failed and errors out when all of them did.
func (r *Reader) fetch(ctx context.Context) ([]models.WikiEntry, bool, error) {
	var (
		entries []models.WikiEntry
		failed  int
		lastErr error
	)
	for _, link := range r.links {
		pageURL := r.scraper.PageURL(link)

		var (
			page []models.WikiEntry
			err  error
		)
		if r.entryType == models.EntryCard {
			page, err = r.scraper.CardEntries(ctx, pageURL)
		} else {
			page, err = r.scraper.CategoryEntries(ctx, pageURL, r.entryType)
		}
		if err != nil {
			failed++
			lastErr = err
			r.logger.Warn("catalog page fetch failed", zap.String("page", pageURL), zap.Error(err))
			continue
		}
		entries = append(entries, page...)
	}

	if failed == len(r.links) {
		return nil, false, fmt.Errorf("failed to fetch any %s page: %w", r.entryType.Plural(), lastErr)
	}
	return entries, failed > 0, nil
}

// filter drops category artifacts and ignored names before the snapshot
// reaches the store or archive. The index applies the same filter on refresh.
func (r *Reader) filter(entries []models.WikiEntry) []models.WikiEntry {
	ignore := make(map[string]struct{}, len(r.ignore))
	for _, name := range r.ignore {
		ignore[strings.ToLower(name)] = struct{}{}
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.Name == "" || strings.HasPrefix(e.Name, "Category:") {
			continue
		}
		if _, skip := ignore[strings.ToLower(e.Name)]; skip {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
