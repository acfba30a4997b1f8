package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"mention-scanner/core/database"
	"mention-scanner/feature/catalog"
	"mention-scanner/feature/catalog/models"
	"mention-scanner/feature/catalog/snapshot"
	"mention-scanner/feature/catalog/store"
	"mention-scanner/feature/catalog/wiki"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const relicPageHTML = `<html><body>
<a class="category-page__member-link" href="/wiki/Snecko_Eye">Snecko Eye</a>
<a class="category-page__member-link" href="/wiki/Relics">Relics</a>
<a class="category-page__member-link" href="/wiki/Category:Beta_Relic">Category:Beta Relic</a>
</body></html>`

const betaPageHTML = `<html><body>
<a class="category-page__member-link" href="/wiki/Astrolabe">Astrolabe</a>
</body></html>`

// testWiki serves two relic category pages; betaDown flips the second one
// into a failure to exercise partial fetches.
type testWiki struct {
	server   *httptest.Server
	betaDown atomic.Bool
	requests atomic.Int64
}

func newTestWiki(t *testing.T) *testWiki {
	t.Helper()
	w := &testWiki{}
	mux := http.NewServeMux()
	mux.HandleFunc("/wiki/Category:Relic", func(rw http.ResponseWriter, _ *http.Request) {
		w.requests.Add(1)
		_, _ = rw.Write([]byte(relicPageHTML))
	})
	mux.HandleFunc("/wiki/Category:Beta_Relic", func(rw http.ResponseWriter, _ *http.Request) {
		w.requests.Add(1)
		if w.betaDown.Load() {
			rw.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = rw.Write([]byte(betaPageHTML))
	})
	w.server = httptest.NewServer(mux)
	t.Cleanup(w.server.Close)
	return w
}

func newTestScraper(t *testing.T, w *testWiki) *wiki.Scraper {
	t.Helper()
	s := wiki.NewScraper(zap.NewNop(), 0)
	s.SetBaseURL(w.server.URL)
	s.FetchDetails = false
	return s
}

func relicSource() catalog.Source {
	return catalog.Source{
		EntryType: models.EntryRelic,
		Links:     []string{"/wiki/Category:Relic", "/wiki/Category:Beta_Relic"},
		Ignore:    []string{"Relics"},
	}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	s, err := store.New(db)
	require.NoError(t, err)
	return s
}

func TestNewReaderRejectsUnknownType(t *testing.T) {
	w := newTestWiki(t)
	_, err := catalog.NewReader(catalog.ReaderOptions{
		Source: catalog.Source{
			EntryType: models.EntryType("Weapon"),
			Links:     []string{"/wiki/Category:Weapon"},
		},
		Scraper: newTestScraper(t, w),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Weapon")
}

func TestReaderUpdateBuildsIndexAndStore(t *testing.T) {
	w := newTestWiki(t)
	st := newTestStore(t)
	r, err := catalog.NewReader(catalog.ReaderOptions{
		Source:  relicSource(),
		Scraper: newTestScraper(t, w),
		Store:   st,
	})
	require.NoError(t, err)

	require.NoError(t, r.Update(context.Background(), true))

	// Ignored and Category: names never enter the index.
	assert.Equal(t, 2, r.Len())

	name, conf, ok := r.Resolve("Snecko Eye")
	require.True(t, ok)
	assert.Equal(t, "Snecko Eye", name)
	assert.Equal(t, 1.0, conf)

	name, conf, ok = r.Resolve("sneckos eye")
	require.True(t, ok)
	assert.Equal(t, "Snecko Eye", name)
	assert.Less(t, conf, 1.0)

	stored, _, err := st.List(context.Background(), models.EntryRelic)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Astrolabe", stored[0].Name)
	assert.Equal(t, "Snecko Eye", stored[1].Name)
}

func TestReaderPartialFetchKeepsMissingEntries(t *testing.T) {
	w := newTestWiki(t)
	st := newTestStore(t)
	r, err := catalog.NewReader(catalog.ReaderOptions{
		Source:  relicSource(),
		Scraper: newTestScraper(t, w),
		Store:   st,
	})
	require.NoError(t, err)
	require.NoError(t, r.Update(context.Background(), true))
	require.Equal(t, 2, r.Len())

	w.betaDown.Store(true)
	require.NoError(t, r.Update(context.Background(), true))

	// Astrolabe only appears on the failed page, but a partial fetch never
	// reads as a removal.
	assert.Equal(t, 2, r.Len())
	_, _, ok := r.Resolve("Astrolabe")
	assert.True(t, ok)

	stored, _, err := st.List(context.Background(), models.EntryRelic)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestReaderAllPagesFailingErrors(t *testing.T) {
	w := newTestWiki(t)
	r, err := catalog.NewReader(catalog.ReaderOptions{
		Source: catalog.Source{
			EntryType: models.EntryRelic,
			Links:     []string{"/wiki/Category:Beta_Relic"},
		},
		Scraper: newTestScraper(t, w),
	})
	require.NoError(t, err)

	w.betaDown.Store(true)
	assert.Error(t, r.Update(context.Background(), true))
	assert.Equal(t, 0, r.Len())
}

func TestReaderEnsureFreshSkipsWhenFresh(t *testing.T) {
	w := newTestWiki(t)
	r, err := catalog.NewReader(catalog.ReaderOptions{
		Source:  relicSource(),
		Scraper: newTestScraper(t, w),
	})
	require.NoError(t, err)

	require.NoError(t, r.EnsureFresh(context.Background()))
	after := w.requests.Load()
	require.NoError(t, r.EnsureFresh(context.Background()))
	assert.Equal(t, after, w.requests.Load())
}

func TestReaderSeedFromStore(t *testing.T) {
	w := newTestWiki(t)
	st := newTestStore(t)
	require.NoError(t, st.Sync(context.Background(), models.EntryRelic, []models.WikiEntry{
		{Name: "Snecko Eye", EntryType: models.EntryRelic},
	}, false))

	r, err := catalog.NewReader(catalog.ReaderOptions{
		Source:  relicSource(),
		Scraper: newTestScraper(t, w),
		Store:   st,
	})
	require.NoError(t, err)

	n, err := r.SeedFromStore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, r.LastUpdate().IsZero())

	_, _, ok := r.Resolve("Snecko Eye")
	assert.True(t, ok)

	// Freshly stored data keeps EnsureFresh off the wiki.
	before := w.requests.Load()
	require.NoError(t, r.EnsureFresh(context.Background()))
	assert.Equal(t, before, w.requests.Load())
}

func TestReaderSeedFromSnapshot(t *testing.T) {
	w := newTestWiki(t)
	r, err := catalog.NewReader(catalog.ReaderOptions{
		Source:  relicSource(),
		Scraper: newTestScraper(t, w),
	})
	require.NoError(t, err)

	n := r.SeedFromSnapshot(&snapshot.Snapshot{
		EntryType: models.EntryRelic,
		TakenAt:   time.Now().Add(-time.Hour),
		Entries: []models.WikiEntry{
			{Name: "Astrolabe", EntryType: models.EntryRelic},
		},
	})
	assert.Equal(t, 1, n)
	_, _, ok := r.Resolve("Astrolabe")
	assert.True(t, ok)
}
