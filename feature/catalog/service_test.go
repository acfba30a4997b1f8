package catalog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"mention-scanner/core/storage/mocks"
	"mention-scanner/feature/catalog"
	"mention-scanner/feature/catalog/models"
	"mention-scanner/feature/catalog/snapshot"
	"mention-scanner/feature/catalog/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, w *testWiki, st *store.Store, archive *snapshot.Archive) *catalog.Service {
	t.Helper()
	r, err := catalog.NewReader(catalog.ReaderOptions{
		Source:  relicSource(),
		Scraper: newTestScraper(t, w),
		Store:   st,
		Archive: archive,
	})
	require.NoError(t, err)
	return catalog.NewService([]*catalog.Reader{r}, st, archive, zap.NewNop())
}

func TestServiceStartSeedsFromStore(t *testing.T) {
	w := newTestWiki(t)
	st := newTestStore(t)
	require.NoError(t, st.Sync(context.Background(), models.EntryRelic, []models.WikiEntry{
		{Name: "Snecko Eye", EntryType: models.EntryRelic},
	}, false))

	svc := newTestService(t, w, st, nil)
	require.NoError(t, svc.Start(context.Background()))

	// Fresh stored data seeds the index without a wiki round trip.
	assert.Zero(t, w.requests.Load())

	statuses := svc.Status()
	require.Len(t, statuses, 1)
	assert.Equal(t, models.EntryRelic, statuses[0].EntryType)
	assert.Equal(t, 1, statuses[0].Count)
	assert.False(t, statuses[0].LastUpdate.IsZero())
}

func TestServiceStartUpdatesWhenStoreEmpty(t *testing.T) {
	w := newTestWiki(t)
	st := newTestStore(t)

	svc := newTestService(t, w, st, nil)
	require.NoError(t, svc.Start(context.Background()))

	statuses := svc.Status()
	require.Len(t, statuses, 1)
	assert.Equal(t, 2, statuses[0].Count)

	stored, _, err := st.List(context.Background(), models.EntryRelic)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestServiceStartFallsBackToArchive(t *testing.T) {
	w := newTestWiki(t)
	w.betaDown.Store(true)
	w.server.Close() // wiki fully unreachable

	snap := snapshot.Snapshot{
		EntryType: models.EntryRelic,
		TakenAt:   time.Now().Add(-30 * 24 * time.Hour),
		Entries: []models.WikiEntry{
			{Name: "Snecko Eye", EntryType: models.EntryRelic},
		},
	}
	payload, err := json.Marshal(snap)
	require.NoError(t, err)

	mockClient := new(mocks.Client)
	mockClient.On("GetObject", mock.Anything, "catalog", "snapshots/relic/latest.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(payload)), nil)
	archive := snapshot.New(mockClient, "catalog", zap.NewNop())

	svc := newTestService(t, w, newTestStore(t), archive)
	require.NoError(t, svc.Start(context.Background()))

	statuses := svc.Status()
	require.Len(t, statuses, 1)
	assert.Equal(t, 1, statuses[0].Count)
}

func TestServiceStartFailsWithoutAnySource(t *testing.T) {
	w := newTestWiki(t)
	w.server.Close()

	svc := newTestService(t, w, newTestStore(t), nil)
	assert.Error(t, svc.Start(context.Background()))
}

func TestServiceDescribe(t *testing.T) {
	w := newTestWiki(t)
	st := newTestStore(t)
	require.NoError(t, st.Sync(context.Background(), models.EntryRelic, []models.WikiEntry{
		{Name: "Snecko Eye", EntryType: models.EntryRelic, Descr: "Draw 2 additional cards each turn."},
		{Name: "Astrolabe", EntryType: models.EntryRelic},
	}, false))

	svc := newTestService(t, w, st, nil)

	entries, err := svc.Describe(context.Background(), []string{"snecko eye", "SNECKO EYE", "unknown"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Snecko Eye", entries[0].Name)
}

func TestServiceRefresh(t *testing.T) {
	w := newTestWiki(t)
	st := newTestStore(t)

	svc := newTestService(t, w, st, nil)
	require.NoError(t, svc.Refresh(context.Background()))

	statuses := svc.Status()
	require.Len(t, statuses, 1)
	assert.Equal(t, 2, statuses[0].Count)
}

func TestServiceRefreshReportsFailures(t *testing.T) {
	w := newTestWiki(t)
	w.server.Close()

	svc := newTestService(t, w, newTestStore(t), nil)
	assert.Error(t, svc.Refresh(context.Background()))
}
