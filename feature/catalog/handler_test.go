package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mention-scanner/feature/catalog"
	"mention-scanner/feature/catalog/models"
	"mention-scanner/feature/catalog/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, w *testWiki, st *store.Store) *fiber.App {
	t.Helper()
	svc := newTestService(t, w, st, nil)
	require.NoError(t, svc.Start(context.Background()))

	app := fiber.New()
	feature := catalog.NewFeature(catalog.Config{Enabled: true}, svc)
	require.NoError(t, feature.Load(app))
	return app
}

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	st := newTestStore(t)
	require.NoError(t, st.Sync(context.Background(), models.EntryRelic, []models.WikiEntry{
		{Name: "Snecko Eye", EntryType: models.EntryRelic, Descr: "Draw 2 additional cards each turn."},
		{Name: "Astrolabe", EntryType: models.EntryRelic},
	}, false))
	return st
}

func decodeBody(t *testing.T, res *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body
}

func TestHandleStatus(t *testing.T) {
	app := newTestApp(t, newTestWiki(t), seededStore(t))

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/catalog", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decodeBody(t, res)
	assert.Equal(t, "live", body["status"])

	types, ok := body["types"].([]any)
	require.True(t, ok)
	require.Len(t, types, 1)
	status := types[0].(map[string]any)
	assert.Equal(t, "Relic", status["entry_type"])
	assert.Equal(t, float64(2), status["count"])
}

func TestHandleDescribeOne(t *testing.T) {
	app := newTestApp(t, newTestWiki(t), seededStore(t))

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/catalog/describe/Snecko%20Eye", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decodeBody(t, res)
	entries := body["entries"].([]any)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]any)
	assert.Equal(t, "Snecko Eye", entry["name"])
	assert.Equal(t, "Draw 2 additional cards each turn.", entry["descr"])
}

func TestHandleDescribeOneUnknown(t *testing.T) {
	app := newTestApp(t, newTestWiki(t), seededStore(t))

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/catalog/describe/Nothing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestHandleDescribeMany(t *testing.T) {
	app := newTestApp(t, newTestWiki(t), seededStore(t))

	req := httptest.NewRequest(http.MethodPost, "/catalog/describe",
		strings.NewReader(`{"names": ["snecko eye", "astrolabe", "unknown"]}`))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decodeBody(t, res)
	entries := body["entries"].([]any)
	assert.Len(t, entries, 2)
}

func TestHandleDescribeManyBadBody(t *testing.T) {
	app := newTestApp(t, newTestWiki(t), seededStore(t))

	req := httptest.NewRequest(http.MethodPost, "/catalog/describe", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestHandleRefresh(t *testing.T) {
	w := newTestWiki(t)
	app := newTestApp(t, w, newTestStore(t))
	before := w.requests.Load()

	res, err := app.Test(httptest.NewRequest(http.MethodPost, "/catalog/refresh", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decodeBody(t, res)
	assert.Equal(t, "refreshed", body["status"])
	assert.Greater(t, w.requests.Load(), before)
}
