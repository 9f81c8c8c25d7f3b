package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetCache_Preload(t *testing.T) {
	cache, err := NewAssetCache(embeddedStatic)
	require.NoError(t, err)

	assert.Equal(t, AssetCacheVersion, cache.Version())
	for _, name := range assetManifest {
		cache.mu.RLock()
		_, ok := cache.entries[name]
		cache.mu.RUnlock()
		assert.True(t, ok, "asset %s should be preloaded", name)
	}
}

func TestAssetCache_ServeStatic(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodGet, "/static/styles.css", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	assert.Equal(t, AssetCacheVersion, rec.Header().Get("X-Asset-Cache"))
	assert.Contains(t, rec.Body.String(), "--primary-color")
}

func TestAssetCache_Passthroughs(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodGet, "/sw.js", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "calendar-app-v1")

	rec = doJSON(t, h, http.MethodGet, "/manifest.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestAssetCache_UnknownAsset(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/static/missing.css", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssetCache_PathTraversal(t *testing.T) {
	cache, err := NewAssetCache(embeddedStatic)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	req.URL.Path = "/static/../templates/index.html"
	rec := httptest.NewRecorder()
	cache.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssetCache_ActivateReplacesWholesale(t *testing.T) {
	cache, err := NewAssetCache(embeddedStatic)
	require.NoError(t, err)

	// Same version is a no-op.
	require.NoError(t, cache.Activate(AssetCacheVersion))
	assert.Equal(t, AssetCacheVersion, cache.Version())

	// A new version reloads the manifest under the new name.
	require.NoError(t, cache.Activate("calendar-app-v2"))
	assert.Equal(t, "calendar-app-v2", cache.Version())

	cache.mu.RLock()
	defer cache.mu.RUnlock()
	assert.Len(t, cache.entries, len(assetManifest))
}
