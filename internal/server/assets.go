package server

import (
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"
	"sync"
)

// AssetCacheVersion names the current asset cache generation. Bumping it
// and calling Activate replaces the cached set wholesale.
const AssetCacheVersion = "calendar-app-v1"

// assetManifest is the fixed set of files preloaded into the cache at
// startup. Paths are relative to the embedded static root.
var assetManifest = []string{
	"styles.css",
	"app.js",
	"manifest.json",
	"sw.js",
}

type assetEntry struct {
	body        []byte
	contentType string
}

// AssetCache serves the static assets cache-first: the manifest files
// are held in memory keyed by path, and anything not cached falls
// through to the embedded filesystem.
type AssetCache struct {
	fsys fs.FS

	mu      sync.RWMutex
	version string
	entries map[string]assetEntry
}

// NewAssetCache preloads the manifest from the embedded filesystem.
func NewAssetCache(fsys fs.FS) (*AssetCache, error) {
	sub, err := fs.Sub(fsys, "static")
	if err != nil {
		return nil, err
	}

	c := &AssetCache{fsys: sub}
	if err := c.Activate(AssetCacheVersion); err != nil {
		return nil, err
	}
	return c, nil
}

// Version returns the active cache generation name.
func (c *AssetCache) Version() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Activate loads the manifest into a fresh cache under the given
// version name and swaps it in wholesale. Activating the version that
// is already live is a no-op.
func (c *AssetCache) Activate(version string) error {
	c.mu.RLock()
	current := c.version
	c.mu.RUnlock()
	if version == current {
		return nil
	}

	entries := make(map[string]assetEntry, len(assetManifest))
	for _, name := range assetManifest {
		body, err := fs.ReadFile(c.fsys, name)
		if err != nil {
			return fmt.Errorf("failed to preload asset %s: %w", name, err)
		}
		entries[name] = assetEntry{
			body:        body,
			contentType: contentTypeFor(name),
		}
	}

	c.mu.Lock()
	c.version = version
	c.entries = entries
	c.mu.Unlock()

	slog.Info("asset cache activated", "version", version, "assets", len(entries))
	return nil
}

// ServeHTTP serves /static/* requests cache-first.
func (c *AssetCache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/static/")
	c.serve(w, r, name)
}

// servePassthrough serves root-level asset routes such as
// /manifest.json and /sw.js from the same cache.
func (c *AssetCache) servePassthrough(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, strings.TrimPrefix(r.URL.Path, "/"))
}

func (c *AssetCache) serve(w http.ResponseWriter, r *http.Request, name string) {
	if name == "" || strings.Contains(name, "..") {
		http.NotFound(w, r)
		return
	}

	c.mu.RLock()
	entry, ok := c.entries[name]
	c.mu.RUnlock()

	if !ok {
		// Fall through to the embedded filesystem for files outside
		// the preloaded manifest.
		body, err := fs.ReadFile(c.fsys, name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		entry = assetEntry{body: body, contentType: contentTypeFor(name)}
	}

	w.Header().Set("Content-Type", entry.contentType)
	w.Header().Set("X-Asset-Cache", c.Version())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(entry.body)
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
