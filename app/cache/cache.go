package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/prashikshan/newstrends/app/article"
)

// RemoteObject is the blob name the snapshot is mirrored under.
const RemoteObject = "news_cache.json"

const (
	// DefaultMaxAge is the staleness threshold reported on the admin surface.
	DefaultMaxAge = 30 * time.Minute
	// servingMaxAge is how old a snapshot may get before reads trigger a scrape.
	servingMaxAge = 60 * time.Minute
)

// Cache is the two-tier article cache: a single JSON snapshot on disk,
// mirrored best-effort to a remote blob store.
type Cache struct {
	mu         sync.Mutex
	path       string
	categories []string
	remote     RemoteStore
	snap       *Snapshot
}

// New loads the snapshot from path, creating a fresh one with empty slices
// for every known category when the file does not exist. remote may be nil.
func New(path string, categories []string, remote RemoteStore) (*Cache, error) {
	c := &Cache{
		path:       path,
		categories: slices.Clone(categories),
		remote:     remote,
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		snap := &Snapshot{}
		if err := json.Unmarshal(data, snap); err != nil {
			slog.Warn("Cache file is corrupt, starting fresh", "path", path, "error", err)
			c.snap = newSnapshot(categories)
		} else {
			c.snap = snap
			c.ensureCategoriesLocked()
		}
	case os.IsNotExist(err):
		c.snap = newSnapshot(categories)
		if err := c.saveLocked(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("read cache file: %w", err)
	}

	return c, nil
}

func (c *Cache) ensureCategoriesLocked() {
	if c.snap.Categories == nil {
		c.snap.Categories = make(map[string][]article.Article, len(c.categories))
	}
	for _, cat := range c.categories {
		if _, ok := c.snap.Categories[cat]; !ok {
			c.snap.Categories[cat] = []article.Article{}
		}
	}
	if c.snap.Metadata.Version == "" {
		c.snap.Metadata.Version = schemaVersion
	}
	c.snap.recount()
}

// Articles returns the cached articles for a category. An empty category
// returns every cached article across categories, in canonical order.
func (c *Cache) Articles(category string) ([]article.Article, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if category == "" {
		combined := make([]article.Article, 0, c.snap.TotalArticles)
		for _, cat := range c.categories {
			combined = append(combined, c.snap.Categories[cat]...)
		}
		return combined, true
	}

	articles, ok := c.snap.Categories[category]
	if !ok {
		return nil, false
	}
	return slices.Clone(articles), true
}

// UpdateCategory replaces one category's articles, stamps last_updated and
// persists the snapshot to disk.
func (c *Cache) UpdateCategory(category string, articles []article.Article) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if articles == nil {
		articles = []article.Article{}
	}
	c.snap.Categories[category] = slices.Clone(articles)
	c.touchLocked()
	return c.saveLocked()
}

// UpdateAll replaces every category in one write.
func (c *Cache) UpdateAll(categories map[string][]article.Article) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for cat, articles := range categories {
		if articles == nil {
			articles = []article.Article{}
		}
		c.snap.Categories[cat] = slices.Clone(articles)
	}
	c.touchLocked()
	return c.saveLocked()
}

func (c *Cache) touchLocked() {
	now := time.Now().UTC()
	c.snap.LastUpdated = &now
	c.snap.Metadata.RefreshCount++
	c.snap.recount()
}

// Save persists the snapshot to disk and, when syncRemote is set, mirrors it
// to the remote store. Remote failures are logged, not returned.
func (c *Cache) Save(syncRemote bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.saveLocked(); err != nil {
		return err
	}
	if syncRemote {
		if err := c.syncToRemoteLocked(); err != nil {
			slog.Warn("Remote cache sync failed", "error", err)
		}
	}
	return nil
}

// saveLocked writes the snapshot via a temp file and rename so readers never
// observe a partial document.
func (c *Cache) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), "cache-*.json")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c.snap); err != nil {
		tmp.Close()
		return fmt.Errorf("encode cache snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}

// Stats reports the snapshot's state for the admin surface.
func (c *Cache) Stats() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()

	perCategory := make(map[string]int, len(c.snap.Categories))
	for cat, articles := range c.snap.Categories {
		perCategory[cat] = len(articles)
	}

	var fileSize int64
	if info, err := os.Stat(c.path); err == nil {
		fileSize = info.Size()
	}

	return map[string]any{
		"total_articles":        c.snap.TotalArticles,
		"last_updated":          c.snap.LastUpdated,
		"last_refresh_duration": c.snap.LastRefreshDuration,
		"feed_version":          c.snap.FeedVersion,
		"refresh_count":         c.snap.Metadata.RefreshCount,
		"categories":            perCategory,
		"cache_file":            c.path,
		"cache_file_bytes":      fileSize,
		"is_stale":              c.staleLocked(DefaultMaxAge),
	}
}

// IsStale reports whether the snapshot is older than maxAge. A non-positive
// maxAge falls back to DefaultMaxAge.
func (c *Cache) IsStale(maxAge time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return c.staleLocked(maxAge)
}

func (c *Cache) staleLocked(maxAge time.Duration) bool {
	if c.snap.LastUpdated == nil {
		return true
	}
	return time.Since(*c.snap.LastUpdated) > maxAge
}

// Clear drops every cached article while keeping the category keys and the
// schema version, then persists.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for cat := range c.snap.Categories {
		c.snap.Categories[cat] = []article.Article{}
	}
	c.snap.TotalArticles = 0
	c.snap.LastUpdated = nil
	c.snap.LastRefreshDuration = 0
	return c.saveLocked()
}

// IncrementVersion bumps the feed version by one and persists immediately,
// so clients polling /version see the change even if the process dies before
// the next refresh.
func (c *Cache) IncrementVersion() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snap.FeedVersion++
	if err := c.saveLocked(); err != nil {
		return 0, err
	}
	return c.snap.FeedVersion, nil
}

func (c *Cache) Version() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap.FeedVersion
}

// SetRefreshDuration records how long the last full refresh took, rounded to
// two decimal seconds.
func (c *Cache) SetRefreshDuration(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.LastRefreshDuration = math.Round(d.Seconds()*100) / 100
}

// SyncToRemote pushes the snapshot to the blob store, trying an upload first
// and falling back to an update when the object already exists.
func (c *Cache) SyncToRemote() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.syncToRemoteLocked()
}

func (c *Cache) syncToRemoteLocked() error {
	if c.remote == nil {
		return fmt.Errorf("remote store not configured")
	}

	data, err := json.MarshalIndent(c.snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := c.remote.Upload(RemoteObject, data); err != nil {
		if updateErr := c.remote.Update(RemoteObject, data); updateErr != nil {
			return fmt.Errorf("upload failed (%v), update failed: %w", err, updateErr)
		}
	}
	slog.Info("Cache synced to remote store", "object", RemoteObject, "bytes", len(data))
	return nil
}

// SyncFromRemote replaces the local snapshot with the remote copy when one
// exists and parses, then persists it locally.
func (c *Cache) SyncFromRemote() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.remote == nil {
		return fmt.Errorf("remote store not configured")
	}

	data, err := c.remote.Download(RemoteObject)
	if err != nil {
		return err
	}

	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return fmt.Errorf("decode remote snapshot: %w", err)
	}

	c.snap = snap
	c.ensureCategoriesLocked()
	slog.Info("Cache hydrated from remote store", "articles", c.snap.TotalArticles)
	return c.saveLocked()
}

// hydrateCategory adopts the remote snapshot when it is fresher than the
// local one and carries the requested category. The download happens without
// the lock held; the snapshot is only swapped in if it actually helps.
func (c *Cache) hydrateCategory(category string) ([]article.Article, bool) {
	if c.remote == nil {
		return nil, false
	}

	data, err := c.remote.Download(RemoteObject)
	if err != nil {
		slog.Debug("Remote snapshot not available", "error", err)
		return nil, false
	}

	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		slog.Warn("Remote snapshot is corrupt", "error", err)
		return nil, false
	}
	if snap.LastUpdated == nil || time.Since(*snap.LastUpdated) > servingMaxAge {
		return nil, false
	}
	articles, ok := snap.Categories[category]
	if !ok {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
	c.ensureCategoriesLocked()
	if err := c.saveLocked(); err != nil {
		slog.Warn("Failed to persist hydrated snapshot", "error", err)
	}
	slog.Info("Category hydrated from remote store", "category", category, "articles", len(articles))
	return slices.Clone(articles), true
}

// ScrapeFunc produces fresh articles for one category.
type ScrapeFunc func(ctx context.Context, category string) ([]article.Article, error)

// GetOrRefresh serves a category from the snapshot when it is fresh enough;
// on a stale snapshot it first tries the remote copy and only then scrapes.
// force bypasses both cache tiers on the read side and skips the write-back
// as well. A fresh snapshot answers even when the
// cached slice is empty: an empty aggregation result is a result, not a
// miss. The returned bool reports whether the articles came from a cache
// tier rather than a scrape.
func (c *Cache) GetOrRefresh(ctx context.Context, category string, scrape ScrapeFunc, force bool) ([]article.Article, bool, error) {
	c.mu.Lock()
	cached, known := c.snap.Categories[category]
	fresh := !c.staleLocked(servingMaxAge)
	if known && fresh && !force {
		out := slices.Clone(cached)
		c.mu.Unlock()
		return out, true, nil
	}
	stale := slices.Clone(cached)
	c.mu.Unlock()

	// Someone else may have refreshed the remote copy since our last sync;
	// a download is cheaper than a full re-scrape.
	if !force {
		if articles, ok := c.hydrateCategory(category); ok {
			return articles, true, nil
		}
	}

	articles, err := scrape(ctx, category)
	if err != nil {
		if known && !force {
			slog.Warn("Scrape failed, serving stale cache", "category", category, "error", err)
			return stale, true, nil
		}
		return nil, false, err
	}

	// A forced scrape bypasses the cache on the write side too; the snapshot
	// keeps whatever the last regular refresh produced.
	if !force {
		if err := c.UpdateCategory(category, articles); err != nil {
			slog.Warn("Failed to persist refreshed category", "category", category, "error", err)
		}
	}
	return articles, false, nil
}
