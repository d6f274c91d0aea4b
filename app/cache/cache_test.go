package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prashikshan/newstrends/app/article"
)

var testCategories = []string{"tech", "education", "general"}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	path := filepath.Join(t.TempDir(), "news_cache.json")
	c, err := New(path, testCategories, nil)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	return c
}

func TestNewCreatesEmptyCategories(t *testing.T) {
	c := newTestCache(t)

	for _, cat := range testCategories {
		articles, ok := c.Articles(cat)
		if !ok {
			t.Errorf("Expected category %q to exist", cat)
		}
		if len(articles) != 0 {
			t.Errorf("Expected empty category %q, got %d articles", cat, len(articles))
		}
	}
	if _, err := os.Stat(c.path); err != nil {
		t.Errorf("Expected cache file on disk: %v", err)
	}
}

func TestUpdateCategoryPersists(t *testing.T) {
	c := newTestCache(t)

	err := c.UpdateCategory("tech", []article.Article{
		{Title: "Go 1.25 released", Link: "https://go.dev", Source: "Hacker News"},
	})
	if err != nil {
		t.Fatal(err)
	}

	reloaded, err := New(c.path, testCategories, nil)
	if err != nil {
		t.Fatal(err)
	}
	articles, ok := reloaded.Articles("tech")
	if !ok || len(articles) != 1 {
		t.Fatalf("Expected 1 persisted article, got %d (ok=%v)", len(articles), ok)
	}
	if articles[0].Title != "Go 1.25 released" {
		t.Errorf("Unexpected title: %q", articles[0].Title)
	}
	if reloaded.IsStale(DefaultMaxAge) {
		t.Error("Freshly updated cache should not be stale")
	}
}

func TestArticlesEmptyCategoryCombinesAll(t *testing.T) {
	c := newTestCache(t)
	c.UpdateCategory("tech", []article.Article{{Title: "A"}, {Title: "B"}})
	c.UpdateCategory("general", []article.Article{{Title: "C"}})

	all, ok := c.Articles("")
	if !ok {
		t.Fatal("Expected combined view to succeed")
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 combined articles, got %d", len(all))
	}
}

func TestIsStale(t *testing.T) {
	c := newTestCache(t)

	if !c.IsStale(DefaultMaxAge) {
		t.Error("Cache with no last_updated should be stale")
	}

	c.UpdateCategory("tech", nil)
	if c.IsStale(DefaultMaxAge) {
		t.Error("Just-updated cache should be fresh")
	}

	old := time.Now().UTC().Add(-45 * time.Minute)
	c.snap.LastUpdated = &old
	if !c.IsStale(30 * time.Minute) {
		t.Error("45 minute old cache should be stale at 30m threshold")
	}
	if c.IsStale(60 * time.Minute) {
		t.Error("45 minute old cache should be fresh at 60m threshold")
	}
}

func TestClearKeepsSchema(t *testing.T) {
	c := newTestCache(t)
	c.UpdateCategory("tech", []article.Article{{Title: "A"}})
	c.IncrementVersion()
	before := c.Version()

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}

	articles, ok := c.Articles("tech")
	if !ok {
		t.Fatal("Category keys should survive a clear")
	}
	if len(articles) != 0 {
		t.Errorf("Expected cleared category, got %d articles", len(articles))
	}
	if c.Version() != before {
		t.Errorf("Clear should not touch feed version: got %d want %d", c.Version(), before)
	}
	if c.snap.Metadata.Version != schemaVersion {
		t.Errorf("Schema version lost on clear: %q", c.snap.Metadata.Version)
	}
}

func TestIncrementVersionMonotonic(t *testing.T) {
	c := newTestCache(t)

	var prev int64
	for i := 0; i < 3; i++ {
		v, err := c.IncrementVersion()
		if err != nil {
			t.Fatal(err)
		}
		if v != prev+1 {
			t.Errorf("Expected version %d, got %d", prev+1, v)
		}
		prev = v
	}

	reloaded, err := New(c.path, testCategories, nil)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Version() != prev {
		t.Errorf("Version not persisted: got %d want %d", reloaded.Version(), prev)
	}
}

func TestGetOrRefreshFreshHitSkipsScrape(t *testing.T) {
	c := newTestCache(t)
	c.UpdateCategory("tech", []article.Article{{Title: "Cached"}})

	scraped := false
	articles, fromCache, err := c.GetOrRefresh(context.Background(), "tech",
		func(ctx context.Context, category string) ([]article.Article, error) {
			scraped = true
			return nil, nil
		}, false)
	if err != nil {
		t.Fatal(err)
	}
	if scraped {
		t.Error("Fresh cache hit must not invoke the scraper")
	}
	if !fromCache || len(articles) != 1 || articles[0].Title != "Cached" {
		t.Errorf("Expected cached article back, got %v (fromCache=%v)", articles, fromCache)
	}
}

func TestGetOrRefreshServesEmptyFreshCategory(t *testing.T) {
	c := newTestCache(t)
	// All adapters came back empty on the last refresh; that result counts.
	c.UpdateCategory("education", []article.Article{})

	scraped := false
	articles, fromCache, err := c.GetOrRefresh(context.Background(), "education",
		func(ctx context.Context, category string) ([]article.Article, error) {
			scraped = true
			return []article.Article{{Title: "Should not appear"}}, nil
		}, false)
	if err != nil {
		t.Fatal(err)
	}
	if scraped {
		t.Error("Empty but fresh category must be served without scraping")
	}
	if !fromCache || len(articles) != 0 {
		t.Errorf("Expected empty cached result, got %d articles (fromCache=%v)", len(articles), fromCache)
	}
}

func TestGetOrRefreshStaleTriggersScrape(t *testing.T) {
	c := newTestCache(t)
	c.UpdateCategory("tech", []article.Article{{Title: "Old"}})
	old := time.Now().UTC().Add(-2 * time.Hour)
	c.snap.LastUpdated = &old

	articles, fromCache, err := c.GetOrRefresh(context.Background(), "tech",
		func(ctx context.Context, category string) ([]article.Article, error) {
			return []article.Article{{Title: "New"}}, nil
		}, false)
	if err != nil {
		t.Fatal(err)
	}
	if fromCache {
		t.Error("Stale read should come from the scraper")
	}
	if len(articles) != 1 || articles[0].Title != "New" {
		t.Errorf("Expected refreshed article, got %v", articles)
	}

	cached, _ := c.Articles("tech")
	if len(cached) != 1 || cached[0].Title != "New" {
		t.Errorf("Refresh result was not cached: %v", cached)
	}
}

func TestGetOrRefreshForceBypassesFreshCache(t *testing.T) {
	c := newTestCache(t)
	c.UpdateCategory("tech", []article.Article{{Title: "Cached"}})

	articles, fromCache, err := c.GetOrRefresh(context.Background(), "tech",
		func(ctx context.Context, category string) ([]article.Article, error) {
			return []article.Article{{Title: "Forced"}}, nil
		}, true)
	if err != nil {
		t.Fatal(err)
	}
	if fromCache || len(articles) != 1 || articles[0].Title != "Forced" {
		t.Errorf("Expected forced refresh result, got %v (fromCache=%v)", articles, fromCache)
	}

	// The forced scrape is returned to the caller only; the snapshot keeps
	// the last regularly refreshed result.
	cached, _ := c.Articles("tech")
	if len(cached) != 1 || cached[0].Title != "Cached" {
		t.Errorf("Forced refresh must not write into the cache, got %v", cached)
	}
}

func TestGetOrRefreshForceScrapeFailurePropagates(t *testing.T) {
	c := newTestCache(t)
	c.UpdateCategory("tech", []article.Article{{Title: "Cached"}})

	_, _, err := c.GetOrRefresh(context.Background(), "tech",
		func(ctx context.Context, category string) ([]article.Article, error) {
			return nil, errors.New("every adapter failed")
		}, true)
	if err == nil {
		t.Error("Forced refresh must not fall back to the cached copy on failure")
	}
}

func TestGetOrRefreshStaleHydratesFromRemote(t *testing.T) {
	dir := t.TempDir()
	remote := newFakeRemote()

	// A fresher copy exists remotely, written by another process.
	source, err := New(filepath.Join(dir, "source.json"), testCategories, remote)
	if err != nil {
		t.Fatal(err)
	}
	source.UpdateCategory("tech", []article.Article{{Title: "Remote wins"}})
	if err := source.SyncToRemote(); err != nil {
		t.Fatal(err)
	}

	c, err := New(filepath.Join(dir, "local.json"), testCategories, remote)
	if err != nil {
		t.Fatal(err)
	}
	c.UpdateCategory("tech", []article.Article{{Title: "Local and old"}})
	old := time.Now().UTC().Add(-2 * time.Hour)
	c.snap.LastUpdated = &old

	scraped := false
	articles, fromCache, err := c.GetOrRefresh(context.Background(), "tech",
		func(ctx context.Context, category string) ([]article.Article, error) {
			scraped = true
			return nil, nil
		}, false)
	if err != nil {
		t.Fatal(err)
	}
	if scraped {
		t.Error("Fresh remote copy should preempt the scrape")
	}
	if !fromCache || len(articles) != 1 || articles[0].Title != "Remote wins" {
		t.Errorf("Expected remote article, got %v (fromCache=%v)", articles, fromCache)
	}

	local, _ := c.Articles("tech")
	if len(local) != 1 || local[0].Title != "Remote wins" {
		t.Errorf("Hydration should replace the local snapshot, got %v", local)
	}
}

func TestGetOrRefreshScrapeFailureServesStale(t *testing.T) {
	c := newTestCache(t)
	c.UpdateCategory("tech", []article.Article{{Title: "Stale but present"}})
	old := time.Now().UTC().Add(-2 * time.Hour)
	c.snap.LastUpdated = &old

	articles, fromCache, err := c.GetOrRefresh(context.Background(), "tech",
		func(ctx context.Context, category string) ([]article.Article, error) {
			return nil, errors.New("every adapter failed")
		}, false)
	if err != nil {
		t.Fatalf("Stale fallback should swallow the scrape error, got: %v", err)
	}
	if !fromCache || len(articles) != 1 || articles[0].Title != "Stale but present" {
		t.Errorf("Expected stale cached article, got %v (fromCache=%v)", articles, fromCache)
	}
}

type fakeRemote struct {
	objects   map[string][]byte
	uploadErr error
	updates   int
	uploads   int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{objects: make(map[string][]byte)}
}

func (f *fakeRemote) Upload(object string, data []byte) error {
	f.uploads++
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.objects[object] = data
	return nil
}

func (f *fakeRemote) Update(object string, data []byte) error {
	f.updates++
	f.objects[object] = data
	return nil
}

func (f *fakeRemote) Download(object string) ([]byte, error) {
	data, ok := f.objects[object]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}

func TestSyncToRemoteFallsBackToUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news_cache.json")
	remote := newFakeRemote()
	remote.uploadErr = errors.New("duplicate object")

	c, err := New(path, testCategories, remote)
	if err != nil {
		t.Fatal(err)
	}
	c.UpdateCategory("tech", []article.Article{{Title: "A"}})

	if err := c.SyncToRemote(); err != nil {
		t.Fatalf("Expected update fallback to succeed, got: %v", err)
	}
	if remote.uploads != 1 || remote.updates != 1 {
		t.Errorf("Expected upload then update, got uploads=%d updates=%d", remote.uploads, remote.updates)
	}
	if _, ok := remote.objects[RemoteObject]; !ok {
		t.Error("Snapshot missing from remote store after sync")
	}
}

func TestSyncFromRemote(t *testing.T) {
	dir := t.TempDir()
	remote := newFakeRemote()

	source, err := New(filepath.Join(dir, "source.json"), testCategories, remote)
	if err != nil {
		t.Fatal(err)
	}
	source.UpdateCategory("tech", []article.Article{{Title: "From the cloud"}})
	if err := source.SyncToRemote(); err != nil {
		t.Fatal(err)
	}

	target, err := New(filepath.Join(dir, "target.json"), testCategories, remote)
	if err != nil {
		t.Fatal(err)
	}
	if err := target.SyncFromRemote(); err != nil {
		t.Fatal(err)
	}

	articles, ok := target.Articles("tech")
	if !ok || len(articles) != 1 || articles[0].Title != "From the cloud" {
		t.Errorf("Expected hydrated article, got %v (ok=%v)", articles, ok)
	}
}

func TestStats(t *testing.T) {
	c := newTestCache(t)
	c.UpdateCategory("tech", []article.Article{{Title: "A"}, {Title: "B"}})

	stats := c.Stats()
	if stats["total_articles"] != 2 {
		t.Errorf("Expected total_articles 2, got %v", stats["total_articles"])
	}
	perCategory, ok := stats["categories"].(map[string]int)
	if !ok {
		t.Fatalf("Unexpected categories type: %T", stats["categories"])
	}
	if perCategory["tech"] != 2 || perCategory["general"] != 0 {
		t.Errorf("Unexpected per-category counts: %v", perCategory)
	}
	if size, _ := stats["cache_file_bytes"].(int64); size <= 0 {
		t.Errorf("Expected positive cache file size, got %v", stats["cache_file_bytes"])
	}
}
