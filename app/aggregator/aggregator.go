package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prashikshan/newstrends/app/article"
	"github.com/prashikshan/newstrends/app/config"
	"github.com/prashikshan/newstrends/app/settings"
	"github.com/prashikshan/newstrends/app/sources"
)

// ErrUnknownFeed indicates a feed key no declaration exists for; it is
// caller misuse, not a scrape failure.
var ErrUnknownFeed = errors.New("unknown feed category")

// adapterWait bounds how long one adapter may hold up an aggregation.
// Exceeding it is treated exactly like an adapter failure.
const adapterWait = 15 * time.Second

// Aggregator fans one feed key's declared adapters out concurrently and
// reduces their output through dedup, the active ranking policy, and the
// configured limit.
type Aggregator struct {
	adapters    map[string][]sources.Adapter
	settings    *settings.Store
	client      *http.Client
	userAgent   string
	workerCount int
}

func New(feeds map[string]*config.FeedConfig, st *settings.Store, client *http.Client,
	browser *sources.BrowserClient, resolver *sources.ImageResolver, workerCount int, userAgent string) *Aggregator {
	if workerCount <= 0 {
		workerCount = 6
	}

	a := &Aggregator{
		adapters:    make(map[string][]sources.Adapter, len(feeds)),
		settings:    st,
		client:      client,
		userAgent:   userAgent,
		workerCount: workerCount,
	}

	for category, feedConfig := range feeds {
		list := make([]sources.Adapter, 0, len(feedConfig.Sources))
		for i := range feedConfig.Sources {
			adapter, err := a.buildAdapter(category, &feedConfig.Sources[i], browser, resolver)
			if err != nil {
				slog.Warn("Skipping source declaration", "category", category, "source", feedConfig.Sources[i].Name, "error", err)
				continue
			}
			list = append(list, adapter)
		}
		a.adapters[category] = list
	}

	return a
}

func (a *Aggregator) buildAdapter(category string, src *config.SourceConfig,
	browser *sources.BrowserClient, resolver *sources.ImageResolver) (sources.Adapter, error) {
	switch src.Type {
	case "rss":
		return sources.NewRSSAdapter(src.Name, src.URL, src.Source, category, src.Limit, a.client, a.userAgent, resolver), nil
	case "googlenews":
		return sources.NewGoogleNewsAdapter(src.Name, src.Query, category, src.Limit, a.client, a.userAgent), nil
	case "hackernews":
		return sources.NewHackerNewsAdapter(category, src.Limit, a.client, a.userAgent, resolver), nil
	case "devto":
		return sources.NewDevToAdapter(category, src.Limit, a.client, a.userAgent), nil
	case "reddit":
		return sources.NewRedditAdapter(src.Subreddit, category, src.Limit, a.client, a.userAgent), nil
	case "github":
		return sources.NewGitHubTrendingAdapter(category, src.Limit, a.client, a.userAgent), nil
	case "browser":
		levels := []sources.Adapter{
			sources.NewBrowserAdapter(src.Source, browser, a.settings.ScrapingEnabled),
		}
		if src.Fallback != nil {
			fallback, err := a.buildAdapter(category, src.Fallback, browser, resolver)
			if err != nil {
				return nil, fmt.Errorf("fallback: %w", err)
			}
			levels = append(levels, fallback)
		}
		if src.Query != "" {
			levels = append(levels, sources.NewGoogleNewsAdapter(src.Name+"-Search", src.Query, category, src.Limit, a.client, a.userAgent))
		}
		return sources.NewChain(src.Name, levels...), nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", src.Type)
	}
}

// Known reports whether a feed key has a declaration.
func (a *Aggregator) Known(feedKey string) bool {
	_, ok := a.adapters[feedKey]
	return ok
}

// Categories returns the declared feed keys in canonical order.
func (a *Aggregator) Categories() []string {
	known := make([]string, 0, len(a.adapters))
	for _, category := range config.Categories() {
		if a.Known(category) {
			known = append(known, category)
		}
	}
	for category := range a.adapters {
		found := false
		for _, k := range known {
			if k == category {
				found = true
				break
			}
		}
		if !found {
			known = append(known, category)
		}
	}
	return known
}

// Aggregate runs every adapter declared for feedKey concurrently and returns
// the deduplicated, ranked, truncated result. Individual adapter failures
// and timeouts only shrink the result; an empty slice is a valid outcome.
func (a *Aggregator) Aggregate(ctx context.Context, feedKey string) ([]article.Article, error) {
	adapters, ok := a.adapters[feedKey]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFeed, feedKey)
	}

	collected := a.fanOut(ctx, feedKey, adapters)
	slog.Debug("Fan-out collected", "feed", feedKey, "total", len(collected))

	unique := article.Dedupe(collected)
	article.Sort(unique, a.settings.SortOrder(), a.settings.SourcePriority())

	limit := a.settings.ArticlesLimit()
	final := unique
	if len(final) > limit {
		final = final[:limit]
	}

	slog.Info("Aggregation completed", "feed", feedKey,
		"collected", len(collected), "unique", len(unique), "returned", len(final))

	return final, nil
}

// Search fans a free-form query out over a few enhanced Google News queries.
func (a *Aggregator) Search(ctx context.Context, query string, limit int) ([]article.Article, error) {
	if limit <= 0 {
		limit = 15
	}

	queries := []string{
		query,
		query + " latest news",
		query + " india",
	}

	adapters := make([]sources.Adapter, 0, len(queries))
	for i, q := range queries {
		name := fmt.Sprintf("Search-%d", i+1)
		adapters = append(adapters, sources.NewGoogleNewsAdapter(name, q, "general", limit/len(queries)+2, a.client, a.userAgent))
	}

	collected := a.fanOut(ctx, "search", adapters)
	unique := article.Dedupe(collected)
	if len(unique) > limit {
		unique = unique[:limit]
	}
	return unique, nil
}

type fetchResult struct {
	adapter  string
	articles []article.Article
}

// fanOut executes adapters over a bounded worker pool, each under its own
// wait bound, and concatenates the successful results in completion order.
func (a *Aggregator) fanOut(ctx context.Context, feedKey string, adapters []sources.Adapter) []article.Article {
	results := make(chan fetchResult, len(adapters))
	sem := make(chan struct{}, a.workerCount)

	var wg sync.WaitGroup
	for _, adapter := range adapters {
		wg.Add(1)
		go func(adapter sources.Adapter) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			fetchCtx, cancel := context.WithTimeout(ctx, adapterWait)
			defer cancel()

			started := time.Now()
			articles, err := adapter.Fetch(fetchCtx)
			if err != nil {
				slog.Warn("Adapter failed", "feed", feedKey, "adapter", adapter.Name(),
					"duration", time.Since(started).Round(time.Millisecond), "error", err)
				return
			}

			slog.Debug("Adapter completed", "feed", feedKey, "adapter", adapter.Name(),
				"articles", len(articles), "duration", time.Since(started).Round(time.Millisecond))
			results <- fetchResult{adapter: adapter.Name(), articles: articles}
		}(adapter)
	}

	wg.Wait()
	close(results)

	var collected []article.Article
	for r := range results {
		collected = append(collected, r.articles...)
	}
	return collected
}
