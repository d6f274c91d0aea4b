package sources

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prashikshan/newstrends/app/article"
)

// Adapter fetches and normalizes articles from one external source.
// Fetch returns the articles it could produce within the context deadline;
// an error means the source yielded nothing usable. Callers treat errors as
// empty results; an adapter failure never propagates past the aggregator.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context) ([]article.Article, error)
}

// FetchTimeout bounds a single static source fetch.
const FetchTimeout = 10 * time.Second

// fetchBody performs one bounded HTTP GET and returns the response body.
func fetchBody(ctx context.Context, client *http.Client, url, userAgent string, headers map[string]string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// Chain is an ordered fallback list of adapters sharing one result contract.
// Levels are tried in sequence; the first adapter producing a non-empty
// result wins. Failures and empty results fall through to the next level, so
// a rendering-only source still degrades to its static feed or a generic
// search query instead of returning nothing.
type Chain struct {
	name     string
	adapters []Adapter
}

func NewChain(name string, adapters ...Adapter) *Chain {
	return &Chain{name: name, adapters: adapters}
}

func (c *Chain) Name() string {
	return c.name
}

func (c *Chain) Fetch(ctx context.Context) ([]article.Article, error) {
	for _, a := range c.adapters {
		articles, err := a.Fetch(ctx)
		if err != nil {
			slog.Warn("Fallback level failed, trying next", "chain", c.name, "adapter", a.Name(), "error", err)
			continue
		}
		if len(articles) == 0 {
			slog.Debug("Fallback level returned no articles, trying next", "chain", c.name, "adapter", a.Name())
			continue
		}
		return articles, nil
	}
	return nil, nil
}
