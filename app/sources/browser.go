package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prashikshan/newstrends/app/article"
)

// BrowserClient talks to the remote headless-browser scraping service used
// for sites that only render through JavaScript. The service is slow by
// nature, so its timeout is far longer than a static fetch.
type BrowserClient struct {
	baseURL   string
	apiKey    string
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

func NewBrowserClient(baseURL, apiKey string, client *http.Client, timeoutSeconds int, userAgent string) *BrowserClient {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 90
	}
	return &BrowserClient{
		baseURL:   baseURL,
		apiKey:    apiKey,
		client:    client,
		timeout:   time.Duration(timeoutSeconds) * time.Second,
		userAgent: userAgent,
	}
}

// Configured reports whether a service URL was provided at all.
func (c *BrowserClient) Configured() bool {
	return c.baseURL != ""
}

// Available probes the service's health endpoint. Any non-200 response or
// transport failure counts as unavailable.
func (c *BrowserClient) Available(ctx context.Context) bool {
	if !c.Configured() {
		return false
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Debug("Browser scraper service not available", "error", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// ScrapeSource asks the service to render and scrape a named news source.
// The service answers with either a bare article list, an object carrying an
// "articles" list, or an object carrying an "error"; anything else means
// zero articles.
func (c *BrowserClient) ScrapeSource(ctx context.Context, source string) ([]article.Article, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("scraper service URL not configured")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/scrape/news/%s", c.baseURL, source)
	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scrape request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return decodeScrapeResponse(body)
}

func decodeScrapeResponse(body []byte) ([]article.Article, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var articles []article.Article
		if err := json.Unmarshal(trimmed, &articles); err != nil {
			return nil, fmt.Errorf("failed to decode article list: %w", err)
		}
		return articles, nil
	}

	var wrapper struct {
		Articles []article.Article `json:"articles"`
		Error    string            `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode scrape response: %w", err)
	}
	if wrapper.Error != "" {
		return nil, fmt.Errorf("scraper service error: %s", wrapper.Error)
	}

	return wrapper.Articles, nil
}

// BrowserAdapter exposes one remotely-rendered source as an Adapter. It is
// normally the first level of a Chain, falling back to a static feed when the
// runtime toggle is off or the service is down.
type BrowserAdapter struct {
	source  string
	client  *BrowserClient
	enabled func() bool
}

func NewBrowserAdapter(source string, client *BrowserClient, enabled func() bool) *BrowserAdapter {
	return &BrowserAdapter{source: source, client: client, enabled: enabled}
}

func (a *BrowserAdapter) Name() string {
	return "browser:" + a.source
}

func (a *BrowserAdapter) Fetch(ctx context.Context) ([]article.Article, error) {
	if a.enabled != nil && !a.enabled() {
		return nil, fmt.Errorf("browser scraping disabled")
	}
	if !a.client.Available(ctx) {
		return nil, fmt.Errorf("scraper service unavailable")
	}
	return a.client.ScrapeSource(ctx, a.source)
}
