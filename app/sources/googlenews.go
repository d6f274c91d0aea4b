package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/prashikshan/newstrends/app/article"
)

// Google News search result titles end with " - Publisher"; the suffix is
// both the article's real source name and noise in the headline.
var publisherSuffix = regexp.MustCompile(`\s*-\s*([^-]+)$`)

// GoogleNewsAdapter queries the Google News RSS search endpoint. It doubles
// as the generic last-resort fallback for browser-backed sources.
type GoogleNewsAdapter struct {
	name      string
	query     string
	category  string
	limit     int
	client    *http.Client
	userAgent string
	parser    *gofeed.Parser
}

func NewGoogleNewsAdapter(name, query, category string, limit int, client *http.Client, userAgent string) *GoogleNewsAdapter {
	if limit <= 0 {
		limit = 10
	}
	return &GoogleNewsAdapter{
		name:      name,
		query:     query,
		category:  category,
		limit:     limit,
		client:    client,
		userAgent: userAgent,
		parser:    gofeed.NewParser(),
	}
}

func (a *GoogleNewsAdapter) Name() string {
	return a.name
}

func (a *GoogleNewsAdapter) Fetch(ctx context.Context) ([]article.Article, error) {
	feedURL := fmt.Sprintf("https://news.google.com/rss/search?q=%s&hl=en-IN&gl=IN&ceid=IN:en",
		url.QueryEscape(a.query))

	data, err := fetchBody(ctx, a.client, feedURL, a.userAgent, nil)
	if err != nil {
		return nil, err
	}

	feed, err := a.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := feed.Items
	if len(items) > a.limit {
		items = items[:a.limit]
	}

	articles := make([]article.Article, 0, len(items))
	for _, item := range items {
		title, source := splitPublisher(item.Title)

		out := article.Article{
			Title:     title,
			Link:      item.Link,
			Published: item.Published,
			Source:    source,
			Category:  a.category,
			Image:     itemImage(item),
		}
		if out.Title == "" {
			out.Title = "No Title"
		}
		if out.Link == "" {
			out.Link = article.UnknownLink
		}
		if out.Published == "" {
			out.Published = "Unknown Date"
		}

		articles = append(articles, out)
	}

	return articles, nil
}

// splitPublisher separates the publisher suffix from a Google News headline.
func splitPublisher(title string) (string, string) {
	match := publisherSuffix.FindStringSubmatch(title)
	if match == nil {
		return title, "Google News"
	}

	source := strings.TrimSpace(match[1])
	stripped := strings.TrimSpace(publisherSuffix.ReplaceAllString(title, ""))
	if stripped == "" || source == "" {
		return title, "Google News"
	}
	return stripped, source
}
