package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/prashikshan/newstrends/app/article"
)

const descriptionMaxLength = 200

// RSSAdapter is the generic static-fetch adapter for RSS and Atom feeds.
type RSSAdapter struct {
	name      string
	url       string
	source    string
	category  string
	limit     int
	client    *http.Client
	userAgent string
	parser    *gofeed.Parser
	resolver  *ImageResolver
}

func NewRSSAdapter(name, url, source, category string, limit int, client *http.Client, userAgent string, resolver *ImageResolver) *RSSAdapter {
	if limit <= 0 {
		limit = 8
	}
	return &RSSAdapter{
		name:      name,
		url:       url,
		source:    source,
		category:  category,
		limit:     limit,
		client:    client,
		userAgent: userAgent,
		parser:    gofeed.NewParser(),
		resolver:  resolver,
	}
}

func (a *RSSAdapter) Name() string {
	return a.name
}

func (a *RSSAdapter) Fetch(ctx context.Context) ([]article.Article, error) {
	data, err := fetchBody(ctx, a.client, a.url, a.userAgent, nil)
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
		articles = append(articles, a.normalizeItem(item))
	}

	if a.resolver != nil {
		a.resolver.Backfill(ctx, articles)
	}

	return articles, nil
}

func (a *RSSAdapter) normalizeItem(item *gofeed.Item) article.Article {
	out := article.Article{
		Title:     item.Title,
		Link:      item.Link,
		Published: item.Published,
		Source:    a.source,
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
	if item.Description != "" {
		out.Description = truncateText(stripHTML(item.Description), descriptionMaxLength)
	}

	return out
}

// itemImage extracts a thumbnail from the feed payload: media:content or
// media:thumbnail extensions first, then the enclosure, then the first <img>
// embedded in the item's HTML content or description.
func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}

	if media, ok := item.Extensions["media"]; ok {
		for _, key := range []string{"content", "thumbnail"} {
			for _, ext := range media[key] {
				if url := ext.Attrs["url"]; url != "" {
					return url
				}
			}
		}
	}

	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}

	for _, html := range []string{item.Content, item.Description} {
		if html == "" {
			continue
		}
		if src := firstImageSrc(html); src != "" {
			return src
		}
	}

	return ""
}

func firstImageSrc(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return src
}

func stripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.TrimSpace(doc.Text())
}

func truncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
