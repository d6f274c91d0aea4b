package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/prashikshan/newstrends/app/article"
)

const githubTrendingURL = "https://github.com/trending"

// GitHubTrendingAdapter scrapes the GitHub trending page. The page is plain
// server-rendered HTML, so a static fetch plus a CSS-selector walk suffices.
type GitHubTrendingAdapter struct {
	url       string
	category  string
	limit     int
	client    *http.Client
	userAgent string
}

func NewGitHubTrendingAdapter(category string, limit int, client *http.Client, userAgent string) *GitHubTrendingAdapter {
	if limit <= 0 {
		limit = 10
	}
	return &GitHubTrendingAdapter{
		url:       githubTrendingURL,
		category:  category,
		limit:     limit,
		client:    client,
		userAgent: userAgent,
	}
}

func (a *GitHubTrendingAdapter) Name() string {
	return "GitHub Trending"
}

func (a *GitHubTrendingAdapter) Fetch(ctx context.Context) ([]article.Article, error) {
	data, err := fetchBody(ctx, a.client, a.url, a.userAgent, nil)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse trending page: %w", err)
	}

	articles := make([]article.Article, 0, a.limit)
	doc.Find("article.Box-row").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		titleLink := row.Find("h2 a").First()
		href, ok := titleLink.Attr("href")
		if !ok {
			return true
		}

		repoName := strings.Join(strings.Fields(titleLink.Text()), "")

		out := article.Article{
			Title:     repoName,
			Link:      "https://github.com" + href,
			Published: "Trending Today",
			Source:    "GitHub Trending",
			Category:  a.category,
			Extras:    map[string]any{},
		}

		if desc := strings.TrimSpace(row.Find("p").First().Text()); desc != "" {
			out.Description = truncateText(desc, descriptionMaxLength)
		}
		if lang := strings.TrimSpace(row.Find(`[itemprop="programmingLanguage"]`).First().Text()); lang != "" {
			out.Extras["language"] = lang
		} else {
			out.Extras["language"] = "Unknown"
		}
		if stars := strings.TrimSpace(row.Find("a.Link--muted").First().Text()); stars != "" {
			out.Extras["stars"] = stars
		}
		if avatar, ok := row.Find("img.avatar").First().Attr("src"); ok {
			out.Image = avatar
		}

		articles = append(articles, out)
		return len(articles) < a.limit
	})

	return articles, nil
}
