package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prashikshan/newstrends/app/article"
)

const hackerNewsBaseURL = "https://hacker-news.firebaseio.com/v0"

// HackerNewsAdapter reads top stories from the Hacker News Firebase API.
type HackerNewsAdapter struct {
	baseURL   string
	category  string
	limit     int
	client    *http.Client
	userAgent string
	resolver  *ImageResolver
}

func NewHackerNewsAdapter(category string, limit int, client *http.Client, userAgent string, resolver *ImageResolver) *HackerNewsAdapter {
	if limit <= 0 {
		limit = 10
	}
	return &HackerNewsAdapter{
		baseURL:   hackerNewsBaseURL,
		category:  category,
		limit:     limit,
		client:    client,
		userAgent: userAgent,
		resolver:  resolver,
	}
}

func (a *HackerNewsAdapter) Name() string {
	return "Hacker News"
}

type hnStory struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Time        int64  `json:"time"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
}

func (a *HackerNewsAdapter) Fetch(ctx context.Context) ([]article.Article, error) {
	data, err := fetchBody(ctx, a.client, a.baseURL+"/topstories.json", a.userAgent, nil)
	if err != nil {
		return nil, err
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to decode story IDs: %w", err)
	}
	if len(ids) > a.limit {
		ids = ids[:a.limit]
	}

	articles := make([]article.Article, 0, len(ids))
	for _, id := range ids {
		storyURL := fmt.Sprintf("%s/item/%d.json", a.baseURL, id)
		storyData, err := fetchBody(ctx, a.client, storyURL, a.userAgent, nil)
		if err != nil {
			continue
		}

		var story hnStory
		if err := json.Unmarshal(storyData, &story); err != nil || story.Title == "" {
			continue
		}

		link := story.URL
		if link == "" {
			link = fmt.Sprintf("https://news.ycombinator.com/item?id=%d", id)
		}

		articles = append(articles, article.Article{
			Title:     story.Title,
			Link:      link,
			Published: time.Unix(story.Time, 0).UTC().Format(time.RFC3339),
			Source:    "Hacker News",
			Category:  a.category,
			Extras: map[string]any{
				"score":    story.Score,
				"comments": story.Descendants,
			},
		})
	}

	// HN items carry no thumbnails; pull social preview images from the
	// linked pages.
	if a.resolver != nil {
		a.resolver.Backfill(ctx, articles)
	}

	return articles, nil
}
