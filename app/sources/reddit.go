package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prashikshan/newstrends/app/article"
)

const redditBaseURL = "https://www.reddit.com"

// RedditAdapter reads a subreddit's hot listing over the public JSON API.
type RedditAdapter struct {
	baseURL   string
	subreddit string
	category  string
	limit     int
	client    *http.Client
	userAgent string
}

func NewRedditAdapter(subreddit, category string, limit int, client *http.Client, userAgent string) *RedditAdapter {
	if limit <= 0 {
		limit = 10
	}
	return &RedditAdapter{
		baseURL:   redditBaseURL,
		subreddit: subreddit,
		category:  category,
		limit:     limit,
		client:    client,
		userAgent: userAgent,
	}
}

func (a *RedditAdapter) Name() string {
	return "r/" + a.subreddit
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title       string  `json:"title"`
				Permalink   string  `json:"permalink"`
				CreatedUTC  float64 `json:"created_utc"`
				Stickied    bool    `json:"stickied"`
				Score       int     `json:"score"`
				NumComments int     `json:"num_comments"`
				Thumbnail   string  `json:"thumbnail"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (a *RedditAdapter) Fetch(ctx context.Context) ([]article.Article, error) {
	url := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", a.baseURL, a.subreddit, a.limit)

	timeoutCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// Reddit rate-limits generic browser user agents
	req.Header.Set("User-Agent", a.userAgent+" (Educational Project)")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch r/%s: %w", a.subreddit, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "json") {
		return nil, fmt.Errorf("unexpected content type: %s", contentType)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var listing redditListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}

	articles := make([]article.Article, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Stickied {
			continue
		}

		out := article.Article{
			Title:     post.Title,
			Link:      "https://reddit.com" + post.Permalink,
			Published: time.Unix(int64(post.CreatedUTC), 0).UTC().Format(time.RFC3339),
			Source:    "r/" + a.subreddit,
			Category:  a.category,
			Extras: map[string]any{
				"score":    post.Score,
				"comments": post.NumComments,
			},
		}
		if strings.HasPrefix(post.Thumbnail, "http") {
			out.Image = post.Thumbnail
		}

		articles = append(articles, out)
	}

	return articles, nil
}
