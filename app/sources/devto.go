package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prashikshan/newstrends/app/article"
)

// DevToAdapter reads top weekly articles from the Dev.to JSON API.
type DevToAdapter struct {
	url       string
	category  string
	client    *http.Client
	userAgent string
}

func NewDevToAdapter(category string, limit int, client *http.Client, userAgent string) *DevToAdapter {
	if limit <= 0 {
		limit = 10
	}
	return &DevToAdapter{
		url:       fmt.Sprintf("https://dev.to/api/articles?per_page=%d&top=7", limit),
		category:  category,
		client:    client,
		userAgent: userAgent,
	}
}

func (a *DevToAdapter) Name() string {
	return "Dev.to"
}

type devToArticle struct {
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	PublishedAt   string   `json:"published_at"`
	Description   string   `json:"description"`
	CoverImage    string   `json:"cover_image"`
	SocialImage   string   `json:"social_image"`
	TagList       []string `json:"tag_list"`
	PositiveCount int      `json:"positive_reactions_count"`
}

func (a *DevToAdapter) Fetch(ctx context.Context) ([]article.Article, error) {
	data, err := fetchBody(ctx, a.client, a.url, a.userAgent, nil)
	if err != nil {
		return nil, err
	}

	var items []devToArticle
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode articles: %w", err)
	}

	articles := make([]article.Article, 0, len(items))
	for _, item := range items {
		out := article.Article{
			Title:       item.Title,
			Link:        item.URL,
			Published:   item.PublishedAt,
			Source:      "Dev.to",
			Category:    a.category,
			Description: truncateText(item.Description, descriptionMaxLength),
			Extras: map[string]any{
				"tags":      item.TagList,
				"reactions": item.PositiveCount,
			},
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
		if item.CoverImage != "" {
			out.Image = item.CoverImage
		} else {
			out.Image = item.SocialImage
		}

		articles = append(articles, out)
	}

	return articles, nil
}
