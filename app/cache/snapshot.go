package cache

import (
	"time"

	"github.com/prashikshan/newstrends/app/article"
)

const schemaVersion = "1.0"

// Snapshot is the single JSON document holding every cached category.
// It is what gets written to disk and mirrored to the remote blob store.
type Snapshot struct {
	LastUpdated         *time.Time                   `json:"last_updated"`
	LastRefreshDuration float64                      `json:"last_refresh_duration"`
	TotalArticles       int                          `json:"total_articles"`
	FeedVersion         int64                        `json:"feed_version"`
	Categories          map[string][]article.Article `json:"categories"`
	Metadata            Metadata                     `json:"metadata"`
}

type Metadata struct {
	RefreshCount int    `json:"refresh_count"`
	CreatedAt    string `json:"created_at"`
	Version      string `json:"version"`
}

func newSnapshot(categories []string) *Snapshot {
	s := &Snapshot{
		Categories: make(map[string][]article.Article, len(categories)),
		Metadata: Metadata{
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
			Version:   schemaVersion,
		},
	}
	for _, c := range categories {
		s.Categories[c] = []article.Article{}
	}
	return s
}

func (s *Snapshot) recount() {
	total := 0
	for _, articles := range s.Categories {
		total += len(articles)
	}
	s.TotalArticles = total
}
