package aggregator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prashikshan/newstrends/app/article"
	"github.com/prashikshan/newstrends/app/settings"
	"github.com/prashikshan/newstrends/app/sources"
)

type fakeAdapter struct {
	name     string
	articles []article.Article
	err      error
	delay    time.Duration
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Fetch(ctx context.Context) ([]article.Article, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.articles, f.err
}

func newTestAggregator(st *settings.Store, adapters map[string][]sources.Adapter) *Aggregator {
	return &Aggregator{
		adapters:    adapters,
		settings:    st,
		workerCount: 6,
	}
}

func makeArticles(source string, count int) []article.Article {
	articles := make([]article.Article, 0, count)
	for i := 0; i < count; i++ {
		articles = append(articles, article.Article{
			Title:  fmt.Sprintf("%s story %d", source, i),
			Source: source,
		})
	}
	return articles
}

func TestAggregateUnknownFeed(t *testing.T) {
	agg := newTestAggregator(settings.NewStore(), map[string][]sources.Adapter{})

	_, err := agg.Aggregate(context.Background(), "nope")
	if !errors.Is(err, ErrUnknownFeed) {
		t.Errorf("Expected ErrUnknownFeed, got: %v", err)
	}
}

func TestAggregateToleratesPartialFailure(t *testing.T) {
	agg := newTestAggregator(settings.NewStore(), map[string][]sources.Adapter{
		"tech": {
			&fakeAdapter{name: "good", articles: makeArticles("Good Source", 3)},
			&fakeAdapter{name: "bad", err: errors.New("connection refused")},
		},
	})

	articles, err := agg.Aggregate(context.Background(), "tech")
	if err != nil {
		t.Fatalf("Expected no error despite adapter failure, got: %v", err)
	}
	if len(articles) != 3 {
		t.Errorf("Expected 3 articles from the surviving adapter, got %d", len(articles))
	}
}

func TestAggregateAllFailedReturnsEmpty(t *testing.T) {
	agg := newTestAggregator(settings.NewStore(), map[string][]sources.Adapter{
		"tech": {
			&fakeAdapter{name: "a", err: errors.New("boom")},
			&fakeAdapter{name: "b", err: errors.New("boom")},
		},
	})

	articles, err := agg.Aggregate(context.Background(), "tech")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("Expected empty result, got %d articles", len(articles))
	}
}

func TestAggregateDeduplicates(t *testing.T) {
	agg := newTestAggregator(settings.NewStore(), map[string][]sources.Adapter{
		"tech": {
			&fakeAdapter{name: "a", articles: []article.Article{
				{Title: "Shared headline", Source: "A"},
				{Title: "Unique to A", Source: "A"},
			}},
			&fakeAdapter{name: "b", articles: []article.Article{
				{Title: "SHARED HEADLINE", Source: "B"},
				{Title: "Unique to B", Source: "B"},
			}},
		},
	})

	articles, err := agg.Aggregate(context.Background(), "tech")
	if err != nil {
		t.Fatal(err)
	}

	if len(articles) != 3 {
		t.Errorf("Expected 3 unique articles, got %d", len(articles))
	}
	seen := make(map[string]bool)
	for _, a := range articles {
		key := article.TitleKey(a.Title)
		if seen[key] {
			t.Errorf("Duplicate title key in result: %q", key)
		}
		seen[key] = true
	}
}

func TestAggregateHonorsLimitAndPriority(t *testing.T) {
	st := settings.NewStore()
	if err := st.SetArticlesLimit(3); err != nil {
		t.Fatal(err)
	}
	if err := st.SetSortOrder("priority"); err != nil {
		t.Fatal(err)
	}
	if err := st.SetSourcePriority([]string{"Alpha Wire", "Beta Post"}); err != nil {
		t.Fatal(err)
	}

	agg := newTestAggregator(st, map[string][]sources.Adapter{
		"tech": {
			&fakeAdapter{name: "filler", articles: makeArticles("Nobody Cares", 16)},
			&fakeAdapter{name: "alpha", articles: makeArticles("Alpha Wire", 2), delay: 10 * time.Millisecond},
			&fakeAdapter{name: "beta", articles: makeArticles("Beta Post", 2), delay: 20 * time.Millisecond},
		},
	})

	articles, err := agg.Aggregate(context.Background(), "tech")
	if err != nil {
		t.Fatal(err)
	}

	if len(articles) != 3 {
		t.Fatalf("Expected exactly 3 articles, got %d", len(articles))
	}
	if articles[0].Source != "Alpha Wire" || articles[1].Source != "Alpha Wire" {
		t.Errorf("Expected Alpha Wire articles first, got %s, %s", articles[0].Source, articles[1].Source)
	}
	if articles[2].Source != "Beta Post" {
		t.Errorf("Expected Beta Post third, got %s", articles[2].Source)
	}
}

func TestAggregateTimesOutSlowAdapter(t *testing.T) {
	agg := newTestAggregator(settings.NewStore(), map[string][]sources.Adapter{
		"tech": {
			&fakeAdapter{name: "fast", articles: makeArticles("Fast", 2)},
			&fakeAdapter{name: "slow", articles: makeArticles("Slow", 2), delay: 5 * time.Second},
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	started := time.Now()
	articles, err := agg.Aggregate(ctx, "tech")
	if err != nil {
		t.Fatal(err)
	}

	if time.Since(started) > 2*time.Second {
		t.Error("Aggregation waited on a timed-out adapter")
	}
	for _, a := range articles {
		if a.Source == "Slow" {
			t.Error("Timed-out adapter's articles should not appear")
		}
	}
	if len(articles) != 2 {
		t.Errorf("Expected the fast adapter's 2 articles, got %d", len(articles))
	}
}
