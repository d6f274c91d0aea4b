package api

import (
	"context"

	"github.com/prashikshan/newstrends/app/aggregator"
	"github.com/prashikshan/newstrends/app/article"
	"github.com/prashikshan/newstrends/app/cache"
	"github.com/prashikshan/newstrends/app/refresh"
	"github.com/prashikshan/newstrends/app/settings"
)

type AggregatorInterface interface {
	Aggregate(ctx context.Context, feedKey string) ([]article.Article, error)
	Search(ctx context.Context, query string, limit int) ([]article.Article, error)
	Known(feedKey string) bool
	Categories() []string
}

var _ AggregatorInterface = (*aggregator.Aggregator)(nil)

type Handler struct {
	aggregator AggregatorInterface
	cache      *cache.Cache
	settings   *settings.Store
	runner     *refresh.Runner
}
