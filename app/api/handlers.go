package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prashikshan/newstrends/app/aggregator"
	"github.com/prashikshan/newstrends/app/article"
	"github.com/prashikshan/newstrends/app/cache"
	"github.com/prashikshan/newstrends/app/refresh"
	"github.com/prashikshan/newstrends/app/settings"
)

// homeCategories are the feeds served on the landing endpoint.
var homeCategories = []string{"tech", "education", "general"}

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

func NewHandler(agg AggregatorInterface, c *cache.Cache, st *settings.Store, runner *refresh.Runner) *Handler {
	return &Handler{
		aggregator: agg,
		cache:      c,
		settings:   st,
		runner:     runner,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	stats := h.cache.Stats()

	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"timestamp":      time.Now().In(time.Local).Format(time.RFC3339),
		"total_articles": stats["total_articles"],
		"last_updated":   stats["last_updated"],
	})
}

// fetchCategory is the read path: cache first, aggregator only when the
// snapshot is stale or the client forces a refresh. When scraping is disabled
// on the admin surface the cache answers regardless of age.
func (h *Handler) fetchCategory(c *gin.Context, category string, force bool) ([]article.Article, bool, error) {
	if !h.settings.ScrapingEnabled() {
		articles, _ := h.cache.Articles(category)
		return articles, true, nil
	}
	return h.cache.GetOrRefresh(c.Request.Context(), category, h.aggregator.Aggregate, force)
}

func (h *Handler) GetTrends(c *gin.Context) {
	force := c.Query("refresh") == "true"

	trends := make(map[string][]article.Article, len(homeCategories))
	allCached := true
	for _, category := range homeCategories {
		articles, fromCache, err := h.fetchCategory(c, category, force)
		if err != nil {
			slog.Error("Failed to fetch category", "category", category, "error", err)
			articles = []article.Article{}
		}
		if !fromCache {
			allCached = false
		}
		if articles == nil {
			articles = []article.Article{}
		}
		trends[category] = articles
	}

	c.JSON(http.StatusOK, gin.H{
		"trends":       trends,
		"cached":       allCached,
		"feed_version": h.cache.Version(),
	})
}

func (h *Handler) GetAllTrends(c *gin.Context) {
	force := c.Query("refresh") == "true"

	categories := h.aggregator.Categories()
	trends := make(map[string][]article.Article, len(categories))
	total := 0
	for _, category := range categories {
		articles, _, err := h.fetchCategory(c, category, force)
		if err != nil {
			slog.Error("Failed to fetch category", "category", category, "error", err)
			articles = []article.Article{}
		}
		if articles == nil {
			articles = []article.Article{}
		}
		trends[category] = articles
		total += len(articles)
	}

	c.JSON(http.StatusOK, gin.H{
		"trends":       trends,
		"total":        total,
		"feed_version": h.cache.Version(),
	})
}

func (h *Handler) GetCategoryTrends(c *gin.Context) {
	category := strings.ToLower(c.Param("category"))
	if !h.aggregator.Known(category) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Unknown category",
			"category":   category,
			"categories": h.aggregator.Categories(),
		})
		return
	}

	force := c.Query("refresh") == "true"
	articles, fromCache, err := h.fetchCategory(c, category, force)
	if err != nil {
		if errors.Is(err, aggregator.ErrUnknownFeed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category", "category": category})
			return
		}
		slog.Error("Failed to fetch category", "category", category, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}
	if articles == nil {
		articles = []article.Article{}
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"articles": articles,
		"count":    len(articles),
		"cached":   fromCache,
	})
}

func (h *Handler) GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"feed_version": h.cache.Version(),
		"timestamp":    time.Now().In(time.Local).Format(time.RFC3339),
	})
}

func (h *Handler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter 'q'"})
		return
	}

	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = min(parsed, maxSearchLimit)
	}

	articles, err := h.aggregator.Search(c.Request.Context(), query, limit)
	if err != nil {
		slog.Error("Search failed", "query", query, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	if articles == nil {
		articles = []article.Article{}
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    query,
		"articles": articles,
		"count":    len(articles),
	})
}
