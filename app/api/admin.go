package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prashikshan/newstrends/app/article"
	"github.com/prashikshan/newstrends/app/refresh"
	"github.com/prashikshan/newstrends/app/settings"
)

func (h *Handler) AdminStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cache":    h.cache.Stats(),
		"settings": h.settings.Snapshot(),
		"refresh":  h.runner.Status(),
	})
}

func (h *Handler) AdminGetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Snapshot())
}

func (h *Handler) AdminSetRendering(c *gin.Context) {
	var body struct {
		Enabled *bool `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	var enabled bool
	if body.Enabled != nil {
		h.settings.SetScrapingEnabled(*body.Enabled)
		enabled = *body.Enabled
	} else {
		enabled = h.settings.ToggleScraping()
	}
	slog.Info("Scraping setting changed", "enabled", enabled)

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"scraping_enabled": enabled,
	})
}

func (h *Handler) AdminSetArticlesLimit(c *gin.Context) {
	var body struct {
		Limit int `json:"limit"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.settings.SetArticlesLimit(body.Limit); err != nil {
		respondValidationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "articles_limit": body.Limit})
}

func (h *Handler) AdminSetSortOrder(c *gin.Context) {
	var body struct {
		Order string `json:"order"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.settings.SetSortOrder(body.Order); err != nil {
		respondValidationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "sort_order": body.Order})
}

func (h *Handler) AdminSetPriority(c *gin.Context) {
	var body struct {
		Priority []string `json:"priority"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.settings.SetSourcePriority(body.Priority); err != nil {
		respondValidationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "source_priority": body.Priority})
}

func (h *Handler) AdminCacheArticles(c *gin.Context) {
	categories := h.aggregator.Categories()
	cached := make(map[string][]article.Article, len(categories))
	total := 0
	for _, category := range categories {
		articles, ok := h.cache.Articles(category)
		if !ok {
			continue
		}
		cached[category] = articles
		total += len(articles)
	}

	c.JSON(http.StatusOK, gin.H{
		"categories":   cached,
		"total":        total,
		"feed_version": h.cache.Version(),
	})
}

func (h *Handler) AdminCacheClear(c *gin.Context) {
	if err := h.cache.Clear(); err != nil {
		slog.Error("Failed to clear cache", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cache"})
		return
	}
	slog.Info("Cache cleared")

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cache cleared"})
}

func (h *Handler) AdminTriggerRefresh(c *gin.Context) {
	err := h.runner.Trigger(h.aggregator.Categories(), true)
	if errors.Is(err, refresh.ErrAlreadyRunning) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Refresh already in progress",
			"status": h.runner.Status(),
		})
		return
	}
	if err != nil {
		slog.Error("Failed to trigger refresh", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to trigger refresh"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Background refresh started",
		"status":  h.runner.Status(),
	})
}

func (h *Handler) AdminRefreshStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.runner.Status())
}

func (h *Handler) AdminForceUpdate(c *gin.Context) {
	version, err := h.cache.IncrementVersion()
	if err != nil {
		slog.Error("Failed to bump feed version", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to bump feed version"})
		return
	}
	slog.Info("Feed version bumped", "feed_version", version)

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"feed_version": version,
		"message":      "Clients polling /api/trends/version will pick up the change",
	})
}

func (h *Handler) AdminCloudSync(c *gin.Context) {
	if err := h.cache.SyncToRemote(); err != nil {
		slog.Error("Cloud sync failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cloud sync failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cache synced to cloud storage"})
}

func (h *Handler) AdminCloudLoad(c *gin.Context) {
	if err := h.cache.SyncFromRemote(); err != nil {
		slog.Error("Cloud load failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cloud load failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Cache loaded from cloud storage",
		"total_articles": h.cache.Stats()["total_articles"],
	})
}

func respondValidationError(c *gin.Context, err error) {
	var verr *settings.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
