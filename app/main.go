package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prashikshan/newstrends/app/aggregator"
	"github.com/prashikshan/newstrends/app/api"
	"github.com/prashikshan/newstrends/app/cache"
	"github.com/prashikshan/newstrends/app/cfg"
	"github.com/prashikshan/newstrends/app/config"
	"github.com/prashikshan/newstrends/app/refresh"
	"github.com/prashikshan/newstrends/app/settings"
	"github.com/prashikshan/newstrends/app/sources"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("Starting News Trends server", "version", appCfg.Version)

	// Feed source declarations (built-in defaults, optionally overridden on disk)
	loader := config.NewLoader(appCfg.SourcesDir)
	feeds, err := loader.LoadAll()
	if err != nil {
		slog.Error("Failed to load source declarations", "error", err)
		os.Exit(1)
	}
	categories := make([]string, 0, len(feeds))
	for _, category := range config.Categories() {
		if _, ok := feeds[category]; ok {
			categories = append(categories, category)
		}
	}
	slog.Info("Loaded feed declarations", "categories", len(categories))

	// Remote blob store is optional; the local file stays authoritative
	var remote cache.RemoteStore
	if appCfg.StorageURL != "" && appCfg.StorageKey != "" {
		remote = cache.NewStorageStore(appCfg.StorageURL, appCfg.StorageKey, appCfg.StorageBucket)
		slog.Info("Remote cache store configured", "bucket", appCfg.StorageBucket)
	} else {
		slog.Info("Remote cache store disabled (STORAGE_URL not set)")
	}

	articleCache, err := cache.New(appCfg.CacheFile, categories, remote)
	if err != nil {
		slog.Error("Failed to initialize cache", "file", appCfg.CacheFile, "error", err)
		os.Exit(1)
	}

	// Hydrate from the blob store when the local file is stale or empty
	if remote != nil && articleCache.IsStale(cache.DefaultMaxAge) {
		if err := articleCache.SyncFromRemote(); err != nil {
			slog.Warn("Could not hydrate cache from remote store", "error", err)
		}
	}

	settingsStore := settings.NewStore()

	httpClient := &http.Client{Timeout: 30 * time.Second}
	browser := sources.NewBrowserClient(appCfg.ScraperURL, appCfg.ScraperAPIKey,
		httpClient, appCfg.ScraperTimeout, appCfg.UserAgent)
	resolver := sources.NewImageResolver(httpClient, appCfg.UserAgent)

	agg := aggregator.New(feeds, settingsStore, httpClient, browser, resolver,
		appCfg.WorkerCount, appCfg.UserAgent)
	runner := refresh.NewRunner(agg, articleCache)

	apiHandler := api.NewHandler(agg, articleCache, settingsStore, runner)
	router := api.NewServer(apiHandler, appCfg.AdminKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("News Trends server started")

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Persist the snapshot one last time so nothing scraped since the last
	// save is lost
	if err := articleCache.Save(false); err != nil {
		slog.Error("Final cache save failed", "error", err)
	}

	slog.Info("Shutdown complete")
}
