package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		Port:           "8080",
		SourcesDir:     "./sources",
		CacheFile:      "./cache/news_cache.json",
		WorkerCount:    6,
		AdminKey:       "test-key",
		ScraperURL:     "https://scraper.example.com",
		ScraperAPIKey:  "scraper-key",
		ScraperTimeout: 90,
		StorageURL:     "https://storage.example.com",
		StorageBucket:  "news-cache",
		UserAgent:      "Test Agent",
		Timezone:       "UTC",
		Debug:          true,
		Version:        "test-version",
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.WorkerCount != 6 {
		t.Errorf("Expected worker count 6, got %d", cfg.WorkerCount)
	}
	if cfg.AdminKey != "test-key" {
		t.Errorf("Expected admin key 'test-key', got '%s'", cfg.AdminKey)
	}
	if cfg.ScraperTimeout != 90 {
		t.Errorf("Expected scraper timeout 90, got %d", cfg.ScraperTimeout)
	}
	if cfg.StorageBucket != "news-cache" {
		t.Errorf("Expected bucket 'news-cache', got '%s'", cfg.StorageBucket)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}
