package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Application configuration
	Port        string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	SourcesDir  string `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing feed source declarations (optional, built-in defaults apply)"`
	CacheFile   string `long:"cache-file" env:"CACHE_FILE" default:"./cache/news_cache.json" description:"Path to the local cache file"`
	WorkerCount int    `long:"worker-count" env:"WORKER_COUNT" default:"6" description:"Number of concurrent source adapters per aggregation"`
	AdminKey    string `long:"admin-key" env:"ADMIN_API_KEY" description:"Admin API key (admin endpoints disabled when empty)"`

	// Browser scraper service
	ScraperURL     string `long:"scraper-url" env:"SCRAPER_SERVICE_URL" description:"Base URL of the headless-browser scraper service (optional)"`
	ScraperAPIKey  string `long:"scraper-api-key" env:"SCRAPER_API_KEY" description:"API key for the scraper service"`
	ScraperTimeout int    `long:"scraper-timeout" env:"SCRAPER_TIMEOUT" default:"90" description:"Scraper service request timeout in seconds"`

	// Remote blob store (Supabase Storage)
	StorageURL    string `long:"storage-url" env:"STORAGE_URL" description:"Supabase Storage API URL (remote cache sync disabled when empty)"`
	StorageKey    string `long:"storage-key" env:"STORAGE_KEY" description:"Supabase service key"`
	StorageBucket string `long:"storage-bucket" env:"STORAGE_BUCKET" default:"news-cache" description:"Bucket holding the cache blob"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"NewsTrends/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Kolkata)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:           raw.Port,
		SourcesDir:     raw.SourcesDir,
		CacheFile:      raw.CacheFile,
		WorkerCount:    raw.WorkerCount,
		AdminKey:       raw.AdminKey,
		ScraperURL:     raw.ScraperURL,
		ScraperAPIKey:  raw.ScraperAPIKey,
		ScraperTimeout: raw.ScraperTimeout,
		StorageURL:     raw.StorageURL,
		StorageKey:     raw.StorageKey,
		StorageBucket:  raw.StorageBucket,
		UserAgent:      raw.UserAgent,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
