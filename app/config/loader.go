package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var validTypes = map[string]bool{
	"rss":        true,
	"googlenews": true,
	"hackernews": true,
	"devto":      true,
	"reddit":     true,
	"github":     true,
	"browser":    true,
}

// Loader reads per-category feed declarations from a directory of YAML
// files, merging them over the built-in defaults.
type Loader struct {
	sourcesDir string
}

func NewLoader(sourcesDir string) *Loader {
	return &Loader{sourcesDir: sourcesDir}
}

// LoadAll returns the feed declarations keyed by category. Categories not
// covered by any file keep their built-in defaults; a file for a known
// category replaces that category's declaration wholesale.
func (l *Loader) LoadAll() (map[string]*FeedConfig, error) {
	configs := Defaults()

	if l.sourcesDir == "" {
		return configs, nil
	}
	if _, err := os.Stat(l.sourcesDir); os.IsNotExist(err) {
		return configs, nil
	}

	files, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}
	ymlFiles, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	files = append(files, ymlFiles...)

	for _, file := range files {
		feedConfig, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		if err := l.validate(feedConfig); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", file, err)
		}

		configs[feedConfig.Category] = feedConfig
		slog.Info("Loaded feed declaration", "file", file, "category", feedConfig.Category, "sources", len(feedConfig.Sources))
	}

	return configs, nil
}

func (l *Loader) loadFile(path string) (*FeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var feedConfig FeedConfig
	if err := yaml.Unmarshal(data, &feedConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &feedConfig, nil
}

func (l *Loader) validate(feedConfig *FeedConfig) error {
	if feedConfig.Category == "" {
		return fmt.Errorf("category is required")
	}
	if len(feedConfig.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}

	for i := range feedConfig.Sources {
		if err := validateSource(&feedConfig.Sources[i], i); err != nil {
			return err
		}
	}

	return nil
}

func validateSource(src *SourceConfig, index int) error {
	if !validTypes[src.Type] {
		return fmt.Errorf("invalid source type at index %d: %s", index, src.Type)
	}
	if src.Limit < 0 {
		return fmt.Errorf("limit must be non-negative at index %d", index)
	}

	switch src.Type {
	case "rss":
		if src.URL == "" {
			return fmt.Errorf("rss source at index %d requires a URL", index)
		}
		if src.Source == "" {
			return fmt.Errorf("rss source at index %d requires a source display name", index)
		}
	case "googlenews":
		if src.Query == "" {
			return fmt.Errorf("googlenews source at index %d requires a query", index)
		}
	case "reddit":
		if src.Subreddit == "" {
			return fmt.Errorf("reddit source at index %d requires a subreddit", index)
		}
	case "browser":
		if src.Source == "" {
			return fmt.Errorf("browser source at index %d requires a remote source key", index)
		}
		if src.Fallback != nil {
			if err := validateSource(src.Fallback, index); err != nil {
				return fmt.Errorf("fallback: %w", err)
			}
		}
	}

	return nil
}
