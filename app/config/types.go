package config

// FeedConfig declares the fixed set of source adapters behind one logical
// feed key. One YAML file per category; built-in defaults apply when no file
// overrides a category.
type FeedConfig struct {
	Category string         `yaml:"category"`
	Title    string         `yaml:"title"`
	Sources  []SourceConfig `yaml:"sources"`
}

// SourceConfig is one (adapterName, adapterType, args) tuple.
type SourceConfig struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"` // rss, googlenews, hackernews, devto, reddit, github, browser
	URL       string `yaml:"url"`
	Source    string `yaml:"source"` // display name (rss), or remote source key (browser)
	Query     string `yaml:"query"`  // googlenews query; last-resort fallback query for browser
	Subreddit string `yaml:"subreddit"`
	Limit     int    `yaml:"limit"`

	// Fallback is the static adapter tried when a browser source is disabled
	// or fails; the Query above is the final generic-search level.
	Fallback *SourceConfig `yaml:"fallback"`
}
