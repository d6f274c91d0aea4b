package cfg

type Cfg struct {
	// Application configuration
	Port        string
	SourcesDir  string
	CacheFile   string
	WorkerCount int
	AdminKey    string

	// Browser scraper service
	ScraperURL     string
	ScraperAPIKey  string
	ScraperTimeout int

	// Remote blob store (Supabase Storage)
	StorageURL    string
	StorageKey    string
	StorageBucket string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
