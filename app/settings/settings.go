package settings

import (
	"fmt"
	"sync"

	"github.com/prashikshan/newstrends/app/article"
)

const (
	MinArticlesLimit = 1
	MaxArticlesLimit = 50

	DefaultArticlesLimit = 10
)

// DefaultSourcePriority is the out-of-the-box source ranking used by the
// priority sort policy.
var DefaultSourcePriority = []string{
	"TechCrunch",
	"Hacker News",
	"Dev.to",
	"The Verge",
	"Wired",
	"BBC",
	"GitHub",
}

// ValidationError indicates caller misuse (a malformed setting value) as
// opposed to a transient runtime failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Store holds admin-mutable runtime settings consumed by the aggregator and
// the source adapters. All accessors are safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	scrapingEnabled bool
	articlesLimit   int
	sortOrder       article.SortOrder
	sourcePriority  []string
}

func NewStore() *Store {
	return &Store{
		scrapingEnabled: true,
		articlesLimit:   DefaultArticlesLimit,
		sortOrder:       article.SortPriority,
		sourcePriority:  append([]string(nil), DefaultSourcePriority...),
	}
}

// ScrapingEnabled reports whether browser-backed scraping is allowed.
func (s *Store) ScrapingEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scrapingEnabled
}

func (s *Store) SetScrapingEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrapingEnabled = enabled
}

// ToggleScraping flips the browser-scraping flag and returns the new state.
func (s *Store) ToggleScraping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrapingEnabled = !s.scrapingEnabled
	return s.scrapingEnabled
}

func (s *Store) ArticlesLimit() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.articlesLimit
}

func (s *Store) SetArticlesLimit(limit int) error {
	if limit < MinArticlesLimit || limit > MaxArticlesLimit {
		return &ValidationError{
			Field:   "articles_limit",
			Message: fmt.Sprintf("must be between %d and %d", MinArticlesLimit, MaxArticlesLimit),
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articlesLimit = limit
	return nil
}

func (s *Store) SortOrder() article.SortOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortOrder
}

func (s *Store) SetSortOrder(order string) error {
	if !article.ValidSortOrder(order) {
		return &ValidationError{
			Field:   "sort_order",
			Message: "must be one of: priority, time, random",
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortOrder = article.SortOrder(order)
	return nil
}

// SourcePriority returns a copy of the ordered priority list.
func (s *Store) SourcePriority() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.sourcePriority...)
}

func (s *Store) SetSourcePriority(priority []string) error {
	if len(priority) == 0 {
		return &ValidationError{
			Field:   "source_priority",
			Message: "must contain at least one source name",
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sourcePriority = append([]string(nil), priority...)
	return nil
}

// Snapshot returns all settings as a map for the admin API.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]any{
		"scraping_enabled":            s.scrapingEnabled,
		"articles_limit_per_category": s.articlesLimit,
		"sort_order":                  string(s.sortOrder),
		"source_priority":             append([]string(nil), s.sourcePriority...),
	}
}
