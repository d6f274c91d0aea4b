package article

// Article is a single normalized item produced by a source adapter.
// Adapters never mutate an Article after producing it; the aggregator
// only filters, reorders, and truncates.
type Article struct {
	Title       string         `json:"title"`
	Link        string         `json:"link"`
	Published   string         `json:"published"`
	Source      string         `json:"source"`
	Category    string         `json:"category"`
	Description string         `json:"description,omitempty"`
	Image       string         `json:"image,omitempty"`
	Extras      map[string]any `json:"extras,omitempty"`
}

// UnknownLink is the sentinel used when a source provides no usable URL.
const UnknownLink = "#"
