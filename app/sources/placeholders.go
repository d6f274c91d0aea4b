package sources

import "strings"

// Placeholder images keyed by source substring, used by consumers when an
// article carries no thumbnail and page extraction found nothing.
var sourcePlaceholders = map[string]string{
	"techcrunch":   "https://images.unsplash.com/photo-1518770660439-4636190af475?w=400&h=300&fit=crop",
	"hacker news":  "https://images.unsplash.com/photo-1555066931-4365d14bab8c?w=400&h=300&fit=crop",
	"dev.to":       "https://images.unsplash.com/photo-1461749280684-dccba630e2f6?w=400&h=300&fit=crop",
	"github":       "https://images.unsplash.com/photo-1618401471353-b98afee0b2eb?w=400&h=300&fit=crop",
	"product hunt": "https://images.unsplash.com/photo-1559136555-9303baea8ebd?w=400&h=300&fit=crop",
	"the verge":    "https://images.unsplash.com/photo-1519389950473-47ba0277781c?w=400&h=300&fit=crop",
	"wired":        "https://images.unsplash.com/photo-1550751827-4bd374c3f58b?w=400&h=300&fit=crop",
	"ars technica": "https://images.unsplash.com/photo-1504639725590-34d0984388bd?w=400&h=300&fit=crop",
	"bbc":          "https://images.unsplash.com/photo-1495020689067-958852a7765e?w=400&h=300&fit=crop",
	"ndtv":         "https://images.unsplash.com/photo-1523050854058-8df90110c9f1?w=400&h=300&fit=crop",
	"reddit":       "https://images.unsplash.com/photo-1611162617474-5b21e879e113?w=400&h=300&fit=crop",
	"medium":       "https://images.unsplash.com/photo-1499750310107-5fef28a66643?w=400&h=300&fit=crop",
}

var categoryPlaceholders = map[string]string{
	"tech":      "https://images.unsplash.com/photo-1518770660439-4636190af475?w=400&h=300&fit=crop",
	"education": "https://images.unsplash.com/photo-1523050854058-8df90110c9f1?w=400&h=300&fit=crop",
	"career":    "https://images.unsplash.com/photo-1454165804606-c3d57bc86b40?w=400&h=300&fit=crop",
	"ai_ml":     "https://images.unsplash.com/photo-1677442136019-21780ecad995?w=400&h=300&fit=crop",
	"startups":  "https://images.unsplash.com/photo-1559136555-9303baea8ebd?w=400&h=300&fit=crop",
	"developer": "https://images.unsplash.com/photo-1461749280684-dccba630e2f6?w=400&h=300&fit=crop",
	"github":    "https://images.unsplash.com/photo-1618401471353-b98afee0b2eb?w=400&h=300&fit=crop",
	"general":   "https://images.unsplash.com/photo-1504711434969-e33886168f5c?w=400&h=300&fit=crop",
}

// Placeholder returns a deterministic fallback image for a source, falling
// back to the category's image and finally the general one.
func Placeholder(source, category string) string {
	s := strings.ToLower(source)
	for key, url := range sourcePlaceholders {
		if strings.Contains(s, key) {
			return url
		}
	}
	if url, ok := categoryPlaceholders[category]; ok {
		return url
	}
	return categoryPlaceholders["general"]
}
