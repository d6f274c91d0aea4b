package config

// Defaults is the built-in feed composition, one declaration per known
// category. A fresh map is returned on every call so callers can overlay
// file-based declarations without mutating shared state.
func Defaults() map[string]*FeedConfig {
	configs := []*FeedConfig{
		{
			Category: "tech",
			Title:    "Technology",
			Sources: []SourceConfig{
				{Name: "TechCrunch", Type: "rss", URL: "https://techcrunch.com/feed/", Source: "TechCrunch", Limit: 8},
				{Name: "HackerNews", Type: "hackernews", Limit: 10},
				{Name: "Dev.to", Type: "devto", Limit: 10},
				{Name: "TheVerge", Type: "rss", URL: "https://www.theverge.com/rss/index.xml", Source: "The Verge", Limit: 8},
				{Name: "Wired", Type: "rss", URL: "https://www.wired.com/feed/rss", Source: "Wired", Limit: 8},
				{Name: "ArsTechnica", Type: "rss", URL: "https://feeds.arstechnica.com/arstechnica/index", Source: "Ars Technica", Limit: 8},
				{Name: "BBC", Type: "rss", URL: "https://feeds.bbci.co.uk/news/technology/rss.xml", Source: "BBC News", Limit: 8},
				{Name: "Google-AI", Type: "googlenews", Query: "AI artificial intelligence ChatGPT latest news", Limit: 5},
				{Name: "Google-Dev", Type: "googlenews", Query: "software development programming trends", Limit: 5},
				{Name: "Google-Cyber", Type: "googlenews", Query: "cybersecurity hacking data breach news", Limit: 4},
			},
		},
		{
			Category: "education",
			Title:    "Education",
			Sources: []SourceConfig{
				{Name: "NDTV-Edu", Type: "rss", URL: "https://feeds.feedburner.com/ndtvnews-education", Source: "NDTV Education", Limit: 8},
				{Name: "Google-Courses", Type: "googlenews", Query: "online courses free certification Coursera Udemy", Limit: 6},
				{Name: "Google-Skills", Type: "googlenews", Query: "skill development training india NSDC", Limit: 5},
				{Name: "Google-Placement", Type: "googlenews", Query: "placement jobs campus recruitment freshers", Limit: 5},
				{Name: "Google-Scholarship", Type: "googlenews", Query: "scholarship students india eligibility", Limit: 4},
				{Name: "Google-Exams", Type: "googlenews", Query: "competitive exams GATE CAT UPSC preparation tips", Limit: 4},
				{Name: "Google-Intern", Type: "googlenews", Query: "internship opportunities students india tech", Limit: 4},
			},
		},
		{
			Category: "career",
			Title:    "Career",
			Sources: []SourceConfig{
				{Name: "Google-Jobs", Type: "googlenews", Query: "job openings hiring tech india bangalore hyderabad", Limit: 6},
				{Name: "Google-Remote", Type: "googlenews", Query: "remote work jobs opportunities work from home", Limit: 5},
				{Name: "Google-Salary", Type: "googlenews", Query: "salary hike increment appraisal trends india", Limit: 4},
				{Name: "Google-Interview", Type: "googlenews", Query: "interview preparation tips tech companies", Limit: 4},
				{Name: "Google-Layoffs", Type: "googlenews", Query: "layoffs hiring freeze tech industry news", Limit: 4},
				{Name: "Reddit-CS", Type: "reddit", Subreddit: "cscareerquestions", Limit: 8},
			},
		},
		{
			Category: "ai_ml",
			Title:    "AI & ML",
			Sources: []SourceConfig{
				{Name: "Google-ChatGPT", Type: "googlenews", Query: "ChatGPT OpenAI GPT-4 latest updates features", Limit: 6},
				{Name: "Google-Gemini", Type: "googlenews", Query: "Google Gemini AI assistant news", Limit: 5},
				{Name: "Google-AIBiz", Type: "googlenews", Query: "artificial intelligence business applications", Limit: 5},
				{Name: "Google-ML", Type: "googlenews", Query: "machine learning deep learning research papers", Limit: 4},
				{Name: "Google-GenAI", Type: "googlenews", Query: "generative AI image video tools Midjourney DALL-E", Limit: 4},
				{Name: "Reddit-ML", Type: "reddit", Subreddit: "MachineLearning", Limit: 6},
				{Name: "Reddit-AI", Type: "reddit", Subreddit: "artificial", Limit: 5},
			},
		},
		{
			Category: "startups",
			Title:    "Startups",
			Sources: []SourceConfig{
				{
					Name: "ProductHunt", Type: "browser", Source: "producthunt", Limit: 10,
					Query:    "Product Hunt trending products launch",
					Fallback: &SourceConfig{Name: "ProductHunt-RSS", Type: "rss", URL: "https://www.producthunt.com/feed", Source: "Product Hunt", Limit: 10},
				},
				{Name: "Google-Funding", Type: "googlenews", Query: "startup funding series A B C india", Limit: 6},
				{Name: "Google-Unicorn", Type: "googlenews", Query: "indian unicorn startup valuation news", Limit: 5},
				{Name: "Google-YC", Type: "googlenews", Query: "Y Combinator startup accelerator news", Limit: 4},
				{Name: "Google-VC", Type: "googlenews", Query: "venture capital investment tech startups", Limit: 4},
				{Name: "Reddit-Startups", Type: "reddit", Subreddit: "startups", Limit: 6},
			},
		},
		{
			Category: "developer",
			Title:    "Developer",
			Sources: []SourceConfig{
				{Name: "Dev.to", Type: "devto", Limit: 10},
				{Name: "HackerNews", Type: "hackernews", Limit: 10},
				{Name: "GitHub", Type: "github", Limit: 10},
				{
					Name: "Medium-Tech", Type: "browser", Source: "medium", Limit: 8,
					Query:    "medium technology programming articles",
					Fallback: &SourceConfig{Name: "Medium-RSS", Type: "rss", URL: "https://medium.com/feed/tag/technology", Source: "Medium", Limit: 8},
				},
				{Name: "Google-WebDev", Type: "googlenews", Query: "web development react angular vue javascript", Limit: 5},
				{Name: "Google-Tools", Type: "googlenews", Query: "developer tools productivity coding", Limit: 4},
			},
		},
		{
			Category: "github",
			Title:    "GitHub Trending",
			Sources: []SourceConfig{
				{Name: "GitHub", Type: "github", Limit: 10},
			},
		},
		{
			Category: "general",
			Title:    "General",
			Sources: []SourceConfig{
				{Name: "Google-Trending", Type: "googlenews", Query: "trending india news today viral", Limit: 6},
				{Name: "Google-TechTrends", Type: "googlenews", Query: "technology trends predictions", Limit: 5},
				{Name: "Google-Digital", Type: "googlenews", Query: "digital transformation business innovation", Limit: 4},
				{Name: "Google-Fintech", Type: "googlenews", Query: "fintech digital payments UPI india", Limit: 4},
				{Name: "Google-EV", Type: "googlenews", Query: "electric vehicles EV india tesla", Limit: 4},
			},
		},
	}

	out := make(map[string]*FeedConfig, len(configs))
	for _, c := range configs {
		out[c.Category] = c
	}
	return out
}

// Categories returns the known category keys in their canonical order.
func Categories() []string {
	return []string{"tech", "education", "career", "ai_ml", "startups", "developer", "github", "general"}
}
