package sources

import "testing"

func TestSplitPublisher(t *testing.T) {
	tests := []struct {
		title      string
		wantTitle  string
		wantSource string
	}{
		{"Go 1.25 ships generics improvements - The Verge", "Go 1.25 ships generics improvements", "The Verge"},
		{"Rates cut again - one more to come - Reuters", "Rates cut again - one more to come", "Reuters"},
		{"Headline with no publisher", "Headline with no publisher", "Google News"},
		{"- OnlySuffix", "- OnlySuffix", "Google News"},
	}

	for _, tt := range tests {
		gotTitle, gotSource := splitPublisher(tt.title)
		if gotTitle != tt.wantTitle || gotSource != tt.wantSource {
			t.Errorf("splitPublisher(%q) = (%q, %q), want (%q, %q)",
				tt.title, gotTitle, gotSource, tt.wantTitle, tt.wantSource)
		}
	}
}
