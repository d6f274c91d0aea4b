package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newBrowserService(t *testing.T, healthy bool, scrapeBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/health":
			if healthy {
				w.WriteHeader(http.StatusOK)
			} else {
				w.WriteHeader(http.StatusServiceUnavailable)
			}
		case r.URL.Path == "/scrape/news/producthunt":
			if r.Header.Get("X-API-Key") != "service-key" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(scrapeBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestBrowserClientAvailable(t *testing.T) {
	srv := newBrowserService(t, true, "[]")
	defer srv.Close()

	client := NewBrowserClient(srv.URL, "service-key", srv.Client(), 90, "test-agent")
	if !client.Available(context.Background()) {
		t.Error("Expected healthy service to be available")
	}

	down := newBrowserService(t, false, "[]")
	defer down.Close()

	client = NewBrowserClient(down.URL, "service-key", down.Client(), 90, "test-agent")
	if client.Available(context.Background()) {
		t.Error("Expected unhealthy service to be unavailable")
	}

	unconfigured := NewBrowserClient("", "", http.DefaultClient, 90, "test-agent")
	if unconfigured.Configured() || unconfigured.Available(context.Background()) {
		t.Error("Unconfigured client must report unavailable")
	}
}

func TestScrapeSourceResponseShapes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{"bare list", `[{"title":"A","link":"https://a","published":"now","source":"PH","category":"startups"}]`, 1, false},
		{"wrapped list", `{"articles":[{"title":"A"},{"title":"B"}]}`, 2, false},
		{"service error", `{"error":"render timed out"}`, 0, true},
		{"empty body", ``, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newBrowserService(t, true, tt.body)
			defer srv.Close()

			client := NewBrowserClient(srv.URL, "service-key", srv.Client(), 90, "test-agent")
			articles, err := client.ScrapeSource(context.Background(), "producthunt")
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(articles) != tt.want {
				t.Errorf("Expected %d articles, got %d", tt.want, len(articles))
			}
		})
	}
}

func TestBrowserAdapterDisabled(t *testing.T) {
	srv := newBrowserService(t, true, `[{"title":"A"}]`)
	defer srv.Close()

	client := NewBrowserClient(srv.URL, "service-key", srv.Client(), 90, "test-agent")
	adapter := NewBrowserAdapter("producthunt", client, func() bool { return false })

	if _, err := adapter.Fetch(context.Background()); err == nil {
		t.Error("Disabled adapter must fail so the chain falls through")
	}
}

func TestChainFallsThroughToNextLevel(t *testing.T) {
	srv := newBrowserService(t, false, "")
	defer srv.Close()

	client := NewBrowserClient(srv.URL, "service-key", srv.Client(), 90, "test-agent")
	browser := NewBrowserAdapter("producthunt", client, func() bool { return true })

	rssSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer rssSrv.Close()
	fallback := NewRSSAdapter("fallback", rssSrv.URL, "Fallback", "startups", 5, rssSrv.Client(), "test-agent", nil)

	chain := NewChain("ProductHunt", browser, fallback)
	articles, err := chain.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Chain should succeed via the fallback, got: %v", err)
	}
	if len(articles) == 0 {
		t.Error("Expected fallback articles from the chain")
	}
	if articles[0].Source != "Fallback" {
		t.Errorf("Expected fallback source, got %q", articles[0].Source)
	}
}
