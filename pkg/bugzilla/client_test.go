package bugzilla

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/bugscope/bugscope/pkg/cache"
)

const searchBody = `{"bugs": [
	{"id": 1, "alias": "wr-projects", "summary": "[meta] tracker", "blocks": [], "cf_rank": null},
	{"id": 2, "alias": null, "summary": "[project] caching", "blocks": [1], "cf_rank": 3},
	{"id": 3, "alias": ["old-style"], "summary": "a bug", "blocks": [2], "cf_rank": "7"}
]}`

func TestClient_FetchBugs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/bug" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if got := q.Get("product"); got != "Core" {
			t.Errorf("product = %q, want %q", got, "Core")
		}
		if got := q.Get("component"); got != "Graphics: WebRender" {
			t.Errorf("component = %q, want %q", got, "Graphics: WebRender")
		}
		if got := q.Get("resolution"); got != "---" {
			t.Errorf("resolution = %q, want %q", got, "---")
		}
		if got := q.Get("include_fields"); got != "id,alias,summary,blocks,cf_rank" {
			t.Errorf("include_fields = %q", got)
		}
		if got := q.Get("limit"); got != "0" {
			t.Errorf("limit = %q, want %q", got, "0")
		}
		w.Write([]byte(searchBody))
	}))
	defer server.Close()

	c := NewClient(server.URL, &cache.NullCache{})

	records, _, err := c.FetchBugs(context.Background(), testQuery(), true)
	if err != nil {
		t.Fatalf("FetchBugs failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	if records[0].Alias != "wr-projects" {
		t.Errorf("records[0].Alias = %q, want %q", records[0].Alias, "wr-projects")
	}
	if records[0].Rank != "" {
		t.Errorf("records[0].Rank = %q, want empty for null cf_rank", records[0].Rank)
	}
	if records[1].Rank != "3" {
		t.Errorf("records[1].Rank = %q, want %q", records[1].Rank, "3")
	}
	if records[2].Rank != "7" {
		t.Errorf("records[2].Rank = %q, want %q", records[2].Rank, "7")
	}
	if records[2].Alias != "old-style" {
		t.Errorf("records[2].Alias = %q, want %q", records[2].Alias, "old-style")
	}
	if len(records[2].Blocks) != 1 || records[2].Blocks[0] != 2 {
		t.Errorf("records[2].Blocks = %v, want [2]", records[2].Blocks)
	}
}

func TestClient_FetchBugs_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	c := NewClient(server.URL, &cache.NullCache{})

	_, _, err := c.FetchBugs(context.Background(), testQuery(), true)
	if err == nil {
		t.Fatal("expected error for missing endpoint")
	}
	if !errors.Is(err, cache.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_FetchBugs_ServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 2 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(searchBody))
	}))
	defer server.Close()

	c := NewClient(server.URL, &cache.NullCache{})

	records, _, err := c.FetchBugs(context.Background(), testQuery(), true)
	if err != nil {
		t.Fatalf("FetchBugs failed after retry: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want 3", len(records))
	}
	if calls.Load() != 2 {
		t.Errorf("server called %d times, want 2", calls.Load())
	}
}

func TestClient_FetchBugs_CacheHit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(searchBody))
	}))
	defer server.Close()

	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(server.URL, backend)

	ctx := context.Background()
	_, hit, err := c.FetchBugs(ctx, testQuery(), false)
	if err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	if hit {
		t.Error("first fetch reported a cache hit")
	}

	_, hit, err = c.FetchBugs(ctx, testQuery(), false)
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}
	if !hit {
		t.Error("second fetch should hit the cache")
	}
	if calls.Load() != 1 {
		t.Errorf("server called %d times, want 1", calls.Load())
	}

	// refresh bypasses the cache.
	_, hit, err = c.FetchBugs(ctx, testQuery(), true)
	if err != nil {
		t.Fatalf("refresh fetch failed: %v", err)
	}
	if hit {
		t.Error("refresh fetch reported a cache hit")
	}
	if calls.Load() != 2 {
		t.Errorf("server called %d times after refresh, want 2", calls.Load())
	}
}

func TestRankFieldDecoding(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`{"cf_rank": 5}`, "5"},
		{`{"cf_rank": "5"}`, "5"},
		{`{"cf_rank": null}`, ""},
		{`{}`, ""},
	}
	for _, tt := range tests {
		var b apiBug
		if err := json.Unmarshal([]byte(tt.input), &b); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.input, err)
		}
		if got := b.Rank.String(); got != tt.want {
			t.Errorf("rank from %s = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", &cache.NullCache{})
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), DefaultBaseURL)
	}

	c = NewClient("https://example.org/", &cache.NullCache{})
	if c.BaseURL() != "https://example.org" {
		t.Errorf("BaseURL() = %q, want trailing slash stripped", c.BaseURL())
	}
}

func testQuery() Query {
	return Query{Product: "Core", Component: "Graphics: WebRender", Resolution: "---"}
}
