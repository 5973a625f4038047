package hashnode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type pageFixture struct {
	posts       []map[string]string
	hasNextPage bool
	endCursor   string
}

func servePages(t *testing.T, pages []pageFixture) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		pageIdx := 0
		if after, ok := req.Variables["after"].(string); ok && after != "" {
			for i, p := range pages {
				if p.endCursor == after {
					pageIdx = i + 1
				}
			}
		}
		if pageIdx >= len(pages) {
			t.Errorf("requested page %d beyond fixture", pageIdx)
			http.Error(w, "no such page", http.StatusBadRequest)
			return
		}
		page := pages[pageIdx]

		edges := make([]map[string]any, 0, len(page.posts))
		for _, p := range page.posts {
			edges = append(edges, map[string]any{"node": p})
		}
		resp := map[string]any{
			"data": map[string]any{
				"publication": map[string]any{
					"posts": map[string]any{
						"edges": edges,
						"pageInfo": map[string]any{
							"hasNextPage": page.hasNextPage,
							"endCursor":   page.endCursor,
						},
					},
				},
			},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}))
}

func TestFetchAllPostsPaginates(t *testing.T) {
	pages := []pageFixture{
		{
			posts: []map[string]string{
				{"id": "1", "title": "First", "brief": "one", "slug": "first", "updatedAt": "2024-03-01T10:00:00Z"},
				{"id": "2", "title": "Second", "brief": "two", "slug": "second", "publishedAt": "2024-02-01T10:00:00Z"},
			},
			hasNextPage: true,
			endCursor:   "cursor-1",
		},
		{
			posts: []map[string]string{
				{"id": "3", "title": "Third", "brief": "three", "slug": "third"},
			},
			hasNextPage: false,
		},
	}

	srv := servePages(t, pages)
	defer srv.Close()

	client := NewClient(srv.URL, "example.hashnode.dev", 5*time.Second)
	posts, err := client.FetchAllPosts(context.Background())
	if err != nil {
		t.Fatalf("FetchAllPosts returned error: %v", err)
	}

	if len(posts) != 3 {
		t.Fatalf("expected 3 posts across pages, got %d", len(posts))
	}
	if posts[0].ID != "1" || posts[1].ID != "2" || posts[2].ID != "3" {
		t.Errorf("posts out of order: %v", posts)
	}

	if posts[0].UpdatedAt.IsZero() {
		t.Error("post with updatedAt should carry a timestamp")
	}
	if posts[1].UpdatedAt.IsZero() {
		t.Error("post with only publishedAt should fall back to it")
	}
	if !posts[2].UpdatedAt.IsZero() {
		t.Error("post with no timestamps should carry the zero time")
	}
	for i, p := range posts {
		if !p.Visible {
			t.Errorf("post %d should default to visible", i)
		}
	}
}

func TestFetchAllPostsPropagatesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "example.hashnode.dev", 2*time.Second)
	if _, err := client.FetchAllPosts(context.Background()); err == nil {
		t.Fatal("expected error from failing upstream, got nil")
	}
}

func TestFetchAllPostsPropagatesGraphQLError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors":[{"message":"publication not found"}]}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "missing.hashnode.dev", 2*time.Second)
	_, err := client.FetchAllPosts(context.Background())
	if err == nil {
		t.Fatal("expected error from GraphQL errors payload, got nil")
	}
}
