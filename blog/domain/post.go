package domain

import (
	"context"
	"time"
)

// Post represents one externally-authored blog post.
// Identity, title, brief, and timestamp come from the upstream publication
// on every refresh; Visible and Pinned are cache-local moderator overrides
// layered on top.
type Post struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Brief     string    `json:"brief"`
	UpdatedAt time.Time `json:"updatedAt"`
	Visible   bool      `json:"visible"`
	Pinned    bool      `json:"isPinned"`
}

// PostSource defines the interface for fetching posts from the upstream
// content publication. This allows the cache to be decoupled from a specific
// provider implementation.
type PostSource interface {
	// FetchAllPosts retrieves every post from the upstream source, walking
	// pagination cursors until exhausted. The fetch is all-or-nothing: a
	// failure on any page aborts the whole fetch.
	FetchAllPosts(ctx context.Context) ([]Post, error)
}
