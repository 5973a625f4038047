package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Bota-ApexV2/n-updater/blog/domain"
)

// StoreOption mutates Store configuration.
type StoreOption func(*Store)

// WithMergeOnRefresh preserves moderator overrides (visibility, pin) across
// refreshes by carrying them from the old entry onto the rebuilt one. The
// default is a full replace, which discards overrides on every refresh.
func WithMergeOnRefresh() StoreOption {
	return func(s *Store) {
		s.mergeOnRefresh = true
	}
}

// Store is the in-memory post cache: a keyed collection of posts rebuilt
// wholesale on every refresh, plus per-post moderator overrides.
//
// Keys are always NormalizeSlug(post.Slug). The collection is replaced
// atomically under the write lock, so readers see either the previous or the
// next fully-formed collection, never a partial mix.
type Store struct {
	source         domain.PostSource
	mergeOnRefresh bool
	clock          func() time.Time

	mu          sync.RWMutex
	posts       map[string]*domain.Post
	lastUpdated time.Time
}

// NewStore creates a Store backed by the given upstream source. The store
// starts empty; call Refresh to populate it.
func NewStore(source domain.PostSource, options ...StoreOption) *Store {
	s := &Store{
		source: source,
		clock:  time.Now,
		posts:  make(map[string]*domain.Post),
	}
	for _, option := range options {
		option(s)
	}

	return s
}

// Refresh fetches the complete post set from upstream and swaps it in as the
// new collection. On fetch failure the store is left untouched and the error
// is returned for the caller to log; a failed refresh is never fatal.
func (s *Store) Refresh(ctx context.Context) error {
	fetched, err := s.source.FetchAllPosts(ctx)
	if err != nil {
		return fmt.Errorf("refreshing post cache: %w", err)
	}

	next := make(map[string]*domain.Post, len(fetched))
	for i := range fetched {
		post := fetched[i]
		key := domain.NormalizeSlug(post.Slug)
		if key == "" {
			continue
		}
		next[key] = &post
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mergeOnRefresh {
		for key, post := range next {
			if prev, ok := s.posts[key]; ok {
				post.Visible = prev.Visible
				post.Pinned = prev.Pinned
			}
		}
	}

	s.posts = next
	s.lastUpdated = s.clock()

	return nil
}

// SetVisibility flips the visibility override on the live entry for slug.
// Returns domain.ErrPostNotFound when no entry exists.
func (s *Store) SetVisibility(slug string, visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[domain.NormalizeSlug(slug)]
	if !ok {
		return domain.ErrPostNotFound
	}
	post.Visible = visible

	return nil
}

// SetPinned marks the entry for slug as pinned.
// Returns domain.ErrPostNotFound when no entry exists.
func (s *Store) SetPinned(slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[domain.NormalizeSlug(slug)]
	if !ok {
		return domain.ErrPostNotFound
	}
	post.Pinned = true

	return nil
}

// Snapshot returns a read-consistent copy of all current entries. The copy is
// by value, so later flag mutations or refreshes never show through.
func (s *Store) Snapshot() []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Post, 0, len(s.posts))
	for _, post := range s.posts {
		out = append(out, *post)
	}

	return out
}

// Get returns a copy of the entry for the normalized slug, if present.
func (s *Store) Get(slug string) (domain.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[domain.NormalizeSlug(slug)]
	if !ok {
		return domain.Post{}, false
	}

	return *post, true
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.posts)
}

// LastUpdated returns the time of the last successful refresh, or the zero
// time if no refresh has succeeded yet.
func (s *Store) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastUpdated
}
