package application

import (
	"sort"

	"github.com/Bota-ApexV2/n-updater/api"
	"github.com/Bota-ApexV2/n-updater/blog/domain"
)

const (
	latestCount = 3
	pageSize    = 10

	dateLayout = "2006-01-02"
)

// QueryOption mutates Query configuration.
type QueryOption func(*Query)

// WithPinnedFirst orders pinned posts ahead of unpinned ones in the latest
// and paginated projections. Off by default, matching the behavior where the
// pin flag is recorded but never consulted.
func WithPinnedFirst() QueryOption {
	return func(q *Query) {
		q.pinnedFirst = true
	}
}

// Query provides the read-only projections over the post cache consumed by
// the HTTP surface. Every projection works on a snapshot, filters hidden
// posts, and checks its feature toggle before doing any work.
type Query struct {
	store       *Store
	toggles     *Toggles
	pinnedFirst bool
}

// NewQuery creates the query layer over the given store and toggle set.
func NewQuery(store *Store, toggles *Toggles, options ...QueryOption) *Query {
	q := &Query{
		store:   store,
		toggles: toggles,
	}
	for _, option := range options {
		option(q)
	}

	return q
}

// Latest returns the three most recently updated visible posts.
// Returns domain.ErrFeatureDisabled when the API toggle is off.
func (q *Query) Latest() ([]api.PostSummary, error) {
	if !q.toggles.APIEnabled() {
		return nil, domain.ErrFeatureDisabled
	}

	posts := q.sortedVisible()
	if len(posts) > latestCount {
		posts = posts[:latestCount]
	}

	return summarize(posts), nil
}

// Page returns one fixed-size page of the visible post list, 1-indexed.
// Non-positive page numbers are clamped to 1; a page beyond the last yields
// an empty slice, not an error.
// Returns domain.ErrFeatureDisabled when the ran-page toggle is off.
func (q *Query) Page(page int) (*api.PostPage, error) {
	if !q.toggles.RanPageEnabled() {
		return nil, domain.ErrFeatureDisabled
	}
	if page < 1 {
		page = 1
	}

	posts := q.sortedVisible()
	total := len(posts)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &api.PostPage{
		Posts: summarize(posts[start:end]),
		Pagination: api.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalPosts:  total,
		},
	}, nil
}

// BySlug returns the full post for a normalized slug if present and visible.
// Hidden and missing posts both surface as domain.ErrPostNotFound.
// Returns domain.ErrFeatureDisabled when the ran-slug toggle is off.
func (q *Query) BySlug(slug string) (domain.Post, error) {
	if !q.toggles.RanSlugEnabled() {
		return domain.Post{}, domain.ErrFeatureDisabled
	}

	post, ok := q.store.Get(slug)
	if !ok || !post.Visible {
		return domain.Post{}, domain.ErrPostNotFound
	}

	return post, nil
}

// sortedVisible snapshots the store, drops hidden posts, and sorts newest
// first. The zero time sorts as oldest. With pinned-first ordering enabled,
// pinned posts precede unpinned regardless of timestamp.
func (q *Query) sortedVisible() []domain.Post {
	snap := q.store.Snapshot()

	visible := snap[:0]
	for _, p := range snap {
		if p.Visible {
			visible = append(visible, p)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		if q.pinnedFirst && visible[i].Pinned != visible[j].Pinned {
			return visible[i].Pinned
		}
		return visible[i].UpdatedAt.After(visible[j].UpdatedAt)
	})

	return visible
}

func summarize(posts []domain.Post) []api.PostSummary {
	out := make([]api.PostSummary, 0, len(posts))
	for _, p := range posts {
		date := ""
		if !p.UpdatedAt.IsZero() {
			date = p.UpdatedAt.Format(dateLayout)
		}
		out = append(out, api.PostSummary{
			ID:      p.ID,
			Title:   p.Title,
			Summary: p.Brief,
			Date:    date,
			URL:     "/ran/" + domain.NormalizeSlug(p.Slug),
		})
	}

	return out
}
