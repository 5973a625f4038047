package application

import "sync/atomic"

// Toggles holds the process-wide feature flags gating the read API. All flags
// default to on and reset on restart; only admin commands mutate them.
type Toggles struct {
	api     atomic.Bool
	ranPage atomic.Bool
	ranSlug atomic.Bool
}

// NewToggles creates the flag set with every feature enabled.
func NewToggles() *Toggles {
	t := &Toggles{}
	t.api.Store(true)
	t.ranPage.Store(true)
	t.ranSlug.Store(true)

	return t
}

// APIEnabled reports whether the latest-posts endpoint is available.
func (t *Toggles) APIEnabled() bool { return t.api.Load() }

// RanPageEnabled reports whether the paginated list endpoint is available.
func (t *Toggles) RanPageEnabled() bool { return t.ranPage.Load() }

// RanSlugEnabled reports whether the single-post endpoint is available.
func (t *Toggles) RanSlugEnabled() bool { return t.ranSlug.Load() }

// SetAPI enables or disables the latest-posts endpoint.
func (t *Toggles) SetAPI(enabled bool) { t.api.Store(enabled) }

// SetRanPage enables or disables the paginated list endpoint.
func (t *Toggles) SetRanPage(enabled bool) { t.ranPage.Store(enabled) }

// SetRanSlug enables or disables the single-post endpoint.
func (t *Toggles) SetRanSlug(enabled bool) { t.ranSlug.Store(enabled) }
