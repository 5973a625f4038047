package domain

import "errors"

var (
	// ErrPostNotFound is returned when a slug resolves to no visible post.
	ErrPostNotFound = errors.New("post not found")

	// ErrFeatureDisabled is returned when the toggle gating an endpoint is off.
	ErrFeatureDisabled = errors.New("feature disabled")
)
