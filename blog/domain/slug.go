package domain

import (
	"regexp"
	"strings"
)

var slugSeparatorRegex = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeSlug maps an arbitrary title-like string to a canonical URL-safe
// key: lower-cased, every run of characters outside [a-z0-9] collapsed to a
// single dash, leading and trailing dashes stripped.
// Empty or all-symbol input yields the empty string.
// NormalizeSlug is idempotent: NormalizeSlug(NormalizeSlug(s)) == NormalizeSlug(s).
func NormalizeSlug(raw string) string {
	lowered := strings.ToLower(raw)
	dashed := slugSeparatorRegex.ReplaceAllString(lowered, "-")
	return strings.Trim(dashed, "-")
}
