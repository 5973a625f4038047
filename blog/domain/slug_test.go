package domain

import (
	"strings"
	"testing"
)

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "Already normalized",
			raw:      "my-first-post",
			expected: "my-first-post",
		},
		{
			name:     "Upper case is lowered",
			raw:      "My First Post",
			expected: "my-first-post",
		},
		{
			name:     "Symbol runs collapse to one dash",
			raw:      "hello...world!!!again",
			expected: "hello-world-again",
		},
		{
			name:     "Leading and trailing symbols stripped",
			raw:      "--- Release Notes (v2) ---",
			expected: "release-notes-v2",
		},
		{
			name:     "Digits preserved",
			raw:      "Top 10 Go Tips",
			expected: "top-10-go-tips",
		},
		{
			name:     "Empty input",
			raw:      "",
			expected: "",
		},
		{
			name:     "All symbols",
			raw:      "!?#$%",
			expected: "",
		},
		{
			name:     "Unicode treated as separator",
			raw:      "café au lait",
			expected: "caf-au-lait",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeSlug(tt.raw)
			if result != tt.expected {
				t.Errorf("NormalizeSlug(%q) = %q, want %q", tt.raw, result, tt.expected)
			}
		})
	}
}

func TestNormalizeSlugIdempotent(t *testing.T) {
	inputs := []string{
		"My First Post",
		"hello...world",
		"--edge--",
		"",
		"already-normal",
		"UPPER_case MIXED 123",
	}

	for _, raw := range inputs {
		once := NormalizeSlug(raw)
		twice := NormalizeSlug(once)
		if once != twice {
			t.Errorf("NormalizeSlug not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}

func TestNormalizeSlugOutputCharset(t *testing.T) {
	inputs := []string{
		"My First Post!",
		"  spaces  everywhere  ",
		"snake_case_title",
		"UTF-8: ümläut — dash",
		"1234",
	}

	for _, raw := range inputs {
		out := NormalizeSlug(raw)
		if strings.HasPrefix(out, "-") || strings.HasSuffix(out, "-") {
			t.Errorf("NormalizeSlug(%q) = %q has leading or trailing dash", raw, out)
		}
		if strings.Contains(out, "--") {
			t.Errorf("NormalizeSlug(%q) = %q contains a double dash", raw, out)
		}
		for _, r := range out {
			if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
				t.Errorf("NormalizeSlug(%q) = %q contains invalid rune %q", raw, out, r)
			}
		}
	}
}
