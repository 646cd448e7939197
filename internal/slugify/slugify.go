// Package slugify derives URL-safe identifiers from display names.
package slugify

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	invalidChars  = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	hyphenRun     = regexp.MustCompile(`-+`)
)

// Make converts a display name to its base slug: lowercase, strip characters
// outside [a-z0-9 -], whitespace runs become single hyphens, hyphen runs
// collapse, leading/trailing hyphens trimmed.
func Make(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = invalidChars.ReplaceAllString(slug, "")
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	slug = hyphenRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// WithSuffix returns the candidate slug for the nth retry: the base slug
// itself for n == 0, then base-1, base-2, ...
func WithSuffix(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
