// Package normalize provides helper functions for consistent string normalization
// across the application. Use these helpers instead of scattered strings.ToLower
// and strings.TrimSpace calls to ensure consistent behavior.
package normalize

import (
	"regexp"
	"strings"
)

// Host normalizes a request or tenant host: trims whitespace, lowercases, and
// strips any port. "Shop.Example.COM:8080" and "shop.example.com" compare
// equal after normalization.
func Host(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.LastIndexByte(s, ':'); i >= 0 && !strings.HasSuffix(s, "]") {
		// Leave bare IPv6 literals alone; anything else past the colon
		// is a port.
		if strings.Count(s, ":") == 1 || strings.HasPrefix(s, "[") {
			s = s[:i]
			s = strings.TrimPrefix(s, "[")
			s = strings.TrimSuffix(s, "]")
		}
	}
	return s
}

// Slug normalizes a content or tenant slug by trimming whitespace and
// converting to lowercase. Validation is separate; see ValidSlug.
func Slug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether s is a well-formed slug: lowercase alphanumerics
// separated by single hyphens, no leading or trailing hyphen.
func ValidSlug(s string) bool {
	return s != "" && len(s) <= 200 && slugPattern.MatchString(s)
}

// Name normalizes a display name by trimming whitespace.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam normalizes a query parameter by trimming whitespace.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
