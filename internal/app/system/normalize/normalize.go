// internal/app/system/normalize/normalize.go
package normalize

import (
	"strings"
)

// QueryParam trims surrounding whitespace from a raw query parameter.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Username lowercases and trims a username for comparison and storage
// of the canonical login form. Display casing is kept on the user record.
func Username(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Slug canonicalizes a group slug: trimmed, lowercased, spaces collapsed
// to hyphens. It does not attempt transliteration; slugs are expected to
// be entered URL-safe by administrators.
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}
