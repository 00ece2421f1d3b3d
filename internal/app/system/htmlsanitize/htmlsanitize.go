// Package htmlsanitize renders user-authored text safely into templates.
//
// Post and comment text is plain text from the author's point of view,
// but it is rendered inside HTML pages; everything passes through a
// strict bluemonday policy and newlines become <br> tags.
package htmlsanitize

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text sanitizes user-authored text for direct template embedding,
// converting newlines to <br> so multi-paragraph posts keep their shape.
func Text(s string) template.HTML {
	clean := policy.Sanitize(s)
	clean = strings.ReplaceAll(clean, "\r\n", "\n")
	clean = strings.ReplaceAll(clean, "\n", "<br>")
	return template.HTML(clean)
}
