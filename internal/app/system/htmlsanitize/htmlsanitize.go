// Package htmlsanitize strips markup from free-text fields (remarks,
// reasons, addresses) before they are stored.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes every tag from s, decodes entities and trims whitespace.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Texts applies Text to each element and drops elements that end up empty.
func Texts(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := Text(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
