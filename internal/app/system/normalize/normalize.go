// Package normalize canonicalizes user-supplied identifiers before they are
// stored or compared.
package normalize

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Email trims and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace and keeps case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Code trims and uppercases identifiers such as NIC numbers and RTOM
// abbreviations.
func Code(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Fold returns the case-folded form used for case-insensitive matches.
func Fold(s string) string {
	return text.Fold(strings.TrimSpace(s))
}
