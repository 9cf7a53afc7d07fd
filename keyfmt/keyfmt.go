// Package keyfmt turns snake_case resource names into English display
// labels ("apply_changes" -> "Apply changes").
package keyfmt

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// Label converts a resource key into a sentence-case label. The first
// underscore-separated segment is capitalized (first letter upper, the rest
// lower); later segments are kept as-is. Segments are joined with a single
// space, so consecutive underscores produce consecutive spaces.
func Label(key string) string {
	if key == "" {
		return key
	}
	parts := strings.Split(key, "_")
	parts[0] = capitalize(parts[0])
	return strings.Join(parts, " ")
}

// Labels formats every key, preserving order.
func Labels(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = Label(k)
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToTitle(r)) + lower.String(s[size:])
}
