// Package langmeta provides language display names and code normalization
// shared by the translation prompts and the CLI.
package langmeta

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Normalize parses a BCP-47 code and returns its canonical form
// ("pt-br" -> "pt-BR").
func Normalize(lang string) (string, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return "", fmt.Errorf("invalid language code %q: %w", lang, err)
	}
	return tag.String(), nil
}

// Name returns the English name of a language ("ar" -> "Arabic").
// Unknown or invalid codes are returned unchanged.
func Name(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	if n := display.English.Tags().Name(tag); n != "" {
		return n
	}
	return lang
}

// NativeName returns the language's name in itself ("ar" -> "العربية").
// Unknown or invalid codes are returned unchanged.
func NativeName(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	if n := display.Self.Name(tag); n != "" {
		return n
	}
	return lang
}
