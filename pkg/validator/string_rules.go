package validator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// MaxGraphemes limits value to max user-perceived characters.
// Length is counted in extended grapheme clusters, so "é" written as
// e + combining accent and a flag emoji each count as one.
func MaxGraphemes(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return uniseg.GraphemeClusterCount(value) <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at most %d characters long", max),
			TranslationKey: "validation.max_length",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}

// ExcludesRunes fails when value contains any rune from forbidden.
func ExcludesRunes(field, value, forbidden string) Rule {
	return Rule{
		Check: func() bool {
			return !strings.ContainsAny(value, forbidden)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must not contain any of %s", forbidden),
			TranslationKey: "validation.excludes",
			TranslationValues: map[string]any{
				"field":     field,
				"forbidden": forbidden,
			},
		},
	}
}

// PlainText fails on malformed UTF-8 and on control characters, NUL included.
func PlainText(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return isPlainText(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be valid text without control characters",
			TranslationKey: "validation.plain_text",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func isPlainText(value string) bool {
	if !utf8.ValidString(value) {
		return false
	}
	return strings.IndexFunc(value, unicode.IsControl) < 0
}
