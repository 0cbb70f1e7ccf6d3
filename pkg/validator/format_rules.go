package validator

import (
	"net/mail"
	"strings"
)

// ValidEmail validates that value is a bare RFC 5322 address such as
// "jane@example.com". Display-name forms ("Jane <jane@example.com>") and
// surrounding whitespace are rejected because the value is later used verbatim
// as a recipient.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return isEmail(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func isEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Name != "" || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}

	// Require a dotted domain without empty labels: "a@b" and "a@b..c" are
	// valid for the parser but undeliverable on the public internet.
	if !strings.Contains(domain, ".") {
		return false
	}
	for label := range strings.SplitSeq(domain, ".") {
		if label == "" {
			return false
		}
	}

	return true
}
