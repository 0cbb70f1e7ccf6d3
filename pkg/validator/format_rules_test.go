package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/newsletter/pkg/validator"
)

func TestValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"simple", "ursula_le_guin@gmail.com", true},
		{"subdomain and plus", "test.user+tag@sub.example.com", true},
		{"empty", "", false},
		{"whitespace", " ", false},
		{"missing at", "johndoe.com", false},
		{"missing local part", "@gmail.com", false},
		{"missing domain", "user@", false},
		{"undotted domain", "user@localhost", false},
		{"empty label", "user@example..com", false},
		{"trailing dot", "user@example.com.", false},
		{"display name", "John <john@example.com>", false},
		{"surrounding spaces", " john@example.com ", false},
		{"two ats", "a@b@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rule := validator.ValidEmail("email", tt.value)
			assert.Equal(t, tt.want, rule.Check())
			assert.Equal(t, "validation.email", rule.Error.TranslationKey)
		})
	}
}
