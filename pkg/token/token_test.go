package token_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/pkg/token"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("shape", func(t *testing.T) {
		t.Parallel()
		tok, err := token.Generate()
		require.NoError(t, err)
		assert.Len(t, tok, token.Length)
		assert.True(t, token.Valid(tok))
	})

	t.Run("distinct values", func(t *testing.T) {
		t.Parallel()
		seen := make(map[string]struct{}, 1000)
		for range 1000 {
			tok, err := token.Generate()
			require.NoError(t, err)
			_, dup := seen[tok]
			require.False(t, dup, "duplicate token %q", tok)
			seen[tok] = struct{}{}
		}
	})
}

func TestValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"generated shape", "aB3dE5gH7jK9mN1pQ3sT5vW7y", true},
		{"all digits", strings.Repeat("7", token.Length), true},
		{"empty", "", false},
		{"too short", strings.Repeat("a", token.Length-1), false},
		{"too long", strings.Repeat("a", token.Length+1), false},
		{"dash", strings.Repeat("a", token.Length-1) + "-", false},
		{"space", strings.Repeat("a", token.Length-1) + " ", false},
		{"non-ascii", strings.Repeat("a", token.Length-2) + "é", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, token.Valid(tt.value))
		})
	}
}
