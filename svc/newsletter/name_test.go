package newsletter_test

import (
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/pkg/validator"
	"github.com/dmitrymomot/newsletter/svc/newsletter"
)

func TestParseName(t *testing.T) {
	t.Parallel()

	t.Run("accepts names up to the limit and keeps them verbatim", func(t *testing.T) {
		t.Parallel()

		graphemes := []string{"a", "ё", "é", "🇺🇦", "👩‍💻", "字"}
		for _, g := range graphemes {
			for n := 1; n <= newsletter.MaxNameLength; n++ {
				raw := strings.Repeat(g, n)
				name, err := newsletter.ParseName(raw)
				require.NoError(t, err, "%q x %d", g, n)
				assert.Equal(t, raw, name.String())
			}
		}
	})

	t.Run("boundary", func(t *testing.T) {
		t.Parallel()

		_, err := newsletter.ParseName(strings.Repeat("ё", 60))
		assert.NoError(t, err)

		_, err = newsletter.ParseName(strings.Repeat("ё", 61))
		require.Error(t, err)
		assert.True(t, validator.ExtractValidationErrors(err).Has("name"))

		_, err = newsletter.ParseName(strings.Repeat("a", 256))
		assert.Error(t, err)
	})

	t.Run("blank names", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"", " ", "\t\n", "   "} {
			_, err := newsletter.ParseName(raw)
			assert.Error(t, err, "%q", raw)
		}
	})

	t.Run("forbidden characters", func(t *testing.T) {
		t.Parallel()

		for _, r := range `/\()"<>{}` {
			for _, raw := range []string{string(r), "Ursula " + string(r), string(r) + " Le Guin"} {
				_, err := newsletter.ParseName(raw)
				assert.Error(t, err, "%q", raw)
			}
		}
	})

	t.Run("malformed bytes and control characters", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"\xff\xfe", "le guin\x00", "a\xc3", "\x00", "Ursula\nLe Guin", "\x1b[2J"} {
			_, err := newsletter.ParseName(raw)
			require.Error(t, err, "%q", raw)
			assert.True(t, validator.ExtractValidationErrors(err).Has("name"), "%q", raw)
		}
	})

	t.Run("ordinary names", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"Ursula Le Guin", "le guin", "dhairya nadapara", "Zoë O'Brien-Smith", " padded "} {
			name, err := newsletter.ParseName(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, raw, name.String())
		}
	})
}

func FuzzParseName(f *testing.F) {
	for _, seed := range []string{"", " ", "le guin", "Zoë O'Brien-Smith", "👩‍💻", "\xff\xfe", "a\x00b", "{x}", strings.Repeat("ё", 61)} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		name, err := newsletter.ParseName(raw)
		if err != nil {
			assert.True(t, validator.IsValidationError(err))
			return
		}
		assert.Equal(t, raw, name.String())
		assert.True(t, utf8.ValidString(raw))
		assert.NotEmpty(t, strings.TrimSpace(raw))
		assert.Negative(t, strings.IndexFunc(raw, unicode.IsControl))
		assert.False(t, strings.ContainsAny(raw, `/\()"<>{}`))
	})
}
