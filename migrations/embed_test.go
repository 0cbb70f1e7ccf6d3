package migrations_test

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/migrations"
)

func TestFS(t *testing.T) {
	t.Parallel()

	names, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	assert.Contains(t, names, "00001_subscriptions.sql")

	raw, err := fs.ReadFile(migrations.FS, "00001_subscriptions.sql")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "-- +goose Up")
	assert.Contains(t, string(raw), "-- +goose Down")
	assert.Contains(t, string(raw), "subscription_tokens")
}
