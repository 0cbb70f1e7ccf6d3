package newsletter_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/svc/newsletter"
)

func mustNewSubscriber(t *testing.T, name, email string) newsletter.NewSubscriber {
	t.Helper()
	sub, err := newsletter.ParseNewSubscriber(name, email)
	require.NoError(t, err)
	return sub
}

func TestMemoryStore_Transaction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	t.Run("writes are invisible until commit", func(t *testing.T) {
		t.Parallel()

		store := newsletter.NewMemoryStore(newsletter.WithMemoryClock(func() time.Time { return now }))
		sub := mustNewSubscriber(t, "le guin", "ursula_le_guin@gmail.com")

		tx, err := store.Begin(ctx)
		require.NoError(t, err)

		id, err := tx.InsertPendingSubscriber(ctx, sub)
		require.NoError(t, err)
		require.NoError(t, tx.StoreToken(ctx, id, "tokenAAAAAAAAAAAAAAAAAAAA"))

		found, err := tx.FindSubscriberByEmail(ctx, sub.Email)
		require.NoError(t, err)
		assert.Equal(t, id, found.ID)

		assert.Empty(t, store.Records())
		_, ok, err := store.SubscriberIDByToken(ctx, "tokenAAAAAAAAAAAAAAAAAAAA")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, tx.Commit(ctx))
		require.NoError(t, tx.Rollback(ctx), "rollback after commit is a no-op")

		records := store.Records()
		require.Len(t, records, 1)
		assert.Equal(t, newsletter.Record{
			ID:           id,
			Email:        "ursula_le_guin@gmail.com",
			Name:         "le guin",
			SubscribedAt: now,
			Status:       "pending_confirmation",
		}, records[0])

		got, ok, err := store.SubscriberIDByToken(ctx, "tokenAAAAAAAAAAAAAAAAAAAA")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("rollback discards staged writes", func(t *testing.T) {
		t.Parallel()

		store := newsletter.NewMemoryStore()
		tx, err := store.Begin(ctx)
		require.NoError(t, err)

		id, err := tx.InsertPendingSubscriber(ctx, mustNewSubscriber(t, "le guin", "ursula_le_guin@gmail.com"))
		require.NoError(t, err)
		require.NoError(t, tx.StoreToken(ctx, id, "tokenAAAAAAAAAAAAAAAAAAAA"))
		require.NoError(t, tx.Rollback(ctx))

		assert.Empty(t, store.Records())
		assert.Empty(t, store.Tokens(id))
		assert.Error(t, tx.Commit(ctx))
	})

	t.Run("token collision", func(t *testing.T) {
		t.Parallel()

		store := newsletter.NewMemoryStore()
		existing := uuid.New()
		store.Put(newsletter.Record{ID: existing, Email: "dhairya@zuru.tech", Name: "dhairya", Status: "pending_confirmation"})

		tx, err := store.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.StoreToken(ctx, existing, "tokenAAAAAAAAAAAAAAAAAAAA"))
		require.NoError(t, tx.Commit(ctx))

		tx, err = store.Begin(ctx)
		require.NoError(t, err)
		id, err := tx.InsertPendingSubscriber(ctx, mustNewSubscriber(t, "le guin", "ursula_le_guin@gmail.com"))
		require.NoError(t, err)

		err = tx.StoreToken(ctx, id, "tokenAAAAAAAAAAAAAAAAAAAA")
		assert.ErrorIs(t, err, newsletter.ErrTokenCollision)
		require.NoError(t, tx.StoreToken(ctx, id, "tokenBBBBBBBBBBBBBBBBBBBB"), "transaction stays usable")
		require.NoError(t, tx.Commit(ctx))
	})

	t.Run("token for unknown subscriber", func(t *testing.T) {
		t.Parallel()

		store := newsletter.NewMemoryStore()
		tx, err := store.Begin(ctx)
		require.NoError(t, err)
		assert.ErrorIs(t, tx.StoreToken(ctx, uuid.New(), "tokenAAAAAAAAAAAAAAAAAAAA"), newsletter.ErrSubscriberNotFound)
	})

	t.Run("email uniqueness checked on commit", func(t *testing.T) {
		t.Parallel()

		store := newsletter.NewMemoryStore()
		sub := mustNewSubscriber(t, "le guin", "ursula_le_guin@gmail.com")

		first, err := store.Begin(ctx)
		require.NoError(t, err)
		second, err := store.Begin(ctx)
		require.NoError(t, err)

		_, err = first.InsertPendingSubscriber(ctx, sub)
		require.NoError(t, err)
		_, err = second.InsertPendingSubscriber(ctx, sub)
		require.NoError(t, err)

		require.NoError(t, first.Commit(ctx))
		assert.ErrorIs(t, second.Commit(ctx), newsletter.ErrEmailTaken)
		require.NoError(t, second.Rollback(ctx))
		assert.Len(t, store.Records(), 1)
	})

	t.Run("find missing email", func(t *testing.T) {
		t.Parallel()

		store := newsletter.NewMemoryStore()
		tx, err := store.Begin(ctx)
		require.NoError(t, err)
		_, err = tx.FindSubscriberByEmail(ctx, mustNewSubscriber(t, "x", "nobody@example.com").Email)
		assert.ErrorIs(t, err, newsletter.ErrSubscriberNotFound)
	})
}

func TestMemoryStore_MarkConfirmed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newsletter.NewMemoryStore()
	id := uuid.New()
	store.Put(newsletter.Record{ID: id, Email: "dhairya@zuru.tech", Name: "dhairya", Status: "pending_confirmation"})

	require.NoError(t, store.MarkConfirmed(ctx, id))
	require.NoError(t, store.MarkConfirmed(ctx, id))
	assert.Equal(t, "confirmed", store.Records()[0].Status)

	assert.ErrorIs(t, store.MarkConfirmed(ctx, uuid.New()), newsletter.ErrSubscriberNotFound)
}

func TestMemoryStore_ConfirmedSubscribers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newsletter.NewMemoryStore()

	good1, bad, pending, good2 := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	store.Put(newsletter.Record{ID: good1, Email: "a@example.com", Name: "a", Status: "confirmed"})
	store.Put(newsletter.Record{ID: bad, Email: "my-email-is-invalid", Name: "b", Status: "confirmed"})
	store.Put(newsletter.Record{ID: pending, Email: "c@example.com", Name: "c", Status: "pending_confirmation"})
	store.Put(newsletter.Record{ID: good2, Email: "d@example.com", Name: "d", Status: "confirmed"})

	var (
		ids     []uuid.UUID
		skipped []uuid.UUID
	)
	for sub, err := range store.ConfirmedSubscribers(ctx) {
		if err != nil {
			var recErr *newsletter.RecordError
			require.ErrorAs(t, err, &recErr)
			skipped = append(skipped, recErr.SubscriberID)
			continue
		}
		ids = append(ids, sub.ID)
	}
	assert.Equal(t, []uuid.UUID{good1, good2}, ids)
	assert.Equal(t, []uuid.UUID{bad}, skipped)

	t.Run("restartable and breakable", func(t *testing.T) {
		count := 0
		for range store.ConfirmedSubscribers(ctx) {
			count++
			break
		}
		assert.Equal(t, 1, count)

		count = 0
		for range store.ConfirmedSubscribers(ctx) {
			count++
		}
		assert.Equal(t, 3, count)
	})

	t.Run("cancelled context ends the sequence", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		var errs []error
		for _, err := range store.ConfirmedSubscribers(cctx) {
			errs = append(errs, err)
		}
		require.Len(t, errs, 1)
		assert.ErrorIs(t, errs[0], context.Canceled)
	})
}
