package newsletter

import (
	"context"
	"iter"

	"github.com/google/uuid"
)

// Store persists subscribers and their confirmation tokens.
type Store interface {
	// Begin starts the unit of work used by signup.
	Begin(ctx context.Context) (Tx, error)

	// SubscriberIDByToken resolves a confirmation token. An unknown token
	// returns false and no error.
	SubscriberIDByToken(ctx context.Context, token string) (uuid.UUID, bool, error)

	// MarkConfirmed sets the subscriber's status to confirmed. Confirming an
	// already confirmed subscriber succeeds.
	MarkConfirmed(ctx context.Context, id uuid.UUID) error

	// ConfirmedSubscribers streams confirmed subscribers. Rows with an
	// address that fails validation are yielded as *RecordError and iteration
	// continues; any other error ends the sequence. Each call starts a fresh
	// read.
	ConfirmedSubscribers(ctx context.Context) iter.Seq2[Subscriber, error]
}

// Tx is a store transaction. Nothing written through it is visible to other
// readers before Commit. Rollback after Commit is a no-op.
type Tx interface {
	// FindSubscriberByEmail returns ErrSubscriberNotFound when no row matches.
	FindSubscriberByEmail(ctx context.Context, email SubscriberEmail) (Subscriber, error)

	// InsertPendingSubscriber creates a pending subscriber stamped with the
	// current time and returns its id.
	InsertPendingSubscriber(ctx context.Context, sub NewSubscriber) (uuid.UUID, error)

	// StoreToken links token to the subscriber. It returns ErrTokenCollision
	// if the token is already taken; the transaction stays usable.
	StoreToken(ctx context.Context, subscriberID uuid.UUID, token string) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
