// Package postgres implements newsletter.Store on top of database/sql.
// The handle is expected to come from pg.OpenDB, so driver errors are
// pgconn errors and can be classified with the pg helpers.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"iter"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/newsletter/pkg/pg"
	"github.com/dmitrymomot/newsletter/svc/newsletter"
)

const (
	queryFindByEmail = `SELECT id, email, name, subscribed_at, status FROM subscriptions WHERE email = $1`

	queryInsertSubscriber = `INSERT INTO subscriptions (id, email, name, subscribed_at, status) VALUES ($1, $2, $3, $4, $5)`

	queryInsertToken = `INSERT INTO subscription_tokens (subscription_token, subscriber_id) VALUES ($1, $2) ON CONFLICT (subscription_token) DO NOTHING`

	queryIDByToken = `SELECT subscriber_id FROM subscription_tokens WHERE subscription_token = $1`

	queryMarkConfirmed = `UPDATE subscriptions SET status = $1 WHERE id = $2`

	queryConfirmed = `SELECT id, email, name, subscribed_at, status FROM subscriptions WHERE status = $1 ORDER BY subscribed_at, id`
)

// Store is a PostgreSQL-backed newsletter.Store.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source used for subscribed_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Begin(ctx context.Context) (newsletter.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &storeTx{tx: tx, now: s.now}, nil
}

func (s *Store) SubscriberIDByToken(ctx context.Context, token string) (uuid.UUID, bool, error) {
	var id uuid.UUID
	if err := s.db.QueryRowContext(ctx, queryIDByToken, token).Scan(&id); err != nil {
		if pg.IsNotFoundError(err) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	return id, true, nil
}

// MarkConfirmed is idempotent. An id with no row returns
// newsletter.ErrSubscriberNotFound.
func (s *Store) MarkConfirmed(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, queryMarkConfirmed, string(newsletter.StatusConfirmed), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return newsletter.ErrSubscriberNotFound
	}
	return nil
}

// ConfirmedSubscribers streams rows straight from the cursor. Breaking out of
// the loop closes it.
func (s *Store) ConfirmedSubscribers(ctx context.Context) iter.Seq2[newsletter.Subscriber, error] {
	return func(yield func(newsletter.Subscriber, error) bool) {
		rows, err := s.db.QueryContext(ctx, queryConfirmed, string(newsletter.StatusConfirmed))
		if err != nil {
			yield(newsletter.Subscriber{}, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			r, err := scanRecord(rows)
			if err != nil {
				yield(newsletter.Subscriber{}, err)
				return
			}
			if !yield(r.Recipient()) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(newsletter.Subscriber{}, err)
		}
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (newsletter.Record, error) {
	var r newsletter.Record
	err := row.Scan(&r.ID, &r.Email, &r.Name, &r.SubscribedAt, &r.Status)
	return r, err
}

type storeTx struct {
	tx  *sql.Tx
	now func() time.Time
}

func (t *storeTx) FindSubscriberByEmail(ctx context.Context, email newsletter.SubscriberEmail) (newsletter.Subscriber, error) {
	r, err := scanRecord(t.tx.QueryRowContext(ctx, queryFindByEmail, email.String()))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return newsletter.Subscriber{}, newsletter.ErrSubscriberNotFound
		}
		return newsletter.Subscriber{}, err
	}
	return r.Subscriber()
}

func (t *storeTx) InsertPendingSubscriber(ctx context.Context, sub newsletter.NewSubscriber) (uuid.UUID, error) {
	id := uuid.New()
	_, err := t.tx.ExecContext(ctx, queryInsertSubscriber,
		id,
		sub.Email.String(),
		sub.Name.String(),
		t.now().UTC(),
		string(newsletter.StatusPending),
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return uuid.Nil, errors.Join(newsletter.ErrEmailTaken, err)
		}
		return uuid.Nil, err
	}
	return id, nil
}

// StoreToken relies on ON CONFLICT DO NOTHING so a collision does not abort
// the surrounding transaction.
func (t *storeTx) StoreToken(ctx context.Context, subscriberID uuid.UUID, token string) error {
	res, err := t.tx.ExecContext(ctx, queryInsertToken, token, subscriberID)
	if err != nil {
		if pg.IsForeignKeyViolationError(err) {
			return errors.Join(newsletter.ErrSubscriberNotFound, err)
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return newsletter.ErrTokenCollision
	}
	return nil
}

func (t *storeTx) Commit(context.Context) error {
	return t.tx.Commit()
}

func (t *storeTx) Rollback(context.Context) error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
