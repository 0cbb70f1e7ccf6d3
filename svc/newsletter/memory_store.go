package newsletter

import (
	"context"
	"errors"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

var errTxDone = errors.New("newsletter: transaction already committed or rolled back")

// MemoryStore is an in-memory Store. Transactions stage their writes and
// apply them atomically on Commit, enforcing the same uniqueness rules as
// the PostgreSQL schema.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
	order   []uuid.UUID
	tokens  map[string]uuid.UUID
	now     func() time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithMemoryClock overrides the time source used for subscribed_at.
func WithMemoryClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		records: make(map[uuid.UUID]Record),
		tokens:  make(map[string]uuid.UUID),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores r as is, without validation. It is meant for seeding fixtures,
// including rows that would fail validation on read.
func (s *MemoryStore) Put(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(r)
}

func (s *MemoryStore) put(r Record) {
	if _, exists := s.records[r.ID]; !exists {
		s.order = append(s.order, r.ID)
	}
	s.records[r.ID] = r
}

// Records returns a copy of all rows in insertion order.
func (s *MemoryStore) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out
}

// Tokens returns the tokens issued to a subscriber, sorted.
func (s *MemoryStore) Tokens(subscriberID uuid.UUID) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	for tok, id := range s.tokens {
		if id == subscriberID {
			out = append(out, tok)
		}
	}
	slices.Sort(out)
	return out
}

func (s *MemoryStore) Begin(ctx context.Context) (Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &memoryTx{store: s, tokens: make(map[string]uuid.UUID)}, nil
}

func (s *MemoryStore) SubscriberIDByToken(ctx context.Context, token string) (uuid.UUID, bool, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.tokens[token]
	return id, ok, nil
}

func (s *MemoryStore) MarkConfirmed(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok {
		return ErrSubscriberNotFound
	}
	r.Status = string(StatusConfirmed)
	s.records[id] = r
	return nil
}

func (s *MemoryStore) ConfirmedSubscribers(ctx context.Context) iter.Seq2[Subscriber, error] {
	return func(yield func(Subscriber, error) bool) {
		s.mu.RLock()
		var rows []Record
		for _, id := range s.order {
			if r := s.records[id]; r.Status == string(StatusConfirmed) {
				rows = append(rows, r)
			}
		}
		s.mu.RUnlock()

		for _, r := range rows {
			if err := ctx.Err(); err != nil {
				yield(Subscriber{}, err)
				return
			}
			if !yield(r.Recipient()) {
				return
			}
		}
	}
}

type memoryTx struct {
	store   *MemoryStore
	inserts []Record
	tokens  map[string]uuid.UUID
	done    bool
}

func (tx *memoryTx) FindSubscriberByEmail(ctx context.Context, email SubscriberEmail) (Subscriber, error) {
	if tx.done {
		return Subscriber{}, errTxDone
	}
	if err := ctx.Err(); err != nil {
		return Subscriber{}, err
	}

	for _, r := range tx.inserts {
		if r.Email == email.String() {
			return r.Subscriber()
		}
	}

	tx.store.mu.RLock()
	defer tx.store.mu.RUnlock()

	for _, id := range tx.store.order {
		if r := tx.store.records[id]; r.Email == email.String() {
			return r.Subscriber()
		}
	}
	return Subscriber{}, ErrSubscriberNotFound
}

func (tx *memoryTx) InsertPendingSubscriber(ctx context.Context, sub NewSubscriber) (uuid.UUID, error) {
	if tx.done {
		return uuid.Nil, errTxDone
	}
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}

	r := Record{
		ID:           uuid.New(),
		Email:        sub.Email.String(),
		Name:         sub.Name.String(),
		SubscribedAt: tx.store.now().UTC(),
		Status:       string(StatusPending),
	}
	tx.inserts = append(tx.inserts, r)
	return r.ID, nil
}

func (tx *memoryTx) StoreToken(ctx context.Context, subscriberID uuid.UUID, token string) error {
	if tx.done {
		return errTxDone
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, staged := tx.tokens[token]; staged {
		return ErrTokenCollision
	}

	known := slices.ContainsFunc(tx.inserts, func(r Record) bool { return r.ID == subscriberID })

	tx.store.mu.RLock()
	_, taken := tx.store.tokens[token]
	if !known {
		_, known = tx.store.records[subscriberID]
	}
	tx.store.mu.RUnlock()

	if taken {
		return ErrTokenCollision
	}
	if !known {
		return ErrSubscriberNotFound
	}

	tx.tokens[token] = subscriberID
	return nil
}

func (tx *memoryTx) Commit(ctx context.Context) error {
	if tx.done {
		return errTxDone
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range tx.inserts {
		for _, existing := range s.records {
			if existing.Email == r.Email {
				return ErrEmailTaken
			}
		}
	}
	for tok := range tx.tokens {
		if _, taken := s.tokens[tok]; taken {
			return ErrTokenCollision
		}
	}

	for _, r := range tx.inserts {
		s.put(r)
	}
	for tok, id := range tx.tokens {
		s.tokens[tok] = id
	}
	tx.done = true
	return nil
}

func (tx *memoryTx) Rollback(context.Context) error {
	tx.done = true
	tx.inserts = nil
	tx.tokens = nil
	return nil
}
