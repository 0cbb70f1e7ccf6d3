package newsletter

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// Outcomes returned by Service.
	ErrInvalidInput = errors.New("newsletter: invalid input")
	ErrInvalidToken = errors.New("newsletter: invalid subscription token")
	ErrStoreFailure = errors.New("newsletter: store failure")
	ErrMailFailure  = errors.New("newsletter: mail delivery failure")

	// Store conditions.
	ErrSubscriberNotFound = errors.New("newsletter: subscriber not found")
	ErrTokenCollision     = errors.New("newsletter: subscription token already in use")
	ErrEmailTaken         = errors.New("newsletter: email already subscribed")
)

// RecordError reports a stored subscriber that fails domain validation.
// Publish skips such records.
type RecordError struct {
	SubscriberID uuid.UUID
	Err          error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("invalid subscriber record %s: %v", e.SubscriberID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// DeliveryError identifies the recipient whose send aborted a publish run.
// It matches ErrMailFailure with errors.Is.
type DeliveryError struct {
	SubscriberID uuid.UUID
	Email        string
	Err          error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to send newsletter issue to %s: %v", e.Email, e.Err)
}

func (e *DeliveryError) Unwrap() []error {
	return []error{ErrMailFailure, e.Err}
}
