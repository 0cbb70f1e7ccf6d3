package newsletter

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/newsletter/pkg/validator"
)

// Status is the subscription state of a subscriber.
type Status string

const (
	StatusPending   Status = "pending_confirmation"
	StatusConfirmed Status = "confirmed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusConfirmed
}

// NewSubscriber is validated signup input on its way to the store.
type NewSubscriber struct {
	Name  SubscriberName
	Email SubscriberEmail
}

// ParseNewSubscriber validates both fields and reports every failure at once.
func ParseNewSubscriber(rawName, rawEmail string) (NewSubscriber, error) {
	name, nameErr := ParseName(rawName)
	email, emailErr := ParseEmail(rawEmail)
	if err := validator.Merge(nameErr, emailErr); err != nil {
		return NewSubscriber{}, err
	}
	return NewSubscriber{Name: name, Email: email}, nil
}

// Subscriber is a persisted subscription.
type Subscriber struct {
	ID           uuid.UUID
	Email        SubscriberEmail
	Name         SubscriberName
	SubscribedAt time.Time
	Status       Status
}

// Record is a subscriber row as stored, before domain validation.
type Record struct {
	ID           uuid.UUID
	Email        string
	Name         string
	SubscribedAt time.Time
	Status       string
}

// Subscriber validates r. A row that no longer satisfies the domain rules
// yields a *RecordError carrying the row id.
func (r Record) Subscriber() (Subscriber, error) {
	email, emailErr := ParseEmail(r.Email)
	name, nameErr := ParseName(r.Name)
	if err := validator.Merge(emailErr, nameErr); err != nil {
		return Subscriber{}, &RecordError{SubscriberID: r.ID, Err: err}
	}

	status := Status(r.Status)
	if !status.Valid() {
		return Subscriber{}, &RecordError{SubscriberID: r.ID, Err: &unknownStatusError{status: r.Status}}
	}

	return Subscriber{
		ID:           r.ID,
		Email:        email,
		Name:         name,
		SubscribedAt: r.SubscribedAt,
		Status:       status,
	}, nil
}

// Recipient validates r for delivery. Only the address and status are
// checked; a stored name that no longer parses is left as the zero value.
func (r Record) Recipient() (Subscriber, error) {
	email, err := ParseEmail(r.Email)
	if err != nil {
		return Subscriber{}, &RecordError{SubscriberID: r.ID, Err: err}
	}

	status := Status(r.Status)
	if !status.Valid() {
		return Subscriber{}, &RecordError{SubscriberID: r.ID, Err: &unknownStatusError{status: r.Status}}
	}

	name, _ := ParseName(r.Name)
	return Subscriber{
		ID:           r.ID,
		Email:        email,
		Name:         name,
		SubscribedAt: r.SubscribedAt,
		Status:       status,
	}, nil
}

type unknownStatusError struct {
	status string
}

func (e *unknownStatusError) Error() string {
	return fmt.Sprintf("unknown subscription status %q", e.status)
}

// IssueContent holds the two renditions of an issue body.
type IssueContent struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}

// Issue is a newsletter issue to publish.
type Issue struct {
	Title   string       `json:"title"`
	Content IssueContent `json:"content"`
}

// Validate requires a title and at least one non-blank body.
func (i Issue) Validate() error {
	return validator.Apply(
		validator.RequiredString("title", i.Title),
		validator.Rule{
			Check: func() bool {
				return strings.TrimSpace(i.Content.HTML) != "" || strings.TrimSpace(i.Content.Text) != ""
			},
			Error: validator.ValidationError{
				Field:          "content",
				Message:        "html or text content is required",
				TranslationKey: "validation.required",
				TranslationValues: map[string]any{
					"field": "content",
				},
			},
		},
	)
}

// PublishReport summarises a publish run.
type PublishReport struct {
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
}
