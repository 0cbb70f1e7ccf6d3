package newsletter

import "github.com/dmitrymomot/newsletter/pkg/validator"

// SubscriberEmail is a validated recipient address.
type SubscriberEmail struct {
	value string
}

// ParseEmail validates raw as a bare email address ("user@example.com").
func ParseEmail(raw string) (SubscriberEmail, error) {
	if err := validator.Apply(
		validator.RequiredString("email", raw),
		validator.PlainText("email", raw),
		validator.ValidEmail("email", raw),
	); err != nil {
		return SubscriberEmail{}, err
	}
	return SubscriberEmail{value: raw}, nil
}

func (e SubscriberEmail) String() string {
	return e.value
}
