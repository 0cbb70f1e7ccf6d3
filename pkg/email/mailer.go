package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrymomot/newsletter/pkg/validator"
)

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`             // Email address of the recipient
	Subject  string `json:"subject"`             // Subject of the email
	BodyText string `json:"body_text,omitempty"` // Plain text alternative
	BodyHTML string `json:"body_html,omitempty"` // HTML body of the email
	Tag      string `json:"tag,omitempty"`       // Optional
}

// Validate checks that the message is deliverable: a bare recipient address,
// a subject and at least one body.
func (p SendEmailParams) Validate() error {
	if strings.TrimSpace(p.SendTo) == "" {
		return fmt.Errorf("%w: SendTo is required", ErrInvalidParams)
	}
	if !validator.ValidEmail("send_to", p.SendTo).Check() {
		return fmt.Errorf("%w: SendTo must be a valid email address", ErrInvalidParams)
	}
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.BodyHTML) == "" && strings.TrimSpace(p.BodyText) == "" {
		return fmt.Errorf("%w: BodyHTML or BodyText is required", ErrInvalidParams)
	}
	return nil
}

func isValidAddress(s string) bool {
	return validator.ValidEmail("address", s).Check()
}
