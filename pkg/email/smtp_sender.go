package email

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// smtpDialer is satisfied by *gomail.Dialer.
type smtpDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpSender struct {
	dialer smtpDialer
	config Config
}

// NewSMTPSender creates an email sender that relays through an SMTP server.
// Each message opens its own connection; there is no retry.
func NewSMTPSender(cfg Config) (EmailSender, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("%w: SMTPHost is required", ErrInvalidConfig)
	}
	if cfg.SMTPPort <= 0 {
		return nil, fmt.Errorf("%w: SMTPPort must be positive", ErrInvalidConfig)
	}
	if err := cfg.validateSender(); err != nil {
		return nil, err
	}

	return newSMTPSender(gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword), cfg), nil
}

func newSMTPSender(d smtpDialer, cfg Config) *smtpSender {
	return &smtpSender{dialer: d, config: cfg}
}

func (s *smtpSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	msg := s.message(params)

	// gomail has no context support; run the dial in the background and stop
	// waiting when ctx is done.
	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return errors.Join(ErrFailedToSendEmail, err)
		}
		return nil
	case <-ctx.Done():
		return errors.Join(ErrFailedToSendEmail, ctx.Err())
	}
}

func (s *smtpSender) message(params SendEmailParams) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.config.SenderEmail, s.config.SenderName)
	if s.config.SupportEmail != "" {
		msg.SetHeader("Reply-To", s.config.SupportEmail)
	}
	msg.SetHeader("To", params.SendTo)
	msg.SetHeader("Subject", params.Subject)
	if params.Tag != "" {
		msg.SetHeader("X-Tag", params.Tag)
	}

	switch {
	case params.BodyText != "" && params.BodyHTML != "":
		msg.SetBody("text/plain", params.BodyText)
		msg.AddAlternative("text/html", params.BodyHTML)
	case params.BodyHTML != "":
		msg.SetBody("text/html", params.BodyHTML)
	default:
		msg.SetBody("text/plain", params.BodyText)
	}
	return msg
}
