// Package email provides a provider-agnostic interface for sending
// transactional emails.
//
// # Architecture
//
// Everything is built around the EmailSender interface. Implementations:
//   - Postmark (NewPostmarkClient) using the Postmark transactional API
//   - Amazon SES v2 (NewSESSender)
//   - SMTP relay (NewSMTPSender) via gomail
//   - DevSender for local development, which writes messages to disk
//
// NewSender picks one from Config.Provider and wraps it with WithTimeout so a
// hung provider cannot stall the caller past EMAIL_SEND_TIMEOUT.
//
// Every implementation validates SendEmailParams before talking to the
// provider. A message needs a bare recipient address, a subject and at least
// one of BodyHTML or BodyText; sending both produces a multipart message.
//
// # Usage
//
//	var cfg email.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
//	sender, err := email.NewSender(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//
//	html, err := templates.Render(ctx, confirmationEmail(link))
//	if err != nil {
//	    return err
//	}
//
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:   "user@example.com",
//	    Subject:  "Welcome!",
//	    BodyHTML: html,
//	    BodyText: text,
//	    Tag:      "confirmation",
//	})
//
// # Error Handling
//
//   - ErrInvalidConfig: configuration validation failed
//   - ErrInvalidParams: message validation failed
//   - ErrFailedToSendEmail: the provider did not accept the message
//   - ErrSendTimeout: the send ran past the configured timeout (always joined
//     with ErrFailedToSendEmail)
//
// The senders never retry.
package email
