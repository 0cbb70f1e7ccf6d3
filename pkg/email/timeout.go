package email

import (
	"context"
	"errors"
	"time"
)

type timeoutSender struct {
	next    EmailSender
	timeout time.Duration
}

// WithTimeout bounds every SendEmail call on next by d. A call that runs out of
// time fails with ErrSendTimeout joined with ErrFailedToSendEmail.
// A non-positive d returns next unchanged.
func WithTimeout(next EmailSender, d time.Duration) EmailSender {
	if d <= 0 {
		return next
	}
	return &timeoutSender{next: next, timeout: d}
}

func (s *timeoutSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.next.SendEmail(ctx, params)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Join(ErrFailedToSendEmail, ErrSendTimeout, err)
	}
	return err
}
