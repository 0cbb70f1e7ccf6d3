package email

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent  []*gomail.Message
	err   error
	block chan struct{}
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.block != nil {
		<-d.block
	}
	d.sent = append(d.sent, m...)
	return d.err
}

func TestSMTPSender_SendEmail(t *testing.T) {
	t.Parallel()

	cfg := Config{SenderEmail: "newsletter@example.com", SenderName: "Newsletter", SupportEmail: "support@example.com"}
	params := SendEmailParams{
		SendTo:   "ursula_le_guin@gmail.com",
		Subject:  "Issue #1",
		BodyHTML: "<p>Hello</p>",
		BodyText: "Hello",
		Tag:      "issue",
	}

	t.Run("builds multipart message", func(t *testing.T) {
		t.Parallel()

		d := &fakeDialer{}
		require.NoError(t, newSMTPSender(d, cfg).SendEmail(context.Background(), params))
		require.Len(t, d.sent, 1)

		msg := d.sent[0]
		assert.Equal(t, []string{"ursula_le_guin@gmail.com"}, msg.GetHeader("To"))
		assert.Equal(t, []string{"Issue #1"}, msg.GetHeader("Subject"))
		assert.Equal(t, []string{"support@example.com"}, msg.GetHeader("Reply-To"))

		var buf bytes.Buffer
		_, err := msg.WriteTo(&buf)
		require.NoError(t, err)
		raw := buf.String()
		assert.Contains(t, raw, "text/plain")
		assert.Contains(t, raw, "text/html")
		assert.Contains(t, raw, "newsletter@example.com")
	})

	t.Run("dial failure", func(t *testing.T) {
		t.Parallel()

		d := &fakeDialer{err: errors.New("connection refused")}
		err := newSMTPSender(d, cfg).SendEmail(context.Background(), params)
		assert.ErrorIs(t, err, ErrFailedToSendEmail)
	})

	t.Run("context cancelled while dialing", func(t *testing.T) {
		t.Parallel()

		d := &fakeDialer{block: make(chan struct{})}
		defer close(d.block)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := newSMTPSender(d, cfg).SendEmail(ctx, params)
		assert.ErrorIs(t, err, ErrFailedToSendEmail)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("invalid params", func(t *testing.T) {
		t.Parallel()

		d := &fakeDialer{}
		err := newSMTPSender(d, cfg).SendEmail(context.Background(), SendEmailParams{SendTo: "x", Subject: "s", BodyText: "b"})
		assert.ErrorIs(t, err, ErrInvalidParams)
		assert.Empty(t, d.sent)
	})
}
