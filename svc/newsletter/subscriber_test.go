package newsletter_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/pkg/validator"
	"github.com/dmitrymomot/newsletter/svc/newsletter"
)

func TestParseNewSubscriber(t *testing.T) {
	t.Parallel()

	sub, err := newsletter.ParseNewSubscriber("le guin", "ursula_le_guin@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, "le guin", sub.Name.String())
	assert.Equal(t, "ursula_le_guin@gmail.com", sub.Email.String())

	_, err = newsletter.ParseNewSubscriber("", "not-an-email")
	require.Error(t, err)
	verrs := validator.ExtractValidationErrors(err)
	assert.Equal(t, []string{"name", "email"}, verrs.Fields())
}

func TestRecord_Subscriber(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("valid row", func(t *testing.T) {
		t.Parallel()

		sub, err := newsletter.Record{ID: id, Email: "dhairya@zuru.tech", Name: "dhairya nadapara", SubscribedAt: at, Status: "confirmed"}.Subscriber()
		require.NoError(t, err)
		assert.Equal(t, id, sub.ID)
		assert.Equal(t, newsletter.StatusConfirmed, sub.Status)
		assert.Equal(t, at, sub.SubscribedAt)
	})

	t.Run("corrupted email", func(t *testing.T) {
		t.Parallel()

		_, err := newsletter.Record{ID: id, Email: "my-email-is-invalid", Name: "x", Status: "confirmed"}.Subscriber()
		var recErr *newsletter.RecordError
		require.ErrorAs(t, err, &recErr)
		assert.Equal(t, id, recErr.SubscriberID)
		assert.True(t, validator.IsValidationError(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		t.Parallel()

		_, err := newsletter.Record{ID: id, Email: "dhairya@zuru.tech", Name: "x", Status: "archived"}.Subscriber()
		var recErr *newsletter.RecordError
		require.ErrorAs(t, err, &recErr)
		assert.Contains(t, err.Error(), `"archived"`)
	})
}

func TestRecord_Recipient(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	t.Run("stale name is tolerated", func(t *testing.T) {
		t.Parallel()

		rec := newsletter.Record{ID: id, Email: "dhairya@zuru.tech", Name: "{dhairya}", Status: "confirmed"}

		_, err := rec.Subscriber()
		require.Error(t, err)

		sub, err := rec.Recipient()
		require.NoError(t, err)
		assert.Equal(t, id, sub.ID)
		assert.Equal(t, "dhairya@zuru.tech", sub.Email.String())
		assert.Empty(t, sub.Name.String())
	})

	t.Run("corrupted email", func(t *testing.T) {
		t.Parallel()

		_, err := newsletter.Record{ID: id, Email: "my-email-is-invalid", Name: "x", Status: "confirmed"}.Recipient()
		var recErr *newsletter.RecordError
		require.ErrorAs(t, err, &recErr)
		assert.Equal(t, id, recErr.SubscriberID)
	})

	t.Run("unknown status", func(t *testing.T) {
		t.Parallel()

		_, err := newsletter.Record{ID: id, Email: "dhairya@zuru.tech", Name: "x", Status: "archived"}.Recipient()
		var recErr *newsletter.RecordError
		require.ErrorAs(t, err, &recErr)
	})
}

func TestIssue_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		issue  newsletter.Issue
		fields []string
	}{
		{"both bodies", newsletter.Issue{Title: "Issue #1", Content: newsletter.IssueContent{HTML: "<p>hi</p>", Text: "hi"}}, nil},
		{"text only", newsletter.Issue{Title: "Issue #1", Content: newsletter.IssueContent{Text: "hi"}}, nil},
		{"missing title", newsletter.Issue{Content: newsletter.IssueContent{Text: "hi"}}, []string{"title"}},
		{"missing content", newsletter.Issue{Title: "Issue #1"}, []string{"content"}},
		{"blank everything", newsletter.Issue{Title: " ", Content: newsletter.IssueContent{HTML: " ", Text: "\n"}}, []string{"title", "content"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.issue.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.fields, validator.ExtractValidationErrors(err).Fields())
		})
	}
}
