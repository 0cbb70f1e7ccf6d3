package newsletter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/newsletter/pkg/email"
	"github.com/dmitrymomot/newsletter/pkg/email/templates"
	"github.com/dmitrymomot/newsletter/pkg/logger"
	"github.com/dmitrymomot/newsletter/pkg/token"
)

// tokenAttempts bounds how often signup draws a new token after a collision.
const tokenAttempts = 3

// Service runs the signup, confirmation and publish workflows.
type Service struct {
	store       Store
	sender      email.EmailSender
	logger      *slog.Logger
	metrics     *Metrics
	baseURL     string
	concurrency int
	newToken    func() (string, error)
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithBaseURL sets the public URL confirmation links point to.
func WithBaseURL(baseURL string) Option {
	return func(s *Service) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithPublishConcurrency sets how many issue sends may be in flight at once.
// Values below 1 are ignored; the default is 1.
func WithPublishConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithTokenGenerator replaces token.Generate.
func WithTokenGenerator(fn func() (string, error)) Option {
	return func(s *Service) {
		if fn != nil {
			s.newToken = fn
		}
	}
}

func New(store Store, sender email.EmailSender, opts ...Option) *Service {
	s := &Service{
		store:       store,
		sender:      sender,
		logger:      slog.Default(),
		baseURL:     "http://127.0.0.1:8000",
		concurrency: 1,
		newToken:    token.Generate,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("newsletter"))
	return s
}

// Signup registers a pending subscriber and emails a confirmation link.
// The subscriber and token are committed only after the email was accepted
// by the provider.
//
// Signing up again with a pending address issues a fresh token and resends
// the link. Signing up with an already confirmed address succeeds without
// sending anything.
//
// Errors: ErrInvalidInput, ErrStoreFailure, ErrMailFailure.
func (s *Service) Signup(ctx context.Context, rawName, rawEmail string) error {
	sub, err := ParseNewSubscriber(rawName, rawEmail)
	if err != nil {
		s.metrics.signup(outcome(ErrInvalidInput))
		s.logger.LogAttrs(ctx, slog.LevelWarn, "rejected signup", logger.Error(err))
		return errors.Join(ErrInvalidInput, err)
	}

	err = s.signup(ctx, sub)
	s.metrics.signup(outcome(err))
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "signup failed",
			logger.Email(sub.Email.String()),
			logger.Error(err),
		)
	}
	return err
}

func (s *Service) signup(ctx context.Context, sub NewSubscriber) error {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	// The rollback must run even if ctx was cancelled.
	defer func() {
		if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "failed to roll back signup", logger.Error(err))
		}
	}()

	var subscriberID uuid.UUID
	existing, err := tx.FindSubscriberByEmail(ctx, sub.Email)
	switch {
	case err == nil && existing.Status == StatusConfirmed:
		s.logger.LogAttrs(ctx, slog.LevelInfo, "signup for confirmed subscriber ignored",
			logger.SubscriberID(existing.ID),
		)
		return nil
	case err == nil:
		subscriberID = existing.ID
	case errors.Is(err, ErrSubscriberNotFound):
		subscriberID, err = tx.InsertPendingSubscriber(ctx, sub)
		if err != nil {
			return errors.Join(ErrStoreFailure, err)
		}
	default:
		return errors.Join(ErrStoreFailure, err)
	}

	tok, err := s.issueToken(ctx, tx, subscriberID)
	if err != nil {
		return err
	}

	if err := s.sendConfirmation(ctx, sub, tok); err != nil {
		return errors.Join(ErrMailFailure, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "subscriber pending confirmation",
		logger.SubscriberID(subscriberID),
	)
	return nil
}

func (s *Service) issueToken(ctx context.Context, tx Tx, subscriberID uuid.UUID) (string, error) {
	for range tokenAttempts {
		tok, err := s.newToken()
		if err != nil {
			return "", errors.Join(ErrStoreFailure, err)
		}

		err = tx.StoreToken(ctx, subscriberID, tok)
		if err == nil {
			return tok, nil
		}
		if !errors.Is(err, ErrTokenCollision) {
			return "", errors.Join(ErrStoreFailure, err)
		}
	}
	return "", errors.Join(ErrStoreFailure, ErrTokenCollision)
}

func (s *Service) sendConfirmation(ctx context.Context, sub NewSubscriber, tok string) error {
	link := s.ConfirmationLink(tok)

	html, err := templates.Render(ctx, confirmationHTML(sub.Name.String(), link))
	if err != nil {
		return fmt.Errorf("render confirmation email: %w", err)
	}

	return s.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   sub.Email.String(),
		Subject:  confirmationSubject,
		BodyText: confirmationText(link),
		BodyHTML: html,
		Tag:      "confirmation",
	})
}

// ConfirmationLink returns the URL a subscriber follows to confirm tok.
func (s *Service) ConfirmationLink(tok string) string {
	return s.baseURL + "/subscriptions/confirm?subscription_token=" + url.QueryEscape(tok)
}

// Confirm marks the subscriber owning tok as confirmed. Unknown or malformed
// tokens return ErrInvalidToken and change nothing. Confirming twice succeeds.
//
// Errors: ErrInvalidToken, ErrStoreFailure.
func (s *Service) Confirm(ctx context.Context, tok string) error {
	err := s.confirm(ctx, tok)
	s.metrics.confirmation(outcome(err))

	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidToken):
		s.logger.LogAttrs(ctx, slog.LevelWarn, "unknown subscription token")
	default:
		s.logger.LogAttrs(ctx, slog.LevelError, "confirmation failed", logger.Error(err))
	}
	return err
}

func (s *Service) confirm(ctx context.Context, tok string) error {
	if !token.Valid(tok) {
		return ErrInvalidToken
	}

	id, found, err := s.store.SubscriberIDByToken(ctx, tok)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if !found {
		return ErrInvalidToken
	}

	if err := s.store.MarkConfirmed(ctx, id); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "subscriber confirmed", logger.SubscriberID(id))
	return nil
}

// Publish sends issue to every confirmed subscriber. Records that fail
// validation are logged and skipped. The first failed send stops the run and
// is returned as a *DeliveryError; messages already sent are not recalled.
//
// The report is filled in on failure too.
//
// Errors: ErrInvalidInput, *DeliveryError (matches ErrMailFailure), ErrStoreFailure.
func (s *Service) Publish(ctx context.Context, issue Issue) (PublishReport, error) {
	if err := issue.Validate(); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "rejected newsletter issue", logger.Error(err))
		return PublishReport{}, errors.Join(ErrInvalidInput, err)
	}

	report, err := s.publish(ctx, issue)

	attrs := []slog.Attr{slog.String("title", issue.Title), logger.Sent(report.Sent), logger.Skipped(report.Skipped)}
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "newsletter publish aborted", append(attrs, logger.Error(err))...)
		return report, err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "newsletter published", attrs...)
	return report, nil
}

func (s *Service) publish(ctx context.Context, issue Issue) (PublishReport, error) {
	var (
		sent     atomic.Int64
		skipped  int
		storeErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for sub, err := range s.store.ConfirmedSubscribers(gctx) {
		if err != nil {
			var recErr *RecordError
			if errors.As(err, &recErr) {
				skipped++
				s.metrics.skip()
				s.logger.LogAttrs(ctx, slog.LevelWarn, "skipping invalid subscriber record",
					logger.SubscriberID(recErr.SubscriberID),
					logger.Error(recErr.Err),
				)
				continue
			}
			storeErr = err
			break
		}
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			if err := s.sender.SendEmail(gctx, email.SendEmailParams{
				SendTo:   sub.Email.String(),
				Subject:  issue.Title,
				BodyText: issue.Content.Text,
				BodyHTML: issue.Content.HTML,
				Tag:      "issue",
			}); err != nil {
				s.metrics.delivery("failure")
				return &DeliveryError{SubscriberID: sub.ID, Email: sub.Email.String(), Err: err}
			}
			s.metrics.delivery("ok")
			sent.Add(1)
			return nil
		})
	}

	sendErr := g.Wait()
	report := PublishReport{Sent: int(sent.Load()), Skipped: skipped}

	switch {
	case sendErr != nil:
		return report, sendErr
	case storeErr != nil:
		return report, errors.Join(ErrStoreFailure, storeErr)
	case ctx.Err() != nil:
		return report, fmt.Errorf("publish interrupted: %w", ctx.Err())
	}
	return report, nil
}
