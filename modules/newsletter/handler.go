// Package newsletter exposes the subscription and publishing workflows over
// HTTP.
package newsletter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/newsletter/core"
	"github.com/dmitrymomot/newsletter/pkg/binder"
	"github.com/dmitrymomot/newsletter/pkg/logger"
	"github.com/dmitrymomot/newsletter/svc/newsletter"
)

// Service is the subset of *newsletter.Service the handlers call.
type Service interface {
	Signup(ctx context.Context, rawName, rawEmail string) error
	Confirm(ctx context.Context, token string) error
	Publish(ctx context.Context, issue newsletter.Issue) (newsletter.PublishReport, error)
}

type Handler struct {
	svc    Service
	logger *slog.Logger
}

func NewHandler(svc Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, logger: log.With(logger.Component("http"))}
}

// Router mounts:
//
//	POST /subscriptions            form name, email
//	GET  /subscriptions/confirm    ?subscription_token=
//	POST /newsletters              JSON {title, content: {html, text}}
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/subscriptions", h.subscribe)
	r.Get("/subscriptions/confirm", h.confirm)
	r.Post("/newsletters", h.publish)
	return r
}

type subscribeRequest struct {
	Name  string `form:"name"`
	Email string `form:"email"`
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := binder.Form(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.svc.Signup(r.Context(), req.Name, req.Email); err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, core.JSON("subscription_pending", nil))
}

type confirmRequest struct {
	Token string `query:"subscription_token"`
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := binder.Query(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if _, present := r.URL.Query()["subscription_token"]; !present {
		h.fail(w, r, errMissingToken)
		return
	}

	if err := h.svc.Confirm(r.Context(), req.Token); err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, core.JSON("subscription_confirmed", nil))
}

type publishRequest struct {
	Title   *string                  `json:"title"`
	Content *newsletter.IssueContent `json:"content"`
}

func (h *Handler) publish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := binder.JSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Title == nil || req.Content == nil {
		h.fail(w, r, errors.Join(errInvalidInput, errors.New("title and content are required")))
		return
	}

	report, err := h.svc.Publish(r.Context(), newsletter.Issue{Title: *req.Title, Content: *req.Content})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, core.JSON("newsletter_published", report))
}

// fail answers with the mapped status. Client errors were already logged by
// the service, so only 5xx are logged here.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := httpError(err)
	if httpErr.Code >= http.StatusInternalServerError {
		h.logger.LogAttrs(r.Context(), slog.LevelError, "request failed",
			slog.String("path", r.URL.Path),
			logger.Error(err),
		)
	}
	h.render(w, r, core.JSONError(errors.Join(httpErr, err)))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, resp core.Response) {
	if err := resp.Render(w, r); err != nil {
		h.logger.LogAttrs(r.Context(), slog.LevelError, "failed to write response", logger.Error(err))
	}
}
