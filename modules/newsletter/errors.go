package newsletter

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/newsletter/core"
	"github.com/dmitrymomot/newsletter/pkg/binder"
	"github.com/dmitrymomot/newsletter/svc/newsletter"
)

var (
	errInvalidInput   = core.NewHTTPError(http.StatusBadRequest, "invalid_input")
	errMissingToken   = core.NewHTTPError(http.StatusBadRequest, "missing_subscription_token")
	errInvalidToken   = core.NewHTTPError(http.StatusUnauthorized, "invalid_subscription_token")
	errDeliveryFailed = core.NewHTTPError(http.StatusInternalServerError, "delivery_failed")
)

// httpError maps a workflow or binding error to the status the client sees.
// Anything unrecognised is a 500.
func httpError(err error) core.HTTPError {
	switch {
	case errors.Is(err, newsletter.ErrInvalidInput):
		return errInvalidInput
	case errors.Is(err, newsletter.ErrInvalidToken):
		return errInvalidToken
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return core.ErrUnsupportedMediaType
	case errors.Is(err, binder.ErrBodyTooLarge):
		return core.ErrRequestEntityTooLarge
	case errors.Is(err, binder.ErrInvalidForm), errors.Is(err, binder.ErrInvalidJSON), errors.Is(err, binder.ErrInvalidQuery):
		return core.ErrBadRequest
	case errors.Is(err, newsletter.ErrMailFailure):
		return errDeliveryFailed
	default:
		return core.ErrInternalServerError
	}
}
