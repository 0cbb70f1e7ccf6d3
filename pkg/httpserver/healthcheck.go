package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/newsletter/pkg/logger"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// Liveness answers 200 with an empty body as long as the process serves
// requests.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

// Readiness runs every check against the request context, each bounded by
// timeout, and answers 503 on the first failure.
func Readiness(log *slog.Logger, timeout time.Duration, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			err := check(ctx)
			cancel()
			if err != nil {
				log.LogAttrs(r.Context(), slog.LevelError, "readiness check failed", logger.Error(err))
				http.Error(w, "NOT_READY", http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
