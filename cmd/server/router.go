package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/newsletter/modules/newsletter"
	"github.com/dmitrymomot/newsletter/pkg/httpserver"
	"github.com/dmitrymomot/newsletter/pkg/logger"
	"github.com/dmitrymomot/newsletter/pkg/requestid"
)

const readinessTimeout = 2 * time.Second

type routerDeps struct {
	service  newsletter.Service
	logger   *slog.Logger
	gatherer prometheus.Gatherer
	checks   []httpserver.Check
}

func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestid.Middleware)
	r.Use(accessLog(deps.logger))
	r.Use(middleware.Recoverer)

	r.Get("/health_check", httpserver.Liveness())
	r.Get("/ready", httpserver.Readiness(deps.logger, readinessTimeout, deps.checks...))
	r.Handle("/metrics", promhttp.HandlerFor(deps.gatherer, promhttp.HandlerOpts{}))

	r.Mount("/", newsletter.NewHandler(deps.service, deps.logger).Router())
	return r
}

// accessLog writes one record per request once the response is done.
func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.LogAttrs(r.Context(), slog.LevelInfo, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.String("remote_addr", r.RemoteAddr),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
