// Package httpserver runs an http.Server with graceful shutdown and exposes
// liveness and readiness handlers.
//
// Run binds the listener up front, so a bad address fails fast with ErrStart,
// then serves until the context is cancelled or SIGINT/SIGTERM arrives.
// Shutdown drains in-flight requests within the configured timeout.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
