// Package logger builds *slog.Logger values with functional options and
// provides attribute helpers for consistent key naming.
//
// New picks a text or JSON handler from the environment, tags records with the
// service name and wraps the handler with LogHandlerDecorator, which runs
// ContextExtractor callbacks on every record. Request ids reach the log this
// way:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
//	log.WarnContext(ctx, "skipping invalid subscriber record",
//	    logger.SubscriberID(id),
//	    logger.Email(address),
//	    logger.Error(err),
//	)
//
// Email redacts the address before it is logged. Error returns an empty
// attribute for a nil error, so it can be passed unconditionally.
package logger
