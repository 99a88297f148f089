// Package logger builds slog loggers with functional options, consistent
// attribute helpers and attributes pulled from the request context.
//
//	log := logger.New(
//		logger.WithEnvironment("production", "fieldcheck"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.DebugContext(ctx, "validation chain failed",
//		logger.Fields([]string{"email"}),
//		logger.Stage("validate"),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed without a nil check. FromConfig reads the LOG_LEVEL, LOG_FORMAT,
// APP_ENV and SERVICE_NAME variables through the config package.
package logger
