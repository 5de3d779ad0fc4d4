// Package logger builds log/slog loggers configured per environment and
// provides attribute helpers used across the service.
//
// Development uses a text handler at debug level; staging and production use
// JSON at info level. A LogHandlerDecorator adds request-scoped attributes
// (for example the request ID) to every record through ContextExtractor
// functions:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "traveltinder-api"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
// Contact details never reach the logs in clear text: use Identifier, which
// masks email addresses and phone numbers.
package logger
