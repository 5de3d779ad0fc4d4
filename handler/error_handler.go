package handler

import (
	"log/slog"
	"net/http"

	"github.com/traveltinder/backend/pkg/logger"
	"github.com/traveltinder/backend/pkg/requestid"
)

// ErrorMapper translates domain errors into HTTPError or
// validator.ValidationErrors before classification. It returns err
// unchanged when it has no mapping.
type ErrorMapper func(err error) error

// NewErrorHandler returns an ErrorHandler that renders the JSON envelope.
// Server errors are logged at error level with the request id and the
// original cause; client errors at debug level.
// Configure this once in main.go and pass to all modules.
func NewErrorHandler(log *slog.Logger, mapper ErrorMapper) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		mapped := err
		if mapper != nil {
			mapped = mapper(err)
		}

		status, body := Classify(mapped)
		r := ctx.Request()

		attrs := []any{
			logger.RequestID(requestid.FromContext(r.Context())),
			slog.Int("status", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Error(err),
		}
		if status >= http.StatusInternalServerError {
			log.ErrorContext(r.Context(), "request failed", attrs...)
		} else {
			log.DebugContext(r.Context(), "request rejected", attrs...)
		}

		if renderErr := JSON(status, body).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response",
				logger.RequestID(requestid.FromContext(r.Context())),
				logger.Error(renderErr),
			)
		}
	}
}
