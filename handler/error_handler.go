package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/restkit/core"
	"github.com/dmitrymomot/restkit/pkg/logger"
	"github.com/dmitrymomot/restkit/pkg/validator"
)

// ErrorInfo is the classified form of a request error.
type ErrorInfo struct {
	StatusCode int
	Body       any
	LogLevel   slog.Level
}

// ClassifyError maps err to a status and a body:
//   - validation errors: 400 with the error detail as the body
//   - core.APIError: its status with {"detail": message}
//   - anything else: 500 with a generic detail
func ClassifyError(err error) ErrorInfo {
	info := ErrorInfo{StatusCode: http.StatusInternalServerError}

	if verr := validator.ExtractValidationError(err); verr != nil {
		info.StatusCode = http.StatusBadRequest
		info.Body = verr.Detail
	} else if apiErr, ok := core.AsAPIError(err); ok {
		info.StatusCode = apiErr.Status
		info.Body = detailBody(apiErr.Error())
	} else {
		info.Body = detailBody(core.ErrInternal.Detail)
	}

	switch {
	case errors.Is(err, context.Canceled):
		info.LogLevel = slog.LevelInfo
	case info.StatusCode < http.StatusInternalServerError:
		info.LogLevel = slog.LevelWarn
	default:
		info.LogLevel = slog.LevelError
	}
	return info
}

func detailBody(message string) map[string]string {
	return map[string]string{"detail": message}
}

// NewErrorHandler logs the error and writes the classified JSON response.
func NewErrorHandler[C Context](log *slog.Logger) ErrorHandler[C] {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx C, err error) {
		r := ctx.Request()
		info := ClassifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.RequestID(RequestIDFromContext(r.Context())),
			logger.Error(err),
			logger.Status(info.StatusCode),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.Component("error_handler"),
		)

		resp := JSON(info.Body, WithJSONStatus(info.StatusCode))
		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to render error response",
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}
