package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pulseup/engage-server/internal/analytics"
	"github.com/pulseup/engage-server/internal/service"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// NewErrorHandler maps service sentinels to HTTP statuses. Insufficient
// data is a client-resolvable condition (collect more responses), not a
// server fault, so it gets 422 rather than 500.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http-error")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := err.Error()

		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &httpErr):
			code = httpErr.Code
			if s, ok := httpErr.Message.(string); ok {
				msg = s
			}

		case errors.Is(err, service.ErrShopNotFound),
			errors.Is(err, service.ErrNoResponses):
			code = http.StatusNotFound

		case errors.Is(err, analytics.ErrInsufficientData):
			code = http.StatusUnprocessableEntity

		case errors.Is(err, service.ErrStorageFailure):
			code = http.StatusInternalServerError
			msg = "internal storage error"
		}

		if code >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", code),
				zap.Error(err))
		} else {
			logger.Debug("request rejected",
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", code),
				zap.Error(err))
		}

		_ = c.JSON(code, ErrorResponse{Message: msg, Code: code})
	}
}
