package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// NewRouter builds the echo instance with validation, error mapping and
// the full route table mounted.
func NewRouter(h *Handlers, logger *zap.Logger) *echo.Echo {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger.Named("http-access")))

	h.Register(e)

	return e
}
