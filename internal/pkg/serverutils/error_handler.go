package serverutils

import (
	"errors"

	"ai-workspace-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// HTTPError carries the status and client-facing message for a failed request.
// Err holds the underlying cause, which is logged but never sent to the client.
type HTTPError struct {
	Code    int
	Message string
	Err     error
}

func NewHTTPError(code int, message string, err error) *HTTPError {
	return &HTTPError{Code: code, Message: message, Err: err}
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// ErrorHandlerMiddleware converts errors returned by handlers into the JSON error envelope.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return writeError(ctx, log, err)
	}
}

// FiberErrorHandler handles errors raised outside the middleware chain, such as an oversized body.
func FiberErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		return writeError(ctx, log, err)
	}
}

func writeError(ctx *fiber.Ctx, log logger.ILogger, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var httpErr *HTTPError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		message = httpErr.Message
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code >= fiber.StatusInternalServerError {
		log.Error("HTTP", message, map[string]interface{}{
			"error":  err.Error(),
			"method": ctx.Method(),
			"path":   ctx.Path(),
		})
	}

	return ctx.Status(code).JSON(ErrorResponse(code, message))
}
