package handler

import (
	"github.com/gofiber/fiber/v2"

	"claimsapi/internal/http/middleware"
	"claimsapi/internal/httpx"
)

// writeError writes the standard error envelope. message must be safe to
// show to clients.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	rid, _ := c.Locals(middleware.RequestIDLocalKey).(string)
	return c.Status(status).JSON(httpx.ErrorBody{
		RequestID: rid,
		Error:     httpx.ErrorDetail{Code: code, Message: message},
	})
}

// writeServiceError translates service errors into the error envelope.
func writeServiceError(c *fiber.Ctx, err error) error {
	status, code, msg := httpx.Classify(err)
	return writeError(c, status, code, msg)
}

var fiberErrorCodes = map[int][2]string{
	fiber.StatusBadRequest:            {"BAD_REQUEST", "bad request"},
	fiber.StatusNotFound:              {"NOT_FOUND", "resource not found"},
	fiber.StatusMethodNotAllowed:      {"METHOD_NOT_ALLOWED", "method not allowed"},
	fiber.StatusRequestEntityTooLarge: {"PAYLOAD_TOO_LARGE", "request body too large"},
	fiber.StatusRequestTimeout:        {"TIMEOUT", "request timed out"},
}

// ErrorHandler renders errors that escape handlers (unknown routes, wrong
// methods, oversized bodies) in the standard envelope.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}
		if m, ok := fiberErrorCodes[status]; ok {
			return writeError(c, status, m[0], m[1])
		}
		return writeError(c, status, "INTERNAL_ERROR", "internal server error")
	}
}
