package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"claimsapi/internal/logger"
)

const (
	// RequestIDHeader is the header used to propagate request IDs.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the Fiber locals key holding the request ID.
	RequestIDLocalKey = "request_id"

	maxRequestIDLen = 128
)

// RequestID assigns every request an ID.
//
// An incoming X-Request-ID is reused when it is short printable ASCII;
// otherwise a UUID is generated. The ID is echoed in the response header,
// stored in locals, attached to the user context for logging and recorded
// on the active span.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		ctx := logger.WithRequestID(c.UserContext(), id)
		trace.SpanFromContext(ctx).SetAttributes(attribute.String("http.request_id", id))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
