package middleware

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"

	"claimsapi/internal/logger"
)

// Logger is a middleware that logs each HTTP request as one JSON line on stdout.
func Logger(loc *time.Location) fiber.Handler {
	return LoggerWithWriter(os.Stdout, loc)
}

// LoggerWithWriter is Logger writing to w with timestamps rendered in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return RequestLogger(logger.New(w, "info", loc))
}

// RequestLogger logs each HTTP request through l.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
// - trace_id, span_id when the request is traced
func RequestLogger(l *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		attrs := []slog.Attr{
			slog.String("request_id", rid),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Float64("latency", float64(time.Since(start).Microseconds())/1000),
		}
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.IsValid() {
			attrs = append(attrs,
				slog.String("trace_id", sc.TraceID().String()),
				slog.String("span_id", sc.SpanID().String()),
			)
		}

		level := slog.LevelInfo
		switch {
		case status >= fiber.StatusInternalServerError:
			level = slog.LevelError
		case status >= fiber.StatusBadRequest:
			level = slog.LevelWarn
		}
		l.LogAttrs(context.Background(), level, "http.request", attrs...)

		return err
	}
}
