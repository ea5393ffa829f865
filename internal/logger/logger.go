package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"
)

// TimeKey replaces slog's default "time" key in every record.
const TimeKey = "ts"

// New builds a JSON logger writing to w. Timestamps are rendered in loc
// (UTC when nil) using RFC3339Nano.
func New(w io.Writer, level string, loc *time.Location) *slog.Logger {
	if loc == nil {
		loc = time.UTC
	}
	lvl := ParseLevel(level)

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				return slog.String(TimeKey, a.Value.Time().In(loc).Format(time.RFC3339Nano))
			}
			return a
		},
	})
	return slog.New(contextHandler{h})
}

type requestIDKey struct{}

// WithRequestID returns a context whose log records carry request_id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// contextHandler adds request_id to records logged with a *Context method.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestID(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}

// ParseLevel maps debug/info/warn/error (case-insensitive) to a slog level.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything. Used by tests and as the
// fallback when no logger is injected.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
