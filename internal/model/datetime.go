package model

import (
	"fmt"
	"strconv"
	"time"
)

// LocalDateTimeLayout renders a wall-clock timestamp without a zone offset.
// The fraction is trimmed of trailing zeros and omitted when zero.
const LocalDateTimeLayout = "2006-01-02T15:04:05.999999999"

// parse layout; time.Parse accepts an optional fraction after the seconds field.
const localDateTimeParseLayout = "2006-01-02T15:04:05"

// LocalDateTime is a timestamp serialized as YYYY-MM-DDTHH:MM:SS[.fraction].
type LocalDateTime struct {
	time.Time
}

// NewLocalDateTime wraps t.
func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime{Time: t}
}

// ParseLocalDateTime parses s as a local date-time in loc. Offsets and zone
// designators are rejected.
func ParseLocalDateTime(s string, loc *time.Location) (LocalDateTime, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(localDateTimeParseLayout, s, loc)
	if err != nil {
		return LocalDateTime{}, fmt.Errorf("parse local date-time %q: %w", s, err)
	}
	return LocalDateTime{Time: t}, nil
}

func (t LocalDateTime) String() string {
	return t.Format(LocalDateTimeLayout)
}

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

func (t *LocalDateTime) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("local date-time must be a JSON string: %w", err)
	}
	parsed, err := ParseLocalDateTime(s, time.UTC)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
