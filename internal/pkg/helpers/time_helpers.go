package helpers

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yigit/attendance/internal/domain/attendance"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// Clock yields the current civil date in a fixed location.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock returns a clock for loc; nil means UTC.
func NewClock(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc, now: time.Now}
}

// FixedClock always reports the given date. Used by tests and seeding.
func FixedClock(today time.Time) *Clock {
	return &Clock{loc: time.UTC, now: func() time.Time { return today }}
}

// Today returns the civil date in the clock's location.
func (c *Clock) Today() time.Time {
	return attendance.Day(c.now().In(c.loc))
}

// ParseDateParam parses a YYYY-MM-DD request value and names the field on failure.
func ParseDateParam(field, value string) (time.Time, error) {
	d, err := attendance.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a date in YYYY-MM-DD format", field)
	}
	return d, nil
}

// ParseOptionalDate parses value when it is non-empty.
func ParseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := ParseDateParam(field, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ParseMonth parses a YYYY-MM request value.
func ParseMonth(value string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return 0, 0, fmt.Errorf("month must be in YYYY-MM format")
	}
	return t.Year(), t.Month(), nil
}
