// Package attendance holds the eligibility and leave-projection engine.
//
// Everything in this package is pure: callers hand in a snapshot of ledgers,
// the weekly schedule and the blackout calendar, and get fresh values back.
// Nothing here performs I/O, logs or keeps global state.
//
// Dates are civil dates. They are carried as time.Time values normalised to
// midnight UTC (see Day), which makes them safe to compare with Equal/Before
// and to use as map keys.
package attendance

import (
	"errors"
	"time"
)

// Threshold is the minimum attendance percentage required to stay eligible.
const Threshold = 75.0

var (
	// ErrInvariant is returned when input data breaks a ledger invariant,
	// e.g. attended > conducted or duplicate dates. It indicates a caller bug.
	ErrInvariant = errors.New("attendance invariant violated")
	// ErrInvalidRange is returned when a date range ends before it starts.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrInvalidSemester is returned when semester dates are inconsistent.
	ErrInvalidSemester = errors.New("invalid semester window")
)

// DateLayout is the wire format for civil dates.
const DateLayout = "2006-01-02"

// Day normalises t to midnight UTC of its calendar date in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a civil date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a civil date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// FormatDate renders a civil date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return Day(t).Format(DateLayout)
}

func nextDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1)
}

// eachDay calls fn for every date in [from, to]. It does nothing when to < from.
func eachDay(from, to time.Time, fn func(d time.Time)) {
	from, to = Day(from), Day(to)
	for d := from; !d.After(to); d = nextDay(d) {
		fn(d)
	}
}
