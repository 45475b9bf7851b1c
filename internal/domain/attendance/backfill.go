package attendance

import (
	"fmt"
	"time"
)

// fallbackPadDays is added to the estimated look-back when no semester start
// is known, so holidays do not starve the date search.
const fallbackPadDays = 14

// MaxBackfillClasses bounds the conducted count a single backfill may seed.
const MaxBackfillClasses = 2000

// BackfillInput seeds a ledger for a subject that starts being tracked
// mid-semester with only aggregate counts known.
type BackfillInput struct {
	SubjectID SubjectID
	Conducted int
	Attended  int
	// Start is the first date to consider; zero means estimate from the
	// weekly frequency.
	Start    time.Time
	Today    time.Time
	Schedule *Schedule
	Calendar *Calendar
}

// BackfillRecords lays the counts onto the earliest class days between Start
// and Today: the first Attended dates are present, the rest absent. Fewer
// records than Conducted are returned when not enough class days exist.
func BackfillRecords(in BackfillInput) ([]Record, error) {
	if _, err := NewTally(in.Conducted, in.Attended); err != nil {
		return nil, err
	}
	if in.Conducted > MaxBackfillClasses {
		return nil, fmt.Errorf("%w: conducted %d exceeds %d", ErrInvariant, in.Conducted, MaxBackfillClasses)
	}
	days := in.Schedule.DaysFor(in.SubjectID)
	if in.Conducted > 0 && len(days) == 0 {
		return nil, fmt.Errorf("%w: subject %d has no scheduled weekdays", ErrInvariant, in.SubjectID)
	}

	today := Day(in.Today)
	start := Day(in.Start)
	if in.Start.IsZero() {
		back := in.Conducted*7/max(len(days), 1) + fallbackPadDays
		start = today.AddDate(0, 0, -back)
	}

	span := 0
	if !start.After(today) {
		span = int(today.Sub(start).Hours()/24) + 1
	}
	records := make([]Record, 0, min(in.Conducted, span))
	for d := start; !d.After(today) && len(records) < in.Conducted; d = nextDay(d) {
		if in.Calendar.IsClassDay(in.SubjectID, d, in.Schedule) {
			records = append(records, Record{Date: d, Present: len(records) < in.Attended})
		}
	}
	return records, nil
}
