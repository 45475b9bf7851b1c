package attendance

import "time"

// Mark classifies one calendar day for a subject.
type Mark string

const (
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
	MarkHoliday Mark = "holiday"
	MarkExam    Mark = "exam"
	MarkNone    Mark = "none"
)

// DayMark is one cell of the month view.
type DayMark struct {
	Date time.Time `json:"date"`
	Mark Mark      `json:"mark"`
	Note string    `json:"note,omitempty"`
}

// MonthMarks returns a mark for every day of the given month. A recorded
// mark wins over a blackout, since extra classes can be held on holidays.
func MonthMarks(l *Ledger, cal *Calendar, year int, month time.Month) []DayMark {
	first := Date(year, month, 1)
	last := first.AddDate(0, 1, -1)

	out := make([]DayMark, 0, last.Day())
	eachDay(first, last, func(d time.Time) {
		m := DayMark{Date: d, Mark: MarkNone}
		if present, ok := l.Present(d); ok {
			m.Mark = MarkAbsent
			if present {
				m.Mark = MarkPresent
			}
		} else if reason, ok := cal.HolidayReason(d); ok {
			m.Mark, m.Note = MarkHoliday, reason
		} else if cal.IsExamPause(d) {
			m.Mark = MarkExam
		}
		out = append(out, m)
	})
	return out
}
