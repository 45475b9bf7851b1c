package attendance

import (
	"fmt"
	"time"
)

// SemesterWindow describes the teaching period. ExamStart/ExamEnd are
// optional and must be set together.
type SemesterWindow struct {
	Start           time.Time  `json:"start"`
	ExamStart       *time.Time `json:"examStart,omitempty"`
	ExamEnd         *time.Time `json:"examEnd,omitempty"`
	LastTeachingDay time.Time  `json:"lastTeachingDay"`
}

// Validate checks the ordering rules of the window.
func (w SemesterWindow) Validate() error {
	if w.Start.IsZero() || w.LastTeachingDay.IsZero() {
		return fmt.Errorf("%w: start and last teaching day are required", ErrInvalidSemester)
	}
	start, last := Day(w.Start), Day(w.LastTeachingDay)
	if last.Before(start) {
		return fmt.Errorf("%w: last teaching day %s is before start %s", ErrInvalidSemester, FormatDate(last), FormatDate(start))
	}
	if (w.ExamStart == nil) != (w.ExamEnd == nil) {
		return fmt.Errorf("%w: exam start and end must be given together", ErrInvalidSemester)
	}
	if w.ExamStart != nil {
		es, ee := Day(*w.ExamStart), Day(*w.ExamEnd)
		if ee.Before(es) {
			return fmt.Errorf("%w: exam end %s is before exam start %s", ErrInvalidSemester, FormatDate(ee), FormatDate(es))
		}
		if es.Before(start) || ee.After(last) {
			return fmt.Errorf("%w: exam window must fall within the semester", ErrInvalidSemester)
		}
	}
	return nil
}

// ExamPause returns the exam window as a blackout interval, or nil.
func (w SemesterWindow) ExamPause() *ExamPause {
	if w.ExamStart == nil || w.ExamEnd == nil {
		return nil
	}
	return &ExamPause{Start: Day(*w.ExamStart), End: Day(*w.ExamEnd)}
}

// Contains reports whether d lies within [Start, LastTeachingDay].
func (w SemesterWindow) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(Day(w.Start)) && !d.After(Day(w.LastTeachingDay))
}

// IsOver reports whether teaching has finished as of today.
func (w SemesterWindow) IsOver(today time.Time) bool {
	return Day(today).After(Day(w.LastTeachingDay))
}
