package attendance

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DefaultHolidayDescription is used when a holiday is added without a reason.
const DefaultHolidayDescription = "Official Holiday"

// Holiday is a blackout date with a free-text reason.
type Holiday struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// ExamPause is an inclusive window during which no classes are held.
type ExamPause struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether d falls inside the pause, both ends inclusive.
func (p ExamPause) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(Day(p.Start)) && !d.After(Day(p.End))
}

// Calendar holds the holiday set and at most one exam pause.
type Calendar struct {
	holidays map[time.Time]string
	exam     *ExamPause
}

// NewCalendar builds a calendar from loaded holidays and an optional exam pause.
func NewCalendar(holidays []Holiday, exam *ExamPause) (*Calendar, error) {
	c := &Calendar{holidays: make(map[time.Time]string, len(holidays))}
	for _, h := range holidays {
		c.AddHoliday(h.Date, h.Description)
	}
	if err := c.SetExamPause(exam); err != nil {
		return nil, err
	}
	return c, nil
}

// EmptyCalendar has no holidays and no exam pause.
func EmptyCalendar() *Calendar {
	return &Calendar{holidays: make(map[time.Time]string)}
}

// SetExamPause replaces the exam window; nil clears it.
func (c *Calendar) SetExamPause(exam *ExamPause) error {
	if exam == nil {
		c.exam = nil
		return nil
	}
	start, end := Day(exam.Start), Day(exam.End)
	if end.Before(start) {
		return fmt.Errorf("%w: exam pause ends %s before it starts %s", ErrInvalidRange, FormatDate(end), FormatDate(start))
	}
	c.exam = &ExamPause{Start: start, End: end}
	return nil
}

// ExamPause returns a copy of the configured exam window, or nil.
func (c *Calendar) ExamPause() *ExamPause {
	if c.exam == nil {
		return nil
	}
	p := *c.exam
	return &p
}

// IsHoliday reports whether d is in the holiday set.
func (c *Calendar) IsHoliday(d time.Time) bool {
	_, ok := c.holidays[Day(d)]
	return ok
}

// HolidayReason returns the description of the holiday on d.
func (c *Calendar) HolidayReason(d time.Time) (string, bool) {
	reason, ok := c.holidays[Day(d)]
	return reason, ok
}

// IsExamPause reports whether d falls inside the configured exam window.
func (c *Calendar) IsExamPause(d time.Time) bool {
	return c.exam != nil && c.exam.Contains(d)
}

// IsBlackout reports whether no classes at all are held on d.
func (c *Calendar) IsBlackout(d time.Time) bool {
	return c.IsHoliday(d) || c.IsExamPause(d)
}

// IsClassDay is the one predicate every counting path goes through:
// the subject meets on d's weekday and d is not blacked out.
func (c *Calendar) IsClassDay(id SubjectID, d time.Time, schedule *Schedule) bool {
	d = Day(d)
	return schedule.IsScheduled(id, d.Weekday()) && !c.IsBlackout(d)
}

// AddHoliday inserts or re-describes the holiday on d.
func (c *Calendar) AddHoliday(d time.Time, description string) {
	c.holidays[Day(d)] = normalizeDescription(description)
}

// AddHolidayRange marks every date in [from, to] as a holiday.
func (c *Calendar) AddHolidayRange(from, to time.Time, description string) error {
	if Day(to).Before(Day(from)) {
		return fmt.Errorf("%w: holiday range %s..%s", ErrInvalidRange, FormatDate(from), FormatDate(to))
	}
	eachDay(from, to, func(d time.Time) { c.AddHoliday(d, description) })
	return nil
}

// RemoveHoliday deletes the holiday on d, if any.
func (c *Calendar) RemoveHoliday(d time.Time) {
	delete(c.holidays, Day(d))
}

// RemoveByDescription deletes every holiday with the given description and
// returns how many were removed.
func (c *Calendar) RemoveByDescription(description string) int {
	n := 0
	for d, desc := range c.holidays {
		if desc == description {
			delete(c.holidays, d)
			n++
		}
	}
	return n
}

// UpdateHoliday moves the holiday on oldDate to newDate with a new description.
// It reports false when there was no holiday on oldDate.
func (c *Calendar) UpdateHoliday(oldDate, newDate time.Time, description string) bool {
	if !c.IsHoliday(oldDate) {
		return false
	}
	c.RemoveHoliday(oldDate)
	c.AddHoliday(newDate, description)
	return true
}

// Holidays returns a date-sorted snapshot of the holiday set.
func (c *Calendar) Holidays() []Holiday {
	out := make([]Holiday, 0, len(c.holidays))
	for d, desc := range c.holidays {
		out = append(out, Holiday{Date: d, Description: desc})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func normalizeDescription(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultHolidayDescription
	}
	return s
}
