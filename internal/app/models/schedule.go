package models

import "time"

// ScheduleEntry links a subject to a weekday ('weekly_schedule' table).
// DayOfWeek follows time.Weekday numbering, Sunday = 0.
type ScheduleEntry struct {
	SubjectID int64        `json:"subjectId" db:"subject_id"`
	DayOfWeek time.Weekday `json:"dayOfWeek" db:"day_of_week"`
}
