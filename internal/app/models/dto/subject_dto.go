package dto

import (
	"strings"
	"time"

	"github.com/yigit/attendance/internal/app/models"
)

// SubjectRequest creates or renames a subject. Days, when given, replaces the
// subject's weekly schedule.
type SubjectRequest struct {
	Name           string   `json:"name" binding:"required,min=1,max=100" example:"Physics"`
	ClassesPerWeek int      `json:"classesPerWeek" binding:"min=0,max=14" example:"3"`
	Days           []string `json:"days,omitempty" binding:"omitempty,dive,weekday" example:"MONDAY,WEDNESDAY"`
}

// ScheduleRequest replaces the weekdays a subject meets on
type ScheduleRequest struct {
	Days []string `json:"days" binding:"dive,weekday" example:"MONDAY,THURSDAY"`
}

// SubjectResponse is a subject with its weekly days
type SubjectResponse struct {
	ID             int64    `json:"id" example:"1"`
	StudentID      int64    `json:"studentId" example:"1"`
	Name           string   `json:"name" example:"Physics"`
	ClassesPerWeek int      `json:"classesPerWeek" example:"3"`
	Days           []string `json:"days"`
}

// FromSubject converts a subject and its weekdays
func FromSubject(s *models.Subject, days []time.Weekday) SubjectResponse {
	return SubjectResponse{
		ID:             s.ID,
		StudentID:      s.StudentID,
		Name:           s.Name,
		ClassesPerWeek: s.ClassesPerWeek,
		Days:           WeekdayNames(days),
	}
}

// ScheduleDay lists the subjects meeting on one weekday, in order
type ScheduleDay struct {
	Day      string  `json:"day" example:"MONDAY"`
	Subjects []int64 `json:"subjects"`
}

// WeekdayNames renders weekdays as upper-case English names
func WeekdayNames(days []time.Weekday) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, WeekdayName(d))
	}
	return out
}

// WeekdayName renders one weekday, e.g. MONDAY
func WeekdayName(d time.Weekday) string {
	return strings.ToUpper(d.String())
}
