package models

import (
	"time"

	"github.com/yigit/attendance/internal/domain/attendance"
)

// Student defines the student model based on the 'students' table.
// Semester dates are nullable; a student without them is tracked in
// infinite-horizon mode.
type Student struct {
	ID              int64      `json:"id" db:"id" example:"1"`
	Name            string     `json:"name" db:"name" example:"Asha Kumar"`
	Username        string     `json:"username" db:"username" example:"asha.k"`
	Term            *Term      `json:"term,omitempty" db:"term" example:"FALL"`
	SemesterStart   *time.Time `json:"semesterStart,omitempty" db:"semester_start"`
	ExamStart       *time.Time `json:"examStart,omitempty" db:"exam_start"`
	ExamEnd         *time.Time `json:"examEnd,omitempty" db:"exam_end"`
	LastTeachingDay *time.Time `json:"lastTeachingDay,omitempty" db:"last_teaching_day"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

// SemesterWindow returns the configured window, or nil when the semester
// start or last teaching day is missing.
func (s *Student) SemesterWindow() *attendance.SemesterWindow {
	if s.SemesterStart == nil || s.LastTeachingDay == nil {
		return nil
	}
	return &attendance.SemesterWindow{
		Start:           *s.SemesterStart,
		ExamStart:       s.ExamStart,
		ExamEnd:         s.ExamEnd,
		LastTeachingDay: *s.LastTeachingDay,
	}
}

// ClearSemester removes every semester date.
func (s *Student) ClearSemester() {
	s.Term = nil
	s.SemesterStart = nil
	s.ExamStart = nil
	s.ExamEnd = nil
	s.LastTeachingDay = nil
}
