package dto

import (
	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/domain/attendance"
)

// CreateStudentRequest registers a student profile
type CreateStudentRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100" example:"Asha Kumar"`
	Username string `json:"username" binding:"required,username" example:"asha.k"`
}

// SemesterRequest configures the semester window. Exam dates are optional
// but must be given together.
type SemesterRequest struct {
	Term            string `json:"term,omitempty" binding:"omitempty,oneof=FALL SPRING" example:"FALL"`
	Start           string `json:"start" binding:"required,civildate" example:"2026-08-03"`
	ExamStart       string `json:"examStart,omitempty" binding:"omitempty,civildate" example:"2026-10-05"`
	ExamEnd         string `json:"examEnd,omitempty" binding:"omitempty,civildate" example:"2026-10-09"`
	LastTeachingDay string `json:"lastTeachingDay" binding:"required,civildate" example:"2026-11-27"`
}

// SemesterResponse renders the configured window with civil dates
type SemesterResponse struct {
	Term            string  `json:"term,omitempty"`
	Start           string  `json:"start"`
	ExamStart       *string `json:"examStart,omitempty"`
	ExamEnd         *string `json:"examEnd,omitempty"`
	LastTeachingDay string  `json:"lastTeachingDay"`
}

// StudentResponse is the public view of a student
type StudentResponse struct {
	ID       int64             `json:"id" example:"1"`
	Name     string            `json:"name" example:"Asha Kumar"`
	Username string            `json:"username" example:"asha.k"`
	Semester *SemesterResponse `json:"semester,omitempty"`
}

// FromStudent converts a model to its response
func FromStudent(s *models.Student) StudentResponse {
	resp := StudentResponse{ID: s.ID, Name: s.Name, Username: s.Username}
	if w := s.SemesterWindow(); w != nil {
		sem := &SemesterResponse{
			Start:           attendance.FormatDate(w.Start),
			LastTeachingDay: attendance.FormatDate(w.LastTeachingDay),
		}
		if s.Term != nil {
			sem.Term = string(*s.Term)
		}
		if w.ExamStart != nil && w.ExamEnd != nil {
			es, ee := attendance.FormatDate(*w.ExamStart), attendance.FormatDate(*w.ExamEnd)
			sem.ExamStart, sem.ExamEnd = &es, &ee
		}
		resp.Semester = sem
	}
	return resp
}
