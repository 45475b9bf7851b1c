package models

import "time"

// Subject defines a course tracked by a student ('subjects' table)
type Subject struct {
	ID             int64     `json:"id" db:"id" example:"1"`
	StudentID      int64     `json:"studentId" db:"student_id" example:"1"`
	Name           string    `json:"name" db:"name" example:"Physics"`
	ClassesPerWeek int       `json:"classesPerWeek" db:"classes_per_week" example:"3"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
