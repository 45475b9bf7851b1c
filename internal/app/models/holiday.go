package models

import "time"

// Holiday is one blackout date of a student ('holidays' table)
type Holiday struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"studentId" db:"student_id"`
	HolidayDate time.Time `json:"holidayDate" db:"holiday_date"`
	Description string    `json:"description" db:"description"`
}
