package models

import "time"

// AttendanceRecord is one row of 'attendance_records'. At most one row exists
// per (subject_id, record_date).
type AttendanceRecord struct {
	ID         int64     `json:"id" db:"id"`
	SubjectID  int64     `json:"subjectId" db:"subject_id"`
	RecordDate time.Time `json:"recordDate" db:"record_date"`
	IsPresent  bool      `json:"isPresent" db:"is_present"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
