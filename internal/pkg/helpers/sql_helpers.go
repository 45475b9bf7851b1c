package helpers

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/yigit/attendance/internal/domain/attendance"
)

// NullDate converts an optional civil date to a pgtype.Date.
// A nil pointer becomes SQL NULL.
func NullDate(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: attendance.Day(*t), Valid: true}
}

// DatePtr converts a scanned pgtype.Date back to an optional civil date.
func DatePtr(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}
	t := attendance.Day(d.Time)
	return &t
}

// GetContentNullString converts a string value to pgtype.Text.
// An empty string becomes SQL NULL.
func GetContentNullString(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}
