package dto

import (
	"github.com/yigit/attendance/internal/domain/attendance"
)

// MarkAttendanceRequest records presence or absence for one date
type MarkAttendanceRequest struct {
	Date    string `json:"date" binding:"required,civildate" example:"2026-10-19"`
	Present *bool  `json:"present" binding:"required" example:"true"`
}

// InitialAttendanceRequest backfills a subject from aggregate counts
type InitialAttendanceRequest struct {
	Conducted int    `json:"conducted" binding:"min=0,max=2000" example:"20"`
	Attended  int    `json:"attended" binding:"min=0,ltefield=Conducted" example:"17"`
	Start     string `json:"start,omitempty" binding:"omitempty,civildate" example:"2026-08-03"`
}

// AttendanceRecordResponse is one recorded mark
type AttendanceRecordResponse struct {
	Date    string `json:"date" example:"2026-10-19"`
	Present bool   `json:"present" example:"true"`
}

// AttendanceListResponse is a page of a subject's ledger with its totals
type AttendanceListResponse struct {
	SubjectID  int64                      `json:"subjectId" example:"1"`
	Tally      attendance.Tally           `json:"tally"`
	Percentage float64                    `json:"percentage" example:"85"`
	Records    []AttendanceRecordResponse `json:"records"`
	Pagination PaginationInfo             `json:"pagination"`
}

// BackfillResponse reports how many records were laid down
type BackfillResponse struct {
	Requested int `json:"requested" example:"20"`
	Written   int `json:"written" example:"20"`
}

// BulkDeleteResponse reports how many rows a bulk delete removed
type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted" example:"4"`
}

// FromRecords converts core records
func FromRecords(records []attendance.Record) []AttendanceRecordResponse {
	out := make([]AttendanceRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, AttendanceRecordResponse{Date: attendance.FormatDate(r.Date), Present: r.Present})
	}
	return out
}
