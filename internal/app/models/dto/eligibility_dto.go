package dto

import (
	"time"

	"github.com/yigit/attendance/internal/domain/attendance"
)

// DashboardResponse is the per-student overview card list
type DashboardResponse struct {
	StudentID         int64                   `json:"studentId" example:"1"`
	Today             string                  `json:"today" example:"2026-10-19"`
	Threshold         float64                 `json:"threshold" example:"75"`
	Bounded           bool                    `json:"bounded"`
	Overall           attendance.Tally        `json:"overall"`
	OverallPercentage float64                 `json:"overallPercentage" example:"82.5"`
	Subjects          []attendance.Assessment `json:"subjects"`
}

// LeaveRequest is an inclusive leave window
type LeaveRequest struct {
	Start string `json:"start" binding:"required,civildate" example:"2026-10-20"`
	End   string `json:"end" binding:"required,civildate" example:"2026-10-23"`
}

// LeavePrediction is the immediate post-leave percentage of one subject
type LeavePrediction struct {
	SubjectID  int64   `json:"subjectId" example:"1"`
	Name       string  `json:"name" example:"Physics"`
	Percentage float64 `json:"percentage" example:"72.5"`
	Eligible   bool    `json:"eligible"`
}

// LeavePredictionResponse answers POST /leave/predict
type LeavePredictionResponse struct {
	Start       string            `json:"start"`
	End         string            `json:"end"`
	Predictions []LeavePrediction `json:"predictions"`
}

// LeaveReportResponse answers POST /leave/report
type LeaveReportResponse struct {
	Start     string                     `json:"start"`
	End       string                     `json:"end"`
	Verdict   attendance.Verdict         `json:"verdict" example:"at_risk"`
	AtRisk    []attendance.SubjectID     `json:"atRisk"`
	Projected bool                       `json:"projected"`
	Subjects  []attendance.SubjectImpact `json:"subjects"`
}

// FromLeaveReport converts the simulator output
func FromLeaveReport(r *attendance.LeaveReport) LeaveReportResponse {
	atRisk := r.AtRisk
	if atRisk == nil {
		atRisk = []attendance.SubjectID{}
	}
	return LeaveReportResponse{
		Start:     attendance.FormatDate(r.Start),
		End:       attendance.FormatDate(r.End),
		Verdict:   r.Verdict,
		AtRisk:    atRisk,
		Projected: r.Projected,
		Subjects:  r.Subjects,
	}
}

// SubjectTrend is the weekly series of one subject
type SubjectTrend struct {
	SubjectID int64                   `json:"subjectId"`
	Name      string                  `json:"name"`
	Points    []attendance.TrendPoint `json:"points"`
}

// TrendsResponse holds the overall and per-subject weekly series
type TrendsResponse struct {
	Overall  []attendance.TrendPoint `json:"overall"`
	Subjects []SubjectTrend          `json:"subjects"`
}

// HeatmapDay is one cell of the month view
type HeatmapDay struct {
	Date string          `json:"date" example:"2026-10-02"`
	Mark attendance.Mark `json:"mark" example:"holiday"`
	Note string          `json:"note,omitempty" example:"Gandhi Jayanti"`
}

// HeatmapResponse is a month of marks for one subject
type HeatmapResponse struct {
	SubjectID int64        `json:"subjectId"`
	Month     string       `json:"month" example:"2026-10"`
	Days      []HeatmapDay `json:"days"`
}

// FromDayMarks converts the core month view
func FromDayMarks(subjectID int64, year int, month time.Month, marks []attendance.DayMark) HeatmapResponse {
	days := make([]HeatmapDay, 0, len(marks))
	for _, m := range marks {
		days = append(days, HeatmapDay{Date: attendance.FormatDate(m.Date), Mark: m.Mark, Note: m.Note})
	}
	return HeatmapResponse{
		SubjectID: subjectID,
		Month:     time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
		Days:      days,
	}
}
