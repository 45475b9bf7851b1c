package dto

import "github.com/yigit/attendance/internal/domain/attendance"

// HolidayRequest adds a single holiday
type HolidayRequest struct {
	Date        string `json:"date" binding:"required,civildate" example:"2026-10-02"`
	Description string `json:"description" binding:"max=200" example:"Gandhi Jayanti"`
}

// HolidayRangeRequest adds every date in an inclusive range
type HolidayRangeRequest struct {
	From        string `json:"from" binding:"required,civildate" example:"2026-12-21"`
	To          string `json:"to" binding:"required,civildate" example:"2027-01-01"`
	Description string `json:"description" binding:"max=200" example:"Winter Break"`
}

// ImportHolidaysRequest imports public holidays for a date range
type ImportHolidaysRequest struct {
	From string `json:"from" binding:"required,civildate" example:"2026-08-01"`
	To   string `json:"to" binding:"required,civildate" example:"2026-12-31"`
}

// HolidayResponse is one blackout date
type HolidayResponse struct {
	Date        string `json:"date" example:"2026-10-02"`
	Description string `json:"description" example:"Gandhi Jayanti"`
}

// ImportHolidaysResponse lists what an import wrote
type ImportHolidaysResponse struct {
	Region   string            `json:"region" example:"us"`
	Imported int               `json:"imported" example:"3"`
	Holidays []HolidayResponse `json:"holidays"`
}

// FromHolidays converts core holidays
func FromHolidays(hs []attendance.Holiday) []HolidayResponse {
	out := make([]HolidayResponse, 0, len(hs))
	for _, h := range hs {
		out = append(out, HolidayResponse{Date: attendance.FormatDate(h.Date), Description: h.Description})
	}
	return out
}
