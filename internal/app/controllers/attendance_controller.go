package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/attendance/internal/app/models/dto"
	"github.com/yigit/attendance/internal/app/services"
	"github.com/yigit/attendance/internal/domain/attendance"
	"github.com/yigit/attendance/internal/middleware"
	"github.com/yigit/attendance/internal/pkg/helpers"
)

// AttendanceController handles attendance marks
type AttendanceController struct {
	attendanceService services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// ListAttendance returns a page of a subject's records, newest first
// @Summary List attendance
// @Tags attendance
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param subjectId path int true "Subject ID" Format(int64) minimum(1)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(50)
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceListResponse} "Attendance retrieved"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /students/{id}/subjects/{subjectId}/attendance [get]
func (c *AttendanceController) ListAttendance(ctx *gin.Context) {
	studentID, subjectID, ok := studentAndSubject(ctx)
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	result, err := c.attendanceService.ListAttendance(ctx, studentID, subjectID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	records := make([]attendance.Record, 0, len(result.Records))
	for _, r := range result.Records {
		records = append(records, attendance.Record{Date: r.RecordDate, Present: r.IsPresent})
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.AttendanceListResponse{
		SubjectID:  subjectID,
		Tally:      result.Tally,
		Percentage: result.Tally.Percentage(),
		Records:    dto.FromRecords(records),
		Pagination: helpers.NewPaginationInfo(result.Total, page, size),
	}))
}

// MarkAttendance records presence or absence for one date
// @Summary Mark attendance
// @Description Idempotent: marking the same date again overwrites the earlier mark.
// @Tags attendance
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param subjectId path int true "Subject ID" Format(int64) minimum(1)
// @Param request body dto.MarkAttendanceRequest true "Mark"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceRecordResponse} "Attendance recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /students/{id}/subjects/{subjectId}/attendance [put]
func (c *AttendanceController) MarkAttendance(ctx *gin.Context) {
	studentID, subjectID, ok := studentAndSubject(ctx)
	if !ok {
		return
	}
	req, ok := middleware.ValidatedBody[dto.MarkAttendanceRequest](ctx)
	if !ok {
		return
	}
	d, ok := date(ctx, "date", req.Date)
	if !ok {
		return
	}

	if err := c.attendanceService.MarkAttendance(ctx, studentID, subjectID, d, *req.Present); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.AttendanceRecordResponse{
		Date:    attendance.FormatDate(d),
		Present: *req.Present,
	}))
}

// DeleteAttendance removes the mark on one date
// @Summary Delete attendance mark
// @Tags attendance
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param subjectId path int true "Subject ID" Format(int64) minimum(1)
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Attendance deleted"
// @Failure 404 {object} dto.ErrorResponse "Attendance record not found"
// @Router /students/{id}/subjects/{subjectId}/attendance/{date} [delete]
func (c *AttendanceController) DeleteAttendance(ctx *gin.Context) {
	studentID, subjectID, ok := studentAndSubject(ctx)
	if !ok {
		return
	}
	d, ok := date(ctx, "date", ctx.Param("date"))
	if !ok {
		return
	}

	if err := c.attendanceService.DeleteAttendance(ctx, studentID, subjectID, d); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.SuccessResponse{Message: "Attendance deleted successfully"}))
}

// Backfill lays aggregate counts onto the earliest class days
// @Summary Initial attendance
// @Description Replaces the subject's ledger: the first attended class days are present, the rest absent.
// @Tags attendance
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param subjectId path int true "Subject ID" Format(int64) minimum(1)
// @Param request body dto.InitialAttendanceRequest true "Counts"
// @Success 200 {object} dto.APIResponse{data=dto.BackfillResponse} "Attendance backfilled"
// @Failure 400 {object} dto.ErrorResponse "Invalid counts"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 422 {object} dto.ErrorResponse "Subject has no scheduled weekdays"
// @Router /students/{id}/subjects/{subjectId}/attendance/initial [post]
func (c *AttendanceController) Backfill(ctx *gin.Context) {
	studentID, subjectID, ok := studentAndSubject(ctx)
	if !ok {
		return
	}
	req, ok := middleware.ValidatedBody[dto.InitialAttendanceRequest](ctx)
	if !ok {
		return
	}
	start, err := helpers.ParseOptionalDate("start", req.Start)
	if err != nil {
		middleware.RespondBadRequest(ctx, "start", err.Error())
		return
	}

	result, err := c.attendanceService.Backfill(ctx, studentID, subjectID, req.Conducted, req.Attended, start)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.BackfillResponse{
		Requested: result.Requested,
		Written:   result.Written,
	}))
}

// ClearAttendance deletes every mark on a date or inclusive range
// @Summary Bulk delete attendance
// @Tags attendance
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param from query string true "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD), defaults to from"
// @Success 200 {object} dto.APIResponse{data=dto.BulkDeleteResponse} "Attendance deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid date range"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/attendance [delete]
func (c *AttendanceController) ClearAttendance(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}
	from := ctx.Query("from")
	to := ctx.DefaultQuery("to", from)
	start, end, ok := dateRange(ctx, "from", from, "to", to, 0)
	if !ok {
		return
	}

	n, err := c.attendanceService.ClearRange(ctx, studentID, start, end)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.BulkDeleteResponse{Deleted: n}))
}
