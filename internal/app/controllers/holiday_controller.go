package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/attendance/internal/app/models/dto"
	"github.com/yigit/attendance/internal/app/services"
	"github.com/yigit/attendance/internal/domain/attendance"
	"github.com/yigit/attendance/internal/middleware"
)

// HolidayController manages a student's blackout calendar
type HolidayController struct {
	holidayService services.HolidayService
}

// NewHolidayController creates a new HolidayController
func NewHolidayController(holidayService services.HolidayService) *HolidayController {
	return &HolidayController{holidayService: holidayService}
}

// ListHolidays lists holidays in date order
// @Summary List holidays
// @Tags holidays
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.HolidayResponse} "Holidays retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/holidays [get]
func (c *HolidayController) ListHolidays(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}

	list, err := c.holidayService.ListHolidays(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.FromHolidays(list)))
}

// AddHoliday adds or re-describes one holiday
// @Summary Add holiday
// @Description An empty description is stored as "Official Holiday".
// @Tags holidays
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.HolidayRequest true "Holiday"
// @Success 201 {object} dto.APIResponse{data=dto.HolidayResponse} "Holiday added"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/holidays [post]
func (c *HolidayController) AddHoliday(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}
	req, ok := middleware.ValidatedBody[dto.HolidayRequest](ctx)
	if !ok {
		return
	}
	d, ok := date(ctx, "date", req.Date)
	if !ok {
		return
	}

	h, err := c.holidayService.AddHoliday(ctx, studentID, d, req.Description)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewDataResponse(dto.FromHolidays([]attendance.Holiday{h})[0]))
}

// AddHolidayRange adds every date of an inclusive range
// @Summary Add holiday range
// @Tags holidays
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.HolidayRangeRequest true "Holiday range"
// @Success 201 {object} dto.APIResponse{data=[]dto.HolidayResponse} "Holidays added"
// @Failure 400 {object} dto.ErrorResponse "Invalid date range"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/holidays/range [post]
func (c *HolidayController) AddHolidayRange(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}
	req, ok := middleware.ValidatedBody[dto.HolidayRangeRequest](ctx)
	if !ok {
		return
	}
	from, to, ok := dateRange(ctx, "from", req.From, "to", req.To, maxHolidayRangeDays)
	if !ok {
		return
	}

	added, err := c.holidayService.AddHolidayRange(ctx, studentID, from, to, req.Description)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewDataResponse(dto.FromHolidays(added)))
}

// UpdateHoliday moves a holiday to a new date and description
// @Summary Update holiday
// @Tags holidays
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param date path string true "Current date (YYYY-MM-DD)"
// @Param request body dto.HolidayRequest true "New date and description"
// @Success 200 {object} dto.APIResponse{data=dto.HolidayResponse} "Holiday updated"
// @Failure 404 {object} dto.ErrorResponse "Holiday not found"
// @Router /students/{id}/holidays/{date} [put]
func (c *HolidayController) UpdateHoliday(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}
	oldDate, ok := date(ctx, "date", ctx.Param("date"))
	if !ok {
		return
	}
	req, ok := middleware.ValidatedBody[dto.HolidayRequest](ctx)
	if !ok {
		return
	}
	newDate, ok := date(ctx, "date", req.Date)
	if !ok {
		return
	}

	h, err := c.holidayService.UpdateHoliday(ctx, studentID, oldDate, newDate, req.Description)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.FromHolidays([]attendance.Holiday{h})[0]))
}

// DeleteHoliday removes the holiday on a date
// @Summary Delete holiday
// @Tags holidays
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Holiday deleted"
// @Failure 404 {object} dto.ErrorResponse "Holiday not found"
// @Router /students/{id}/holidays/{date} [delete]
func (c *HolidayController) DeleteHoliday(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}
	d, ok := date(ctx, "date", ctx.Param("date"))
	if !ok {
		return
	}

	if err := c.holidayService.DeleteHoliday(ctx, studentID, d); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.SuccessResponse{Message: "Holiday deleted successfully"}))
}

// DeleteByDescription removes every holiday with a given description
// @Summary Delete holidays by description
// @Tags holidays
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param description query string true "Exact description"
// @Success 200 {object} dto.APIResponse{data=dto.BulkDeleteResponse} "Holidays deleted"
// @Failure 400 {object} dto.ErrorResponse "Missing description"
// @Router /students/{id}/holidays [delete]
func (c *HolidayController) DeleteByDescription(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}
	description := ctx.Query("description")
	if description == "" {
		middleware.RespondBadRequest(ctx, "description", "description is required")
		return
	}

	n, err := c.holidayService.DeleteByDescription(ctx, studentID, description)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.BulkDeleteResponse{Deleted: n}))
}

// ImportHolidays imports observed public holidays for a date range
// @Summary Import public holidays
// @Tags holidays
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.ImportHolidaysRequest true "Range"
// @Success 200 {object} dto.APIResponse{data=dto.ImportHolidaysResponse} "Holidays imported"
// @Failure 400 {object} dto.ErrorResponse "Invalid date range"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/holidays/import [post]
func (c *HolidayController) ImportHolidays(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}
	req, ok := middleware.ValidatedBody[dto.ImportHolidaysRequest](ctx)
	if !ok {
		return
	}
	from, to, ok := dateRange(ctx, "from", req.From, "to", req.To, maxProjectionDays)
	if !ok {
		return
	}

	res, err := c.holidayService.ImportPublicHolidays(ctx, studentID, from, to)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.ImportHolidaysResponse{
		Region:   res.Region,
		Imported: len(res.Holidays),
		Holidays: dto.FromHolidays(res.Holidays),
	}))
}
