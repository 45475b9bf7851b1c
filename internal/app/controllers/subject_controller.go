package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/app/models/dto"
	"github.com/yigit/attendance/internal/app/services"
	"github.com/yigit/attendance/internal/middleware"
)

// weekOrder lists weekdays Monday first for timetable output
var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// SubjectController handles subjects and the weekly timetable
type SubjectController struct {
	subjectService services.SubjectService
}

// NewSubjectController creates a new SubjectController
func NewSubjectController(subjectService services.SubjectService) *SubjectController {
	return &SubjectController{subjectService: subjectService}
}

func subjectResponse(d *services.SubjectDetail) dto.SubjectResponse {
	return dto.FromSubject(d.Subject, d.Days)
}

// ListSubjects lists a student's subjects
// @Summary List subjects
// @Tags subjects
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.SubjectResponse} "Subjects retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/subjects [get]
func (c *SubjectController) ListSubjects(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}

	subjects, err := c.subjectService.ListSubjects(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		out = append(out, subjectResponse(&subjects[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(out))
}

// CreateSubject adds a subject
// @Summary Create a subject
// @Description Adds a subject; the optional days list sets its weekly schedule.
// @Tags subjects
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.SubjectRequest true "Subject information"
// @Success 201 {object} dto.APIResponse{data=dto.SubjectResponse} "Subject created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Subject already exists"
// @Router /students/{id}/subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}
	req, ok := middleware.ValidatedBody[dto.SubjectRequest](ctx)
	if !ok {
		return
	}
	days, ok := weekdays(ctx, req.Days)
	if !ok {
		return
	}

	detail, err := c.subjectService.CreateSubject(ctx, &models.Subject{
		StudentID:      studentID,
		Name:           req.Name,
		ClassesPerWeek: req.ClassesPerWeek,
	}, days)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewDataResponse(subjectResponse(detail)))
}

// UpdateSubject renames a subject or changes its frequency
// @Summary Update a subject
// @Tags subjects
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param subjectId path int true "Subject ID" Format(int64) minimum(1)
// @Param request body dto.SubjectRequest true "Subject information"
// @Success 200 {object} dto.APIResponse{data=dto.SubjectResponse} "Subject updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 409 {object} dto.ErrorResponse "Subject already exists"
// @Router /students/{id}/subjects/{subjectId} [put]
func (c *SubjectController) UpdateSubject(ctx *gin.Context) {
	studentID, subjectID, ok := studentAndSubject(ctx)
	if !ok {
		return
	}
	req, ok := middleware.ValidatedBody[dto.SubjectRequest](ctx)
	if !ok {
		return
	}
	days, ok := weekdays(ctx, req.Days)
	if !ok {
		return
	}

	detail, err := c.subjectService.UpdateSubject(ctx, &models.Subject{
		ID:             subjectID,
		StudentID:      studentID,
		Name:           req.Name,
		ClassesPerWeek: req.ClassesPerWeek,
	}, days)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(subjectResponse(detail)))
}

// DeleteSubject removes a subject with its attendance and schedule
// @Summary Delete a subject
// @Tags subjects
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param subjectId path int true "Subject ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Subject deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /students/{id}/subjects/{subjectId} [delete]
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	studentID, subjectID, ok := studentAndSubject(ctx)
	if !ok {
		return
	}

	if err := c.subjectService.DeleteSubject(ctx, studentID, subjectID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.SuccessResponse{Message: "Subject deleted successfully"}))
}

// SetSchedule replaces the weekdays a subject meets on
// @Summary Set subject schedule
// @Tags schedule
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param subjectId path int true "Subject ID" Format(int64) minimum(1)
// @Param request body dto.ScheduleRequest true "Weekdays"
// @Success 200 {object} dto.APIResponse{data=dto.SubjectResponse} "Schedule updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid weekday"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /students/{id}/subjects/{subjectId}/schedule [put]
func (c *SubjectController) SetSchedule(ctx *gin.Context) {
	studentID, subjectID, ok := studentAndSubject(ctx)
	if !ok {
		return
	}
	req, ok := middleware.ValidatedBody[dto.ScheduleRequest](ctx)
	if !ok {
		return
	}
	names := req.Days
	if names == nil {
		names = []string{}
	}
	days, ok := weekdays(ctx, names)
	if !ok {
		return
	}

	detail, err := c.subjectService.SetSchedule(ctx, studentID, subjectID, days)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(subjectResponse(detail)))
}

// GetSchedule returns the weekly timetable, Monday first
// @Summary Get weekly schedule
// @Tags schedule
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.ScheduleDay} "Schedule retrieved"
// @Router /students/{id}/schedule [get]
func (c *SubjectController) GetSchedule(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}

	sched, err := c.subjectService.GetSchedule(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.ScheduleDay, 0, len(weekOrder))
	for _, d := range weekOrder {
		ids := sched.SubjectsOn(d)
		subjects := make([]int64, 0, len(ids))
		for _, id := range ids {
			subjects = append(subjects, int64(id))
		}
		out = append(out, dto.ScheduleDay{Day: dto.WeekdayName(d), Subjects: subjects})
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(out))
}
