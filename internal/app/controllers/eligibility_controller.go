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

// EligibilityController serves the dashboard, leave planning and insights
type EligibilityController struct {
	eligibilityService services.EligibilityService
	insightsService    services.InsightsService
}

// NewEligibilityController creates a new EligibilityController
func NewEligibilityController(eligibilityService services.EligibilityService, insightsService services.InsightsService) *EligibilityController {
	return &EligibilityController{eligibilityService: eligibilityService, insightsService: insightsService}
}

// Dashboard assesses every subject of a student
// @Summary Eligibility dashboard
// @Description Eligibility, safe bunks, recovery classes and, with a live semester, remaining classes and best case.
// @Tags eligibility
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/dashboard [get]
func (c *EligibilityController) Dashboard(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}

	d, err := c.eligibilityService.Dashboard(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	subjects := d.Subjects
	if subjects == nil {
		subjects = []attendance.Assessment{}
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.DashboardResponse{
		StudentID:         d.StudentID,
		Today:             attendance.FormatDate(d.Today),
		Threshold:         attendance.Threshold,
		Bounded:           d.Bounded,
		Overall:           d.Overall,
		OverallPercentage: d.Overall.Percentage(),
		Subjects:          subjects,
	}))
}

// SubjectEligibility assesses one subject
// @Summary Subject eligibility
// @Tags eligibility
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param subjectId path int true "Subject ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=attendance.Assessment} "Assessment"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /students/{id}/subjects/{subjectId}/eligibility [get]
func (c *EligibilityController) SubjectEligibility(ctx *gin.Context) {
	studentID, subjectID, ok := studentAndSubject(ctx)
	if !ok {
		return
	}

	a, err := c.eligibilityService.SubjectEligibility(ctx, studentID, subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(a))
}

// PredictLeave returns per-subject percentages right after a leave window
// @Summary Predict leave
// @Tags leave
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.LeaveRequest true "Inclusive leave window"
// @Success 200 {object} dto.APIResponse{data=dto.LeavePredictionResponse} "Prediction"
// @Failure 400 {object} dto.ErrorResponse "Invalid date range"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/leave/predict [post]
func (c *EligibilityController) PredictLeave(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}
	req, ok := middleware.ValidatedBody[dto.LeaveRequest](ctx)
	if !ok {
		return
	}
	start, end, ok := dateRange(ctx, "start", req.Start, "end", req.End, maxProjectionDays)
	if !ok {
		return
	}

	preds, err := c.eligibilityService.PredictLeave(ctx, studentID, start, end)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.LeavePrediction, 0, len(preds))
	for _, p := range preds {
		out = append(out, dto.LeavePrediction{
			SubjectID:  p.SubjectID,
			Name:       p.Name,
			Percentage: p.Percentage,
			Eligible:   p.Eligible,
		})
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.LeavePredictionResponse{
		Start:       attendance.FormatDate(start),
		End:         attendance.FormatDate(end),
		Predictions: out,
	}))
}

// LeaveReport runs the full leave simulation
// @Summary Leave report
// @Description Immediate impact, rest-of-semester projection and an overall verdict.
// @Tags leave
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.LeaveRequest true "Inclusive leave window"
// @Success 200 {object} dto.APIResponse{data=dto.LeaveReportResponse} "Report"
// @Failure 400 {object} dto.ErrorResponse "Invalid date range"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/leave/report [post]
func (c *EligibilityController) LeaveReport(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}
	req, ok := middleware.ValidatedBody[dto.LeaveRequest](ctx)
	if !ok {
		return
	}
	start, end, ok := dateRange(ctx, "start", req.Start, "end", req.End, maxProjectionDays)
	if !ok {
		return
	}

	report, err := c.eligibilityService.LeaveReport(ctx, studentID, start, end)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.FromLeaveReport(report)))
}

// Trends returns cumulative weekly attendance
// @Summary Attendance trends
// @Tags insights
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.TrendsResponse} "Trends"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/trends [get]
func (c *EligibilityController) Trends(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}

	t, err := c.insightsService.Trends(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.TrendsResponse{Overall: t.Overall, Subjects: make([]dto.SubjectTrend, 0, len(t.Subjects))}
	for _, s := range t.Subjects {
		resp.Subjects = append(resp.Subjects, dto.SubjectTrend{SubjectID: s.SubjectID, Name: s.Name, Points: s.Points})
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(resp))
}

// Heatmap returns one mark per day of a month for a subject
// @Summary Month heat map
// @Tags insights
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param subjectId path int true "Subject ID" Format(int64) minimum(1)
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} dto.APIResponse{data=dto.HeatmapResponse} "Heat map"
// @Failure 400 {object} dto.ErrorResponse "Invalid month"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /students/{id}/subjects/{subjectId}/heatmap [get]
func (c *EligibilityController) Heatmap(ctx *gin.Context) {
	studentID, subjectID, ok := studentAndSubject(ctx)
	if !ok {
		return
	}
	year, month, err := helpers.ParseMonth(ctx.Query("month"))
	if err != nil {
		middleware.RespondBadRequest(ctx, "month", err.Error())
		return
	}

	marks, err := c.insightsService.Heatmap(ctx, studentID, subjectID, year, month)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.FromDayMarks(subjectID, year, month, marks)))
}
