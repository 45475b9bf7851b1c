package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/app/models/dto"
	"github.com/yigit/attendance/internal/app/services"
	"github.com/yigit/attendance/internal/domain/attendance"
	"github.com/yigit/attendance/internal/middleware"
	"github.com/yigit/attendance/internal/pkg/helpers"
)

// StudentController handles student profile and semester settings
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// CreateStudent registers a student
// @Summary Create a student
// @Description Registers a student profile. Attendance is tracked in infinite-horizon mode until a semester is configured.
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Username already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	req, ok := middleware.ValidatedBody[dto.CreateStudentRequest](ctx)
	if !ok {
		return
	}

	student := &models.Student{Name: req.Name, Username: req.Username}
	id, err := c.studentService.CreateStudent(ctx, student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student.ID = id
	ctx.JSON(http.StatusCreated, dto.NewDataResponse(dto.FromStudent(student)))
}

// GetStudent retrieves a student
// @Summary Get student details
// @Tags students
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.FromStudent(student)))
}

// SetSemester configures the semester window
// @Summary Configure semester
// @Description Sets the semester start, the optional exam pause and the last teaching day.
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.SemesterRequest true "Semester window"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Semester updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid semester settings"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/semester [put]
func (c *StudentController) SetSemester(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}
	req, ok := middleware.ValidatedBody[dto.SemesterRequest](ctx)
	if !ok {
		return
	}

	start, ok := date(ctx, "start", req.Start)
	if !ok {
		return
	}
	last, ok := date(ctx, "lastTeachingDay", req.LastTeachingDay)
	if !ok {
		return
	}
	examStart, err := helpers.ParseOptionalDate("examStart", req.ExamStart)
	if err != nil {
		middleware.RespondBadRequest(ctx, "examStart", err.Error())
		return
	}
	examEnd, err := helpers.ParseOptionalDate("examEnd", req.ExamEnd)
	if err != nil {
		middleware.RespondBadRequest(ctx, "examEnd", err.Error())
		return
	}

	var term *models.Term
	if req.Term != "" {
		t := models.Term(req.Term)
		term = &t
	}

	student, err := c.studentService.SetSemester(ctx, id, term, attendance.SemesterWindow{
		Start:           start,
		ExamStart:       examStart,
		ExamEnd:         examEnd,
		LastTeachingDay: last,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.FromStudent(student)))
}

// ClearSemester removes the semester window
// @Summary Clear semester
// @Tags students
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Semester cleared"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/semester [delete]
func (c *StudentController) ClearSemester(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}

	student, err := c.studentService.ClearSemester(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.FromStudent(student)))
}
