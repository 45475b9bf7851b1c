package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/attendance/internal/app/controllers"
	"github.com/yigit/attendance/internal/app/models/dto"
	"github.com/yigit/attendance/internal/middleware"
)

// Controllers bundles the HTTP handlers mounted by SetupRouter
type Controllers struct {
	Student     *controllers.StudentController
	Subject     *controllers.SubjectController
	Attendance  *controllers.AttendanceController
	Holiday     *controllers.HolidayController
	Eligibility *controllers.EligibilityController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers) {
	router.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	students := v1.Group("/students")
	{
		students.POST("", middleware.ValidateRequest[dto.CreateStudentRequest](), c.Student.CreateStudent)
		students.GET("/:id", c.Student.GetStudent)
		students.PUT("/:id/semester", middleware.ValidateRequest[dto.SemesterRequest](), c.Student.SetSemester)
		students.DELETE("/:id/semester", c.Student.ClearSemester)

		students.GET("/:id/schedule", c.Subject.GetSchedule)
		students.GET("/:id/dashboard", c.Eligibility.Dashboard)
		students.GET("/:id/trends", c.Eligibility.Trends)
		students.DELETE("/:id/attendance", c.Attendance.ClearAttendance)

		leave := students.Group("/:id/leave")
		{
			leave.POST("/predict", middleware.ValidateRequest[dto.LeaveRequest](), c.Eligibility.PredictLeave)
			leave.POST("/report", middleware.ValidateRequest[dto.LeaveRequest](), c.Eligibility.LeaveReport)
		}
	}

	subjects := students.Group("/:id/subjects")
	{
		subjects.GET("", c.Subject.ListSubjects)
		subjects.POST("", middleware.ValidateRequest[dto.SubjectRequest](), c.Subject.CreateSubject)
		subjects.PUT("/:subjectId", middleware.ValidateRequest[dto.SubjectRequest](), c.Subject.UpdateSubject)
		subjects.DELETE("/:subjectId", c.Subject.DeleteSubject)
		subjects.PUT("/:subjectId/schedule", middleware.ValidateRequest[dto.ScheduleRequest](), c.Subject.SetSchedule)

		subjects.GET("/:subjectId/attendance", c.Attendance.ListAttendance)
		subjects.PUT("/:subjectId/attendance", middleware.ValidateRequest[dto.MarkAttendanceRequest](), c.Attendance.MarkAttendance)
		subjects.POST("/:subjectId/attendance/initial", middleware.ValidateRequest[dto.InitialAttendanceRequest](), c.Attendance.Backfill)
		subjects.DELETE("/:subjectId/attendance/:date", c.Attendance.DeleteAttendance)

		subjects.GET("/:subjectId/eligibility", c.Eligibility.SubjectEligibility)
		subjects.GET("/:subjectId/heatmap", c.Eligibility.Heatmap)
	}

	holidays := students.Group("/:id/holidays")
	{
		holidays.GET("", c.Holiday.ListHolidays)
		holidays.POST("", middleware.ValidateRequest[dto.HolidayRequest](), c.Holiday.AddHoliday)
		holidays.DELETE("", c.Holiday.DeleteByDescription)
		holidays.POST("/range", middleware.ValidateRequest[dto.HolidayRangeRequest](), c.Holiday.AddHolidayRange)
		holidays.POST("/import", middleware.ValidateRequest[dto.ImportHolidaysRequest](), c.Holiday.ImportHolidays)
		holidays.PUT("/:date", middleware.ValidateRequest[dto.HolidayRequest](), c.Holiday.UpdateHoliday)
		holidays.DELETE("/:date", c.Holiday.DeleteHoliday)
	}
}
