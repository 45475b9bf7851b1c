package routes

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/app/services"
	"github.com/yigit/attendance/internal/domain/attendance"
)

// ptr returns the typed value at i, or the zero value when the mock was set
// up with nil.
func ptr[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)
	return v
}

type mockStudentService struct{ mock.Mock }

func (m *mockStudentService) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	args := m.Called(ctx, student)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	args := m.Called(ctx, id)
	return ptr[*models.Student](args, 0), args.Error(1)
}

func (m *mockStudentService) SetSemester(ctx context.Context, id int64, term *models.Term, window attendance.SemesterWindow) (*models.Student, error) {
	args := m.Called(ctx, id, term, window)
	return ptr[*models.Student](args, 0), args.Error(1)
}

func (m *mockStudentService) ClearSemester(ctx context.Context, id int64) (*models.Student, error) {
	args := m.Called(ctx, id)
	return ptr[*models.Student](args, 0), args.Error(1)
}

type mockSubjectService struct{ mock.Mock }

func (m *mockSubjectService) CreateSubject(ctx context.Context, subject *models.Subject, days []time.Weekday) (*services.SubjectDetail, error) {
	args := m.Called(ctx, subject, days)
	return ptr[*services.SubjectDetail](args, 0), args.Error(1)
}

func (m *mockSubjectService) GetSubject(ctx context.Context, studentID, subjectID int64) (*services.SubjectDetail, error) {
	args := m.Called(ctx, studentID, subjectID)
	return ptr[*services.SubjectDetail](args, 0), args.Error(1)
}

func (m *mockSubjectService) ListSubjects(ctx context.Context, studentID int64) ([]services.SubjectDetail, error) {
	args := m.Called(ctx, studentID)
	return ptr[[]services.SubjectDetail](args, 0), args.Error(1)
}

func (m *mockSubjectService) UpdateSubject(ctx context.Context, subject *models.Subject, days []time.Weekday) (*services.SubjectDetail, error) {
	args := m.Called(ctx, subject, days)
	return ptr[*services.SubjectDetail](args, 0), args.Error(1)
}

func (m *mockSubjectService) DeleteSubject(ctx context.Context, studentID, subjectID int64) error {
	return m.Called(ctx, studentID, subjectID).Error(0)
}

func (m *mockSubjectService) SetSchedule(ctx context.Context, studentID, subjectID int64, days []time.Weekday) (*services.SubjectDetail, error) {
	args := m.Called(ctx, studentID, subjectID, days)
	return ptr[*services.SubjectDetail](args, 0), args.Error(1)
}

func (m *mockSubjectService) GetSchedule(ctx context.Context, studentID int64) (*attendance.Schedule, error) {
	args := m.Called(ctx, studentID)
	return ptr[*attendance.Schedule](args, 0), args.Error(1)
}

type mockAttendanceService struct{ mock.Mock }

func (m *mockAttendanceService) MarkAttendance(ctx context.Context, studentID, subjectID int64, date time.Time, present bool) error {
	return m.Called(ctx, studentID, subjectID, date, present).Error(0)
}

func (m *mockAttendanceService) DeleteAttendance(ctx context.Context, studentID, subjectID int64, date time.Time) error {
	return m.Called(ctx, studentID, subjectID, date).Error(0)
}

func (m *mockAttendanceService) ClearRange(ctx context.Context, studentID int64, from, to time.Time) (int64, error) {
	args := m.Called(ctx, studentID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAttendanceService) Backfill(ctx context.Context, studentID, subjectID int64, conducted, attended int, start *time.Time) (*services.BackfillResult, error) {
	args := m.Called(ctx, studentID, subjectID, conducted, attended, start)
	return ptr[*services.BackfillResult](args, 0), args.Error(1)
}

func (m *mockAttendanceService) ListAttendance(ctx context.Context, studentID, subjectID int64, page, size int) (*services.AttendancePage, error) {
	args := m.Called(ctx, studentID, subjectID, page, size)
	return ptr[*services.AttendancePage](args, 0), args.Error(1)
}

type mockHolidayService struct{ mock.Mock }

func (m *mockHolidayService) ListHolidays(ctx context.Context, studentID int64) ([]attendance.Holiday, error) {
	args := m.Called(ctx, studentID)
	return ptr[[]attendance.Holiday](args, 0), args.Error(1)
}

func (m *mockHolidayService) AddHoliday(ctx context.Context, studentID int64, date time.Time, description string) (attendance.Holiday, error) {
	args := m.Called(ctx, studentID, date, description)
	return ptr[attendance.Holiday](args, 0), args.Error(1)
}

func (m *mockHolidayService) AddHolidayRange(ctx context.Context, studentID int64, from, to time.Time, description string) ([]attendance.Holiday, error) {
	args := m.Called(ctx, studentID, from, to, description)
	return ptr[[]attendance.Holiday](args, 0), args.Error(1)
}

func (m *mockHolidayService) UpdateHoliday(ctx context.Context, studentID int64, oldDate, newDate time.Time, description string) (attendance.Holiday, error) {
	args := m.Called(ctx, studentID, oldDate, newDate, description)
	return ptr[attendance.Holiday](args, 0), args.Error(1)
}

func (m *mockHolidayService) DeleteHoliday(ctx context.Context, studentID int64, date time.Time) error {
	return m.Called(ctx, studentID, date).Error(0)
}

func (m *mockHolidayService) DeleteByDescription(ctx context.Context, studentID int64, description string) (int64, error) {
	args := m.Called(ctx, studentID, description)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockHolidayService) ImportPublicHolidays(ctx context.Context, studentID int64, from, to time.Time) (*services.ImportResult, error) {
	args := m.Called(ctx, studentID, from, to)
	return ptr[*services.ImportResult](args, 0), args.Error(1)
}

type mockEligibilityService struct{ mock.Mock }

func (m *mockEligibilityService) Dashboard(ctx context.Context, studentID int64) (*services.Dashboard, error) {
	args := m.Called(ctx, studentID)
	return ptr[*services.Dashboard](args, 0), args.Error(1)
}

func (m *mockEligibilityService) SubjectEligibility(ctx context.Context, studentID, subjectID int64) (*attendance.Assessment, error) {
	args := m.Called(ctx, studentID, subjectID)
	return ptr[*attendance.Assessment](args, 0), args.Error(1)
}

func (m *mockEligibilityService) PredictLeave(ctx context.Context, studentID int64, start, end time.Time) ([]services.LeavePrediction, error) {
	args := m.Called(ctx, studentID, start, end)
	return ptr[[]services.LeavePrediction](args, 0), args.Error(1)
}

func (m *mockEligibilityService) LeaveReport(ctx context.Context, studentID int64, start, end time.Time) (*attendance.LeaveReport, error) {
	args := m.Called(ctx, studentID, start, end)
	return ptr[*attendance.LeaveReport](args, 0), args.Error(1)
}

type mockInsightsService struct{ mock.Mock }

func (m *mockInsightsService) Trends(ctx context.Context, studentID int64) (*services.Trends, error) {
	args := m.Called(ctx, studentID)
	return ptr[*services.Trends](args, 0), args.Error(1)
}

func (m *mockInsightsService) Heatmap(ctx context.Context, studentID, subjectID int64, year int, month time.Month) ([]attendance.DayMark, error) {
	args := m.Called(ctx, studentID, subjectID, year, month)
	return ptr[[]attendance.DayMark](args, 0), args.Error(1)
}
