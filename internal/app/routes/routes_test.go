package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/attendance/internal/app/controllers"
	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/app/models/dto"
	"github.com/yigit/attendance/internal/app/services"
	"github.com/yigit/attendance/internal/domain/attendance"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.Register(v); err != nil {
			panic(err)
		}
	}
	m.Run()
}

type harness struct {
	router      *gin.Engine
	students    *mockStudentService
	subjects    *mockSubjectService
	attendance  *mockAttendanceService
	holidays    *mockHolidayService
	eligibility *mockEligibilityService
	insights    *mockInsightsService
}

func newHarness(t *testing.T) *harness {
	h := &harness{
		router:      gin.New(),
		students:    &mockStudentService{},
		subjects:    &mockSubjectService{},
		attendance:  &mockAttendanceService{},
		holidays:    &mockHolidayService{},
		eligibility: &mockEligibilityService{},
		insights:    &mockInsightsService{},
	}
	SetupRouter(h.router, Controllers{
		Student:     controllers.NewStudentController(h.students),
		Subject:     controllers.NewSubjectController(h.subjects),
		Attendance:  controllers.NewAttendanceController(h.attendance),
		Holiday:     controllers.NewHolidayController(h.holidays),
		Eligibility: controllers.NewEligibilityController(h.eligibility, h.insights),
	})
	t.Cleanup(func() {
		h.students.AssertExpectations(t)
		h.subjects.AssertExpectations(t)
		h.attendance.AssertExpectations(t)
		h.holidays.AssertExpectations(t)
		h.eligibility.AssertExpectations(t)
		h.insights.AssertExpectations(t)
	})
	return h
}

func (h *harness) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

// data decodes the "data" member of the success envelope into out
func data(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorCode {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestPing(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestCreateStudent(t *testing.T) {
	h := newHarness(t)
	h.students.On("CreateStudent", mock.Anything, mock.MatchedBy(func(s *models.Student) bool {
		return s.Username == "asha.k" && s.Name == "Asha Kumar"
	})).Return(int64(7), nil)

	w := h.do(http.MethodPost, "/api/v1/students", dto.CreateStudentRequest{Name: "Asha Kumar", Username: "asha.k"})
	require.Equal(t, http.StatusCreated, w.Code)

	var got dto.StudentResponse
	data(t, w, &got)
	assert.Equal(t, int64(7), got.ID)
	assert.Nil(t, got.Semester)
}

func TestCreateStudent_RejectsBadUsername(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodPost, "/api/v1/students", dto.CreateStudentRequest{Name: "Asha", Username: "a b"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, errorCode(t, w))
}

func TestGetStudent_NotFound(t *testing.T) {
	h := newHarness(t)
	h.students.On("GetStudent", mock.Anything, int64(3)).Return(nil, apperrors.ErrStudentNotFound)

	w := h.do(http.MethodGet, "/api/v1/students/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, errorCode(t, w))
}

func TestGetStudent_BadID(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/api/v1/students/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetSemester(t *testing.T) {
	h := newHarness(t)
	start := attendance.Date(2026, time.August, 3)
	last := attendance.Date(2026, time.November, 27)
	examStart := attendance.Date(2026, time.October, 5)
	examEnd := attendance.Date(2026, time.October, 9)
	term := models.TermFall

	h.students.On("SetSemester", mock.Anything, int64(1), mock.MatchedBy(func(tm *models.Term) bool {
		return tm != nil && *tm == models.TermFall
	}), attendance.SemesterWindow{Start: start, ExamStart: &examStart, ExamEnd: &examEnd, LastTeachingDay: last}).
		Return(&models.Student{ID: 1, Name: "Asha", Username: "asha", Term: &term,
			SemesterStart: &start, ExamStart: &examStart, ExamEnd: &examEnd, LastTeachingDay: &last}, nil)

	w := h.do(http.MethodPut, "/api/v1/students/1/semester", dto.SemesterRequest{
		Term: "FALL", Start: "2026-08-03", ExamStart: "2026-10-05", ExamEnd: "2026-10-09", LastTeachingDay: "2026-11-27",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.StudentResponse
	data(t, w, &got)
	require.NotNil(t, got.Semester)
	assert.Equal(t, "2026-11-27", got.Semester.LastTeachingDay)
	require.NotNil(t, got.Semester.ExamStart)
	assert.Equal(t, "2026-10-05", *got.Semester.ExamStart)
}

func TestSetSemester_ServiceRejectsWindow(t *testing.T) {
	h := newHarness(t)
	h.students.On("SetSemester", mock.Anything, int64(1), (*models.Term)(nil), mock.Anything).
		Return(nil, apperrors.NewCustomError(apperrors.ErrInvalidSemesterSetting, "last teaching day is before start"))

	w := h.do(http.MethodPut, "/api/v1/students/1/semester", dto.SemesterRequest{Start: "2026-08-03", LastTeachingDay: "2026-07-01"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidSemester, errorCode(t, w))
}

func TestCreateSubject(t *testing.T) {
	h := newHarness(t)
	days := []time.Weekday{time.Monday, time.Wednesday}
	h.subjects.On("CreateSubject", mock.Anything, mock.MatchedBy(func(s *models.Subject) bool {
		return s.StudentID == 1 && s.Name == "Physics"
	}), days).Return(&services.SubjectDetail{
		Subject: &models.Subject{ID: 4, StudentID: 1, Name: "Physics", ClassesPerWeek: 2},
		Days:    days,
	}, nil)

	w := h.do(http.MethodPost, "/api/v1/students/1/subjects", dto.SubjectRequest{Name: "Physics", Days: []string{"monday", "WED"}})
	require.Equal(t, http.StatusCreated, w.Code)

	var got dto.SubjectResponse
	data(t, w, &got)
	assert.Equal(t, int64(4), got.ID)
	assert.Equal(t, []string{"MONDAY", "WEDNESDAY"}, got.Days)
}

func TestCreateSubject_UnknownDay(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodPost, "/api/v1/students/1/subjects", dto.SubjectRequest{Name: "Physics", Days: []string{"Funday"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSubject_Duplicate(t *testing.T) {
	h := newHarness(t)
	h.subjects.On("CreateSubject", mock.Anything, mock.Anything, mock.Anything).Return(nil, apperrors.ErrSubjectAlreadyExists)

	w := h.do(http.MethodPost, "/api/v1/students/1/subjects", dto.SubjectRequest{Name: "Physics"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetSchedule_MondayFirst(t *testing.T) {
	h := newHarness(t)
	sched := attendance.ScheduleFromSlots([]attendance.Slot{
		{SubjectID: 2, Weekday: time.Sunday},
		{SubjectID: 1, Weekday: time.Monday},
		{SubjectID: 2, Weekday: time.Monday},
	})
	h.subjects.On("GetSchedule", mock.Anything, int64(1)).Return(sched, nil)

	w := h.do(http.MethodGet, "/api/v1/students/1/schedule", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got []dto.ScheduleDay
	data(t, w, &got)
	require.Len(t, got, 7)
	assert.Equal(t, "MONDAY", got[0].Day)
	assert.Equal(t, []int64{1, 2}, got[0].Subjects)
	assert.Equal(t, "SUNDAY", got[6].Day)
	assert.Equal(t, []int64{2}, got[6].Subjects)
	assert.Empty(t, got[1].Subjects)
}

func TestMarkAttendance(t *testing.T) {
	h := newHarness(t)
	d := attendance.Date(2026, time.October, 19)
	h.attendance.On("MarkAttendance", mock.Anything, int64(1), int64(4), d, false).Return(nil)

	present := false
	w := h.do(http.MethodPut, "/api/v1/students/1/subjects/4/attendance", dto.MarkAttendanceRequest{Date: "2026-10-19", Present: &present})
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.AttendanceRecordResponse
	data(t, w, &got)
	assert.Equal(t, "2026-10-19", got.Date)
	assert.False(t, got.Present)
}

func TestMarkAttendance_PresentRequired(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodPut, "/api/v1/students/1/subjects/4/attendance", map[string]string{"date": "2026-10-19"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAttendance(t *testing.T) {
	h := newHarness(t)
	h.attendance.On("ListAttendance", mock.Anything, int64(1), int64(4), 1, 2).Return(&services.AttendancePage{
		Records: []models.AttendanceRecord{
			{RecordDate: attendance.Date(2026, time.October, 19), IsPresent: true},
			{RecordDate: attendance.Date(2026, time.October, 14), IsPresent: false},
		},
		Total: 3,
		Tally: attendance.Tally{Conducted: 3, Attended: 2},
	}, nil)

	w := h.do(http.MethodGet, "/api/v1/students/1/subjects/4/attendance?page=1&size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.AttendanceListResponse
	data(t, w, &got)
	assert.Len(t, got.Records, 2)
	assert.Equal(t, "2026-10-19", got.Records[0].Date)
	assert.Equal(t, 2, got.Pagination.TotalPages)
	assert.InDelta(t, 66.67, got.Percentage, 0.01)
}

func TestDeleteAttendance_NotFound(t *testing.T) {
	h := newHarness(t)
	h.attendance.On("DeleteAttendance", mock.Anything, int64(1), int64(4), attendance.Date(2026, time.October, 1)).
		Return(apperrors.ErrAttendanceNotFound)

	w := h.do(http.MethodDelete, "/api/v1/students/1/subjects/4/attendance/2026-10-01", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBackfill(t *testing.T) {
	h := newHarness(t)
	start := attendance.Date(2026, time.October, 5)
	h.attendance.On("Backfill", mock.Anything, int64(1), int64(4), 5, 3, &start).
		Return(&services.BackfillResult{Requested: 5, Written: 4}, nil)

	w := h.do(http.MethodPost, "/api/v1/students/1/subjects/4/attendance/initial",
		dto.InitialAttendanceRequest{Conducted: 5, Attended: 3, Start: "2026-10-05"})
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.BackfillResponse
	data(t, w, &got)
	assert.Equal(t, 4, got.Written)
}

func TestBackfill_AttendedAboveConducted(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodPost, "/api/v1/students/1/subjects/4/attendance/initial",
		dto.InitialAttendanceRequest{Conducted: 2, Attended: 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBackfill_ConductedTooLarge(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodPost, "/api/v1/students/1/subjects/4/attendance/initial",
		dto.InitialAttendanceRequest{Conducted: 2_000_000_000, Attended: 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, errorCode(t, w))
}

func TestClearAttendance_ToDefaultsToFrom(t *testing.T) {
	h := newHarness(t)
	d := attendance.Date(2026, time.October, 12)
	h.attendance.On("ClearRange", mock.Anything, int64(1), d, d).Return(int64(2), nil)

	w := h.do(http.MethodDelete, "/api/v1/students/1/attendance?from=2026-10-12", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.BulkDeleteResponse
	data(t, w, &got)
	assert.Equal(t, int64(2), got.Deleted)
}

func TestClearAttendance_ReversedRange(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodDelete, "/api/v1/students/1/attendance?from=2026-10-12&to=2026-10-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHolidays(t *testing.T) {
	h := newHarness(t)
	from := attendance.Date(2026, time.December, 24)
	to := attendance.Date(2026, time.December, 26)
	h.holidays.On("AddHolidayRange", mock.Anything, int64(1), from, to, "Winter Break").Return([]attendance.Holiday{
		{Date: from, Description: "Winter Break"},
		{Date: from.AddDate(0, 0, 1), Description: "Winter Break"},
		{Date: to, Description: "Winter Break"},
	}, nil)
	h.holidays.On("DeleteByDescription", mock.Anything, int64(1), "Winter Break").Return(int64(3), nil)

	w := h.do(http.MethodPost, "/api/v1/students/1/holidays/range", dto.HolidayRangeRequest{From: "2026-12-24", To: "2026-12-26", Description: "Winter Break"})
	require.Equal(t, http.StatusCreated, w.Code)
	var added []dto.HolidayResponse
	data(t, w, &added)
	assert.Len(t, added, 3)

	w = h.do(http.MethodDelete, "/api/v1/students/1/holidays?description=Winter%20Break", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var deleted dto.BulkDeleteResponse
	data(t, w, &deleted)
	assert.Equal(t, int64(3), deleted.Deleted)
}

func TestUpdateHoliday_Moves(t *testing.T) {
	h := newHarness(t)
	oldDate := attendance.Date(2026, time.October, 2)
	newDate := attendance.Date(2026, time.October, 3)
	h.holidays.On("UpdateHoliday", mock.Anything, int64(1), oldDate, newDate, "Founders Day").
		Return(attendance.Holiday{Date: newDate, Description: "Founders Day"}, nil)

	w := h.do(http.MethodPut, "/api/v1/students/1/holidays/2026-10-02", dto.HolidayRequest{Date: "2026-10-03", Description: "Founders Day"})
	require.Equal(t, http.StatusOK, w.Code)
	var got dto.HolidayResponse
	data(t, w, &got)
	assert.Equal(t, "2026-10-03", got.Date)
}

func TestImportHolidays(t *testing.T) {
	h := newHarness(t)
	from := attendance.Date(2026, time.November, 1)
	to := attendance.Date(2026, time.November, 30)
	h.holidays.On("ImportPublicHolidays", mock.Anything, int64(1), from, to).Return(&services.ImportResult{
		Region:   "us",
		Holidays: []attendance.Holiday{{Date: attendance.Date(2026, time.November, 26), Description: "Thanksgiving Day"}},
	}, nil)

	w := h.do(http.MethodPost, "/api/v1/students/1/holidays/import", dto.ImportHolidaysRequest{From: "2026-11-01", To: "2026-11-30"})
	require.Equal(t, http.StatusOK, w.Code)
	var got dto.ImportHolidaysResponse
	data(t, w, &got)
	assert.Equal(t, "us", got.Region)
	assert.Equal(t, 1, got.Imported)
}

func TestImportHolidays_SpanTooLong(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodPost, "/api/v1/students/1/holidays/import", dto.ImportHolidaysRequest{From: "2026-01-01", To: "2030-01-01"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddHolidayRange_SpanTooLong(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodPost, "/api/v1/students/1/holidays/range",
		dto.HolidayRangeRequest{From: "2000-01-01", To: "2030-12-31", Description: "Forever"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A full leap year is the longest range accepted.
	from := attendance.Date(2028, time.January, 1)
	to := attendance.Date(2028, time.December, 31)
	h.holidays.On("AddHolidayRange", mock.Anything, int64(1), from, to, "Sabbatical").Return([]attendance.Holiday{}, nil)
	w = h.do(http.MethodPost, "/api/v1/students/1/holidays/range",
		dto.HolidayRangeRequest{From: "2028-01-01", To: "2028-12-31", Description: "Sabbatical"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDashboard(t *testing.T) {
	h := newHarness(t)
	h.eligibility.On("Dashboard", mock.Anything, int64(1)).Return(&services.Dashboard{
		StudentID: 1,
		Today:     attendance.Date(2026, time.October, 19),
		Overall:   attendance.Tally{Conducted: 8, Attended: 6},
		Subjects: []attendance.Assessment{
			{SubjectID: 4, Name: "Physics", Tally: attendance.Tally{Conducted: 8, Attended: 6}, Percentage: 75, Eligible: true, Standing: attendance.StandingSafe},
		},
	}, nil)

	w := h.do(http.MethodGet, "/api/v1/students/1/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.DashboardResponse
	data(t, w, &got)
	assert.Equal(t, "2026-10-19", got.Today)
	assert.Equal(t, attendance.Threshold, got.Threshold)
	assert.InDelta(t, 75.0, got.OverallPercentage, 0.001)
	require.Len(t, got.Subjects, 1)
	assert.Equal(t, attendance.StandingSafe, got.Subjects[0].Standing)
}

func TestPredictLeave(t *testing.T) {
	h := newHarness(t)
	start := attendance.Date(2026, time.October, 20)
	end := attendance.Date(2026, time.October, 23)
	h.eligibility.On("PredictLeave", mock.Anything, int64(1), start, end).Return([]services.LeavePrediction{
		{SubjectID: 4, Name: "Physics", Percentage: 60, Eligible: false},
	}, nil)

	w := h.do(http.MethodPost, "/api/v1/students/1/leave/predict", dto.LeaveRequest{Start: "2026-10-20", End: "2026-10-23"})
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.LeavePredictionResponse
	data(t, w, &got)
	require.Len(t, got.Predictions, 1)
	assert.False(t, got.Predictions[0].Eligible)
}

func TestPredictLeave_ReversedRange(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodPost, "/api/v1/students/1/leave/predict", dto.LeaveRequest{Start: "2026-10-23", End: "2026-10-20"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredictLeave_SpanTooLong(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodPost, "/api/v1/students/1/leave/predict", dto.LeaveRequest{Start: "2026-10-20", End: "2030-10-20"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, errorCode(t, w))
}

func TestLeaveReport(t *testing.T) {
	h := newHarness(t)
	start := attendance.Date(2026, time.October, 20)
	h.eligibility.On("LeaveReport", mock.Anything, int64(1), start, start).Return(&attendance.LeaveReport{
		Start:   start,
		End:     start,
		Verdict: attendance.VerdictSafe,
	}, nil)

	w := h.do(http.MethodPost, "/api/v1/students/1/leave/report", dto.LeaveRequest{Start: "2026-10-20", End: "2026-10-20"})
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.LeaveReportResponse
	data(t, w, &got)
	assert.Equal(t, attendance.VerdictSafe, got.Verdict)
	assert.NotNil(t, got.AtRisk)
}

func TestHeatmap(t *testing.T) {
	h := newHarness(t)
	h.insights.On("Heatmap", mock.Anything, int64(1), int64(4), 2026, time.October).Return([]attendance.DayMark{
		{Date: attendance.Date(2026, time.October, 1), Mark: attendance.MarkHoliday, Note: "Founders Day"},
	}, nil)

	w := h.do(http.MethodGet, "/api/v1/students/1/subjects/4/heatmap?month=2026-10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.HeatmapResponse
	data(t, w, &got)
	assert.Equal(t, "2026-10", got.Month)
	require.Len(t, got.Days, 1)
	assert.Equal(t, attendance.MarkHoliday, got.Days[0].Mark)
}

func TestHeatmap_BadMonth(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/api/v1/students/1/subjects/4/heatmap?month=October", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrends(t *testing.T) {
	h := newHarness(t)
	h.insights.On("Trends", mock.Anything, int64(1)).Return(&services.Trends{
		Overall:  []attendance.TrendPoint{{Week: 0, Tally: attendance.Tally{Conducted: 2, Attended: 1}, Percentage: 50}},
		Subjects: []services.SubjectSeries{{SubjectID: 4, Name: "Physics"}},
	}, nil)

	w := h.do(http.MethodGet, "/api/v1/students/1/trends", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.TrendsResponse
	data(t, w, &got)
	require.Len(t, got.Overall, 1)
	assert.Equal(t, 50.0, got.Overall[0].Percentage)
	require.Len(t, got.Subjects, 1)
}
