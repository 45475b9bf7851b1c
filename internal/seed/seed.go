package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/attendance/internal/app/models"
	appServices "github.com/yigit/attendance/internal/app/services"
	"github.com/yigit/attendance/internal/domain/attendance"
	"github.com/yigit/attendance/internal/pkg/apperrors"
)

// DemoUsername identifies the seeded student.
const DemoUsername = "demo"

type demoSubject struct {
	name      string
	days      []time.Weekday
	conducted int
	attended  int
}

var demoSubjects = []demoSubject{
	{name: "Mathematics", days: []time.Weekday{time.Monday, time.Wednesday, time.Friday}, conducted: 12, attended: 10},
	{name: "Physics", days: []time.Weekday{time.Tuesday, time.Thursday}, conducted: 8, attended: 5},
	{name: "Literature", days: []time.Weekday{time.Wednesday}, conducted: 4, attended: 4},
}

// CreateDemoData creates a demo student with a semester around today, three
// subjects with backfilled attendance and a mid-semester break. It is a
// no-op when the demo student already exists.
func CreateDemoData(ctx context.Context, svc *appServices.Services, today time.Time, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating demo data...")

	student := &appModels.Student{Name: "Demo Student", Username: DemoUsername}
	studentID, err := svc.StudentService.CreateStudent(ctx, student)
	if errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
		lgr.Info().Msg("Demo student already exists, skipping seed")
		return nil
	}
	if err != nil {
		return err
	}

	today = attendance.Day(today)
	start := today.AddDate(0, 0, -42)
	examStart := today.AddDate(0, 0, 49)
	examEnd := examStart.AddDate(0, 0, 6)
	term := appModels.TermFall
	window := attendance.SemesterWindow{
		Start:           start,
		ExamStart:       &examStart,
		ExamEnd:         &examEnd,
		LastTeachingDay: examEnd.AddDate(0, 0, 14),
	}

	var finalErr error // collect errors without stopping the process

	if _, err := svc.StudentService.SetSemester(ctx, studentID, &term, window); err != nil {
		lgr.Error().Err(err).Msg("Error setting demo semester")
		finalErr = errors.Join(finalErr, err)
	}

	breakStart := today.AddDate(0, 0, -21)
	if _, err := svc.HolidayService.AddHolidayRange(ctx, studentID, breakStart, breakStart.AddDate(0, 0, 2), "Mid-semester break"); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo holidays")
		finalErr = errors.Join(finalErr, err)
	}

	for _, ds := range demoSubjects {
		detail, err := svc.SubjectService.CreateSubject(ctx, &appModels.Subject{StudentID: studentID, Name: ds.name}, ds.days)
		if err != nil {
			lgr.Error().Err(err).Str("subject", ds.name).Msg("Error creating demo subject")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		res, err := svc.AttendanceService.Backfill(ctx, studentID, detail.Subject.ID, ds.conducted, ds.attended, &start)
		if err != nil {
			lgr.Error().Err(err).Str("subject", ds.name).Msg("Error backfilling demo attendance")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Str("subject", ds.name).Int("written", res.Written).Msg("Demo subject seeded")
	}

	lgr.Info().Int64("studentId", studentID).Msg("Demo data creation completed")
	return finalErr
}
