package services

import (
	"context"
	"fmt"

	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/domain/attendance"
	"github.com/yigit/attendance/internal/pkg/apperrors"
)

// SnapshotLoader assembles everything the engine needs for one student
type SnapshotLoader interface {
	Load(ctx context.Context, studentID int64) (*attendance.Snapshot, *models.Student, error)
}

type storeSnapshotLoader struct {
	stores Stores
}

// NewSnapshotLoader returns a loader reading from the given stores
func NewSnapshotLoader(stores Stores) SnapshotLoader {
	return &storeSnapshotLoader{stores: stores}
}

// Load reads the student, subjects, ledgers, schedule and holidays and builds
// a snapshot. A student without a configured semester gets a nil window.
func (l *storeSnapshotLoader) Load(ctx context.Context, studentID int64) (*attendance.Snapshot, *models.Student, error) {
	student, err := l.stores.Students.GetByID(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}

	subjects, err := l.stores.Subjects.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading subjects: %w", err)
	}
	rows, err := l.stores.Attendance.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading attendance: %w", err)
	}
	entries, err := l.stores.Schedule.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading schedule: %w", err)
	}
	holidays, err := l.stores.Holidays.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading holidays: %w", err)
	}

	byDate := make(map[int64][]attendance.Record, len(subjects))
	for _, r := range rows {
		byDate[r.SubjectID] = append(byDate[r.SubjectID], attendance.Record{Date: r.RecordDate, Present: r.IsPresent})
	}

	snap := &attendance.Snapshot{Subjects: make([]*attendance.Subject, 0, len(subjects))}
	for _, s := range subjects {
		ledger, err := attendance.LedgerFromRecords(byDate[s.ID])
		if err != nil {
			return nil, nil, fmt.Errorf("subject %d: %w", s.ID, err)
		}
		snap.Subjects = append(snap.Subjects, &attendance.Subject{
			ID:             attendance.SubjectID(s.ID),
			Name:           s.Name,
			ClassesPerWeek: s.ClassesPerWeek,
			Ledger:         ledger,
		})
	}

	slots := make([]attendance.Slot, 0, len(entries))
	for _, e := range entries {
		slots = append(slots, attendance.Slot{SubjectID: attendance.SubjectID(e.SubjectID), Weekday: e.DayOfWeek})
	}
	snap.Schedule = attendance.ScheduleFromSlots(slots)

	window := student.SemesterWindow()
	var exam *attendance.ExamPause
	if window != nil {
		exam = window.ExamPause()
	}
	snap.Calendar, err = attendance.NewCalendar(toCoreHolidays(holidays), exam)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidSemesterSetting, err)
	}
	snap.Semester = window

	return snap, student, nil
}

func toCoreHolidays(rows []models.Holiday) []attendance.Holiday {
	out := make([]attendance.Holiday, 0, len(rows))
	for _, h := range rows {
		out = append(out, attendance.Holiday{Date: h.HolidayDate, Description: h.Description})
	}
	return out
}
