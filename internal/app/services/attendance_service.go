package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/domain/attendance"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/helpers"
	"github.com/yigit/attendance/internal/pkg/logger"
)

// AttendancePage is one page of a subject's records plus its whole-ledger tally
type AttendancePage struct {
	Records []models.AttendanceRecord
	Total   int64
	Tally   attendance.Tally
}

// BackfillResult reports a backfill run
type BackfillResult struct {
	Requested int
	Written   int
}

// AttendanceService defines the interface for attendance ledger operations
type AttendanceService interface {
	MarkAttendance(ctx context.Context, studentID, subjectID int64, date time.Time, present bool) error
	DeleteAttendance(ctx context.Context, studentID, subjectID int64, date time.Time) error
	// ClearRange deletes every mark of the student dated in [from, to]
	ClearRange(ctx context.Context, studentID int64, from, to time.Time) (int64, error)
	Backfill(ctx context.Context, studentID, subjectID int64, conducted, attended int, start *time.Time) (*BackfillResult, error)
	ListAttendance(ctx context.Context, studentID, subjectID int64, page, size int) (*AttendancePage, error)
}

type attendanceServiceImpl struct {
	students    StudentStore
	subjects    SubjectStore
	records     AttendanceStore
	loader      SnapshotLoader
	clock       *helpers.Clock
	invalidator *Invalidator
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(stores Stores, loader SnapshotLoader, clock *helpers.Clock, invalidator *Invalidator) AttendanceService {
	return &attendanceServiceImpl{
		students:    stores.Students,
		subjects:    stores.Subjects,
		records:     stores.Attendance,
		loader:      loader,
		clock:       clock,
		invalidator: invalidator,
	}
}

// MarkAttendance records presence or absence, overwriting an earlier mark
func (s *attendanceServiceImpl) MarkAttendance(ctx context.Context, studentID, subjectID int64, date time.Time, present bool) error {
	if _, err := s.subjects.GetByID(ctx, studentID, subjectID); err != nil {
		return err
	}
	if err := s.records.Upsert(ctx, subjectID, attendance.Day(date), present); err != nil {
		return err
	}
	s.invalidator.Student(ctx, studentID)
	return nil
}

// DeleteAttendance removes the mark on date
func (s *attendanceServiceImpl) DeleteAttendance(ctx context.Context, studentID, subjectID int64, date time.Time) error {
	if _, err := s.subjects.GetByID(ctx, studentID, subjectID); err != nil {
		return err
	}
	if err := s.records.Delete(ctx, subjectID, attendance.Day(date)); err != nil {
		return err
	}
	s.invalidator.Student(ctx, studentID)
	return nil
}

// ClearRange bulk-deletes marks across all subjects of a student
func (s *attendanceServiceImpl) ClearRange(ctx context.Context, studentID int64, from, to time.Time) (int64, error) {
	from, to = attendance.Day(from), attendance.Day(to)
	if to.Before(from) {
		return 0, fmt.Errorf("%w: %s is before %s", apperrors.ErrInvalidDateRange, attendance.FormatDate(to), attendance.FormatDate(from))
	}
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return 0, err
	}

	n, err := s.records.DeleteForStudentBetween(ctx, studentID, from, to)
	if err != nil {
		return 0, err
	}
	s.invalidator.Student(ctx, studentID)
	logger.Info().Int64("studentID", studentID).Int64("deleted", n).Msg("Attendance cleared")
	return n, nil
}

// Backfill replaces a subject's ledger with records laid onto the earliest
// class days. Without an explicit start the semester start is used, and
// without either the start is estimated from the weekly frequency.
func (s *attendanceServiceImpl) Backfill(ctx context.Context, studentID, subjectID int64, conducted, attended int, start *time.Time) (*BackfillResult, error) {
	snap, student, err := s.loader.Load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	id := attendance.SubjectID(subjectID)
	if _, ok := snap.Subject(id); !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	if conducted > 0 && len(snap.Schedule.DaysFor(id)) == 0 {
		return nil, apperrors.ErrNoScheduledDays
	}

	in := attendance.BackfillInput{
		SubjectID: id,
		Conducted: conducted,
		Attended:  attended,
		Today:     s.clock.Today(),
		Schedule:  snap.Schedule,
		Calendar:  snap.Calendar,
	}
	switch {
	case start != nil:
		in.Start = *start
	case student.SemesterStart != nil:
		in.Start = *student.SemesterStart
	}

	records, err := attendance.BackfillRecords(in)
	if err != nil {
		return nil, fromCore(err)
	}
	if err := s.records.ReplaceForSubject(ctx, subjectID, records); err != nil {
		return nil, err
	}
	s.invalidator.Student(ctx, studentID)

	if len(records) < conducted {
		logger.Warn().Int64("subjectID", subjectID).Int("requested", conducted).Int("written", len(records)).
			Msg("Not enough class days to backfill every requested record")
	}
	return &BackfillResult{Requested: conducted, Written: len(records)}, nil
}

// ListAttendance returns a page of records, newest first
func (s *attendanceServiceImpl) ListAttendance(ctx context.Context, studentID, subjectID int64, page, size int) (*AttendancePage, error) {
	if _, err := s.subjects.GetByID(ctx, studentID, subjectID); err != nil {
		return nil, err
	}
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	records, total, err := s.records.ListBySubject(ctx, subjectID, offset, limit)
	if err != nil {
		return nil, err
	}
	tally, err := s.records.TallyBySubject(ctx, subjectID)
	if err != nil {
		return nil, fromCore(err)
	}
	return &AttendancePage{Records: records, Total: total, Tally: tally}, nil
}
