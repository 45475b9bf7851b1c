package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yigit/attendance/internal/domain/attendance"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/logger"
)

// HolidaySource lists public holidays of a region
type HolidaySource interface {
	Region() string
	Between(from, to time.Time) ([]attendance.Holiday, error)
}

// ImportResult reports a public holiday import
type ImportResult struct {
	Region   string
	Holidays []attendance.Holiday
}

// HolidayService defines the interface for blackout calendar management
type HolidayService interface {
	ListHolidays(ctx context.Context, studentID int64) ([]attendance.Holiday, error)
	AddHoliday(ctx context.Context, studentID int64, date time.Time, description string) (attendance.Holiday, error)
	AddHolidayRange(ctx context.Context, studentID int64, from, to time.Time, description string) ([]attendance.Holiday, error)
	UpdateHoliday(ctx context.Context, studentID int64, oldDate, newDate time.Time, description string) (attendance.Holiday, error)
	DeleteHoliday(ctx context.Context, studentID int64, date time.Time) error
	DeleteByDescription(ctx context.Context, studentID int64, description string) (int64, error)
	ImportPublicHolidays(ctx context.Context, studentID int64, from, to time.Time) (*ImportResult, error)
}

type holidayServiceImpl struct {
	students    StudentStore
	holidays    HolidayStore
	source      HolidaySource
	invalidator *Invalidator
}

// NewHolidayService creates a new holiday service instance. source may be
// nil, in which case imports are rejected.
func NewHolidayService(stores Stores, source HolidaySource, invalidator *Invalidator) HolidayService {
	return &holidayServiceImpl{
		students:    stores.Students,
		holidays:    stores.Holidays,
		source:      source,
		invalidator: invalidator,
	}
}

// ListHolidays returns a student's holidays in date order
func (s *holidayServiceImpl) ListHolidays(ctx context.Context, studentID int64) ([]attendance.Holiday, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	rows, err := s.holidays.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving holidays: %w", err)
	}
	return toCoreHolidays(rows), nil
}

// AddHoliday stores one holiday, re-describing an existing one on the same date
func (s *holidayServiceImpl) AddHoliday(ctx context.Context, studentID int64, date time.Time, description string) (attendance.Holiday, error) {
	added, err := s.AddHolidayRange(ctx, studentID, date, date, description)
	if err != nil {
		return attendance.Holiday{}, err
	}
	return added[0], nil
}

// AddHolidayRange stores every date in [from, to] as a holiday
func (s *holidayServiceImpl) AddHolidayRange(ctx context.Context, studentID int64, from, to time.Time, description string) ([]attendance.Holiday, error) {
	cal := attendance.EmptyCalendar()
	if err := cal.AddHolidayRange(from, to, description); err != nil {
		return nil, fromCore(err)
	}
	added := cal.Holidays()

	if err := s.holidays.UpsertMany(ctx, studentID, added); err != nil {
		return nil, err
	}
	s.invalidator.Student(ctx, studentID)
	return added, nil
}

// UpdateHoliday moves a holiday to a new date and description
func (s *holidayServiceImpl) UpdateHoliday(ctx context.Context, studentID int64, oldDate, newDate time.Time, description string) (attendance.Holiday, error) {
	cal := attendance.EmptyCalendar()
	cal.AddHoliday(newDate, description)
	h := cal.Holidays()[0]

	if err := s.holidays.Move(ctx, studentID, oldDate, h); err != nil {
		return attendance.Holiday{}, err
	}
	s.invalidator.Student(ctx, studentID)
	return h, nil
}

// DeleteHoliday removes the holiday on date
func (s *holidayServiceImpl) DeleteHoliday(ctx context.Context, studentID int64, date time.Time) error {
	if err := s.holidays.Delete(ctx, studentID, date); err != nil {
		return err
	}
	s.invalidator.Student(ctx, studentID)
	return nil
}

// DeleteByDescription removes every holiday with the exact description
func (s *holidayServiceImpl) DeleteByDescription(ctx context.Context, studentID int64, description string) (int64, error) {
	description = strings.TrimSpace(description)
	n, err := s.holidays.DeleteByDescription(ctx, studentID, description)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.invalidator.Student(ctx, studentID)
	}
	return n, nil
}

// ImportPublicHolidays upserts the observed public holidays in [from, to]
func (s *holidayServiceImpl) ImportPublicHolidays(ctx context.Context, studentID int64, from, to time.Time) (*ImportResult, error) {
	if s.source == nil {
		return nil, apperrors.ErrHolidaySourceUnavailable
	}
	list, err := s.source.Between(from, to)
	if err != nil {
		return nil, fromCore(err)
	}
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	if err := s.holidays.UpsertMany(ctx, studentID, list); err != nil {
		return nil, err
	}
	if len(list) > 0 {
		s.invalidator.Student(ctx, studentID)
	}
	logger.Info().Int64("studentID", studentID).Str("region", s.source.Region()).Int("imported", len(list)).
		Msg("Public holidays imported")
	return &ImportResult{Region: s.source.Region(), Holidays: list}, nil
}
