package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/domain/attendance"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/logger"
	"github.com/yigit/attendance/internal/pkg/validation"
)

// SubjectDetail is a subject together with the weekdays it meets on
type SubjectDetail struct {
	Subject *models.Subject
	Days    []time.Weekday
}

// SubjectService defines the interface for subject and timetable operations
type SubjectService interface {
	CreateSubject(ctx context.Context, subject *models.Subject, days []time.Weekday) (*SubjectDetail, error)
	GetSubject(ctx context.Context, studentID, subjectID int64) (*SubjectDetail, error)
	ListSubjects(ctx context.Context, studentID int64) ([]SubjectDetail, error)
	// UpdateSubject changes name and frequency; a non-nil days slice also
	// replaces the weekly schedule.
	UpdateSubject(ctx context.Context, subject *models.Subject, days []time.Weekday) (*SubjectDetail, error)
	DeleteSubject(ctx context.Context, studentID, subjectID int64) error
	SetSchedule(ctx context.Context, studentID, subjectID int64, days []time.Weekday) (*SubjectDetail, error)
	GetSchedule(ctx context.Context, studentID int64) (*attendance.Schedule, error)
}

type subjectServiceImpl struct {
	students    StudentStore
	subjects    SubjectStore
	schedule    ScheduleStore
	invalidator *Invalidator
}

// NewSubjectService creates a new subject service instance
func NewSubjectService(stores Stores, invalidator *Invalidator) SubjectService {
	return &subjectServiceImpl{
		students:    stores.Students,
		subjects:    stores.Subjects,
		schedule:    stores.Schedule,
		invalidator: invalidator,
	}
}

func (s *subjectServiceImpl) validateSubject(subject *models.Subject) error {
	if subject == nil {
		return fmt.Errorf("%w: subject is nil", apperrors.ErrValidationFailed)
	}
	subject.Name = strings.TrimSpace(subject.Name)
	if !validation.ValidName(subject.Name) {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if subject.ClassesPerWeek < 0 {
		return fmt.Errorf("%w: classes per week cannot be negative", apperrors.ErrValidationFailed)
	}
	return validateID(subject.StudentID, "student")
}

// normalizeDays sorts and de-duplicates weekdays
func normalizeDays(days []time.Weekday) []time.Weekday {
	seen := make(map[time.Weekday]bool, len(days))
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CreateSubject adds a subject and, when days are given, its weekly days.
// A zero frequency defaults to the number of scheduled days.
func (s *subjectServiceImpl) CreateSubject(ctx context.Context, subject *models.Subject, days []time.Weekday) (*SubjectDetail, error) {
	if err := s.validateSubject(subject); err != nil {
		return nil, err
	}
	days = normalizeDays(days)
	if subject.ClassesPerWeek == 0 {
		subject.ClassesPerWeek = len(days)
	}

	id, err := s.subjects.Create(ctx, subject)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrSubjectAlreadyExists, apperrors.ErrStudentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating subject: %w", err)
	}
	subject.ID = id

	if len(days) > 0 {
		if err := s.schedule.ReplaceDays(ctx, id, days); err != nil {
			return nil, fmt.Errorf("error scheduling subject: %w", err)
		}
	}
	s.invalidator.Student(ctx, subject.StudentID)
	logger.Info().Int64("studentID", subject.StudentID).Int64("subjectID", id).Msg("Subject created")
	return &SubjectDetail{Subject: subject, Days: days}, nil
}

// GetSubject retrieves a subject of a student with its weekdays
func (s *subjectServiceImpl) GetSubject(ctx context.Context, studentID, subjectID int64) (*SubjectDetail, error) {
	if err := validateID(subjectID, "subject"); err != nil {
		return nil, err
	}
	subject, err := s.subjects.GetByID(ctx, studentID, subjectID)
	if err != nil {
		return nil, err
	}
	sched, err := s.GetSchedule(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &SubjectDetail{Subject: subject, Days: sched.DaysFor(attendance.SubjectID(subjectID))}, nil
}

// ListSubjects returns every subject of a student with its weekdays
func (s *subjectServiceImpl) ListSubjects(ctx context.Context, studentID int64) ([]SubjectDetail, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	subjects, err := s.subjects.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving subjects: %w", err)
	}
	sched, err := s.GetSchedule(ctx, studentID)
	if err != nil {
		return nil, err
	}

	out := make([]SubjectDetail, 0, len(subjects))
	for _, sub := range subjects {
		out = append(out, SubjectDetail{Subject: sub, Days: sched.DaysFor(attendance.SubjectID(sub.ID))})
	}
	return out, nil
}

// UpdateSubject updates a subject
func (s *subjectServiceImpl) UpdateSubject(ctx context.Context, subject *models.Subject, days []time.Weekday) (*SubjectDetail, error) {
	if err := s.validateSubject(subject); err != nil {
		return nil, err
	}
	if err := s.subjects.Update(ctx, subject); err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) || errors.Is(err, apperrors.ErrSubjectAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating subject: %w", err)
	}
	if days != nil {
		if err := s.schedule.ReplaceDays(ctx, subject.ID, normalizeDays(days)); err != nil {
			return nil, fmt.Errorf("error scheduling subject: %w", err)
		}
	}
	s.invalidator.Student(ctx, subject.StudentID)
	return s.GetSubject(ctx, subject.StudentID, subject.ID)
}

// DeleteSubject removes a subject with its records and timetable slots
func (s *subjectServiceImpl) DeleteSubject(ctx context.Context, studentID, subjectID int64) error {
	if err := validateID(subjectID, "subject"); err != nil {
		return err
	}
	if err := s.subjects.Delete(ctx, studentID, subjectID); err != nil {
		return err
	}
	s.invalidator.Student(ctx, studentID)
	logger.Info().Int64("studentID", studentID).Int64("subjectID", subjectID).Msg("Subject deleted")
	return nil
}

// SetSchedule replaces the weekdays a subject meets on
func (s *subjectServiceImpl) SetSchedule(ctx context.Context, studentID, subjectID int64, days []time.Weekday) (*SubjectDetail, error) {
	subject, err := s.subjects.GetByID(ctx, studentID, subjectID)
	if err != nil {
		return nil, err
	}
	days = normalizeDays(days)
	if err := s.schedule.ReplaceDays(ctx, subjectID, days); err != nil {
		return nil, fmt.Errorf("error scheduling subject: %w", err)
	}
	s.invalidator.Student(ctx, studentID)
	return &SubjectDetail{Subject: subject, Days: days}, nil
}

// GetSchedule builds the weekly timetable of a student
func (s *subjectServiceImpl) GetSchedule(ctx context.Context, studentID int64) (*attendance.Schedule, error) {
	entries, err := s.schedule.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving schedule: %w", err)
	}
	slots := make([]attendance.Slot, 0, len(entries))
	for _, e := range entries {
		slots = append(slots, attendance.Slot{SubjectID: attendance.SubjectID(e.SubjectID), Weekday: e.DayOfWeek})
	}
	return attendance.ScheduleFromSlots(slots), nil
}
