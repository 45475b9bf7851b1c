package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/domain/attendance"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/logger"
	"github.com/yigit/attendance/internal/pkg/validation"
)

// StudentService defines the interface for student profile operations
type StudentService interface {
	CreateStudent(ctx context.Context, student *models.Student) (int64, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	SetSemester(ctx context.Context, id int64, term *models.Term, window attendance.SemesterWindow) (*models.Student, error)
	ClearSemester(ctx context.Context, id int64) (*models.Student, error)
}

type studentServiceImpl struct {
	students    StudentStore
	invalidator *Invalidator
}

// NewStudentService creates a new student service instance
func NewStudentService(students StudentStore, invalidator *Invalidator) StudentService {
	return &studentServiceImpl{students: students, invalidator: invalidator}
}

// CreateStudent registers a new student profile
func (s *studentServiceImpl) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	if student == nil {
		return 0, fmt.Errorf("%w: student is nil", apperrors.ErrValidationFailed)
	}
	student.Name = strings.TrimSpace(student.Name)
	student.Username = strings.ToLower(strings.TrimSpace(student.Username))
	if !validation.ValidName(student.Name) {
		return 0, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if !validation.CompiledPatterns.Username.MatchString(student.Username) {
		return 0, fmt.Errorf("%w: invalid username", apperrors.ErrValidationFailed)
	}

	id, err := s.students.Create(ctx, student)
	if err != nil {
		if errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
			return 0, apperrors.ErrUsernameAlreadyExists
		}
		return 0, fmt.Errorf("error creating student: %w", err)
	}
	logger.Info().Int64("studentID", id).Str("username", student.Username).Msg("Student created")
	return id, nil
}

// GetStudent retrieves a student by ID
func (s *studentServiceImpl) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	if err := validateID(id, "student"); err != nil {
		return nil, err
	}
	return s.students.GetByID(ctx, id)
}

// SetSemester validates and stores the semester window of a student
func (s *studentServiceImpl) SetSemester(ctx context.Context, id int64, term *models.Term, window attendance.SemesterWindow) (*models.Student, error) {
	if err := window.Validate(); err != nil {
		return nil, fromCore(err)
	}

	student, err := s.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	start, last := attendance.Day(window.Start), attendance.Day(window.LastTeachingDay)
	student.Term = term
	student.SemesterStart = &start
	student.LastTeachingDay = &last
	student.ExamStart, student.ExamEnd = nil, nil
	if window.ExamStart != nil && window.ExamEnd != nil {
		es, ee := attendance.Day(*window.ExamStart), attendance.Day(*window.ExamEnd)
		student.ExamStart, student.ExamEnd = &es, &ee
	}

	if err := s.students.UpdateSemester(ctx, student); err != nil {
		return nil, err
	}
	s.invalidator.Student(ctx, id)
	return student, nil
}

// ClearSemester switches the student back to infinite-horizon mode
func (s *studentServiceImpl) ClearSemester(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	student.ClearSemester()
	if err := s.students.UpdateSemester(ctx, student); err != nil {
		return nil, err
	}
	s.invalidator.Student(ctx, id)
	return student, nil
}
