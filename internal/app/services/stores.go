package services

import (
	"context"
	"time"

	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/app/repositories"
	"github.com/yigit/attendance/internal/domain/attendance"
)

// StudentStore persists students and their semester settings
type StudentStore interface {
	Create(ctx context.Context, s *models.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	UpdateSemester(ctx context.Context, s *models.Student) error
}

// SubjectStore persists subjects
type SubjectStore interface {
	Create(ctx context.Context, s *models.Subject) (int64, error)
	GetByID(ctx context.Context, studentID, subjectID int64) (*models.Subject, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Subject, error)
	Update(ctx context.Context, s *models.Subject) error
	Delete(ctx context.Context, studentID, subjectID int64) error
}

// AttendanceStore persists attendance marks
type AttendanceStore interface {
	Upsert(ctx context.Context, subjectID int64, date time.Time, present bool) error
	Delete(ctx context.Context, subjectID int64, date time.Time) error
	DeleteForStudentBetween(ctx context.Context, studentID int64, from, to time.Time) (int64, error)
	ReplaceForSubject(ctx context.Context, subjectID int64, records []attendance.Record) error
	ListBySubject(ctx context.Context, subjectID int64, offset, limit uint64) ([]models.AttendanceRecord, int64, error)
	TallyBySubject(ctx context.Context, subjectID int64) (attendance.Tally, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.AttendanceRecord, error)
}

// HolidayStore persists a student's blackout dates
type HolidayStore interface {
	Upsert(ctx context.Context, studentID int64, h attendance.Holiday) error
	UpsertMany(ctx context.Context, studentID int64, holidays []attendance.Holiday) error
	Delete(ctx context.Context, studentID int64, date time.Time) error
	DeleteByDescription(ctx context.Context, studentID int64, description string) (int64, error)
	Move(ctx context.Context, studentID int64, oldDate time.Time, h attendance.Holiday) error
	ListByStudent(ctx context.Context, studentID int64) ([]models.Holiday, error)
}

// ScheduleStore persists the weekly schedule edges
type ScheduleStore interface {
	ReplaceDays(ctx context.Context, subjectID int64, days []time.Weekday) error
	ListByStudent(ctx context.Context, studentID int64) ([]models.ScheduleEntry, error)
}

var (
	_ StudentStore    = (*repositories.StudentRepository)(nil)
	_ SubjectStore    = (*repositories.SubjectRepository)(nil)
	_ AttendanceStore = (*repositories.AttendanceRepository)(nil)
	_ HolidayStore    = (*repositories.HolidayRepository)(nil)
	_ ScheduleStore   = (*repositories.ScheduleRepository)(nil)
)

// Stores groups the persistence dependencies of the services
type Stores struct {
	Students   StudentStore
	Subjects   SubjectStore
	Attendance AttendanceStore
	Holidays   HolidayStore
	Schedule   ScheduleStore
}

// NewStores adapts the concrete repositories
func NewStores(repos *repositories.Repositories) Stores {
	return Stores{
		Students:   repos.StudentRepository,
		Subjects:   repos.SubjectRepository,
		Attendance: repos.AttendanceRepository,
		Holidays:   repos.HolidayRepository,
		Schedule:   repos.ScheduleRepository,
	}
}
