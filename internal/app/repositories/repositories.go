package repositories

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is the shared not-found error of the persistence layer
var ErrNotFound = errors.New("record not found")

// psql is the statement builder every repository uses
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository    *StudentRepository
	SubjectRepository    *SubjectRepository
	AttendanceRepository *AttendanceRepository
	HolidayRepository    *HolidayRepository
	ScheduleRepository   *ScheduleRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository:    NewStudentRepository(db),
		SubjectRepository:    NewSubjectRepository(db),
		AttendanceRepository: NewAttendanceRepository(db),
		HolidayRepository:    NewHolidayRepository(db),
		ScheduleRepository:   NewScheduleRepository(db),
	}
}
