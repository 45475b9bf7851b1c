package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/dberrors"
	"github.com/yigit/attendance/internal/pkg/helpers"
	"github.com/yigit/attendance/internal/pkg/logger"
)

var studentColumns = []string{
	"id", "name", "username", "term", "semester_start", "exam_start", "exam_end",
	"last_teaching_day", "created_at", "updated_at",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db, sb: psql}
}

// Create inserts a student and returns its id
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("name", "username").
		Values(s.Name, s.Username).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintStudentUsername) {
			return 0, apperrors.ErrUsernameAlreadyExists
		}
		logger.Error().Err(err).Str("username", s.Username).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}
	return id, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}
	return s, nil
}

// List returns every student ordered by id
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).From("students").OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// UpdateSemester writes the semester fields of s
func (r *StudentRepository) UpdateSemester(ctx context.Context, s *models.Student) error {
	var term pgtype.Text
	if s.Term != nil {
		term = helpers.GetContentNullString(string(*s.Term))
	}

	sql, args, err := r.sb.Update("students").
		Set("term", term).
		Set("semester_start", helpers.NullDate(s.SemesterStart)).
		Set("exam_start", helpers.NullDate(s.ExamStart)).
		Set("exam_end", helpers.NullDate(s.ExamEnd)).
		Set("last_teaching_day", helpers.NullDate(s.LastTeachingDay)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update semester query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsCheckViolation(err) {
			return apperrors.ErrInvalidSemesterSetting
		}
		logger.Error().Err(err).Int64("studentID", s.ID).Msg("Error updating semester")
		return fmt.Errorf("error updating semester: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var (
		s                         models.Student
		term                      pgtype.Text
		start, examStart, examEnd pgtype.Date
		lastTeachingDay           pgtype.Date
	)
	err := row.Scan(&s.ID, &s.Name, &s.Username, &term, &start, &examStart, &examEnd,
		&lastTeachingDay, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if term.Valid {
		t := models.Term(term.String)
		s.Term = &t
	}
	s.SemesterStart = helpers.DatePtr(start)
	s.ExamStart = helpers.DatePtr(examStart)
	s.ExamEnd = helpers.DatePtr(examEnd)
	s.LastTeachingDay = helpers.DatePtr(lastTeachingDay)
	return &s, nil
}
