package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/dberrors"
	"github.com/yigit/attendance/internal/pkg/logger"
)

var subjectColumns = []string{"id", "student_id", "name", "classes_per_week", "created_at"}

// SubjectRepository handles subject database operations
type SubjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{db: db, sb: psql}
}

// Create inserts a subject and returns its id
func (r *SubjectRepository) Create(ctx context.Context, s *models.Subject) (int64, error) {
	sql, args, err := r.sb.Insert("subjects").
		Columns("student_id", "name", "classes_per_week").
		Values(s.StudentID, s.Name, s.ClassesPerWeek).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create subject SQL")
		return 0, fmt.Errorf("failed to build create subject query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, r.mapWriteError(err, s)
	}
	return id, nil
}

// GetByID retrieves a subject owned by studentID
func (r *SubjectRepository) GetByID(ctx context.Context, studentID, subjectID int64) (*models.Subject, error) {
	sql, args, err := r.sb.Select(subjectColumns...).
		From("subjects").
		Where(squirrel.Eq{"id": subjectID, "student_id": studentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get subject query: %w", err)
	}

	s, err := scanSubject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Int64("subjectID", subjectID).Msg("Error scanning subject row")
		return nil, fmt.Errorf("error getting subject by ID: %w", err)
	}
	return s, nil
}

// ListByStudent returns the subjects of a student in creation order
func (r *SubjectRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Subject, error) {
	sql, args, err := r.sb.Select(subjectColumns...).
		From("subjects").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list subjects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list subjects query")
		return nil, fmt.Errorf("error querying subjects: %w", err)
	}
	defer rows.Close()

	subjects := []*models.Subject{}
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning subject row: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// Update renames a subject or changes its weekly frequency
func (r *SubjectRepository) Update(ctx context.Context, s *models.Subject) error {
	sql, args, err := r.sb.Update("subjects").
		Set("name", s.Name).
		Set("classes_per_week", s.ClassesPerWeek).
		Where(squirrel.Eq{"id": s.ID, "student_id": s.StudentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update subject query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return r.mapWriteError(err, s)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

// Delete removes a subject; records and schedule rows cascade
func (r *SubjectRepository) Delete(ctx context.Context, studentID, subjectID int64) error {
	sql, args, err := r.sb.Delete("subjects").
		Where(squirrel.Eq{"id": subjectID, "student_id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete subject query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("subjectID", subjectID).Msg("Error deleting subject")
		return fmt.Errorf("error deleting subject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

func (r *SubjectRepository) mapWriteError(err error, s *models.Subject) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintSubjectName):
		return apperrors.ErrSubjectAlreadyExists
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.ErrStudentNotFound
	}
	logger.Error().Err(err).Int64("studentID", s.StudentID).Str("name", s.Name).Msg("Error writing subject")
	return fmt.Errorf("error writing subject: %w", err)
}

func scanSubject(row pgx.Row) (*models.Subject, error) {
	var s models.Subject
	if err := row.Scan(&s.ID, &s.StudentID, &s.Name, &s.ClassesPerWeek, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
