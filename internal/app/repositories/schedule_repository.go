package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/db"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/dberrors"
	"github.com/yigit/attendance/internal/pkg/logger"
)

// ScheduleRepository handles weekly schedule database operations
type ScheduleRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{db: db, sb: psql}
}

// ReplaceDays sets the weekdays a subject meets on. Rows are ordered by id,
// so a subject moves to the end of each day it is re-added to.
func (r *ScheduleRepository) ReplaceDays(ctx context.Context, subjectID int64, days []time.Weekday) error {
	return db.WithTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Delete("weekly_schedule").Where(squirrel.Eq{"subject_id": subjectID}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build clear schedule query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error clearing schedule: %w", err)
		}
		if len(days) == 0 {
			return nil
		}

		insert := r.sb.Insert("weekly_schedule").Columns("subject_id", "day_of_week")
		for _, d := range days {
			insert = insert.Values(subjectID, int16(d))
		}
		sql, args, err = insert.Suffix("ON CONFLICT (subject_id, day_of_week) DO NOTHING").ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert schedule query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrSubjectNotFound
			}
			logger.Error().Err(err).Int64("subjectID", subjectID).Msg("Error inserting schedule")
			return fmt.Errorf("error inserting schedule: %w", err)
		}
		return nil
	})
}

// ListByStudent returns the schedule rows of a student's subjects
func (r *ScheduleRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.ScheduleEntry, error) {
	sql, args, err := r.sb.Select("ws.subject_id", "ws.day_of_week").
		From("weekly_schedule ws").
		Join("subjects s ON s.id = ws.subject_id").
		Where(squirrel.Eq{"s.student_id": studentID}).
		OrderBy("ws.day_of_week ASC", "ws.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list schedule query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list schedule query")
		return nil, fmt.Errorf("error querying schedule: %w", err)
	}
	defer rows.Close()

	entries := []models.ScheduleEntry{}
	for rows.Next() {
		var (
			e   models.ScheduleEntry
			day int16
		)
		if err := rows.Scan(&e.SubjectID, &day); err != nil {
			return nil, fmt.Errorf("error scanning schedule row: %w", err)
		}
		e.DayOfWeek = time.Weekday(day)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
