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
	"github.com/yigit/attendance/internal/domain/attendance"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/dberrors"
	"github.com/yigit/attendance/internal/pkg/logger"
)

const upsertHolidaySuffix = "ON CONFLICT (student_id, holiday_date) DO UPDATE SET description = EXCLUDED.description"

// HolidayRepository handles holiday database operations
type HolidayRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewHolidayRepository creates a new HolidayRepository
func NewHolidayRepository(db *pgxpool.Pool) *HolidayRepository {
	return &HolidayRepository{db: db, sb: psql}
}

// Upsert stores a holiday, overwriting the description of an existing date
func (r *HolidayRepository) Upsert(ctx context.Context, studentID int64, h attendance.Holiday) error {
	return r.UpsertMany(ctx, studentID, []attendance.Holiday{h})
}

// UpsertMany stores several holidays in one transaction
func (r *HolidayRepository) UpsertMany(ctx context.Context, studentID int64, holidays []attendance.Holiday) error {
	if len(holidays) == 0 {
		return nil
	}
	return db.WithTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		return r.upsertTx(ctx, tx, studentID, holidays)
	})
}

func (r *HolidayRepository) upsertTx(ctx context.Context, tx pgx.Tx, studentID int64, holidays []attendance.Holiday) error {
	batch := &pgx.Batch{}
	for _, h := range holidays {
		sql, args, err := r.sb.Insert("holidays").
			Columns("student_id", "holiday_date", "description").
			Values(studentID, attendance.Day(h.Date), h.Description).
			Suffix(upsertHolidaySuffix).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build upsert holiday query: %w", err)
		}
		batch.Queue(sql, args...)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Int("holidays", len(holidays)).Msg("Error upserting holidays")
		return fmt.Errorf("error upserting holidays: %w", err)
	}
	return nil
}

// Delete removes the holiday on date
func (r *HolidayRepository) Delete(ctx context.Context, studentID int64, date time.Time) error {
	sql, args, err := r.sb.Delete("holidays").
		Where(squirrel.Eq{"student_id": studentID, "holiday_date": attendance.Day(date)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete holiday query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error deleting holiday")
		return fmt.Errorf("error deleting holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrHolidayNotFound
	}
	return nil
}

// DeleteByDescription removes every holiday carrying description and
// returns how many were removed
func (r *HolidayRepository) DeleteByDescription(ctx context.Context, studentID int64, description string) (int64, error) {
	sql, args, err := r.sb.Delete("holidays").
		Where(squirrel.Eq{"student_id": studentID, "description": description}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete holidays query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error deleting holidays by description")
		return 0, fmt.Errorf("error deleting holidays: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Move replaces the holiday on oldDate with h
func (r *HolidayRepository) Move(ctx context.Context, studentID int64, oldDate time.Time, h attendance.Holiday) error {
	return db.WithTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Delete("holidays").
			Where(squirrel.Eq{"student_id": studentID, "holiday_date": attendance.Day(oldDate)}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete holiday query: %w", err)
		}
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error deleting holiday: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrHolidayNotFound
		}

		// Plain insert: moving onto another holiday's date must not overwrite it.
		sql, args, err = r.sb.Insert("holidays").
			Columns("student_id", "holiday_date", "description").
			Values(studentID, attendance.Day(h.Date), h.Description).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert holiday query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrHolidayExists
			}
			return fmt.Errorf("error inserting holiday: %w", err)
		}
		return nil
	})
}

// ListByStudent returns the holidays of a student in date order
func (r *HolidayRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Holiday, error) {
	sql, args, err := r.sb.Select("id", "student_id", "holiday_date", "description").
		From("holidays").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("holiday_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list holidays query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list holidays query")
		return nil, fmt.Errorf("error querying holidays: %w", err)
	}
	defer rows.Close()

	holidays := []models.Holiday{}
	for rows.Next() {
		var h models.Holiday
		if err := rows.Scan(&h.ID, &h.StudentID, &h.HolidayDate, &h.Description); err != nil {
			return nil, fmt.Errorf("error scanning holiday row: %w", err)
		}
		h.HolidayDate = attendance.Day(h.HolidayDate)
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}
