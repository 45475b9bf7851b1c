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

const upsertAttendanceSuffix = "ON CONFLICT (subject_id, record_date) DO UPDATE SET is_present = EXCLUDED.is_present"

var attendanceColumns = []string{"id", "subject_id", "record_date", "is_present", "created_at"}

// AttendanceRepository handles attendance record database operations
type AttendanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db, sb: psql}
}

// Upsert records a mark, replacing any earlier mark on the same date
func (r *AttendanceRepository) Upsert(ctx context.Context, subjectID int64, date time.Time, present bool) error {
	sql, args, err := r.sb.Insert("attendance_records").
		Columns("subject_id", "record_date", "is_present").
		Values(subjectID, attendance.Day(date), present).
		Suffix(upsertAttendanceSuffix).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert attendance SQL")
		return fmt.Errorf("failed to build upsert attendance query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Int64("subjectID", subjectID).Msg("Error upserting attendance")
		return fmt.Errorf("error upserting attendance: %w", err)
	}
	return nil
}

// Delete removes the mark of a subject on date
func (r *AttendanceRepository) Delete(ctx context.Context, subjectID int64, date time.Time) error {
	sql, args, err := r.sb.Delete("attendance_records").
		Where(squirrel.Eq{"subject_id": subjectID, "record_date": attendance.Day(date)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete attendance query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("subjectID", subjectID).Msg("Error deleting attendance")
		return fmt.Errorf("error deleting attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}
	return nil
}

// DeleteForStudentBetween removes every mark of a student's subjects dated
// within [from, to] and returns the number of deleted rows
func (r *AttendanceRepository) DeleteForStudentBetween(ctx context.Context, studentID int64, from, to time.Time) (int64, error) {
	sql, args, err := r.sb.Delete("attendance_records").
		Where("subject_id IN (SELECT id FROM subjects WHERE student_id = ?)", studentID).
		Where(squirrel.GtOrEq{"record_date": attendance.Day(from)}).
		Where(squirrel.LtOrEq{"record_date": attendance.Day(to)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build bulk delete attendance query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error bulk deleting attendance")
		return 0, fmt.Errorf("error bulk deleting attendance: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ReplaceForSubject swaps the whole ledger of a subject in one transaction
func (r *AttendanceRepository) ReplaceForSubject(ctx context.Context, subjectID int64, records []attendance.Record) error {
	return db.WithTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Delete("attendance_records").Where(squirrel.Eq{"subject_id": subjectID}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build clear attendance query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error clearing attendance: %w", err)
		}

		batch := &pgx.Batch{}
		for _, rec := range records {
			sql, args, err := r.sb.Insert("attendance_records").
				Columns("subject_id", "record_date", "is_present").
				Values(subjectID, attendance.Day(rec.Date), rec.Present).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build insert attendance query: %w", err)
			}
			batch.Queue(sql, args...)
		}
		if batch.Len() == 0 {
			return nil
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrSubjectNotFound
			}
			logger.Error().Err(err).Int64("subjectID", subjectID).Int("records", len(records)).Msg("Error inserting attendance batch")
			return fmt.Errorf("error inserting attendance batch: %w", err)
		}
		return nil
	})
}

// ListBySubject returns one page of a subject's records, newest first,
// together with the total number of records
func (r *AttendanceRepository) ListBySubject(ctx context.Context, subjectID int64, offset, limit uint64) ([]models.AttendanceRecord, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("attendance_records").
		Where(squirrel.Eq{"subject_id": subjectID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count attendance query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Int64("subjectID", subjectID).Msg("Error counting attendance")
		return nil, 0, fmt.Errorf("error counting attendance: %w", err)
	}

	sql, args, err := r.sb.Select(attendanceColumns...).
		From("attendance_records").
		Where(squirrel.Eq{"subject_id": subjectID}).
		OrderBy("record_date DESC").
		Offset(offset).
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list attendance query: %w", err)
	}

	records, err := r.query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// TallyBySubject returns the conducted and attended counts of a subject
func (r *AttendanceRepository) TallyBySubject(ctx context.Context, subjectID int64) (attendance.Tally, error) {
	sql, args, err := r.sb.Select("COUNT(*)", "COUNT(*) FILTER (WHERE is_present)").
		From("attendance_records").
		Where(squirrel.Eq{"subject_id": subjectID}).
		ToSql()
	if err != nil {
		return attendance.Tally{}, fmt.Errorf("failed to build tally query: %w", err)
	}

	var conducted, attended int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&conducted, &attended); err != nil {
		logger.Error().Err(err).Int64("subjectID", subjectID).Msg("Error computing attendance tally")
		return attendance.Tally{}, fmt.Errorf("error computing attendance tally: %w", err)
	}
	return attendance.NewTally(conducted, attended)
}

// ListByStudent returns every record of every subject of a student
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.AttendanceRecord, error) {
	sql, args, err := r.sb.Select("ar.id", "ar.subject_id", "ar.record_date", "ar.is_present", "ar.created_at").
		From("attendance_records ar").
		Join("subjects s ON s.id = ar.subject_id").
		Where(squirrel.Eq{"s.student_id": studentID}).
		OrderBy("ar.subject_id ASC", "ar.record_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list student attendance query: %w", err)
	}
	return r.query(ctx, sql, args...)
}

func (r *AttendanceRepository) query(ctx context.Context, sql string, args ...interface{}) ([]models.AttendanceRecord, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing attendance query")
		return nil, fmt.Errorf("error querying attendance: %w", err)
	}
	defer rows.Close()

	records := []models.AttendanceRecord{}
	for rows.Next() {
		var rec models.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.SubjectID, &rec.RecordDate, &rec.IsPresent, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning attendance row: %w", err)
		}
		rec.RecordDate = attendance.Day(rec.RecordDate)
		records = append(records, rec)
	}
	return records, rows.Err()
}
