package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/attendance/internal/domain/attendance"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/cache"
	"github.com/yigit/attendance/internal/pkg/logger"
)

// fromCore translates engine sentinels into application errors, keeping the
// engine's message for the client
func fromCore(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, attendance.ErrInvalidRange):
		return apperrors.NewCustomError(apperrors.ErrInvalidDateRange, err.Error())
	case errors.Is(err, attendance.ErrInvalidSemester):
		return apperrors.NewCustomError(apperrors.ErrInvalidSemesterSetting, err.Error())
	case errors.Is(err, attendance.ErrInvariant):
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, err.Error())
	}
	return err
}

func validateID(id int64, name string) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid %s ID", apperrors.ErrValidationFailed, name)
	}
	return nil
}

// Invalidator drops cached read models after a student's data changes
type Invalidator struct {
	cache cache.Cache
}

// NewInvalidator wraps c; a nil cache disables invalidation
func NewInvalidator(c cache.Cache) *Invalidator {
	if c == nil {
		c = cache.Noop{}
	}
	return &Invalidator{cache: c}
}

// Student bumps the student's generation and removes every cached entry of
// studentID. Failures are logged and swallowed: entries expire on their own TTL.
func (i *Invalidator) Student(ctx context.Context, studentID int64) {
	if _, err := i.cache.Incr(ctx, cache.GenerationKey(studentID)); err != nil {
		logger.Warn().Err(err).Int64("studentID", studentID).Msg("Failed to bump dashboard generation")
	}
	if err := i.cache.DeleteByPrefix(ctx, cache.StudentPrefix(studentID)); err != nil {
		logger.Warn().Err(err).Int64("studentID", studentID).Msg("Failed to invalidate cached dashboard")
	}
}
