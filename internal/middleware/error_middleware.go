package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/attendance/internal/app/models/dto"
	"github.com/yigit/attendance/internal/domain/attendance"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/logger"
)

type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// Checked in order; the first match wins.
var errorMappings = []errorMapping{
	{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
	{apperrors.ErrSubjectNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Subject not found"},
	{apperrors.ErrAttendanceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Attendance record not found"},
	{apperrors.ErrHolidayNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Holiday not found"},

	{apperrors.ErrUsernameAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Username already exists"},
	{apperrors.ErrSubjectAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Subject with this name already exists"},
	{apperrors.ErrHolidayExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "A holiday already exists on this date"},

	{apperrors.ErrInvalidDateRange, http.StatusBadRequest, dto.ErrorCodeInvalidDateRange, "End date is before start date"},
	{attendance.ErrInvalidRange, http.StatusBadRequest, dto.ErrorCodeInvalidDateRange, "End date is before start date"},
	{apperrors.ErrInvalidSemesterSetting, http.StatusBadRequest, dto.ErrorCodeInvalidSemester, "Invalid semester settings"},
	{attendance.ErrInvalidSemester, http.StatusBadRequest, dto.ErrorCodeInvalidSemester, "Invalid semester settings"},
	{apperrors.ErrNoScheduledDays, http.StatusUnprocessableEntity, dto.ErrorCodeResourceInvalid, "Subject has no scheduled weekdays"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{attendance.ErrInvariant, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},

	{apperrors.ErrHolidaySourceUnavailable, http.StatusServiceUnavailable, dto.ErrorCodeExternalServiceError, "Public holiday import is not available"},
}

// HandleAPIError handles common API errors and returns appropriate responses.
// A CustomError carrying a message replaces the default message.
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		detail := dto.NewErrorDetail(m.code, m.message)
		var custom *apperrors.CustomError
		if errors.As(err, &custom) && custom.Message != "" {
			detail.Message = custom.Message
			if custom.Details != nil {
				detail.WithDetails(custom.Details)
			}
		} else if m.status == http.StatusBadRequest && err.Error() != m.target.Error() {
			detail.WithDetails(err.Error())
		}
		c.JSON(m.status, dto.NewErrorResponse(detail))
		return
	}

	logger.Error().Err(err).Str("path", c.FullPath()).Str("requestID", RequestID(c)).Msg("Unhandled API error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
	))
}

// RespondBadRequest writes a 400 with a validation detail
func RespondBadRequest(c *gin.Context, field, message string) {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	if field != "" {
		detail.WithField(field)
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}
