package apperrors

import "errors"

// Common errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidDateRange = errors.New("invalid date range")
)

// Student errors
var (
	ErrStudentNotFound        = errors.New("student not found")
	ErrUsernameAlreadyExists  = errors.New("username already exists")
	ErrInvalidSemesterSetting = errors.New("invalid semester settings")
)

// Subject errors
var (
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrSubjectAlreadyExists = errors.New("subject with this name already exists")
)

// Attendance and calendar errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrHolidayNotFound    = errors.New("holiday not found")
	ErrHolidayExists      = errors.New("a holiday already exists on this date")
	ErrNoScheduledDays    = errors.New("subject has no scheduled weekdays")
)

// Infrastructure errors
var (
	ErrHolidaySourceUnavailable = errors.New("public holiday source is not configured")
)

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

