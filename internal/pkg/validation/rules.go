package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/attendance/internal/domain/attendance"
)

// Validation rule patterns
var (
	// Username pattern: lowercase letters, digits, dot, dash, underscore
	UsernamePattern = `^[a-z0-9._\-]{3,32}$`

	// Name validation min/max length
	NameMinLength = 1
	NameMaxLength = 100

	// HolidayDescriptionMaxLength caps free-text holiday reasons
	HolidayDescriptionMaxLength = 200
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Username *regexp.Regexp
}{
	Username: regexp.MustCompile(UsernamePattern),
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseWeekday accepts full or three-letter English day names in any case.
func ParseWeekday(s string) (time.Weekday, error) {
	d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return d, nil
}

// Register adds the custom tags used by request DTOs:
//
//	civildate  YYYY-MM-DD string
//	weekday    day name accepted by ParseWeekday
//	username   UsernamePattern
func Register(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"civildate": func(fl validator.FieldLevel) bool {
			_, err := attendance.ParseDate(fl.Field().String())
			return err == nil
		},
		"weekday": func(fl validator.FieldLevel) bool {
			_, err := ParseWeekday(fl.Field().String())
			return err == nil
		},
		"username": func(fl validator.FieldLevel) bool {
			return CompiledPatterns.Username.MatchString(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validation: %w", tag, err)
		}
	}
	return nil
}

// StringValidation checks a single string value
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    strings.TrimSpace(value),
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}
	n := len([]rune(v.Value))
	if v.MinLen > 0 && n < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && n > v.MaxLen {
		return false
	}
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}
	return true
}

// ValidName reports whether s is an acceptable student or subject name.
func ValidName(s string) bool {
	return NewStringValidation(s).WithMinLength(NameMinLength).WithMaxLength(NameMaxLength).Validate()
}
