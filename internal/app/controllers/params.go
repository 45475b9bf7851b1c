package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/attendance/internal/domain/attendance"
	"github.com/yigit/attendance/internal/middleware"
	"github.com/yigit/attendance/internal/pkg/helpers"
	"github.com/yigit/attendance/internal/pkg/validation"
)

// pathID parses a positive int64 path parameter, writing a 400 on failure
func pathID(ctx *gin.Context, param, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(param), 10, 64)
	if err != nil || id <= 0 {
		middleware.RespondBadRequest(ctx, param, name+" ID must be a positive number")
		return 0, false
	}
	return id, true
}

func studentAndSubject(ctx *gin.Context) (studentID, subjectID int64, ok bool) {
	if studentID, ok = pathID(ctx, "id", "Student"); !ok {
		return 0, 0, false
	}
	if subjectID, ok = pathID(ctx, "subjectId", "Subject"); !ok {
		return 0, 0, false
	}
	return studentID, subjectID, true
}

// date parses a civil date, writing a 400 on failure
func date(ctx *gin.Context, field, value string) (time.Time, bool) {
	d, err := helpers.ParseDateParam(field, value)
	if err != nil {
		middleware.RespondBadRequest(ctx, field, err.Error())
		return time.Time{}, false
	}
	return d, true
}

// Longest inclusive spans accepted by range endpoints, in days.
const (
	maxHolidayRangeDays = 366
	maxProjectionDays   = 3 * 366
)

// dateRange parses an inclusive range and rejects one that ends before it
// starts or, when maxDays is positive, covers more than maxDays days
func dateRange(ctx *gin.Context, fromField, from, toField, to string, maxDays int) (time.Time, time.Time, bool) {
	start, ok := date(ctx, fromField, from)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := date(ctx, toField, to)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		middleware.RespondBadRequest(ctx, toField, toField+" "+attendance.FormatDate(end)+" is before "+fromField+" "+attendance.FormatDate(start))
		return time.Time{}, time.Time{}, false
	}
	if maxDays > 0 && end.After(start.AddDate(0, 0, maxDays-1)) {
		middleware.RespondBadRequest(ctx, toField, fmt.Sprintf("range may span at most %d days", maxDays))
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// weekdays parses day names; a nil input stays nil
func weekdays(ctx *gin.Context, names []string) ([]time.Weekday, bool) {
	if names == nil {
		return nil, true
	}
	out := make([]time.Weekday, 0, len(names))
	for _, n := range names {
		d, err := validation.ParseWeekday(n)
		if err != nil {
			middleware.RespondBadRequest(ctx, "days", err.Error())
			return nil, false
		}
		out = append(out, d)
	}
	return out, true
}
