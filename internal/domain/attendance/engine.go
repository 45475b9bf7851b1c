package attendance

import (
	"fmt"
	"math"
	"time"
)

// epsilon absorbs float noise in the threshold algebra so that exact
// boundary cases (e.g. 30/40 == 0.75) land on the right integer.
const epsilon = 1e-9

// IsEligible reports whether the tally meets the threshold.
func IsEligible(t Tally) bool {
	return t.Percentage() >= Threshold
}

// SafeBunks is the largest x with attended/(conducted+x) >= Threshold/100.
// It is 0 when the tally is already below threshold.
func SafeBunks(t Tally) int {
	return safeBunksAt(t, Threshold)
}

func safeBunksAt(t Tally, threshold float64) int {
	if t.Percentage() < threshold {
		return 0
	}
	x := math.Floor(float64(t.Attended)*100/threshold - float64(t.Conducted) + epsilon)
	if x < 0 {
		return 0
	}
	return int(x)
}

// RecoveryClasses is the smallest x with (attended+x)/(conducted+x) >= Threshold/100.
// It is 0 when the tally is already eligible.
func RecoveryClasses(t Tally) int {
	return recoveryClassesAt(t, Threshold)
}

// recoveryClassesAt solves (a+x)/(c+x) >= T/100 for x:
//
//	x >= (T*c - 100*a) / (100 - T)
//
// which is 3c - 4a at T = 75.
func recoveryClassesAt(t Tally, threshold float64) int {
	if t.Percentage() >= threshold {
		return 0
	}
	if threshold >= 100 {
		// only reachable when something was already missed
		return math.MaxInt
	}
	x := math.Ceil((threshold*float64(t.Conducted)-100*float64(t.Attended))/(100-threshold) - epsilon)
	if x < 0 {
		return 0
	}
	return int(x)
}

// MaxPossibleAttendance is the percentage reached if every one of the
// remaining classes is attended.
func MaxPossibleAttendance(t Tally, remaining int) float64 {
	if remaining < 0 {
		remaining = 0
	}
	return t.withAttendance(remaining).Percentage()
}

// CountClassDays counts the class days of a subject within [from, to].
func CountClassDays(id SubjectID, schedule *Schedule, cal *Calendar, from, to time.Time) int {
	n := 0
	eachDay(from, to, func(d time.Time) {
		if cal.IsClassDay(id, d, schedule) {
			n++
		}
	})
	return n
}

// RemainingClasses counts class days in (today, end]. A zero or past end
// yields 0.
func RemainingClasses(id SubjectID, schedule *Schedule, cal *Calendar, today, end time.Time) int {
	if end.IsZero() || Day(end).Before(Day(today)) {
		return 0
	}
	return CountClassDays(id, schedule, cal, nextDay(Day(today)), end)
}

// PredictAfterLeave walks [start, end] day by day and, for every class day,
// counts one more conducted class with the student absent. It returns the
// projected percentage per subject and never touches the real ledgers.
func PredictAfterLeave(subjects []*Subject, schedule *Schedule, cal *Calendar, start, end time.Time) (map[SubjectID]float64, error) {
	projected, err := projectLeave(subjects, schedule, cal, start, end)
	if err != nil {
		return nil, err
	}
	out := make(map[SubjectID]float64, len(projected))
	for id, t := range projected {
		out[id] = t.Percentage()
	}
	return out, nil
}

// projectLeave returns the shadow tally of each subject after the leave window.
func projectLeave(subjects []*Subject, schedule *Schedule, cal *Calendar, start, end time.Time) (map[SubjectID]Tally, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	shadow := make(map[SubjectID]Tally, len(subjects))
	for _, s := range subjects {
		shadow[s.ID] = s.Tally()
	}
	eachDay(start, end, func(d time.Time) {
		for _, s := range subjects {
			if cal.IsClassDay(s.ID, d, schedule) {
				shadow[s.ID] = shadow[s.ID].withAbsences(1)
			}
		}
	})
	return shadow, nil
}

func checkRange(start, end time.Time) error {
	if Day(end).Before(Day(start)) {
		return fmt.Errorf("%w: end %s is before start %s", ErrInvalidRange, FormatDate(end), FormatDate(start))
	}
	return nil
}
