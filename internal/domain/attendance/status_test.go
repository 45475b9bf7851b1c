package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAssess_InfiniteHorizon(t *testing.T) {
	snap := &Snapshot{Schedule: scheduleOf(1, time.Monday), Calendar: EmptyCalendar()}

	safe := Assess(subjectWith(t, 1, 35, 30), snap, monday)
	assert.Equal(t, StandingSafe, safe.Standing)
	assert.Equal(t, 5, safe.SafeBunks)
	assert.False(t, safe.Bounded)

	warn := Assess(subjectWith(t, 1, 35, 20), snap, monday)
	assert.Equal(t, StandingWarning, warn.Standing)
	assert.Equal(t, 25, warn.RecoveryClasses)
	assert.Zero(t, warn.SafeBunks)
}

func TestAssess_BoundedBySemester(t *testing.T) {
	snap := &Snapshot{
		Schedule: scheduleOf(1, time.Monday, time.Wednesday, time.Friday),
		Calendar: EmptyCalendar(),
		Semester: &SemesterWindow{Start: day(-60), LastTeachingDay: day(4)},
	}

	t.Run("critical when best case stays below threshold", func(t *testing.T) {
		a := Assess(subjectWith(t, 1, 12, 8), snap, monday)
		assert.True(t, a.Bounded)
		assert.Equal(t, 2, a.Remaining)
		assert.InDelta(t, 10.0/14.0*100, a.MaxPossible, 1e-9)
		assert.Equal(t, StandingCritical, a.Standing)
		assert.Equal(t, 4, a.RecoveryClasses)
	})

	t.Run("safe bunks capped by remaining", func(t *testing.T) {
		a := Assess(subjectWith(t, 1, 35, 30), snap, monday)
		assert.Equal(t, StandingSafe, a.Standing)
		assert.Equal(t, 2, a.SafeBunks)
	})
}

func TestAssess_LastTeachingDay(t *testing.T) {
	snap := &Snapshot{
		Schedule: scheduleOf(1, time.Monday, time.Wednesday),
		Calendar: EmptyCalendar(),
		Semester: &SemesterWindow{Start: day(-60), LastTeachingDay: day(0)},
	}

	last := Assess(subjectWith(t, 1, 35, 30), snap, day(0))
	assert.True(t, last.Bounded)
	assert.Zero(t, last.Remaining)
	assert.Zero(t, last.SafeBunks)
	assert.Equal(t, StandingSafe, last.Standing)

	assert.Equal(t, StandingCritical, Assess(subjectWith(t, 1, 12, 8), snap, day(0)).Standing)

	after := Assess(subjectWith(t, 1, 35, 30), snap, day(1))
	assert.False(t, after.Bounded)
	assert.Equal(t, 5, after.SafeBunks)
}

func TestAssessAll_KeepsOrder(t *testing.T) {
	snap := &Snapshot{
		Subjects: []*Subject{subjectWith(t, 3, 1, 1), subjectWith(t, 1, 1, 0)},
		Schedule: NewSchedule(),
		Calendar: EmptyCalendar(),
	}
	out := AssessAll(snap, monday)
	if assert.Len(t, out, 2) {
		assert.Equal(t, SubjectID(3), out[0].SubjectID)
		assert.Equal(t, SubjectID(1), out[1].SubjectID)
	}
}
