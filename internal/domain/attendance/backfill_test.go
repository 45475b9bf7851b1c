package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackfillRecords_EarliestClassDays(t *testing.T) {
	cal, err := NewCalendar([]Holiday{{Date: day(-12), Description: "Holiday"}}, nil)
	require.NoError(t, err)

	records, err := BackfillRecords(BackfillInput{
		SubjectID: 1,
		Conducted: 4,
		Attended:  3,
		Start:     day(-14),
		Today:     day(0),
		Schedule:  scheduleOf(1, time.Monday, time.Wednesday),
		Calendar:  cal,
	})
	require.NoError(t, err)

	assert.Equal(t, []Record{
		{Date: day(-14), Present: true},
		{Date: day(-7), Present: true},
		{Date: day(-5), Present: true},
		{Date: day(0), Present: false},
	}, records)

	l, err := LedgerFromRecords(records)
	require.NoError(t, err)
	assert.Equal(t, Tally{Conducted: 4, Attended: 3}, l.Tally())
}

func TestBackfillRecords_NotEnoughDays(t *testing.T) {
	records, err := BackfillRecords(BackfillInput{
		SubjectID: 1,
		Conducted: 10,
		Attended:  10,
		Start:     day(-14),
		Today:     day(0),
		Schedule:  scheduleOf(1, time.Monday, time.Wednesday),
		Calendar:  EmptyCalendar(),
	})
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestBackfillRecords_EstimatedStart(t *testing.T) {
	records, err := BackfillRecords(BackfillInput{
		SubjectID: 1,
		Conducted: 6,
		Attended:  2,
		Today:     day(0),
		Schedule:  scheduleOf(1, time.Monday, time.Wednesday),
		Calendar:  EmptyCalendar(),
	})
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.True(t, records[0].Present)
	assert.True(t, records[1].Present)
	assert.False(t, records[2].Present)
	assert.False(t, records[5].Date.After(day(0)))
}

func TestBackfillRecords_Invalid(t *testing.T) {
	_, err := BackfillRecords(BackfillInput{SubjectID: 1, Conducted: 2, Attended: 3, Today: day(0), Schedule: scheduleOf(1, time.Monday), Calendar: EmptyCalendar()})
	assert.ErrorIs(t, err, ErrInvariant)

	_, err = BackfillRecords(BackfillInput{SubjectID: 1, Conducted: 2, Attended: 1, Today: day(0), Schedule: NewSchedule(), Calendar: EmptyCalendar()})
	assert.ErrorIs(t, err, ErrInvariant)

	records, err := BackfillRecords(BackfillInput{SubjectID: 1, Today: day(0), Schedule: NewSchedule(), Calendar: EmptyCalendar()})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestBackfillRecords_ConductedBound(t *testing.T) {
	_, err := BackfillRecords(BackfillInput{
		SubjectID: 1,
		Conducted: 2_000_000_000,
		Attended:  0,
		Today:     day(0),
		Schedule:  scheduleOf(1, time.Monday),
		Calendar:  EmptyCalendar(),
	})
	assert.ErrorIs(t, err, ErrInvariant)

	records, err := BackfillRecords(BackfillInput{
		SubjectID: 1,
		Conducted: MaxBackfillClasses,
		Attended:  MaxBackfillClasses,
		Start:     day(-6),
		Today:     day(0),
		Schedule:  scheduleOf(1, time.Monday),
		Calendar:  EmptyCalendar(),
	})
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.LessOrEqual(t, cap(records), 7)

	records, err = BackfillRecords(BackfillInput{
		SubjectID: 1,
		Conducted: 5,
		Attended:  5,
		Start:     day(3),
		Today:     day(0),
		Schedule:  scheduleOf(1, time.Monday),
		Calendar:  EmptyCalendar(),
	})
	require.NoError(t, err)
	assert.Empty(t, records)
}
