package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 2026-10-19 is a Monday.
var monday = Date(2026, time.October, 19)

func day(offset int) time.Time {
	return monday.AddDate(0, 0, offset)
}

// ledgerWith builds a ledger of `conducted` records on consecutive days in
// September, the first `attended` of them present.
func ledgerWith(t *testing.T, conducted, attended int) *Ledger {
	t.Helper()
	require.LessOrEqual(t, attended, conducted)
	l := NewLedger()
	start := Date(2026, time.August, 1)
	for i := 0; i < conducted; i++ {
		l.Record(start.AddDate(0, 0, i), i < attended)
	}
	return l
}

func subjectWith(t *testing.T, id SubjectID, conducted, attended int) *Subject {
	t.Helper()
	s := NewSubject(id, "subject", 0)
	s.Ledger = ledgerWith(t, conducted, attended)
	return s
}

func scheduleOf(id SubjectID, days ...time.Weekday) *Schedule {
	s := NewSchedule()
	for _, d := range days {
		s.Add(d, id)
	}
	return s
}
