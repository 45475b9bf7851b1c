package attendance

import "time"

// Standing is the headline state of a subject.
type Standing string

const (
	StandingSafe     Standing = "safe"
	StandingWarning  Standing = "warning"
	StandingCritical Standing = "critical"
)

// Assessment is the current-state answer for one subject.
type Assessment struct {
	SubjectID       SubjectID `json:"subjectId"`
	Name            string    `json:"name"`
	Tally           Tally     `json:"tally"`
	Percentage      float64   `json:"percentage"`
	Eligible        bool      `json:"eligible"`
	Standing        Standing  `json:"standing"`
	SafeBunks       int       `json:"safeBunks"`
	RecoveryClasses int       `json:"recoveryClasses"`
	// Bounded is false in infinite-horizon mode, where Remaining and
	// MaxPossible are not computed.
	Bounded     bool    `json:"bounded"`
	Remaining   int     `json:"remaining"`
	MaxPossible float64 `json:"maxPossible"`
}

// Assess evaluates a subject as of today. With a live semester window the
// safe-bunk count is capped by the remaining classes and a subject whose
// best case stays below threshold is critical.
func Assess(s *Subject, snap *Snapshot, today time.Time) Assessment {
	t := s.Tally()
	a := Assessment{
		SubjectID:       s.ID,
		Name:            s.Name,
		Tally:           t,
		Percentage:      t.Percentage(),
		Eligible:        IsEligible(t),
		SafeBunks:       SafeBunks(t),
		RecoveryClasses: RecoveryClasses(t),
	}

	if snap.SemesterLive(today) {
		a.Bounded = true
		a.Remaining = RemainingClasses(s.ID, snap.Schedule, snap.Calendar, today, snap.Semester.LastTeachingDay)
		a.MaxPossible = MaxPossibleAttendance(t, a.Remaining)
		a.SafeBunks = min(a.SafeBunks, a.Remaining)
	}

	switch {
	case a.Eligible:
		a.Standing = StandingSafe
	case a.Bounded && a.MaxPossible < Threshold:
		a.Standing = StandingCritical
	default:
		a.Standing = StandingWarning
	}
	return a
}

// AssessAll evaluates every subject in the snapshot, in snapshot order.
func AssessAll(snap *Snapshot, today time.Time) []Assessment {
	out := make([]Assessment, 0, len(snap.Subjects))
	for _, s := range snap.Subjects {
		out = append(out, Assess(s, snap, today))
	}
	return out
}
