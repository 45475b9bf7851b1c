package attendance

import (
	"sort"
	"time"
)

// Verdict summarises a leave plan.
type Verdict string

const (
	VerdictSafe   Verdict = "safe"
	VerdictAtRisk Verdict = "at_risk"
)

// RecoveryOutcome tells whether a subject can still get back to threshold
// before the semester ends.
type RecoveryOutcome string

const (
	RecoveryNotNeeded  RecoveryOutcome = "not_needed"
	RecoveryPossible   RecoveryOutcome = "possible"
	RecoveryImpossible RecoveryOutcome = "impossible"
)

// LeaveInput is the what-if query for a leave window.
type LeaveInput struct {
	Snapshot *Snapshot
	Start    time.Time
	End      time.Time
	Today    time.Time
}

// SemesterProjection is the rest-of-semester outlook for one subject.
type SemesterProjection struct {
	// RemainingClasses are the class days from the day after the leave
	// through the last teaching day.
	RemainingClasses   int             `json:"remainingClasses"`
	BestCase           Tally           `json:"bestCase"`
	BestCasePercentage float64         `json:"bestCasePercentage"`
	CanStillMiss       int             `json:"canStillMiss"`
	MustAttend         int             `json:"mustAttend"`
	Recovery           RecoveryOutcome `json:"recovery"`
}

// SubjectImpact is the effect of the leave on a single subject.
type SubjectImpact struct {
	SubjectID            SubjectID           `json:"subjectId"`
	Name                 string              `json:"name"`
	Current              Tally               `json:"current"`
	CurrentPercentage    float64             `json:"currentPercentage"`
	MissedClasses        int                 `json:"missedClasses"`
	AfterLeave           Tally               `json:"afterLeave"`
	AfterLeavePercentage float64             `json:"afterLeavePercentage"`
	Eligible             bool                `json:"eligible"`
	Projection           *SemesterProjection `json:"projection,omitempty"`
}

// LeaveReport is the full three-part answer for a leave plan.
type LeaveReport struct {
	Start     time.Time       `json:"start"`
	End       time.Time       `json:"end"`
	Subjects  []SubjectImpact `json:"subjects"`
	Projected bool            `json:"projected"`
	Verdict   Verdict         `json:"verdict"`
	AtRisk    []SubjectID     `json:"atRisk,omitempty"`
}

// SimulateLeave projects the immediate and semester-end impact of being
// absent for every class day in [Start, End].
func SimulateLeave(in LeaveInput) (*LeaveReport, error) {
	snap := in.Snapshot
	start, end, today := Day(in.Start), Day(in.End), Day(in.Today)

	after, err := projectLeave(snap.Subjects, snap.Schedule, snap.Calendar, start, end)
	if err != nil {
		return nil, err
	}

	report := &LeaveReport{
		Start:     start,
		End:       end,
		Projected: snap.SemesterLive(today),
		Verdict:   VerdictSafe,
	}

	for _, s := range snap.Subjects {
		cur := s.Tally()
		post := after[s.ID]
		impact := SubjectImpact{
			SubjectID:            s.ID,
			Name:                 s.Name,
			Current:              cur,
			CurrentPercentage:    cur.Percentage(),
			MissedClasses:        post.Conducted - cur.Conducted,
			AfterLeave:           post,
			AfterLeavePercentage: post.Percentage(),
			Eligible:             IsEligible(post),
		}
		if report.Projected {
			impact.Projection = projectSemester(s.ID, post, snap, end)
		}
		if !impact.Eligible {
			report.Verdict = VerdictAtRisk
			report.AtRisk = append(report.AtRisk, s.ID)
		}
		report.Subjects = append(report.Subjects, impact)
	}

	sort.Slice(report.AtRisk, func(i, j int) bool { return report.AtRisk[i] < report.AtRisk[j] })
	return report, nil
}

func projectSemester(id SubjectID, post Tally, snap *Snapshot, leaveEnd time.Time) *SemesterProjection {
	remaining := CountClassDays(id, snap.Schedule, snap.Calendar, nextDay(leaveEnd), snap.Semester.LastTeachingDay)
	best := post.withAttendance(remaining)

	p := &SemesterProjection{
		RemainingClasses:   remaining,
		BestCase:           best,
		BestCasePercentage: best.Percentage(),
		CanStillMiss:       min(SafeBunks(best), remaining),
		MustAttend:         RecoveryClasses(post),
	}
	switch {
	case p.MustAttend == 0:
		p.Recovery = RecoveryNotNeeded
	case p.MustAttend > remaining:
		p.Recovery = RecoveryImpossible
	default:
		p.Recovery = RecoveryPossible
	}
	return p
}
