package attendance

import "time"

// Subject is a course with its own attendance ledger.
type Subject struct {
	ID             SubjectID
	Name           string
	ClassesPerWeek int
	Ledger         *Ledger
}

// NewSubject returns a subject with an empty ledger.
func NewSubject(id SubjectID, name string, classesPerWeek int) *Subject {
	return &Subject{ID: id, Name: name, ClassesPerWeek: classesPerWeek, Ledger: NewLedger()}
}

// Tally snapshots the subject's ledger counts.
func (s *Subject) Tally() Tally {
	if s.Ledger == nil {
		return Tally{}
	}
	return s.Ledger.Tally()
}

// Snapshot is everything the engine needs about one student at call time.
// Semester is nil when no window is configured ("infinite horizon").
type Snapshot struct {
	Subjects []*Subject
	Schedule *Schedule
	Calendar *Calendar
	Semester *SemesterWindow
}

// Subject finds a subject by id.
func (s *Snapshot) Subject(id SubjectID) (*Subject, bool) {
	for _, sub := range s.Subjects {
		if sub.ID == id {
			return sub, true
		}
	}
	return nil, false
}

// SemesterLive reports whether a semester window is configured and not over.
func (s *Snapshot) SemesterLive(today time.Time) bool {
	return s.Semester != nil && !s.Semester.IsOver(today)
}
