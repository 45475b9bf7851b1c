package attendance

import "time"

// SubjectID identifies a subject within a student's snapshot.
type SubjectID int64

// Slot is one persisted (subject, weekday) schedule edge.
type Slot struct {
	SubjectID SubjectID
	Weekday   time.Weekday
}

// Schedule maps each weekday to the ordered subjects meeting that day.
// It is a pure lookup structure and holds no blackout logic.
type Schedule struct {
	days [7][]SubjectID
}

// NewSchedule returns an empty timetable.
func NewSchedule() *Schedule {
	return &Schedule{}
}

// ScheduleFromSlots rebuilds a timetable from persisted edges.
func ScheduleFromSlots(slots []Slot) *Schedule {
	s := NewSchedule()
	for _, slot := range slots {
		s.Add(slot.Weekday, slot.SubjectID)
	}
	return s
}

// Add puts subject on weekday. Adding the same pair twice is a no-op.
func (s *Schedule) Add(day time.Weekday, id SubjectID) {
	if s.IsScheduled(id, day) {
		return
	}
	s.days[day] = append(s.days[day], id)
}

// SubjectsOn returns a copy of the subjects meeting on day, in insertion order.
func (s *Schedule) SubjectsOn(day time.Weekday) []SubjectID {
	out := make([]SubjectID, len(s.days[day]))
	copy(out, s.days[day])
	return out
}

// IsScheduled reports whether subject meets on day.
func (s *Schedule) IsScheduled(id SubjectID, day time.Weekday) bool {
	for _, sid := range s.days[day] {
		if sid == id {
			return true
		}
	}
	return false
}

// DaysFor lists the weekdays a subject meets on, Sunday first.
func (s *Schedule) DaysFor(id SubjectID) []time.Weekday {
	var out []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.IsScheduled(id, d) {
			out = append(out, d)
		}
	}
	return out
}

// ClassesPerWeek counts the weekly slots of a subject.
func (s *Schedule) ClassesPerWeek(id SubjectID) int {
	return len(s.DaysFor(id))
}

// Slots flattens the timetable back into edges.
func (s *Schedule) Slots() []Slot {
	var out []Slot
	for d := time.Sunday; d <= time.Saturday; d++ {
		for _, id := range s.days[d] {
			out = append(out, Slot{SubjectID: id, Weekday: d})
		}
	}
	return out
}
