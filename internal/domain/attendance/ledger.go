package attendance

import (
	"fmt"
	"sort"
	"time"
)

// Record is a single attendance mark for one date.
type Record struct {
	Date    time.Time `json:"date"`
	Present bool      `json:"present"`
}

// Tally is an immutable conducted/attended counter pair.
// The engine functions work on tallies so they can run against a ledger
// snapshot or against projected (shadow) counts alike.
type Tally struct {
	Conducted int `json:"conducted"`
	Attended  int `json:"attended"`
}

// NewTally validates and builds a Tally.
func NewTally(conducted, attended int) (Tally, error) {
	if conducted < 0 || attended < 0 {
		return Tally{}, fmt.Errorf("%w: negative counts (conducted=%d, attended=%d)", ErrInvariant, conducted, attended)
	}
	if attended > conducted {
		return Tally{}, fmt.Errorf("%w: attended %d exceeds conducted %d", ErrInvariant, attended, conducted)
	}
	return Tally{Conducted: conducted, Attended: attended}, nil
}

// Percentage returns attended/conducted*100, or 100 for an untaught subject.
func (t Tally) Percentage() float64 {
	return percentage(t.Attended, t.Conducted)
}

// Absent returns the number of missed classes.
func (t Tally) Absent() int {
	return t.Conducted - t.Attended
}

// withAbsences returns the tally after n more classes were missed.
func (t Tally) withAbsences(n int) Tally {
	return Tally{Conducted: t.Conducted + n, Attended: t.Attended}
}

// withAttendance returns the tally after n more classes were attended.
func (t Tally) withAttendance(n int) Tally {
	return Tally{Conducted: t.Conducted + n, Attended: t.Attended + n}
}

func percentage(attended, conducted int) float64 {
	if conducted == 0 {
		return 100.0
	}
	return float64(attended) / float64(conducted) * 100.0
}

// Ledger is the attendance history of one subject. It keeps at most one
// record per date; writing an existing date overwrites its presence.
type Ledger struct {
	records map[time.Time]bool
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{records: make(map[time.Time]bool)}
}

// LedgerFromRecords builds a ledger from already-loaded records.
// Duplicate dates are rejected since storage guarantees uniqueness.
func LedgerFromRecords(records []Record) (*Ledger, error) {
	l := NewLedger()
	for _, r := range records {
		d := Day(r.Date)
		if _, dup := l.records[d]; dup {
			return nil, fmt.Errorf("%w: duplicate record for %s", ErrInvariant, FormatDate(d))
		}
		l.records[d] = r.Present
	}
	return l, nil
}

// Record upserts the mark for date.
func (l *Ledger) Record(date time.Time, present bool) {
	l.records[Day(date)] = present
}

// Remove deletes the mark for date. Missing dates are ignored.
func (l *Ledger) Remove(date time.Time) {
	delete(l.records, Day(date))
}

// Has reports whether date has a mark.
func (l *Ledger) Has(date time.Time) bool {
	_, ok := l.records[Day(date)]
	return ok
}

// Present reports the mark for date and whether one exists.
func (l *Ledger) Present(date time.Time) (present, ok bool) {
	present, ok = l.records[Day(date)]
	return present, ok
}

// Conducted is the number of recorded classes.
func (l *Ledger) Conducted() int {
	return len(l.records)
}

// Attended is the number of records marked present.
func (l *Ledger) Attended() int {
	n := 0
	for _, present := range l.records {
		if present {
			n++
		}
	}
	return n
}

// Percentage of classes attended; 100 when nothing was conducted yet.
func (l *Ledger) Percentage() float64 {
	return percentage(l.Attended(), l.Conducted())
}

// Tally snapshots the current counts.
func (l *Ledger) Tally() Tally {
	return Tally{Conducted: l.Conducted(), Attended: l.Attended()}
}

// Records returns a copy of the history sorted by date.
func (l *Ledger) Records() []Record {
	out := make([]Record, 0, len(l.records))
	for d, present := range l.records {
		out = append(out, Record{Date: d, Present: present})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Clone returns an independent copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	c := NewLedger()
	for d, present := range l.records {
		c.records[d] = present
	}
	return c
}
