package attendance

import (
	"sort"
	"time"
)

// TrendPoint is the cumulative percentage at the end of a week, counted
// from the week of the earliest record.
type TrendPoint struct {
	Week       int     `json:"week"`
	Tally      Tally   `json:"tally"`
	Percentage float64 `json:"percentage"`
}

// WeeklyTrend returns one cumulative point per week that has records.
func WeeklyTrend(l *Ledger) []TrendPoint {
	records := l.Records()
	if len(records) == 0 {
		return []TrendPoint{}
	}
	return cumulate(records, records[0].Date)
}

// OverallTrend merges all subjects and returns cumulative weekly points
// relative to the earliest record across them.
func OverallTrend(subjects []*Subject) []TrendPoint {
	var all []Record
	for _, s := range subjects {
		if s.Ledger != nil {
			all = append(all, s.Ledger.Records()...)
		}
	}
	if len(all) == 0 {
		return []TrendPoint{}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Date.Before(all[j].Date) })
	return cumulate(all, all[0].Date)
}

// cumulate expects records sorted by date.
func cumulate(records []Record, ref time.Time) []TrendPoint {
	var (
		points []TrendPoint
		acc    Tally
	)
	for i, r := range records {
		acc.Conducted++
		if r.Present {
			acc.Attended++
		}
		week := weeksBetween(ref, r.Date)
		last := i == len(records)-1
		if last || weeksBetween(ref, records[i+1].Date) != week {
			points = append(points, TrendPoint{Week: week, Tally: acc, Percentage: acc.Percentage()})
		}
	}
	return points
}

func weeksBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours()/24) / 7
}
