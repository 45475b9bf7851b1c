package cache

import (
	"fmt"
	"time"
)

const (
	// PrefixDashboard namespaces per-student dashboard entries.
	PrefixDashboard = "dashboard:"
	// PrefixGeneration namespaces per-student invalidation counters. It sits
	// outside PrefixDashboard so dropping a student's entries keeps the counter.
	PrefixGeneration = "dashgen:"
)

// DashboardKey is the cache key for a student's dashboard as of a civil date
// and invalidation generation. The date is part of the key because
// remaining-class counts depend on today; the generation keeps an entry
// computed before a mutation from being served after it.
func DashboardKey(studentID, generation int64, today time.Time) string {
	return fmt.Sprintf("%s%d:%s", StudentPrefix(studentID), generation, today.Format("2006-01-02"))
}

// StudentPrefix covers every cached entry of one student.
func StudentPrefix(studentID int64) string {
	return fmt.Sprintf("%s%d:", PrefixDashboard, studentID)
}

// GenerationKey holds the counter bumped on every change to a student's data.
func GenerationKey(studentID int64) string {
	return fmt.Sprintf("%s%d", PrefixGeneration, studentID)
}
