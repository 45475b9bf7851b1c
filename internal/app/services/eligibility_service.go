package services

import (
	"context"
	"errors"
	"time"

	"github.com/yigit/attendance/internal/domain/attendance"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/cache"
	"github.com/yigit/attendance/internal/pkg/helpers"
	"github.com/yigit/attendance/internal/pkg/logger"
)

// Dashboard is the cached per-student overview
type Dashboard struct {
	StudentID int64                   `json:"studentId"`
	Today     time.Time               `json:"today"`
	Bounded   bool                    `json:"bounded"`
	Overall   attendance.Tally        `json:"overall"`
	Subjects  []attendance.Assessment `json:"subjects"`
}

// LeavePrediction is the immediate post-leave percentage of one subject
type LeavePrediction struct {
	SubjectID  int64
	Name       string
	Percentage float64
	Eligible   bool
}

// EligibilityService answers eligibility and leave what-if questions
type EligibilityService interface {
	Dashboard(ctx context.Context, studentID int64) (*Dashboard, error)
	SubjectEligibility(ctx context.Context, studentID, subjectID int64) (*attendance.Assessment, error)
	PredictLeave(ctx context.Context, studentID int64, start, end time.Time) ([]LeavePrediction, error)
	LeaveReport(ctx context.Context, studentID int64, start, end time.Time) (*attendance.LeaveReport, error)
}

type eligibilityServiceImpl struct {
	loader SnapshotLoader
	clock  *helpers.Clock
	cache  cache.Cache
	ttl    time.Duration
}

// NewEligibilityService creates a new eligibility service instance
func NewEligibilityService(loader SnapshotLoader, clock *helpers.Clock, c cache.Cache, ttl time.Duration) EligibilityService {
	if c == nil {
		c = cache.Noop{}
	}
	return &eligibilityServiceImpl{loader: loader, clock: clock, cache: c, ttl: ttl}
}

// Dashboard assesses every subject as of today. Results are cached per
// student, day and generation; mutations bump the generation, so an entry
// built from a snapshot read before a mutation is never served after it.
func (s *eligibilityServiceImpl) Dashboard(ctx context.Context, studentID int64) (*Dashboard, error) {
	if err := validateID(studentID, "student"); err != nil {
		return nil, err
	}
	today := s.clock.Today()

	key, cacheable := s.dashboardKey(ctx, studentID, today)
	if cacheable {
		var cached Dashboard
		err := s.cache.Get(ctx, key, &cached)
		switch {
		case err == nil:
			return &cached, nil
		case !errors.Is(err, cache.ErrCacheMiss):
			logger.Warn().Err(err).Str("key", key).Msg("Dashboard cache read failed")
		}
	}

	snap, _, err := s.loader.Load(ctx, studentID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		StudentID: studentID,
		Today:     today,
		Bounded:   snap.SemesterLive(today),
		Subjects:  attendance.AssessAll(snap, today),
	}
	for _, a := range d.Subjects {
		d.Overall.Conducted += a.Tally.Conducted
		d.Overall.Attended += a.Tally.Attended
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, d, s.ttl); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Dashboard cache write failed")
		}
	}
	return d, nil
}

// dashboardKey reads the student's generation before the snapshot is loaded.
// When the generation cannot be read the dashboard bypasses the cache.
func (s *eligibilityServiceImpl) dashboardKey(ctx context.Context, studentID int64, today time.Time) (string, bool) {
	var gen int64
	if err := s.cache.Get(ctx, cache.GenerationKey(studentID), &gen); err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn().Err(err).Int64("studentID", studentID).Msg("Dashboard generation read failed")
		return "", false
	}
	return cache.DashboardKey(studentID, gen, today), true
}

// SubjectEligibility assesses a single subject as of today
func (s *eligibilityServiceImpl) SubjectEligibility(ctx context.Context, studentID, subjectID int64) (*attendance.Assessment, error) {
	snap, _, err := s.loader.Load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	sub, ok := snap.Subject(attendance.SubjectID(subjectID))
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	a := attendance.Assess(sub, snap, s.clock.Today())
	return &a, nil
}

// PredictLeave returns each subject's percentage after missing every class
// day in [start, end]
func (s *eligibilityServiceImpl) PredictLeave(ctx context.Context, studentID int64, start, end time.Time) ([]LeavePrediction, error) {
	snap, _, err := s.loader.Load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	after, err := attendance.PredictAfterLeave(snap.Subjects, snap.Schedule, snap.Calendar, start, end)
	if err != nil {
		return nil, fromCore(err)
	}

	out := make([]LeavePrediction, 0, len(snap.Subjects))
	for _, sub := range snap.Subjects {
		out = append(out, LeavePrediction{
			SubjectID:  int64(sub.ID),
			Name:       sub.Name,
			Percentage: after[sub.ID],
			Eligible:   after[sub.ID] >= attendance.Threshold,
		})
	}
	return out, nil
}

// LeaveReport runs the full leave simulation
func (s *eligibilityServiceImpl) LeaveReport(ctx context.Context, studentID int64, start, end time.Time) (*attendance.LeaveReport, error) {
	snap, _, err := s.loader.Load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	report, err := attendance.SimulateLeave(attendance.LeaveInput{
		Snapshot: snap,
		Start:    start,
		End:      end,
		Today:    s.clock.Today(),
	})
	if err != nil {
		return nil, fromCore(err)
	}
	return report, nil
}
