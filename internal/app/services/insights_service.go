package services

import (
	"context"
	"time"

	"github.com/yigit/attendance/internal/domain/attendance"
	"github.com/yigit/attendance/internal/pkg/apperrors"
)

// SubjectSeries is the weekly trend of one subject
type SubjectSeries struct {
	SubjectID int64
	Name      string
	Points    []attendance.TrendPoint
}

// Trends holds the overall and per-subject weekly series
type Trends struct {
	Overall  []attendance.TrendPoint
	Subjects []SubjectSeries
}

// InsightsService produces the trend and month views
type InsightsService interface {
	Trends(ctx context.Context, studentID int64) (*Trends, error)
	Heatmap(ctx context.Context, studentID, subjectID int64, year int, month time.Month) ([]attendance.DayMark, error)
}

type insightsServiceImpl struct {
	loader SnapshotLoader
}

// NewInsightsService creates a new insights service instance
func NewInsightsService(loader SnapshotLoader) InsightsService {
	return &insightsServiceImpl{loader: loader}
}

// Trends returns cumulative weekly attendance for the student
func (s *insightsServiceImpl) Trends(ctx context.Context, studentID int64) (*Trends, error) {
	snap, _, err := s.loader.Load(ctx, studentID)
	if err != nil {
		return nil, err
	}

	t := &Trends{
		Overall:  attendance.OverallTrend(snap.Subjects),
		Subjects: make([]SubjectSeries, 0, len(snap.Subjects)),
	}
	for _, sub := range snap.Subjects {
		t.Subjects = append(t.Subjects, SubjectSeries{
			SubjectID: int64(sub.ID),
			Name:      sub.Name,
			Points:    attendance.WeeklyTrend(sub.Ledger),
		})
	}
	return t, nil
}

// Heatmap classifies every day of a month for one subject
func (s *insightsServiceImpl) Heatmap(ctx context.Context, studentID, subjectID int64, year int, month time.Month) ([]attendance.DayMark, error) {
	snap, _, err := s.loader.Load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	sub, ok := snap.Subject(attendance.SubjectID(subjectID))
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	return attendance.MonthMarks(sub.Ledger, snap.Calendar, year, month), nil
}
