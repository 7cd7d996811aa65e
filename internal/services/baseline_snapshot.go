package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/moodtrace-backend/internal/baseline"
	moodrepos "github.com/yungbote/moodtrace-backend/internal/data/repos/mood"
	apperrors "github.com/yungbote/moodtrace-backend/internal/pkg/errors"
	"github.com/yungbote/moodtrace-backend/internal/platform/logger"
)

type MetricBaseline struct {
	Metric        string    `json:"metric"`
	Mean          float64   `json:"mean"`
	SD            float64   `json:"sd"`
	Count         int       `json:"count"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// MoodOutlook is the display-oriented read of the user's recent mood labels
// against their own baseline. Z and the scale estimates are omitted until
// the baseline has enough observations to be trusted.
type MoodOutlook struct {
	LatestMood    int        `json:"latest_mood"`
	LatestAt      time.Time  `json:"latest_at"`
	Z             *float64   `json:"z,omitempty"`
	Percentile    *float64   `json:"percentile,omitempty"`
	PHQ9Estimate  *int       `json:"phq9_estimate,omitempty"`
	PHQ9Band      string     `json:"phq9_band,omitempty"`
	GAD7Estimate  *int       `json:"gad7_estimate,omitempty"`
	TrendPerDay   *float64   `json:"trend_per_day,omitempty"`
	WindowEntries int        `json:"window_entries"`
	WindowStart   *time.Time `json:"window_start,omitempty"`
}

type BaselineSnapshot struct {
	Baselines []MetricBaseline `json:"baselines"`
	Mood      *MoodOutlook     `json:"mood,omitempty"`
}

type BaselineService interface {
	Snapshot(ctx context.Context, userID uuid.UUID, windowDays int) (*BaselineSnapshot, error)
}

type baselineService struct {
	db  *gorm.DB
	log *logger.Logger

	entryRepo    moodrepos.EntryRepo
	selfRepo     moodrepos.SelfReportRepo
	baselineRepo moodrepos.BaselineStatRepo
}

func NewBaselineService(
	db *gorm.DB,
	log *logger.Logger,
	entryRepo moodrepos.EntryRepo,
	selfRepo moodrepos.SelfReportRepo,
	baselineRepo moodrepos.BaselineStatRepo,
) BaselineService {
	return &baselineService{
		db:           db,
		log:          log.With("service", "BaselineService"),
		entryRepo:    entryRepo,
		selfRepo:     selfRepo,
		baselineRepo: baselineRepo,
	}
}

func (s *baselineService) Snapshot(ctx context.Context, userID uuid.UUID, windowDays int) (*BaselineSnapshot, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required: %w", apperrors.ErrInvalidArgument)
	}
	if windowDays <= 0 {
		windowDays = 30
	}

	stats, err := s.baselineRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load baselines: %w", err)
	}

	snapshot := &BaselineSnapshot{Baselines: make([]MetricBaseline, 0, len(stats))}
	var moodStats *baseline.Stats
	for _, st := range stats {
		snapshot.Baselines = append(snapshot.Baselines, MetricBaseline{
			Metric:        st.Metric,
			Mean:          st.Mean,
			SD:            st.SD,
			Count:         st.Count,
			LastUpdatedAt: st.LastUpdatedAt,
		})
		if st.Metric == "mood" {
			moodStats = &baseline.Stats{
				Mean:          st.Mean,
				SD:            st.SD,
				Count:         st.Count,
				LastUpdatedAt: st.LastUpdatedAt,
			}
		}
	}
	sort.Slice(snapshot.Baselines, func(i, j int) bool {
		return snapshot.Baselines[i].Metric < snapshot.Baselines[j].Metric
	})

	outlook, err := s.moodOutlook(ctx, userID, moodStats, windowDays)
	if err != nil {
		return nil, err
	}
	snapshot.Mood = outlook
	return snapshot, nil
}

func (s *baselineService) moodOutlook(ctx context.Context, userID uuid.UUID, moodStats *baseline.Stats, windowDays int) (*MoodOutlook, error) {
	labels, err := s.selfRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load self reports: %w", err)
	}
	if len(labels) == 0 {
		return nil, nil
	}

	entryIDs := make([]uuid.UUID, 0, len(labels))
	for _, l := range labels {
		entryIDs = append(entryIDs, l.EntryID)
	}
	entries, err := s.entryRepo.GetByIDs(ctx, nil, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	occurredAt := make(map[uuid.UUID]time.Time, len(entries))
	for _, e := range entries {
		occurredAt[e.ID] = e.OccurredAt
	}

	windowStart := time.Now().UTC().AddDate(0, 0, -windowDays)
	points := make([]baseline.TrendPoint, 0, len(labels))
	var latest *MoodOutlook
	for _, l := range labels {
		at, ok := occurredAt[l.EntryID]
		if !ok {
			continue
		}
		if at.Before(windowStart) {
			continue
		}
		points = append(points, baseline.TrendPoint{At: at, Value: float64(l.Mood)})
		if latest == nil || at.After(latest.LatestAt) {
			latest = &MoodOutlook{LatestMood: l.Mood, LatestAt: at}
		}
	}
	if latest == nil {
		return nil, nil
	}
	sort.Slice(points, func(i, j int) bool { return points[i].At.Before(points[j].At) })

	latest.WindowEntries = len(points)
	latest.WindowStart = &windowStart

	if moodStats != nil && moodStats.Count >= baseline.MinEntriesForZ {
		z := baseline.ZScore(*moodStats, float64(latest.LatestMood))
		pct := baseline.Percentile(z)
		phq9 := baseline.PHQ9.FromZ(-z)
		gad7 := baseline.GAD7.FromZ(-z)
		latest.Z = &z
		latest.Percentile = &pct
		latest.PHQ9Estimate = &phq9
		latest.PHQ9Band = baseline.PHQ9.SeverityBand(phq9)
		latest.GAD7Estimate = &gad7
	}

	if slope, ok := baseline.TrendSlope(points); ok {
		latest.TrendPerDay = &slope
	}
	return latest, nil
}
