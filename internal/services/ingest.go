package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/moodtrace-backend/internal/baseline"
	"github.com/yungbote/moodtrace-backend/internal/data/graph"
	moodrepos "github.com/yungbote/moodtrace-backend/internal/data/repos/mood"
	types "github.com/yungbote/moodtrace-backend/internal/domain"
	apperrors "github.com/yungbote/moodtrace-backend/internal/pkg/errors"
	"github.com/yungbote/moodtrace-backend/internal/platform/logger"
	"github.com/yungbote/moodtrace-backend/internal/platform/neo4jdb"
)

// FeatureMentionInput is one extracted feature on an incoming entry, already
// typed and named by the text-understanding collaborator.
type FeatureMentionInput struct {
	Type             string  `json:"type"`
	Name             string  `json:"name"`
	Confidence       float64 `json:"confidence"`
	ExtractorVersion string  `json:"extractor_version,omitempty"`
}

type ContextInput struct {
	SleepHours      *float64 `json:"sleep_hours,omitempty"`
	SleepQuality    *int     `json:"sleep_quality,omitempty"`
	MedicationTaken *bool    `json:"medication_taken,omitempty"`
	EnergyLevel     *int     `json:"energy_level,omitempty"`
}

type AffectInput struct {
	Valence      float64 `json:"valence"`
	Arousal      float64 `json:"arousal"`
	ModelVersion string  `json:"model_version,omitempty"`
}

// LabeledEntryInput is one validated journal observation with its
// self-reported mood label. Embedding comes precomputed from upstream.
type LabeledEntryInput struct {
	EntryID    uuid.UUID             `json:"entry_id,omitempty"`
	OccurredAt time.Time             `json:"occurred_at"`
	RawText    string                `json:"raw_text"`
	Source     string                `json:"source,omitempty"`
	Language   string                `json:"language,omitempty"`
	Embedding  []float64             `json:"embedding,omitempty"`
	Mood       int                   `json:"mood"`
	Valence    *float64              `json:"valence,omitempty"`
	Arousal    *float64              `json:"arousal,omitempty"`
	Confidence *float64              `json:"confidence,omitempty"`
	Context    *ContextInput         `json:"context,omitempty"`
	Affect     *AffectInput          `json:"affect,omitempty"`
	Features   []FeatureMentionInput `json:"features,omitempty"`
}

type IngestService interface {
	RecordLabeledEntry(ctx context.Context, userID uuid.UUID, input LabeledEntryInput) (*types.MoodEntry, error)
}

type ingestService struct {
	db           *gorm.DB
	log          *logger.Logger
	graphClient  *neo4jdb.Client
	embeddingDim int
	halfLifeDays float64

	entryRepo    moodrepos.EntryRepo
	selfRepo     moodrepos.SelfReportRepo
	contextRepo  moodrepos.ContextPointRepo
	affectRepo   moodrepos.AffectPointRepo
	featureRepo  moodrepos.FeatureRepo
	mentionRepo  moodrepos.FeatureMentionRepo
	baselineRepo moodrepos.BaselineStatRepo
}

func NewIngestService(
	db *gorm.DB,
	log *logger.Logger,
	graphClient *neo4jdb.Client,
	embeddingDim int,
	halfLifeDays float64,
	entryRepo moodrepos.EntryRepo,
	selfRepo moodrepos.SelfReportRepo,
	contextRepo moodrepos.ContextPointRepo,
	affectRepo moodrepos.AffectPointRepo,
	featureRepo moodrepos.FeatureRepo,
	mentionRepo moodrepos.FeatureMentionRepo,
	baselineRepo moodrepos.BaselineStatRepo,
) IngestService {
	if halfLifeDays <= 0 {
		halfLifeDays = baseline.DefaultHalfLifeDays
	}
	return &ingestService{
		db:           db,
		log:          log.With("service", "IngestService"),
		graphClient:  graphClient,
		embeddingDim: embeddingDim,
		halfLifeDays: halfLifeDays,
		entryRepo:    entryRepo,
		selfRepo:     selfRepo,
		contextRepo:  contextRepo,
		affectRepo:   affectRepo,
		featureRepo:  featureRepo,
		mentionRepo:  mentionRepo,
		baselineRepo: baselineRepo,
	}
}

func (s *ingestService) RecordLabeledEntry(ctx context.Context, userID uuid.UUID, input LabeledEntryInput) (*types.MoodEntry, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required: %w", apperrors.ErrInvalidArgument)
	}
	if input.Mood < 1 || input.Mood > 10 {
		return nil, fmt.Errorf("mood must be 1..10, got %d: %w", input.Mood, apperrors.ErrInvalidArgument)
	}
	if input.OccurredAt.IsZero() {
		return nil, fmt.Errorf("occurred_at required: %w", apperrors.ErrInvalidArgument)
	}
	if s.embeddingDim > 0 && len(input.Embedding) > 0 && len(input.Embedding) != s.embeddingDim {
		return nil, fmt.Errorf("embedding has %d dims, configured dim is %d: %w",
			len(input.Embedding), s.embeddingDim, apperrors.ErrDimensionMismatch)
	}

	entry := &types.MoodEntry{
		ID:         input.EntryID,
		UserID:     userID,
		OccurredAt: input.OccurredAt.UTC(),
		RawText:    input.RawText,
		Source:     input.Source,
		Language:   input.Language,
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Source == "" {
		entry.Source = "journal"
	}
	if len(input.Embedding) > 0 {
		if err := entry.SetEmbeddingVector(input.Embedding); err != nil {
			return nil, fmt.Errorf("encode embedding: %w", err)
		}
	}

	var (
		label       *types.SelfReportLabel
		prevEntryID uuid.UUID
		features    []*types.Feature
		mentions    []*types.FeatureMention
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A label already on file means this entry id was fully recorded
		// before and the caller is retrying (e.g. after a graph mirror
		// failure). Baselines were folded on the first pass, so a replay
		// must not fold them again.
		priorLabels, err := s.selfRepo.GetByEntryIDs(ctx, tx, []uuid.UUID{entry.ID})
		if err != nil {
			return fmt.Errorf("check existing self report: %w", err)
		}
		replay := len(priorLabels) > 0

		if _, err := s.entryRepo.Create(ctx, tx, []*types.MoodEntry{entry}); err != nil {
			return fmt.Errorf("persist entry: %w", err)
		}

		label = &types.SelfReportLabel{
			EntryID:    entry.ID,
			UserID:     userID,
			Mood:       input.Mood,
			Valence:    input.Valence,
			Arousal:    input.Arousal,
			Confidence: input.Confidence,
		}
		if err := s.selfRepo.Upsert(ctx, tx, label); err != nil {
			return fmt.Errorf("persist self report: %w", err)
		}

		if input.Context != nil {
			cp := &types.ContextPoint{
				EntryID:         entry.ID,
				SleepHours:      input.Context.SleepHours,
				SleepQuality:    input.Context.SleepQuality,
				MedicationTaken: input.Context.MedicationTaken,
				EnergyLevel:     input.Context.EnergyLevel,
			}
			if err := s.contextRepo.Upsert(ctx, tx, cp); err != nil {
				return fmt.Errorf("persist context point: %w", err)
			}
		}

		moodStats, err := s.foldBaseline(ctx, tx, userID, "mood", float64(input.Mood), entry.OccurredAt, replay)
		if err != nil {
			return err
		}
		if input.Context != nil && input.Context.SleepHours != nil {
			if _, err := s.foldBaseline(ctx, tx, userID, "sleep_hours", *input.Context.SleepHours, entry.OccurredAt, replay); err != nil {
				return err
			}
		}
		if input.Context != nil && input.Context.EnergyLevel != nil {
			if _, err := s.foldBaseline(ctx, tx, userID, "energy", float64(*input.Context.EnergyLevel), entry.OccurredAt, replay); err != nil {
				return err
			}
		}

		if input.Affect != nil {
			ap := &types.AffectPoint{
				EntryID:      entry.ID,
				Valence:      input.Affect.Valence,
				Arousal:      input.Affect.Arousal,
				ModelVersion: input.Affect.ModelVersion,
			}
			arousalStats, err := s.foldBaseline(ctx, tx, userID, "arousal", input.Affect.Arousal, entry.OccurredAt, replay)
			if err != nil {
				return err
			}
			if moodStats.Count >= baseline.MinEntriesForZ {
				mz := baseline.ZScore(moodStats, float64(input.Mood))
				ap.MoodZ = &mz
				// Low mood maps to high depression scores.
				phq9 := float64(baseline.PHQ9.FromZ(-mz))
				ap.PHQ9Estimate = &phq9
			}
			if arousalStats.Count >= baseline.MinEntriesForZ {
				az := baseline.ZScore(arousalStats, input.Affect.Arousal)
				ap.AnxietyZ = &az
				gad7 := float64(baseline.GAD7.FromZ(az))
				ap.GAD7Estimate = &gad7
			}
			if err := s.affectRepo.Upsert(ctx, tx, ap); err != nil {
				return fmt.Errorf("persist affect point: %w", err)
			}
		}

		if len(input.Features) > 0 {
			rows := make([]*types.Feature, 0, len(input.Features))
			seen := make(map[string]struct{}, len(input.Features))
			for _, f := range input.Features {
				key := types.CanonicalFeatureKey(f.Type, f.Name)
				if f.Name == "" || key == "" {
					continue
				}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				rows = append(rows, &types.Feature{
					Key:  key,
					Type: f.Type,
					Name: types.NormalizeFeatureName(f.Name),
				})
			}
			upserted, err := s.featureRepo.UpsertByKey(ctx, tx, rows)
			if err != nil {
				return fmt.Errorf("upsert features: %w", err)
			}
			features = upserted

			byKey := make(map[string]*types.Feature, len(upserted))
			for _, f := range upserted {
				byKey[f.Key] = f
			}
			for _, f := range input.Features {
				key := types.CanonicalFeatureKey(f.Type, f.Name)
				feat, ok := byKey[key]
				if !ok {
					continue
				}
				mentions = append(mentions, &types.FeatureMention{
					EntryID:          entry.ID,
					FeatureID:        feat.ID,
					Confidence:       f.Confidence,
					ExtractorVersion: f.ExtractorVersion,
				})
			}
			if err := s.mentionRepo.Upsert(ctx, tx, mentions); err != nil {
				return fmt.Errorf("upsert feature mentions: %w", err)
			}
		}

		prev, err := s.entryRepo.GetLatestBefore(ctx, tx, userID, *entry)
		if err != nil {
			return fmt.Errorf("load previous entry: %w", err)
		}
		if prev != nil {
			prevEntryID = prev.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := graph.UpsertEntryGraph(ctx, s.graphClient, s.log, entry, label, prevEntryID, features, mentions); err != nil {
		return nil, err
	}

	s.log.Info("labeled entry recorded",
		"user_id", userID.String(),
		"entry_id", entry.ID.String(),
		"features", len(features),
	)
	return entry, nil
}

// foldBaseline folds value into the user's per-metric running stats. On a
// replay it only reads the stats back, so retries leave baselines unchanged.
func (s *ingestService) foldBaseline(ctx context.Context, tx *gorm.DB, userID uuid.UUID, metric string, value float64, at time.Time, replay bool) (baseline.Stats, error) {
	existing, err := s.baselineRepo.GetByUserAndMetric(ctx, tx, userID, metric)
	if err != nil {
		return baseline.Stats{}, fmt.Errorf("load %s baseline: %w", metric, err)
	}

	var prev *baseline.Stats
	if existing != nil {
		prev = &baseline.Stats{
			Mean:          existing.Mean,
			SD:            existing.SD,
			Count:         existing.Count,
			LastUpdatedAt: existing.LastUpdatedAt,
		}
	}
	if replay {
		if prev != nil {
			return *prev, nil
		}
		return baseline.Stats{}, nil
	}
	next := baseline.Update(prev, value, at, s.halfLifeDays)

	row := &types.BaselineStat{
		UserID:        userID,
		Metric:        metric,
		Mean:          next.Mean,
		SD:            next.SD,
		Count:         next.Count,
		LastUpdatedAt: next.LastUpdatedAt,
	}
	if existing != nil {
		row.ID = existing.ID
	}
	if err := s.baselineRepo.Upsert(ctx, tx, row); err != nil {
		return baseline.Stats{}, fmt.Errorf("persist %s baseline: %w", metric, err)
	}
	return next, nil
}
