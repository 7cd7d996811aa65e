package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/moodtrace-backend/internal/calib"
	"github.com/yungbote/moodtrace-backend/internal/data/graph"
	moodrepos "github.com/yungbote/moodtrace-backend/internal/data/repos/mood"
	types "github.com/yungbote/moodtrace-backend/internal/domain"
	apperrors "github.com/yungbote/moodtrace-backend/internal/pkg/errors"
	"github.com/yungbote/moodtrace-backend/internal/platform/logger"
	"github.com/yungbote/moodtrace-backend/internal/platform/neo4jdb"
)

const (
	DefaultMinTrainingN = 10
	DefaultRidgeLambda  = 1.0
)

// TrainOptions override the training defaults. Zero values mean "use the
// default".
type TrainOptions struct {
	Lambda           float64 `json:"lambda,omitempty"`
	MaxFeatures      int     `json:"max_features,omitempty"`
	MinTrainingN     int     `json:"min_training_n,omitempty"`
	BootstrapSamples int     `json:"bootstrap_samples,omitempty"`
	Seed             int64   `json:"seed,omitempty"`
}

// TrainResult reports the outcome. Too little data is a normal outcome, not
// an error: Trained=false with a Reason.
type TrainResult struct {
	Trained bool                    `json:"trained"`
	Reason  string                  `json:"reason,omitempty"`
	Model   *types.CalibrationModel `json:"model,omitempty"`
}

type TrainService interface {
	Train(ctx context.Context, userID uuid.UUID, opts TrainOptions) (*TrainResult, error)
}

type trainService struct {
	db            *gorm.DB
	log           *logger.Logger
	graphClient   *neo4jdb.Client
	defaultLambda float64

	entryRepo   moodrepos.EntryRepo
	selfRepo    moodrepos.SelfReportRepo
	contextRepo moodrepos.ContextPointRepo
	affectRepo  moodrepos.AffectPointRepo
	featureRepo moodrepos.FeatureRepo
	mentionRepo moodrepos.FeatureMentionRepo
	modelRepo   moodrepos.CalibrationModelRepo
}

func NewTrainService(
	db *gorm.DB,
	log *logger.Logger,
	graphClient *neo4jdb.Client,
	defaultLambda float64,
	entryRepo moodrepos.EntryRepo,
	selfRepo moodrepos.SelfReportRepo,
	contextRepo moodrepos.ContextPointRepo,
	affectRepo moodrepos.AffectPointRepo,
	featureRepo moodrepos.FeatureRepo,
	mentionRepo moodrepos.FeatureMentionRepo,
	modelRepo moodrepos.CalibrationModelRepo,
) TrainService {
	if defaultLambda <= 0 {
		defaultLambda = DefaultRidgeLambda
	}
	return &trainService{
		db:            db,
		log:           log.With("service", "TrainService"),
		graphClient:   graphClient,
		defaultLambda: defaultLambda,
		entryRepo:     entryRepo,
		selfRepo:      selfRepo,
		contextRepo:   contextRepo,
		affectRepo:    affectRepo,
		featureRepo:   featureRepo,
		mentionRepo:   mentionRepo,
		modelRepo:     modelRepo,
	}
}

func (s *trainService) Train(ctx context.Context, userID uuid.UUID, opts TrainOptions) (*TrainResult, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required: %w", apperrors.ErrInvalidArgument)
	}

	lambda := opts.Lambda
	if lambda <= 0 {
		lambda = s.defaultLambda
	}
	minTrainingN := opts.MinTrainingN
	if minTrainingN <= 0 {
		minTrainingN = DefaultMinTrainingN
	}
	samples := opts.BootstrapSamples
	if samples <= 0 {
		samples = calib.DefaultBootstrapSamples
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rows, featureFreq, err := s.loadTrainingRows(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(rows) < minTrainingN {
		return &TrainResult{
			Trained: false,
			Reason:  fmt.Sprintf("need at least %d labeled entries, have %d", minTrainingN, len(rows)),
		}, nil
	}

	selection := calib.SelectFeatures(rows, opts.MaxFeatures)
	vocab := []string{}
	if selection.UseFeatures {
		vocab = selection.Keys
	}

	x, y := calib.BuildDesign(rows, vocab)
	fit := calib.FitRidge(x, y, lambda)
	weightVars := calib.BootstrapWeightVariance(ctx, x, y, lambda, samples, seed)

	trainedAt := time.Now().UTC()
	model := &types.CalibrationModel{
		UserID:     userID,
		Version:    fmt.Sprintf("ridge-%s", trainedAt.Format("20060102T150405Z")),
		Lambda:     lambda,
		ResidualSD: fit.ResidualSD,
		TrainingN:  len(rows),
		TrainedAt:  trainedAt,
	}
	keys := append(append([]string{}, calib.BasePredictorKeys...), vocab...)
	if err := model.SetVectors(keys, fit.Weights, weightVars); err != nil {
		return nil, fmt.Errorf("encode model vectors: %w", err)
	}

	if err := s.modelRepo.Replace(ctx, nil, model); err != nil {
		return nil, fmt.Errorf("persist calibration model: %w", err)
	}

	if len(vocab) > 0 {
		assocs := make([]graph.Association, 0, len(vocab))
		for i, key := range vocab {
			idx := calib.BasePredictorCount + i
			assocs = append(assocs, graph.Association{
				FeatureKey: key,
				EffectMean: fit.Weights[idx],
				EffectSD:   math.Sqrt(weightVars[idx]),
				SupportN:   featureFreq[key],
				Target:     "mood",
				LagDays:    0,
			})
		}
		if err := graph.MaterializeAssociations(ctx, s.graphClient, s.log, userID, model.Version, assocs); err != nil {
			return nil, err
		}
	}

	s.log.Info("calibration model trained",
		"user_id", userID.String(),
		"version", model.Version,
		"training_n", model.TrainingN,
		"vocab_size", len(vocab),
	)
	return &TrainResult{Trained: true, Model: model}, nil
}

// loadTrainingRows joins labels with their entries' context, affect and
// feature mentions into vectorizer rows. Also returns the per-feature row
// frequency for association support counts.
func (s *trainService) loadTrainingRows(ctx context.Context, userID uuid.UUID) ([]calib.Row, map[string]int, error) {
	labels, err := s.selfRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load self reports: %w", err)
	}
	if len(labels) == 0 {
		return nil, map[string]int{}, nil
	}

	entryIDs := make([]uuid.UUID, 0, len(labels))
	for _, l := range labels {
		entryIDs = append(entryIDs, l.EntryID)
	}

	contexts, err := s.contextRepo.GetByEntryIDs(ctx, nil, entryIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("load context points: %w", err)
	}
	affects, err := s.affectRepo.GetByEntryIDs(ctx, nil, entryIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("load affect points: %w", err)
	}
	mentions, err := s.mentionRepo.GetByEntryIDs(ctx, nil, entryIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("load feature mentions: %w", err)
	}

	ctxByEntry := make(map[uuid.UUID]*types.ContextPoint, len(contexts))
	for _, c := range contexts {
		ctxByEntry[c.EntryID] = c
	}
	affByEntry := make(map[uuid.UUID]*types.AffectPoint, len(affects))
	for _, a := range affects {
		affByEntry[a.EntryID] = a
	}

	featureIDs := make([]uuid.UUID, 0, len(mentions))
	seenFeature := make(map[uuid.UUID]struct{}, len(mentions))
	for _, m := range mentions {
		if _, ok := seenFeature[m.FeatureID]; ok {
			continue
		}
		seenFeature[m.FeatureID] = struct{}{}
		featureIDs = append(featureIDs, m.FeatureID)
	}
	keyByFeature := make(map[uuid.UUID]string, len(featureIDs))
	if len(featureIDs) > 0 {
		features, err := s.featureRepo.GetByIDs(ctx, nil, featureIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("load features: %w", err)
		}
		for _, f := range features {
			keyByFeature[f.ID] = f.Key
		}
	}
	keysByEntry := make(map[uuid.UUID][]string)
	for _, m := range mentions {
		if key, ok := keyByFeature[m.FeatureID]; ok && key != "" {
			keysByEntry[m.EntryID] = append(keysByEntry[m.EntryID], key)
		}
	}

	rows := make([]calib.Row, 0, len(labels))
	freq := make(map[string]int)
	for _, l := range labels {
		row := calib.Row{
			Mood:        float64(l.Mood),
			FeatureKeys: keysByEntry[l.EntryID],
		}
		if a := affByEntry[l.EntryID]; a != nil {
			v, ar := a.Valence, a.Arousal
			row.AffectValence = &v
			row.AffectArousal = &ar
		}
		if c := ctxByEntry[l.EntryID]; c != nil {
			row.SleepHours = c.SleepHours
			row.SleepQuality = c.SleepQuality
			row.EnergyLevel = c.EnergyLevel
			row.MedicationTaken = c.MedicationTaken
		}
		rows = append(rows, row)

		seen := make(map[string]struct{}, len(row.FeatureKeys))
		for _, key := range row.FeatureKeys {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			freq[key]++
		}
	}
	return rows, freq, nil
}
