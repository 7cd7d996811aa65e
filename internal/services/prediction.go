package services

import (
	"context"
	"fmt"
	"math"

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
	// NeutralMean/NeutralSD are the answer of last resort when neither the
	// model nor retrieval can contribute.
	NeutralMean = 5.0
	NeutralSD   = 2.0

	// DefaultDisagreementVarCap bounds the blend's model-vs-retrieval
	// disagreement variance term.
	DefaultDisagreementVarCap = 4.0

	disagreementVarWeight = 0.25

	DefaultRetrievalLimit      = 25
	DefaultRetrievalWithinDays = 180
)

type PredictRequest struct {
	EntryID    *uuid.UUID `json:"entry_id,omitempty"`
	Embedding  []float64  `json:"embedding,omitempty"`
	Limit      int        `json:"limit,omitempty"`
	WithinDays int        `json:"within_days,omitempty"`
}

type ModelEstimate struct {
	Mean      float64 `json:"mean"`
	SD        float64 `json:"sd"`
	TrainingN int     `json:"training_n"`
}

type RetrievedEstimate struct {
	Mean     float64 `json:"mean"`
	SD       float64 `json:"sd"`
	SupportN int     `json:"support_n"`
}

// Prediction always carries a usable Mean/SD. Model and Retrieved are nil
// when that side contributed nothing.
type Prediction struct {
	Mean      float64              `json:"mean"`
	SD        float64              `json:"sd"`
	Alpha     float64              `json:"alpha"`
	Model     *ModelEstimate       `json:"model,omitempty"`
	Retrieved *RetrievedEstimate   `json:"retrieved,omitempty"`
	Episodes  []graph.RetrievalHit `json:"episodes,omitempty"`
}

type PredictService interface {
	Predict(ctx context.Context, userID uuid.UUID, req PredictRequest) (*Prediction, error)
}

type predictService struct {
	db           *gorm.DB
	log          *logger.Logger
	graphClient  *neo4jdb.Client
	embeddingDim int
	varCap       float64

	entryRepo   moodrepos.EntryRepo
	contextRepo moodrepos.ContextPointRepo
	affectRepo  moodrepos.AffectPointRepo
	featureRepo moodrepos.FeatureRepo
	mentionRepo moodrepos.FeatureMentionRepo
	modelRepo   moodrepos.CalibrationModelRepo
}

func NewPredictService(
	db *gorm.DB,
	log *logger.Logger,
	graphClient *neo4jdb.Client,
	embeddingDim int,
	disagreementVarCap float64,
	entryRepo moodrepos.EntryRepo,
	contextRepo moodrepos.ContextPointRepo,
	affectRepo moodrepos.AffectPointRepo,
	featureRepo moodrepos.FeatureRepo,
	mentionRepo moodrepos.FeatureMentionRepo,
	modelRepo moodrepos.CalibrationModelRepo,
) PredictService {
	if disagreementVarCap <= 0 {
		disagreementVarCap = DefaultDisagreementVarCap
	}
	return &predictService{
		db:           db,
		log:          log.With("service", "PredictService"),
		graphClient:  graphClient,
		embeddingDim: embeddingDim,
		varCap:       disagreementVarCap,
		entryRepo:    entryRepo,
		contextRepo:  contextRepo,
		affectRepo:   affectRepo,
		featureRepo:  featureRepo,
		mentionRepo:  mentionRepo,
		modelRepo:    modelRepo,
	}
}

func (s *predictService) Predict(ctx context.Context, userID uuid.UUID, req PredictRequest) (*Prediction, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required: %w", apperrors.ErrInvalidArgument)
	}
	hasEntry := req.EntryID != nil && *req.EntryID != uuid.Nil
	if !hasEntry && len(req.Embedding) == 0 {
		return nil, apperrors.ErrMissingInputs
	}
	if hasEntry && len(req.Embedding) > 0 {
		return nil, fmt.Errorf("supply entry_id or embedding, not both: %w", apperrors.ErrInvalidArgument)
	}

	var (
		embedding []float64
		row       calib.Row
		excludeID uuid.UUID
	)
	if hasEntry {
		entry, err := s.entryRepo.GetByID(ctx, nil, *req.EntryID)
		if err != nil {
			return nil, err
		}
		if entry.UserID != userID {
			return nil, apperrors.ErrNotFound
		}
		excludeID = entry.ID
		embedding = entry.EmbeddingVector()
		row, err = s.loadQueryRow(ctx, entry.ID)
		if err != nil {
			return nil, err
		}
	} else {
		embedding = req.Embedding
		if s.embeddingDim > 0 && len(embedding) != s.embeddingDim {
			return nil, fmt.Errorf("query embedding has %d dims, configured dim is %d: %w",
				len(embedding), s.embeddingDim, apperrors.ErrDimensionMismatch)
		}
		// Cold query: only the bias predictor is known.
		row = calib.Row{}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultRetrievalLimit
	}
	withinDays := req.WithinDays
	if withinDays <= 0 {
		withinDays = DefaultRetrievalWithinDays
	}

	var hits []graph.RetrievalHit
	if len(embedding) > 0 {
		var err error
		hits, err = graph.QuerySimilarEntries(ctx, s.graphClient, s.log, graph.SimilarEntriesQuery{
			UserID:         userID,
			Embedding:      embedding,
			ExpectedDim:    s.embeddingDim,
			ExcludeEntryID: excludeID,
			Limit:          limit,
			WithinDays:     withinDays,
		})
		if err != nil {
			return nil, err
		}
	}
	retrieved := summarizeRetrieval(hits)

	model, err := s.modelRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load calibration model: %w", err)
	}
	modelEst := modelEstimate(model, row)

	mean, sd, alpha := blendEstimates(modelEst, retrieved, s.varCap)

	return &Prediction{
		Mean:      mean,
		SD:        sd,
		Alpha:     alpha,
		Model:     modelEst,
		Retrieved: retrieved,
		Episodes:  hits,
	}, nil
}

func (s *predictService) loadQueryRow(ctx context.Context, entryID uuid.UUID) (calib.Row, error) {
	var row calib.Row

	contexts, err := s.contextRepo.GetByEntryIDs(ctx, nil, []uuid.UUID{entryID})
	if err != nil {
		return row, fmt.Errorf("load context point: %w", err)
	}
	if len(contexts) > 0 {
		c := contexts[0]
		row.SleepHours = c.SleepHours
		row.SleepQuality = c.SleepQuality
		row.EnergyLevel = c.EnergyLevel
		row.MedicationTaken = c.MedicationTaken
	}

	affects, err := s.affectRepo.GetByEntryIDs(ctx, nil, []uuid.UUID{entryID})
	if err != nil {
		return row, fmt.Errorf("load affect point: %w", err)
	}
	if len(affects) > 0 {
		v, ar := affects[0].Valence, affects[0].Arousal
		row.AffectValence = &v
		row.AffectArousal = &ar
	}

	mentions, err := s.mentionRepo.GetByEntryIDs(ctx, nil, []uuid.UUID{entryID})
	if err != nil {
		return row, fmt.Errorf("load feature mentions: %w", err)
	}
	if len(mentions) > 0 {
		ids := make([]uuid.UUID, 0, len(mentions))
		for _, m := range mentions {
			ids = append(ids, m.FeatureID)
		}
		features, err := s.featureRepo.GetByIDs(ctx, nil, ids)
		if err != nil {
			return row, fmt.Errorf("load features: %w", err)
		}
		for _, f := range features {
			row.FeatureKeys = append(row.FeatureKeys, f.Key)
		}
	}
	return row, nil
}

// modelEstimate evaluates the stored ridge model on a query row. The row is
// vectorized against the model's own vocabulary, so unknown mentioned
// features contribute nothing. Variance is the diagonal approximation:
// residual variance plus per-weight uncertainty scaled by the input.
func modelEstimate(model *types.CalibrationModel, row calib.Row) *ModelEstimate {
	if model == nil {
		return nil
	}
	keys := model.KeyList()
	weights := model.WeightVector()
	weightVars := model.WeightVarVector()
	if len(keys) < calib.BasePredictorCount || len(keys) != len(weights) || len(keys) != len(weightVars) {
		return nil
	}
	vocab := keys[calib.BasePredictorCount:]

	x := calib.Vectorize(row, vocab)
	var mu, variance float64
	variance = model.ResidualSD * model.ResidualSD
	for i, xi := range x {
		mu += weights[i] * xi
		variance += xi * xi * weightVars[i]
	}
	return &ModelEstimate{
		Mean:      mu,
		SD:        math.Sqrt(variance),
		TrainingN: model.TrainingN,
	}
}

// summarizeRetrieval collapses labeled hits into a similarity-weighted
// estimate with weights max(0, sim). No labeled support, or a non-positive
// weight sum, means retrieval has nothing to say: nil, never neutral.
func summarizeRetrieval(hits []graph.RetrievalHit) *RetrievedEstimate {
	var wsum, mean float64
	var supportN int
	for _, h := range hits {
		if h.Mood == nil {
			continue
		}
		w := h.Similarity
		if w <= 0 {
			continue
		}
		supportN++
		wsum += w
		mean += w * *h.Mood
	}
	if supportN == 0 || wsum <= 0 {
		return nil
	}
	mean /= wsum

	var variance float64
	for _, h := range hits {
		if h.Mood == nil || h.Similarity <= 0 {
			continue
		}
		d := *h.Mood - mean
		variance += h.Similarity * d * d
	}
	variance /= wsum

	return &RetrievedEstimate{
		Mean:     mean,
		SD:       math.Sqrt(variance),
		SupportN: supportN,
	}
}

// blendEstimates combines the model and retrieval sides. A missing side is
// substituted by the other so the blend degenerates cleanly; with neither,
// the neutral prior answers. Disagreement inflates variance, capped so one
// wild side cannot blow the interval up without bound.
func blendEstimates(model *ModelEstimate, retrieved *RetrievedEstimate, varCap float64) (mean, sd, alpha float64) {
	if model == nil && retrieved == nil {
		return NeutralMean, NeutralSD, 0
	}

	var muM, varM, muR, varR float64
	supportN := 0
	if retrieved != nil {
		muR = retrieved.Mean
		varR = retrieved.SD * retrieved.SD
		supportN = retrieved.SupportN
	}
	if model != nil {
		muM = model.Mean
		varM = model.SD * model.SD
	} else {
		muM = muR
		varM = varR
	}
	if retrieved == nil {
		muR = muM
		varR = varM
	}

	alpha = 0.8 - 0.05*float64(supportN)
	if alpha < 0.25 {
		alpha = 0.25
	}
	if alpha > 0.75 {
		alpha = 0.75
	}

	mean = alpha*muM + (1-alpha)*muR

	disagreement := disagreementVarWeight * (muM - muR) * (muM - muR)
	if disagreement > varCap {
		disagreement = varCap
	}
	variance := alpha*alpha*varM + (1-alpha)*(1-alpha)*varR + disagreement
	return mean, math.Sqrt(variance), alpha
}
