package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/moodtrace-backend/internal/calib"
	"github.com/yungbote/moodtrace-backend/internal/data/graph"
	types "github.com/yungbote/moodtrace-backend/internal/domain"
	apperrors "github.com/yungbote/moodtrace-backend/internal/pkg/errors"
)

func floatPtr(v float64) *float64 { return &v }

func TestPredictRejectsBothEntryAndEmbedding(t *testing.T) {
	svc := &predictService{}
	entryID := uuid.New()

	_, err := svc.Predict(context.Background(), uuid.New(), PredictRequest{
		EntryID:   &entryID,
		Embedding: []float64{0.1, 0.2},
	})
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}

func TestPredictRequiresAnInput(t *testing.T) {
	svc := &predictService{}

	_, err := svc.Predict(context.Background(), uuid.New(), PredictRequest{})
	if !errors.Is(err, apperrors.ErrMissingInputs) {
		t.Fatalf("want ErrMissingInputs, got %v", err)
	}
}

func TestSummarizeRetrievalWeightedStats(t *testing.T) {
	hits := []graph.RetrievalHit{
		{Similarity: 0.9, Mood: floatPtr(8)},
		{Similarity: 0.3, Mood: floatPtr(4)},
		{Similarity: 0.5, Mood: nil},          // unlabeled, must not count
		{Similarity: -0.2, Mood: floatPtr(2)}, // negative weight clipped
	}
	got := summarizeRetrieval(hits)
	if got == nil {
		t.Fatal("expected an estimate")
	}
	if got.SupportN != 2 {
		t.Fatalf("supportN = %d, want 2", got.SupportN)
	}
	wantMean := (0.9*8 + 0.3*4) / 1.2
	if math.Abs(got.Mean-wantMean) > 1e-9 {
		t.Fatalf("mean = %v, want %v", got.Mean, wantMean)
	}
	wantVar := (0.9*(8-wantMean)*(8-wantMean) + 0.3*(4-wantMean)*(4-wantMean)) / 1.2
	if math.Abs(got.SD-math.Sqrt(wantVar)) > 1e-9 {
		t.Fatalf("sd = %v, want %v", got.SD, math.Sqrt(wantVar))
	}
}

func TestSummarizeRetrievalNoSupport(t *testing.T) {
	if got := summarizeRetrieval(nil); got != nil {
		t.Fatalf("no hits must give nil, got %+v", got)
	}
	unlabeled := []graph.RetrievalHit{{Similarity: 0.8}, {Similarity: 0.7}}
	if got := summarizeRetrieval(unlabeled); got != nil {
		t.Fatalf("unlabeled hits must give nil, got %+v", got)
	}
	clipped := []graph.RetrievalHit{{Similarity: -0.5, Mood: floatPtr(6)}}
	if got := summarizeRetrieval(clipped); got != nil {
		t.Fatalf("all-negative similarity must give nil, got %+v", got)
	}
}

func TestBlendDegeneratesToModelOnly(t *testing.T) {
	model := &ModelEstimate{Mean: 6.5, SD: 1.0, TrainingN: 20}
	mean, _, _ := blendEstimates(model, nil, DefaultDisagreementVarCap)
	if math.Abs(mean-6.5) > 1e-9 {
		t.Fatalf("mean = %v, want the model mean 6.5", mean)
	}
}

func TestBlendDegeneratesToRetrievalOnly(t *testing.T) {
	retrieved := &RetrievedEstimate{Mean: 3.2, SD: 0.8, SupportN: 4}
	mean, _, _ := blendEstimates(nil, retrieved, DefaultDisagreementVarCap)
	if math.Abs(mean-3.2) > 1e-9 {
		t.Fatalf("mean = %v, want the retrieval mean 3.2", mean)
	}
}

func TestBlendNeutralFallback(t *testing.T) {
	mean, sd, _ := blendEstimates(nil, nil, DefaultDisagreementVarCap)
	if mean != NeutralMean || sd != NeutralSD {
		t.Fatalf("neutral fallback = (%v, %v), want (%v, %v)", mean, sd, NeutralMean, NeutralSD)
	}
}

func TestBlendAlphaClamp(t *testing.T) {
	model := &ModelEstimate{Mean: 5, SD: 1}

	// Zero support: alpha hits the upper clamp.
	_, _, alpha := blendEstimates(model, &RetrievedEstimate{Mean: 5, SD: 1, SupportN: 0}, DefaultDisagreementVarCap)
	if math.Abs(alpha-0.75) > 1e-9 {
		t.Fatalf("alpha = %v, want 0.75", alpha)
	}

	// Heavy support: alpha hits the lower clamp.
	_, _, alpha = blendEstimates(model, &RetrievedEstimate{Mean: 5, SD: 1, SupportN: 50}, DefaultDisagreementVarCap)
	if math.Abs(alpha-0.25) > 1e-9 {
		t.Fatalf("alpha = %v, want 0.25", alpha)
	}

	// In range: 0.8 - 0.05*4 = 0.6.
	_, _, alpha = blendEstimates(model, &RetrievedEstimate{Mean: 5, SD: 1, SupportN: 4}, DefaultDisagreementVarCap)
	if math.Abs(alpha-0.6) > 1e-9 {
		t.Fatalf("alpha = %v, want 0.6", alpha)
	}
}

func TestBlendDisagreementCapped(t *testing.T) {
	model := &ModelEstimate{Mean: 10, SD: 0.1}
	retrieved := &RetrievedEstimate{Mean: 1, SD: 0.1, SupportN: 4}

	// Uncapped disagreement would be 0.25*81 = 20.25; the cap holds it at 4.
	_, sd, alpha := blendEstimates(model, retrieved, DefaultDisagreementVarCap)
	wantVar := alpha*alpha*0.01 + (1-alpha)*(1-alpha)*0.01 + DefaultDisagreementVarCap
	if math.Abs(sd-math.Sqrt(wantVar)) > 1e-9 {
		t.Fatalf("sd = %v, want %v", sd, math.Sqrt(wantVar))
	}
}

func TestModelEstimateIgnoresUnknownFeatures(t *testing.T) {
	m := &types.CalibrationModel{ResidualSD: 0.5, TrainingN: 15, TrainedAt: time.Now()}
	keys := append(append([]string{}, calib.BasePredictorKeys...), "theme:work")
	weights := []float64{5, 0, 0, 0, 0, 0, 0, -2}
	vars := make([]float64, len(weights))
	vars[7] = 0.04
	if err := m.SetVectors(keys, weights, vars); err != nil {
		t.Fatalf("SetVectors: %v", err)
	}

	// Known feature mentioned: weight applies.
	est := modelEstimate(m, calib.Row{FeatureKeys: []string{"theme:work", "theme:never_seen"}})
	if est == nil {
		t.Fatal("expected an estimate")
	}
	if math.Abs(est.Mean-3) > 1e-9 {
		t.Fatalf("mean = %v, want 3 (bias 5 + work -2)", est.Mean)
	}
	wantVar := 0.25 + 0.04
	if math.Abs(est.SD-math.Sqrt(wantVar)) > 1e-9 {
		t.Fatalf("sd = %v, want %v", est.SD, math.Sqrt(wantVar))
	}

	// Unknown features only: just the bias.
	est = modelEstimate(m, calib.Row{FeatureKeys: []string{"theme:never_seen"}})
	if math.Abs(est.Mean-5) > 1e-9 {
		t.Fatalf("mean = %v, want 5", est.Mean)
	}
}

func TestModelEstimateNilModel(t *testing.T) {
	if got := modelEstimate(nil, calib.Row{}); got != nil {
		t.Fatalf("nil model must give nil estimate, got %+v", got)
	}
}
