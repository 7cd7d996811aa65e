package calib

import (
	"math"
	"testing"
)

func TestVectorizeMissingFieldsScaleToZero(t *testing.T) {
	got := Vectorize(Row{}, nil)
	if len(got) != BasePredictorCount {
		t.Fatalf("length = %d, want %d", len(got), BasePredictorCount)
	}
	if got[0] != 1 {
		t.Fatalf("bias = %v, want 1", got[0])
	}
	for i := 1; i < BasePredictorCount; i++ {
		if got[i] != 0 {
			t.Fatalf("predictor %d = %v, want 0 for a missing field", i, got[i])
		}
	}
}

func TestVectorizeScaling(t *testing.T) {
	valence, arousal := 0.4, -0.2
	sleepH := 6.0
	sleepQ, energy := 8, 5
	med := true
	row := Row{
		AffectValence:   &valence,
		AffectArousal:   &arousal,
		SleepHours:      &sleepH,
		SleepQuality:    &sleepQ,
		EnergyLevel:     &energy,
		MedicationTaken: &med,
		FeatureKeys:     []string{"theme:work", "symptom:unknown_to_vocab"},
	}
	vocab := []string{"theme:work", "stressor:deadline"}

	got := Vectorize(row, vocab)
	want := []float64{1, 0.4, -0.2, 0.5, 0.8, 0.5, 1, 1, 0}
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("predictor %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestVectorizeClampsOutOfRange(t *testing.T) {
	sleepH := 20.0 // >12h clamps to 1
	sleepQ := 14   // >10 clamps to 1
	row := Row{SleepHours: &sleepH, SleepQuality: &sleepQ}
	got := Vectorize(row, nil)
	if got[3] != 1 || got[4] != 1 {
		t.Fatalf("clamped predictors = %v, %v, want 1, 1", got[3], got[4])
	}
}
