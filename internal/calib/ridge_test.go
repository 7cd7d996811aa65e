package calib

import (
	"math"
	"testing"
)

func TestSolveLinearSystemIdentity(t *testing.T) {
	a := [][]float64{{1, 0}, {0, 1}}
	b := []float64{3, -2}
	w := SolveLinearSystem(a, b)
	if math.Abs(w[0]-3) > 1e-9 || math.Abs(w[1]+2) > 1e-9 {
		t.Fatalf("got %v", w)
	}
}

func TestSolveLinearSystemNeedsPivoting(t *testing.T) {
	// Leading zero forces a row swap.
	a := [][]float64{{0, 2}, {3, 1}}
	b := []float64{4, 5}
	w := SolveLinearSystem(a, b)
	if math.Abs(w[0]-1) > 1e-9 || math.Abs(w[1]-2) > 1e-9 {
		t.Fatalf("got %v", w)
	}
}

func TestSolveSingularReturnsZeroVector(t *testing.T) {
	a := [][]float64{{1, 2}, {2, 4}}
	b := []float64{1, 2}
	w := SolveLinearSystem(a, b)
	if len(w) != 2 {
		t.Fatalf("wrong dimension: %v", w)
	}
	for i, v := range w {
		if v != 0 {
			t.Fatalf("singular system must yield zeros, got w[%d]=%v", i, v)
		}
	}
}

func TestFitRidgeRecoversLine(t *testing.T) {
	// y = 2 + 3x, tiny lambda.
	var x [][]float64
	var y []float64
	for i := 0; i < 10; i++ {
		xi := float64(i)
		x = append(x, []float64{1, xi})
		y = append(y, 2+3*xi)
	}
	fit := FitRidge(x, y, 1e-9)
	if math.Abs(fit.Weights[0]-2) > 1e-4 || math.Abs(fit.Weights[1]-3) > 1e-4 {
		t.Fatalf("weights: %v", fit.Weights)
	}
	if fit.ResidualSD > 1e-4 {
		t.Fatalf("residual sd should be ~0, got %v", fit.ResidualSD)
	}
}

func TestFitRidgeSingularDesign(t *testing.T) {
	// Duplicate columns with lambda 0 make the normal equations singular.
	x := [][]float64{{1, 1}, {2, 2}, {3, 3}}
	y := []float64{1, 2, 3}
	fit := FitRidge(x, y, 0)
	if len(fit.Weights) != 2 {
		t.Fatalf("wrong dimension: %v", fit.Weights)
	}
	for _, w := range fit.Weights {
		if w != 0 {
			t.Fatalf("singular fit must yield zero weights, got %v", fit.Weights)
		}
	}
}

func TestFitRidgeShrinksWithLambda(t *testing.T) {
	x := [][]float64{{1, 0}, {1, 1}, {1, 2}, {1, 3}}
	y := []float64{0, 1, 2, 3}
	small := FitRidge(x, y, 1e-6)
	big := FitRidge(x, y, 100)
	if math.Abs(big.Weights[1]) >= math.Abs(small.Weights[1]) {
		t.Fatalf("lambda should shrink slope: small=%v big=%v", small.Weights, big.Weights)
	}
}

func TestVectorizeDefaultsAndScaling(t *testing.T) {
	v := Vectorize(Row{}, nil)
	if len(v) != BasePredictorCount {
		t.Fatalf("base vector length: %d", len(v))
	}
	if v[0] != 1 {
		t.Fatal("bias must be 1")
	}
	for i := 1; i < BasePredictorCount; i++ {
		if v[i] != 0 {
			t.Fatalf("missing inputs must scale to 0, got v[%d]=%v", i, v[i])
		}
	}

	hours := 18.0
	quality := 7
	energy := 4
	med := true
	v = Vectorize(Row{SleepHours: &hours, SleepQuality: &quality, EnergyLevel: &energy, MedicationTaken: &med}, nil)
	if v[3] != 1 {
		t.Fatalf("sleep hours must clamp to 1, got %v", v[3])
	}
	if math.Abs(v[4]-0.7) > 1e-9 || math.Abs(v[5]-0.4) > 1e-9 {
		t.Fatalf("quality/energy scaling: %v %v", v[4], v[5])
	}
	if v[6] != 1 {
		t.Fatal("medication indicator")
	}
}

func TestVectorizeIndicators(t *testing.T) {
	vocab := []string{"theme:work", "symptom:insomnia"}
	v := Vectorize(Row{FeatureKeys: []string{"symptom:insomnia", "theme:unknown"}}, vocab)
	if len(v) != BasePredictorCount+2 {
		t.Fatalf("length: %d", len(v))
	}
	if v[BasePredictorCount] != 0 || v[BasePredictorCount+1] != 1 {
		t.Fatalf("indicators: %v", v[BasePredictorCount:])
	}
}
