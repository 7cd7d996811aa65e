package calib

import (
	"context"
	"testing"
)

func TestBootstrapVarianceNonNegative(t *testing.T) {
	var x [][]float64
	var y []float64
	for i := 0; i < 12; i++ {
		xi := float64(i)
		x = append(x, []float64{1, xi})
		y = append(y, 1+0.5*xi+float64(i%3))
	}
	vars := BootstrapWeightVariance(context.Background(), x, y, 0.5, 50, 1)
	if len(vars) != 2 {
		t.Fatalf("dimension: %v", vars)
	}
	for i, v := range vars {
		if v < 0 {
			t.Fatalf("variance must be non-negative, vars[%d]=%v", i, v)
		}
	}
}

func TestBootstrapVarianceZeroOnConstantRows(t *testing.T) {
	// Identical rows: every resample refits to the same weights.
	var x [][]float64
	var y []float64
	for i := 0; i < 10; i++ {
		x = append(x, []float64{1})
		y = append(y, 5)
	}
	vars := BootstrapWeightVariance(context.Background(), x, y, 0, 40, 7)
	if len(vars) != 1 || vars[0] != 0 {
		t.Fatalf("identical resamples must give exactly zero variance, got %v", vars)
	}
}

func TestBootstrapDeterministicForSeed(t *testing.T) {
	var x [][]float64
	var y []float64
	for i := 0; i < 15; i++ {
		xi := float64(i)
		x = append(x, []float64{1, xi})
		y = append(y, 2+xi+float64(i%4))
	}
	a := BootstrapWeightVariance(context.Background(), x, y, 1, 30, 42)
	b := BootstrapWeightVariance(context.Background(), x, y, 1, 30, 42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed must reproduce variances: %v vs %v", a, b)
		}
	}
}

func TestBootstrapTooFewSamples(t *testing.T) {
	x := [][]float64{{1}, {1}}
	y := []float64{1, 2}
	vars := BootstrapWeightVariance(context.Background(), x, y, 0, 1, 1)
	if len(vars) != 1 || vars[0] != 0 {
		t.Fatalf("B<2 must yield zero variances, got %v", vars)
	}
}
