package baseline

import (
	"math"
	"testing"
	"time"
)

func TestUpdateColdStart(t *testing.T) {
	now := time.Now().UTC()
	s := Update(nil, 6, now, DefaultHalfLifeDays)
	if s.Mean != 6 || s.SD != 0 || s.Count != 1 {
		t.Fatalf("cold start: got %+v", s)
	}
}

func TestUpdateDecaysTowardNewValue(t *testing.T) {
	now := time.Now().UTC()
	s := Update(nil, 4, now, DefaultHalfLifeDays)
	s = Update(&s, 8, now.Add(45*24*time.Hour), DefaultHalfLifeDays)
	// One half-life elapsed: equal weight on old mean and new value.
	if math.Abs(s.Mean-6) > 1e-9 {
		t.Fatalf("mean after one half-life: got %v want 6", s.Mean)
	}
	if s.Count != 2 {
		t.Fatalf("count: got %d", s.Count)
	}
	if s.SD <= 0 {
		t.Fatalf("sd should grow with spread, got %v", s.SD)
	}
}

func TestUpdateIgnoresNonFinite(t *testing.T) {
	now := time.Now().UTC()
	s := Update(nil, 5, now, DefaultHalfLifeDays)
	s2 := Update(&s, math.NaN(), now.Add(time.Hour), DefaultHalfLifeDays)
	if s2 != s {
		t.Fatalf("NaN should leave stats unchanged: %+v vs %+v", s2, s)
	}
}

func TestZScoreColdStart(t *testing.T) {
	if z := ZScore(Stats{Mean: 5, SD: 1, Count: 1}, 9); z != 0 {
		t.Fatalf("count<2 must yield 0, got %v", z)
	}
}

func TestZScoreAtMeanIsZero(t *testing.T) {
	if z := ZScore(Stats{Mean: 5, SD: 2, Count: 10}, 5); z != 0 {
		t.Fatalf("value at mean must yield 0, got %v", z)
	}
}

func TestZScoreClamped(t *testing.T) {
	s := Stats{Mean: 5, SD: 0.01, Count: 10}
	for _, v := range []float64{1000, -1000, 50, -50} {
		z := ZScore(s, v)
		if math.Abs(z) > ZClamp {
			t.Fatalf("|z| exceeded clamp for value %v: %v", v, z)
		}
	}
}

func TestZScoreUsesStdFloor(t *testing.T) {
	s := Stats{Mean: 5, SD: 0, Count: 10}
	z := ZScore(s, 5+StdFloor)
	if math.Abs(z-1) > 1e-9 {
		t.Fatalf("std floor: got %v want 1", z)
	}
}

func TestZScoreNonFinite(t *testing.T) {
	s := Stats{Mean: 5, SD: 1, Count: 10}
	if z := ZScore(s, math.Inf(1)); z != 0 {
		t.Fatalf("non-finite input must yield 0, got %v", z)
	}
}

func TestPercentile(t *testing.T) {
	if p := Percentile(0); math.Abs(p-0.5) > 1e-9 {
		t.Fatalf("percentile(0): got %v", p)
	}
	if p := Percentile(3); p <= 0.99 {
		t.Fatalf("percentile(3): got %v", p)
	}
	if p := Percentile(-3); p >= 0.01 {
		t.Fatalf("percentile(-3): got %v", p)
	}
}
