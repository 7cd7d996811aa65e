package baseline

import (
	"math"
	"testing"
	"time"
)

func day(n int) time.Time {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, n)
}

func TestTrendSlopePositive(t *testing.T) {
	slope, ok := TrendSlope([]TrendPoint{{day(0), 1}, {day(1), 2}, {day(2), 3}})
	if !ok || math.Abs(slope-1) > 1e-9 {
		t.Fatalf("got slope=%v ok=%v want 1", slope, ok)
	}
}

func TestTrendSlopeNegative(t *testing.T) {
	slope, ok := TrendSlope([]TrendPoint{{day(0), 10}, {day(1), 8}, {day(2), 6}})
	if !ok || math.Abs(slope+2) > 1e-9 {
		t.Fatalf("got slope=%v ok=%v want -2", slope, ok)
	}
}

func TestTrendSlopeUndefined(t *testing.T) {
	if _, ok := TrendSlope([]TrendPoint{{day(0), 5}}); ok {
		t.Fatal("single point must have no slope")
	}
	if _, ok := TrendSlope(nil); ok {
		t.Fatal("empty input must have no slope")
	}
	if _, ok := TrendSlope([]TrendPoint{{day(0), 5}, {day(0), 7}}); ok {
		t.Fatal("identical timestamps must have no slope")
	}
}
