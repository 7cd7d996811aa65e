package baseline

import (
	"math"
	"time"
)

const (
	// DefaultHalfLifeDays controls how fast old observations stop counting.
	DefaultHalfLifeDays = 45.0
	// StdFloor keeps z-scores bounded when a baseline is nearly flat.
	StdFloor = 0.75
	// ZClamp bounds z-scores symmetrically.
	ZClamp = 5.0
	// MinEntriesForZ is the caller-side gate before a z-score is trusted.
	MinEntriesForZ = 5
)

// Stats is the decayed running state for one (user, metric) baseline.
type Stats struct {
	Mean          float64
	SD            float64
	Count         int
	LastUpdatedAt time.Time
}

// Update folds a new observation into the decayed baseline. With no prior
// state the new value gets full weight. The variance update uses the
// numerically stable cross-term form.
func Update(prev *Stats, value float64, now time.Time, halfLifeDays float64) Stats {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		if prev != nil {
			return *prev
		}
		return Stats{LastUpdatedAt: now}
	}
	if halfLifeDays <= 0 {
		halfLifeDays = DefaultHalfLifeDays
	}
	if prev == nil || prev.Count == 0 {
		return Stats{Mean: value, SD: 0, Count: 1, LastUpdatedAt: now}
	}

	elapsedMs := float64(now.Sub(prev.LastUpdatedAt).Milliseconds())
	if elapsedMs < 0 {
		elapsedMs = 0
	}
	halfLifeMs := halfLifeDays * 24 * float64(time.Hour.Milliseconds())
	decay := math.Exp(-math.Ln2 * elapsedMs / halfLifeMs)

	mean := decay*prev.Mean + (1-decay)*value
	variance := prev.SD * prev.SD
	variance = decay*variance + (1-decay)*(value-prev.Mean)*(value-mean)

	return Stats{
		Mean:          mean,
		SD:            math.Sqrt(math.Max(0, variance)),
		Count:         prev.Count + 1,
		LastUpdatedAt: now,
	}
}

// ZScore standardizes value against the baseline. Cold starts (fewer than two
// observations) and non-finite inputs yield 0.
func ZScore(s Stats, value float64) float64 {
	if s.Count < 2 {
		return 0
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	z := (value - s.Mean) / math.Max(s.SD, StdFloor)
	if z > ZClamp {
		return ZClamp
	}
	if z < -ZClamp {
		return -ZClamp
	}
	return z
}

// Percentile maps a z-score to [0, 1] via the normal CDF.
func Percentile(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}
