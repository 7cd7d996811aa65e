package calib

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultBootstrapSamples is the default resample count B.
const DefaultBootstrapSamples = 100

// BootstrapWeightVariance estimates per-coefficient variance by refitting the
// ridge on rows resampled with replacement. Samples are independent and run
// in parallel; each writes only its own slot. The result is the ddof=1 sample
// variance per coefficient, a diagonal approximation with no
// cross-covariance.
func BootstrapWeightVariance(ctx context.Context, x [][]float64, y []float64, lambda float64, samples int, seed int64) []float64 {
	if len(x) == 0 || len(x[0]) == 0 {
		return []float64{}
	}
	p := len(x[0])
	if samples < 2 {
		return make([]float64, p)
	}

	fits := make([][]float64, samples)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for b := 0; b < samples; b++ {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			rng := rand.New(rand.NewSource(seed + int64(b)))
			n := len(x)
			xs := make([][]float64, n)
			ys := make([]float64, n)
			for i := 0; i < n; i++ {
				idx := rng.Intn(n)
				xs[i] = x[idx]
				ys[i] = y[idx]
			}
			fits[b] = FitRidge(xs, ys, lambda).Weights
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return make([]float64, p)
	}

	vars := make([]float64, p)
	for i := 0; i < p; i++ {
		var sum float64
		for b := 0; b < samples; b++ {
			sum += fits[b][i]
		}
		mean := sum / float64(samples)
		var ss float64
		for b := 0; b < samples; b++ {
			d := fits[b][i] - mean
			ss += d * d
		}
		vars[i] = ss / float64(samples-1)
	}
	return vars
}
