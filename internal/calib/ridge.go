package calib

import "math"

// FitResult is a fitted ridge model: weights in predictor order plus the
// residual standard deviation of the fit.
type FitResult struct {
	Weights    []float64
	ResidualSD float64
}

// FitRidge solves the normal equations (XᵀX + λI) w = Xᵀy. A singular system
// yields all-zero weights rather than an error so a temporarily degenerate
// feature set cannot break training.
func FitRidge(x [][]float64, y []float64, lambda float64) FitResult {
	if len(x) == 0 || len(x[0]) == 0 {
		return FitResult{Weights: []float64{}}
	}
	p := len(x[0])

	xtx := make([][]float64, p)
	for i := range xtx {
		xtx[i] = make([]float64, p)
	}
	xty := make([]float64, p)
	for r := range x {
		for i := 0; i < p; i++ {
			xi := x[r][i]
			if xi == 0 {
				continue
			}
			xty[i] += xi * y[r]
			for j := 0; j < p; j++ {
				xtx[i][j] += xi * x[r][j]
			}
		}
	}
	for i := 0; i < p; i++ {
		xtx[i][i] += lambda
	}

	weights := SolveLinearSystem(xtx, xty)

	var ssr float64
	for r := range x {
		var pred float64
		for i := 0; i < p; i++ {
			pred += weights[i] * x[r][i]
		}
		resid := y[r] - pred
		ssr += resid * resid
	}
	n := len(x)
	var residSD float64
	if n < 2 {
		residSD = math.Sqrt(ssr / float64(maxInt(n, 1)))
	} else {
		residSD = math.Sqrt(ssr / float64(n-1))
	}

	return FitResult{Weights: weights, ResidualSD: residSD}
}

// SolveLinearSystem solves A w = b by Gauss-Jordan elimination with partial
// pivoting. An exactly-zero pivot (singular system) returns the zero vector.
func SolveLinearSystem(a [][]float64, b []float64) []float64 {
	n := len(b)
	out := make([]float64, n)
	if n == 0 || len(a) != n {
		return out
	}

	aug := make([][]float64, n)
	for i := 0; i < n; i++ {
		aug[i] = make([]float64, n+1)
		copy(aug[i], a[i])
		aug[i][n] = b[i]
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[pivot][col]) {
				pivot = r
			}
		}
		if aug[pivot][col] == 0 {
			return make([]float64, n)
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		inv := 1.0 / aug[col][col]
		for c := col; c <= n; c++ {
			aug[col][c] *= inv
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			if factor == 0 {
				continue
			}
			for c := col; c <= n; c++ {
				aug[r][c] -= factor * aug[col][c]
			}
		}
	}

	for i := 0; i < n; i++ {
		out[i] = aug[i][n]
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
