package baseline

import "time"

type TrendPoint struct {
	At    time.Time
	Value float64
}

// TrendSlope fits a least-squares line through (days, value) points and
// returns the slope per day. Fewer than two points, or points with no time
// spread, have no defined slope.
func TrendSlope(points []TrendPoint) (float64, bool) {
	if len(points) < 2 {
		return 0, false
	}
	t0 := points[0].At
	xs := make([]float64, len(points))
	var sumX, sumY float64
	for i, p := range points {
		xs[i] = p.At.Sub(t0).Hours() / 24
		sumX += xs[i]
		sumY += p.Value
	}
	n := float64(len(points))
	meanX := sumX / n
	meanY := sumY / n

	var num, den float64
	for i, p := range points {
		num += (xs[i] - meanX) * (p.Value - meanY)
		den += (xs[i] - meanX) * (xs[i] - meanX)
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}
