package baseline

import "math"

// Scale maps z-scores onto a bounded clinical-style integer range through a
// logistic transform. Display only; never a training input.
type Scale struct {
	Name      string
	Slope     float64
	Intercept float64
	Min       int
	Max       int
}

var (
	PHQ9 = Scale{Name: "phq9", Slope: 1.1, Intercept: -0.25, Min: 0, Max: 27}
	GAD7 = Scale{Name: "gad7", Slope: 0.95, Intercept: -0.4, Min: 0, Max: 21}
)

func (s Scale) FromZ(z float64) int {
	frac := 1.0 / (1.0 + math.Exp(-(s.Slope*z + s.Intercept)))
	raw := float64(s.Min) + frac*float64(s.Max-s.Min)
	score := int(math.Round(raw))
	if score < s.Min {
		score = s.Min
	}
	if score > s.Max {
		score = s.Max
	}
	return score
}

// SeverityBand labels a score; lower boundary values belong to the band they
// open.
func (s Scale) SeverityBand(score int) string {
	switch s.Name {
	case "gad7":
		switch {
		case score < 5:
			return "minimal"
		case score < 10:
			return "mild"
		case score < 15:
			return "moderate"
		default:
			return "severe"
		}
	default: // phq9
		switch {
		case score < 5:
			return "minimal"
		case score < 10:
			return "mild"
		case score < 15:
			return "moderate"
		case score < 20:
			return "moderately severe"
		default:
			return "severe"
		}
	}
}

// ReliableChangeThreshold is the minimum score delta treated as real change.
func (s Scale) ReliableChangeThreshold() int {
	if s.Name == "gad7" {
		return 4
	}
	return 6
}

// ReliableChange classifies a previous/current score pair. A delta exactly at
// the threshold counts as changed.
func (s Scale) ReliableChange(prev, cur int) string {
	delta := cur - prev
	thr := s.ReliableChangeThreshold()
	switch {
	case delta <= -thr:
		return "improved"
	case delta >= thr:
		return "worsened"
	default:
		return "stable"
	}
}
