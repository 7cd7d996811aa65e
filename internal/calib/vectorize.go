package calib

// BasePredictorKeys are the fixed leading predictors of every calibration
// model, in stored order.
var BasePredictorKeys = []string{
	"bias",
	"affect_valence",
	"affect_arousal",
	"sleep_hours",
	"sleep_quality",
	"energy_level",
	"medication_taken",
}

// BasePredictorCount is the number of fixed base predictors ahead of the
// per-user feature vocabulary.
const BasePredictorCount = 7

// Row is one training or query observation. Nil fields are absent and scale
// to zero; FeatureKeys are canonical feature ids mentioned by the entry.
type Row struct {
	AffectValence   *float64
	AffectArousal   *float64
	SleepHours      *float64
	SleepQuality    *int
	EnergyLevel     *int
	MedicationTaken *bool
	FeatureKeys     []string
	Mood            float64
}

// Vectorize maps a row onto the fixed base vector plus one 0/1 indicator per
// vocabulary key. Unknown mentioned features are ignored.
func Vectorize(row Row, vocab []string) []float64 {
	out := make([]float64, BasePredictorCount+len(vocab))
	out[0] = 1
	if row.AffectValence != nil {
		out[1] = *row.AffectValence
	}
	if row.AffectArousal != nil {
		out[2] = *row.AffectArousal
	}
	if row.SleepHours != nil {
		out[3] = clamp01(*row.SleepHours / 12)
	}
	if row.SleepQuality != nil {
		out[4] = clamp01(float64(*row.SleepQuality) / 10)
	}
	if row.EnergyLevel != nil {
		out[5] = clamp01(float64(*row.EnergyLevel) / 10)
	}
	if row.MedicationTaken != nil && *row.MedicationTaken {
		out[6] = 1
	}

	if len(vocab) > 0 && len(row.FeatureKeys) > 0 {
		mentioned := make(map[string]struct{}, len(row.FeatureKeys))
		for _, k := range row.FeatureKeys {
			mentioned[k] = struct{}{}
		}
		for i, key := range vocab {
			if _, ok := mentioned[key]; ok {
				out[BasePredictorCount+i] = 1
			}
		}
	}
	return out
}

// BuildDesign vectorizes rows into a design matrix and target vector.
func BuildDesign(rows []Row, vocab []string) ([][]float64, []float64) {
	x := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, row := range rows {
		x[i] = Vectorize(row, vocab)
		y[i] = row.Mood
	}
	return x, y
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
