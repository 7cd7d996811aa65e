package mood

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/moodtrace-backend/internal/domain/user"
)

// CalibrationModel is the single latest per-user ridge model. Replaced
// wholesale on each retrain; no versioned history is kept. PredictorKeys,
// Weights and WeightVars must stay the same length, with the 7 base
// predictors first followed by the selected feature vocabulary in order.
type CalibrationModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User       *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Version    string     `gorm:"column:version;not null" json:"version"`
	Lambda     float64    `gorm:"column:lambda;not null" json:"lambda"`
	ResidualSD float64    `gorm:"column:residual_sd;not null" json:"residual_sd"`

	PredictorKeys datatypes.JSON `gorm:"type:jsonb;column:predictor_keys;not null" json:"predictor_keys"`
	Weights       datatypes.JSON `gorm:"type:jsonb;column:weights;not null" json:"weights"`
	WeightVars    datatypes.JSON `gorm:"type:jsonb;column:weight_vars;not null" json:"weight_vars"`

	TrainingN int       `gorm:"column:training_n;not null" json:"training_n"`
	TrainedAt time.Time `gorm:"column:trained_at;not null" json:"trained_at"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CalibrationModel) TableName() string { return "calibration_model" }

func (m *CalibrationModel) KeyList() []string {
	if m == nil || len(m.PredictorKeys) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(m.PredictorKeys, &out); err != nil {
		return nil
	}
	return out
}

func (m *CalibrationModel) WeightVector() []float64 {
	return decodeFloats(m.Weights)
}

func (m *CalibrationModel) WeightVarVector() []float64 {
	return decodeFloats(m.WeightVars)
}

// SetVectors stores keys, weights and per-weight variances, enforcing the
// equal-length invariant.
func (m *CalibrationModel) SetVectors(keys []string, weights, weightVars []float64) error {
	if len(keys) != len(weights) || len(weights) != len(weightVars) {
		return fmt.Errorf("calibration model vectors length mismatch: keys=%d weights=%d vars=%d",
			len(keys), len(weights), len(weightVars))
	}
	rawKeys, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	rawW, err := json.Marshal(weights)
	if err != nil {
		return err
	}
	rawV, err := json.Marshal(weightVars)
	if err != nil {
		return err
	}
	m.PredictorKeys = datatypes.JSON(rawKeys)
	m.Weights = datatypes.JSON(rawW)
	m.WeightVars = datatypes.JSON(rawV)
	return nil
}

func decodeFloats(raw datatypes.JSON) []float64 {
	if len(raw) == 0 {
		return nil
	}
	var out []float64
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
