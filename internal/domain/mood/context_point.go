package mood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContextPoint holds optional structured context for an entry. Missing values
// stay nil and default to neutral/zero when vectorized.
type ContextPoint struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EntryID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"entry_id"`
	Entry           *MoodEntry `gorm:"constraint:OnDelete:CASCADE;foreignKey:EntryID;references:ID" json:"entry,omitempty"`
	SleepHours      *float64   `gorm:"column:sleep_hours" json:"sleep_hours,omitempty"`
	SleepQuality    *int       `gorm:"column:sleep_quality" json:"sleep_quality,omitempty"`
	MedicationTaken *bool      `gorm:"column:medication_taken" json:"medication_taken,omitempty"`
	EnergyLevel     *int       `gorm:"column:energy_level" json:"energy_level,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ContextPoint) TableName() string { return "context_point" }
