package mood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AffectPoint is AI-derived affect for an entry. Model output, distinguished
// from SelfReportLabel; never used as a training label.
type AffectPoint struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EntryID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"entry_id"`
	Entry        *MoodEntry `gorm:"constraint:OnDelete:CASCADE;foreignKey:EntryID;references:ID" json:"entry,omitempty"`
	Valence      float64    `gorm:"column:valence;not null" json:"valence"`
	Arousal      float64    `gorm:"column:arousal;not null" json:"arousal"`
	PHQ9Estimate *float64   `gorm:"column:phq9_estimate" json:"phq9_estimate,omitempty"`
	GAD7Estimate *float64   `gorm:"column:gad7_estimate" json:"gad7_estimate,omitempty"`
	MoodZ        *float64   `gorm:"column:mood_z" json:"mood_z,omitempty"`
	AnxietyZ     *float64   `gorm:"column:anxiety_z" json:"anxiety_z,omitempty"`
	ModelVersion string     `gorm:"column:model_version" json:"model_version"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (AffectPoint) TableName() string { return "affect_point" }
