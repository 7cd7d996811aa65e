package mood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SelfReportLabel is the user's own mood rating for an entry. This is the
// only ground-truth training label in the system.
type SelfReportLabel struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EntryID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"entry_id"`
	Entry      *MoodEntry `gorm:"constraint:OnDelete:CASCADE;foreignKey:EntryID;references:ID" json:"entry,omitempty"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Mood       int        `gorm:"column:mood;not null" json:"mood"`
	Valence    *float64   `gorm:"column:valence" json:"valence,omitempty"`
	Arousal    *float64   `gorm:"column:arousal" json:"arousal,omitempty"`
	Confidence *float64   `gorm:"column:confidence" json:"confidence,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SelfReportLabel) TableName() string { return "self_report_label" }
