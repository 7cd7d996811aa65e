package mood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeatureMention links an entry to a feature the extractor saw in it.
type FeatureMention struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EntryID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_mention_entry_feature,unique" json:"entry_id"`
	Entry            *MoodEntry `gorm:"constraint:OnDelete:CASCADE;foreignKey:EntryID;references:ID" json:"entry,omitempty"`
	FeatureID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_mention_entry_feature,unique" json:"feature_id"`
	Feature          *Feature   `gorm:"constraint:OnDelete:CASCADE;foreignKey:FeatureID;references:ID" json:"feature,omitempty"`
	Confidence       float64    `gorm:"column:confidence;not null;default:0" json:"confidence"`
	ExtractorVersion string     `gorm:"column:extractor_version" json:"extractor_version"`
	MentionedAt      time.Time  `gorm:"column:mentioned_at;not null" json:"mentioned_at"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (FeatureMention) TableName() string { return "feature_mention" }
