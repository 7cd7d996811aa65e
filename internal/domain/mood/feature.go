package mood

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FeatureTypeTheme    = "theme"
	FeatureTypeSymptom  = "symptom"
	FeatureTypeStressor = "stressor"
)

// Feature is a deduplicated theme/symptom/stressor extracted from entries.
// Key is the canonical id `type:normalized_name`.
type Feature struct {
	ID   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Key  string    `gorm:"column:key;not null;uniqueIndex" json:"key"`
	Type string    `gorm:"column:type;not null;index" json:"type"`
	Name string    `gorm:"column:name;not null" json:"name"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Feature) TableName() string { return "feature" }

// NormalizeFeatureName lowercases, trims and collapses internal whitespace.
func NormalizeFeatureName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), " ")
}

func CanonicalFeatureKey(ftype, name string) string {
	return fmt.Sprintf("%s:%s", strings.ToLower(strings.TrimSpace(ftype)), NormalizeFeatureName(name))
}
