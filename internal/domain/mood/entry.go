package mood

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/moodtrace-backend/internal/domain/user"
)

// MoodEntry is a single journal observation. Immutable after creation except
// for re-embedding. RawText is never serialized outward.
type MoodEntry struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_entry_user_occurred" json:"user_id"`
	User       *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	OccurredAt time.Time  `gorm:"column:occurred_at;not null;index:idx_entry_user_occurred" json:"occurred_at"`
	RawText    string     `gorm:"column:raw_text;not null" json:"-"`
	Source     string     `gorm:"column:source;not null;default:'journal'" json:"source"`
	Language   string     `gorm:"column:language" json:"language,omitempty"`

	// Embedding is the fixed-dimension vector from the text-understanding
	// collaborator, stored as a JSON float array.
	Embedding    datatypes.JSON `gorm:"type:jsonb;column:embedding" json:"-"`
	EmbeddingDim int            `gorm:"column:embedding_dim;not null;default:0" json:"embedding_dim"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (MoodEntry) TableName() string { return "mood_entry" }

func (e *MoodEntry) EmbeddingVector() []float64 {
	if e == nil || len(e.Embedding) == 0 {
		return nil
	}
	var out []float64
	if err := json.Unmarshal(e.Embedding, &out); err != nil {
		return nil
	}
	return out
}

func (e *MoodEntry) SetEmbeddingVector(vec []float64) error {
	raw, err := json.Marshal(vec)
	if err != nil {
		return err
	}
	e.Embedding = datatypes.JSON(raw)
	e.EmbeddingDim = len(vec)
	return nil
}
