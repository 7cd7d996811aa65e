package mood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/moodtrace-backend/internal/domain/user"
)

// BaselineStat keeps the decayed running statistics for one (user, metric)
// pair. Updated incrementally on every new labeled observation; never
// deleted.
type BaselineStat struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_baseline_user_metric,unique" json:"user_id"`
	User          *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Metric        string     `gorm:"column:metric;not null;index:idx_baseline_user_metric,unique" json:"metric"`
	Mean          float64    `gorm:"column:mean;not null;default:0" json:"mean"`
	SD            float64    `gorm:"column:sd;not null;default:0" json:"sd"`
	Count         int        `gorm:"column:count;not null;default:0" json:"count"`
	LastUpdatedAt time.Time  `gorm:"column:last_updated_at;not null" json:"last_updated_at"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (BaselineStat) TableName() string { return "baseline_stat" }
